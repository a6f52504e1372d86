package checks

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// officialCategories is the list from the porters handbook,
// https://docs.freebsd.org/en/books/porters-handbook/makefiles/#makefile-categories-definition
var officialCategories = []string{
	"accessibility", "afterstep", "arabic", "archivers", "astro", "audio", "benchmarks", "biology",
	"cad", "chinese", "comms", "converters", "databases", "deskutils", "devel", "dns", "docs",
	"editors", "education", "elisp", "emulators", "enlightenment", "finance", "french", "ftp",
	"games", "geography", "german", "gnome", "gnustep", "graphics", "hamradio", "haskell", "hebrew",
	"hungarian", "irc", "japanese", "java", "kde", "kde-applications", "kde-frameworks",
	"kde-plasma", "kld", "korean", "lang", "linux", "lisp", "mail", "mate", "math", "mbone", "misc",
	"multimedia", "net", "net-im", "net-mgmt", "net-p2p", "net-vpn", "news", "parallel", "pear",
	"perl5", "plan9", "polish", "ports-mgmt", "portuguese", "print", "python", "ruby", "rubygems",
	"russian", "scheme", "science", "security", "shells", "spanish", "sysutils", "tcl", "textproc",
	"tk", "ukrainian", "vietnamese", "wayland", "windowmaker", "www", "x11", "x11-clocks",
	"x11-drivers", "x11-fm", "x11-fonts", "x11-servers", "x11-themes", "x11-toolkits", "x11-wm",
	"xfce", "zope",
}

// Categories checks membership in the official category list and
// cross-checks the INDEX field with the Makefile's CATEGORIES variable.
func Categories(catalog *ports.Catalog, ledger *report.Ledger) {
	for _, port := range catalog.All() {
		for _, category := range port.Categories {
			if !slices.Contains(officialCategories, category) {
				slog.Warn("unofficial category in INDEX", "category", category, "port", port.Name)
				ledger.Increment(report.UnofficialCategories)
				ledger.Notify(port.Maintainer, "Unofficial category", port.Name)
			}
		}

		overlay, ok := port.Vars.Lookup("CATEGORIES")
		if !ok || strings.Contains(overlay, "$") {
			continue // don't try to resolve embedded variables
		}

		if !slices.Equal(port.Categories, strings.Fields(overlay)) {
			slog.Error("diverging categories between INDEX and Makefile",
				"port", port.Name, "index", strings.Join(port.Categories, " "), "makefile", overlay)
			ledger.Increment(report.DivergingCategories)
			ledger.Notify(port.Maintainer, report.DivergingCategories, port.Name)
		}

		for _, category := range strings.Fields(overlay) {
			if !slices.Contains(officialCategories, category) {
				slog.Warn("unofficial category in Makefile", "category", category, "port", port.Name)
				ledger.Increment(report.UnofficialCategories)
				ledger.Notify(port.Maintainer, "Unofficial category", port.Name)
			}
		}
	}

	slog.Info("found ports with unofficial categories", "ports", ledger.Value(report.UnofficialCategories))
	slog.Info("found ports with diverging categories", "ports", ledger.Value(report.DivergingCategories))
}
