package checks

import (
	"log/slog"
	"slices"
	"strings"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// officialLicenses is the list of license identifiers known to the ports
// framework.
var officialLicenses = []string{
	"AGPLv3", "AGPLv3+", "APACHE10", "APACHE11", "APACHE20", "ART10", "ART20", "ARTPERL10", "BSD",
	"BSD0CLAUSE", "BSD2CLAUSE", "BSD3CLAUSE", "BSD4CLAUSE", "BSL", "CC-BY-1.0", "CC-BY-2.0",
	"CC-BY-2.5", "CC-BY-3.0", "CC-BY-4.0", "CC-BY-NC-1.0", "CC-BY-NC-2.0", "CC-BY-NC-2.5",
	"CC-BY-NC-3.0", "CC-BY-NC-4.0", "CC-BY-NC-ND-1.0", "CC-BY-NC-ND-2.0", "CC-BY-NC-ND-2.5",
	"CC-BY-NC-ND-3.0", "CC-BY-NC-ND-4.0", "CC-BY-NC-SA-1.0", "CC-BY-NC-SA-2.0", "CC-BY-NC-SA-2.5",
	"CC-BY-NC-SA-3.0", "CC-BY-NC-SA-4.0", "CC-BY-ND-1.0", "CC-BY-ND-2.0", "CC-BY-ND-2.5",
	"CC-BY-ND-3.0", "CC-BY-ND-4.0", "CC-BY-SA-1.0", "CC-BY-SA-2.0", "CC-BY-SA-2.5", "CC-BY-SA-3.0",
	"CC-BY-SA-4.0", "CC0-1.0", "CDDL", "ClArtistic", "CPAL-1.0", "EPL", "GFDL", "GMGPL", "GPLv1",
	"GPLv1+", "GPLv2", "GPLv2+", "GPLv3", "GPLv3+", "GPLv3RLE", "GPLv3RLE+", "ISCL", "LGPL20",
	"LGPL20+", "LGPL21", "LGPL21+", "LGPL3", "LGPL3+", "LPPL10", "LPPL11", "LPPL12", "LPPL13",
	"LPPL13a", "LPPL13b", "LPPL13c", "MIT", "MPL10", "MPL11", "MPL20", "NCSA", "NONE", "ODbL",
	"OFL10", "OFL11", "OpenSSL", "OWL", "PD", "PHP202", "PHP30", "PHP301", "PostgreSQL", "PSFL",
	"RUBY", "UNLICENSE", "WTFPL", "WTFPL1", "ZLIB", "ZPL21",
}

// Licenses checks that a LICENSE is declared, that its identifiers are
// official, and that LICENSE_COMB is not used needlessly. Ports whose
// PORTNAME appears in excluded are skipped entirely.
func Licenses(catalog *ports.Catalog, ledger *report.Ledger, excluded []string) {
	for _, port := range catalog.All() {
		if slices.Contains(excluded, port.Vars.Get("PORTNAME")) {
			continue
		}

		license, ok := port.Vars.Lookup("LICENSE")
		if !ok {
			slog.Error("missing LICENSE in Makefile", "port", port.Name)
			ledger.Increment(report.MissingLicense)
			ledger.Notify(port.Maintainer, report.MissingLicense, port.Name)
			continue
		}

		for _, name := range strings.Fields(license) {
			if !slices.Contains(officialLicenses, name) && !strings.Contains(name, "$") {
				slog.Warn("unofficial license in Makefile", "license", name, "port", port.Name)
				ledger.Increment(report.UnofficialLicenses)
				ledger.Notify(port.Maintainer, "Unofficial license", port.Name)
			}
		}

		comb, ok := port.Vars.Lookup("LICENSE_COMB")
		if !ok {
			continue
		}
		switch {
		case comb == "single":
			slog.Warn("unnecessary LICENSE_COMB=single in Makefile", "port", port.Name)
			ledger.Increment(report.UselessLicenseCombSingle)
			ledger.Notify(port.Maintainer, report.UselessLicenseCombSingle, port.Name)
		case comb != "multi" && comb != "dual":
			slog.Error("unknown LICENSE_COMB value in Makefile (not counted)",
				"value", comb, "port", port.Name)
		case len(strings.Fields(license)) == 1 && !definesExtraLicense(port.Vars):
			slog.Warn("unnecessary LICENSE_COMB for a single license",
				"value", comb, "port", port.Name)
			ledger.Increment(report.UselessLicenseCombMulti)
			ledger.Notify(port.Maintainer, report.UselessLicenseCombMulti, port.Name)
		}
	}

	slog.Info("found ports with missing LICENSE", "ports", ledger.Value(report.MissingLicense))
	slog.Info("found ports with unofficial licenses", "ports", ledger.Value(report.UnofficialLicenses))
	slog.Info("found ports with unnecessary LICENSE_COMB=single", "ports", ledger.Value(report.UselessLicenseCombSingle))
	slog.Info("found ports with unnecessary LICENSE_COMB=multi", "ports", ledger.Value(report.UselessLicenseCombMulti))
}

// definesExtraLicense reports whether additional licenses are declared
// through LICENSE_NAME_* variables.
func definesExtraLicense(vars ports.Vars) bool {
	for key := range vars {
		if strings.HasPrefix(key, "LICENSE_NAME_") {
			return true
		}
	}
	return false
}
