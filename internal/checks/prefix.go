package checks

import (
	"log/slog"
	"strings"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// InstallationPrefix flags installation prefixes outside the small set of
// combinations that are expected in the tree.
func InstallationPrefix(catalog *ports.Catalog, ledger *report.Ledger) {
	for _, port := range catalog.All() {
		if usualPrefix(port) {
			continue
		}
		slog.Warn("unusual installation-prefix", "prefix", port.Prefix, "port", port.Name)
		ledger.Increment(report.UnusualPrefix)
		ledger.Notify(port.Maintainer, report.UnusualPrefix, port.Name)
	}

	slog.Info("found ports with unusual installation-prefix", "ports", ledger.Value(report.UnusualPrefix))
}

func usualPrefix(port *ports.Port) bool {
	name := port.Name
	switch {
	case port.Prefix == "/usr/local":
		return true
	case port.Prefix == "/compat/linux" && strings.HasPrefix(name, "linux"):
		return true
	case port.Prefix == "/usr/local/FreeBSD_ARM64" && strings.Contains(name, "-aarch64-"):
		return true
	case strings.HasPrefix(port.Prefix, "/usr/local/android") && strings.Contains(name, "droid"):
		return true
	case port.Prefix == "/var/qmail" && (strings.Contains(name, "qmail") || strings.HasPrefix(name, "queue-fix")):
		return true
	case port.Prefix == "/usr" && (strings.HasPrefix(name, "global-tz-") || strings.HasPrefix(name, "zoneinfo-")):
		return true
	}
	return false
}
