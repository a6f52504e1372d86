package checks

import (
	"log/slog"
	"strings"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// Maintainer cross-checks the INDEX maintainer with the Makefile's
// MAINTAINER variable. Both maintainers are notified on divergence.
func Maintainer(catalog *ports.Catalog, ledger *report.Ledger) {
	for _, port := range catalog.All() {
		overlay, ok := port.Vars.Lookup("MAINTAINER")
		if !ok || strings.Contains(overlay, "$") {
			continue // don't try to resolve embedded variables
		}

		if port.Maintainer != strings.ToLower(overlay) {
			slog.Error("diverging maintainers between INDEX and Makefile",
				"port", port.Name, "index", port.Maintainer, "makefile", overlay)
			ledger.Increment(report.DivergingMaintainers)
			ledger.Notify(port.Maintainer, report.DivergingMaintainers, port.Name)
			ledger.Notify(overlay, report.DivergingMaintainers, port.Name)
		}
	}

	slog.Info("found ports with diverging maintainers", "ports", ledger.Value(report.DivergingMaintainers))
}
