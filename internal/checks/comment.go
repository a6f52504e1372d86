package checks

import (
	"log/slog"
	"strings"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// Comment checks the one-line comment against the porters-handbook rules
// and cross-checks it with the Makefile's COMMENT variable.
func Comment(catalog *ports.Catalog, ledger *report.Ledger) {
	for _, port := range catalog.All() {
		if len(port.Comment) > 70 {
			slog.Warn("over 70 characters comment", "port", port.Name)
			ledger.Increment(report.TooLongComments)
			ledger.Notify(port.Maintainer, report.TooLongComments, port.Name)
		}

		if port.Comment != "" && port.Comment[0] >= 'a' && port.Comment[0] <= 'z' {
			slog.Error("uncapitalized comment", "port", port.Name)
			ledger.Increment(report.UncapitalizedComments)
			ledger.Notify(port.Maintainer, report.UncapitalizedComments, port.Name)
		}

		if strings.HasSuffix(port.Comment, ".") {
			slog.Error("dot-ended comment", "port", port.Name)
			ledger.Increment(report.DotEndedComments)
			ledger.Notify(port.Maintainer, report.DotEndedComments, port.Name)
		}

		if overlay, ok := port.Vars.Lookup("COMMENT"); ok && !strings.Contains(overlay, "$") {
			// Escaping backslashes are used inconsistently in both fields.
			indexed := strings.ReplaceAll(port.Comment, `\`, "")
			makefile := strings.ReplaceAll(overlay, `\`, "")
			if indexed != makefile {
				slog.Error("diverging comments between INDEX and Makefile",
					"port", port.Name, "index", port.Comment, "makefile", overlay)
				ledger.Increment(report.DivergingComments)
				ledger.Notify(port.Maintainer, report.DivergingComments, port.Name)
			}
		}
	}

	slog.Info("found ports with too long comments", "ports", ledger.Value(report.TooLongComments))
	slog.Info("found ports with uncapitalized comments", "ports", ledger.Value(report.UncapitalizedComments))
	slog.Info("found ports with dot-ended comments", "ports", ledger.Value(report.DotEndedComments))
	slog.Info("found ports with diverging comments", "ports", ledger.Value(report.DivergingComments))
}
