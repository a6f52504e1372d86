package checks

import (
	"log/slog"
	"time"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// agedMark describes a mark variable whose age against the Makefile's last
// modification decides between the plain and the "for too long" finding.
type agedMark struct {
	variable string
	days     func(report.Limits) int
	counter  string
	stale    string
}

var agedMarks = []agedMark{
	{"BROKEN", func(l report.Limits) int { return l.BrokenSince }, report.MarkedBroken, report.MarkedBrokenTooLong},
	{"DEPRECATED", func(l report.Limits) int { return l.DeprecatedSince }, report.MarkedDeprecated, report.MarkedDeprecatedTooLong},
	{"FORBIDDEN", func(l report.Limits) int { return l.ForbiddenSince }, report.MarkedForbidden, report.MarkedForbiddenTooLong},
}

// Marks reports ports carrying special mark variables (BROKEN, DEPRECATED,
// FORBIDDEN, IGNORE, RESTRICTED, EXPIRATION_DATE), distinguishing marks
// that have been in place longer than the configured limits. The reference
// time is injected for testability.
func Marks(catalog *ports.Catalog, ledger *report.Ledger, limits report.Limits, now time.Time) {
	for _, port := range catalog.All() {
		for _, mark := range agedMarks {
			value, ok := port.Vars.Lookup(mark.variable)
			if !ok {
				continue
			}
			cutoff := now.AddDate(0, 0, -mark.days(limits))
			if !port.LastModified.IsZero() && port.LastModified.Before(cutoff) {
				slog.Warn("stale mark", "mark", mark.variable, "value", value, "port", port.Name)
				ledger.Increment(mark.stale)
				ledger.Notify(port.Maintainer, mark.stale, port.Name)
			} else {
				slog.Info("mark", "mark", mark.variable, "value", value, "port", port.Name)
				ledger.Increment(mark.counter)
				ledger.Notify(port.Maintainer, mark.counter, port.Name)
			}
		}

		if value, ok := port.Vars.Lookup("IGNORE"); ok {
			slog.Info("mark", "mark", "IGNORE", "value", value, "port", port.Name)
			ledger.Increment(report.MarkedIgnore)
			ledger.Notify(port.Maintainer, "Containing an IGNORE mark", port.Name)
		}
		if value, ok := port.Vars.Lookup("RESTRICTED"); ok {
			slog.Info("mark", "mark", "RESTRICTED", "value", value, "port", port.Name)
			ledger.Increment(report.MarkedRestricted)
			ledger.Notify(port.Maintainer, report.MarkedRestricted, port.Name)
		}
		if value, ok := port.Vars.Lookup("EXPIRATION_DATE"); ok {
			slog.Warn("mark", "mark", "EXPIRATION_DATE", "value", value, "port", port.Name)
			ledger.Increment(report.MarkedExpirationDate)
			ledger.Notify(port.Maintainer, report.MarkedExpirationDate, port.Name)
		}
	}

	for _, mark := range agedMarks {
		slog.Info("found marked ports", "mark", mark.variable,
			"ports", ledger.Value(mark.counter), "stale", ledger.Value(mark.stale))
	}
	slog.Info("found ports marked as IGNORE", "ports", ledger.Value(report.MarkedIgnore))
	slog.Info("found ports marked as RESTRICTED", "ports", ledger.Value(report.MarkedRestricted))
	slog.Info("found ports marked with EXPIRATION_DATE", "ports", ledger.Value(report.MarkedExpirationDate))
}

// UnchangingPorts reports ports whose Makefile has not been touched for
// longer than the configured limit.
func UnchangingPorts(catalog *ports.Catalog, ledger *report.Ledger, unchangedDays int, now time.Time) {
	cutoff := now.AddDate(0, 0, -unchangedDays)
	for _, port := range catalog.All() {
		if port.LastModified.IsZero() || !port.LastModified.Before(cutoff) {
			continue
		}
		slog.Info("no modification for a long time", "days", unchangedDays, "port", port.Name)
		ledger.Increment(report.Unchanged)
		ledger.Notify(port.Maintainer, report.Unchanged, port.Name)
	}

	slog.Info("found ports unchanged for a long time", "ports", ledger.Value(report.Unchanged))
}
