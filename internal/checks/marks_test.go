package checks

import (
	"testing"
	"time"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

func TestMarks(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		vars     ports.Vars
		modified time.Time
		counter  string
		want     int
	}{
		{
			name:     "fresh BROKEN",
			vars:     ports.Vars{"BROKEN": "does not build"},
			modified: now.AddDate(0, 0, -10),
			counter:  report.MarkedBroken,
			want:     1,
		},
		{
			name:     "stale BROKEN",
			vars:     ports.Vars{"BROKEN": "does not build"},
			modified: now.AddDate(0, 0, -200),
			counter:  report.MarkedBrokenTooLong,
			want:     1,
		},
		{
			name:     "stale BROKEN not counted as fresh",
			vars:     ports.Vars{"BROKEN": "does not build"},
			modified: now.AddDate(0, 0, -200),
			counter:  report.MarkedBroken,
			want:     0,
		},
		{
			name:    "BROKEN without modification time counts as fresh",
			vars:    ports.Vars{"BROKEN": "does not build"},
			counter: report.MarkedBroken,
			want:    1,
		},
		{
			name:     "stale DEPRECATED",
			vars:     ports.Vars{"DEPRECATED": "upstream gone"},
			modified: now.AddDate(0, 0, -181),
			counter:  report.MarkedDeprecatedTooLong,
			want:     1,
		},
		{
			name:     "stale FORBIDDEN uses its shorter limit",
			vars:     ports.Vars{"FORBIDDEN": "CVE-2024-0001"},
			modified: now.AddDate(0, 0, -100),
			counter:  report.MarkedForbiddenTooLong,
			want:     1,
		},
		{
			name:    "IGNORE",
			vars:    ports.Vars{"IGNORE": "is useless"},
			counter: report.MarkedIgnore,
			want:    1,
		},
		{
			name:    "RESTRICTED",
			vars:    ports.Vars{"RESTRICTED": "no redistribution"},
			counter: report.MarkedRestricted,
			want:    1,
		},
		{
			name:    "EXPIRATION_DATE",
			vars:    ports.Vars{"EXPIRATION_DATE": "2024-06-30"},
			counter: report.MarkedExpirationDate,
			want:    1,
		},
		{
			name:    "unmarked port",
			counter: report.MarkedBroken,
			want:    0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := report.NewLedger()
			catalog := catalogOf(&ports.Port{Name: "zsh-5.9", Vars: tc.vars, LastModified: tc.modified})

			Marks(catalog, ledger, report.DefaultLimits(), now)

			if got := ledger.Value(tc.counter); got != tc.want {
				t.Errorf("counter %q = %d, want %d", tc.counter, got, tc.want)
			}
		})
	}
}

func TestUnchangingPorts(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := report.NewLedger()
	catalog := catalogOf(
		&ports.Port{Name: "old-1.0", LastModified: now.AddDate(-4, 0, 0)},
		&ports.Port{Name: "recent-2.0", LastModified: now.AddDate(0, -1, 0)},
		&ports.Port{Name: "unread-3.0"},
	)

	UnchangingPorts(catalog, ledger, report.DefaultLimits().UnchangedSince, now)

	if got := ledger.Value(report.Unchanged); got != 1 {
		t.Errorf("unchanged ports = %d, want 1", got)
	}
}
