package checks

import (
	"testing"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

func TestLicenses(t *testing.T) {
	tests := []struct {
		name     string
		vars     ports.Vars
		excluded []string
		counter  string
		want     int
	}{
		{
			name:    "official license",
			vars:    ports.Vars{"LICENSE": "MIT"},
			counter: report.MissingLicense,
			want:    0,
		},
		{
			name:    "missing license",
			vars:    ports.Vars{},
			counter: report.MissingLicense,
			want:    1,
		},
		{
			name:     "excluded portname skips missing license",
			vars:     ports.Vars{"PORTNAME": "zsh"},
			excluded: []string{"zsh"},
			counter:  report.MissingLicense,
			want:     0,
		},
		{
			name:    "unofficial license",
			vars:    ports.Vars{"LICENSE": "MYLICENSE"},
			counter: report.UnofficialLicenses,
			want:    1,
		},
		{
			name:    "two unofficial licenses counted twice",
			vars:    ports.Vars{"LICENSE": "FOO BAR"},
			counter: report.UnofficialLicenses,
			want:    2,
		},
		{
			name:    "macro reference not counted",
			vars:    ports.Vars{"LICENSE": "${MY_LICENSE}"},
			counter: report.UnofficialLicenses,
			want:    0,
		},
		{
			name:    "LICENSE_COMB single",
			vars:    ports.Vars{"LICENSE": "MIT", "LICENSE_COMB": "single"},
			counter: report.UselessLicenseCombSingle,
			want:    1,
		},
		{
			name:    "LICENSE_COMB dual with one license",
			vars:    ports.Vars{"LICENSE": "MIT", "LICENSE_COMB": "dual"},
			counter: report.UselessLicenseCombMulti,
			want:    1,
		},
		{
			name:    "LICENSE_COMB dual with two licenses",
			vars:    ports.Vars{"LICENSE": "MIT GPLv2", "LICENSE_COMB": "dual"},
			counter: report.UselessLicenseCombMulti,
			want:    0,
		},
		{
			name: "extra LICENSE_NAME entries make multi legitimate",
			vars: ports.Vars{
				"LICENSE":            "MIT",
				"LICENSE_COMB":       "multi",
				"LICENSE_NAME_OTHER": "Some in-house license",
			},
			counter: report.UselessLicenseCombMulti,
			want:    0,
		},
		{
			name:    "unknown LICENSE_COMB value not counted",
			vars:    ports.Vars{"LICENSE": "MIT", "LICENSE_COMB": "triple"},
			counter: report.UselessLicenseCombMulti,
			want:    0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ledger := report.NewLedger()
			catalog := catalogOf(&ports.Port{Name: "zsh-5.9", Vars: tc.vars})

			Licenses(catalog, ledger, tc.excluded)

			if got := ledger.Value(tc.counter); got != tc.want {
				t.Errorf("counter %q = %d, want %d", tc.counter, got, tc.want)
			}
		})
	}
}
