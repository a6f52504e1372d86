package checks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// portDir creates a port directory with an optional description file.
func portDir(t *testing.T, description string) string {
	t.Helper()
	dir := t.TempDir()
	if description != "" {
		if err := os.WriteFile(filepath.Join(dir, "pkg-descr"), []byte(description), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestPortPath(t *testing.T) {
	ledger := report.NewLedger()
	catalog := catalogOf(
		&ports.Port{Name: "zsh-5.9", Path: t.TempDir()},
		&ports.Port{Name: "bash-5.2", Path: "/nonexistent/shells/bash"},
	)

	PortPath(catalog, ledger)

	if got := ledger.Value(report.NonexistentPortPath); got != 1 {
		t.Errorf("nonexistent port-path = %d, want 1", got)
	}
}

func TestDescriptionFile(t *testing.T) {
	tests := []struct {
		name        string
		comment     string
		description string
		counter     string
		want        int
	}{
		{
			name:        "good description",
			comment:     "The Z shell",
			description: "Zsh is a shell designed for interactive use,\nalthough it is also a powerful scripting language.\n",
			counter:     report.TooShortDescription,
			want:        0,
		},
		{
			name:        "identical to comment",
			comment:     "The Z shell",
			description: "The Z shell\n",
			counter:     report.DescriptionSameAsComment,
			want:        1,
		},
		{
			name:        "shorter than comment",
			comment:     "The Z shell with plugins",
			description: "A shell\n",
			counter:     report.TooShortDescription,
			want:        1,
		},
		{
			name:        "URL ending",
			comment:     "The Z shell",
			description: "Zsh is a shell designed for interactive use,\nalthough it is also a powerful scripting language.\n\nhttps://www.zsh.org/\n",
			counter:     report.URLEndingDescription,
			want:        1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := portDir(t, tc.description)
			ledger := report.NewLedger()
			catalog := catalogOf(&ports.Port{
				Name:            "zsh-5.9",
				Path:            dir,
				Comment:         tc.comment,
				DescriptionFile: filepath.Join(dir, "pkg-descr"),
			})

			DescriptionFile(catalog, ledger)

			if got := ledger.Value(tc.counter); got != tc.want {
				t.Errorf("counter %q = %d, want %d", tc.counter, got, tc.want)
			}
		})
	}
}

func TestDescriptionFile_Nonexistent(t *testing.T) {
	dir := portDir(t, "")
	ledger := report.NewLedger()
	catalog := catalogOf(&ports.Port{
		Name:            "zsh-5.9",
		Path:            dir,
		DescriptionFile: filepath.Join(dir, "pkg-descr"),
	})

	DescriptionFile(catalog, ledger)

	if got := ledger.Value(report.NonexistentDescription); got != 1 {
		t.Errorf("nonexistent description-file = %d, want 1", got)
	}
}

func TestPlist(t *testing.T) {
	tests := []struct {
		name      string
		plistFile bool
		vars      ports.Vars
		counter   string
		want      int
	}{
		{
			name:      "pkg-plist present",
			plistFile: true,
			counter:   report.NonexistentPlist,
			want:      0,
		},
		{
			name:    "nothing at all",
			counter: report.NonexistentPlist,
			want:    1,
		},
		{
			name:    "PLIST_SUB is enough",
			vars:    ports.Vars{"PLIST_SUB": "VERSION=5.9"},
			counter: report.NonexistentPlist,
			want:    0,
		},
		{
			name:    "short PLIST_FILES",
			vars:    ports.Vars{"PLIST_FILES": "bin/zsh share/man/man1/zsh.1.gz"},
			counter: report.PlistAbuse,
			want:    0,
		},
		{
			name:    "PLIST_FILES abuse",
			vars:    ports.Vars{"PLIST_FILES": "a b c d e f g"},
			counter: report.PlistAbuse,
			want:    1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			if tc.plistFile {
				if err := os.WriteFile(filepath.Join(dir, "pkg-plist"), []byte("bin/zsh\n"), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			ledger := report.NewLedger()
			catalog := catalogOf(&ports.Port{Name: "zsh-5.9", Path: dir, Vars: tc.vars})

			Plist(catalog, ledger, report.DefaultLimits().PlistAbuse)

			if got := ledger.Value(tc.counter); got != tc.want {
				t.Errorf("counter %q = %d, want %d", tc.counter, got, tc.want)
			}
		})
	}
}
