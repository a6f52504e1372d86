package makefile

import (
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// assignment matches a top-level Makefile variable assignment. The value is
// everything after the '=' with leading whitespace dropped, kept verbatim.
var assignment = regexp.MustCompile(`^([A-Z_]+)=[ \t]*(.*)`)

// ApplyOverlay loads each port's Makefile and merges its variable
// assignments into the port's Vars map, the later assignment winning. The
// Makefile modification time becomes the port's last modification. A missing
// Makefile is reported to the ledger, not treated as an error.
func ApplyOverlay(catalog *ports.Catalog, ledger *report.Ledger) {
	for _, port := range catalog.All() {
		if info, err := os.Stat(port.Path); err != nil || !info.IsDir() {
			continue // nonexistent port-path is reported by its own check
		}

		path := filepath.Join(port.Path, "Makefile")
		info, err := os.Stat(path)
		if err != nil {
			slog.Error("nonexistent Makefile", "port", port.Name)
			ledger.Increment(report.NonexistentMakefile)
			ledger.Notify(port.Maintainer, report.NonexistentMakefile, port.Name)
			continue
		}
		port.LastModified = info.ModTime().UTC()

		if err := loadVars(path, port.Vars); err != nil {
			slog.Error("unreadable Makefile", "port", port.Name, "error", err)
			ledger.Increment(report.NonexistentMakefile)
			ledger.Notify(port.Maintainer, report.NonexistentMakefile, port.Name)
		}
	}

	slog.Info("found ports with nonexistent Makefile",
		"ports", ledger.Value(report.NonexistentMakefile))
}

func loadVars(path string, vars ports.Vars) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := NewScanner(file)
	for scanner.Scan() {
		if group := assignment.FindStringSubmatch(scanner.Text()); group != nil {
			vars.Set(group[1], group[2])
		}
	}
	return scanner.Err()
}
