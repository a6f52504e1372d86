package checks

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ptlint/portstreelint/internal/ports"
	"github.com/ptlint/portstreelint/internal/report"
)

// PortPath checks that each port's directory exists.
func PortPath(catalog *ports.Catalog, ledger *report.Ledger) {
	for _, port := range catalog.All() {
		if isDir(port.Path) {
			continue
		}
		slog.Error("nonexistent port-path", "path", port.Path, "port", port.Name)
		ledger.Increment(report.NonexistentPortPath)
		ledger.Notify(port.Maintainer, report.NonexistentPortPath, port.Name)
	}

	slog.Info("found ports with nonexistent port-path", "ports", ledger.Value(report.NonexistentPortPath))
}

// DescriptionFile checks that the description file exists, does not end in
// a bare URL, and actually says more than the one-line comment.
func DescriptionFile(catalog *ports.Catalog, ledger *report.Ledger) {
	for _, port := range catalog.All() {
		nonexistent := false
		switch {
		case !strings.HasPrefix(port.DescriptionFile, port.Path):
			nonexistent = !isFile(port.DescriptionFile)
		case !isDir(port.Path):
			// already reported by the port-path check
		case !isFile(port.DescriptionFile):
			nonexistent = true
		}

		if nonexistent {
			slog.Error("nonexistent description-file", "file", port.DescriptionFile, "port", port.Name)
			ledger.Increment(report.NonexistentDescription)
			ledger.Notify(port.Maintainer, report.NonexistentDescription, port.Name)
			continue
		}

		content, err := os.ReadFile(port.DescriptionFile)
		if err != nil {
			continue
		}
		lines := strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
		if len(lines) == 0 || (len(lines) == 1 && lines[0] == "") {
			continue
		}

		last := strings.TrimSpace(lines[len(lines)-1])
		if strings.HasPrefix(last, "https://") || strings.HasPrefix(last, "http://") {
			slog.Error("URL ending description-file", "url", last, "port", port.Name)
			ledger.Increment(report.URLEndingDescription)
			ledger.Notify(port.Maintainer, report.URLEndingDescription, port.Name)
			lines = lines[:len(lines)-1]
		}

		text := strings.TrimSpace(strings.Join(lines, " "))
		if text == port.Comment {
			slog.Error("description-file content is identical to comment", "port", port.Name)
			ledger.Increment(report.DescriptionSameAsComment)
			ledger.Notify(port.Maintainer, report.DescriptionSameAsComment, port.Name)
		} else if len(text) <= len(port.Comment) {
			slog.Error("description-file content is no longer than comment", "port", port.Name)
			ledger.Increment(report.TooShortDescription)
			ledger.Notify(port.Maintainer, report.TooShortDescription, port.Name)
		}
	}

	slog.Info("found ports with nonexistent description-file", "ports", ledger.Value(report.NonexistentDescription))
	slog.Info("found ports with URL ending description-file", "ports", ledger.Value(report.URLEndingDescription))
	slog.Info("found ports with description-file identical to comment", "ports", ledger.Value(report.DescriptionSameAsComment))
	slog.Info("found ports with too short description-file", "ports", ledger.Value(report.TooShortDescription))
}

// Plist checks that a packing list exists in some form and that PLIST_FILES
// is not abused for long lists.
func Plist(catalog *ports.Catalog, ledger *report.Ledger, plistAbuse int) {
	for _, port := range catalog.All() {
		if !isDir(port.Path) {
			continue
		}
		if isFile(filepath.Join(port.Path, "pkg-plist")) {
			continue
		}

		files, ok := port.Vars.Lookup("PLIST_FILES")
		if !ok {
			if !port.Vars.Defined("PLIST") && !port.Vars.Defined("PLIST_SUB") {
				slog.Debug("no pkg-plist, PLIST_FILES, PLIST or PLIST_SUB", "port", port.Name)
				// Not notified: too many legitimate-looking exceptions.
				ledger.Increment(report.NonexistentPlist)
			}
			continue
		}

		if entries := len(strings.Fields(files)); entries >= plistAbuse {
			slog.Warn("PLIST_FILES abuse", "entries", entries, "port", port.Name)
			ledger.Increment(report.PlistAbuse)
			ledger.Notify(port.Maintainer, report.PlistAbuse, port.Name)
		}
	}

	slog.Info("found ports with nonexistent pkg-plist", "ports", ledger.Value(report.NonexistentPlist))
	slog.Info("found ports with PLIST_FILES abuse", "ports", ledger.Value(report.PlistAbuse))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
