package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Don't use ',' as the CSV separator, it can appear in port names.
const csvSeparator = ';'

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	portsStyle   = lipgloss.NewStyle().Width(74)
)

// Notifications pretty prints the per-maintainer findings, with port lists
// wrapped to a terminal-friendly width.
func (l *Ledger) Notifications(w io.Writer) {
	fmt.Fprintf(w, "\n%s\n", headingStyle.Render("Issues per maintainer:"))
	for _, maintainer := range l.Maintainers() {
		fmt.Fprintf(w, "  %s:\n", maintainer)
		for _, issue := range l.Issues(maintainer) {
			fmt.Fprintf(w, "    %s:\n", issue)
			wrapped := portsStyle.Render(strings.Join(l.PortsFor(maintainer, issue), " "))
			for _, line := range strings.Split(wrapped, "\n") {
				fmt.Fprintf(w, "      %s\n", strings.TrimRight(line, " "))
			}
		}
		fmt.Fprintln(w)
	}
}

// WriteCSV exports the per-maintainer findings as semicolon-separated
// records, one port per row.
func (l *Ledger) WriteCSV(w io.Writer) error {
	out := csv.NewWriter(w)
	out.Comma = csvSeparator

	if err := out.Write([]string{"MAINTAINER", "ISSUE", "PORT"}); err != nil {
		return err
	}
	for _, maintainer := range l.Maintainers() {
		for _, issue := range l.Issues(maintainer) {
			for _, port := range l.PortsFor(maintainer, issue) {
				if err := out.Write([]string{maintainer, issue, port}); err != nil {
					return err
				}
			}
		}
	}

	out.Flush()
	return out.Error()
}

// SaveCSV writes the CSV export to a file.
func (l *Ledger) SaveCSV(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saving per-maintainer output: %w", err)
	}
	if err := l.WriteCSV(file); err != nil {
		file.Close()
		return fmt.Errorf("saving per-maintainer output: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("saving per-maintainer output: %w", err)
	}
	return nil
}
