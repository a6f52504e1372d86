package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"

	"github.com/ptlint/portstreelint/internal/ports"
)

var breakdownStyle = lipgloss.NewStyle().Width(80)

// ShowCategories pretty prints the categories present in the catalog with
// their ports counts.
func ShowCategories(w io.Writer, catalog *ports.Catalog) {
	counts := make(map[string]int)
	for _, port := range catalog.All() {
		for _, category := range port.Categories {
			counts[category]++
		}
	}
	showCounts(w, english.PluralWord(len(counts), "category", "categories"), counts)
}

// ShowMaintainers pretty prints the maintainers present in the catalog with
// their ports counts.
func ShowMaintainers(w io.Writer, catalog *ports.Catalog) {
	counts := make(map[string]int)
	for _, port := range catalog.All() {
		counts[port.Maintainer]++
	}
	showCounts(w, english.PluralWord(len(counts), "maintainer", ""), counts)
}

func showCounts(w io.Writer, what string, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	entries := make([]string, 0, len(names))
	for _, name := range names {
		entries = append(entries, fmt.Sprintf("%s(%d)", name, counts[name]))
	}

	fmt.Fprintf(w, "Showing %d %s with ports counts:\n\n", len(counts), what)
	for _, line := range strings.Split(breakdownStyle.Render(strings.Join(entries, ", ")), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}
