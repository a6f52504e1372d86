package ports

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
)

// indexFields is the fixed arity of an INDEX line, described at
// https://wiki.freebsd.org/Ports/INDEX
const indexFields = 13

// LoadIndex reads the ports INDEX file at path. Malformed and duplicate
// lines are logged and counted but never abort the load.
func LoadIndex(path string) (*Catalog, int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening ports index: %w", err)
	}
	defer file.Close()

	return ParseIndex(file)
}

// ParseIndex parses INDEX lines from r into a catalog, returning the catalog
// and the number of rejected lines.
func ParseIndex(r io.Reader) (*Catalog, int, error) {
	catalog := NewCatalog()
	rejected := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		if len(fields) != indexFields {
			slog.Error("index line has wrong field count, line ignored",
				"fields", len(fields), "expected", indexFields, "line", line)
			rejected++
			continue
		}

		port := &Port{
			Name:            fields[0],
			Path:            fields[1],
			Prefix:          fields[2],
			Comment:         fields[3],
			DescriptionFile: fields[4],
			Maintainer:      strings.ToLower(fields[5]),
			Categories:      strings.Fields(fields[6]),
			ExtractDepends:  strings.Fields(fields[7]),
			PatchDepends:    strings.Fields(fields[8]),
			WWWSite:         fields[9],
			FetchDepends:    strings.Fields(fields[10]),
			BuildDepends:    strings.Fields(fields[11]),
			RunDepends:      strings.Fields(fields[12]),
			Vars:            make(Vars),
		}

		if !catalog.Add(port) {
			slog.Error("index line refers to a duplicate distribution name, line ignored",
				"name", port.Name)
			rejected++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, rejected, fmt.Errorf("reading ports index: %w", err)
	}

	slog.Info("loaded ports from the INDEX file", "ports", catalog.Len(), "rejected", rejected)
	return catalog, rejected, nil
}

// Selection restricts a catalog to the given categories AND maintainers AND
// port identifiers. Empty fields select everything.
type Selection struct {
	Categories  []string
	Maintainers []string
	Ports       []string
}

// IsEmpty reports whether the selection has no constraint at all.
func (s Selection) IsEmpty() bool {
	return len(s.Categories) == 0 && len(s.Maintainers) == 0 && len(s.Ports) == 0
}

// Filter returns a new catalog containing only the ports matching the
// selection. With an empty selection the catalog is returned unchanged.
func (c *Catalog) Filter(sel Selection) *Catalog {
	if sel.IsEmpty() {
		return c
	}

	filtered := NewCatalog()
	for _, port := range c.All() {
		if len(sel.Maintainers) > 0 && !slices.Contains(sel.Maintainers, port.Maintainer) {
			continue
		}
		if len(sel.Categories) > 0 && !matchesAny(port.Categories, sel.Categories) {
			continue
		}
		if len(sel.Ports) > 0 && !slices.Contains(sel.Ports, port.ID()) {
			continue
		}
		filtered.Add(port)
	}

	slog.Info("selected ports", "ports", filtered.Len())
	return filtered
}

func matchesAny(values, selected []string) bool {
	for _, v := range values {
		if slices.Contains(selected, v) {
			return true
		}
	}
	return false
}
