// Package vuxml loads the FreeBSD VuXML vulnerability document and answers
// "which vulnerability identifiers affect package X at version V" queries.
// The database is loaded once per run and is read-only afterwards.
package vuxml

import (
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"time"
)

// DefaultURL is the published location of the VuXML document.
const DefaultURL = "https://vuxml.freebsd.org/freebsd/vuln.xml"

const cacheTTL = 24 * time.Hour

// Database is the in-memory form of the VuXML document, indexed by package
// name.
type Database struct {
	entries map[string][]entry
	count   int
}

type entry struct {
	vid    string
	ranges []versionRange
}

// versionRange is one <range> element; empty bounds are unconstrained.
type versionRange struct {
	lt, le, eq, ge, gt string
}

// Wire format of the document.
type document struct {
	Vulns []vuln `xml:"vuln"`
}

type vuln struct {
	VID       string     `xml:"vid,attr"`
	Topic     string     `xml:"topic"`
	Cancelled *struct{}  `xml:"cancelled"`
	Packages  []affected `xml:"affects>package"`
}

type affected struct {
	Names  []string   `xml:"name"`
	Ranges []rangeXML `xml:"range"`
}

type rangeXML struct {
	LT string `xml:"lt"`
	LE string `xml:"le"`
	EQ string `xml:"eq"`
	GE string `xml:"ge"`
	GT string `xml:"gt"`
}

// Load reads a VuXML document from a local file.
func Load(path string) (*Database, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening VuXML document: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse decodes a VuXML document. Cancelled entries are dropped.
func Parse(r io.Reader) (*Database, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding VuXML document: %w", err)
	}

	db := &Database{entries: make(map[string][]entry)}
	for _, v := range doc.Vulns {
		if v.Cancelled != nil {
			continue
		}
		db.count++
		for _, pkg := range v.Packages {
			ranges := make([]versionRange, 0, len(pkg.Ranges))
			for _, r := range pkg.Ranges {
				ranges = append(ranges, versionRange{
					lt: r.LT, le: r.LE, eq: r.EQ, ge: r.GE, gt: r.GT,
				})
			}
			for _, name := range pkg.Names {
				db.entries[name] = append(db.entries[name], entry{vid: v.VID, ranges: ranges})
			}
		}
	}

	slog.Info("loaded vulnerabilities from the VuXML document", "vulnerabilities", db.count)
	return db, nil
}

// Fetch downloads the VuXML document into cacheDir, reusing a cached copy
// younger than a day, and loads it.
func Fetch(url, cacheDir string) (*Database, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	cacheFile := filepath.Join(cacheDir, "vuln.xml")
	if info, err := os.Stat(cacheFile); err != nil || time.Since(info.ModTime()) >= cacheTTL {
		if err := download(url, cacheFile); err != nil {
			return nil, err
		}
	}
	return Load(cacheFile)
}

func download(url, dest string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("downloading VuXML document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading VuXML document: HTTP %d", resp.StatusCode)
	}

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming cache file: %w", err)
	}
	return nil
}

// Len returns the number of (non-cancelled) vulnerabilities loaded.
func (db *Database) Len() int {
	return db.count
}

// Search returns the identifiers of vulnerabilities affecting the package at
// the given version. A range that cannot be compared against the version
// makes the whole lookup fail; the caller treats that as a skipped check.
func (db *Database) Search(name, version string) ([]string, error) {
	var vids []string
	for _, e := range db.entries[name] {
		for _, r := range e.ranges {
			affected, err := r.contains(version)
			if err != nil {
				return nil, fmt.Errorf("vulnerability %s: %w", e.vid, err)
			}
			if affected {
				if !slices.Contains(vids, e.vid) {
					vids = append(vids, e.vid)
				}
				break
			}
		}
	}
	return vids, nil
}

func (r versionRange) contains(version string) (bool, error) {
	bounds := []struct {
		value string
		ok    func(int) bool
	}{
		{r.lt, func(c int) bool { return c < 0 }},
		{r.le, func(c int) bool { return c <= 0 }},
		{r.eq, func(c int) bool { return c == 0 }},
		{r.ge, func(c int) bool { return c >= 0 }},
		{r.gt, func(c int) bool { return c > 0 }},
	}

	constrained := false
	for _, b := range bounds {
		if b.value == "" {
			continue
		}
		constrained = true
		c, err := Compare(version, b.value)
		if err != nil {
			return false, err
		}
		if !b.ok(c) {
			return false, nil
		}
	}
	return constrained, nil
}
