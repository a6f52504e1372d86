package ports

import (
	"time"
)

// Port is one entry of the ports tree INDEX file, optionally enriched with
// variables extracted from its Makefile.
type Port struct {
	Name            string // distribution name, e.g. "zsh-5.9_1"
	Path            string // port directory, e.g. "/usr/ports/shells/zsh"
	Prefix          string // installation prefix
	Comment         string // one-line description
	DescriptionFile string
	Maintainer      string // lowercased at load time
	Categories      []string
	ExtractDepends  []string
	PatchDepends    []string
	WWWSite         string
	FetchDepends    []string
	BuildDepends    []string
	RunDepends      []string

	// Vars holds Makefile variable assignments. It stays empty until the
	// overlay loader has run; callers must not assume any key exists.
	Vars Vars

	// LastModified is the Makefile modification time, zero when the
	// Makefile is missing.
	LastModified time.Time
}

// ID returns the short port identifier, the last component of the port path.
func (p *Port) ID() string {
	for i := len(p.Path) - 1; i >= 0; i-- {
		if p.Path[i] == '/' {
			return p.Path[i+1:]
		}
	}
	return p.Path
}

// Vars maps Makefile variable names to their raw values. Many checks care
// only whether a variable is defined at all, so use Defined or Lookup rather
// than indexing.
type Vars map[string]string

// Set records an assignment, overwriting any earlier value for the key.
func (v Vars) Set(key, value string) {
	v[key] = value
}

// Lookup returns the value for key and whether it is defined.
func (v Vars) Lookup(key string) (string, bool) {
	value, ok := v[key]
	return value, ok
}

// Get returns the value for key, or the empty string when undefined.
func (v Vars) Get(key string) string {
	return v[key]
}

// Defined reports whether key was assigned in the Makefile.
func (v Vars) Defined(key string) bool {
	_, ok := v[key]
	return ok
}

// Catalog is an ordered collection of ports keyed by distribution name.
// Iteration follows insertion order, which matches the INDEX file.
type Catalog struct {
	names  []string
	byName map[string]*Port
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]*Port)}
}

// Add inserts a port, returning false when the distribution name is already
// present. The first occurrence wins.
func (c *Catalog) Add(p *Port) bool {
	if _, dup := c.byName[p.Name]; dup {
		return false
	}
	c.names = append(c.names, p.Name)
	c.byName[p.Name] = p
	return true
}

// Get returns the port with the given distribution name.
func (c *Catalog) Get(name string) (*Port, bool) {
	p, ok := c.byName[name]
	return p, ok
}

// Len returns the number of ports.
func (c *Catalog) Len() int {
	return len(c.names)
}

// All returns the ports in insertion order. The returned slice shares the
// catalog's entries.
func (c *Catalog) All() []*Port {
	out := make([]*Port, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.byName[name])
	}
	return out
}
