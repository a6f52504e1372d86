package checks

import (
	"github.com/ptlint/portstreelint/internal/ports"
)

// catalogOf builds a catalog from literal ports, giving each an empty Vars
// map when the test did not set one.
func catalogOf(entries ...*ports.Port) *ports.Catalog {
	catalog := ports.NewCatalog()
	for _, entry := range entries {
		if entry.Vars == nil {
			entry.Vars = make(ports.Vars)
		}
		if entry.Maintainer == "" {
			entry.Maintainer = "someone@example.org"
		}
		catalog.Add(entry)
	}
	return catalog
}
