// Package version derives a canonical (package name, version) pair for a
// port, used to correlate it with the vulnerability database. The
// authoritative Makefile fields are often absent or hold unexpanded macro
// references, so resolution falls back to picking the port's own
// distribution name apart.
package version

import (
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ptlint/portstreelint/internal/ports"
)

// ErrUnresolvable reports that no name/version split could be derived for a
// port. Callers must count the port as skipped, not as vulnerability-free.
var ErrUnresolvable = errors.New("unable to derive a package version")

// Resolution is the best-effort (package name, version) pair for one port.
type Resolution struct {
	Name    string
	Version string
}

// Conflict reports whether both PORTVERSION and DISTVERSION are defined.
// Both cannot be authoritative; resolution continues with PORTVERSION.
func Conflict(p *ports.Port) bool {
	return p.Vars.Defined("PORTVERSION") && p.Vars.Defined("DISTVERSION")
}

// strategies are tried in order; the first one that succeeds wins.
var strategies = []func(*ports.Port) (Resolution, bool){
	fromExplicitFields,
	fromDistributionName,
}

// Resolve derives the resolution for a port, or ErrUnresolvable when no
// strategy applies.
func Resolve(p *ports.Port) (Resolution, error) {
	for _, strategy := range strategies {
		if res, ok := strategy(p); ok {
			return res, nil
		}
	}
	return Resolution{}, ErrUnresolvable
}

// fromExplicitFields uses PORTNAME and a macro-free PORTVERSION, with the
// revision suffix appended when PORTREVISION is defined.
func fromExplicitFields(p *ports.Port) (Resolution, bool) {
	name := p.Vars.Get("PORTNAME")
	if name == "" {
		return Resolution{}, false
	}
	version := usableVersion(p)
	if version == "" {
		return Resolution{}, false
	}
	if revision, ok := p.Vars.Lookup("PORTREVISION"); ok {
		version += "_" + revision
	}
	return Resolution{Name: name, Version: version}, true
}

// usableVersion returns the explicit version field, or "" when it is absent
// or contains an unexpanded macro reference that cannot be trusted.
func usableVersion(p *ports.Port) string {
	version := p.Vars.Get("PORTVERSION")
	if strings.Contains(version, "$") {
		return ""
	}
	return version
}

var (
	epochSuffix    = regexp.MustCompile(`,[0-9]+$`)
	revisionSuffix = regexp.MustCompile(`_[0-9]+$`)
	nameVersion    = regexp.MustCompile(`^(.*)-([^-]+)$`)
)

// fromDistributionName infers the pair from the distribution name itself:
// the epoch and revision suffixes are stripped, then the remainder splits on
// its last hyphen. When the relevant Makefile field is absent the suffixes
// are matched by a generic numeric pattern, which can mis-split names that
// legitimately end in ",N" or "_N"; this trades occasional false results
// for coverage, like the heuristic it reproduces.
func fromDistributionName(p *ports.Port) (Resolution, bool) {
	version := p.Name

	if epoch, ok := p.Vars.Lookup("PORTEPOCH"); ok {
		version = strings.TrimSuffix(version, ","+epoch)
	} else if strings.Contains(version, ",") {
		version = epochSuffix.ReplaceAllString(version, "")
		slog.Debug("port epoch without PORTEPOCH", "port", p.Name)
	}

	if revision, ok := p.Vars.Lookup("PORTREVISION"); ok {
		version = strings.TrimSuffix(version, "_"+revision)
	} else if strings.Contains(version, "_") {
		version = revisionSuffix.ReplaceAllString(version, "")
		slog.Debug("port revision without PORTREVISION", "port", p.Name)
	}

	group := nameVersion.FindStringSubmatch(version)
	if group == nil {
		return Resolution{}, false
	}

	name := p.Vars.Get("PORTNAME")
	if name == "" {
		name = group[1]
	}
	slog.Debug("assumed name and version", "port", p.Name, "name", name, "version", group[2])
	return Resolution{Name: name, Version: group[2]}, true
}
