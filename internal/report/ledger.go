// Package report collects findings across checks and renders them for
// maintainers: named counters, per-maintainer notifications, the CSV export
// and the end-of-run summary.
package report

import (
	"slices"
	"sort"
)

// Counter names. They double as the row labels of the run summary.
const (
	IndexedPorts             = "FreeBSD ports"
	SelectedPorts            = "Selected ports"
	RejectedIndexLines       = "Rejected INDEX lines"
	NonexistentMakefile      = "Nonexistent Makefile"
	NonexistentPortPath      = "Nonexistent port-path"
	UnusualPrefix            = "Unusual installation-prefix"
	TooLongComments          = "Too long comments"
	UncapitalizedComments    = "Uncapitalized comments"
	DotEndedComments         = "Dot-ended comments"
	DivergingComments        = "Diverging comments"
	NonexistentDescription   = "Nonexistent description-file"
	URLEndingDescription     = "URL ending description-file"
	DescriptionSameAsComment = "description-file same as comment"
	TooShortDescription      = "Too short description-file"
	NonexistentPlist         = "Nonexistent pkg-plist"
	PlistAbuse               = "PLIST_FILES abuse"
	DivergingMaintainers     = "Diverging maintainers"
	UnofficialCategories     = "Unofficial categories"
	DivergingCategories      = "Diverging categories"
	MissingLicense           = "Missing LICENSE"
	UnofficialLicenses       = "Unofficial licenses"
	UselessLicenseCombSingle = "Unnecessary LICENSE_COMB=single"
	UselessLicenseCombMulti  = "Unnecessary LICENSE_COMB=multi"
	EmptyWWWSite             = "Empty www-site"
	UnresolvableWWWSite      = "Unresolvable www-site"
	UnaccessibleWWWSite      = "Unaccessible www-site"
	DivergingWWWSite         = "Diverging www-site"
	MarkedBroken             = "Marked as BROKEN"
	MarkedBrokenTooLong      = "Marked as BROKEN for too long"
	MarkedDeprecated         = "Marked as DEPRECATED"
	MarkedDeprecatedTooLong  = "Marked as DEPRECATED for too long"
	MarkedForbidden          = "Marked as FORBIDDEN"
	MarkedForbiddenTooLong   = "Marked as FORBIDDEN for too long"
	MarkedIgnore             = "Marked as IGNORE"
	MarkedRestricted         = "Marked as RESTRICTED"
	MarkedExpirationDate     = "Marked with EXPIRATION_DATE"
	Unchanged                = "Unchanged for a long time"
	VersionConflict          = "Both PORTVERSION and DISTVERSION"
	VulnerablePorts          = "Vulnerable port version"
	SkippedVulnChecks        = "Skipped vulnerability checks"
)

// Limits holds the tunable thresholds of the rule set.
type Limits struct {
	PlistAbuse      int // PLIST_FILES entries
	BrokenSince     int // days
	DeprecatedSince int // days
	ForbiddenSince  int // days
	UnchangedSince  int // days
}

// DefaultLimits mirrors the shipped defaults.
func DefaultLimits() Limits {
	return Limits{
		PlistAbuse:      7,
		BrokenSince:     6 * 30,
		DeprecatedSince: 6 * 30,
		ForbiddenSince:  3 * 30,
		UnchangedSince:  3 * 365,
	}
}

// Ledger accumulates counters and per-maintainer notifications for one run.
// It is passed explicitly to the loaders and checks; there is no shared
// global state.
type Ledger struct {
	counters      map[string]int
	notifications map[string]map[string][]string
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		counters:      make(map[string]int),
		notifications: make(map[string]map[string][]string),
	}
}

// Increment adds one to the named counter.
func (l *Ledger) Increment(counter string) {
	l.counters[counter]++
}

// Add adds n to the named counter.
func (l *Ledger) Add(counter string, n int) {
	l.counters[counter] += n
}

// Value returns the current value of the named counter.
func (l *Ledger) Value(counter string) int {
	return l.counters[counter]
}

// Notify records that a port is affected by an issue, addressed to its
// maintainer. The same port is never recorded twice for one issue.
func (l *Ledger) Notify(maintainer, issue, port string) {
	issues, ok := l.notifications[maintainer]
	if !ok {
		issues = make(map[string][]string)
		l.notifications[maintainer] = issues
	}
	if slices.Contains(issues[issue], port) {
		return
	}
	issues[issue] = append(issues[issue], port)
}

// Maintainers returns the notified maintainers in sorted order.
func (l *Ledger) Maintainers() []string {
	out := make([]string, 0, len(l.notifications))
	for maintainer := range l.notifications {
		out = append(out, maintainer)
	}
	sort.Strings(out)
	return out
}

// Issues returns the issue names recorded for a maintainer, sorted.
func (l *Ledger) Issues(maintainer string) []string {
	issues := l.notifications[maintainer]
	out := make([]string, 0, len(issues))
	for issue := range issues {
		out = append(out, issue)
	}
	sort.Strings(out)
	return out
}

// PortsFor returns the ports recorded for a maintainer and issue, in the
// order they were reported.
func (l *Ledger) PortsFor(maintainer, issue string) []string {
	return l.notifications[maintainer][issue]
}
