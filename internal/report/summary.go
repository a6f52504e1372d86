package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize/english"
)

// summaryRow pairs a counter with the sentence fragment printed after the
// ports count. The fragment may depend on the configured limits.
type summaryRow struct {
	counter string
	message func(Limits) string
}

func static(message string) func(Limits) string {
	return func(Limits) string { return message }
}

var summaryRows = []summaryRow{
	{NonexistentPortPath, static("with non existent port-path")},
	{NonexistentMakefile, static("without Makefile")},
	{UnusualPrefix, static("with unusual installation-prefix (warning)")},
	{TooLongComments, static("with a comment string exceeding 70 characters (warning)")},
	{UncapitalizedComments, static("with an uncapitalized comment")},
	{DotEndedComments, static("comment ending with a dot")},
	{DivergingComments, static("with a comment different between the Index and Makefile")},
	{NonexistentDescription, static("with non existent description-file")},
	{URLEndingDescription, static("with URL ending description-file")},
	{DescriptionSameAsComment, static("with description-file identical to comment")},
	{TooShortDescription, static("with description-file no longer than comment")},
	{NonexistentPlist, static("without pkg-plist/PLIST_FILES/PLIST/PLIST_SUB (info)")},
	{PlistAbuse, func(l Limits) string {
		return fmt.Sprintf("abusing PLIST_FILES with more than %d entries (warning)", l.PlistAbuse-1)
	}},
	{DivergingMaintainers, static("with a maintainer different between the Index and Makefile")},
	{UnofficialCategories, static("referring to unofficial categories (warning)")},
	{DivergingCategories, static("with categories different between the Index and Makefile")},
	{MissingLicense, static("without LICENSE")},
	{UnofficialLicenses, static("referring to unofficial licenses (warning)")},
	{UselessLicenseCombSingle, static("with an unnecessary LICENSE_COMB=single (warning)")},
	{UselessLicenseCombMulti, static("with an unnecessary LICENSE_COMB=multi (warning)")},
	{EmptyWWWSite, static("with no www-site")},
	{UnresolvableWWWSite, static("with an unresolvable www-site hostname")},
	{UnaccessibleWWWSite, static("with an unaccessible www-site")},
	{DivergingWWWSite, static("with a www-site different between the Index and Makefile")},
	{MarkedBroken, static("with a BROKEN mark (info)")},
	{MarkedBrokenTooLong, func(l Limits) string {
		return fmt.Sprintf("with a BROKEN mark older than %d days (warning)", l.BrokenSince)
	}},
	{MarkedDeprecated, static("with a DEPRECATED mark (info)")},
	{MarkedDeprecatedTooLong, func(l Limits) string {
		return fmt.Sprintf("with a DEPRECATED mark older than %d days (warning)", l.DeprecatedSince)
	}},
	{MarkedForbidden, static("with a FORBIDDEN mark (info)")},
	{MarkedForbiddenTooLong, func(l Limits) string {
		return fmt.Sprintf("with a FORBIDDEN mark older than %d days (warning)", l.ForbiddenSince)
	}},
	{MarkedIgnore, static("with a IGNORE mark in some cases (info)")},
	{MarkedRestricted, static("with a RESTRICTED mark (info)")},
	{MarkedExpirationDate, static("with an EXPIRATION_DATE mark (warning)")},
	{Unchanged, func(l Limits) string {
		return fmt.Sprintf("with a last modification older than %d days (info)", l.UnchangedSince)
	}},
	{VersionConflict, static("with both PORTVERSION and DISTVERSION")},
	{VulnerablePorts, static("with a vulnerable version (warning)")},
}

// Summary pretty prints the findings of a run, skipping zero counters.
func (l *Ledger) Summary(w io.Writer, limits Limits) {
	fmt.Fprintf(w, "Selected %d ports out of %d in the FreeBSD port tree, and found:\n",
		l.Value(SelectedPorts), l.Value(IndexedPorts))
	for _, row := range summaryRows {
		value := l.Value(row.counter)
		if value == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s %s\n", english.Plural(value, "port", ""), row.message(limits))
	}
}
