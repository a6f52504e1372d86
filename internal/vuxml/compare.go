package vuxml

import (
	"fmt"
	"strconv"
	"strings"
)

// parsedVersion is a package version split into its comparison units:
// "base[_revision][,epoch]".
type parsedVersion struct {
	epoch    int
	base     string
	revision int
}

func parseVersion(v string) (parsedVersion, error) {
	var p parsedVersion

	if i := strings.LastIndex(v, ","); i >= 0 {
		epoch, err := strconv.Atoi(v[i+1:])
		if err != nil {
			return p, fmt.Errorf("malformed epoch in version %q", v)
		}
		p.epoch = epoch
		v = v[:i]
	}
	if i := strings.LastIndex(v, "_"); i >= 0 {
		revision, err := strconv.Atoi(v[i+1:])
		if err != nil {
			return p, fmt.Errorf("malformed revision in version %q", v)
		}
		p.revision = revision
		v = v[:i]
	}
	if v == "" {
		return p, fmt.Errorf("empty version")
	}

	p.base = v
	return p, nil
}

// Compare orders two package version strings the way pkg(8) does: epoch
// first, then the dotted base version component by component, then the
// revision. It returns an error for versions it cannot parse, which callers
// are expected to turn into a skipped check.
func Compare(a, b string) (int, error) {
	pa, err := parseVersion(a)
	if err != nil {
		return 0, err
	}
	pb, err := parseVersion(b)
	if err != nil {
		return 0, err
	}

	if pa.epoch != pb.epoch {
		return sign(pa.epoch - pb.epoch), nil
	}
	if c := compareBase(pa.base, pb.base); c != 0 {
		return c, nil
	}
	return sign(pa.revision - pb.revision), nil
}

func compareBase(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) || i < len(bs); i++ {
		var ac, bc string
		if i < len(as) {
			ac = as[i]
		}
		if i < len(bs) {
			bc = bs[i]
		}
		if c := compareComponent(ac, bc); c != 0 {
			return c
		}
	}
	return 0
}

// compareComponent compares one dotted component by alternating runs of
// digits and letters: digit runs compare numerically, letter runs
// lexicographically, and a numeric run outranks an alphabetic one
// ("1.2" > "1.2rc1"-style pre-releases are not modeled; VuXML ranges use
// the released form).
func compareComponent(a, b string) int {
	ac := chunks(a)
	bc := chunks(b)
	for i := 0; i < len(ac) || i < len(bc); i++ {
		if i >= len(ac) {
			return -1
		}
		if i >= len(bc) {
			return 1
		}
		x, y := ac[i], bc[i]
		xNum, xErr := strconv.Atoi(x)
		yNum, yErr := strconv.Atoi(y)
		switch {
		case xErr == nil && yErr == nil:
			if xNum != yNum {
				return sign(xNum - yNum)
			}
		case xErr == nil:
			return 1
		case yErr == nil:
			return -1
		default:
			if c := strings.Compare(x, y); c != 0 {
				return c
			}
		}
	}
	return 0
}

// chunks splits a component into maximal runs of digits and non-digits:
// "9p1" -> ["9", "p", "1"].
func chunks(s string) []string {
	var out []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			out = append(out, s[start:i])
			start = i
		}
	}
	return out
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
