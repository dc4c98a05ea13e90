package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
type Filter func(TestID) bool

// RegexFilters selects tests by matching their full slash-separated ID.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	name := id.String()
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name) || r.MustMatch.anyMatchPath(id.Path)) &&
		!r.MustNotMatch.AnyMatch(name)
}

// RegexList is a list of patterns that can be set repeatedly from the command line.
//
// Besides matching a test's full ID, a pattern can be written as slash-separated elements,
// in the style of "go test -run": "train/all data" matches the "train" group and then its
// "all data" subtest, and "/original" matches any subtest named like "original".
type RegexList struct {
	patterns []*regexp.Regexp
	elements [][]*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	var elements []*regexp.Regexp
	for _, e := range strings.Split(value, "/") {
		erx, err := regexp.Compile(e)
		if err != nil {
			return fmt.Errorf("invalid regex element %q: %w", e, err)
		}
		elements = append(elements, erx)
	}
	r.patterns = append(r.patterns, rx)
	r.elements = append(r.elements, elements)
	return nil
}

// Type is called by the command line parser to describe the flag's value
func (r *RegexList) Type() string {
	return "regex"
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

func (r RegexList) AnyMatch(s string) bool {
	for _, p := range r.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

// A parent test passes if its path matches the leading elements of a pattern, so that the
// subtests the pattern is aimed at still get a chance to run.
func (r RegexList) anyMatchPath(path []string) bool {
	for _, elements := range r.elements {
		if len(elements) < 2 {
			continue
		}
		matched := true
		for i := 0; i < len(path) && i < len(elements); i++ {
			if !elements[i].MatchString(path[i]) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// ExactPattern returns a pattern that, given to RegexList.Set, selects only the specified test
// and the groups that contain it.
func ExactPattern(id TestID) string {
	elements := make([]string, 0, len(id.Path))
	for _, p := range id.Path {
		elements = append(elements, "^"+regexp.QuoteMeta(p)+"$")
	}
	return strings.Join(elements, "/")
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
		if filters.MustMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Fprintln(out)
	}
}
