// Package filter decides which log groups are managed.
package filter

import "strings"

// NameFilter admits log group names by prefix. An empty prefix is an unset
// constraint and is skipped entirely.
type NameFilter struct {
	Include string
	Exclude string
}

// New returns a NameFilter for the given include and exclude prefixes.
func New(include, exclude string) NameFilter {
	return NameFilter{Include: include, Exclude: exclude}
}

// ShouldProcess reports whether name passes both prefix constraints.
func (f NameFilter) ShouldProcess(name string) bool {
	return ShouldProcess(name, f.Include, f.Exclude)
}

// Reason describes why name was rejected, or returns "" when it is admitted.
func (f NameFilter) Reason(name string) string {
	if f.Exclude != "" && strings.HasPrefix(name, f.Exclude) {
		return "matches the exclude prefix"
	}
	if f.Include != "" && !strings.HasPrefix(name, f.Include) {
		return "doesn't match the prefix"
	}
	return ""
}

// ShouldProcess applies the exclude prefix first, then the include prefix.
func ShouldProcess(name, includePrefix, excludePrefix string) bool {
	if excludePrefix != "" && strings.HasPrefix(name, excludePrefix) {
		return false
	}
	if includePrefix != "" && !strings.HasPrefix(name, includePrefix) {
		return false
	}
	return true
}
