package backend

import "sort"

// CodeSet is a set of short error codes.
type CodeSet map[string]struct{}

// NewCodeSet builds a CodeSet from codes.
func NewCodeSet(codes ...string) CodeSet {
	set := make(CodeSet, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}

// Contains reports whether code is a member of the set.
func (s CodeSet) Contains(code string) bool {
	_, ok := s[code]
	return ok
}

// Union returns a new set holding the members of both sets.
func (s CodeSet) Union(other CodeSet) CodeSet {
	merged := make(CodeSet, len(s)+len(other))
	for code := range s {
		merged[code] = struct{}{}
	}
	for code := range other {
		merged[code] = struct{}{}
	}
	return merged
}

// List returns the members in sorted order.
func (s CodeSet) List() []string {
	codes := make([]string, 0, len(s))
	for code := range s {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Conventions maps convention names to the codes each convention enables.
type Conventions map[string]CodeSet

// Names returns the convention names in sorted order.
func (c Conventions) Names() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Codes returns the code set for name, or nil when the convention is
// unknown.
func (c Conventions) Codes(name string) CodeSet {
	return c[name]
}
