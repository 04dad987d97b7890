package domain

import (
	"fmt"
	"sort"
	"strings"
)

// EntityCode identifies one of the legal entities ("PT") the ledgers are partitioned by.
type EntityCode string

// EntitySet is an unordered set of entity codes.
type EntitySet map[EntityCode]struct{}

// NewEntitySet builds a set from the given codes.
func NewEntitySet(codes ...EntityCode) EntitySet {
	set := make(EntitySet, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return set
}

// Contains reports whether code is in the set.
func (s EntitySet) Contains(code EntityCode) bool {
	_, ok := s[code]
	return ok
}

// Codes returns the set members sorted alphabetically.
func (s EntitySet) Codes() []EntityCode {
	codes := make([]EntityCode, 0, len(s))
	for c := range s {
		codes = append(codes, c)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Intersect returns the members present in both sets.
func (s EntitySet) Intersect(other EntitySet) EntitySet {
	out := make(EntitySet)
	for c := range s {
		if other.Contains(c) {
			out[c] = struct{}{}
		}
	}
	return out
}

// ParseEntityCodes splits a comma separated list ("KSS, ksp") into upper-case codes.
// Empty items are skipped; duplicates are rejected.
func ParseEntityCodes(raw string) ([]EntityCode, error) {
	var codes []EntityCode
	seen := make(map[EntityCode]bool)
	for _, part := range strings.Split(raw, ",") {
		code := EntityCode(strings.ToUpper(strings.TrimSpace(part)))
		if code == "" {
			continue
		}
		if seen[code] {
			return nil, fmt.Errorf("duplicate entity code %q", code)
		}
		seen[code] = true
		codes = append(codes, code)
	}
	return codes, nil
}
