// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "sort"

// SentSet holds the identifiers of every entry included in a previously
// sent digest. It only grows.
type SentSet map[string]struct{}

// NewSentSet returns a set containing ids. Empty strings are ignored.
func NewSentSet(ids ...string) SentSet {
	s := make(SentSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports whether id is in the set.
func (s SentSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts id into the set.
func (s SentSet) Add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

// Len returns the number of identifiers in the set.
func (s SentSet) Len() int { return len(s) }

// Clone returns an independent copy of s.
func (s SentSet) Clone() SentSet {
	c := make(SentSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Union returns a new set holding the identifiers of s and ids.
func (s SentSet) Union(ids ...string) SentSet {
	u := s.Clone()
	for _, id := range ids {
		u.Add(id)
	}
	return u
}

// Sorted returns the identifiers in lexical order.
func (s SentSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
