// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSentSetIgnoresEmpty(t *testing.T) {
	s := NewSentSet("a", "", "b", "a")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has("a"))
	assert.True(t, s.Has("b"))
	assert.False(t, s.Has(""))
}

func TestSentSetUnionDoesNotMutate(t *testing.T) {
	prev := NewSentSet("a")
	u := prev.Union("b", "c")

	assert.Equal(t, []string{"a"}, prev.Sorted())
	assert.Equal(t, []string{"a", "b", "c"}, u.Sorted())
}

func TestSentSetCloneIndependent(t *testing.T) {
	s := NewSentSet("x")
	c := s.Clone()
	c.Add("y")

	assert.False(t, s.Has("y"))
	assert.True(t, c.Has("y"))
}

func TestNilSentSet(t *testing.T) {
	var s SentSet
	assert.False(t, s.Has("a"))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, []string{"a"}, s.Union("a").Sorted())
	assert.Empty(t, s.Sorted())
}
