// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleEntry() Entry {
	return Entry{
		ID:          "http://arxiv.org/abs/2301.07041",
		Title:       "Attention Is All You Need",
		Authors:     []string{"Ashish Vaswani", "Noam Shazeer"},
		Abstract:    "We propose the Transformer.",
		PublishedAt: time.Date(2026, 10, 15, 17, 59, 3, 0, time.UTC),
		Categories:  []string{"cs.CL", "cs.LG"},
		URL:         "http://arxiv.org/abs/2301.07041v2",
	}
}

func TestEntryAuthorList(t *testing.T) {
	assert.Equal(t, "Ashish Vaswani, Noam Shazeer", sampleEntry().AuthorList())
	assert.Equal(t, "", Entry{}.AuthorList())
}

func TestEntryLinks(t *testing.T) {
	e := sampleEntry()
	assert.Equal(t, "http://arxiv.org/abs/2301.07041", e.AbsURL())
	assert.Equal(t, "http://arxiv.org/pdf/2301.07041", e.PDFURL())
	assert.Equal(t, "arXiv:2301.07041", e.ShortID())
}

func TestEntryShortIDOldStyle(t *testing.T) {
	e := Entry{ID: "http://arxiv.org/abs/hep-th/9901001"}
	assert.Equal(t, "arXiv:9901001", e.ShortID())
}

func TestEntryText(t *testing.T) {
	text := sampleEntry().Text()

	lines := strings.Split(text, "\n")
	assert.Equal(t, "Attention Is All You Need", lines[0])
	assert.Equal(t, "http://arxiv.org/abs/2301.07041v2", lines[1])
	assert.Equal(t, "Ashish Vaswani, Noam Shazeer", lines[2])
	assert.Equal(t, "cs.CL, cs.LG", lines[3])
	assert.Equal(t, "Thu Oct 15 17:59:03 2026 GMT ", lines[4])
	assert.Equal(t, "", lines[5])
	assert.Equal(t, "We propose the Transformer.", lines[6])
}

func TestEntryTextUsesUTC(t *testing.T) {
	e := sampleEntry()
	e.PublishedAt = e.PublishedAt.In(time.FixedZone("EST", -5*3600))
	assert.Contains(t, e.Text(), "Thu Oct 15 17:59:03 2026 GMT")
}
