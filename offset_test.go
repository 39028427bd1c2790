package vtkxml

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetRawMode(t *testing.T) {
	tr := offsetTracker{mode: FormatRaw}
	assert.Equal(t, int64(0), tr.current())
	tr.advance(8)
	assert.Equal(t, int64(12), tr.current())
	tr.advance(16)
	assert.Equal(t, int64(32), tr.current())
	tr.advance(0)
	assert.Equal(t, int64(36), tr.current())
}

// The appended-base64 increment must equal the number of characters the
// drain actually emits: the padded base64 length of the length-prefixed
// block.
func TestOffsetAppendedMatchesEncoder(t *testing.T) {
	sizes := []int{0, 1, 2, 3, 4, 5, 100, 4095, 4096, 4097}
	for _, n := range sizes {
		tr := offsetTracker{mode: FormatAppended}
		tr.advance(n)
		want := int64(base64.StdEncoding.EncodedLen(n + 4))
		assert.Equal(t, want, tr.current(), "payload of %d bytes", n)
	}
}

func TestOffsetMonotone(t *testing.T) {
	for _, mode := range []OutputFormat{FormatRaw, FormatAppended} {
		tr := offsetTracker{mode: mode}
		prev := tr.current()
		for _, n := range []int{0, 1, 7, 64, 0, 3} {
			tr.advance(n)
			assert.GreaterOrEqual(t, tr.current(), prev)
			prev = tr.current()
		}
	}
}

func TestOffsetIgnoredInline(t *testing.T) {
	tr := offsetTracker{mode: FormatASCII}
	tr.advance(100)
	assert.Equal(t, int64(0), tr.current())
}
