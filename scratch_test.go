package vtkxml

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/szaghi/vtkxml/payload"
)

func TestScratchLogRoundTrip(t *testing.T) {
	s, err := newScratchLog()
	if err != nil {
		t.Fatalf("could not create scratch log: %v", err)
	}
	defer s.release()

	first := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	second := []byte{9, 8, 7}
	assert.NoError(t, s.push(payload.TypeFloat64, 1, first))
	assert.NoError(t, s.push(payload.TypeInt8, 3, second))

	var headers []scratchHeader
	var payloads [][]byte
	err = s.drain(func(hdr scratchHeader, raw []byte) error {
		headers = append(headers, hdr)
		payloads = append(payloads, raw)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, []scratchHeader{
		{NBytes: 8, Tag: payload.TypeFloat64, Count: 1},
		{NBytes: 3, Tag: payload.TypeInt8, Count: 3},
	}, headers)
	assert.Equal(t, first, payloads[0])
	assert.Equal(t, second, payloads[1])
}

func TestScratchLogDrainsOnce(t *testing.T) {
	s, err := newScratchLog()
	if err != nil {
		t.Fatalf("could not create scratch log: %v", err)
	}
	defer s.release()

	nop := func(scratchHeader, []byte) error { return nil }
	assert.NoError(t, s.drain(nop))
	assert.Error(t, s.drain(nop))
}

func TestScratchLogRelease(t *testing.T) {
	s, err := newScratchLog()
	if err != nil {
		t.Fatalf("could not create scratch log: %v", err)
	}
	name := s.file.Name()
	assert.NoError(t, s.push(payload.TypeInt32, 1, []byte{0, 0, 0, 0}))
	assert.NoError(t, s.release())
	_, err = os.Stat(name)
	assert.True(t, os.IsNotExist(err), "scratch file %s should be removed", name)

	// A second release is harmless.
	assert.NoError(t, s.release())
}
