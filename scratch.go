package vtkxml

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/szaghi/vtkxml/payload"
)

// scratchHeader frames one staged payload in the scratch log.
type scratchHeader struct {
	NBytes int32
	Tag    payload.TypeTag
	Count  int32
}

// scratchLog is the staging area for appended payloads. Records are
// appended while structural tags are being written, then read back
// sequentially, exactly once, during the finalize drain. The log lives in a
// temporary file that release removes on every exit path.
type scratchLog struct {
	file    *os.File
	w       *bufio.Writer
	records int
	drained bool
}

func newScratchLog() (*scratchLog, error) {
	f, err := os.CreateTemp("", "vtkxml-scratch-*")
	if err != nil {
		return nil, err
	}
	return &scratchLog{file: f, w: bufio.NewWriterSize(f, 32768)}, nil
}

// push appends one record: a {byte length, type tag, element count} header
// followed by the raw payload bytes.
func (s *scratchLog) push(tag payload.TypeTag, count int, raw []byte) error {
	if _, err := s.w.Write(payload.FromInt32(int32(len(raw)))); err != nil {
		return err
	}
	if _, err := s.w.Write(payload.FromInt32(int32(tag))); err != nil {
		return err
	}
	if _, err := s.w.Write(payload.FromInt32(int32(count))); err != nil {
		return err
	}
	if _, err := s.w.Write(raw); err != nil {
		return err
	}
	s.records++
	return nil
}

// drain reads the staged records back in write order and hands each to fn.
// A record whose byte length makes framing impossible aborts the drain with
// ErrBadDataArrayType; type-tag validation is the caller's job. Drain runs
// at most once per log.
func (s *scratchLog) drain(fn func(hdr scratchHeader, raw []byte) error) error {
	if s.drained {
		return fmt.Errorf("scratch log already drained")
	}
	s.drained = true
	if err := s.w.Flush(); err != nil {
		return err
	}
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	ord := payload.HostByteOrder()
	r := bufio.NewReaderSize(s.file, 32768)
	hdrBytes := make([]byte, 12)
	for i := 0; i < s.records; i++ {
		if _, err := io.ReadFull(r, hdrBytes); err != nil {
			return err
		}
		hdr := scratchHeader{
			NBytes: int32(ord.Uint32(hdrBytes[0:4])),
			Tag:    payload.TypeTag(ord.Uint32(hdrBytes[4:8])),
			Count:  int32(ord.Uint32(hdrBytes[8:12])),
		}
		if hdr.NBytes < 0 {
			return fmt.Errorf("%w: byte length %d, element count %d",
				ErrBadDataArrayType, hdr.NBytes, hdr.Count)
		}
		raw := make([]byte, hdr.NBytes)
		if _, err := io.ReadFull(r, raw); err != nil {
			return err
		}
		if err := fn(hdr, raw); err != nil {
			return err
		}
	}
	return nil
}

// release closes and removes the scratch file. It is safe to call more than
// once.
func (s *scratchLog) release() error {
	if s.file == nil {
		return nil
	}
	name := s.file.Name()
	err := s.file.Close()
	if err2 := os.Remove(name); err == nil {
		err = err2
	}
	s.file = nil
	return err
}
