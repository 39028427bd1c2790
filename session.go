package vtkxml

import (
	"bufio"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/szaghi/vtkxml/payload"
)

type sessionState int

const (
	stateUninitialized sessionState = iota
	stateOpen
	stateFinalized
)

var setupOnce sync.Once
var hostOrderName string

// setupEncoding is the one-time bootstrap shared by all sessions. It runs
// lazily on the first NewWriter call.
func setupEncoding() {
	hostOrderName = payload.ByteOrderName()
}

// Writer writes one VTK XML file. NewWriter opens the file and emits the
// XML prologue; the WritePiece / WriteDataArray methods emit structural
// tags (staging appended payloads on a scratch log); Finalize drains the
// staged payloads and closes the document. A Writer is not safe for
// concurrent use: the intended call discipline is strictly sequential on
// one goroutine.
type Writer struct {
	Filename string
	Format   OutputFormat
	Topology Topology

	state       sessionState
	wholeExtent []int
	file        *os.File
	buf         *bufio.Writer
	tags        *tagWriter
	offsets     offsetTracker
	scratch     *scratchLog
	lastErr     error
	arrays      int
	created     time.Time
}

// NewWriter creates filename and writes the XML declaration, the VTKFile
// root tag carrying the host byte order, and the topology root tag. The
// extent gives the WholeExtent bounds (x1 x2 y1 y2 z1 z2); it is required
// for RectilinearGrid and StructuredGrid and ignored for UnstructuredGrid.
// An unrecognized format or topology fails before any file is created.
func NewWriter(format, topology, filename string, extent ...int) (*Writer, error) {
	mode, err := ParseOutputFormat(format)
	if err != nil {
		return nil, err
	}
	topo, err := ParseTopology(topology)
	if err != nil {
		return nil, err
	}
	if topo.structured() && len(extent) != 6 {
		return nil, fmt.Errorf("%w: %s requires a 6-value whole extent, got %d values",
			ErrUnsupportedTopology, topo, len(extent))
	}
	setupOnce.Do(setupEncoding)

	file, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileOpen, err)
	}
	w := &Writer{
		Filename: filename,
		Format:   mode,
		Topology: topo,
		state:    stateOpen,
		file:     file,
		buf:      bufio.NewWriterSize(file, 32768),
		offsets:  offsetTracker{mode: mode},
		created:  time.Now(),
	}
	w.tags = newTagWriter(w.buf)
	if mode.deferred() {
		w.offsets.reset()
		if w.scratch, err = newScratchLog(); err != nil {
			file.Close()
			return nil, fmt.Errorf("%w: scratch: %v", ErrFileOpen, err)
		}
	}

	w.tags.line(`<?xml version="1.0"?>`)
	w.tags.openTag("VTKFile", fmt.Sprintf(`type="%s" version="0.1" byte_order="%s"`,
		topo, hostOrderName))
	if topo.structured() {
		w.wholeExtent = append([]int{}, extent...)
		w.tags.openTag(topo.String(), fmt.Sprintf(`WholeExtent="%s"`, extentAttr(extent)))
	} else {
		w.tags.openTag(topo.String(), "")
	}
	if err := w.captureIO(); err != nil {
		return w, err
	}
	return w, nil
}

// LastError returns the session's recorded status: nil after a clean
// sequence of calls, otherwise the most recent failure.
func (w *Writer) LastError() error { return w.lastErr }

func (w *Writer) fail(err error) error {
	if err != nil {
		w.lastErr = err
	}
	return err
}

// captureIO folds the tag writer's sticky error into the session status.
func (w *Writer) captureIO() error {
	if err := w.tags.lastErr(); err != nil {
		return w.fail(fmt.Errorf("%w: %v", ErrWrite, err))
	}
	return nil
}

func (w *Writer) mustBeOpen() error {
	switch w.state {
	case stateOpen:
		return nil
	case stateFinalized:
		return w.fail(ErrFinalized)
	}
	return w.fail(fmt.Errorf("session not initialized"))
}

// WritePieceStart opens a Piece tag bound to a sub-extent. With no
// arguments the piece covers the whole extent. Pieces may repeat; each
// start/end pair is independently indent-balanced.
func (w *Writer) WritePieceStart(extent ...int) error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	if len(extent) == 0 {
		extent = w.wholeExtent
	}
	if len(extent) != 6 {
		return w.fail(fmt.Errorf("piece extent needs 6 values, got %d", len(extent)))
	}
	w.tags.openTag("Piece", fmt.Sprintf(`Extent="%s"`, extentAttr(extent)))
	return w.captureIO()
}

// WritePieceEnd closes the current Piece tag.
func (w *Writer) WritePieceEnd() error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	w.tags.closeTag("Piece")
	return w.captureIO()
}

// WriteDataArray emits one DataArray tag for the given typed array. In
// ASCII and BINARY modes the payload is encoded inline as tag content; in
// the appended modes a self-closing tag with the precomputed byte offset is
// emitted now and the payload is staged for the AppendedData section.
func (w *Writer) WriteDataArray(name string, components int, data payload.Array) error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	w.arrays++
	if w.Format.deferred() {
		return w.writeArrayAppended(name, components, data)
	}
	return w.writeArrayInline(name, components, data)
}

func (w *Writer) arrayAttrs(name string, components int, tag payload.TypeTag) string {
	return fmt.Sprintf(`type="%s" NumberOfComponents="%d" Name="%s" format="%s"`,
		tag, components, name, w.Format.attribute())
}

func (w *Writer) writeArrayInline(name string, components int, data payload.Array) error {
	attrs := w.arrayAttrs(name, components, data.Tag())
	var content string
	switch w.Format {
	case FormatASCII:
		content = string(data.AppendAscii(nil))
	case FormatBinary:
		content = base64.StdEncoding.EncodeToString(prefixLength(data.Bytes()))
	}
	w.tags.contentTag("DataArray", attrs, content)
	return w.captureIO()
}

func (w *Writer) writeArrayAppended(name string, components int, data payload.Array) error {
	attrs := w.arrayAttrs(name, components, data.Tag())
	w.tags.emptyTag("DataArray", fmt.Sprintf(`%s offset="%d"`, attrs, w.offsets.current()))
	if err := w.captureIO(); err != nil {
		return err
	}
	raw := data.Bytes()
	if err := w.scratch.push(data.Tag(), data.Len(), raw); err != nil {
		return w.fail(fmt.Errorf("%w: scratch: %v", ErrWrite, err))
	}
	w.offsets.advance(len(raw))
	return nil
}

// prefixLength prepends the 4-byte length header VTK expects before every
// appended or inline-binary payload.
func prefixLength(raw []byte) []byte {
	block := make([]byte, 0, 4+len(raw))
	block = append(block, payload.FromInt32(int32(len(raw)))...)
	return append(block, raw...)
}

// Finalize closes the topology tag, drains any staged payloads into an
// AppendedData section, closes the root tag, and closes the file. The
// session is terminal afterwards: a second call returns ErrFinalized and
// emits nothing. The scratch staging file is released on every exit path.
func (w *Writer) Finalize() error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	w.state = stateFinalized
	defer func() {
		if w.scratch != nil {
			w.scratch.release()
		}
	}()

	w.tags.closeTag(w.Topology.String())
	if w.Format.deferred() {
		if err := w.drainAppended(); err != nil {
			w.buf.Flush()
			w.file.Close()
			return err
		}
	}
	w.tags.closeTag("VTKFile")
	w.captureIO()
	if err := w.buf.Flush(); err != nil && w.lastErr == nil {
		w.fail(fmt.Errorf("%w: %v", ErrWrite, err))
	}
	if err := w.file.Close(); err != nil && w.lastErr == nil {
		w.fail(fmt.Errorf("%w: %v", ErrWrite, err))
	}
	return w.lastErr
}

// drainAppended wraps the scratch drain in the AppendedData element. The
// payload stream starts with a literal underscore marker. A record with an
// unknown type tag aborts the drain and leaves the document without its
// closing tags; the file must then be treated as invalid.
func (w *Writer) drainAppended() error {
	w.tags.openTag("AppendedData", fmt.Sprintf(`encoding="%s"`, w.Format.appendedEncoding()))
	w.tags.rawString(strings.Repeat(" ", w.tags.indent) + "_")
	err := w.scratch.drain(func(hdr scratchHeader, raw []byte) error {
		if !hdr.Tag.Valid() {
			ProblemLogger.Printf("appended-data drain aborted, %q must be treated as invalid:\n%s",
				w.Filename, spew.Sdump(hdr))
			return fmt.Errorf("%w: byte length %d, element count %d",
				ErrBadDataArrayType, hdr.NBytes, hdr.Count)
		}
		block := prefixLength(raw)
		if w.Format == FormatRaw {
			w.tags.raw(block)
		} else {
			w.tags.rawString(base64.StdEncoding.EncodeToString(block))
		}
		return w.tags.lastErr()
	})
	if err != nil {
		return w.fail(err)
	}
	w.tags.rawString("\n")
	w.tags.closeTag("AppendedData")
	return w.captureIO()
}
