package vtkxml

import "errors"

// The error taxonomy of a writer session. Failures are wrapped with
// fmt.Errorf("%w: ...") so callers can test them with errors.Is.
var (
	// ErrInvalidFormat means the output format specifier was not one of
	// ASCII, BINARY, RAW, or BINARY-APPENDED.
	ErrInvalidFormat = errors.New("unrecognized output format")

	// ErrUnsupportedTopology means the topology was not RectilinearGrid,
	// StructuredGrid, or UnstructuredGrid.
	ErrUnsupportedTopology = errors.New("unsupported topology")

	// ErrFileOpen means the primary output or the scratch staging file
	// could not be created.
	ErrFileOpen = errors.New("cannot open output file")

	// ErrWrite means a write to the output stream failed.
	ErrWrite = errors.New("write failed")

	// ErrBadDataArrayType means the finalize drain found a scratch record
	// with a corrupt or unknown element type tag. This is fatal: the drain
	// aborts and the output file must be treated as invalid.
	ErrBadDataArrayType = errors.New("bad data array type tag")

	// ErrFinalized means an operation was attempted on a session that has
	// already been finalized.
	ErrFinalized = errors.New("session already finalized")
)
