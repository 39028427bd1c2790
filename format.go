package vtkxml

import (
	"fmt"
	"strings"
)

// OutputFormat enumerates the encoding modes a session can write in.
type OutputFormat int

// Enumeration of the output formats.
const (
	FormatInvalid OutputFormat = iota
	FormatASCII                // inline decimal text
	FormatBinary               // inline base64
	FormatRaw                  // appended section, raw bytes
	FormatAppended             // appended section, base64
)

// ParseOutputFormat maps a user format specifier (case-insensitive) to its
// mode. Unrecognized input fails with ErrInvalidFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ASCII":
		return FormatASCII, nil
	case "BINARY":
		return FormatBinary, nil
	case "RAW":
		return FormatRaw, nil
	case "BINARY-APPENDED":
		return FormatAppended, nil
	}
	return FormatInvalid, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// attribute returns the text of the DataArray format attribute.
func (f OutputFormat) attribute() string {
	switch f {
	case FormatASCII:
		return "ascii"
	case FormatBinary:
		return "binary"
	case FormatRaw, FormatAppended:
		return "appended"
	}
	return ""
}

// deferred reports whether payloads are staged for the AppendedData section
// instead of being written inline.
func (f OutputFormat) deferred() bool {
	return f == FormatRaw || f == FormatAppended
}

// appendedEncoding returns the text of the AppendedData encoding attribute.
func (f OutputFormat) appendedEncoding() string {
	if f == FormatRaw {
		return "raw"
	}
	return "base64"
}

// Topology enumerates the mesh topologies a session can describe.
type Topology int

// Enumeration of the supported topologies.
const (
	TopologyInvalid Topology = iota
	RectilinearGrid
	StructuredGrid
	UnstructuredGrid
)

// ParseTopology maps a topology name to its enumeration value. The match is
// exact: the name is also written into the VTKFile type attribute.
func ParseTopology(s string) (Topology, error) {
	switch s {
	case "RectilinearGrid":
		return RectilinearGrid, nil
	case "StructuredGrid":
		return StructuredGrid, nil
	case "UnstructuredGrid":
		return UnstructuredGrid, nil
	}
	return TopologyInvalid, fmt.Errorf("%w: %q", ErrUnsupportedTopology, s)
}

// String returns the topology name as written in the VTKFile type attribute.
func (t Topology) String() string {
	switch t {
	case RectilinearGrid:
		return "RectilinearGrid"
	case StructuredGrid:
		return "StructuredGrid"
	case UnstructuredGrid:
		return "UnstructuredGrid"
	}
	return "Invalid"
}

// structured reports whether the topology root tag carries a WholeExtent
// attribute.
func (t Topology) structured() bool {
	return t == RectilinearGrid || t == StructuredGrid
}

// FileSuffix returns the conventional file suffix for the topology.
func (t Topology) FileSuffix() string {
	switch t {
	case RectilinearGrid:
		return ".vtr"
	case StructuredGrid:
		return ".vts"
	case UnstructuredGrid:
		return ".vtu"
	}
	return ".vtk"
}

// extentAttr formats six extent bounds as the text of a WholeExtent or
// Extent attribute.
func extentAttr(e []int) string {
	return fmt.Sprintf("%d %d %d %d %d %d", e[0], e[1], e[2], e[3], e[4], e[5])
}
