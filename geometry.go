package vtkxml

import (
	"fmt"

	"github.com/szaghi/vtkxml/payload"
)

// Geometry and data-section builders. These are thin layers over the
// generic data-array path, so they honor the session's format the same way
// in all four encoding modes.

// WriteCoordinates emits the Coordinates block of a RectilinearGrid piece:
// three one-component arrays holding the axis node positions.
func (w *Writer) WriteCoordinates(x, y, z []float64) error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	if w.Topology != RectilinearGrid {
		return w.fail(fmt.Errorf("%w: Coordinates blocks belong to RectilinearGrid, not %s",
			ErrUnsupportedTopology, w.Topology))
	}
	w.tags.openTag("Coordinates", "")
	for _, axis := range []struct {
		name string
		data []float64
	}{{"X", x}, {"Y", y}, {"Z", z}} {
		if err := w.WriteDataArray(axis.name, 1, payload.Float64s(axis.data)); err != nil {
			return err
		}
	}
	w.tags.closeTag("Coordinates")
	return w.captureIO()
}

// WritePoints emits the Points block of a StructuredGrid or
// UnstructuredGrid piece. xyz holds interleaved x y z node positions.
func (w *Writer) WritePoints(xyz []float64) error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	if w.Topology == RectilinearGrid {
		return w.fail(fmt.Errorf("%w: RectilinearGrid describes its nodes with Coordinates, not Points",
			ErrUnsupportedTopology))
	}
	w.tags.openTag("Points", "")
	if err := w.WriteDataArray("Points", 3, payload.Float64s(xyz)); err != nil {
		return err
	}
	w.tags.closeTag("Points")
	return w.captureIO()
}

// WriteCells emits the Cells block of an UnstructuredGrid piece: the
// connectivity list, the per-cell end offsets into it, and the VTK cell
// type codes.
func (w *Writer) WriteCells(connectivity, offsets []int32, types []int8) error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	if w.Topology != UnstructuredGrid {
		return w.fail(fmt.Errorf("%w: Cells blocks belong to UnstructuredGrid, not %s",
			ErrUnsupportedTopology, w.Topology))
	}
	w.tags.openTag("Cells", "")
	if err := w.WriteDataArray("connectivity", 1, payload.Int32s(connectivity)); err != nil {
		return err
	}
	if err := w.WriteDataArray("offsets", 1, payload.Int32s(offsets)); err != nil {
		return err
	}
	if err := w.WriteDataArray("types", 1, payload.Int8s(types)); err != nil {
		return err
	}
	w.tags.closeTag("Cells")
	return w.captureIO()
}

// OpenPointData opens a PointData section for node-centered arrays.
func (w *Writer) OpenPointData() error { return w.openSection("PointData") }

// ClosePointData closes the PointData section.
func (w *Writer) ClosePointData() error { return w.closeSection("PointData") }

// OpenCellData opens a CellData section for cell-centered arrays.
func (w *Writer) OpenCellData() error { return w.openSection("CellData") }

// CloseCellData closes the CellData section.
func (w *Writer) CloseCellData() error { return w.closeSection("CellData") }

// OpenFieldData opens a FieldData section for global (mesh-wide) arrays.
func (w *Writer) OpenFieldData() error { return w.openSection("FieldData") }

// CloseFieldData closes the FieldData section.
func (w *Writer) CloseFieldData() error { return w.closeSection("FieldData") }

func (w *Writer) openSection(name string) error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	w.tags.openTag(name, "")
	return w.captureIO()
}

func (w *Writer) closeSection(name string) error {
	if err := w.mustBeOpen(); err != nil {
		return err
	}
	w.tags.closeTag(name)
	return w.captureIO()
}

// WriteScalars writes a one-component data array.
func (w *Writer) WriteScalars(name string, data payload.Array) error {
	return w.WriteDataArray(name, 1, data)
}

// WriteVectors writes a three-component data array.
func (w *Writer) WriteVectors(name string, data payload.Array) error {
	return w.WriteDataArray(name, 3, data)
}
