package vtkxml

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagWriterOutput(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	tw := newTagWriter(bw)

	tw.line(`<?xml version="1.0"?>`)
	tw.openTag("VTKFile", `type="RectilinearGrid"`)
	tw.openTag("RectilinearGrid", `WholeExtent="0 2 0 2 0 1"`)
	tw.contentTag("DataArray", `Name="x"`, "1.0 2.0")
	tw.emptyTag("DataArray", `Name="y" offset="0"`)
	tw.closeTag("RectilinearGrid")
	tw.closeTag("VTKFile")
	assert.NoError(t, tw.lastErr())
	assert.NoError(t, bw.Flush())

	want := `<?xml version="1.0"?>
<VTKFile type="RectilinearGrid">
  <RectilinearGrid WholeExtent="0 2 0 2 0 1">
    <DataArray Name="x">
      1.0 2.0
    </DataArray>
    <DataArray Name="y" offset="0"/>
  </RectilinearGrid>
</VTKFile>
`
	assert.Equal(t, want, buf.String())
}

func TestTagWriterIndentInvariant(t *testing.T) {
	var buf bytes.Buffer
	tw := newTagWriter(bufio.NewWriter(&buf))

	// Any balanced sequence of start/end tags restores the indent.
	before := tw.indent
	tw.openTag("A", "")
	tw.openTag("B", "")
	tw.emptyTag("C", "")
	tw.contentTag("D", "", "x")
	tw.closeTag("B")
	tw.openTag("B", "")
	tw.closeTag("B")
	tw.closeTag("A")
	assert.Equal(t, before, tw.indent)

	// The indent never goes negative, even for unbalanced closes.
	tw.closeTag("A")
	tw.closeTag("A")
	assert.Equal(t, 0, tw.indent)
}
