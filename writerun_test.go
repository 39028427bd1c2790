package vtkxml

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/szaghi/vtkxml/payload"
)

// A run with no database and no status port still assigns IDs and counts
// the files it coordinates.
func TestWritingRunCounters(t *testing.T) {
	dir := t.TempDir()
	run, err := StartRun(dir, nil, 0)
	assert.NoError(t, err)
	assert.Len(t, run.ID, 26, "run IDs are ULIDs")

	for i, format := range []string{"ASCII", "RAW"} {
		name := filepath.Join(dir, "f"+format+".vtu")
		w, err := NewWriter(format, "UnstructuredGrid", name)
		assert.NoError(t, err)
		assert.NoError(t, w.WriteDataArray("d", 1, payload.Float64s([]float64{1, 2})))
		assert.NoError(t, w.Finalize())
		assert.NoError(t, run.NoteFile(w))
		assert.Equal(t, i+1, run.FilesWritten)
	}
	assert.Greater(t, run.BytesWritten, int64(0))
	assert.NoError(t, run.Stop())
}
