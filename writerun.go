package vtkxml

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	zmq "github.com/pebbe/zmq4"

	"github.com/szaghi/vtkxml/internal/vtkdb"
)

// WritingRun coordinates the writer sessions belonging to one export run.
// It assigns the run its ULID, counts files and bytes, records every
// finalized file in the ClickHouse catalog (best effort: a missing database
// never fails a write), and publishes file-written events on a ZeroMQ PUB
// socket for any monitoring clients.
type WritingRun struct {
	ID           string
	Directory    string
	FilesWritten int
	BytesWritten int64

	runmsg *vtkdb.RunMessage
	db     *vtkdb.Connection
	pub    *zmq.Socket
	sync.Mutex
}

// FileEvent is the JSON message published for each finalized file.
type FileEvent struct {
	Run      string
	Filename string
	Topology string
	Format   string
	Arrays   int
	Bytes    int64
}

// StartRun begins an export run writing into directory. db may be nil or
// unconnected. If statusPort is positive, a PUB socket is bound to it and
// file events are published there.
func StartRun(directory string, db *vtkdb.Connection, statusPort int) (*WritingRun, error) {
	r := &WritingRun{
		ID:        ulid.Make().String(),
		Directory: directory,
		db:        db,
	}
	if statusPort > 0 {
		pub, err := zmq.NewSocket(zmq.PUB)
		if err != nil {
			return nil, err
		}
		if err := pub.Bind(fmt.Sprintf("tcp://*:%d", statusPort)); err != nil {
			pub.Close()
			return nil, err
		}
		r.pub = pub
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "host not detected"
	}
	r.runmsg = &vtkdb.RunMessage{
		ID:        r.ID,
		Hostname:  hostname,
		Version:   Build.Version,
		GoVersion: runtime.Version(),
		Directory: directory,
		Start:     time.Now(),
	}
	// Blocks until the run row is accepted, so file rows never precede it.
	db.RecordRun(r.runmsg)
	return r, nil
}

// NoteFile records one finalized writer session: catalog row, counters, and
// a published file event. Call it after Finalize has returned.
func (r *WritingRun) NoteFile(w *Writer) error {
	info, err := os.Stat(w.Filename)
	if err != nil {
		return err
	}
	r.Lock()
	r.FilesWritten++
	r.BytesWritten += info.Size()
	r.Unlock()

	r.db.RecordFile(&vtkdb.FileMessage{
		RunID:    r.ID,
		Filename: w.Filename,
		Topology: w.Topology.String(),
		Format:   w.Format.attribute(),
		Arrays:   w.arrays,
		Size:     info.Size(),
		Start:    w.created,
		End:      time.Now(),
	})

	if r.pub != nil {
		msg, err := json.Marshal(FileEvent{
			Run:      r.ID,
			Filename: w.Filename,
			Topology: w.Topology.String(),
			Format:   w.Format.attribute(),
			Arrays:   w.arrays,
			Bytes:    info.Size(),
		})
		if err != nil {
			return err
		}
		if _, err := r.pub.SendMessage("FILE", string(msg)); err != nil {
			return err
		}
	}
	return nil
}

// Stop ends the run: the catalog row gets its end time and the status
// socket is closed.
func (r *WritingRun) Stop() error {
	r.db.FinishRun(r.runmsg)
	if r.pub != nil {
		err := r.pub.Close()
		r.pub = nil
		return err
	}
	return nil
}
