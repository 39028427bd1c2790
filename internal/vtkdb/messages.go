package vtkdb

import "time"

// The composite types used for messages to the ClickHouse database.

// RunMessage is the information required to make an entry in the vtkruns
// table: one row per export run.
type RunMessage struct {
	ID        string
	Hostname  string
	Version   string
	GoVersion string
	Directory string
	Start     time.Time
	End       time.Time
}

// FileMessage is the information required to make an entry in the vtkfiles
// table: one row per mesh file written.
type FileMessage struct {
	RunID    string
	Filename string
	Topology string
	Format   string
	Arrays   int
	Size     int64
	Start    time.Time
	End      time.Time
}
