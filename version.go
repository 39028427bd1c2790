// Package vtkxml writes mesh geometry and field data in the VTK XML
// interchange formats (.vtr, .vts, .vtu) used by visualization tools such
// as ParaView and VisIt. A Writer drives one output file through its
// lifecycle: NewWriter emits the XML prologue, the piece / data-array
// methods emit structural tags (staging appended payloads on a scratch
// log), and Finalize drains the staged payloads and closes the document.
package vtkxml

import (
	"log"
	"os"
)

// BuildInfo can contain compile-time information about the build
type BuildInfo struct {
	Version string
	Githash string
	Date    string
}

// Build is a global holding compile-time information about the build
var Build = BuildInfo{
	Version: "0.9.0",
	Githash: "no git hash computed",
	Date:    "no build date computed",
}

// ProblemLogger will log warning messages to a file
var ProblemLogger *log.Logger

func init() {
	// The vtkwrite main program will override this, but at least
	// initialize with a sensible value.
	ProblemLogger = log.New(os.Stderr, "", log.LstdFlags)
}
