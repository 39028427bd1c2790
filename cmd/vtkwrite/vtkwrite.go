// Vtkwrite is a driver and smoke-test tool for the vtkxml package. It
// writes demonstration mesh files in every configured output format,
// catalogs them in ClickHouse when a database is reachable, and publishes
// file-written events for monitoring clients.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/sbinet/npyio"
	"github.com/spf13/viper"
	"gonum.org/v1/gonum/floats"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/szaghi/vtkxml"
	"github.com/szaghi/vtkxml/internal/vtkdb"
	"github.com/szaghi/vtkxml/payload"
)

var githash = "githash not computed"
var buildDate = "build date not computed"

// makeFileExist checks that dir/filename exists, and creates the directory
// and file if it doesn't.
func makeFileExist(dir, filename string) (string, error) {
	if strings.Contains(dir, "$HOME") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = strings.Replace(dir, "$HOME", home, 1)
	}
	if _, err := os.Stat(dir); err != nil {
		if !os.IsNotExist(err) {
			return "", err
		}
		if err2 := os.MkdirAll(dir, 0775); err2 != nil {
			return "", err2
		}
	}
	fullname := path.Join(dir, filename)
	if _, err := os.Stat(fullname); os.IsNotExist(err) {
		f, err2 := os.OpenFile(fullname, os.O_WRONLY|os.O_CREATE, 0664)
		if err2 != nil {
			return "", err2
		}
		f.Close()
	}
	return fullname, nil
}

// setupViper sets up the viper configuration manager: says where to find
// config files and the filename and suffix. Sets some defaults.
func setupViper() error {
	viper.SetDefault("directory", ".")
	viper.SetDefault("formats", []string{"ASCII", "BINARY", "RAW", "BINARY-APPENDED"})
	viper.SetDefault("nx", 10)
	viper.SetDefault("ny", 10)
	viper.SetDefault("nz", 10)
	viper.SetDefault("statusport", 0)
	viper.SetDefault("problemlog", "vtkwrite_problems.log")

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Printf("Error finding User Home Dir: %s\n", err)
	}
	dotVtkxml := filepath.Join(home, ".vtkxml")
	const filename string = "config"
	const suffix string = ".yaml"
	if _, err := makeFileExist(dotVtkxml, filename+suffix); err != nil {
		return err
	}
	viper.SetConfigName(filename)
	viper.AddConfigPath(filepath.FromSlash("/etc/vtkxml"))
	viper.AddConfigPath(dotVtkxml)
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("error reading config file: %s", err)
	}
	return nil
}

func startLogger(pfname string) *log.Logger {
	probLogger := log.New(os.Stderr, "", log.LstdFlags)
	probLogger.SetOutput(&lumberjack.Logger{
		Filename:   pfname,
		MaxSize:    10,  // megabytes after which new file is created
		MaxBackups: 4,   // number of backups
		MaxAge:     180, // days
	})
	return probLogger
}

// demoField evaluates a radial field on the grid nodes, or loads one from a
// .npy file when fieldPath is set.
func demoField(x, y, z []float64, fieldPath string) ([]float64, error) {
	n := len(x) * len(y) * len(z)
	if fieldPath != "" {
		f, err := os.Open(fieldPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		var field []float64
		if err := npyio.Read(f, &field); err != nil {
			return nil, err
		}
		if len(field) != n {
			return nil, fmt.Errorf("field file %s holds %d values, grid has %d nodes",
				fieldPath, len(field), n)
		}
		return field, nil
	}
	field := make([]float64, 0, n)
	for _, zv := range z {
		for _, yv := range y {
			for _, xv := range x {
				field = append(field, math.Sqrt(xv*xv+yv*yv+zv*zv))
			}
		}
	}
	return field, nil
}

func writeRectilinear(run *vtkxml.WritingRun, dir, format string, x, y, z, field []float64) error {
	name := fmt.Sprintf("demo_%s.vtr", strings.ToLower(format))
	w, err := vtkxml.NewWriter(format, "RectilinearGrid", filepath.Join(dir, name),
		0, len(x)-1, 0, len(y)-1, 0, len(z)-1)
	if err != nil {
		return err
	}
	w.WritePieceStart()
	w.WriteCoordinates(x, y, z)
	w.OpenPointData()
	w.WriteScalars("radius", payload.Float64s(field))
	w.ClosePointData()
	w.WritePieceEnd()
	if err := w.Finalize(); err != nil {
		return err
	}
	return run.NoteFile(w)
}

// writeUnstructured exports a single hexahedral cell, mostly to exercise
// the Points/Cells path.
func writeUnstructured(run *vtkxml.WritingRun, dir, format string) error {
	name := fmt.Sprintf("demo_%s.vtu", strings.ToLower(format))
	w, err := vtkxml.NewWriter(format, "UnstructuredGrid", filepath.Join(dir, name))
	if err != nil {
		return err
	}
	xyz := []float64{
		0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0,
		0, 0, 1, 1, 0, 1, 1, 1, 1, 0, 1, 1,
	}
	w.WritePieceStart(0, 0, 0, 0, 0, 0)
	w.WritePoints(xyz)
	const vtkHexahedron = 12
	w.WriteCells([]int32{0, 1, 2, 3, 4, 5, 6, 7}, []int32{8}, []int8{vtkHexahedron})
	w.WritePieceEnd()
	if err := w.Finalize(); err != nil {
		return err
	}
	return run.NoteFile(w)
}

func main() {
	printVersion := flag.Bool("version", false, "print version and quit")
	pingdb := flag.Bool("ping", false, "ping the catalog database and quit")
	fieldPath := flag.String("field", "", "load point data from this .npy file instead of the demo field")
	flag.Parse()

	if *printVersion {
		fmt.Printf("This is vtkwrite version %s\n", vtkxml.Build.Version)
		fmt.Printf("Git commit hash: %s\n", githash)
		fmt.Printf("Build time: %s\n", buildDate)
		os.Exit(0)
	}
	if *pingdb {
		if err := vtkdb.PingServer(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}

	if err := setupViper(); err != nil {
		log.Fatal(err)
	}
	vtkxml.ProblemLogger = startLogger(viper.GetString("problemlog"))

	nx, ny, nz := viper.GetInt("nx"), viper.GetInt("ny"), viper.GetInt("nz")
	x := make([]float64, nx+1)
	y := make([]float64, ny+1)
	z := make([]float64, nz+1)
	floats.Span(x, 0, 1)
	floats.Span(y, 0, 1)
	floats.Span(z, 0, 1)
	field, err := demoField(x, y, z, *fieldPath)
	if err != nil {
		log.Fatal(err)
	}

	abort := make(chan struct{})
	defer close(abort)
	db := vtkdb.Start(abort)

	dir := viper.GetString("directory")
	run, err := vtkxml.StartRun(dir, db, viper.GetInt("statusport"))
	if err != nil {
		log.Fatal(err)
	}
	for _, format := range viper.GetStringSlice("formats") {
		if err := writeRectilinear(run, dir, format, x, y, z, field); err != nil {
			vtkxml.ProblemLogger.Printf("rectilinear %s export failed: %v", format, err)
			log.Fatal(err)
		}
		if err := writeUnstructured(run, dir, format); err != nil {
			vtkxml.ProblemLogger.Printf("unstructured %s export failed: %v", format, err)
			log.Fatal(err)
		}
	}
	if err := run.Stop(); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Run %s wrote %d files (%d bytes) into %s\n",
		run.ID, run.FilesWritten, run.BytesWritten, dir)
}
