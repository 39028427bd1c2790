// Package vtkdb records export runs and the mesh files they write to a
// ClickHouse database, so downstream analysis can find simulation output
// without crawling directories.
package vtkdb

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
)

const databaseName = "vtkxml" // official SQL name of the database

// Connection is a handle to the catalog database. A nil or unconnected
// Connection is valid: every Record* call on it is a no-op, so a missing
// database never fails a write run.
type Connection struct {
	conn    clickhouse.Conn
	err     error
	runmsg  chan *RunMessage
	filemsg chan *FileMessage
	sync.WaitGroup
}

// IsConnected reports whether the database is reachable.
func (db *Connection) IsConnected() bool {
	return (db != nil) && (db.conn != nil) && (db.err == nil)
}

// PingServer opens a connection, pings it, and reports the server version.
func PingServer() error {
	db := createConnection()
	if !db.IsConnected() {
		return fmt.Errorf("database is not connected")
	}
	v, err := db.conn.ServerVersion()
	if err != nil {
		return err
	}
	fmt.Printf("ClickHouse server is alive. Version:\n%s\n", v)
	return db.conn.Close()
}

// Start opens the catalog connection and launches its message handler. The
// handler runs until abort is closed.
func Start(abort <-chan struct{}) *Connection {
	db := createConnection()
	if db.IsConnected() {
		go db.handleConnection(abort)
	}
	return db
}

func createConnection() *Connection {
	db := &Connection{}
	auth := clickhouse.Auth{
		Database: databaseName,
		Username: os.Getenv("VTKXML_DB_USER"),
		Password: os.Getenv("VTKXML_DB_PASSWORD"),
	}
	addr := os.Getenv("VTKXML_DB_ADDR")
	if addr == "" {
		addr = "localhost:9000"
	}
	opt := clickhouse.Options{
		Addr: []string{addr},
		Auth: auth,
	}
	conn, err := clickhouse.Open(&opt)
	if err != nil {
		db.err = err
		return db
	}
	db.conn = conn

	ctx := context.Background()
	if err = conn.Ping(ctx); err != nil {
		if exception, ok := err.(*clickhouse.Exception); ok {
			fmt.Printf("Exception [%d] %s \n%s\n", exception.Code, exception.Message, exception.StackTrace)
		}
		db.err = err
		return db
	}

	db.runmsg = make(chan *RunMessage)
	db.filemsg = make(chan *FileMessage)
	db.Add(1)
	return db
}

func (db *Connection) handleConnection(abort <-chan struct{}) {
	defer db.Done()
	for {
		select {
		case <-abort:
			db.Disconnect()
			return
		case rmsg := <-db.runmsg:
			db.handleRunMessage(rmsg)
		case fmsg := <-db.filemsg:
			db.handleFileMessage(fmsg)
		}
	}
}

// Disconnect closes the database connection.
func (db *Connection) Disconnect() {
	if db.IsConnected() {
		db.conn.Close()
	}
}

// RecordRun stores a run entry in the DB (if it's open). This call blocks
// until the handler accepts the message, which guarantees the run row
// exists before any of its file rows arrive.
func (db *Connection) RecordRun(msg *RunMessage) {
	if !db.IsConnected() || msg == nil {
		return
	}
	db.runmsg <- msg
}

// FinishRun updates the run entry with its end time, asynchronously.
func (db *Connection) FinishRun(msg *RunMessage) {
	if !db.IsConnected() || msg == nil {
		return
	}
	msg.End = time.Now()
	go func() { db.runmsg <- msg }()
}

// RecordFile stores a written-file entry in the DB (if it's open),
// asynchronously.
func (db *Connection) RecordFile(msg *FileMessage) {
	if !db.IsConnected() || msg == nil {
		return
	}
	go func() { db.filemsg <- msg }()
}

const timeFormat = "2006-01-02 15:04:05.000000"

func (db *Connection) handleRunMessage(m *RunMessage) {
	if !db.IsConnected() {
		return
	}
	ctx := context.Background()
	const nowait = false
	if err := db.conn.AsyncInsert(ctx, `INSERT INTO vtkruns VALUES (?, ?, ?, ?, ?, ?, ?)`, nowait,
		m.ID, m.Hostname, m.Version, m.GoVersion, m.Directory,
		m.Start.Format(timeFormat), m.End.Format(timeFormat),
	); err != nil {
		fmt.Println("Error raised on AsyncInsert into vtkruns ", err)
		db.err = err
	}
}

func (db *Connection) handleFileMessage(m *FileMessage) {
	if !db.IsConnected() {
		return
	}
	ctx := context.Background()
	const nowait = false
	if err := db.conn.AsyncInsert(ctx, `INSERT INTO vtkfiles VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, nowait,
		m.RunID, m.Filename, m.Topology, m.Format, m.Arrays, m.Size,
		m.Start.Format(timeFormat), m.End.Format(timeFormat),
	); err != nil {
		fmt.Println("Error raised on AsyncInsert into vtkfiles ", err)
		db.err = err
	}
}
