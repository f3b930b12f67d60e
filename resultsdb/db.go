// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultsdb stores run summaries in a SQL database so that
// batches of captures can be compared after the fact.
package resultsdb

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/vbparts/perfdata/benchmath"
	"github.com/vbparts/perfdata/benchname"
)

// DB is a high-level interface to a summary database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertBatch *sql.Stmt
	insertRun   *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// supported.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Batches (
	BatchID VARCHAR(36) PRIMARY KEY,
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS Runs (
	BatchID VARCHAR(36),
	RunID BIGINT,
	File VARCHAR(255),
	Fingerprint CHAR(16),
	Name VARCHAR(255),
	Kind VARCHAR(32),
	N INT,
	Min DOUBLE PRECISION,
	Q1 DOUBLE PRECISION,
	Median DOUBLE PRECISION,
	Q3 DOUBLE PRECISION,
	Max DOUBLE PRECISION,
	Average DOUBLE PRECISION,
	PRIMARY KEY (BatchID, RunID),
{{if not .sqlite3}}
	Index (Name(100)),
{{end}}
	FOREIGN KEY (BatchID) REFERENCES Batches(BatchID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RunsName ON Runs(Name);
{{end}}
`))

func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	db.insertBatch, err = db.sql.Prepare("INSERT INTO Batches(BatchID, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertRun, err = db.sql.Prepare("INSERT INTO Runs(BatchID, RunID, File, Fingerprint, Name, Kind, N, Min, Q1, Median, Q3, Max, Average) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	return err
}

// now is a hook for testing
var now = time.Now

// A Run is one stored run summary.
type Run struct {
	File        string // input ID
	Fingerprint string // of the input's content
	Name        string // test name
	Kind        benchname.DataType
	Summary     benchmath.Summary
}

// A Batch is a set of runs stored by one pipeline invocation. Its runs
// become visible when it is committed.
type Batch struct {
	// ID is the batch's random identifier.
	ID      string
	Created time.Time

	// runid is the index of the next run to insert.
	runid int64
	db    *DB
	tx    *sql.Tx
}

// NewBatch returns a batch for storing new runs.
func (db *DB) NewBatch(ctx context.Context) (*Batch, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	b := &Batch{ID: uuid.NewString(), Created: now().UTC().Truncate(time.Second), db: db, tx: tx}
	if _, err := tx.StmtContext(ctx, db.insertBatch).ExecContext(ctx, b.ID, b.Created.Unix()); err != nil {
		tx.Rollback()
		return nil, err
	}
	return b, nil
}

// InsertRun adds r to the batch.
func (b *Batch) InsertRun(ctx context.Context, r *Run) error {
	s := &r.Summary
	_, err := b.tx.StmtContext(ctx, b.db.insertRun).ExecContext(ctx,
		b.ID, b.runid, r.File, r.Fingerprint, r.Name, r.Kind.String(),
		s.N, s.Min, s.Q1, s.Median, s.Q3, s.Max, s.Average)
	if err != nil {
		return err
	}
	b.runid++
	return nil
}

// Len returns the number of runs inserted so far.
func (b *Batch) Len() int {
	return int(b.runid)
}

// Commit stores the batch.
func (b *Batch) Commit() error {
	return b.tx.Commit()
}

// Abort discards the batch. It is a no-op after Commit.
func (b *Batch) Abort() error {
	if err := b.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return err
	}
	return nil
}

// CountBatches returns the number of committed batches.
func (db *DB) CountBatches(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Batches").Scan(&n)
	return n, err
}

// ListBatches returns the IDs of committed batches, newest first.
func (db *DB) ListBatches(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT BatchID FROM Batches ORDER BY Created DESC, BatchID")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListRuns returns the runs of batch id in insertion order.
func (db *DB) ListRuns(ctx context.Context, id string) ([]Run, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT File, Fingerprint, Name, Kind, N, Min, Q1, Median, Q3, Max, Average FROM Runs WHERE BatchID = ? ORDER BY RunID", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var runs []Run
	for rows.Next() {
		var r Run
		var kind string
		s := &r.Summary
		if err := rows.Scan(&r.File, &r.Fingerprint, &r.Name, &kind, &s.N, &s.Min, &s.Q1, &s.Median, &s.Q3, &s.Max, &s.Average); err != nil {
			return nil, err
		}
		r.Kind = benchname.ParseDataType(kind)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertBatch.Close(); err != nil {
		return err
	}
	if err := db.insertRun.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
