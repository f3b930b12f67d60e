// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for resultsdb.
// Importing it for its side effect allows resultsdb.OpenSQL("sqlite3", ...).
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vbparts/perfdata/resultsdb"
)

func init() {
	resultsdb.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// An in-memory database exists only as long as its single
		// connection does, and foreign keys are a per-connection
		// setting.
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	})
}
