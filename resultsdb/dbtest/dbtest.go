// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dbtest opens empty summary databases for tests.
//
// By default each test gets a private in-memory SQLite database. With
//
//	go test -testdb 'mysql:root:@cloudsql(project:region:instance)/'
//
// each test instead creates a fresh database on that MySQL server
// (Cloud SQL DSNs are understood) and drops it when the test ends.
package dbtest

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"strings"
	"testing"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	"github.com/google/uuid"

	"github.com/vbparts/perfdata/resultsdb"
	_ "github.com/vbparts/perfdata/resultsdb/sqlite3"
)

var (
	testDB   = flag.String("testdb", "sqlite3::memory:", "run database tests against `driver:dsn`; a mysql dsn names the server, not a database")
	dbPrefix = flag.String("testdb-prefix", "perfdata_test_", "`prefix` of the databases created on a mysql server")
)

// parseTestDB splits the -testdb flag value.
func parseTestDB(v string) (driver, dsn string, err error) {
	driver, dsn, ok := strings.Cut(v, ":")
	if !ok || dsn == "" {
		return "", "", fmt.Errorf("-testdb %q: want driver:dsn", v)
	}
	switch driver {
	case "sqlite3", "mysql":
		return driver, dsn, nil
	}
	return "", "", fmt.Errorf("-testdb %q: unsupported driver %q", v, driver)
}

// mysqlDatabase creates a database named prefix plus a random suffix
// on server, and returns the DSN of the new database. It is
// dropped when t ends.
func mysqlDatabase(t *testing.T, server, prefix string) string {
	if !strings.HasSuffix(server, "/") {
		server += "/"
	}
	name := prefix + strings.ReplaceAll(uuid.NewString(), "-", "")

	admin, err := sql.Open("mysql", server)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := admin.Exec("CREATE DATABASE `" + name + "`"); err != nil {
		admin.Close()
		t.Fatalf("creating test database: %v", err)
	}
	t.Logf("using database %q", name)
	t.Cleanup(func() {
		defer admin.Close()
		if _, err := admin.Exec("DROP DATABASE `" + name + "`"); err != nil {
			t.Errorf("dropping test database: %v", err)
		}
	})
	return server + name
}

// NewDB opens an empty database chosen by the -testdb flag. The
// database is closed when the test finishes.
func NewDB(t *testing.T) *resultsdb.DB {
	t.Helper()
	driver, dsn, err := parseTestDB(*testDB)
	if err != nil {
		t.Fatal(err)
	}
	if driver == "mysql" {
		dsn = mysqlDatabase(t, dsn, *dbPrefix)
	}
	d, err := resultsdb.OpenSQL(driver, dsn)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })

	n, err := d.CountBatches(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("found %d row(s) in Batches, want 0", n)
	}
	return d
}
