package testing

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vvka-141/csvload/internal/db"
	"github.com/vvka-141/csvload/internal/testinfra"
	"github.com/vvka-141/csvload/pkg/csvload"

	_ "github.com/go-sql-driver/mysql"
)

// TestDSNEnv points integration tests at an existing server instead of a container.
const TestDSNEnv = "CSVLOAD_TEST_DSN"

var (
	testContainerOnce sync.Once
	testContainerDSN  string
	testContainerErr  error
)

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		container, err := testinfra.StartMySQL(context.Background())
		if err != nil {
			testContainerErr = err
			return
		}
		testContainerDSN = container.DSN
	})
	return testContainerDSN, testContainerErr
}

// GetTestDSN returns the test database DSN.
// Priority: CSVLOAD_TEST_DSN env var > auto-started testcontainer > skip test.
func GetTestDSN(t *testing.T) string {
	t.Helper()

	if dsn := os.Getenv(TestDSNEnv); dsn != "" {
		return dsn
	}

	dsn, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("%s not set and Docker unavailable: %v", TestDSNEnv, err)
	}
	return dsn
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestDSN for convenience.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestDSN(t)
}

// ConnectionConfig parses dsn into resolved connection parameters.
func ConnectionConfig(t *testing.T, dsn string) *csvload.ConnectionConfig {
	t.Helper()

	cfg, err := db.ParseDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to parse test DSN: %v", err)
	}
	return cfg
}

// Open returns a handle for verification queries, closed when the test ends.
func Open(t *testing.T, dsn string) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := conn.PingContext(context.Background()); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}
	return conn
}

// UniqueTable returns a table name no other test uses, and drops it when the test ends.
func UniqueTable(t *testing.T, conn *sqlx.DB, prefix string) string {
	t.Helper()

	name := fmt.Sprintf("%s_%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	t.Cleanup(func() {
		if _, err := conn.Exec(fmt.Sprintf("DROP TABLE IF EXISTS `%s`", name)); err != nil {
			t.Logf("Warning: Failed to drop table %s: %v", name, err)
		}
	})
	return name
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, conn *sqlx.DB, table string) int {
	t.Helper()

	var n int
	if err := conn.Get(&n, fmt.Sprintf("SELECT COUNT(*) FROM `%s`", table)); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return n
}

// ColumnNames lists table's columns in ordinal order.
func ColumnNames(t *testing.T, conn *sqlx.DB, table string) []string {
	t.Helper()

	var cols []string
	err := conn.Select(&cols, `SELECT COLUMN_NAME FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ? ORDER BY ORDINAL_POSITION`, table)
	if err != nil {
		t.Fatalf("Failed to list columns of %s: %v", table, err)
	}
	return cols
}
