//go:build mage

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Default target to run when none is specified
var Default = Build

var binaries = []string{"create-table", "insert-table"}

func ldflags() string {
	version := os.Getenv("VERSION")
	if version == "" {
		version = "dev"
	}
	commit, err := sh.Output("git", "rev-parse", "--short", "HEAD")
	if err != nil {
		commit = "unknown"
	}
	pkg := "github.com/vvka-141/csvload/internal/cli"
	return fmt.Sprintf("-s -w -X %s.version=%s -X %s.commit=%s -X %s.date=%s",
		pkg, version, pkg, commit, pkg, time.Now().UTC().Format(time.RFC3339))
}

// Build compiles create-table and insert-table into bin/.
func Build() error {
	fmt.Println("Building...")
	flags := ldflags()
	for _, name := range binaries {
		if err := sh.Run("go", "build", "-ldflags", flags, "-o", "bin/"+name, "./cmd/"+name); err != nil {
			return err
		}
	}
	return nil
}

// Test runs unit tests only (no Docker needed).
func Test() error {
	fmt.Println("Running unit tests...")
	return sh.RunV("go", "test", "-short", "./...")
}

// Integration runs every test, starting a MySQL container unless CSVLOAD_TEST_DSN is set.
func Integration() error {
	fmt.Println("Running integration tests...")
	return sh.RunV("go", "test", "-count=1", "./...")
}

// Clean removes build output and leftover artifacts.
func Clean() error {
	fmt.Println("Cleaning...")
	for _, path := range []string{"bin", "create_table.sql", "output.json"} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return nil
}

// Tidy runs go mod tidy.
func Tidy() error {
	fmt.Println("Running go mod tidy...")
	return sh.Run("go", "mod", "tidy")
}

// Check runs formatting and linting checks (fmt, vet).
func Check() error {
	mg.Deps(Fmt, Vet)
	return nil
}

// Fmt runs go fmt ./...
func Fmt() error {
	fmt.Println("Running go fmt...")
	return sh.Run("go", "fmt", "./...")
}

// Vet runs go vet ./...
func Vet() error {
	fmt.Println("Running go vet...")
	return sh.Run("go", "vet", "./...")
}
