//go:build mage

// Package main provides build targets for ynab-export using Mage.
//
// Usage:
//
//	mage build    Compile the ynab-export binary to bin/
//	mage test     Run all tests
//	mage cover    Run all tests and write bin/coverage.out
//	mage lint     Run golangci-lint
//	mage schema   Write bin/schema.sql from the built binary
//	mage clean    Remove build artifacts
//	mage install  Install ynab-export to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "ynab-export"
	binaryDir  = "bin"
	cmdDir     = "./cmd/ynab-export"
	versionVar = "github.com/mesh-intelligence/ynab-export/internal/cli.Version"
)

// Build compiles the ynab-export binary to bin/. VERSION, when set, is
// stamped into the binary.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if v := os.Getenv("VERSION"); v != "" {
		args = append(args, "-ldflags", "-X "+versionVar+"="+v)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs all tests with coverage enabled.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "coverage.out")
	if err := sh.RunV(binGo, "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", profile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Schema writes the table schema printed by the binary to bin/schema.sql.
func Schema() error {
	mg.Deps(Build)
	out, err := sh.Output(filepath.Join(binaryDir, binaryName), "schema")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(binaryDir, "schema.sql"), []byte(out+"\n"), 0o644)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
