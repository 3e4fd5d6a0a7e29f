//go:build mage

// Package main provides build targets for the flatshare project using Mage.
//
// Usage:
//
//	mage build             Compile flatctl to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude tests/)
//	mage test:integration  Build, then run the binary-driven tests
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install flatctl to GOPATH/bin
//	mage stats             Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "flatctl"
	binaryDir  = "bin"
	cmdDir     = "./cmd/flatctl"
	versionVar = "github.com/mesh-intelligence/flatshare/internal/cli.Version"
)

// Default runs when mage is invoked without a target.
var Default = Build

// ldflags stamps the version from FLATSHARE_VERSION when set.
func ldflags() string {
	v := os.Getenv("FLATSHARE_VERSION")
	if v == "" {
		return ""
	}
	return "-X " + versionVar + "=" + v
}

// Build compiles the flatctl binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if f := ldflags(); f != "" {
		args = append(args, "-ldflags", f)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
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
