//go:build mage

/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package main provides build targets for the assoc module using Mage.
//
// Usage:
//
//	mage build        Compile the assoc binary to bin/
//	mage test         Run all tests
//	mage race         Run all tests with the race detector
//	mage cover        Write coverage to bin/cover.out and print a summary
//	mage sql          Run the store conformance tests against MySQL and PostgreSQL
//	mage lint         Run golangci-lint
//	mage clean        Remove build artifacts
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "assoc"
	binaryDir  = "bin"
	cmdDir     = "./cmd/assoc"
)

// Build compiles the assoc binary to bin/, stamping the git version.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := "-X main.version=" + gitVersion()
	return sh.RunV("go", "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Race runs all tests with the race detector.
func Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

// Cover writes a coverage profile to bin/ and prints per-function totals.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, "cover.out")
	if err := sh.RunV("go", "test", "-coverprofile", profile, "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func", profile)
}

// SQL runs the sqlstore tests against the servers named by ASSOC_MYSQL_DSN
// and ASSOC_POSTGRES_DSN. At least one must be set.
func SQL() error {
	env := map[string]string{}
	for _, key := range []string{"ASSOC_MYSQL_DSN", "ASSOC_POSTGRES_DSN"} {
		if v := os.Getenv(key); v != "" {
			env[key] = v
		}
	}
	if len(env) == 0 {
		return fmt.Errorf("set ASSOC_MYSQL_DSN or ASSOC_POSTGRES_DSN")
	}
	return sh.RunWithV(env, "go", "test", "-count=1", "./store/sqlstore/...")
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV("go", "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output("go", "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), filepath.Join(binaryDir, binaryName))
}

func gitVersion() string {
	out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || strings.TrimSpace(out) == "" {
		return "dev"
	}
	return strings.TrimSpace(out)
}
