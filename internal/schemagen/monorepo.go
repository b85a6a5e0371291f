// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package schemagen

import (
	"os"
	"path/filepath"
)

// monorepoKind identifies the JS/TS package-manager convention that defines
// a workspace layout. Go and Rust workspace conventions have no analog here:
// a generated schema.ts only ever needs to find the root of the Node project
// tree a script sandbox will run against.
type monorepoKind string

const (
	kindPnpm  monorepoKind = "pnpm"
	kindNpm   monorepoKind = "npm"
	kindLerna monorepoKind = "lerna"
	kindNx    monorepoKind = "nx"
)

// monorepoPackage is a single workspace member within a detected monorepo.
type monorepoPackage struct {
	Name string // basename or package name
	Path string // absolute path
	Rel  string // relative to monorepo root
}

// monorepoLayout describes a detected monorepo structure.
type monorepoLayout struct {
	Kind     monorepoKind
	Root     string
	Packages []monorepoPackage
}

// monorepoDetector attempts to detect a workspace layout at rootPath. It
// returns nil, nil when the expected manifest file is not present.
type monorepoDetector func(rootPath string) (*monorepoLayout, error)

// monorepoDetectors is the ordered list of detection functions. First match
// wins.
var monorepoDetectors = []monorepoDetector{
	detectPnpm,
	detectNpm,
	detectLerna,
	detectNx,
}

// detectMonorepo probes rootPath for a known JS/TS monorepo layout. It
// returns the first matching layout, or nil if none is detected.
func detectMonorepo(rootPath string) (*monorepoLayout, error) {
	abs, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	for _, fn := range monorepoDetectors {
		layout, err := fn(abs)
		if err != nil {
			return nil, err
		}
		if layout != nil {
			return layout, nil
		}
	}
	return nil, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
