// data/embed.go

// Package data bundles the default ship, component and interface assets.
package data

import "embed"

// FS holds the bundled data tree rooted at this directory.
//
//go:embed components objects ships
var FS embed.FS
