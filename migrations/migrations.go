// Package migrations expone el esquema SQL embebido para aplicarlo desde la CLI.
package migrations

import "embed"

// Files contiene los scripts en orden lexicográfico (001_, 002_, ...).
//
//go:embed *.sql
var Files embed.FS
