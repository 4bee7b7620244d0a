// Package migrations embeds the goose SQL migrations so the server
// binary can run them without access to the source tree.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
