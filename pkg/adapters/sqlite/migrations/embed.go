// Package migrations embeds the schema migration files for the sqlite
// store.
package migrations

import "embed"

// FS holds the ordered .sql migration files.
//
//go:embed *.sql
var FS embed.FS
