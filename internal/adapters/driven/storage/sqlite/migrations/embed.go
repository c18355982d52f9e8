// Package migrations embeds SQL migration files for the SQLite store.
package migrations

import "embed"

// FS holds the NNN_name.up.sql / .down.sql pairs, applied in version order.
//
//go:embed *.sql
var FS embed.FS
