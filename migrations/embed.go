// Package migrations embeds the SQL migrations for the postgres history backend.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
