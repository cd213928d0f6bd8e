// Package migrations embeds the PostgreSQL schema migrations. Each
// NNNNNN_name.sql file has a matching NNNNNN_name_rollback.sql.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
