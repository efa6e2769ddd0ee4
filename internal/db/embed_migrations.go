package db

import "embed"

// MigrationFS embeds the SQL migrations applied at startup.
//
//go:embed migrations/*.sql
var MigrationFS embed.FS
