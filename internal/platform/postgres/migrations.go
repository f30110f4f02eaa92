package postgres

import (
	"embed"
	"io/fs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsFS returns the embedded goose migration files. The server
// applies them at startup so the binary carries its own schema.
func MigrationsFS() fs.FS {
	return migrationsFS
}
