// Package db carries the embedded SQL migrations.
package db

import "embed"

//go:embed migrations
var Migrations embed.FS
