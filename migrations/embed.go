// Package migrations embeds the schema files so the binaries carry them.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
