// Package migrations holds the goose SQL migrations for the collection-hub schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
