// Package migrations embeds SQL migration files.
package migrations

import "embed"

// FS contains the schema migrations, as pairs of *_up.sql / *_down.sql
// applied in lexicographic order.
//
//go:embed *.sql
var FS embed.FS
