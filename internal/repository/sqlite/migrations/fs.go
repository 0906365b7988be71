package migrations

import "embed"

// FS holds the embedded SQL migration files, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
