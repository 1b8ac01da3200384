// Package migrations embute os arquivos SQL do goose. O mesmo conjunto roda
// em PostgreSQL e MySQL.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
