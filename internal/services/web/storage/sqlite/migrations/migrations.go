// Package migrations embeds the web service's SQL migrations.
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
