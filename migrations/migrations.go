// Package migrations embeds the SQL schema so every binary (server,
// admin tools, tests) can apply it without caring about its working
// directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
