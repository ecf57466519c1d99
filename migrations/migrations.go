// Package migrations embeds the SQL schema migrations so they can be applied
// at startup and from test helpers without depending on the working directory.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
