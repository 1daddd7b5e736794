// Package assets embeds the default dictionary and the SQLite migrations.
package assets

import (
	"embed"
	"io/fs"
)

// DictionaryFile is the name of the embedded default word list.
const DictionaryFile = "dictionary.txt"

//go:embed dictionary.txt sql/*.sql
var FS embed.FS

// Migrations returns the embedded sql directory as its own file system.
func Migrations() fs.FS {
	sub, err := fs.Sub(FS, "sql")
	if err != nil {
		// sql/ is embedded at build time; Sub only fails on a bad pattern.
		panic(err)
	}
	return sub
}
