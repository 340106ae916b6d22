package language

import (
	"embed"
	"io/fs"
)

//go:embed languages
var bundledFS embed.FS

// Bundled returns the language definitions compiled into the binary.
func Bundled() fs.FS {
	sub, err := fs.Sub(bundledFS, "languages")
	if err != nil {
		panic(err)
	}
	return sub
}
