// Package web ships the browser conversation view inside the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var staticFS embed.FS

func Assets() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
