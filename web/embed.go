// Package web embeds the HTML views and static assets.
package web

import (
	"embed"
	"io/fs"
)

//go:embed views static
var files embed.FS

// Views returns the template directory.
func Views() fs.FS {
	sub, err := fs.Sub(files, "views")
	if err != nil {
		panic(err)
	}
	return sub
}

// Static returns the static asset directory.
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
