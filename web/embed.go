// Package web embeds the HTML templates and static assets served by
// internal/web.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static templates
var content embed.FS

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		panic("web: embedded " + dir + " directory missing: " + err.Error())
	}
	return sub
}

// StaticFS returns the static file system.
func StaticFS() fs.FS { return mustSub("static") }

// TemplatesFS returns the templates file system.
func TemplatesFS() fs.FS { return mustSub("templates") }
