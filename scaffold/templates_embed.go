// Package scaffold provides embedded starter files for project initialization.
package scaffold

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tree
var templatesFS embed.FS

// TemplatesFS exposes the embedded starter files.
func TemplatesFS() fs.FS {
	return templatesFS
}
