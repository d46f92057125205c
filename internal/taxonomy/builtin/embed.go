// Package builtin embeds the category taxonomy document via go:embed.
package builtin

import "embed"

//go:embed *.md
var taxonomyDocs embed.FS

// FS returns the embedded filesystem containing the taxonomy document.
func FS() embed.FS {
	return taxonomyDocs
}
