package assets

import (
	"embed"
	"io"
)

//go:embed words.txt
var FS embed.FS

// Vocabulary opens the embedded default word list.
func Vocabulary() (io.ReadCloser, error) {
	return FS.Open("words.txt")
}
