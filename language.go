package main

import (
	"path/filepath"

	"github.com/alecthomas/chroma/v2/lexers"
)

// languageForFile names the language of a file from its file name, or ""
// when no lexer claims it.
func languageForFile(path string) string {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		return ""
	}
	return lexer.Config().Name
}
