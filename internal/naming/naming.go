// Package naming derives the identifiers used for generated grammar files and
// symbols, and keeps the ordered set of unique grammars of a run.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// substitutions are applied in order, "->" must come before the generic
// non-word replacement.
var substitutions = []struct {
	old, new string
}{
	{`'`, "_Q_"},
	{`+`, "_PLUS_"},
	{`*`, "_STAR_"},
	{`?`, "_QUES_"},
	{`(`, "_LPAR_"},
	{`)`, "_RPAR_"},
	{`->`, "_ARRW_"},
	{`\`, "_BS_"},
}

var rxNonWord = regexp.MustCompile(`\W`)

// Identifier returns the identifier derived from the grammar text. All
// whitespace is removed, the trailing statement terminator is dropped, known
// special characters are replaced by a readable token and any other non-word
// character is replaced by an underscore.
func Identifier(grammar string) string {
	name := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, grammar)

	// drop the statement terminator
	_, sz := utf8.DecodeLastRuneInString(name)
	name = name[:len(name)-sz]

	for _, sub := range substitutions {
		name = strings.ReplaceAll(name, sub.old, sub.new)
	}
	return rxNonWord.ReplaceAllString(name, "_")
}
