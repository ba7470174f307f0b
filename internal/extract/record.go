// Package extract loads the test records embedded in a Java autosuggest test
// file. Each relevant line is a single call chain of the form:
//
//	givenGrammar("r: A", "A: 'a'").withCasePreference(UPPER).whenInput("a").thenExpect("A");
//
// where the withCasePreference call is optional.
package extract

import (
	"strings"

	"github.com/mna/suggestgen/internal/token"
)

// Record is a single test case extracted from the source file.
type Record struct {
	// Grammar is the grammar source, its rules separated by "; " and
	// terminated by ";\n".
	Grammar string
	// Name is the identifier derived from Grammar.
	Name string
	// Input is the input text, as written in the source string literal.
	Input string
	// CasePreference is the case preference to set for the test, empty if
	// none.
	CasePreference string
	// Output is the expected output expression, copied verbatim.
	Output string

	Pos token.Position
}

var (
	embeddableGrammar = strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	embeddableInput   = strings.NewReplacer(`'`, `\'`)
)

// EmbeddableGrammar returns the grammar text trimmed of surrounding
// whitespace and escaped to be embedded in a single-quoted string literal.
func (r *Record) EmbeddableGrammar() string {
	return embeddableGrammar.Replace(strings.TrimSpace(r.Grammar))
}

// EmbeddableCasePreference returns the case preference escaped to be embedded
// in a single-quoted string literal, like EmbeddableInput.
func (r *Record) EmbeddableCasePreference() string {
	return embeddableInput.Replace(r.CasePreference)
}

// EmbeddableInput returns the input text escaped to be embedded in a
// single-quoted string literal. Escape sequences of the source are valid as
// they are.
func (r *Record) EmbeddableInput() string {
	return embeddableInput.Replace(r.Input)
}
