// Package emit renders the Jasmine spec file of the extracted test records.
package emit

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/mna/suggestgen/internal/extract"
	"github.com/mna/suggestgen/internal/scanner"
	"github.com/mna/suggestgen/internal/token"
)

// Spec describes the Jasmine spec file to render.
type Spec struct {
	// Generator is the name of the generating tool, for the header comment.
	Generator string
	// Source is the source test file, for the header comment. Optional.
	Source string
	// AutosuggestModule is the module path of the autosuggest module under
	// test, relative to the spec file.
	AutosuggestModule string
	// ImportDir is the module path of the directory holding the generated
	// lexers and parsers, relative to the spec file.
	ImportDir string
	// Names are the identifiers of the unique grammars, one pair of lexer and
	// parser is imported for each, in order.
	Names []string
	// Records are the test cases, one it block is rendered for each, in
	// order.
	Records []*extract.Record
}

var tpl = func() *template.Template {
	t := template.New("file").Funcs(template.FuncMap{
		"expected": ExpectedList,
	})
	template.Must(t.Parse(fileTemplate))
	template.Must(t.New("case").Parse(caseTemplate))
	return t
}()

// Render writes the spec file to w.
func Render(w io.Writer, spec *Spec) error {
	return tpl.ExecuteTemplate(w, "file", spec)
}

// WriteFile renders the spec file and writes it to path, replacing any
// existing file.
func WriteFile(path string, spec *Spec) error {
	var buf bytes.Buffer
	if err := Render(&buf, spec); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ImportDir returns the module path to use to import the files in outDir
// from a module at outFile.
func ImportDir(outFile, outDir string) string {
	rel, err := filepath.Rel(filepath.Dir(outFile), outDir)
	if err != nil {
		abs, aerr := filepath.Abs(outDir)
		if aerr != nil {
			return filepath.ToSlash(outDir)
		}
		return filepath.ToSlash(abs)
	}

	rel = filepath.ToSlash(rel)
	if rel == "." || rel == ".." || strings.HasPrefix(rel, "../") {
		return rel
	}
	return "./" + rel
}

// ExpectedList returns the array literal of the expected suggestions. The
// output expression is a list of arguments, unless it is already a single
// array literal in which case it is returned as-is.
func ExpectedList(output string) string {
	if isArrayLiteral(output) {
		return output
	}
	return "[" + output + "]"
}

func isArrayLiteral(s string) bool {
	toks, err := scanner.ScanLine("", 1, s)
	if err != nil || len(toks) < 3 || toks[0].Token != token.LBRACK {
		return false
	}

	var depth int
	for i, tv := range toks {
		switch tv.Token {
		case token.LBRACK, token.LPAREN, token.LBRACE:
			depth++
		case token.RBRACK, token.RPAREN, token.RBRACE:
			depth--
			if depth == 0 {
				// the opening bracket must close on the last token
				return i == len(toks)-2
			}
		}
	}
	return false
}
