// Package materialize generates the parser and lexer sources of the test
// grammars and collects them in the output directory.
package materialize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mna/suggestgen/internal/naming"
)

const (
	// GrammarExt is the extension of the generated grammar files.
	GrammarExt = ".g4"

	// collected files, lexers, parsers and listeners
	artifactPattern = "*er.js"
	lexerPattern    = "*Lexer.js"
)

// atnPatch exposes the ATN of a generated lexer, which the JavaScript target
// does not do. The generated lexer module holds it in a top-level atn
// variable.
const atnPatch = `Object.defineProperty(%s.prototype, "atn", {
	get : function() {
		return atn;
	}
});

`

// Materializer writes grammar files in a scratch directory, compiles them and
// collects the generated code in the output directory.
type Materializer struct {
	ScratchDir string
	OutDir     string
	Compiler   Compiler

	// Logger receives progress messages, if nil nothing is logged.
	Logger *slog.Logger
}

// NewScratch creates a new scratch directory and returns its path along with
// a function that removes it.
func NewScratch() (string, func() error, error) {
	dir, err := os.MkdirTemp("", "suggestgen-")
	if err != nil {
		return "", nil, err
	}
	return dir, func() error { return os.RemoveAll(dir) }, nil
}

func (m *Materializer) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return m.Logger
}

// Run generates and compiles each grammar in order, then collects the
// generated code in OutDir and patches the lexers. It returns the paths of
// the collected files. It stops at the first error.
func (m *Materializer) Run(ctx context.Context, grammars []string) ([]string, error) {
	for _, g := range grammars {
		if err := m.Generate(ctx, g); err != nil {
			return nil, err
		}
	}

	files, err := m.Collect()
	if err != nil {
		return nil, err
	}
	if _, err := m.PatchLexers(); err != nil {
		return nil, err
	}
	return files, nil
}

// Generate writes the grammar file and compiles it. If the grammar file
// already exists in the scratch directory, it is assumed to be already
// compiled and nothing is done.
func (m *Materializer) Generate(ctx context.Context, grammar string) error {
	name := naming.Identifier(grammar)
	file, created, err := m.WriteGrammar(name, grammar)
	if err != nil {
		return err
	}
	if !created {
		m.logger().Debug("grammar file exists, skipping", "name", name, "file", file)
		return nil
	}

	m.logger().Info("compiling grammar", "name", name)
	return m.Compiler.Compile(ctx, file)
}

// WriteGrammar writes the grammar file for the grammar named name in the
// scratch directory. It returns the path of the file and true if it was
// created, false if it already existed.
func (m *Materializer) WriteGrammar(name, grammar string) (string, bool, error) {
	file := filepath.Join(m.ScratchDir, name+GrammarExt)

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return file, false, nil
		}
		return "", false, err
	}

	_, err = fmt.Fprintf(f, "grammar %s;\n%s", name, grammar)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", false, err
	}
	return file, true, nil
}

// Collect recreates an empty OutDir and moves the generated lexers, parsers
// and listeners of the scratch directory into it, stripping the first line of
// each file. It returns the paths of the moved files.
func (m *Materializer) Collect() ([]string, error) {
	if err := os.RemoveAll(m.OutDir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(m.OutDir, 0o755); err != nil {
		return nil, err
	}

	srcs, err := filepath.Glob(filepath.Join(m.ScratchDir, artifactPattern))
	if err != nil {
		return nil, err
	}

	res := make([]string, 0, len(srcs))
	for _, src := range srcs {
		dst := filepath.Join(m.OutDir, filepath.Base(src))
		if err := moveWithoutHeader(src, dst); err != nil {
			return nil, err
		}
		m.logger().Debug("collected generated file", "file", dst)
		res = append(res, dst)
	}
	return res, nil
}

// PatchLexers appends the ATN accessor to every lexer in OutDir. A lexer that
// is already patched is left untouched. It returns the paths of the patched
// files.
func (m *Materializer) PatchLexers() ([]string, error) {
	lexers, err := filepath.Glob(filepath.Join(m.OutDir, lexerPattern))
	if err != nil {
		return nil, err
	}

	var res []string
	for _, lexer := range lexers {
		patched, err := patchLexer(lexer)
		if err != nil {
			return nil, err
		}
		if patched {
			res = append(res, lexer)
		}
	}
	return res, nil
}

// ATNPatch returns the code appended to the lexer named lexerName.
func ATNPatch(lexerName string) string {
	return fmt.Sprintf(atnPatch, lexerName)
}

func patchLexer(file string) (bool, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return false, err
	}

	name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	patch := ATNPatch(name)
	if bytes.HasSuffix(b, []byte(patch)) {
		return false, nil
	}

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return false, err
	}
	_, err = io.WriteString(f, patch)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err == nil, err
}

// moveWithoutHeader writes src minus its first line to dst, and removes src.
// dst may be on a different device than src.
func moveWithoutHeader(src, dst string) error {
	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	if ix := bytes.IndexByte(b, '\n'); ix >= 0 {
		b = b[ix+1:]
	} else {
		b = nil
	}

	if err := os.WriteFile(dst, b, 0o644); err != nil {
		return err
	}
	return os.Remove(src)
}
