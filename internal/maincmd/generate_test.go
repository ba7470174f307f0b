package maincmd_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/suggestgen/internal/maincmd"
	"github.com/mna/suggestgen/internal/materialize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCompiler writes a lexer, a parser and a listener next to the grammar
// file, each with a header line.
type fakeCompiler struct {
	calls int
	err   error
}

func (c *fakeCompiler) Compile(ctx context.Context, grammarFile string) error {
	c.calls++
	if c.err != nil {
		return c.err
	}

	dir := filepath.Dir(grammarFile)
	name := strings.TrimSuffix(filepath.Base(grammarFile), materialize.GrammarExt)
	for _, suffix := range []string{"Lexer", "Parser", "Listener"} {
		body := "// Generated from " + name + ".g4 by ANTLR 4.7.1\nfunction " + name + suffix + "() {}\n"
		if err := os.WriteFile(filepath.Join(dir, name+suffix+".js"), []byte(body), 0o600); err != nil {
			return err
		}
	}
	return nil
}

const generateSource = `class T {
    void a() {
        givenGrammar("r: 'AB' 'CD'").whenInput("").thenExpect("AB");
        givenGrammar("r: 'AB' 'CD'").whenInput("AB").thenExpect("CD");
        givenGrammar("r: A", "A: [aA]").withCasePreference(UPPER).whenInput("").thenExpect("A");
    }
}
`

func setupGenerate(t *testing.T, src string, c materialize.Compiler) maincmd.Config {
	dir := t.TempDir()
	source := filepath.Join(dir, "AutoSuggesterTest.java")
	require.NoError(t, os.WriteFile(source, []byte(src), 0o600))
	return maincmd.Config{
		Source:   source,
		OutFile:  filepath.Join(dir, "spec", "generatedTestsFromJava.spec.js"),
		OutDir:   filepath.Join(dir, "spec", "testGrammars"),
		Compiler: c,
	}
}

func TestGenerateFiles(t *testing.T) {
	var c fakeCompiler
	cfg := setupGenerate(t, generateSource, &c)

	require.NoError(t, maincmd.GenerateFiles(context.Background(), cfg))
	assert.Equal(t, 2, c.calls)

	des, err := os.ReadDir(cfg.OutDir)
	require.NoError(t, err)
	var names []string
	for _, de := range des {
		names = append(names, de.Name())
	}
	assert.Equal(t, []string{
		"r_A_A__aA_Lexer.js", "r_A_A__aA_Listener.js", "r_A_A__aA_Parser.js",
		"r__Q_AB_Q__Q_CD_Q_Lexer.js", "r__Q_AB_Q__Q_CD_Q_Listener.js", "r__Q_AB_Q__Q_CD_Q_Parser.js",
	}, names)

	lexer, err := os.ReadFile(filepath.Join(cfg.OutDir, "r_A_A__aA_Lexer.js"))
	require.NoError(t, err)
	assert.Equal(t, "function r_A_A__aA_Lexer() {}\n"+materialize.ATNPatch("r_A_A__aA_Lexer"), string(lexer))

	b, err := os.ReadFile(cfg.OutFile)
	require.NoError(t, err)
	spec := string(b)
	assert.Contains(t, spec, "const r__Q_AB_Q__Q_CD_Q_Lexer = require('./testGrammars/r__Q_AB_Q__Q_CD_Q_Lexer');")
	assert.Contains(t, spec, "const r_A_A__aA_Parser = require('./testGrammars/r_A_A__aA_Parser');")
	assert.Equal(t, 3, strings.Count(spec, "    it('should handle grammar"))
	assert.Equal(t, 1, strings.Count(spec, "withCasePreference('UPPER');"))
	assert.Less(t, strings.Index(spec, "r__Q_AB_Q__Q_CD_Q_Lexer = "), strings.Index(spec, "r_A_A__aA_Lexer = "))
}

func TestGenerateFilesRerun(t *testing.T) {
	var c fakeCompiler
	cfg := setupGenerate(t, generateSource, &c)
	require.NoError(t, maincmd.GenerateFiles(context.Background(), cfg))

	// second run with a different grammar set, no stale artifact survives
	require.NoError(t, os.WriteFile(cfg.Source, []byte(`givenGrammar("r: 'X'").whenInput("").thenExpect("X");`), 0o600))
	require.NoError(t, maincmd.GenerateFiles(context.Background(), cfg))
	assert.Equal(t, 3, c.calls)

	des, err := os.ReadDir(cfg.OutDir)
	require.NoError(t, err)
	assert.Len(t, des, 3)
	for _, de := range des {
		assert.True(t, strings.HasPrefix(de.Name(), "r__Q_X_Q_"), de.Name())
	}
}

func TestGenerateFilesInvalidSource(t *testing.T) {
	var c fakeCompiler
	cfg := setupGenerate(t, `givenGrammar("r: 'A'").whenInput("").thenExpect("A")`, &c)

	err := maincmd.GenerateFiles(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no match for relevant line")
	assert.Equal(t, 0, c.calls)

	_, err = os.Stat(cfg.OutDir)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(cfg.OutFile)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateFilesCompileError(t *testing.T) {
	c := fakeCompiler{err: errors.New("antlr4: exit status 1")}
	cfg := setupGenerate(t, generateSource, &c)

	err := maincmd.GenerateFiles(context.Background(), cfg)
	require.ErrorIs(t, err, c.err)
	assert.Equal(t, 1, c.calls)

	_, err = os.Stat(cfg.OutFile)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateFilesCollision(t *testing.T) {
	var c fakeCompiler
	cfg := setupGenerate(t, `
givenGrammar("r: 'A' | 'B'").whenInput("").thenExpect("A", "B");
givenGrammar("r: 'A' & 'B'").whenInput("").thenExpect("A");
`, &c)

	err := maincmd.GenerateFiles(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AutoSuggesterTest.java:3:")
	assert.Contains(t, err.Error(), "identifier r__Q_A_Q___Q_B_Q_ derived from both")
	assert.Equal(t, 0, c.calls)
}
