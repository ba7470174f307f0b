package maincmd_test

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/mna/mainer"
	"github.com/mna/suggestgen/internal/filetest"
	"github.com/mna/suggestgen/internal/maincmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpdateExtractTests = flag.Bool("test.update-extract-tests", false, "If set, replace expected extract test results with actual results.")

func TestExtract(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".java") {
		t.Run(fi.Name(), func(t *testing.T) {
			var buf, ebuf bytes.Buffer
			stdio := mainer.Stdio{
				Stdout: &buf,
				Stderr: &ebuf,
			}

			// error is ignored, we just want it to be printed to ebuf
			_ = maincmd.ExtractFiles(ctx, stdio, filepath.Join(srcDir, fi.Name()))
			filetest.DiffOutput(t, fi, buf.String(), resultDir, testUpdateExtractTests)
			filetest.DiffErrors(t, fi, ebuf.String(), resultDir, testUpdateExtractTests)

			if t.Failed() && testing.Verbose() {
				b, err := os.ReadFile(filepath.Join(srcDir, fi.Name()))
				if assert.NoError(t, err) {
					t.Logf("source file:\n%s\n", string(b))
				}
			}
		})
	}
}

func TestNames(t *testing.T) {
	dir := t.TempDir()
	f1, f2 := filepath.Join(dir, "a.java"), filepath.Join(dir, "b.java")
	require.NoError(t, os.WriteFile(f1, []byte(`
givenGrammar("r: 'A'").whenInput("").thenExpect("A");
givenGrammar("r: 'B'").whenInput("").thenExpect("B");
givenGrammar("r: 'A'").whenInput("A").thenExpect();
`), 0o600))
	require.NoError(t, os.WriteFile(f2, []byte(`
givenGrammar("r: 'C'").whenInput("").thenExpect("C");
givenGrammar("r: 'B'").whenInput("B").thenExpect();
givenGrammar("r: 'A' | 'B'").whenInput("").thenExpect("A", "B");
givenGrammar("r: 'A' & 'B'").whenInput("").thenExpect("A");
`), 0o600))

	var buf, ebuf bytes.Buffer
	err := maincmd.NamesFiles(context.Background(), mainer.Stdio{Stdout: &buf, Stderr: &ebuf}, f1, f2)
	require.Error(t, err)

	want := `r__Q_A_Q_ "r: 'A';\n"
r__Q_B_Q_ "r: 'B';\n"
r__Q_C_Q_ "r: 'C';\n"
r__Q_A_Q___Q_B_Q_ "r: 'A' | 'B';\n"
`
	assert.Equal(t, want, buf.String())
	assert.Contains(t, ebuf.String(), f2+":5:1: identifier r__Q_A_Q___Q_B_Q_ derived from both grammar")
}
