package materialize

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// Compiler generates the parser, lexer and listener sources of a grammar
// file, in the directory of that file.
type Compiler interface {
	Compile(ctx context.Context, grammarFile string) error
}

// ExecCompiler is a Compiler that runs an external grammar compiler tool as
// "<Tool> -Dlanguage=<Language> <grammar file>". The tool must exit with
// status 0 for the compilation to succeed.
type ExecCompiler struct {
	Tool     string
	Language string

	// Stdout and Stderr receive the output of the tool, it is discarded if
	// nil.
	Stdout io.Writer
	Stderr io.Writer
}

// Compile runs the tool on grammarFile and waits for it to complete.
func (c *ExecCompiler) Compile(ctx context.Context, grammarFile string) error {
	cmd := exec.CommandContext(ctx, c.Tool, "-Dlanguage="+c.Language, grammarFile)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: compile %s: %w", c.Tool, grammarFile, err)
	}
	return nil
}
