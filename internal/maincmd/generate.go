package maincmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/mna/mainer"
	"github.com/mna/suggestgen/internal/emit"
	"github.com/mna/suggestgen/internal/extract"
	"github.com/mna/suggestgen/internal/materialize"
	"github.com/mna/suggestgen/internal/naming"
)

// relative to the generated spec file.
const autosuggestModule = "../autosuggest"

// Config is the configuration of a generate run.
type Config struct {
	Source      string
	OutFile     string
	OutDir      string
	KeepScratch bool

	// Compiler compiles the grammar files, typically an
	// *materialize.ExecCompiler.
	Compiler materialize.Compiler
	Logger   *slog.Logger
}

func (c *Cmd) Generate(ctx context.Context, stdio mainer.Stdio, args []string) error {
	logger := newLogger(c.LogLevel, c.LogFormat, stdio.Stderr)
	cfg := Config{
		Source:      c.Source,
		OutFile:     c.OutFile,
		OutDir:      c.OutDir,
		KeepScratch: c.KeepScratch,
		Compiler: &materialize.ExecCompiler{
			Tool:     c.Tool,
			Language: c.Language,
			Stdout:   stdio.Stderr,
			Stderr:   stdio.Stderr,
		},
		Logger: logger,
	}
	return printError(stdio, GenerateFiles(ctx, cfg))
}

// GenerateFiles runs the whole generation: it extracts the test records from
// the source file, compiles the unique grammars, collects the generated code
// in the output directory and writes the spec file.
func GenerateFiles(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	recs, err := extract.ParseFile(cfg.Source)
	if err != nil {
		return err
	}
	set, err := uniqueGrammars(recs)
	if err != nil {
		return err
	}
	logger.Info("extracted test records", "source", cfg.Source, "records", len(recs), "grammars", set.Len())

	scratch, release, err := materialize.NewScratch()
	if err != nil {
		return err
	}
	if cfg.KeepScratch {
		logger.Info("keeping scratch directory", "dir", scratch)
	} else {
		defer func() {
			if err := release(); err != nil {
				logger.Warn("failed to remove scratch directory", "dir", scratch, "error", err)
			}
		}()
	}

	m := materialize.Materializer{
		ScratchDir: scratch,
		OutDir:     cfg.OutDir,
		Compiler:   cfg.Compiler,
		Logger:     logger,
	}
	files, err := m.Run(ctx, set.Grammars())
	if err != nil {
		return err
	}
	logger.Info("collected generated code", "dir", cfg.OutDir, "files", len(files))

	spec := &emit.Spec{
		Generator:         binName,
		Source:            filepath.ToSlash(cfg.Source),
		AutosuggestModule: autosuggestModule,
		ImportDir:         emit.ImportDir(cfg.OutFile, cfg.OutDir),
		Names:             set.Names(),
		Records:           recs,
	}
	if err := emit.WriteFile(cfg.OutFile, spec); err != nil {
		return err
	}
	logger.Info("wrote spec file", "file", cfg.OutFile)
	return nil
}

func uniqueGrammars(recs []*extract.Record) (*naming.Set, error) {
	var set naming.Set
	for _, rec := range recs {
		if _, err := set.Add(rec.Grammar); err != nil {
			return nil, fmt.Errorf("%s: %w", rec.Pos, err)
		}
	}
	return &set, nil
}
