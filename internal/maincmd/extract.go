package maincmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mna/mainer"
	"github.com/mna/suggestgen/internal/extract"
	"github.com/mna/suggestgen/internal/naming"
)

func (c *Cmd) Extract(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) == 0 {
		args = []string{c.Source}
	}
	return ExtractFiles(ctx, stdio, args...)
}

func (c *Cmd) Names(ctx context.Context, stdio mainer.Stdio, args []string) error {
	if len(args) == 0 {
		args = []string{c.Source}
	}
	return NamesFiles(ctx, stdio, args...)
}

// ExtractFiles prints the records of each file to stdio.Stdout, and the
// errors to stdio.Stderr.
func ExtractFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var errs []error
	for _, file := range files {
		recs, err := extract.ParseFile(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, rec := range recs {
			fmt.Fprintf(stdio.Stdout, "%s: %s\n", rec.Pos, rec.Name)
			fmt.Fprintf(stdio.Stdout, "\tgrammar: %s\n", strconv.Quote(rec.Grammar))
			fmt.Fprintf(stdio.Stdout, "\tinput: %s\n", strconv.Quote(rec.Input))
			if rec.CasePreference != "" {
				fmt.Fprintf(stdio.Stdout, "\tcase preference: %s\n", rec.CasePreference)
			}
			fmt.Fprintf(stdio.Stdout, "\toutput: %s\n", rec.Output)
		}
	}
	return printError(stdio, errors.Join(errs...))
}

// NamesFiles prints the identifier and grammar of each unique grammar of the
// files to stdio.Stdout, and the errors to stdio.Stderr.
func NamesFiles(ctx context.Context, stdio mainer.Stdio, files ...string) error {
	var (
		set  naming.Set
		errs []error
	)
	for _, file := range files {
		recs, err := extract.ParseFile(file)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, rec := range recs {
			added, err := set.Add(rec.Grammar)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", rec.Pos, err))
				continue
			}
			if added {
				fmt.Fprintf(stdio.Stdout, "%s %s\n", rec.Name, strconv.Quote(rec.Grammar))
			}
		}
	}
	return printError(stdio, errors.Join(errs...))
}
