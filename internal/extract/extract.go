package extract

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mna/suggestgen/internal/scanner"
)

// markers of the relevance filter.
const (
	givenMarker = givenGrammar
	inputMarker = whenInput
	classMarker = ".class"
)

// maximum length of a source line.
const maxLineSize = 1024 * 1024

// IsRelevant returns true if the line holds a test call chain that must be
// extracted. The line must call both givenGrammar and whenInput outside of a
// line comment, and must not refer to a class literal.
func IsRelevant(line string) bool {
	line = scanner.StripComment(line)
	return strings.Contains(line, givenMarker) &&
		strings.Contains(line, inputMarker) &&
		!strings.Contains(line, classMarker)
}

// Records reads the source from r and returns the records of all relevant
// lines, in order. If any relevant line cannot be parsed, it returns a nil
// slice and an error that joins the *Error of each offending line.
func Records(filename string, r io.Reader) ([]*Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var (
		recs []*Record
		errs []error
	)
	var lineNo int
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if !IsRelevant(line) {
			continue
		}
		rec, err := ParseLine(filename, lineNo, line)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		recs = append(recs, rec)
	}
	if err := sc.Err(); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", filename, err))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return recs, nil
}

// ParseFile is a helper function that opens filename and returns its
// records, as Records does.
func ParseFile(filename string) ([]*Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Records(filename, f)
}
