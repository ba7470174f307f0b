package extract

import (
	"fmt"
	"strings"

	"github.com/mna/suggestgen/internal/naming"
	"github.com/mna/suggestgen/internal/scanner"
	"github.com/mna/suggestgen/internal/token"
)

// names of the calls of the chain.
const (
	givenGrammar       = "givenGrammar"
	withCasePreference = "withCasePreference"
	whenInput          = "whenInput"
	thenExpect         = "thenExpect"
)

// Error is the error returned for a relevant line that does not have the
// expected call chain shape.
type Error struct {
	Pos  token.Position
	Msg  string
	Line string // offending line, trimmed
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: no match for relevant line: %s", e.Pos, e.Msg, e.Line)
}

// ParseLine parses the call chain in line and returns the corresponding
// Record. The filename and line number are only used for positions. If the
// line does not match the expected shape, the error is an *Error.
func ParseLine(filename string, lineNo int, line string) (*Record, error) {
	var p parser
	p.init(filename, lineNo, line)
	rec := p.parseChain()
	if p.err != nil {
		return nil, p.err
	}
	return rec, nil
}

// bailout is used to abort parsing on the first error.
type bailout struct{}

// parser parses a single source line into a Record.
type parser struct {
	// those fields are immutable after p.init
	filename string
	line     string
	scanner  scanner.Scanner

	err *Error

	// current token
	tok token.Token
	val token.Value
}

func (p *parser) init(filename string, lineNo int, line string) {
	p.filename = filename
	p.line = line
	p.err = nil
	p.scanner.Init(filename, lineNo, []byte(line), func(pos token.Position, msg string) {
		p.setError(pos, msg)
	})
}

func (p *parser) setError(pos token.Position, msg string) {
	if p.err == nil {
		p.err = &Error{Pos: pos, Msg: msg, Line: strings.TrimSpace(p.line)}
	}
}

func (p *parser) errorExpected(pos token.Pos, what string) {
	found := p.tok.GoString()
	if p.tok == token.IDENT {
		found = p.val.Raw
	}
	p.setError(token.MakePosition(p.filename, pos), fmt.Sprintf("expected %s, found %s", what, found))
	panic(bailout{})
}

func (p *parser) advance() {
	for {
		p.tok = p.scanner.Scan(&p.val)
		if p.err != nil {
			panic(bailout{})
		}
		if p.tok != token.COMMENT {
			break
		}
	}
}

func (p *parser) expect(tok token.Token) token.Value {
	val := p.val
	if p.tok != tok {
		p.errorExpected(p.val.Pos, fmt.Sprintf("%#v", tok))
	}
	p.advance()
	return val
}

func (p *parser) expectCall(name string) {
	if p.tok != token.IDENT || p.val.Raw != name {
		p.errorExpected(p.val.Pos, name)
	}
	p.advance()
}

// balanced returns the raw text of the arguments of a call, the current token
// must be the opening parenthesis. On return, the closing parenthesis is
// consumed.
func (p *parser) balanced() string {
	if p.tok != token.LPAREN {
		p.errorExpected(p.val.Pos, fmt.Sprintf("%#v", token.LPAREN))
	}
	start := p.val.Pos
	raw, ok := p.scanner.Balanced()
	if !ok {
		p.setError(token.MakePosition(p.filename, start), "unbalanced parentheses")
		panic(bailout{})
	}
	p.advance()
	p.expect(token.RPAREN)
	return raw
}

func (p *parser) parseChain() (rec *Record) {
	defer func() {
		if e := recover(); e != nil {
			if _, ok := e.(bailout); !ok {
				panic(e)
			}
			rec = nil
		}
	}()

	// advance to first token, then skip anything before the givenGrammar call
	// (e.g. a receiver)
	p.advance()
	for p.tok != token.EOF && (p.tok != token.IDENT || p.val.Raw != givenGrammar) {
		p.advance()
	}

	rec = &Record{Pos: token.MakePosition(p.filename, p.val.Pos)}
	p.expectCall(givenGrammar)
	rec.Grammar = p.parseGrammar()
	rec.Name = naming.Identifier(rec.Grammar)

	p.expect(token.DOT)
	if p.tok == token.IDENT && p.val.Raw == withCasePreference {
		p.advance()
		rec.CasePreference = p.parseCasePreference()
		p.expect(token.DOT)
	}

	p.expectCall(whenInput)
	p.expect(token.LPAREN)
	rec.Input = p.expect(token.STRING).String
	p.expect(token.RPAREN)

	p.expect(token.DOT)
	p.expectCall(thenExpect)
	rec.Output = p.balanced()

	// stop at the semicolon, the rest of the line is not scanned
	if p.tok != token.SEMICOLON {
		p.errorExpected(p.val.Pos, fmt.Sprintf("%#v", token.SEMICOLON))
	}
	return rec
}

func (p *parser) parseGrammar() string {
	p.expect(token.LPAREN)

	var rules []string
	for {
		rule := p.expect(token.STRING).String
		rules = append(rules, strings.ReplaceAll(rule, `\\`, `\`))
		if p.tok != token.COMMA {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)

	grammar := strings.Join(rules, "; ")
	if !strings.HasSuffix(grammar, ";") {
		grammar += ";"
	}
	return grammar + "\n"
}

func (p *parser) parseCasePreference() string {
	pos := p.val.Pos
	arg := p.balanced()
	switch {
	case arg == "":
		p.setError(token.MakePosition(p.filename, pos), "missing case preference argument")
		panic(bailout{})
	case arg == "null":
		return ""
	case len(arg) >= 2 && arg[0] == '"' && arg[len(arg)-1] == '"':
		return arg[1 : len(arg)-1]
	}
	return arg
}
