// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scanner tokenizes single lines of Java source holding a test
// call chain.
package scanner

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mna/suggestgen/internal/token"
)

// TokenAndValue combines the token type with the token value type in the same
// struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanLine is a helper function that tokenizes a single line of source and
// returns the list of tokens up to and including EOF, along with the first
// error encountered, if any.
func ScanLine(filename string, line int, src string) ([]TokenAndValue, error) {
	var (
		s      Scanner
		tokVal token.Value
		err    error
		toks   []TokenAndValue
	)

	s.Init(filename, line, []byte(src), func(pos token.Position, msg string) {
		if err == nil {
			err = fmt.Errorf("%s: %s", pos, msg)
		}
	})
	for {
		tok := s.Scan(&tokVal)
		toks = append(toks, TokenAndValue{Token: tok, Value: tokVal})
		if tok == token.EOF {
			break
		}
	}
	return toks, err
}

// Scanner tokenizes a line of source for the extractor to consume.
type Scanner struct {
	// immutable state after Init
	filename string
	line     int
	src      []byte
	err      func(pos token.Position, msg string) // error handler for scanning errors

	// mutable scanning state
	invalidByte byte // when cur==RuneError due to failed utf8 decode, this is the invalid byte
	cur         rune // current character
	col         int  // column position of cur
	off         int  // character offset in bytes of cur
	roff        int  // reading offset in bytes (position after current character)
}

// Init initializes the scanner to tokenize a new line. The line number is
// only used to report positions, src must not contain a newline.
func (s *Scanner) Init(filename string, line int, src []byte, errHandler func(token.Position, string)) {
	s.filename = filename
	s.line = line
	s.src = src
	s.err = errHandler

	s.invalidByte = 0
	s.cur = ' '
	s.col = 0
	s.off = 0
	s.roff = 0

	s.advance()
}

// peek returns the byte following the most recently read character without
// advancing the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// read the next Unicode char into s.cur; s.cur < 0 means end-of-line.
func (s *Scanner) advance() {
	if s.roff >= len(s.src) {
		if s.cur >= 0 {
			s.col++
		}
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff

	// fast path if the rune is an ASCII char, no decoding necessary
	s.invalidByte = 0
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		// not ASCII
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.col+1, "illegal UTF-8 encoding")
			// store the actual invalid byte
			s.invalidByte = s.src[s.roff]
		}
	}
	s.roff += w
	s.cur = r
	s.col++
}

func (s *Scanner) error(col int, msg string) {
	s.err(token.MakePosition(s.filename, s.makePos(col)), msg)
}

func (s *Scanner) errorf(col int, msg string, args ...any) {
	s.error(col, fmt.Sprintf(msg, args...))
}

func (s *Scanner) makePos(col int) token.Pos {
	line := s.line
	if line > token.MaxLines {
		panic(fmt.Sprintf("number of lines exceeded: %d", line))
	}
	if col > token.MaxCols {
		panic(fmt.Sprintf("number of columns exceeded at line %d: %d", line, col))
	}
	return token.MakePos(line, col)
}

// advance only if the current char matches any of the specified ones.
func (s *Scanner) advanceIf(matches ...byte) bool {
	if bytes.ContainsRune(matches, s.cur) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the line.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespace()

	// current token start
	startOff, startCol := s.off, s.col
	pos := s.makePos(startCol)

	switch cur := s.cur; {
	case isLetter(cur):
		tok = token.IDENT
		*tokVal = token.Value{Raw: s.ident(), Pos: pos}

	case isDecimal(cur):
		tok = token.NUMBER
		*tokVal = token.Value{Raw: s.number(), Pos: pos}

	default:
		invalid := s.invalidByte
		s.advance() // always make progress
		switch cur {
		case '"', '\'':
			tok = token.STRING
			if cur == '\'' {
				tok = token.CHAR
			}
			val := s.quoted(cur, startCol)
			*tokVal = token.Value{Raw: string(s.src[startOff:s.off]), String: val, Pos: pos}

		case '/':
			// can be a line comment, a block comment or a division
			if s.cur == '/' || s.cur == '*' {
				tok = token.COMMENT
				*tokVal = token.Value{Raw: s.comment(startOff, startCol), Pos: pos}
				break
			}
			tok = token.OTHER
			*tokVal = token.Value{Raw: "/", Pos: pos}

		case -1:
			tok = token.EOF
			*tokVal = token.Value{Pos: pos}

		default:
			if cur == utf8.RuneError && invalid > 0 {
				s.errorf(startCol, "illegal character %#U", rune(invalid))
				tok = token.ILLEGAL
				*tokVal = token.Value{Raw: string(s.src[startOff:s.off]), Pos: pos}
				break
			}
			tok = token.LookupPunct(string(cur))
			*tokVal = token.Value{Raw: string(cur), Pos: pos}
		}
	}
	return tok
}

// Balanced consumes the raw source text that follows an opening parenthesis
// already returned by Scan, up to but excluding the parenthesis that closes
// it. Nested parentheses, brackets and braces as well as string and char
// literals are skipped over. The returned text is trimmed of surrounding
// whitespace, and the next call to Scan returns the closing RPAREN. If the
// line ends before the closing parenthesis, it returns false.
func (s *Scanner) Balanced() (string, bool) {
	start := s.off
	var depth int
	for s.cur != -1 {
		switch cur := s.cur; cur {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			if depth == 0 {
				if cur != ')' {
					return strings.TrimSpace(string(s.src[start:s.off])), false
				}
				return strings.TrimSpace(string(s.src[start:s.off])), true
			}
			depth--
		case '"', '\'':
			startCol := s.col
			s.advance()
			s.quoted(cur, startCol)
			continue
		}
		s.advance()
	}
	return strings.TrimSpace(string(s.src[start:s.off])), false
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// number scans a Java numeric literal loosely: the value is never decoded,
// only its extent matters.
func (s *Scanner) number() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) || s.cur == '.' && isDecimal(rune(s.peek())) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

// quoted scans a string or char literal whose opening quote has already been
// consumed, and returns its content with escape sequences kept raw.
func (s *Scanner) quoted(opening rune, startCol int) string {
	start := s.off
	for {
		cur := s.cur
		if cur < 0 {
			if opening == '"' {
				s.error(startCol, "string literal not terminated")
			} else {
				s.error(startCol, "char literal not terminated")
			}
			return string(s.src[start:s.off])
		}
		end := s.off
		s.advance()
		if cur == opening {
			return string(s.src[start:end])
		}
		if cur == '\\' && s.cur >= 0 {
			s.advance()
		}
	}
}

func (s *Scanner) comment(startOff, startCol int) string {
	if s.advanceIf('/') {
		for s.cur != -1 {
			s.advance()
		}
		return string(s.src[startOff:s.off])
	}

	// block comment, '*' not consumed yet
	s.advance()
	for s.cur != -1 {
		if s.cur == '*' && s.peek() == '/' {
			s.advance()
			s.advance()
			return string(s.src[startOff:s.off])
		}
		s.advance()
	}
	s.error(startCol, "comment not terminated")
	return string(s.src[startOff:s.off])
}

func (s *Scanner) skipWhitespace() {
	for isWhitespace(s.cur) {
		s.advance()
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r' || rn == '\f'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' || rn == '$' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9' ||
		rn >= utf8.RuneSelf && unicode.IsDigit(rn)
}

func isDecimal(rn rune) bool { return '0' <= rn && rn <= '9' }
