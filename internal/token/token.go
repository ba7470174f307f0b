package token

// A Token represents a lexical token of a Java call-chain statement.
type Token int8

//nolint:revive
const (
	ILLEGAL Token = iota
	EOF

	// Tokens with values
	COMMENT // // line comment
	IDENT   // givenGrammar
	NUMBER  // 123
	STRING  // "foo"
	CHAR    // 'f'

	// Punctuation
	DOT       // .
	COMMA     // ,
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACK    // [
	RBRACK    // ]
	LBRACE    // {
	RBRACE    // }
	OTHER     // any other operator character

	maxToken             = OTHER
	punctStart, punctEnd = DOT, OTHER
)

func (tok Token) String() string { return tokenNames[tok] }

// GoString is like String but quotes punctuation tokens. Use Sprintf("%#v",
// tok) when constructing error messages.
func (tok Token) GoString() string {
	if tok >= punctStart && tok < punctEnd {
		return "'" + tokenNames[tok] + "'"
	}
	return tokenNames[tok]
}

var tokenNames = [...]string{
	ILLEGAL: "illegal token",
	EOF:     "end of line",

	COMMENT: "comment",
	IDENT:   "identifier",
	NUMBER:  "number literal",
	STRING:  "string literal",
	CHAR:    "char literal",

	DOT:       ".",
	COMMA:     ",",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACK:    "[",
	RBRACK:    "]",
	LBRACE:    "{",
	RBRACE:    "}",
	OTHER:     "operator",
}

var punctuations = func() map[string]Token {
	puncts := make(map[string]Token)
	for i := punctStart; i < punctEnd; i++ {
		puncts[tokenNames[i]] = i
	}
	return puncts
}()

// LookupPunct maps a punctuation to its token or OTHER (if not a known
// punctuation).
func LookupPunct(punct string) Token {
	if tok, ok := punctuations[punct]; ok {
		return tok
	}
	return OTHER
}

// Value records the raw text, position and string content associated with
// each token.
type Value struct {
	Raw    string // raw text of token
	String string // content of a string or char literal, escapes kept as-is
	Pos    Pos    // start position of token
}
