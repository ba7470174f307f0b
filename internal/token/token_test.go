package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok <= maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupPunct(t *testing.T) {
	assert.Equal(t, DOT, LookupPunct("."))
	assert.Equal(t, RPAREN, LookupPunct(")"))
	assert.Equal(t, OTHER, LookupPunct("+"))
	assert.Equal(t, OTHER, LookupPunct("operator"))
}

func TestGoString(t *testing.T) {
	assert.Equal(t, "'('", LPAREN.GoString())
	assert.Equal(t, "string literal", STRING.GoString())
	assert.Equal(t, "operator", OTHER.GoString())
}
