package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifier(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{";", ""},
		{"A: 'x';\n", "A__Q_x_Q_"},
		{"r: 'AB' 'CD';\n", "r__Q_AB_Q__Q_CD_Q_"},
		{"r: 'A'? 'B';\n", "r__Q_A_Q__QUES__Q_B_Q_"},
		{"r: 'A' 'B'; WS: [ \\t] -> skip;\n", "r__Q_A_Q__Q_B_Q__WS___BS_t__ARRW_skip"},
		{"r: A; A: 'A'+;\n", "r_A_A__Q_A_Q__PLUS_"},
		{"r: A; A: 'A'*;\n", "r_A_A__Q_A_Q__STAR_"},
		{"r: ('AB') ('CD');\n", "r__LPAR__Q_AB_Q__RPAR__LPAR__Q_CD_Q__RPAR_"},
		{"r: a | b; a: 'A'; b: 'B';\n", "r_a_b_a__Q_A_Q__b__Q_B_Q_"},
		{"r: A; A: [A-E];\n", "r_A_A__A_E_"},
		{"r0: r1 | r2; r1: 'AB'; r2: 'CD';\n", "r0_r1_r2_r1__Q_AB_Q__r2__Q_CD_Q_"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got := Identifier(c.in)
			assert.Equal(t, c.want, got)
			// always the same result
			assert.Equal(t, got, Identifier(c.in))
		})
	}
}

func TestIdentifierIsSymbol(t *testing.T) {
	grammars := []string{
		"r: 'A' 'B'; WS: [ \\t] -> skip;\n",
		"r: A; A: 'AB' [C-E] 'X';\n",
		"r: A; fragment A: [A-Z];\n",
		"r: 'é' | \"x\" ~ {};\n",
	}
	for _, g := range grammars {
		assert.Regexp(t, `^[A-Za-z0-9_]+$`, Identifier(g))
	}
}
