package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPos(t *testing.T) {
	cases := []struct {
		line, col int
	}{
		{1, 1},
		{10, 42},
		{MaxLines, MaxCols},
		{0, 3},
		{3, 0},
	}
	for _, c := range cases {
		p := MakePos(c.line, c.col)
		l, col := p.LineCol()
		assert.Equal(t, c.line, l)
		assert.Equal(t, c.col, col)
		assert.Equal(t, c.line == 0 || c.col == 0, p.Unknown())
	}
}

func TestPositionString(t *testing.T) {
	cases := []struct {
		pos  Position
		want string
	}{
		{Position{}, "-"},
		{Position{Filename: "a.java"}, "a.java"},
		{Position{Filename: "a.java", Line: 3}, "a.java:3"},
		{Position{Filename: "a.java", Line: 3, Column: 7}, "a.java:3:7"},
		{Position{Line: 3, Column: 7}, "3:7"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			assert.Equal(t, c.want, c.pos.String())
		})
	}
}
