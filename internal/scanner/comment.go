package scanner

import (
	"strings"

	"github.com/mna/suggestgen/internal/token"
)

// StripComment returns src without its trailing line comment, if any. Line
// comment markers inside string and char literals or block comments are not
// considered.
func StripComment(src string) string {
	var (
		s   Scanner
		val token.Value
	)
	s.Init("", 1, []byte(src), func(token.Position, string) {})
	for {
		switch tok := s.Scan(&val); tok {
		case token.EOF:
			return src
		case token.COMMENT:
			if strings.HasPrefix(val.Raw, "//") {
				return src[:s.off-len(val.Raw)]
			}
		}
	}
}
