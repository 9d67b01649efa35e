package lisp

import "strings"

const whitespace = " \t\n\r\v\f"

// Lex converts a string of characters into a list of tokens.
// Tokens are delimited by whitespace and parentheses only, so "(+1 2)" yields
// the token "+1". A double-quoted run, quotes included, is a single token.
func Lex(characters string) ([]string, error) {
	tokens := []string{}
	var current []byte
	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}
	for pos := 0; pos < len(characters); pos++ {
		c := characters[pos]
		switch {
		case strings.IndexByte(whitespace, c) >= 0:
			flush()
		case c == '(':
			flush()
			tokens = append(tokens, "(")
		case c == ')':
			flush()
			tokens = append(tokens, ")")
		case c == '"':
			flush()
			end := strings.IndexByte(characters[pos+1:], '"')
			if end < 0 {
				return nil, incomplete("quote mismatch")
			}
			closing := pos + 1 + end + 1
			tokens = append(tokens, characters[pos:closing])
			pos = closing - 1
		default:
			current = append(current, c)
		}
	}
	flush()
	return tokens, nil
}
