package scraper

import "strings"

const logCall = "console.log("

// extractLogArguments scans raw script text and returns the literal argument
// of every console.log call whose argument starts with a JSON object, array,
// or string literal. Arguments that are expressions (identifiers, template
// strings, concatenations) are ignored; validity of the returned text is
// decided later by the JSON parser.
func extractLogArguments(script string) []string {
	var args []string

	for i := 0; i < len(script); {
		idx := strings.Index(script[i:], logCall)
		if idx < 0 {
			break
		}
		start := i + idx + len(logCall)

		// Skip whitespace between the paren and the argument
		for start < len(script) && isSpace(script[start]) {
			start++
		}
		if start >= len(script) {
			break
		}

		switch script[start] {
		case '{', '[':
			if lit, end, ok := scanBalanced(script, start); ok {
				args = append(args, lit)
				i = end
				continue
			}
		case '"', '\'':
			if lit, end, ok := scanString(script, start); ok {
				args = append(args, lit)
				i = end
				continue
			}
		}
		i = start
	}

	return args
}

// scanBalanced returns the substring from start up to the matching close
// brace or bracket, honoring string literals and escapes inside the literal.
// end is the index just past the literal.
func scanBalanced(s string, start int) (lit string, end int, ok bool) {
	open := s[start]
	var closer byte
	switch open {
	case '{':
		closer = '}'
	case '[':
		closer = ']'
	default:
		return "", 0, false
	}

	depth := 0
	inString := false
	var quote byte

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			if c == '\\' {
				i++ // skip escaped char
				continue
			}
			if c == quote {
				inString = false
			}
			continue
		}

		switch c {
		case '"', '\'':
			inString = true
			quote = c
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return s[start : i+1], i + 1, true
			}
		}
	}

	return "", 0, false
}

// scanString returns the quoted string literal starting at start, including
// its quotes. Single-quoted literals are rewritten with double quotes so the
// result can go straight through the JSON parser. end is the index just past
// the literal in the original text.
func scanString(s string, start int) (lit string, end int, ok bool) {
	quote := s[start]
	for i := start + 1; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			i++
			continue
		}
		if c == quote {
			lit := s[start : i+1]
			if quote == '\'' {
				lit = `"` + strings.ReplaceAll(lit[1:len(lit)-1], `"`, `\"`) + `"`
			}
			return lit, i + 1, true
		}
	}
	return "", 0, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
