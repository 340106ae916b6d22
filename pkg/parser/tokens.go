package parser

import "strings"

// EOL is the end-of-line sentinel token appended after every source line.
const EOL = "\n"

// Tokenize splits stub generator text into a flat token stream. Each line is
// split on single spaces and followed by an EOL sentinel.
//
// Empty tokens (from consecutive or leading spaces) are preserved on purpose:
// consumers decide whether a run of empties matters. A line containing only
// spaces therefore tokenizes differently from a line that is absent, which
// the parser relies on when detecting blank-line block terminators.
func Tokenize(text string) []string {
	lines := strings.Split(text, "\n")
	tokens := make([]string, 0, len(text)/4+len(lines))
	for _, line := range lines {
		tokens = append(tokens, strings.Split(line, " ")...)
		tokens = append(tokens, EOL)
	}
	return tokens
}
