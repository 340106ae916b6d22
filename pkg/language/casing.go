package language

import (
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

// Casing names an identifier casing strategy.
type Casing string

const (
	SnakeCase  Casing = "snake_case"
	CamelCase  Casing = "camel_case"
	PascalCase Casing = "pascal_case"
	KebabCase  Casing = "kebab_case"
)

func (c Casing) validate() error {
	switch c {
	case SnakeCase, CamelCase, PascalCase, KebabCase:
		return nil
	}
	return errors.Newf("unknown casing strategy %q", string(c))
}

// identWords splits an identifier into its constituent words.
//
// A word boundary sits before an uppercase letter that follows a lowercase
// letter or digit, and before the last letter of an uppercase run that is
// followed by a lowercase letter (so the trailing capital is read as the
// start of the next word: "ABCWord" is "ABC" + "Word").
func identWords(ident string) []string {
	runes := []rune(ident)
	if len(runes) == 0 {
		return nil
	}
	var words []string
	start := 0
	for i := 1; i < len(runes); i++ {
		if !unicode.IsUpper(runes[i]) {
			continue
		}
		prev := runes[i-1]
		boundary := unicode.IsLower(prev) || unicode.IsDigit(prev)
		if !boundary && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	return append(words, string(runes[start:]))
}

// Convert recases ident with the given strategy.
func Convert(c Casing, ident string) string {
	words := identWords(ident)
	switch c {
	case CamelCase:
		var b strings.Builder
		for i, w := range words {
			if i == 0 {
				b.WriteString(strings.ToLower(w))
				continue
			}
			b.WriteString(titleWord(w))
		}
		return b.String()
	case PascalCase:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(titleWord(w))
		}
		return b.String()
	case KebabCase:
		return joinLower(words, "-")
	default:
		return joinLower(words, "_")
	}
}

func titleWord(w string) string {
	w = strings.ToLower(w)
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func joinLower(words []string, sep string) string {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return strings.Join(lowered, sep)
}

// isUppercaseString reports whether ident consists entirely of uppercase
// letters. Digits disqualify: "ABC" is an uppercase string, "ABC1" is not.
func isUppercaseString(ident string) bool {
	if ident == "" {
		return false
	}
	for _, r := range ident {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
