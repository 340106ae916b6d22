// Package stubgen generates input/output boilerplate ("stubs") in a target
// programming language from a small declarative generator DSL.
//
// The pipeline is parse, rewrite, render. Generator text is parsed into a
// command tree (pkg/parser, pkg/stub); if the target language names a
// preprocessor, that rewrite pass reshapes the tree (pkg/rewrite); the
// language's template set then turns the tree into source code
// (pkg/language, pkg/renderer).
package stubgen

import (
	"strings"

	"github.com/pthm/stubgen/pkg/language"
	"github.com/pthm/stubgen/pkg/parser"
	"github.com/pthm/stubgen/pkg/renderer"
	"github.com/pthm/stubgen/pkg/rewrite"
)

// Options controls generation beyond the generator text itself.
type Options struct {
	// LanguageDir is an optional directory of user-supplied language
	// definitions, searched before the bundled languages.
	LanguageDir string
}

// Generate renders generator text as source code for the named language,
// using only the bundled language definitions. The result has no trailing
// newline; callers writing it to a file or terminal append their own.
func Generate(languageName, generator string) (string, error) {
	return GenerateWithOptions(languageName, generator, Options{})
}

// GenerateWithOptions is Generate with explicit Options.
func GenerateWithOptions(languageName, generator string, opts Options) (string, error) {
	lang, err := language.Resolve(languageName, opts.LanguageDir)
	if err != nil {
		return "", err
	}
	return GenerateForLanguage(lang, generator)
}

// GenerateForLanguage renders generator text with an already resolved
// language definition.
func GenerateForLanguage(lang *language.Language, generator string) (string, error) {
	s, err := parser.Parse(generator)
	if err != nil {
		return "", err
	}
	if lang.Preprocessor != "" {
		pass, err := rewrite.Get(lang.Preprocessor)
		if err != nil {
			return "", err
		}
		s.Commands = pass(s.Commands)
	}
	r, err := renderer.New(lang)
	if err != nil {
		return "", err
	}
	out, err := r.Render(s)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
