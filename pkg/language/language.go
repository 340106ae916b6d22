// Package language loads target language definitions: the stub_config.toml
// describing naming and type conventions, and the template set that turns
// commands into source code.
//
// Languages come from two sources: a directory of user-supplied definitions
// and the bundle embedded in the binary. Resolution prefers the user
// directory, then the bundle; within each source an exact directory-name
// match wins over an alias match. Lookups are case-insensitive.
package language

import (
	"io/fs"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
)

// ConfigFileName is the per-language definition file inside each language
// directory.
const ConfigFileName = "stub_config.toml"

// TypeTokens maps variable types to the language's type keywords. Entries are
// optional; a language whose reads never spell a type leaves them all unset.
type TypeTokens struct {
	Int    string `toml:"int"`
	Float  string `toml:"float"`
	Long   string `toml:"long"`
	Bool   string `toml:"bool"`
	Word   string `toml:"word"`
	String string `toml:"string"`
}

// Language is one target language definition.
type Language struct {
	Name          string     `toml:"name"`
	SourceFileExt string     `toml:"source_file_ext"`
	Casing        Casing     `toml:"variable_format"`
	Aliases       []string   `toml:"aliases"`
	Keywords      []string   `toml:"keywords"`
	TypeTokens    TypeTokens `toml:"type_tokens"`
	Preprocessor  string     `toml:"preprocessor"`

	// AllowUppercaseVars controls ALL-UPPERCASE identifiers: when true (the
	// default) they pass through unconverted, when false they are lowercased
	// and then recased like any other identifier.
	AllowUppercaseVars *bool `toml:"allow_uppercase_vars"`

	// CaseInsensitiveKeywords widens keyword escaping to any capitalization
	// of a keyword, for case-insensitive languages.
	CaseInsensitiveKeywords bool `toml:"case_insensitive_keywords"`

	templates fs.FS
}

func loadLanguage(fsys fs.FS, dir string) (*Language, error) {
	raw, err := fs.ReadFile(fsys, dir+"/"+ConfigFileName)
	if err != nil {
		return nil, errors.Wrapf(err, "language %q", dir)
	}
	var lang Language
	if err := toml.Unmarshal(raw, &lang); err != nil {
		return nil, errors.Wrapf(err, "language %q: parsing %s", dir, ConfigFileName)
	}
	if err := lang.Casing.validate(); err != nil {
		return nil, errors.Wrapf(err, "language %q", dir)
	}
	if lang.Name == "" {
		lang.Name = dir
	}
	if lang.SourceFileExt == "" {
		return nil, errors.Newf("language %q: source_file_ext is required", dir)
	}
	lang.templates, err = fs.Sub(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "language %q", dir)
	}
	return &lang, nil
}

// Templates returns the filesystem holding this language's *.tmpl files.
func (l *Language) Templates() fs.FS { return l.templates }

func (l *Language) allowUppercase() bool {
	return l.AllowUppercaseVars == nil || *l.AllowUppercaseVars
}

// TypeToken returns the language keyword for a variable type name ("Int",
// "Word", ...), or "" when the language does not define one.
func (l *Language) TypeToken(varType string) string {
	switch varType {
	case "Int":
		return l.TypeTokens.Int
	case "Float":
		return l.TypeTokens.Float
	case "Long":
		return l.TypeTokens.Long
	case "Bool":
		return l.TypeTokens.Bool
	case "Word":
		return l.TypeTokens.Word
	case "String":
		return l.TypeTokens.String
	}
	return ""
}

// TransformVariableName converts a DSL-surface identifier into the
// language's naming convention.
//
// ALL-UPPERCASE identifiers are left untouched when the language allows
// them; otherwise they are lowercased first so the casing strategy treats
// them as one word. Keyword collisions are escaped after conversion, by
// prefixing an underscore.
func (l *Language) TransformVariableName(ident string) string {
	var converted string
	switch {
	case isUppercaseString(ident) && l.allowUppercase():
		converted = ident
	case isUppercaseString(ident):
		converted = Convert(l.Casing, strings.ToLower(ident))
	default:
		converted = Convert(l.Casing, ident)
	}
	if l.isKeyword(converted) {
		return "_" + converted
	}
	return converted
}

func (l *Language) isKeyword(name string) bool {
	for _, kw := range l.Keywords {
		if kw == name {
			return true
		}
		if l.CaseInsensitiveKeywords && strings.EqualFold(kw, name) {
			return true
		}
	}
	return false
}

func (l *Language) matchesAlias(name string) bool {
	for _, alias := range l.Aliases {
		if strings.EqualFold(alias, name) {
			return true
		}
	}
	return false
}
