package language

import (
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/sahilm/fuzzy"
)

// ErrUnknownLanguage marks a failed language resolution.
var ErrUnknownLanguage = errors.New("unknown language")

// Resolve finds a language definition by name or alias.
//
// userDir, when non-empty, is a directory of user-supplied language
// definitions searched before the embedded bundle. Within each source an
// exact directory-name match beats an alias match; all comparisons are
// case-insensitive. An unresolvable name yields an ErrUnknownLanguage with
// close-match suggestions.
func Resolve(name, userDir string) (*Language, error) {
	sources, err := openSources(userDir)
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		lang, err := src.find(name)
		if err != nil {
			return nil, err
		}
		if lang != nil {
			return lang, nil
		}
	}

	var candidates []string
	for _, src := range sources {
		names, err := src.allNames()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, names...)
	}
	msg := errors.Newf("%q", name)
	if matches := fuzzy.Find(name, candidates); len(matches) > 0 {
		suggestions := make([]string, 0, 3)
		for _, m := range matches {
			suggestions = append(suggestions, m.Str)
			if len(suggestions) == 3 {
				break
			}
		}
		msg = errors.Newf("%q (did you mean %s?)", name, strings.Join(suggestions, ", "))
	}
	return nil, errors.Mark(msg, ErrUnknownLanguage)
}

// List returns the names of every available language, user definitions
// first, duplicates removed, each source sorted.
func List(userDir string) ([]string, error) {
	sources, err := openSources(userDir)
	if err != nil {
		return nil, err
	}
	var names []string
	seen := map[string]bool{}
	for _, src := range sources {
		dirs, err := src.dirNames()
		if err != nil {
			return nil, err
		}
		sort.Strings(dirs)
		for _, d := range dirs {
			if seen[d] {
				continue
			}
			seen[d] = true
			names = append(names, d)
		}
	}
	return names, nil
}

func openSources(userDir string) ([]*source, error) {
	var sources []*source
	if userDir != "" {
		if _, err := os.Stat(userDir); err == nil {
			sources = append(sources, &source{fsys: os.DirFS(userDir)})
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(err, "language directory %q", userDir)
		}
	}
	return append(sources, &source{fsys: Bundled()}), nil
}

// source is one place language definitions live: a filesystem whose
// first-level directories each hold a stub_config.toml and templates.
type source struct {
	fsys fs.FS
}

func (s *source) dirNames() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, "listing languages")
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(s.fsys, e.Name()+"/"+ConfigFileName); err != nil {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (s *source) find(name string) (*Language, error) {
	dirs, err := s.dirNames()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if strings.EqualFold(dir, name) {
			return loadLanguage(s.fsys, dir)
		}
	}
	for _, dir := range dirs {
		lang, err := loadLanguage(s.fsys, dir)
		if err != nil {
			return nil, err
		}
		if lang.matchesAlias(name) {
			return lang, nil
		}
	}
	return nil, nil
}

func (s *source) allNames() ([]string, error) {
	dirs, err := s.dirNames()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, dir := range dirs {
		names = append(names, dir)
		lang, err := loadLanguage(s.fsys, dir)
		if err != nil {
			continue
		}
		names = append(names, lang.Aliases...)
	}
	return names, nil
}
