// Package rewrite holds the optional passes that reshape a parsed command
// tree before rendering.
//
// A pass is a pure function from command slice to command slice. Passes never
// mutate their input; they return a new top-level slice, usually wrapping some
// or all of the original commands in stub.Extension nodes whose artifacts
// know how to render themselves.
//
// Passes are looked up by name. A language opts in by naming one in its
// stub_config.toml; languages without a preprocessor get the parsed tree
// as-is.
package rewrite

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/pthm/stubgen/pkg/stub"
)

// Pass reshapes a command tree.
type Pass func(commands []stub.Cmd) []stub.Cmd

var registry = map[string]Pass{}

// Register adds a pass under name. It panics if the name is already taken;
// pass registration happens at init time and a duplicate is a programming
// error.
func Register(name string, pass Pass) {
	if _, ok := registry[name]; ok {
		panic(errors.Newf("rewrite pass %q registered twice", name))
	}
	registry[name] = pass
}

// Get returns the pass registered under name.
func Get(name string) (Pass, error) {
	pass, ok := registry[name]
	if !ok {
		return nil, errors.Newf("unknown rewrite pass %q (have %v)", name, Names())
	}
	return pass, nil
}

// Names lists the registered pass names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("forward_declarations", ForwardDeclarations)
	Register("read_split", ReadSplit)
	Register("read_batch", ReadBatch)
}
