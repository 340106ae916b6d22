package rewrite

import (
	"github.com/pthm/stubgen/pkg/stub"
)

// ReadBatch groups each maximal run of consecutive top-level reads with
// everything that follows it, for expression-oriented languages where a read
// introduces a binding scoped over the rest of the program. The result nests:
// the first run of reads wraps the remainder of the program, which in turn
// contains the batch for the next run, and so on. Relative command order is
// preserved throughout.
func ReadBatch(commands []stub.Cmd) []stub.Cmd {
	if len(commands) == 0 {
		return commands
	}
	run := 0
	for run < len(commands) {
		if _, ok := commands[run].(stub.Read); !ok {
			break
		}
		run++
	}
	if run == 0 {
		// Leading non-read commands pass through untouched.
		rest := 0
		for rest < len(commands) {
			if _, ok := commands[rest].(stub.Read); ok {
				break
			}
			rest++
		}
		out := make([]stub.Cmd, 0, rest+1)
		out = append(out, commands[:rest]...)
		return append(out, ReadBatch(commands[rest:])...)
	}
	return []stub.Cmd{stub.Extension{Artifact: &ReadGroup{
		LineReaders: commands[:run],
		Nested:      ReadBatch(commands[run:]),
	}}}
}

// ReadGroup is the artifact produced by ReadBatch: a run of reads and the
// rebatched commands that follow them.
type ReadGroup struct {
	LineReaders []stub.Cmd
	Nested      []stub.Cmd
}

func (g *ReadGroup) TemplateName() string { return "read_batch" }

func (g *ReadGroup) RetainedCommands() []stub.Cmd {
	retained := make([]stub.Cmd, 0, len(g.LineReaders)+len(g.Nested))
	retained = append(retained, g.LineReaders...)
	return append(retained, g.Nested...)
}

func (g *ReadGroup) Context(r stub.CommandRenderer) (map[string]any, error) {
	readLines, err := r.RenderCommands(g.LineReaders)
	if err != nil {
		return nil, err
	}
	nestedLines, err := r.RenderCommands(g.Nested)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"read_lines":   readLines,
		"nested_lines": nestedLines,
	}, nil
}
