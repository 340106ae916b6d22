package rewrite

import (
	"github.com/pthm/stubgen/pkg/stub"
)

// ReadSplit hoists input acquisition above the program body, for languages
// whose idiom reads everything up front as top-level bindings. Top-level
// reads move (in order) into a declaration section; everything else stays in
// the body, in order. Reads nested inside loops stay where they are, since
// their repetition count is only known at run time.
func ReadSplit(commands []stub.Cmd) []stub.Cmd {
	var reads, body []stub.Cmd
	for _, cmd := range commands {
		if r, ok := cmd.(stub.Read); ok {
			reads = append(reads, r)
			continue
		}
		body = append(body, cmd)
	}
	return []stub.Cmd{stub.Extension{Artifact: &SplitProgram{
		ReadDeclarations: reads,
		MainContent:      body,
	}}}
}

// SplitProgram is the artifact produced by ReadSplit.
type SplitProgram struct {
	ReadDeclarations []stub.Cmd
	MainContent      []stub.Cmd
}

func (s *SplitProgram) TemplateName() string { return "read_split" }

func (s *SplitProgram) RetainedCommands() []stub.Cmd {
	retained := make([]stub.Cmd, 0, len(s.ReadDeclarations)+len(s.MainContent))
	retained = append(retained, s.ReadDeclarations...)
	return append(retained, s.MainContent...)
}

func (s *SplitProgram) Context(r stub.CommandRenderer) (map[string]any, error) {
	readLines, err := r.RenderCommands(s.ReadDeclarations)
	if err != nil {
		return nil, err
	}
	mainLines, err := r.RenderCommands(s.MainContent)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"read_declarations": readLines,
		"main_contents":     mainLines,
	}, nil
}
