package rewrite

import (
	"github.com/pthm/stubgen/pkg/stub"
)

// ForwardDeclarations hoists every variable declaration to the front of the
// program, for languages that declare variables in a dedicated section before
// the executable body (Pascal-family).
//
// The whole tree is wrapped in a single MainWrapper artifact carrying the
// hoisted declarations and the untouched command sequence. Loop index
// variables need declaring too, so one synthetic integer counter is added per
// nesting level, drawn from the same letter pool the renderer uses; both skip
// letters already taken by real identifiers, which keeps the declared
// counters and the rendered loop indices in agreement.
func ForwardDeclarations(commands []stub.Cmd) []stub.Cmd {
	var decls []stub.VariableCommand
	var collect func(cmd stub.Cmd)
	collect = func(cmd stub.Cmd) {
		switch c := cmd.(type) {
		case stub.Read:
			decls = append(decls, c.Variables...)
		case stub.LoopLine:
			decls = append(decls, c.Variables...)
		case stub.Loop:
			collect(c.Body)
		}
	}
	for _, cmd := range commands {
		collect(cmd)
	}

	used := stub.DeclaredIdentifiers(commands)
	for _, counter := range stub.LoopIndexNames(used, stub.MaxNestingDepth(commands)) {
		decls = append(decls, stub.VariableCommand{Ident: counter, Type: stub.Int})
	}

	// Re-read identifiers keep their first declaration only.
	seen := make(map[string]bool, len(decls))
	unique := decls[:0]
	for _, d := range decls {
		if seen[d.Ident] {
			continue
		}
		seen[d.Ident] = true
		unique = append(unique, d)
	}

	return []stub.Cmd{stub.Extension{Artifact: &MainWrapper{
		Declarations: unique,
		MainContent:  commands,
	}}}
}

// MainWrapper is the artifact produced by ForwardDeclarations: the hoisted
// declaration list plus the original command sequence as the program body.
type MainWrapper struct {
	Declarations []stub.VariableCommand
	MainContent  []stub.Cmd
}

func (w *MainWrapper) TemplateName() string { return "main_wrapper" }

func (w *MainWrapper) RetainedCommands() []stub.Cmd { return w.MainContent }

func (w *MainWrapper) Context(r stub.CommandRenderer) (map[string]any, error) {
	declLines := make([]string, 0, len(w.Declarations))
	for _, d := range w.Declarations {
		line, err := r.RenderDeclaration(d)
		if err != nil {
			return nil, err
		}
		declLines = append(declLines, line)
	}
	mainLines, err := r.RenderCommands(w.MainContent)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"forward_declarations": declLines,
		"main_contents":        mainLines,
	}, nil
}
