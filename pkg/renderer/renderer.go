// Package renderer turns a parsed (and possibly rewritten) command tree into
// target-language source code.
//
// Rendering is entirely template driven. Each command kind resolves a
// template named "<kind>.<source_file_ext>.tmpl" in the language's template
// set; all of a language's template files are parsed into one set, so
// templates can reference each other and share helpers by name. A language
// whose set lacks a template for a command kind that actually occurs is a
// configuration error.
package renderer

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/cockroachdb/errors"

	"github.com/pthm/stubgen/pkg/language"
	"github.com/pthm/stubgen/pkg/stub"
)

// ErrMissingTemplate marks a command kind with no template in the language's
// set.
var ErrMissingTemplate = errors.New("missing template")

// indexPoolSize bounds how deep loop nesting can go before index names run
// out. Deeper nesting reuses suffixed names.
const indexPoolSize = 26

// Renderer renders command trees for one language.
type Renderer struct {
	lang *language.Language
	tmpl *template.Template
	pool []string
}

var funcs = template.FuncMap{
	// dict builds a map from alternating key/value arguments, for passing
	// composite context to nested templates.
	"dict": func(kv ...any) (map[string]any, error) {
		if len(kv)%2 != 0 {
			return nil, errors.New("dict needs an even number of arguments")
		}
		m := make(map[string]any, len(kv)/2)
		for i := 0; i < len(kv); i += 2 {
			key, ok := kv[i].(string)
			if !ok {
				return nil, errors.Newf("dict key %v is not a string", kv[i])
			}
			m[key] = kv[i+1]
		}
		return m, nil
	},
}

// New loads the language's template set.
func New(lang *language.Language) (*Renderer, error) {
	tmpl, err := template.New(lang.Name).Funcs(funcs).ParseFS(lang.Templates(), "*.tmpl")
	if err != nil {
		return nil, errors.Wrapf(err, "loading templates for %s", lang.Name)
	}
	return &Renderer{lang: lang, tmpl: tmpl}, nil
}

// Render renders the whole stub: statement first, then the command sequence,
// composed by the language's main template. The result is trimmed of leading
// and trailing whitespace.
func (r *Renderer) Render(s *stub.Stub) (string, error) {
	r.pool = stub.LoopIndexNames(stub.DeclaredIdentifiers(s.Commands), indexPoolSize)

	statement := ""
	if len(s.Statement) > 0 {
		var err error
		statement, err = r.execute("statement", map[string]any{
			"statement_lines": s.Statement,
		})
		if err != nil {
			return "", err
		}
	}
	codeLines, err := r.RenderCommands(s.Commands)
	if err != nil {
		return "", err
	}
	out, err := r.execute("main", map[string]any{
		"statement":  strings.TrimRight(statement, "\n"),
		"code_lines": codeLines,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RenderCommands renders a command sequence to source lines. It is the
// CommandRenderer given to rewrite artifacts, which render their retained
// sub-trees through it.
func (r *Renderer) RenderCommands(cmds []stub.Cmd) ([]string, error) {
	var b strings.Builder
	for _, cmd := range cmds {
		out, err := r.renderCommand(cmd, 0)
		if err != nil {
			return nil, err
		}
		b.WriteString(out)
	}
	return splitLines(b.String()), nil
}

// RenderDeclaration renders one hoisted variable declaration via the
// language's forward_declaration template.
func (r *Renderer) RenderDeclaration(v stub.VariableCommand) (string, error) {
	out, err := r.execute("forward_declaration", map[string]any{
		"var": r.varContext(v),
	})
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}

func (r *Renderer) renderCommand(cmd stub.Cmd, depth int) (string, error) {
	switch c := cmd.(type) {
	case stub.Read:
		return r.renderRead(c)
	case stub.Write:
		return r.execute("write", map[string]any{
			"messages":       trimmedLines(c.Lines),
			"output_comment": c.OutputComment,
		})
	case stub.WriteJoin:
		return r.execute("write_join", map[string]any{
			"terms":          r.termContexts(c.Terms),
			"output_comment": c.OutputComment,
		})
	case stub.Loop:
		return r.renderLoop(c, depth)
	case stub.LoopLine:
		return r.renderLoopLine(c, depth)
	case stub.Extension:
		ctx, err := c.Artifact.Context(r)
		if err != nil {
			return "", err
		}
		return r.execute(c.Artifact.TemplateName(), ctx)
	}
	return "", errors.Newf("unknown command %T", cmd)
}

func (r *Renderer) renderRead(c stub.Read) (string, error) {
	if len(c.Variables) == 1 {
		return r.execute("read_one", map[string]any{
			"var": r.varContext(c.Variables[0]),
		})
	}
	return r.execute("read_many", map[string]any{
		"vars":        r.varContexts(c.Variables),
		"names":       r.joinedNames(c.Variables),
		"single_type": singleType(c.Variables),
	})
}

func (r *Renderer) renderLoop(c stub.Loop, depth int) (string, error) {
	body, err := r.renderCommand(c.Body, depth+1)
	if err != nil {
		return "", err
	}
	return r.execute("loop", map[string]any{
		"count": r.lang.TransformVariableName(c.CountVar),
		"index": r.lang.TransformVariableName(r.indexName(depth)),
		"inner": splitLines(body),
	})
}

func (r *Renderer) renderLoopLine(c stub.LoopLine, depth int) (string, error) {
	return r.execute("loopline", map[string]any{
		"count":       r.lang.TransformVariableName(c.CountVar),
		"index":       r.lang.TransformVariableName(r.indexName(depth)),
		"vars":        r.varContexts(c.Variables),
		"names":       r.joinedNames(c.Variables),
		"single_type": singleType(c.Variables),
	})
}

func (r *Renderer) execute(kind string, ctx map[string]any) (string, error) {
	name := fmt.Sprintf("%s.%s.tmpl", kind, r.lang.SourceFileExt)
	t := r.tmpl.Lookup(name)
	if t == nil {
		return "", errors.Wrapf(ErrMissingTemplate, "language %s has no %s", r.lang.Name, name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, ctx); err != nil {
		return "", errors.Wrapf(err, "rendering %s", name)
	}
	return buf.String(), nil
}

// indexName returns the loop index identifier for a nesting depth. The pool
// skips letters taken by real variables, so indices never shadow input.
func (r *Renderer) indexName(depth int) string {
	if r.pool == nil {
		r.pool = stub.LoopIndexNames(nil, indexPoolSize)
	}
	return r.pool[depth%len(r.pool)]
}

func (r *Renderer) varContext(v stub.VariableCommand) map[string]any {
	maxLength := v.MaxLength
	if maxLength != "" {
		maxLength = r.lang.TransformVariableName(maxLength)
	}
	return map[string]any{
		"name":       r.lang.TransformVariableName(v.Ident),
		"ident":      v.Ident,
		"type":       string(v.Type),
		"type_token": r.lang.TypeToken(string(v.Type)),
		"max_length": maxLength,
		"comment":    v.InputComment,
	}
}

func (r *Renderer) varContexts(vars []stub.VariableCommand) []map[string]any {
	ctxs := make([]map[string]any, len(vars))
	for i, v := range vars {
		ctxs[i] = r.varContext(v)
	}
	return ctxs
}

func (r *Renderer) joinedNames(vars []stub.VariableCommand) string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = r.lang.TransformVariableName(v.Ident)
	}
	return strings.Join(names, ", ")
}

func (r *Renderer) termContexts(terms []stub.JoinTerm) []map[string]any {
	ctxs := make([]map[string]any, len(terms))
	for i, t := range terms {
		ctx := map[string]any{
			"text":       t.Text,
			"is_literal": t.Type == nil,
			"name":       "",
			"type":       "",
		}
		if t.Type != nil {
			ctx["name"] = r.lang.TransformVariableName(t.Text)
			ctx["type"] = string(*t.Type)
		}
		ctxs[i] = ctx
	}
	return ctxs
}

// singleType returns the shared type name when every variable has the same
// type, and "" otherwise.
func singleType(vars []stub.VariableCommand) string {
	t := vars[0].Type
	for _, v := range vars[1:] {
		if v.Type != t {
			return ""
		}
	}
	return string(t)
}

func trimmedLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(l)
	}
	return out
}

// splitLines splits rendered template output into lines, dropping the final
// empty fragment left by the terminating newline but keeping interior blank
// lines.
func splitLines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
