// Package stub defines the command tree produced by parsing stub generator
// text.
//
// A stub generator is a small declarative description of a puzzle's
// input/output contract: which variables are read, in what order, how they
// repeat, and what literal output the reference solution prints. The parser
// (pkg/parser) turns that text into a Stub; rewrite passes (pkg/rewrite) may
// reshape the tree; the renderer (pkg/renderer) turns it into source code for
// a target language.
//
// The command set is closed. Every Cmd value is one of Read, Loop, LoopLine,
// Write, WriteJoin or Extension. Extension only ever appears in trees that
// have been through a rewrite pass; it wraps pass-specific data together with
// its own rendering behavior so the renderer does not need to know which
// passes exist.
package stub

import (
	"github.com/cockroachdb/errors"
)

// VarType is the primitive type of a read variable.
type VarType string

const (
	Int    VarType = "Int"
	Float  VarType = "Float"
	Long   VarType = "Long"
	Bool   VarType = "Bool"
	Word   VarType = "Word"
	String VarType = "String"
)

// Sized reports whether the type carries a maximum length (word and string).
func (t VarType) Sized() bool {
	return t == Word || t == String
}

// UnsizedType maps a DSL type token to its unsized VarType.
func UnsizedType(token string) (VarType, error) {
	switch token {
	case "int":
		return Int, nil
	case "float":
		return Float, nil
	case "long":
		return Long, nil
	case "bool":
		return Bool, nil
	}
	return "", errors.Newf("no unsized variable type %q", token)
}

// SizedType maps a DSL type token to its sized VarType.
func SizedType(token string) (VarType, error) {
	switch token {
	case "word":
		return Word, nil
	case "string":
		return String, nil
	}
	return "", errors.Newf("no sized variable type %q", token)
}

// VariableCommand describes a single variable read from puzzle input.
//
// Ident keeps the DSL-surface spelling; casing conversion happens at render
// time. MaxLength is set iff the type is sized, and holds either a literal
// number or the identifier of a previously read integer. InputComment is
// empty until an INPUT block references the identifier.
type VariableCommand struct {
	Ident        string
	Type         VarType
	MaxLength    string
	InputComment string
}

// JoinTerm is one argument of a write join(...). Type is nil for quoted
// literal terms and set for identifier terms, resolved against the variables
// declared by prior read/loopline commands.
type JoinTerm struct {
	Text string
	Type *VarType
}

// Cmd is one node of the command tree. The set of implementations is closed;
// the marker method keeps it that way.
type Cmd interface {
	cmd()
}

// Read reads one or more variables from a single input line.
type Read struct {
	Variables []VariableCommand
}

// Loop repeats Body CountVar times. CountVar is a literal number or the
// identifier of a previously read integer. Loops nest arbitrarily deep.
type Loop struct {
	CountVar string
	Body     Cmd
}

// LoopLine reads one line and splits it into len(Variables)-sized groups,
// repeated CountVar times. It is the "N groups on one line" counterpart of
// Loop over Read.
type LoopLine struct {
	CountVar  string
	Variables []VariableCommand
}

// Write emits literal text, possibly multi-line.
type Write struct {
	Lines         []string
	OutputComment []string
}

// WriteJoin emits the concatenation of literal and variable terms.
type WriteJoin struct {
	Terms         []JoinTerm
	OutputComment []string
}

// Extension wraps an artifact produced by a rewrite pass. The artifact
// carries its retained sub-trees and knows which template and context render
// it; see pkg/rewrite.
type Extension struct {
	Artifact Artifact
}

// Artifact is the render capability carried by an Extension node.
//
// TemplateName names the template the renderer resolves for this node.
// Context builds the template context, using the passed CommandRenderer to
// render any retained sub-trees. RetainedCommands exposes those sub-trees so
// tree walks (declared identifiers, nesting depth) still see through the
// artifact.
type Artifact interface {
	TemplateName() string
	Context(r CommandRenderer) (map[string]any, error)
	RetainedCommands() []Cmd
}

// CommandRenderer is the slice of the renderer that rewrite artifacts need:
// rendering retained commands and variable declarations without seeing the
// renderer's internals.
type CommandRenderer interface {
	RenderCommands(cmds []Cmd) ([]string, error)
	RenderDeclaration(v VariableCommand) (string, error)
}

func (Read) cmd()      {}
func (Loop) cmd()      {}
func (LoopLine) cmd()  {}
func (Write) cmd()     {}
func (WriteJoin) cmd() {}
func (Extension) cmd() {}

// Stub is the parsed generator: the command sequence plus the free-form
// statement text. At most one STATEMENT block is honored; a later block
// replaces an earlier one.
type Stub struct {
	Commands  []Cmd
	Statement []string
}
