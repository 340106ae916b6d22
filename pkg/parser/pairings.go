package parser

import "github.com/pthm/stubgen/pkg/stub"

// ReadPairings is the running table of variable identifier to declared type,
// built while parsing read and loopline commands. write join(...) terms are
// resolved against it; referencing an identifier that was never read is an
// error. Re-declaring an identifier overwrites its pairing, so later joins
// see the latest type.
type ReadPairings map[string]stub.VarType

// Register records the declared type of every variable in vars.
func (p ReadPairings) Register(vars []stub.VariableCommand) {
	for _, v := range vars {
		p[v.Ident] = v.Type
	}
}

// Resolve looks up the declared type of ident.
func (p ReadPairings) Resolve(ident string) (stub.VarType, bool) {
	t, ok := p[ident]
	return t, ok
}
