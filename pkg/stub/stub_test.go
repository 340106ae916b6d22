package stub

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVarTypeSized(t *testing.T) {
	require.True(t, Word.Sized())
	require.True(t, String.Sized())
	for _, vt := range []VarType{Int, Float, Long, Bool} {
		require.False(t, vt.Sized(), "%s", vt)
	}
}

func TestUnsizedType(t *testing.T) {
	for token, want := range map[string]VarType{
		"int": Int, "float": Float, "long": Long, "bool": Bool,
	} {
		got, err := UnsizedType(token)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := UnsizedType("word")
	require.Error(t, err)
}

func TestSizedType(t *testing.T) {
	got, err := SizedType("word")
	require.NoError(t, err)
	require.Equal(t, Word, got)

	_, err = SizedType("int")
	require.Error(t, err)
}

func TestLoopIndexNames(t *testing.T) {
	require.Equal(t, []string{"i", "j", "k"}, LoopIndexNames(nil, 3))
	require.Equal(t, []string{"j", "l"}, LoopIndexNames(map[string]bool{"i": true, "k": true}, 2))

	// Pool exhaustion rolls over to suffixed names.
	names := LoopIndexNames(nil, 30)
	require.Len(t, names, 30)
	require.Equal(t, "i1", names[26])
}

func TestDeclaredIdentifiers(t *testing.T) {
	tree := []Cmd{
		Read{Variables: []VariableCommand{{Ident: "n", Type: Int}}},
		Loop{CountVar: "n", Body: LoopLine{CountVar: "n", Variables: []VariableCommand{{Ident: "x", Type: Int}}}},
		Write{Lines: []string{"done"}},
	}
	idents := DeclaredIdentifiers(tree)
	require.Equal(t, map[string]bool{"n": true, "x": true}, idents)
}

func TestMaxNestingDepth(t *testing.T) {
	require.Equal(t, 0, MaxNestingDepth([]Cmd{Write{Lines: []string{"x"}}}))

	deep := []Cmd{
		Loop{CountVar: "a", Body: Loop{CountVar: "b", Body: LoopLine{CountVar: "c"}}},
		Loop{CountVar: "d", Body: Read{}},
	}
	require.Equal(t, 3, MaxNestingDepth(deep))
}
