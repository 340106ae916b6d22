package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm/stubgen/pkg/stub"
)

func mustParse(t *testing.T, text string) *stub.Stub {
	t.Helper()
	s, err := Parse(text)
	require.NoError(t, err)
	return s
}

func typeOf(vt stub.VarType) *stub.VarType {
	return &vt
}

func TestParseReadSingle(t *testing.T) {
	s := mustParse(t, "read anInt:int")
	require.Equal(t, []stub.Cmd{
		stub.Read{Variables: []stub.VariableCommand{{Ident: "anInt", Type: stub.Int}}},
	}, s.Commands)
}

func TestParseReadEveryType(t *testing.T) {
	s := mustParse(t, "read a:int b:float c:long d:bool e:word(50) f:string(L)")
	require.Equal(t, []stub.Cmd{
		stub.Read{Variables: []stub.VariableCommand{
			{Ident: "a", Type: stub.Int},
			{Ident: "b", Type: stub.Float},
			{Ident: "c", Type: stub.Long},
			{Ident: "d", Type: stub.Bool},
			{Ident: "e", Type: stub.Word, MaxLength: "50"},
			{Ident: "f", Type: stub.String, MaxLength: "L"},
		}},
	}, s.Commands)
}

func TestParseReadToleratesExtraSpaces(t *testing.T) {
	s := mustParse(t, "read a:int   b:int")
	require.Len(t, s.Commands, 1)
	read := s.Commands[0].(stub.Read)
	require.Len(t, read.Variables, 2)
}

func TestParseReadErrors(t *testing.T) {
	cases := map[string]string{
		"empty list":       "read",
		"no colon":         "read x",
		"missing type":     "read x:",
		"unsized sized":    "read x:word",
		"unknown type":     "read x:banana",
		"length on int":    "read x:int(5)",
		"gibberish tokens": "read loop write",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(text)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParseWriteSingleLine(t *testing.T) {
	s := mustParse(t, "write result")
	require.Equal(t, []stub.Cmd{stub.Write{Lines: []string{"result"}}}, s.Commands)
}

func TestParseWriteMultilineUntilBlank(t *testing.T) {
	s := mustParse(t, "write hello\nworld\n\nwrite again")
	require.Equal(t, []stub.Cmd{
		stub.Write{Lines: []string{"hello", "world"}},
		stub.Write{Lines: []string{"again"}},
	}, s.Commands)
}

func TestParseWriteTerminatedByKeyword(t *testing.T) {
	s := mustParse(t, "write hello\nread x:int")
	require.Len(t, s.Commands, 2)
	require.Equal(t, stub.Write{Lines: []string{"hello"}}, s.Commands[0])
	require.IsType(t, stub.Read{}, s.Commands[1])
}

func TestParseWriteKeepsInteriorSpacing(t *testing.T) {
	s := mustParse(t, "write many  spaces   here")
	require.Equal(t, []stub.Cmd{stub.Write{Lines: []string{"many  spaces   here"}}}, s.Commands)
}

func TestParseWriteJoin(t *testing.T) {
	s := mustParse(t, "read a:int\nwrite join(a, \"b\")")
	require.Equal(t, stub.WriteJoin{Terms: []stub.JoinTerm{
		{Text: "a", Type: typeOf(stub.Int)},
		{Text: "b"},
	}}, s.Commands[1])
}

func TestParseWriteJoinUnknownIdent(t *testing.T) {
	_, err := Parse("write join(mystery)")
	require.ErrorIs(t, err, ErrSemantic)
}

func TestParseWriteJoinResolvesLatestPairing(t *testing.T) {
	s := mustParse(t, "read a:int\nread a:word(5)\nwrite join(a)")
	join := s.Commands[2].(stub.WriteJoin)
	require.Equal(t, stub.Word, *join.Terms[0].Type)
}

func TestParseWriteJoinDegenerateFormsStayLiteral(t *testing.T) {
	cases := map[string]string{
		"empty join":         "write join()",
		"unterminated join":  "write join(",
		"consecutive commas": "write join(\"a\",, \"b\")",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			s := mustParse(t, text)
			require.Len(t, s.Commands, 1)
			write, ok := s.Commands[0].(stub.Write)
			require.True(t, ok, "expected a literal Write, got %T", s.Commands[0])
			require.Equal(t, strings.TrimPrefix(text, "write "), write.Lines[0])
		})
	}
}

func TestParseWriteJoinDetectedOnFirstLineOnly(t *testing.T) {
	s := mustParse(t, "read a:int\nwrite hello\njoin(a)")
	require.Equal(t, stub.Write{Lines: []string{"hello", "join(a)"}}, s.Commands[1])
}

func TestParseLoop(t *testing.T) {
	s := mustParse(t, "loop n read x:int")
	require.Equal(t, []stub.Cmd{
		stub.Loop{CountVar: "n", Body: stub.Read{Variables: []stub.VariableCommand{{Ident: "x", Type: stub.Int}}}},
	}, s.Commands)
}

func TestParseLoopBodyOnNextLine(t *testing.T) {
	s := mustParse(t, "loop n\nwrite x")
	require.Equal(t, []stub.Cmd{
		stub.Loop{CountVar: "n", Body: stub.Write{Lines: []string{"x"}}},
	}, s.Commands)
}

func TestParseNestedLoops(t *testing.T) {
	s := mustParse(t, "loop n loop m write deep")
	outer := s.Commands[0].(stub.Loop)
	inner := outer.Body.(stub.Loop)
	require.Equal(t, "m", inner.CountVar)
	require.Equal(t, stub.Write{Lines: []string{"deep"}}, inner.Body)
}

func TestParseDeeplyNestedLoops(t *testing.T) {
	depth := 20
	text := strings.Repeat("loop 2 ", depth) + "write deep"
	s := mustParse(t, text)

	cmd := s.Commands[0]
	for i := 0; i < depth; i++ {
		loop, ok := cmd.(stub.Loop)
		require.True(t, ok, "expected loop at depth %d", i)
		cmd = loop.Body
	}
	require.Equal(t, stub.Write{Lines: []string{"deep"}}, cmd)
}

func TestParseLoopErrors(t *testing.T) {
	cases := map[string]string{
		"no count":        "loop",
		"no body":         "loop n",
		"unloopable body": "loop n OUTPUT",
	}
	for name, text := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(text)
			require.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestParseLoopLine(t *testing.T) {
	s := mustParse(t, "loopline n x:int y:word(10)")
	require.Equal(t, []stub.Cmd{
		stub.LoopLine{CountVar: "n", Variables: []stub.VariableCommand{
			{Ident: "x", Type: stub.Int},
			{Ident: "y", Type: stub.Word, MaxLength: "10"},
		}},
	}, s.Commands)
}

func TestParseGameloopUnsupported(t *testing.T) {
	_, err := Parse("gameloop")
	require.ErrorIs(t, err, ErrSyntax)
	require.Contains(t, err.Error(), "not supported")
}

func TestParseUnknownKeyword(t *testing.T) {
	_, err := Parse("frobnicate x")
	require.ErrorIs(t, err, ErrSyntax)
}

func TestParseStatement(t *testing.T) {
	s := mustParse(t, "STATEMENT\n  Hello  \nWorld")
	require.Equal(t, []string{"Hello", "World"}, s.Statement)
}

func TestParseStatementLaterBlockReplaces(t *testing.T) {
	s := mustParse(t, "STATEMENT\nfirst\n\nSTATEMENT\nsecond")
	require.Equal(t, []string{"second"}, s.Statement)
}

func TestParseStatementTerminatedByKeywordLine(t *testing.T) {
	s := mustParse(t, "STATEMENT\nGuess the number\nread x:int")
	require.Equal(t, []string{"Guess the number"}, s.Statement)
	require.Len(t, s.Commands, 1)
	require.IsType(t, stub.Read{}, s.Commands[0])
}

func TestParseOutputCommentAttaches(t *testing.T) {
	s := mustParse(t, "write a\nloop n write b\nOUTPUT\nThe result")

	require.Equal(t, []string{"The result"}, s.Commands[0].(stub.Write).OutputComment)
	loop := s.Commands[1].(stub.Loop)
	require.Equal(t, []string{"The result"}, loop.Body.(stub.Write).OutputComment)
}

func TestParseOutputCommentNeverOverwrites(t *testing.T) {
	s := mustParse(t, "write a\nOUTPUT\nfirst\n\nwrite b\nOUTPUT\nsecond")

	require.Equal(t, []string{"first"}, s.Commands[0].(stub.Write).OutputComment)
	require.Equal(t, []string{"second"}, s.Commands[1].(stub.Write).OutputComment)
}

func TestParseOutputCommentOnWriteJoin(t *testing.T) {
	s := mustParse(t, "read a:int\nwrite join(a)\nOUTPUT\nJoined output")
	join := s.Commands[1].(stub.WriteJoin)
	require.Equal(t, []string{"Joined output"}, join.OutputComment)
}

func TestParseInputCommentExactMatch(t *testing.T) {
	s := mustParse(t, "read n:int\nloop n read x:int\nINPUT\nn: the count\nx: a value")

	read := s.Commands[0].(stub.Read)
	require.Equal(t, "the count", read.Variables[0].InputComment)
	loop := s.Commands[1].(stub.Loop)
	require.Equal(t, "a value", loop.Body.(stub.Read).Variables[0].InputComment)
}

func TestParseInputCommentIgnoresNearMisses(t *testing.T) {
	s := mustParse(t, "read n:int\nINPUT\nnn: nope\njust prose without an ident")
	read := s.Commands[0].(stub.Read)
	require.Empty(t, read.Variables[0].InputComment)
}

func TestParseInputCommentRepeatedIdentOverwrites(t *testing.T) {
	s := mustParse(t, "read n:int\nINPUT\nn: first\nn: second")
	read := s.Commands[0].(stub.Read)
	require.Equal(t, "second", read.Variables[0].InputComment)
}

func TestParseFullGenerator(t *testing.T) {
	text := strings.Join([]string{
		"read count:int",
		"loop count read value:int name:word(20)",
		"loopline count pair:int",
		"write done",
		"",
		"STATEMENT",
		"Read pairs and report.",
		"",
		"INPUT",
		"count: number of entries",
		"",
		"OUTPUT",
		"A single word.",
	}, "\n")

	s := mustParse(t, text)
	require.Len(t, s.Commands, 4)
	require.Equal(t, []string{"Read pairs and report."}, s.Statement)
	require.Equal(t, "number of entries", s.Commands[0].(stub.Read).Variables[0].InputComment)
	require.Equal(t, []string{"A single word."}, s.Commands[3].(stub.Write).OutputComment)
}
