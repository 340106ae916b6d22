package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizeAppendsEOLPerLine(t *testing.T) {
	tokens := Tokenize("read x:int\nwrite hello")
	require.Equal(t, []string{"read", "x:int", EOL, "write", "hello", EOL}, tokens)
}

func TestTokenizePreservesEmptyTokens(t *testing.T) {
	tokens := Tokenize("write hello  world")
	require.Equal(t, []string{"write", "hello", "", "world", EOL}, tokens)
}

func TestTokenizeBlankAndSpaceLinesDiffer(t *testing.T) {
	blank := Tokenize("a\n\nb")
	require.Equal(t, []string{"a", EOL, "", EOL, "b", EOL}, blank)

	// A line of two spaces carries two empty tokens, not one.
	spaces := Tokenize("a\n  \nb")
	require.Equal(t, []string{"a", EOL, "", "", "", EOL, "b", EOL}, spaces)
}
