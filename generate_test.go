package stubgen_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pthm/stubgen"
	"github.com/pthm/stubgen/pkg/language"
	"github.com/pthm/stubgen/pkg/parser"
)

func TestGenerateRuby(t *testing.T) {
	out, err := stubgen.Generate("ruby", "read m:int n:int\nwrite result")
	require.NoError(t, err)
	require.Equal(t, "m, n = gets.split.map(&:to_i)\nputs \"result\"", out)
}

func TestGenerateByAlias(t *testing.T) {
	out, err := stubgen.Generate("py", "read anInt:int\nwrite solution")
	require.NoError(t, err)
	require.Equal(t, "an_int = int(input())\nprint(\"solution\")", out)
}

func TestGenerateRunsLanguagePreprocessor(t *testing.T) {
	out, err := stubgen.Generate("pascal", "read n:int\nwrite ok")
	require.NoError(t, err)
	require.Contains(t, out, "program Solution;")
	require.Contains(t, out, "N: Integer;")
}

func TestGenerateNoTrailingNewline(t *testing.T) {
	out, err := stubgen.Generate("python", "write x")
	require.NoError(t, err)
	require.Equal(t, "print(\"x\")", out)
}

func TestGenerateUnknownLanguage(t *testing.T) {
	_, err := stubgen.Generate("cobol", "read n:int")
	require.ErrorIs(t, err, language.ErrUnknownLanguage)
}

func TestGenerateParseErrorsPropagate(t *testing.T) {
	_, err := stubgen.Generate("python", "gameloop")
	require.ErrorIs(t, err, parser.ErrSyntax)

	_, err = stubgen.Generate("python", "write join(ghost)")
	require.ErrorIs(t, err, parser.ErrSemantic)
}

func TestGenerateWithUserLanguageDir(t *testing.T) {
	dir := t.TempDir()
	toy := filepath.Join(dir, "shout")
	require.NoError(t, os.MkdirAll(toy, 0o755))
	files := map[string]string{
		"stub_config.toml": "name = \"Shout\"\nsource_file_ext = \"sh\"\nvariable_format = \"snake_case\"\n",
		"main.sh.tmpl":     "{{range .code_lines}}{{.}}\n{{end}}",
		"write.sh.tmpl":    "{{range .messages}}SAY {{.}}\n{{end}}",
		"read_one.sh.tmpl": "GET {{.var.name}}\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(toy, name), []byte(content), 0o644))
	}

	out, err := stubgen.GenerateWithOptions("shout", "read n:int\nwrite hi", stubgen.Options{LanguageDir: dir})
	require.NoError(t, err)
	require.Equal(t, "GET n\nSAY hi", out)
}

func TestGenerateIsDeterministic(t *testing.T) {
	text := "STATEMENT\nSum the numbers\n\nread n:int\nloop n read x:int\nwrite total"
	first, err := stubgen.Generate("python", text)
	require.NoError(t, err)
	second, err := stubgen.Generate("python", text)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Contains(t, first, "# Sum the numbers")
}
