package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pthm/stubgen"
	"github.com/pthm/stubgen/internal/cli"
	"github.com/pthm/stubgen/pkg/language"
	"github.com/pthm/stubgen/pkg/parser"
)

var (
	genLanguage string
	genOutput   string
)

var generateCmd = &cobra.Command{
	Use:     "generate [file]",
	Aliases: []string{"gen"},
	Short:   "Generate stub code from generator text",
	Long: `Generate stub code from generator text.

Reads generator text from the given file, or from stdin when the argument is
omitted or "-". The generated code is written to stdout unless --output is
set.`,
	Example: `  # Generate Python from a generator file
  stubgen generate --language python puzzle.stub

  # Generate Ruby from stdin
  echo 'read n:int' | stubgen generate --language ruby

  # Write to a file, picking the language by alias
  stubgen generate -l py --output stub.py puzzle.stub`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		languageName := cfg.ResolvedLanguage(genLanguage)
		if languageName == "" {
			return cli.ConfigError("--language is required (or set generate.language in stubgen.yaml)", nil)
		}

		generator, err := readGenerator(args)
		if err != nil {
			return cli.GeneralError("reading generator text", err)
		}
		logger.Debug("generating stub",
			zap.String("language", languageName),
			zap.Int("bytes", len(generator)))

		out, err := stubgen.GenerateWithOptions(languageName, generator, stubgen.Options{
			LanguageDir: cfg.LanguageDir,
		})
		if err != nil {
			return classifyError(err)
		}

		if genOutput != "" {
			if err := os.WriteFile(genOutput, []byte(out+"\n"), 0o644); err != nil {
				return cli.GeneralError(fmt.Sprintf("writing %s", genOutput), err)
			}
			if !quiet {
				fmt.Printf("Generated %s\n", genOutput)
			}
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

// classifyError maps pipeline failures onto the CLI's exit codes.
func classifyError(err error) error {
	switch {
	case errors.Is(err, parser.ErrSyntax), errors.Is(err, parser.ErrSemantic):
		return cli.ParseError("invalid generator", err)
	case errors.Is(err, language.ErrUnknownLanguage):
		return cli.LanguageError("resolving language", err)
	}
	return cli.GeneralError("generation failed", err)
}

func readGenerator(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func init() {
	f := generateCmd.Flags()
	f.StringVarP(&genLanguage, "language", "l", "", "target language name or alias")
	f.StringVarP(&genOutput, "output", "o", "", "output file path (default: stdout)")
}
