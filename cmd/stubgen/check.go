package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pthm/stubgen/internal/cli"
	"github.com/pthm/stubgen/pkg/parser"
	"github.com/pthm/stubgen/pkg/stub"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse generator text and report errors",
	Long: `Parse generator text and report errors without generating code.

Useful when authoring a generator: exits non-zero with a parse diagnostic on
bad input, and prints a command summary on good input.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		generator, err := readGenerator(args)
		if err != nil {
			return cli.GeneralError("reading generator text", err)
		}

		s, err := parser.Parse(generator)
		if err != nil {
			return cli.ParseError("invalid generator", err)
		}

		if !quiet {
			pterm.Success.Printfln("generator is valid: %d top-level commands", len(s.Commands))
			if len(s.Statement) > 0 {
				pterm.Info.Printfln("statement: %d lines", len(s.Statement))
			}
			vars := stub.DeclaredIdentifiers(s.Commands)
			pterm.Info.Printfln("declares %d variables", len(vars))
		}
		return nil
	},
}
