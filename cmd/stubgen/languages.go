package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/pthm/stubgen/internal/cli"
	"github.com/pthm/stubgen/pkg/language"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List available target languages",
	Long: `List available target languages.

User-supplied definitions (language_dir in stubgen.yaml, or STUBGEN_LANGUAGE_DIR)
are listed first and shadow bundled languages with the same name.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := language.List(cfg.LanguageDir)
		if err != nil {
			return cli.GeneralError("listing languages", err)
		}

		if quiet {
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		}

		rows := pterm.TableData{{"Name", "Extension", "Aliases"}}
		for _, name := range names {
			lang, err := language.Resolve(name, cfg.LanguageDir)
			if err != nil {
				return cli.LanguageError(fmt.Sprintf("loading %q", name), err)
			}
			aliases := ""
			for i, a := range lang.Aliases {
				if i > 0 {
					aliases += ", "
				}
				aliases += a
			}
			rows = append(rows, []string{name, "." + lang.SourceFileExt, aliases})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	},
}
