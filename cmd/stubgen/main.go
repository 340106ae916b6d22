// Package main provides a CLI for generating puzzle input/output stubs.
//
// The CLI supports:
//   - generate: Render generator text as source code for a target language
//   - languages: List available target languages
//   - check: Parse generator text and report errors without rendering
//
// Generator text describes a puzzle's input/output contract (reads, loops,
// writes); the generate command turns it into ready-to-fill boilerplate for
// any configured language.
//
// Usage:
//
//	stubgen [flags] <command>
package main

import (
	"github.com/pthm/stubgen/internal/cli"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.ExitWithError(err)
	}
}
