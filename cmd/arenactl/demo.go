package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/wordarena/arena"
	"github.com/joshuapare/wordarena/arena/fit"
)

// demoScript reproduces holes [0,10] [12,2] [20,6] over 26 one-byte words,
// then frees the two used blocks between them.
const demoScript = `init 26
alloc a 10
alloc b 2
alloc c 2
alloc d 6
free a
free c
holes
bitmap
free d
holes
free b
holes
free b   # double free is rejected
check
`

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "demo",
		Short: "Run the built-in worked example",
		Long: `The demo command runs a fixed script on a 26-word arena with one-byte
words, printing the hole list and bitmap along the way.

Example:
  arenactl demo
  arenactl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	})
}

func runDemo() error {
	steps, err := parseScript(strings.NewReader(demoScript))
	if err != nil {
		return err
	}
	m, err := arena.New(1, fit.BestFit)
	if err != nil {
		return err
	}
	defer m.Shutdown()

	results, err := newRunner(m).run(steps)
	if err != nil {
		return err
	}
	return printResults(results)
}
