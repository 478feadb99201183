package main

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "verify <script>",
		Short: "Run a script and verify invariants after every step",
		Long: `The verify command runs an allocation script and, after every step,
checks that the blocks tile the arena without gaps or overlaps, that no two
adjacent blocks are both free, and that the hole-list and bitmap encodings
agree on which words are free.

Example:
  arenactl verify workload.txt
  arenactl verify --fit worst workload.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(args)
		},
	}
	addArenaFlags(cmd)
	rootCmd.AddCommand(cmd)
}

type verifyReport struct {
	Script string `json:"script"`
	Steps  int    `json:"steps"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
}

func runVerify(args []string) error {
	m, results, err := execScript(args[0], true)
	if m != nil {
		defer m.Shutdown()
	}
	if results == nil && err != nil {
		return err
	}

	report := verifyReport{Script: args[0], Steps: len(results), Valid: err == nil}
	if err != nil {
		report.Error = err.Error()
	}
	if jsonOut {
		if printErr := printJSON(report); printErr != nil {
			return printErr
		}
		return err
	}
	if err != nil {
		return err
	}
	printInfo("%s: %d steps, invariants hold\n", args[0], len(results))
	return nil
}
