package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/wordarena/arena"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats <script>",
		Short: "Run a script and show arena statistics",
		Long: `The stats command runs an allocation script and reports the final arena
layout (utilization, hole count, fragmentation) together with the operation
counters collected while the script ran.

Example:
  arenactl stats workload.txt
  arenactl stats --fit first workload.txt
  arenactl stats --json workload.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	addArenaFlags(cmd)
	rootCmd.AddCommand(cmd)
}

// ArenaStats is the report printed by the stats command.
type ArenaStats struct {
	Script   string
	Strategy string
	Steps    int
	Failed   int
	Layout   arena.Metrics
	Counters arena.Stats
}

func runStats(args []string) error {
	m, results, err := execScript(args[0], false)
	if err != nil {
		return err
	}
	defer m.Shutdown()

	stats := ArenaStats{
		Script:   args[0],
		Strategy: fitName,
		Steps:    len(results),
		Layout:   m.Metrics(),
		Counters: m.Stats(),
	}
	for _, res := range results {
		if !res.OK {
			stats.Failed++
		}
	}

	if jsonOut {
		return printJSON(stats)
	}
	printStats(message.NewPrinter(language.English), stats)
	return nil
}

func printStats(p *message.Printer, s ArenaStats) {
	lay, c := s.Layout, s.Counters

	printInfo("\nArena Statistics: %s\n", s.Script)
	printInfo("%s\n\n", strings.Repeat("=", 40))

	printInfo("Script:\n")
	printInfo("  Steps: %s (%s failed)\n", p.Sprint(s.Steps), p.Sprint(s.Failed))
	printInfo("  Fit Strategy: %s\n\n", s.Strategy)

	printInfo("Layout:\n")
	if lay.Words == 0 {
		printInfo("  Arena is not initialized\n\n")
	} else {
		printInfo("  Size: %s words x %d bytes (%s bytes)\n",
			p.Sprint(lay.Words), lay.WordSize, p.Sprint(lay.Words*lay.WordSize))
		printInfo("  Blocks: %s\n", p.Sprint(lay.Blocks))
		printInfo("  Used: %s words (%s)\n", p.Sprint(lay.UsedWords), percent(lay.Utilization))
		printInfo("  Free: %s words in %s holes\n", p.Sprint(lay.FreeWords), p.Sprint(lay.Holes))
		printInfo("  Largest Hole: %s words\n", p.Sprint(lay.LargestHole))
		printInfo("  Fragmentation: %s\n\n", percent(lay.Fragmentation))
	}

	printInfo("Operations:\n")
	printInfo("  Initializations: %s\n", p.Sprint(c.Initializations))
	printInfo("  Allocations: %s (%s failed, %s split)\n",
		p.Sprint(c.AllocCalls), p.Sprint(c.AllocFailures), p.Sprint(c.Splits))
	printInfo("  Frees: %s (%s failed)\n", p.Sprint(c.FreeCalls), p.Sprint(c.FreeFailures))
	printInfo("  Coalesced: %s backward, %s forward\n",
		p.Sprint(c.CoalesceBackward), p.Sprint(c.CoalesceForward))
	printInfo("  Words: %s allocated, %s freed\n", p.Sprint(c.WordsAllocated), p.Sprint(c.WordsFreed))
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}
