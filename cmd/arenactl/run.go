package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/wordarena/arena"
	"github.com/joshuapare/wordarena/arena/fit"
)

var (
	wordSize   int
	fitName    string
	initWords  int
	checkSteps bool
)

// addArenaFlags registers the flags shared by every command that builds a Manager.
func addArenaFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&wordSize, "word-size", 1, "Bytes per word")
	cmd.Flags().StringVar(&fitName, "fit", "best", "Fit strategy: best, worst or first")
	cmd.Flags().IntVar(&initWords, "words", 0, "Initialize the arena with this many words before the script runs")
}

func init() {
	cmd := newRunCmd()
	addArenaFlags(cmd)
	cmd.Flags().BoolVar(&checkSteps, "check", false, "Verify arena invariants after every step")
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <script>",
		Short: "Run an allocation script",
		Long: `The run command executes an allocation script against a fresh arena and
prints the outcome of every step. Failed steps are reported and the script
continues.

Script commands (one per line, '#' starts a comment):
  init <words>          initialize (or re-initialize) the arena
  shutdown              release the arena
  alloc <name> <bytes>  allocate and remember the address as <name>
  free <name>           free a named allocation
  fit best|worst|first  switch fit strategy
  holes                 print the hole list
  bitmap                print the occupancy bitmap (hex)
  dump <path>           write the hole list as text to <path>
  check                 verify invariants

Example:
  arenactl run workload.txt
  arenactl run --word-size 8 --fit worst --words 1024 workload.txt
  arenactl run --json workload.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(args)
		},
	}
}

// newManager builds a Manager from the shared flags and applies --words.
func newManager() (*arena.Manager, error) {
	strategy, err := fit.ByName(fitName)
	if err != nil {
		return nil, err
	}
	m, err := arena.New(wordSize, strategy)
	if err != nil {
		return nil, err
	}
	if initWords > 0 {
		if err := m.Initialize(initWords); err != nil {
			return nil, fmt.Errorf("initialize %d words: %w", initWords, err)
		}
	}
	return m, nil
}

// execScript loads and runs the script at path, optionally verifying after
// every step.
func execScript(path string, check bool) (*arena.Manager, []stepResult, error) {
	steps, err := loadScript(path)
	if err != nil {
		return nil, nil, err
	}
	printVerbose("Loaded %d steps from %s\n", len(steps), path)

	m, err := newManager()
	if err != nil {
		return nil, nil, err
	}
	r := newRunner(m)
	if check {
		r.afterStep = func(step) error { return verifyManager(m) }
	}
	results, err := r.run(steps)
	return m, results, err
}

func runRun(args []string) error {
	m, results, err := execScript(args[0], checkSteps)
	if m != nil {
		defer m.Shutdown()
	}
	if printErr := printResults(results); printErr != nil {
		return printErr
	}
	return err
}
