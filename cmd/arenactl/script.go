package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/joshuapare/wordarena/arena"
	"github.com/joshuapare/wordarena/arena/fit"
	"github.com/joshuapare/wordarena/arena/snapshot"
)

// step is one parsed script line.
type step struct {
	Line int
	Op   string
	Args []string
}

func (s step) String() string {
	return strings.TrimSpace(s.Op + " " + strings.Join(s.Args, " "))
}

// arity lists the argument count of every script command.
var arity = map[string]int{
	"init":     1, // init <words>
	"shutdown": 0,
	"alloc":    2, // alloc <name> <bytes>
	"free":     1, // free <name>
	"fit":      1, // fit best|worst|first
	"holes":    0,
	"bitmap":   0,
	"dump":     1, // dump <path>
	"check":    0,
}

// parseScript reads one command per line. Blank lines and text after '#' are
// ignored. Input is UTF-8 unless it starts with a UTF-8 or UTF-16 byte order
// mark.
func parseScript(r io.Reader) ([]step, error) {
	var steps []step
	sc := bufio.NewScanner(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		op := strings.ToLower(fields[0])
		want, ok := arity[op]
		if !ok {
			return nil, fmt.Errorf("line %d: unknown command %q", line, fields[0])
		}
		if len(fields)-1 != want {
			return nil, fmt.Errorf("line %d: %s takes %d argument(s), got %d", line, op, want, len(fields)-1)
		}
		switch op {
		case "init":
			if _, err := strconv.Atoi(fields[1]); err != nil {
				return nil, fmt.Errorf("line %d: init: bad word count %q", line, fields[1])
			}
		case "alloc":
			if _, err := strconv.Atoi(fields[2]); err != nil {
				return nil, fmt.Errorf("line %d: alloc: bad byte count %q", line, fields[2])
			}
		case "fit":
			if _, err := fit.ByName(fields[1]); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}
		steps = append(steps, step{Line: line, Op: op, Args: fields[1:]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

// loadScript parses the script at path; "-" reads stdin.
func loadScript(path string) ([]step, error) {
	if path == "-" {
		return parseScript(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()
	return parseScript(f)
}

// stepResult records the outcome of one executed step.
type stepResult struct {
	Line    int    `json:"line"`
	Command string `json:"command"`
	OK      bool   `json:"ok"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

// runner executes script steps against a Manager.
type runner struct {
	m     *arena.Manager
	names map[string]arena.Addr

	// afterStep runs after every step; an error aborts the script.
	afterStep func(step) error
}

func newRunner(m *arena.Manager) *runner {
	return &runner{m: m, names: make(map[string]arena.Addr)}
}

// run executes steps in order. Step failures are recorded and execution
// continues; only afterStep errors abort.
func (r *runner) run(steps []step) ([]stepResult, error) {
	results := make([]stepResult, 0, len(steps))
	for _, s := range steps {
		out, err := r.exec(s)
		res := stepResult{Line: s.Line, Command: s.String(), OK: err == nil, Output: out}
		if err != nil {
			res.Error = err.Error()
		}
		results = append(results, res)
		if r.afterStep != nil {
			if hookErr := r.afterStep(s); hookErr != nil {
				return results, fmt.Errorf("line %d (%s): %w", s.Line, s, hookErr)
			}
		}
	}
	return results, nil
}

func (r *runner) exec(s step) (string, error) {
	m := r.m
	switch s.Op {
	case "init":
		words, _ := strconv.Atoi(s.Args[0])
		if err := m.Initialize(words); err != nil {
			return "", err
		}
		clear(r.names)
		return fmt.Sprintf("%d words of %d bytes", words, m.WordSize()), nil

	case "shutdown":
		clear(r.names)
		return "", m.Shutdown()

	case "alloc":
		name := s.Args[0]
		n, _ := strconv.Atoi(s.Args[1])
		addr, err := m.Allocate(n)
		if err != nil {
			return "", err
		}
		r.names[name] = addr
		word := int(addr-m.ArenaBase()) / m.WordSize()
		return fmt.Sprintf("%s = word %d", name, word), nil

	case "free":
		name := s.Args[0]
		addr, ok := r.names[name]
		if !ok {
			return "", fmt.Errorf("unknown allocation %q", name)
		}
		// The name is kept so that a second free reports the double free.
		return "", m.Free(addr)

	case "fit":
		strategy, err := fit.ByName(s.Args[0])
		if err != nil {
			return "", err
		}
		m.SetFitStrategy(strategy)
		return "", nil

	case "holes":
		hl, err := m.HoleList()
		if err != nil {
			return "", err
		}
		holes, err := snapshot.DecodeHoleList(hl)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s  (% x)", snapshot.FormatText(holes), hl), nil

	case "bitmap":
		bm, err := m.Bitmap()
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(bm), nil

	case "dump":
		if err := m.Dump(s.Args[0]); err != nil {
			return "", err
		}
		return "wrote " + s.Args[0], nil

	case "check":
		if err := verifyManager(m); err != nil {
			return "", err
		}
		return "ok", nil
	}
	return "", fmt.Errorf("unknown command %q", s.Op)
}

// verifyManager checks the block-list invariants and that both snapshot
// encodings agree. An Uninitialized manager has nothing to verify.
func verifyManager(m *arena.Manager) error {
	if !m.Initialized() {
		return nil
	}
	if err := m.Check(); err != nil {
		return err
	}
	hl, err := m.HoleList()
	if err != nil {
		return err
	}
	bm, err := m.Bitmap()
	if err != nil {
		return err
	}
	return snapshot.Agree(hl, bm, m.Words())
}

// printResults writes results as text or JSON.
func printResults(results []stepResult) error {
	if jsonOut {
		return printJSON(results)
	}
	for _, res := range results {
		switch {
		case !res.OK:
			printInfo("%3d  %-20s FAILED: %s\n", res.Line, res.Command, res.Error)
		case res.Output != "":
			printInfo("%3d  %-20s %s\n", res.Line, res.Command, res.Output)
		default:
			printVerbose("%3d  %-20s ok\n", res.Line, res.Command)
		}
	}
	return nil
}
