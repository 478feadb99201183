package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fragmentScript = `init 26
alloc a 10
alloc b 2
alloc c 2
alloc d 6
free a
free c
`

func TestDemoCommand(t *testing.T) {
	resetFlags()
	out, err := captureOutput(t, runDemo)
	require.NoError(t, err)
	assertContains(t, out, []string{
		"[0, 10] - [12, 2] - [20, 6]",
		"040000cc0f00",
		"[0, 10] - [12, 14]",
		"[0, 26]",
		"FAILED",
	})
}

func TestDemoCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	defer resetFlags()

	out, err := captureOutput(t, runDemo)
	require.NoError(t, err)

	var results []stepResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 15)
	assert.Equal(t, "040000cc0f00", results[8].Output)
	assert.False(t, results[13].OK)
}

func TestRunCommand(t *testing.T) {
	tests := []struct {
		name        string
		script      string
		setup       func()
		wantErr     bool
		wantContain []string
	}{
		{
			name:        "best fit",
			script:      fragmentScript + "alloc e 2\nholes\n",
			wantContain: []string{"e = word 12", "[0, 10] - [20, 6]"},
		},
		{
			name:        "worst fit",
			script:      fragmentScript + "alloc e 2\nholes\n",
			setup:       func() { fitName = "worst" },
			wantContain: []string{"e = word 0", "[2, 8] - [12, 2] - [20, 6]"},
		},
		{
			name:        "first fit with implicit init",
			script:      "alloc a 3\nalloc b 3\nfree a\nalloc c 2\nholes\n",
			setup:       func() { fitName, initWords = "first", 10 },
			wantContain: []string{"c = word 0", "[2, 1] - [6, 4]"},
		},
		{
			name:        "word size rounds up",
			script:      "init 4\nalloc a 9\nalloc b 1\nholes\n",
			setup:       func() { wordSize = 8 },
			wantContain: []string{"a = word 0", "b = word 2", "[3, 1]"},
		},
		{
			name:        "check after every step",
			script:      fragmentScript + "check\n",
			setup:       func() { checkSteps = true },
			wantContain: []string{"ok"},
		},
		{
			name:    "unknown strategy",
			script:  "init 4\n",
			setup:   func() { fitName = "next" },
			wantErr: true,
		},
		{
			name:    "parse error",
			script:  "init\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			defer resetFlags()
			if tt.setup != nil {
				tt.setup()
			}
			path := writeScript(t, tt.script)

			out, err := captureOutput(t, func() error { return runRun([]string{path}) })
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assertContains(t, out, tt.wantContain)
		})
	}
}

func TestRunCommand_MissingScript(t *testing.T) {
	resetFlags()
	_, err := captureOutput(t, func() error {
		return runRun([]string{filepath.Join(t.TempDir(), "missing.txt")})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open script")
}

func TestRunCommand_Dump(t *testing.T) {
	resetFlags()
	out := filepath.Join(t.TempDir(), "holes.txt")
	path := writeScript(t, fragmentScript+"dump "+out+"\n")

	_, err := captureOutput(t, func() error { return runRun([]string{path}) })
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "[0, 10] - [12, 2] - [20, 6]", string(data))
}

func TestVerifyCommand(t *testing.T) {
	resetFlags()
	path := writeScript(t, fragmentScript+"free b\nfree d\n")

	out, err := captureOutput(t, func() error { return runVerify([]string{path}) })
	require.NoError(t, err)
	assertContains(t, out, []string{"9 steps, invariants hold"})

	jsonOut = true
	defer resetFlags()
	out, err = captureOutput(t, func() error { return runVerify([]string{path}) })
	require.NoError(t, err)

	var report verifyReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Valid)
	assert.Equal(t, 9, report.Steps)
}

func TestStatsCommand(t *testing.T) {
	resetFlags()
	path := writeScript(t, fragmentScript+"alloc huge 100\n")

	out, err := captureOutput(t, func() error { return runStats([]string{path}) })
	require.NoError(t, err)
	assertContains(t, out, []string{
		"Steps: 8 (1 failed)",
		"Used: 8 words (30.8%)",
		"Free: 18 words in 3 holes",
		"Largest Hole: 10 words",
		"Fragmentation: 44.4%",
		"Allocations: 5 (1 failed, 4 split)",
		"Coalesced: 0 backward, 0 forward",
	})
}

func TestStatsCommand_GroupsLargeNumbers(t *testing.T) {
	resetFlags()
	path := writeScript(t, "init 65536\nalloc a 1234\n")

	out, err := captureOutput(t, func() error { return runStats([]string{path}) })
	require.NoError(t, err)
	assertContains(t, out, []string{
		"Size: 65,536 words x 1 bytes (65,536 bytes)",
		"Words: 1,234 allocated, 0 freed",
	})
}

func TestStatsCommand_JSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	defer resetFlags()
	path := writeScript(t, fragmentScript)

	out, err := captureOutput(t, func() error { return runStats([]string{path}) })
	require.NoError(t, err)

	var stats ArenaStats
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 26, stats.Layout.Words)
	assert.Equal(t, 3, stats.Layout.Holes)
	assert.Equal(t, 4, stats.Counters.AllocCalls)
	assert.Equal(t, "best", stats.Strategy)
}
