package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriter_CreatesAndOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.txt")
	w := &FileWriter{Path: path}

	require.NoError(t, w.WriteDump([]byte("[0, 10] - [12, 2]")))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[0, 10] - [12, 2]", string(got))

	require.NoError(t, w.WriteDump([]byte("[4, 1]")))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[4, 1]", string(got), "old contents must be replaced, not appended")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileWriter_MissingDirectory(t *testing.T) {
	w := &FileWriter{Path: filepath.Join(t.TempDir(), "nope", "map.txt")}
	assert.Error(t, w.WriteDump([]byte("x")))
}

func TestMemWriter(t *testing.T) {
	var w MemWriter
	require.NoError(t, w.WriteDump([]byte("first dump")))
	require.NoError(t, w.WriteDump([]byte("second")))
	assert.Equal(t, "second", string(w.Buf))

	var _ Sink = &w
	var _ Sink = &FileWriter{}
}
