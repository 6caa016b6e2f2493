package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchCmd_ProcessesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smiles.txt")
	require.NoError(t, os.WriteFile(path, []byte("CCO\n(((\nC\n"), 0o644))

	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"batch", "--input", path, "--output", "json"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "total_count")
	assert.Contains(t, out.String(), "\"valid_count\": 2")
}

func TestBatchCmd_MissingInputErrors(t *testing.T) {
	cmd := NewRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs([]string{"batch"})

	err := cmd.Execute()
	assert.Error(t, err)
}
