package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMovesCommand(t *testing.T) {
	out, err := runCLI(t, "moves", filepath.Join("testdata", "consume_inner.yaml"))
	require.NoError(t, err)

	require.Contains(t, out, "moved (1):")
	require.Contains(t, out, "(*_1.1).0")
	require.Contains(t, out, "copied (0):")
}

// Canonicalization makes the split run print the same accounting as the
// plain run.
func TestMovesSplitMatchesUnsplit(t *testing.T) {
	path := filepath.Join("testdata", "consume_inner.yaml")

	plain, err := runCLI(t, "moves", path)
	require.NoError(t, err)

	split, err := runCLI(t, "moves", "--split", path)
	require.NoError(t, err)

	require.Equal(t, plain, split)
}

func TestMovesMissingFixture(t *testing.T) {
	_, err := runCLI(t, "moves", filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)
}
