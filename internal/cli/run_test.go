package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunNoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stdout, _, code := c.Run()
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Usage: flatdb <command>")
	require.Contains(t, stdout, "query")
	require.Contains(t, stdout, "scaffold")
}

func TestRunUnknownCommand(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	_, stderr, code := c.Run("frobnicate")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "unknown command: frobnicate")
}

func TestRunCommandHelp(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stdout, _, code := c.Run("query", "--help")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "Usage: flatdb query")
	require.Contains(t, stdout, "--where")
}

func TestRunMissingDeclaration(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("query")
	require.Contains(t, stderr, "FLATDB_STORE")
}

func TestRunDeclarationFromEnv(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)
	decl := c.Store("users", "id,name\n1,John\n", "")
	c.Env["FLATDB_STORE"] = decl

	stdout := c.MustRun("query", "--count")
	require.Equal(t, "1", stdout)
}
