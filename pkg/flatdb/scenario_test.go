package flatdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// End-to-end scenarios over the canonical users dataset.

func TestScenarioActiveNames(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	names, err := store.Where("active", "true").Pluck("name")
	require.NoError(t, err)
	require.Equal(t, []Value{String("John Doe")}, names)
}

func TestScenarioFirstEmail(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	row, err := store.Where("id", "1").First()
	require.NoError(t, err)
	require.Equal(t, "john@example.com", row["email"].Text())
}

func TestScenarioHeaderlessIndices(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(writeDataFile(t, "1,John,a@x.com\n2,Jane,b@x.com\n"))
	cfg.HasHeaders = false

	store, err := Open(cfg)
	require.NoError(t, err)
	require.Equal(t, []string{"0", "1", "2"}, store.Headers())

	rows, err := store.Rows()
	require.NoError(t, err)
	require.Equal(t, "John", rows[0]["1"].Text())
}

func TestScenarioRowCountMatchesDataLines(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	// Two data lines, header line excluded.
	require.Equal(t, 2, store.Len())
}
