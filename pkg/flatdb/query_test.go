package flatdb

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWhereGet(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	rows, err := store.Where("active", "true").Get()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, String("John Doe"), rows[0]["name"])
}

func TestWhereChainIsConjunction(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	rows, err := store.Where("active", "true").Where("id", "2").Get()
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, err = store.Where("active", "false").Where("id", "2").Get()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, String("Jane Smith"), rows[0]["name"])
}

func TestWhereMissingColumnNeverMatches(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	rows, err := store.Where("nonexistent", "x").Get()
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestGetWithoutPredicatesReturnsAll(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	rows, err := store.Query().Get()
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestSelectProjection(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	rows, err := store.Query().Select("id", "name").Get()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	want := Row{"id": String("1"), "name": String("John Doe")}
	if diff := cmp.Diff(want, rows[0], cmp.AllowUnexported(Value{})); diff != "" {
		t.Errorf("projected row mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectUnknownColumnOmittedSilently(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	rows, err := store.Query().Select("name", "nope").Get()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	_, ok := rows[0]["nope"]
	require.False(t, ok)
	require.Equal(t, String("John Doe"), rows[0]["name"])
}

func TestQueryStateClearedAfterTerminal(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	q := store.Query().Where("id", "1").Select("name")

	rows, err := q.Get()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// Reusing the builder after a terminal call starts from scratch:
	// no predicates, no projection.
	rows, err = q.Get()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Contains(t, rows[0], "email")
}

func TestFirst(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	row, err := store.Where("id", "1").First()
	require.NoError(t, err)
	require.Equal(t, String("john@example.com"), row["email"])

	row, err = store.Where("id", "42").First()
	require.NoError(t, err)
	require.Nil(t, row)
}

func TestPluck(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	names, err := store.Query().Pluck("name")
	require.NoError(t, err)
	require.Equal(t, []Value{String("John Doe"), String("Jane Smith")}, names)
}

func TestPluckLengthMatchesGet(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	rows, err := store.Where("active", "false").Get()
	require.NoError(t, err)

	vals, err := store.Where("active", "false").Pluck("email")
	require.NoError(t, err)
	require.Len(t, vals, len(rows))
}

func TestValue(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	v, err := store.Where("id", "2").Value("email")
	require.NoError(t, err)
	require.Equal(t, String("jane@example.com"), v)

	v, err = store.Where("id", "42").Value("email")
	require.NoError(t, err)
	require.True(t, v.IsNull())
}

func TestQuerySnapshotSeesMutations(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	err := store.Insert(Row{
		"id":     String("3"),
		"name":   String("Ann"),
		"email":  String("ann@example.com"),
		"active": String("true"),
	})
	require.NoError(t, err)

	rows, err := store.Where("active", "true").Get()
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestQueryWithCastRules(t *testing.T) {
	t.Parallel()

	store := openUsers(t, func(cfg *Config) {
		cfg.CastRules = map[string]string{"id": "int", "active": "bool"}
	})

	// Predicates compare loosely against the cast values.
	rows, err := store.Where("id", 1).Get()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = store.Where("active", true).Get()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, Int(1), rows[0]["id"])
}
