package flatdb

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInsert(t *testing.T) {
	t.Parallel()

	store := openUsers(t, func(cfg *Config) {
		cfg.CastRules = map[string]string{"id": "int"}
	})

	err := store.Insert(Row{
		"id":    String("3"),
		"name":  String("Ann"),
		"email": String("ann@example.com"),
	})
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	rows, err := store.Rows()
	require.NoError(t, err)

	// Cast applied, missing column filled with null.
	require.Equal(t, Int(3), rows[2]["id"])
	require.True(t, rows[2]["active"].IsNull())
}

func TestInsertUnknownColumn(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	err := store.Insert(Row{"id": String("3"), "nickname": String("x")})
	require.ErrorIs(t, err, ErrColumnNotFound)
	require.Equal(t, 2, store.Len())
}

func TestUpdateTouchesAllMatches(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	n, err := store.UpdateWhere(
		map[string]any{"active": "true"},
		map[string]any{"active": "false"},
	)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = store.UpdateWhere(
		map[string]any{"active": "false"},
		map[string]any{"name": "Renamed"},
	)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	names, err := store.Query().Pluck("name")
	require.NoError(t, err)
	require.Equal(t, []Value{String("Renamed"), String("Renamed")}, names)
}

func TestUpdateZeroMatchesIsNoOp(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	before, err := store.Rows()
	require.NoError(t, err)

	n, err := store.UpdateWhere(map[string]any{"id": "99"}, map[string]any{"name": "x"})
	require.NoError(t, err)
	require.Zero(t, n)

	after, err := store.Rows()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestUpdateMergePreservesOtherFields(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	_, err := store.UpdateWhere(map[string]any{"id": "1"}, map[string]any{"name": "J."})
	require.NoError(t, err)

	row, err := store.Where("id", "1").First()
	require.NoError(t, err)
	require.Equal(t, String("J."), row["name"])
	require.Equal(t, String("john@example.com"), row["email"])
}

func TestUpdateFailureLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	store := openUsers(t, func(cfg *Config) {
		cfg.CastRules = map[string]string{"id": "int"}
	})

	before, err := store.Rows()
	require.NoError(t, err)

	// The transform produces an uncastable id for the second match, so
	// nothing at all may change.
	_, err = store.Update(
		func(Row) bool { return true },
		func(r Row) Row {
			if LooseEqual(r["id"], Int(2)) {
				r["id"] = String("boom")
			}

			return r
		},
	)
	require.ErrorIs(t, err, ErrCastingFailure)

	after, err := store.Rows()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestUpsertReplacesFirstMatchOnly(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(writeDataFile(t, "id,tag\n1,old\n2,old\n"))

	store, err := Open(cfg)
	require.NoError(t, err)

	err = store.UpsertWhere(map[string]any{"tag": "old"}, map[string]any{"tag": "new"})
	require.NoError(t, err)

	tags, err := store.Query().Pluck("tag")
	require.NoError(t, err)

	// Only the first match was touched; update would have hit both.
	require.Equal(t, []Value{String("new"), String("old")}, tags)
	require.Equal(t, 2, store.Len())
}

func TestUpsertAppendsOnNoMatch(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	err := store.UpsertWhere(
		map[string]any{"id": "3"},
		map[string]any{"id": "3", "name": "Ann"},
	)
	require.NoError(t, err)
	require.Equal(t, 3, store.Len())

	row, err := store.Where("id", "3").First()
	require.NoError(t, err)
	require.Equal(t, String("Ann"), row["name"])

	// Fields not set by the transform stay null on the appended row.
	require.True(t, row["email"].IsNull())
}

func TestDeleteRemovesAllMatches(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig(writeDataFile(t, "id,tag\n1,x\n2,keep\n3,x\n"))

	store, err := Open(cfg)
	require.NoError(t, err)

	n, err := store.DeleteWhere(map[string]any{"tag": "x"})
	require.NoError(t, err)
	require.Equal(t, 2, n)

	// Survivors keep order and are re-indexed.
	ids, err := store.Query().Pluck("id")
	require.NoError(t, err)
	require.Equal(t, []Value{String("2")}, ids)
}

func TestDeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	n, err := store.DeleteWhere(map[string]any{"id": "1"})
	require.NoError(t, err)
	require.Equal(t, 1, n)

	n, err = store.DeleteWhere(map[string]any{"id": "1"})
	require.NoError(t, err)
	require.Zero(t, n)
	require.Equal(t, 1, store.Len())
}

func TestAppendOnlyGates(t *testing.T) {
	t.Parallel()

	store := openUsers(t, func(cfg *Config) {
		cfg.AppendOnly = true
	})

	err := store.Insert(Row{"id": String("3")})
	require.NoError(t, err, "insert stays permitted under append-only")

	before, err := store.Rows()
	require.NoError(t, err)

	_, err = store.UpdateWhere(map[string]any{"id": "1"}, map[string]any{"name": "x"})
	require.ErrorIs(t, err, ErrAppendOnlyViolation)

	err = store.UpsertWhere(map[string]any{"id": "1"}, map[string]any{"name": "x"})
	require.ErrorIs(t, err, ErrAppendOnlyViolation)

	_, err = store.DeleteWhere(map[string]any{"id": "1"})
	require.ErrorIs(t, err, ErrAppendOnlyViolation)

	err = store.SetRows(nil)
	require.ErrorIs(t, err, ErrAppendOnlyViolation)

	after, err := store.Rows()
	require.NoError(t, err)
	require.Equal(t, before, after, "rejected mutations must not change the store")
}

func TestNonWritableGates(t *testing.T) {
	t.Parallel()

	store := openUsers(t, func(cfg *Config) {
		cfg.Writable = false
	})

	err := store.Insert(Row{"id": String("3")})
	require.ErrorIs(t, err, ErrWriteNotAllowed)

	_, err = store.UpdateWhere(map[string]any{"id": "1"}, map[string]any{"name": "x"})
	require.ErrorIs(t, err, ErrWriteNotAllowed)

	_, err = store.DeleteWhere(map[string]any{"id": "1"})
	require.ErrorIs(t, err, ErrWriteNotAllowed)

	err = store.Flush()
	require.ErrorIs(t, err, ErrWriteNotAllowed)

	require.Equal(t, 2, store.Len())
}

func TestWritableGateWinsOverAppendOnly(t *testing.T) {
	t.Parallel()

	store := openUsers(t, func(cfg *Config) {
		cfg.Writable = false
		cfg.AppendOnly = true
	})

	// The writable gate is checked first.
	_, err := store.DeleteWhere(map[string]any{"id": "1"})
	require.ErrorIs(t, err, ErrWriteNotAllowed)
	require.NotErrorIs(t, err, ErrAppendOnlyViolation)
}

func TestSetRowsReplacesSequence(t *testing.T) {
	t.Parallel()

	store := openUsers(t, nil)

	err := store.SetRows([]Row{
		{"id": String("9"), "name": String("Only"), "email": String("o@x.com"), "active": String("true")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	row, err := store.Where("id", "9").First()
	require.NoError(t, err)
	require.Equal(t, String("Only"), row["name"])
}
