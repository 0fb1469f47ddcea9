// Package flatdb is an in-memory, schema-flexible store backed by a
// delimited text file.
//
// # Overview
//
// A [Store] loads a delimited file (CSV by default) fully into memory at
// construction, exposes a fluent query surface over the loaded rows, and
// writes changes back to the file on demand or automatically after every
// mutation.
//
//	cfg := flatdb.DefaultConfig("users.csv")
//	cfg.PrimaryKey = "id"
//	cfg.CastRules = map[string]string{"id": "int", "active": "bool"}
//
//	store, err := flatdb.Open(cfg)
//	if err != nil {
//	    return err
//	}
//
//	names, err := store.Where("active", true).Pluck("name")
//
// # Headers
//
// The ordered column-name list is fixed once at load time, from one of
// three sources: the configured [Config.Headers], the file's first line,
// or synthesized zero-based indices ("0", "1", ...) when the file carries
// no header line. With [Config.StrictHeaders] the file's header line must
// match the configured headers as a set, or construction fails with
// [ErrHeaderMismatch].
//
// # Rows and values
//
// A [Row] maps column names to tagged [Value]s (null, integer, float,
// boolean, or string). Every row's key set equals the header set at all
// times; parsing rejects lines whose field count differs from the header
// count. [Config.CastRules] coerce columns to declared types on load and
// after every row-producing mutation.
//
// All equality-based matching (query predicates, condition maps, primary
// key lookup) uses one documented coercive comparison, [LooseEqual].
//
// # Mutation policy
//
// Two independent gates run before any row is touched: the writable gate
// ([ErrWriteNotAllowed], or [ErrStreamWriteRejected] for reader-backed
// stores) and the append-only gate ([ErrAppendOnlyViolation]; insert
// stays permitted). A rejected mutation leaves the store unchanged.
//
// # Persistence
//
// [Store.Flush] overwrites the backing file in place, optionally after
// copying the previous contents to a timestamped .bak file. Flushing an
// empty in-memory row set is a no-op and never truncates the existing
// file. The backup-then-overwrite sequence is not atomic; callers that
// need stronger guarantees must layer them on top.
//
// A Store is an unsynchronized mutable value. Concurrent use from
// multiple goroutines requires external synchronization.
package flatdb
