package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/calvinalkan/flatdb/pkg/flatdb"
)

var errDeclRequired = errors.New("store declaration required (argument or $FLATDB_STORE)")

// declPath resolves the declaration file from the first positional
// argument, falling back to $FLATDB_STORE.
func declPath(args []string, env map[string]string) (string, []string, error) {
	if len(args) > 0 {
		return args[0], args[1:], nil
	}

	if p := env["FLATDB_STORE"]; p != "" {
		return p, args, nil
	}

	return "", nil, errDeclRequired
}

// openStore loads the declaration and the store it describes.
func openStore(path string) (*flatdb.Store, flatdb.Config, error) {
	cfg, err := flatdb.LoadDeclaration(path)
	if err != nil {
		return nil, flatdb.Config{}, err
	}

	start := time.Now()

	store, err := flatdb.Open(cfg)
	if err != nil {
		return nil, flatdb.Config{}, err
	}

	slog.Debug("store loaded",
		"declaration", path,
		"data", cfg.Path,
		"rows", store.Len(),
		"took", time.Since(start))

	return store, cfg, nil
}

// persist writes mutations back unless auto-flush already did.
func persist(store *flatdb.Store, cfg flatdb.Config) error {
	if cfg.AutoFlush {
		return nil
	}

	return store.Save()
}

// parsePairs splits repeated column=value flags into a condition map.
func parsePairs(pairs []string, flagName string) (map[string]any, error) {
	out := make(map[string]any, len(pairs))

	for _, pair := range pairs {
		column, value, ok := strings.Cut(pair, "=")
		if !ok || column == "" {
			return nil, fmt.Errorf("--%s expects column=value, got %q", flagName, pair)
		}

		out[column] = value
	}

	return out, nil
}

// rowFromSet turns parsed column=value pairs into a row of raw string
// values. Cast rules apply when the row enters the store.
func rowFromSet(set map[string]any) flatdb.Row {
	row := make(flatdb.Row, len(set))

	for column, v := range set {
		row[column] = flatdb.String(fmt.Sprint(v))
	}

	return row
}

// printRow writes one row as column: value lines in header order.
func printRow(o *IO, headers []string, row flatdb.Row) {
	for _, h := range headers {
		v, ok := row.Get(h)
		if !ok {
			continue
		}

		o.Printf("%s: %s\n", h, v.Text())
	}
}

// printRows writes a compact delimited listing with a header line.
func printRows(o *IO, headers []string, rows []flatdb.Row) {
	cols := make([]string, 0, len(headers))

	for _, h := range headers {
		if len(rows) == 0 || rowsHaveColumn(rows, h) {
			cols = append(cols, h)
		}
	}

	o.Println(strings.Join(cols, ","))

	fields := make([]string, len(cols))

	for _, row := range rows {
		for i, h := range cols {
			v, _ := row.Get(h)
			fields[i] = v.Text()
		}

		o.Println(strings.Join(fields, ","))
	}
}

// rowsHaveColumn reports whether any row carries the column. Projected
// rows drop columns, so the listing drops them too.
func rowsHaveColumn(rows []flatdb.Row, column string) bool {
	for _, row := range rows {
		if _, ok := row.Get(column); ok {
			return true
		}
	}

	return false
}
