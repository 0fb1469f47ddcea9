package flatdb

import "fmt"

// Row is an ordered column-to-value mapping. Ordering comes from the
// store's header set; the map's key set equals the header set exactly
// for every row held by a store.
type Row map[string]Value

// Clone returns an independent copy of the row.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}

	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}

	return out
}

// Get returns the value for column, and whether the column exists.
func (r Row) Get(column string) (Value, bool) {
	v, ok := r[column]

	return v, ok
}

// castRow applies cast rules to every column present in both the row and
// the rules, in place. Columns absent from either side are untouched;
// unknown target type names pass through. Returns the row for chaining.
func castRow(row Row, rules map[string]string) (Row, error) {
	for column, typeName := range rules {
		v, ok := row[column]
		if !ok {
			continue
		}

		kind, known := kindNamed(typeName)
		if !known {
			continue
		}

		cv, err := Coerce(v, kind)
		if err != nil {
			return nil, fmt.Errorf("cast column %q: %w", column, err)
		}

		row[column] = cv
	}

	return row, nil
}
