package flatdb

// Query is a fluent, stateful filter and projection over a store's row
// sequence. Predicates and the projection accumulate until a terminal
// call ([Query.Get], [Query.First], [Query.Pluck], [Query.Value])
// evaluates them; every terminal call clears the pending state
// regardless of outcome.
//
//	row, err := store.Where("id", 1).First()
//	names, err := store.Where("active", "true").Pluck("name")
type Query struct {
	store   *Store
	preds   []Predicate
	proj    []string
	hasProj bool
}

// Query returns a fresh query over the store.
func (s *Store) Query() *Query {
	return &Query{store: s}
}

// Where starts a query with an equality predicate. Shorthand for
// Query().Where.
func (s *Store) Where(column string, value any) *Query {
	return s.Query().Where(column, value)
}

// Where appends an equality predicate. Matching uses [LooseEqual]; a
// row missing the column never matches. Multiple Where calls combine
// with logical AND.
func (q *Query) Where(column string, value any) *Query {
	want := valueOf(value)

	q.preds = append(q.preds, func(r Row) bool {
		v, ok := r[column]

		return ok && LooseEqual(v, want)
	})

	return q
}

// Select records a pending projection. At the next terminal call each
// retained row is cast and reduced to the selected columns; unknown
// columns are omitted silently. A later Select replaces an earlier one.
func (q *Query) Select(columns ...string) *Query {
	q.proj = append([]string(nil), columns...)
	q.hasProj = true

	return q
}

// Get evaluates the pending predicates against a snapshot of the row
// sequence and returns the retained rows as a freshly indexed slice of
// clones. The pending predicate list and projection are cleared.
func (q *Query) Get() ([]Row, error) {
	preds := q.preds
	proj := q.proj
	hasProj := q.hasProj

	// Predicate state never survives a terminal call.
	q.preds = nil
	q.proj = nil
	q.hasProj = false

	if q.store == nil || !q.store.loaded {
		return nil, ErrInvalidHandle
	}

	out := make([]Row, 0)

	for _, r := range q.store.rows {
		if !matchesAll(r, preds) {
			continue
		}

		row := r.Clone()

		if hasProj {
			row, err := castRow(row, q.store.cfg.CastRules)
			if err != nil {
				return nil, err
			}

			projected := make(Row, len(proj))

			for _, column := range proj {
				if v, ok := row[column]; ok {
					projected[column] = v
				}
			}

			row = projected
			out = append(out, row)

			continue
		}

		out = append(out, row)
	}

	return out, nil
}

// First runs [Query.Get] and returns the first retained row, or nil if
// none matched.
func (q *Query) First() (Row, error) {
	rows, err := q.Get()
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return rows[0], nil
}

// Pluck runs [Query.Get] and extracts the named field from every
// retained row. Rows without the field contribute a null value, so the
// result length always equals the Get length.
func (q *Query) Pluck(column string) ([]Value, error) {
	rows, err := q.Get()
	if err != nil {
		return nil, err
	}

	vals := make([]Value, len(rows))
	for i, r := range rows {
		vals[i] = r[column]
	}

	return vals, nil
}

// Value runs [Query.Pluck] and returns the first element, or the null
// value if nothing matched.
func (q *Query) Value(column string) (Value, error) {
	vals, err := q.Pluck(column)
	if err != nil {
		return Value{}, err
	}

	if len(vals) == 0 {
		return Null(), nil
	}

	return vals[0], nil
}

func matchesAll(r Row, preds []Predicate) bool {
	for _, p := range preds {
		if !p(r) {
			return false
		}
	}

	return true
}
