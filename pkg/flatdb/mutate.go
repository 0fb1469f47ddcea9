package flatdb

// Predicate reports whether a row matches.
type Predicate func(Row) bool

// Transform produces the replacement for a row. It receives a clone and
// may mutate it freely.
type Transform func(Row) Row

// guardWrite is the writable gate. It runs before any row-mutating
// operation and before flush, in this order: handle check, writable
// check, stream check.
func (s *Store) guardWrite() error {
	if s == nil || !s.loaded {
		return ErrInvalidHandle
	}

	if !s.cfg.Writable {
		return ErrWriteNotAllowed
	}

	if s.stream {
		return ErrStreamWriteRejected
	}

	return nil
}

// guardRestricted adds the append-only gate on top of the writable
// gate. Insert bypasses this and uses guardWrite directly.
func (s *Store) guardRestricted() error {
	err := s.guardWrite()
	if err != nil {
		return err
	}

	if s.cfg.AppendOnly {
		return ErrAppendOnlyViolation
	}

	return nil
}

// maybeFlush runs the implicit flush after a successful mutation when
// AutoFlush is configured. A flush failure leaves the in-memory state
// intact for retry.
func (s *Store) maybeFlush() error {
	if !s.cfg.AutoFlush {
		return nil
	}

	return s.Flush()
}

// Insert casts row and appends it to the store. Insert is permitted on
// append-only stores; it is rejected only by the writable gate.
func (s *Store) Insert(row Row) error {
	err := s.guardWrite()
	if err != nil {
		return err
	}

	nr, err := s.normalizeRow(row.Clone())
	if err != nil {
		return err
	}

	s.rows = append(s.rows, nr)

	return s.maybeFlush()
}

// Update applies transform to every row satisfying match and returns
// the match count. Replacements are built and cast before any row is
// committed, so a failure leaves the store unchanged. Zero matches is a
// successful no-op.
func (s *Store) Update(match Predicate, transform Transform) (int, error) {
	err := s.guardRestricted()
	if err != nil {
		return 0, err
	}

	type replacement struct {
		idx int
		row Row
	}

	var repls []replacement

	for i, r := range s.rows {
		if !match(r) {
			continue
		}

		nr, normErr := s.normalizeRow(transform(r.Clone()))
		if normErr != nil {
			return 0, normErr
		}

		repls = append(repls, replacement{idx: i, row: nr})
	}

	for _, rp := range repls {
		s.rows[rp.idx] = rp.row
	}

	return len(repls), s.maybeFlush()
}

// UpdateWhere is the condition-map form of [Update]: conds is a
// loose-equality conjunction over columns and set merges the given
// fields over each matched row.
func (s *Store) UpdateWhere(conds map[string]any, set map[string]any) (int, error) {
	return s.Update(matchAll(conds), mergeFields(set))
}

// Upsert locates the first row satisfying match and replaces it in
// place with the cast transform result. If no row matches, the cast
// transform of an all-null row is appended instead.
//
// Unlike [Update], Upsert touches only the first match.
func (s *Store) Upsert(match Predicate, transform Transform) error {
	err := s.guardRestricted()
	if err != nil {
		return err
	}

	for i, r := range s.rows {
		if !match(r) {
			continue
		}

		nr, normErr := s.normalizeRow(transform(r.Clone()))
		if normErr != nil {
			return normErr
		}

		s.rows[i] = nr

		return s.maybeFlush()
	}

	nr, err := s.normalizeRow(transform(s.emptyRow()))
	if err != nil {
		return err
	}

	s.rows = append(s.rows, nr)

	return s.maybeFlush()
}

// UpsertWhere is the condition-map form of [Upsert].
func (s *Store) UpsertWhere(conds map[string]any, set map[string]any) error {
	return s.Upsert(matchAll(conds), mergeFields(set))
}

// Delete removes every row satisfying match and returns the removal
// count. Survivors keep their relative order and are re-indexed.
// Repeated calls with the same predicate are idempotent after the first
// removes all matches.
func (s *Store) Delete(match Predicate) (int, error) {
	err := s.guardRestricted()
	if err != nil {
		return 0, err
	}

	before := len(s.rows)

	kept := s.rows[:0]

	for _, r := range s.rows {
		if !match(r) {
			kept = append(kept, r)
		}
	}

	s.rows = kept

	return before - len(s.rows), s.maybeFlush()
}

// DeleteWhere is the condition-map form of [Delete].
func (s *Store) DeleteWhere(conds map[string]any) (int, error) {
	return s.Delete(matchAll(conds))
}

// matchAll builds a predicate that is the loose-equality conjunction of
// the condition map. A row missing a condition column never matches.
func matchAll(conds map[string]any) Predicate {
	want := make(map[string]Value, len(conds))
	for column, v := range conds {
		want[column] = valueOf(v)
	}

	return func(r Row) bool {
		for column, w := range want {
			v, ok := r[column]
			if !ok || !LooseEqual(v, w) {
				return false
			}
		}

		return true
	}
}

// mergeFields builds a transform that merges the given fields over the
// original row.
func mergeFields(set map[string]any) Transform {
	return func(r Row) Row {
		for column, v := range set {
			r[column] = valueOf(v)
		}

		return r
	}
}
