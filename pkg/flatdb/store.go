package flatdb

import (
	"fmt"
	"io"
	"slices"

	"github.com/calvinalkan/flatdb/internal/fs"
)

// Store is an in-memory row store backed by a delimited text file.
//
// A Store is created by [Open], [OpenFS], or [OpenReader], which load
// the whole file eagerly and synchronously. A load failure aborts
// construction; no partially initialized Store is ever observable.
//
// Store is an unsynchronized mutable value; see the package doc.
type Store struct {
	cfg    Config
	fsys   fs.FS
	stream bool

	headers []string
	rows    []Row
	loaded  bool
}

// Open loads the store described by cfg from the real filesystem.
func Open(cfg Config) (*Store, error) {
	return OpenFS(fs.NewReal(), cfg)
}

// OpenFS is like [Open] but reads and writes through fsys. Tests use
// this with a fault-injecting filesystem.
func OpenFS(fsys fs.FS, cfg Config) (*Store, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}

	if cfg.Path == "" {
		return nil, fmt.Errorf("%w: config has no path", ErrFileNotFound)
	}

	s := &Store{cfg: cfg, fsys: fsys}

	err = s.load(&fileSource{fsys: fsys, path: cfg.Path})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// OpenReader loads the store from an arbitrary reader (stream mode).
// The resulting store is readable and queryable but rejects every
// mutating operation with [ErrStreamWriteRejected].
func OpenReader(r io.Reader, cfg Config) (*Store, error) {
	err := cfg.validate()
	if err != nil {
		return nil, err
	}

	s := &Store{cfg: cfg, stream: true}

	err = s.load(&streamSource{r: r})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// load resolves headers and parses every data line into memory. The
// source handle is released when loading completes or as soon as any
// error is raised.
func (s *Store) load(src source) error {
	rc, err := src.open()
	if err != nil {
		return err
	}

	defer func() { _ = rc.Close() }()

	dec := newDecoder(rc, s.cfg.dialect())

	headers, pending, err := resolveHeaders(dec, &s.cfg)
	if err != nil {
		return err
	}

	if s.cfg.PrimaryKey != "" && len(headers) > 0 && !slices.Contains(headers, s.cfg.PrimaryKey) {
		return fmt.Errorf("%w: primary key %q not in header set %v",
			ErrColumnNotFound, s.cfg.PrimaryKey, headers)
	}

	var rows []Row

	appendRecord := func(fields []string) error {
		if len(fields) != len(headers) {
			return fmt.Errorf("%w: line %d: expected %d fields, got %d %q",
				ErrInvalidRowFormat, dec.line, len(headers), len(fields), fields)
		}

		row := make(Row, len(headers))
		for i, h := range headers {
			row[h] = String(fields[i])
		}

		row, castErr := castRow(row, s.cfg.CastRules)
		if castErr != nil {
			return fmt.Errorf("line %d: %w", dec.line, castErr)
		}

		rows = append(rows, row)

		return nil
	}

	if pending != nil {
		err = appendRecord(pending)
		if err != nil {
			return err
		}
	}

	for {
		fields, rerr := dec.readRecord()
		if rerr == io.EOF {
			break
		}

		if rerr != nil {
			return fmt.Errorf("read data: %w", rerr)
		}

		if blankRecord(fields) {
			continue
		}

		err = appendRecord(fields)
		if err != nil {
			return err
		}
	}

	s.headers = headers
	s.rows = rows
	s.loaded = true

	return nil
}

// Headers returns a copy of the resolved header set.
func (s *Store) Headers() []string {
	return append([]string(nil), s.headers...)
}

// Len returns the number of rows currently in memory.
func (s *Store) Len() int {
	return len(s.rows)
}

// Rows returns clones of the full row sequence in order.
func (s *Store) Rows() ([]Row, error) {
	if s == nil || !s.loaded {
		return nil, ErrInvalidHandle
	}

	out := make([]Row, len(s.rows))
	for i, r := range s.rows {
		out[i] = r.Clone()
	}

	return out, nil
}

// SetRows replaces the entire row sequence. Rows are normalized against
// the header set and cast before any are committed. SetRows passes the
// full mutation gate, including append-only.
func (s *Store) SetRows(rows []Row) error {
	err := s.guardRestricted()
	if err != nil {
		return err
	}

	next := make([]Row, len(rows))

	for i, r := range rows {
		nr, normErr := s.normalizeRow(r.Clone())
		if normErr != nil {
			return normErr
		}

		next[i] = nr
	}

	s.rows = next

	return s.maybeFlush()
}

// Find returns a clone of the first row whose primary-key field loosely
// equals key, or nil if no row matches. Returns [ErrPrimaryKeyMissing]
// if the store declares no primary key.
func (s *Store) Find(key any) (Row, error) {
	if s == nil || !s.loaded {
		return nil, ErrInvalidHandle
	}

	if s.cfg.PrimaryKey == "" {
		return nil, ErrPrimaryKeyMissing
	}

	want := valueOf(key)

	for _, r := range s.rows {
		v, ok := r[s.cfg.PrimaryKey]
		if ok && LooseEqual(v, want) {
			return r.Clone(), nil
		}
	}

	return nil, nil
}

// normalizeRow enforces the row invariant: the key set must equal the
// header set. Unknown columns are rejected; missing columns are filled
// with null. The result is cast per the configured rules.
func (s *Store) normalizeRow(row Row) (Row, error) {
	for column := range row {
		if !slices.Contains(s.headers, column) {
			return nil, fmt.Errorf("%w: %q not in header set %v", ErrColumnNotFound, column, s.headers)
		}
	}

	for _, h := range s.headers {
		if _, ok := row[h]; !ok {
			row[h] = Null()
		}
	}

	return castRow(row, s.cfg.CastRules)
}

// emptyRow returns a row with every header column set to null.
func (s *Store) emptyRow() Row {
	row := make(Row, len(s.headers))
	for _, h := range s.headers {
		row[h] = Null()
	}

	return row
}
