package flatdb

import (
	"bytes"
	"fmt"
	"time"
)

// backupTimeLayout is the timestamp suffix of backup artifacts:
// {path}.{YYYY-MM-DD-HH-MM-SS}.bak next to the primary file.
const backupTimeLayout = "2006-01-02-15-04-05"

// Flush serializes the in-memory row sequence back to the data file.
//
// The writable gate runs first. If backups are enabled and the target
// file exists, its bytes are copied to a timestamped .bak file before
// anything else; a copy failure aborts the flush with [ErrBackupFailed]
// and the primary file is untouched. An empty in-memory row set is a
// no-op and never truncates the existing file.
//
// The overwrite itself is a plain truncate-and-write, not an atomic
// replace. A flush failure never corrupts bytes from a prior successful
// flush and preserves the in-memory state for retry.
func (s *Store) Flush() error {
	err := s.guardWrite()
	if err != nil {
		return err
	}

	if len(s.rows) == 0 {
		return nil
	}

	if s.cfg.BackupEnabled {
		err = s.backup()
		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer

	d := s.cfg.dialect()

	if len(s.headers) > 0 && s.cfg.HasHeaders {
		encodeRecord(&buf, s.headers, d)
	}

	fields := make([]string, len(s.headers))

	for _, r := range s.rows {
		for i, h := range s.headers {
			fields[i] = r[h].Text()
		}

		encodeRecord(&buf, fields, d)
	}

	f, err := s.fsys.Create(s.cfg.Path)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrFileWriteFailure, s.cfg.Path, err)
	}

	_, err = f.Write(buf.Bytes())
	if err != nil {
		_ = f.Close()

		return fmt.Errorf("%w: write %s: %w", ErrFileWriteFailure, s.cfg.Path, err)
	}

	err = f.Close()
	if err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrFileWriteFailure, s.cfg.Path, err)
	}

	return nil
}

// Save is a pure alias of [Store.Flush].
func (s *Store) Save() error {
	return s.Flush()
}

// backup copies the current data file to {path}.{timestamp}.bak. A
// missing data file means there is nothing to back up. The backup
// artifact itself is written atomically so a crash cannot leave a
// half-written .bak; the primary overwrite that follows makes no such
// promise.
func (s *Store) backup() error {
	exists, err := s.fsys.Exists(s.cfg.Path)
	if err != nil {
		return fmt.Errorf("%w: stat %s: %w", ErrBackupFailed, s.cfg.Path, err)
	}

	if !exists {
		return nil
	}

	data, err := s.fsys.ReadFile(s.cfg.Path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %w", ErrBackupFailed, s.cfg.Path, err)
	}

	bakPath := fmt.Sprintf("%s.%s.bak", s.cfg.Path, time.Now().Format(backupTimeLayout))

	err = s.fsys.WriteFileAtomic(bakPath, data, 0o644)
	if err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrBackupFailed, bakPath, err)
	}

	return nil
}
