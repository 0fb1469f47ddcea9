package flatdb

import "errors"

// Error variables for store operations. All errors returned by this
// package wrap one of these sentinels; match with [errors.Is].
var (
	ErrFileNotFound        = errors.New("data file not found")
	ErrStreamOpenFailure   = errors.New("cannot open stream source")
	ErrInvalidHandle       = errors.New("store is not initialized")
	ErrMissingHeader       = errors.New("missing header line")
	ErrHeaderMismatch      = errors.New("header mismatch")
	ErrInvalidRowFormat    = errors.New("invalid row format")
	ErrColumnNotFound      = errors.New("column not found")
	ErrPrimaryKeyMissing   = errors.New("no primary key declared")
	ErrCastingFailure      = errors.New("cannot cast value")
	ErrWriteNotAllowed     = errors.New("store is not writable")
	ErrStreamWriteRejected = errors.New("stream-backed store rejects writes")
	ErrAppendOnlyViolation = errors.New("store is append-only")
	ErrBackupFailed        = errors.New("backup failed")
	ErrFileWriteFailure    = errors.New("cannot write data file")
)
