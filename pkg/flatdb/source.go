package flatdb

import (
	"fmt"
	"io"
	"os"

	"github.com/calvinalkan/flatdb/internal/fs"
)

// source supplies the raw bytes of a store. The file source is the
// baseline; the stream source is the pluggable extension point for
// loading from an arbitrary reader. Stream-backed stores reject writes.
type source interface {
	// open returns the raw data. The caller owns the handle and must
	// release it once loading completes or fails.
	open() (io.ReadCloser, error)
}

type fileSource struct {
	fsys fs.FS
	path string
}

func (s *fileSource) open() (io.ReadCloser, error) {
	f, err := s.fsys.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, s.path)
		}

		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}

	return f, nil
}

type streamSource struct {
	r io.Reader
}

func (s *streamSource) open() (io.ReadCloser, error) {
	if s.r == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrStreamOpenFailure)
	}

	return io.NopCloser(s.r), nil
}
