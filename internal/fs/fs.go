// Package fs provides the filesystem abstraction behind the store's
// row source and sink.
//
// Two implementations are provided:
//   - [Real]: production use, wraps the [os] package
//   - [Injected]: testing use, fails selected operations on demand
//
// The store engine reads and writes exclusively through [FS], so tests
// can exercise backup and write failure paths without touching disk
// permissions or exhausting space.
package fs

import (
	"io"
	"os"
)

// File represents an open file. Satisfied by [os.File].
type File interface {
	io.ReadWriteCloser
	io.Seeker

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)

	// Sync commits the file's contents to disk. See [os.File.Sync].
	Sync() error
}

// FS defines the filesystem operations the store engine needs.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// Create creates or truncates a file for writing. See [os.Create].
	Create(path string) (File, error)

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// WriteFileAtomic writes data to a file atomically via a temp file
	// and rename, so a crash never leaves a partial file behind.
	WriteFileAtomic(path string, data []byte, perm os.FileMode) error

	// Stat returns file metadata. See [os.Stat].
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether the file exists. Returns (false, err) only
	// for errors other than non-existence.
	Exists(path string) (bool, error)
}
