package fs

import "os"

// Injected wraps another [FS] and fails selected operations, keyed by
// path. A nil hook means the operation passes through to Base.
//
// Example:
//
//	fsys := &fs.Injected{
//	    Base:      fs.NewReal(),
//	    CreateErr: func(path string) error { return syscall.ENOSPC },
//	}
type Injected struct {
	Base FS

	// OpenErr, CreateErr, ReadFileErr, AtomicErr, and StatErr fail the
	// corresponding operation when they return a non-nil error for the
	// given path.
	OpenErr     func(path string) error
	CreateErr   func(path string) error
	ReadFileErr func(path string) error
	AtomicErr   func(path string) error
	StatErr     func(path string) error

	// WriteErr fails File.Write on files returned by Create.
	WriteErr func(path string) error
}

// Open fails with OpenErr or passes through.
func (i *Injected) Open(path string) (File, error) {
	if i.OpenErr != nil {
		if err := i.OpenErr(path); err != nil {
			return nil, err
		}
	}

	return i.Base.Open(path)
}

// Create fails with CreateErr, or returns a file whose writes fail with
// WriteErr, or passes through.
func (i *Injected) Create(path string) (File, error) {
	if i.CreateErr != nil {
		if err := i.CreateErr(path); err != nil {
			return nil, err
		}
	}

	f, err := i.Base.Create(path)
	if err != nil {
		return nil, err
	}

	if i.WriteErr != nil {
		if werr := i.WriteErr(path); werr != nil {
			return &failingFile{File: f, err: werr}, nil
		}
	}

	return f, nil
}

// ReadFile fails with ReadFileErr or passes through.
func (i *Injected) ReadFile(path string) ([]byte, error) {
	if i.ReadFileErr != nil {
		if err := i.ReadFileErr(path); err != nil {
			return nil, err
		}
	}

	return i.Base.ReadFile(path)
}

// WriteFileAtomic fails with AtomicErr or passes through.
func (i *Injected) WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if i.AtomicErr != nil {
		if err := i.AtomicErr(path); err != nil {
			return err
		}
	}

	return i.Base.WriteFileAtomic(path, data, perm)
}

// Stat fails with StatErr or passes through.
func (i *Injected) Stat(path string) (os.FileInfo, error) {
	if i.StatErr != nil {
		if err := i.StatErr(path); err != nil {
			return nil, err
		}
	}

	return i.Base.Stat(path)
}

// Exists fails with StatErr or passes through; Exists is a stat
// underneath.
func (i *Injected) Exists(path string) (bool, error) {
	if i.StatErr != nil {
		if err := i.StatErr(path); err != nil {
			return false, err
		}
	}

	return i.Base.Exists(path)
}

// failingFile wraps a File and fails every Write with a fixed error.
type failingFile struct {
	File
	err error
}

func (f *failingFile) Write([]byte) (int, error) {
	return 0, f.err
}
