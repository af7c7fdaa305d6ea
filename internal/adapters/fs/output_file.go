package fs

import (
	"os"
	"path/filepath"
)

// OutputFile writes to a temporary file next to its destination and moves
// it into place on Commit, so readers never see a partial animation.
type OutputFile struct {
	path string
	tmp  *os.File
}

// CreateOutputFile opens a temporary file in the destination directory.
func CreateOutputFile(path string) (*OutputFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &OutputFile{path: path, tmp: tmp}, nil
}

// Write writes to the temporary file.
func (f *OutputFile) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit syncs the temporary file and renames it over the destination.
func (f *OutputFile) Commit() error {
	if err := f.tmp.Sync(); err != nil {
		f.Abort()
		return err
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Chmod(f.tmp.Name(), 0o644); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	// Atomic rename
	return os.Rename(f.tmp.Name(), f.path)
}

// Abort discards the temporary file. It is safe to call after Commit.
func (f *OutputFile) Abort() {
	f.tmp.Close()
	os.Remove(f.tmp.Name())
}

// Path returns the destination path.
func (f *OutputFile) Path() string {
	return f.path
}
