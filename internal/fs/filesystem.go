package fs

import (
	"io/fs"
	"os"

	"fid-go/internal/fid"
)

// OSFilesystem is the real filesystem implementation of fid.Filesystem.
// It performs actual filesystem operations using the os package.
type OSFilesystem struct{}

// NewOSFilesystem creates a filesystem that operates on the real filesystem.
func NewOSFilesystem() *OSFilesystem {
	return &OSFilesystem{}
}

// Stat returns fresh file info for a path, following symlinks.
func (m *OSFilesystem) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// ReadFile reads the whole file into memory.
func (m *OSFilesystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Remove deletes a single file or empty directory.
func (m *OSFilesystem) Remove(path string) error {
	return os.Remove(path)
}

// RemoveAll deletes path and everything beneath it.
func (m *OSFilesystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

// Compile-time check that OSFilesystem implements fid.Filesystem interface
var _ fid.Filesystem = (*OSFilesystem)(nil)
