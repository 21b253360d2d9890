package testutil

import (
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"fid-go/internal/fid"
)

// MockFile represents an entry in the mock filesystem.
type MockFile struct {
	Content     []byte
	Permissions fs.FileMode
	ModTime     time.Time
	IsDirectory bool
	// Special marks a non-regular, non-directory entry (device, pipe, socket).
	Special bool
	// Stat data - set once when file is created
	Atime time.Time
	Ctime time.Time
}

// MockFilesystem is an in-memory filesystem for testing.
// Paths are slash-separated and used verbatim as keys; parents are not
// created implicitly.
type MockFilesystem struct {
	files map[string]*MockFile

	// StatErr, when set for a path, is returned by Stat.
	StatErr map[string]error
	// ReadErr, when set for a path, is returned by ReadFile after Stat succeeds.
	ReadErr map[string]error
	// RemoveErr, when set for a path, is returned by Remove and RemoveAll.
	RemoveErr map[string]error

	// Calls records delete calls as "rm:<path>" and "rmall:<path>".
	Calls []string
}

// NewMockFilesystem creates a new mock filesystem.
func NewMockFilesystem() *MockFilesystem {
	return &MockFilesystem{
		files:     make(map[string]*MockFile),
		StatErr:   make(map[string]error),
		ReadErr:   make(map[string]error),
		RemoveErr: make(map[string]error),
	}
}

// AddFile adds a file to the mock filesystem.
func (m *MockFilesystem) AddFile(p string, content []byte) {
	now := time.Now()
	m.files[p] = &MockFile{
		Content:     content,
		Permissions: 0644,
		ModTime:     now,
		Atime:       now,
		Ctime:       now,
	}
}

// AddDirectory adds a directory to the mock filesystem.
func (m *MockFilesystem) AddDirectory(p string) {
	now := time.Now()
	m.files[p] = &MockFile{
		Permissions: 0755 | fs.ModeDir,
		ModTime:     now,
		IsDirectory: true,
		Atime:       now,
		Ctime:       now,
	}
}

// AddSpecial adds a named pipe, which is neither a regular file nor a directory.
func (m *MockFilesystem) AddSpecial(p string) {
	now := time.Now()
	m.files[p] = &MockFile{
		Permissions: 0644 | fs.ModeNamedPipe,
		ModTime:     now,
		Special:     true,
		Atime:       now,
		Ctime:       now,
	}
}

// Has reports whether p exists in the mock filesystem.
func (m *MockFilesystem) Has(p string) bool {
	_, ok := m.files[p]
	return ok
}

// Paths returns all paths in the mock filesystem, sorted.
func (m *MockFilesystem) Paths() []string {
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func (m *MockFilesystem) Stat(p string) (fs.FileInfo, error) {
	if err := m.StatErr[p]; err != nil {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: err}
	}
	file, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}

	return &mockFileInfo{
		name:     path.Base(p),
		size:     int64(len(file.Content)),
		mode:     file.Permissions,
		modTime:  file.ModTime,
		isDir:    file.IsDirectory,
		mockFile: file,
	}, nil
}

func (m *MockFilesystem) ReadFile(p string) ([]byte, error) {
	if err := m.ReadErr[p]; err != nil {
		return nil, &fs.PathError{Op: "read", Path: p, Err: err}
	}
	file, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	if file.IsDirectory {
		return nil, fmt.Errorf("cannot read directory: %s", p)
	}
	out := make([]byte, len(file.Content))
	copy(out, file.Content)
	return out, nil
}

func (m *MockFilesystem) Remove(p string) error {
	m.Calls = append(m.Calls, "rm:"+p)
	if err := m.RemoveErr[p]; err != nil {
		return &fs.PathError{Op: "remove", Path: p, Err: err}
	}
	file, ok := m.files[p]
	if !ok {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	if file.IsDirectory && len(m.children(p)) > 0 {
		return &fs.PathError{Op: "remove", Path: p, Err: fmt.Errorf("directory not empty")}
	}
	delete(m.files, p)
	return nil
}

// RemoveAll deletes p and all of its descendants. Like os.RemoveAll it
// succeeds when p does not exist.
func (m *MockFilesystem) RemoveAll(p string) error {
	m.Calls = append(m.Calls, "rmall:"+p)
	if err := m.RemoveErr[p]; err != nil {
		return &fs.PathError{Op: "unlinkat", Path: p, Err: err}
	}
	for _, child := range m.children(p) {
		delete(m.files, child)
	}
	delete(m.files, p)
	return nil
}

func (m *MockFilesystem) ExtractStatData(info fs.FileInfo) (*fid.StatData, error) {
	// Get the MockFile from Sys() to return consistent stat data
	mockFile, ok := info.Sys().(*MockFile)
	if !ok {
		return nil, fmt.Errorf("cannot extract stat data: expected *MockFile, got %T", info.Sys())
	}

	return &fid.StatData{
		UID:       1000,
		GID:       1000,
		Atime:     mockFile.Atime,
		Ctime:     mockFile.Ctime,
		BirthTime: sql.NullTime{Valid: false},
	}, nil
}

// children returns every path strictly beneath dir.
func (m *MockFilesystem) children(dir string) []string {
	prefix := strings.TrimSuffix(dir, "/") + "/"
	var out []string
	for p := range m.files {
		if strings.HasPrefix(p, prefix) {
			out = append(out, p)
		}
	}
	return out
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name     string
	size     int64
	mode     fs.FileMode
	modTime  time.Time
	isDir    bool
	mockFile *MockFile // reference to get stat data
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() any           { return m.mockFile }

// Compile-time check
var _ fid.Filesystem = (*MockFilesystem)(nil)
