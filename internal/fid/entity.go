package fid

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
)

// Entity identifies a filesystem path and answers questions about whatever
// currently lives there. Nothing is cached: every query stats or reads the
// live filesystem at call time, so results may change between calls.
//
// Constructing an Entity never touches the filesystem, and the path does not
// need to exist. The only operation that modifies the filesystem is Remove.
type Entity struct {
	path   string
	fsys   Filesystem
	logger Logger
}

// NewEntity creates an Entity for path. The path is stored verbatim.
func NewEntity(path string, fsys Filesystem, logger Logger) *Entity {
	if logger == nil {
		logger = NewNopLogger()
	}
	return &Entity{
		path:   path,
		fsys:   fsys,
		logger: logger,
	}
}

// Path returns the path exactly as given to NewEntity.
func (e *Entity) Path() string {
	return e.path
}

func (e *Entity) String() string {
	return e.path
}

// Metadata stats the path. Errors are *PathError of kind KindNotFound or KindIO.
func (e *Entity) Metadata() (fs.FileInfo, error) {
	info, err := e.fsys.Stat(e.path)
	if err != nil {
		return nil, newPathError("stat", e.path, err)
	}
	return info, nil
}

// Size returns the byte length of the path's target.
func (e *Entity) Size() (int64, error) {
	info, err := e.Metadata()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Exists reports whether the path resolves to any filesystem entry.
func (e *Entity) Exists() bool {
	_, err := e.fsys.Stat(e.path)
	return err == nil
}

// IsFile reports whether the path resolves to a regular file.
func (e *Entity) IsFile() bool {
	info, err := e.fsys.Stat(e.path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsDirectory reports whether the path resolves to a directory.
func (e *Entity) IsDirectory() bool {
	info, err := e.fsys.Stat(e.path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Hash returns the SHA-256 of the file's content as 64 lowercase hex digits.
// It returns "" when the path is not a regular file or cannot be read.
//
// The whole file is read into memory before hashing.
func (e *Entity) Hash() string {
	content, ok := e.content()
	if !ok {
		return ""
	}
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// IsMatch reports whether both entities are regular files with equal hashes.
func (e *Entity) IsMatch(other *Entity) bool {
	if !e.IsFile() || !other.IsFile() {
		return false
	}
	h1 := e.Hash()
	if h1 == "" {
		return false
	}
	return h1 == other.Hash()
}

// IsDeepMatch reports whether both entities are regular files with
// byte-identical content. Both files are held in memory at once.
func (e *Entity) IsDeepMatch(other *Entity) bool {
	c1, ok := e.content()
	if !ok {
		return false
	}
	c2, ok := other.content()
	if !ok {
		return false
	}
	return bytes.Equal(c1, c2)
}

// Remove deletes the path's target: a single delete for a regular file, a
// recursive delete for a directory. Anything else, including a missing path,
// is a no-op. Failures are *PathError of kind KindIO; a failed recursive
// delete may leave part of the tree behind.
func (e *Entity) Remove() error {
	var err error
	switch {
	case e.IsFile():
		e.logger.Debug("removing file", "path", e.path)
		err = e.fsys.Remove(e.path)
	case e.IsDirectory():
		e.logger.Debug("removing directory tree", "path", e.path)
		err = e.fsys.RemoveAll(e.path)
	default:
		e.logger.Debug("nothing to remove", "path", e.path)
		return nil
	}

	if err == nil {
		return nil
	}
	// Vanished between the type check and the delete.
	if errors.Is(err, fs.ErrNotExist) {
		e.logger.Debug("path disappeared before removal", "path", e.path)
		return nil
	}
	return &PathError{Op: "remove", Path: e.path, Kind: KindIO, Err: err}
}

// content reads the whole file, or reports false if the path is not a
// regular file or the read fails.
func (e *Entity) content() ([]byte, bool) {
	if !e.IsFile() {
		return nil, false
	}
	data, err := e.fsys.ReadFile(e.path)
	if err != nil {
		e.logger.Debug("read failed after file check", "path", e.path, "error", err)
		return nil, false
	}
	return data, true
}
