package fid

import (
	"database/sql"
	"io/fs"
	"time"
)

// Deleter abstracts the two delete primitives an Entity needs.
type Deleter interface {
	Remove(path string) error
	RemoveAll(path string) error
}

// Filesystem provides an interface for filesystem operations.
// It abstracts file access to enable testing without touching the real filesystem.
type Filesystem interface {
	Deleter

	// Stat returns fresh file info for a path, following symlinks.
	Stat(path string) (fs.FileInfo, error)

	// ReadFile reads the whole content of a file into memory.
	ReadFile(path string) ([]byte, error)

	// ExtractStatData extracts platform-specific ownership and timestamps from info.
	ExtractStatData(info fs.FileInfo) (*StatData, error)
}

// StatData holds the stat fields that fs.FileInfo does not expose portably.
type StatData struct {
	UID       int64
	GID       int64
	Atime     time.Time
	Ctime     time.Time
	BirthTime sql.NullTime
}
