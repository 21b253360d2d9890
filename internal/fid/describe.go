package fid

import (
	"io/fs"
	"time"
)

// Description is a point-in-time summary of an entity. It is computed on
// demand by Describe and is stale as soon as it is returned.
type Description struct {
	Path string
	// Type is one of TypeFile, TypeDirectory, TypeOther or TypeMissing.
	Type    string
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time
	// Hash is empty unless Type is TypeFile.
	Hash string
	// Owner is nil when the platform does not expose ownership.
	Owner *StatData
}

const (
	TypeFile      = "file"
	TypeDirectory = "directory"
	TypeOther     = "other"
	TypeMissing   = "missing"
)

// Describe stats the path and, for regular files, hashes it.
// A missing path is not an error; it is reported with Type "missing".
// Other stat failures are returned as *PathError.
func (e *Entity) Describe() (*Description, error) {
	d := &Description{Path: e.path}

	info, err := e.Metadata()
	if err != nil {
		if k, _ := KindOf(err); k == KindNotFound {
			d.Type = TypeMissing
			return d, nil
		}
		return nil, err
	}

	d.Size = info.Size()
	d.Mode = info.Mode()
	d.ModTime = info.ModTime()

	switch {
	case info.Mode().IsRegular():
		d.Type = TypeFile
		d.Hash = e.Hash()
	case info.IsDir():
		d.Type = TypeDirectory
	default:
		d.Type = TypeOther
	}

	if owner, err := e.fsys.ExtractStatData(info); err == nil {
		d.Owner = owner
	} else {
		e.logger.Debug("stat data unavailable", "path", e.path, "error", err)
	}

	return d, nil
}
