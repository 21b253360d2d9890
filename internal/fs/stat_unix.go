//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package fs

import (
	"database/sql"
	"fmt"
	"io/fs"
	"syscall"

	"fid-go/internal/fid"
)

// ExtractStatData extracts Unix-specific stat data from a FileInfo.
func (m *OSFilesystem) ExtractStatData(info fs.FileInfo) (*fid.StatData, error) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return nil, fmt.Errorf("cannot extract stat data: expected *syscall.Stat_t, got %T", info.Sys())
	}

	atime, ctime := statTimes(stat)
	return &fid.StatData{
		UID:   int64(stat.Uid),
		GID:   int64(stat.Gid),
		Atime: atime,
		Ctime: ctime,
		// Birth time is not available on most Unix filesystems
		BirthTime: sql.NullTime{Valid: false},
	}, nil
}
