//go:build !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package fs

import (
	"fmt"
	"io/fs"
	"runtime"

	"fid-go/internal/fid"
)

// ExtractStatData is not supported on this platform.
func (m *OSFilesystem) ExtractStatData(info fs.FileInfo) (*fid.StatData, error) {
	return nil, fmt.Errorf("stat data not available on %s", runtime.GOOS)
}
