//go:build darwin || freebsd || netbsd

package fs

import (
	"syscall"
	"time"
)

func statTimes(stat *syscall.Stat_t) (atime, ctime time.Time) {
	return time.Unix(int64(stat.Atimespec.Sec), int64(stat.Atimespec.Nsec)), time.Unix(int64(stat.Ctimespec.Sec), int64(stat.Ctimespec.Nsec))
}
