//go:build linux || openbsd || dragonfly

package fs

import (
	"syscall"
	"time"
)

func statTimes(stat *syscall.Stat_t) (atime, ctime time.Time) {
	return time.Unix(int64(stat.Atim.Sec), int64(stat.Atim.Nsec)), time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
}
