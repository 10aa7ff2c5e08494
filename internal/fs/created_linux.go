//go:build linux

package fs

import (
	"os"
	"syscall"
	"time"
)

// Linux has no portable birth time in Stat_t; the inode change time is
// what the snapshot directories were stamped with when they were created.
func createdAt(info os.FileInfo) time.Time {
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime()
	}
	return time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
}
