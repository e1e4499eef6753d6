//go:build unix

package util

import "golang.org/x/sys/unix"

// AvailableDiskBytes returns the bytes available to unprivileged users on
// the filesystem containing dir.
func AvailableDiskBytes(dir string) (uint64, bool) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, false
	}
	return uint64(st.Bavail) * uint64(st.Bsize), true
}
