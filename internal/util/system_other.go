//go:build !unix

package util

// AvailableDiskBytes is not implemented on this platform.
func AvailableDiskBytes(string) (uint64, bool) {
	return 0, false
}
