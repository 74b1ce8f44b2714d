//go:build unix

package ar

import (
	"os"

	"golang.org/x/sys/unix"
)

// fileOwnership returns the owner, group and permission bits (including setuid, setgid and sticky)
// of the file at path.
func fileOwnership(path string, fi os.FileInfo) (uid, gid, mode uint32, err error) {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return 0, 0, 0, &os.PathError{Op: "stat", Path: path, Err: err}
	}
	return st.Uid, st.Gid, uint32(st.Mode) & 07777, nil
}
