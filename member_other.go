//go:build !unix

package ar

import (
	"os"
)

// fileOwnership has no owner or group to report on this platform.
func fileOwnership(path string, fi os.FileInfo) (uid, gid, mode uint32, err error) {
	return 0, 0, uint32(fi.Mode().Perm()), nil
}
