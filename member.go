package ar

import (
	"fmt"
	"os"
	"path/filepath"
)

// NewMemberFromFile reads the file at path into a Member named after the file's base name.
//
// If deterministic is false the member takes the file's modification time, owner, group and
// permission bits; otherwise it gets the same metadata as NewMember.
func NewMemberFromFile(path string, deterministic bool) (Member, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return Member{}, fmt.Errorf("ar: %w", err)
	}
	// Some systems can open(2) a directory; it still makes no sense as a member.
	if fi.IsDir() {
		return Member{}, &ErrMember{Name: path, Err: ErrIsDirectory}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Member{}, fmt.Errorf("ar: %w", err)
	}
	m := NewMember(filepath.Base(path), data)
	if deterministic {
		return m, nil
	}
	if t := fi.ModTime().Unix(); t > 0 {
		m.ModTime = uint64(t)
	}
	m.Uid, m.Gid, m.Mode, err = fileOwnership(path, fi)
	if err != nil {
		return Member{}, fmt.Errorf("ar: %w", err)
	}
	return m, nil
}
