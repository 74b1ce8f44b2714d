package ar

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedKind indicates that archives of the requested kind can be read by other tools
	// but not written by this package (i.e., COFF and AIX big archives).
	ErrUnsupportedKind = errors.New("ar: archive kind not supported for writing")

	// ErrThinNotSupported indicates that a thin archive was requested for a BSD-like kind; only the
	// GNU variants have a thin mode.
	ErrThinNotSupported = errors.New("ar: only the GNU format has a thin mode")

	// ErrMemberTooLarge indicates that a member, after padding, does not fit in the header's size
	// field.
	ErrMemberTooLarge = errors.New("member is too large")

	// ErrWriterUsed indicates that WriteArchive was called more than once on the same Writer.
	ErrWriterUsed = errors.New("ar: archive already written")

	// ErrIsDirectory indicates that a directory was given where a member file was expected.
	ErrIsDirectory = errors.New("is a directory")
)

// ErrMember indicates a problem with one of the archive's members.
type ErrMember struct {
	Name string
	Err  error
}

func (e *ErrMember) Error() string {
	return fmt.Sprintf("ar: archive member '%s': %s", e.Name, e.Err)
}

func (e *ErrMember) Unwrap() error {
	return e.Err
}
