package ar

import (
	"fmt"
	"strings"
)

const (
	HEADER_BYTE_SIZE = 60
	GLOBAL_HEADER    = "!<arch>\n"
	THIN_HEADER      = "!<thin>\n"
)

// Tests lower these to exercise the limits without gigabytes of data.
var (
	// maxMemberSize is the largest member size that fits the 10-digit size field.
	maxMemberSize uint64 = 9999999999

	// sym64Threshold is the offset at or beyond which the last member can no longer be addressed by
	// a 32-bit symbol table.
	sym64Threshold uint64 = 1 << 32
)

// Kind identifies a variant of the ar file format.
type Kind int

const (
	// GNU is the variant written by GNU ar, with a "/" symbol table and a "//" string table.
	GNU Kind = iota

	// GNU64 is GNU with a "/SYM64/" symbol table using 64-bit offsets.
	GNU64

	// BSD is the variant written by BSD ar, which stores long names in front of the member data.
	BSD

	// Darwin is the BSD variant used by Apple's toolchain. Members are 8-byte aligned and the archive
	// always carries a symbol table.
	Darwin

	// Darwin64 is Darwin with a "__.SYMDEF_64" symbol table using 64-bit offsets.
	Darwin64

	// COFF is the Windows import library variant. It cannot be written.
	COFF

	// AIXBig is the AIX big archive format. It cannot be written.
	AIXBig
)

var kindNames = [...]string{
	GNU:      "gnu",
	GNU64:    "gnu64",
	BSD:      "bsd",
	Darwin:   "darwin",
	Darwin64: "darwin64",
	COFF:     "coff",
	AIXBig:   "aixbig",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the Kind with the given name, as printed by Kind.String. Matching is
// case-insensitive.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("ar: unknown archive kind %q", s)
}

// checkWritable returns ErrUnsupportedKind unless archives of this kind can be written.
func (k Kind) checkWritable() error {
	switch k {
	case GNU, GNU64, BSD, Darwin, Darwin64:
		return nil
	case COFF, AIXBig:
		return fmt.Errorf("%w: %s archives can only be read", ErrUnsupportedKind, k)
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrUnsupportedKind, int(k))
	}
}

// isBSDLike reports whether the kind uses BSD-style headers. It must only be called on kinds that
// have passed checkWritable.
func (k Kind) isBSDLike() bool {
	switch k {
	case GNU, GNU64:
		return false
	case BSD, Darwin, Darwin64:
		return true
	default:
		panic("ar: " + k.String() + " archives are not supported for writing")
	}
}

func (k Kind) is64Bit() bool {
	return k == GNU64 || k == Darwin64
}

func (k Kind) isDarwin() bool {
	return k == Darwin || k == Darwin64
}

// upgraded returns the 64-bit counterpart of a 32-bit kind. BSD has none of its own; it takes the
// Darwin64 symbol table, whose layout is the BSD one with wider fields.
func (k Kind) upgraded() Kind {
	if k.isBSDLike() {
		return Darwin64
	}
	return GNU64
}

// offsetToAlignment returns the number of bytes needed to round n up to a multiple of align.
func offsetToAlignment(n, align uint64) uint64 {
	return (align - n%align) % align
}

// Member is a single file to be stored in an archive.
type Member struct {
	// Name is the member's file name as recorded in its header.
	Name string

	// Data is the member's content. It is never modified.
	Data []byte

	// ModTime is the modification time in seconds since the Unix epoch.
	ModTime uint64

	Uid uint32
	Gid uint32

	// Mode holds the permission bits, written in octal.
	Mode uint32
}

// NewMember returns a Member with deterministic metadata: a zero timestamp, owner and group, and
// mode 0644.
func NewMember(name string, data []byte) Member {
	return Member{
		Name: name,
		Data: data,
		Mode: 0644,
	}
}
