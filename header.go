package ar

import (
	"strconv"
)

// headerBuf accumulates the bytes of a member header. Fields are left-justified and padded with
// spaces; values wider than their field are written in full rather than truncated.
type headerBuf []byte

func (h *headerBuf) string(s string, width int) {
	*h = append(*h, s...)
	for i := len(s); i < width; i++ {
		*h = append(*h, ' ')
	}
}

func (h *headerBuf) numeric(x uint64, width int) {
	h.string(strconv.FormatUint(x, 10), width)
}

func (h *headerBuf) octal(x uint32, width int) {
	h.string(strconv.FormatUint(uint64(x), 8), width)
}

// rest writes the fields that follow the name field in every header format.
func (h *headerBuf) rest(mtime uint64, uid, gid, mode uint32, size uint64) {
	// uid and gid only get six characters each.
	h.numeric(mtime, 12)
	h.numeric(uint64(uid%1000000), 6)
	h.numeric(uint64(gid%1000000), 6)
	h.octal(mode, 8)
	h.numeric(size, 10)
	*h = append(*h, "`\n"...)
}

// gnuSmall writes a GNU header with the name stored inline.
func (h *headerBuf) gnuSmall(name string, mtime uint64, uid, gid, mode uint32, size uint64) {
	h.string(name+"/", 16)
	h.rest(mtime, uid, gid, mode, size)
}

// bsd writes a BSD header for a member whose header starts at archive offset pos. The name is
// written after the fixed header and NUL-padded so that the member data begins 8-byte aligned; the
// recorded size includes the name.
func (h *headerBuf) bsd(pos uint64, name string, mtime uint64, uid, gid, mode uint32, size uint64) {
	nameLen := uint64(len(name))
	pad := offsetToAlignment(pos+HEADER_BYTE_SIZE+nameLen, 8)
	h.string("#1/"+strconv.FormatUint(nameLen+pad, 10), 16)
	h.rest(mtime, uid, gid, mode, nameLen+pad+size)
	*h = append(*h, name...)
	for i := uint64(0); i < pad; i++ {
		*h = append(*h, 0)
	}
}

// member writes the header for m, registering its name in st if the GNU format needs it there.
func (h *headerBuf) member(pos uint64, st *stringTable, kind Kind, m *Member, mtime, size uint64) {
	if kind.isBSDLike() {
		h.bsd(pos, m.Name, mtime, m.Uid, m.Gid, m.Mode, size)
		return
	}
	if !st.uses(m.Name) {
		h.gnuSmall(m.Name, mtime, m.Uid, m.Gid, m.Mode, size)
		return
	}
	h.string("/"+strconv.FormatUint(st.add(m.Name), 10), 16)
	h.rest(mtime, m.Uid, m.Gid, m.Mode, size)
}
