package ar

import (
	"bytes"
	"strings"
)

// memberData is a member ready to be written: its rendered header, its content and the padding
// that follows it.
type memberData struct {
	// symbols holds the offsets into the symbol name buffer of the symbols this member defines.
	symbols []uint64
	header  []byte
	data    []byte
	padding []byte
}

func (m *memberData) size() uint64 {
	return uint64(len(m.header) + len(m.data) + len(m.padding))
}

// stringTable is the data section of the GNU "//" member, which holds the names of members that
// cannot be stored in a header's 16-byte name field. Each name is terminated by "/\n".
type stringTable struct {
	thin bool
	buf  bytes.Buffer

	// offsets maps names already in buf to their offset. Thin archives don't deduplicate names, so
	// it is unused for them.
	offsets map[string]uint64
}

func newStringTable(thin bool) *stringTable {
	return &stringTable{
		thin:    thin,
		offsets: map[string]uint64{},
	}
}

// uses reports whether a member with the given name is stored via the string table.
func (st *stringTable) uses(name string) bool {
	return st.thin || len(name) >= 16 || strings.Contains(name, "/")
}

// add returns the offset of name in the table, appending it if necessary.
func (st *stringTable) add(name string) uint64 {
	if !st.thin {
		if off, present := st.offsets[name]; present {
			return off
		}
	}
	off := uint64(st.buf.Len())
	if !st.thin {
		st.offsets[name] = off
	}
	st.buf.WriteString(name)
	st.buf.WriteString("/\n")
	return off
}

// member returns the "//" member holding the table.
func (st *stringTable) member() memberData {
	size := uint64(st.buf.Len())
	pad := offsetToAlignment(size, 2)
	var h headerBuf
	h.string("//", 48)
	h.numeric(size+pad, 10)
	h = append(h, "`\n"...)
	return memberData{
		header:  h,
		data:    st.buf.Bytes(),
		padding: paddingData[:pad],
	}
}
