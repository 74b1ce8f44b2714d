package ar

import (
	"bytes"
	"encoding/binary"
)

// symbolTable collects the names of symbols defined by the archive's members. Names are stored
// NUL-terminated in a single buffer and referenced by offset.
type symbolTable struct {
	names bytes.Buffer

	// hasObject is true if at least one member was recognised as an object file.
	hasObject bool
}

// add records the symbols defined by a member's data and returns their offsets in the name
// buffer.
func (s *symbolTable) add(data []byte) []uint64 {
	names, ok := objectSymbols(data)
	if !ok {
		return nil
	}
	s.hasObject = true
	offsets := make([]uint64, 0, len(names))
	for _, name := range names {
		offsets = append(offsets, uint64(s.names.Len()))
		s.names.WriteString(name)
		s.names.WriteByte(0)
	}
	return offsets
}

// finish is called once every member has been added. Older Solaris tools expect a symbol table in
// any archive containing objects, so one is forced by giving it a few bytes of empty names.
func (s *symbolTable) finish() {
	if s.hasObject && s.names.Len() == 0 {
		s.names.WriteString("\x00\x00\x00")
	}
}

// symbolTableSizeAndPad returns the size of a symbol table's data section with numSyms entries of
// offsetSize bytes each, and how much of it is padding.
func symbolTableSizeAndPad(kind Kind, numSyms, offsetSize, namesLen uint64) (size, pad uint64) {
	size = offsetSize // number of entries, or byte count of the entries for BSD
	if kind.isBSDLike() {
		size += numSyms * offsetSize * 2 // (name offset, member offset) pairs
		size += offsetSize               // byte count of the names
	} else {
		size += numSyms * offsetSize
	}
	size += namesLen
	// ld64 wants 8-byte aligned members for 64-bit content; all BSD kinds get that to keep member
	// alignment simple.
	if kind.isBSDLike() {
		pad = offsetToAlignment(size, 8)
	} else {
		pad = offsetToAlignment(size, 2)
	}
	return size + pad, pad
}

// symbolTableHeader renders the header of the symbol table member, which starts at archive offset
// pos.
func symbolTableHeader(pos uint64, kind Kind, mtime, size uint64) []byte {
	var h headerBuf
	switch {
	case kind.isBSDLike() && kind.is64Bit():
		h.bsd(pos, "__.SYMDEF_64", mtime, 0, 0, 0, size)
	case kind.isBSDLike():
		h.bsd(pos, "__.SYMDEF", mtime, 0, 0, 0, size)
	case kind.is64Bit():
		h.gnuSmall("/SYM64", mtime, 0, 0, 0, size)
	default:
		h.gnuSmall("", mtime, 0, 0, 0, size)
	}
	return h
}

// appendOffset appends v in the symbol table's integer encoding: 4 or 8 bytes depending on the
// kind, little-endian for BSD and big-endian for GNU.
func appendOffset(b []byte, kind Kind, v uint64) []byte {
	var order binary.AppendByteOrder = binary.BigEndian
	if kind.isBSDLike() {
		order = binary.LittleEndian
	}
	if kind.is64Bit() {
		return order.AppendUint64(b, v)
	}
	return order.AppendUint32(b, uint32(v))
}

// writeSymbolTable writes the symbol table member for members, which follow it directly in the
// archive.
func writeSymbolTable(w *positionWriter, kind Kind, mtime uint64, members []memberData, names []byte) error {
	var numSyms uint64
	for i := range members {
		numSyms += uint64(len(members[i].symbols))
	}
	offsetSize := uint64(4)
	if kind.is64Bit() {
		offsetSize = 8
	}
	size, pad := symbolTableSizeAndPad(kind, numSyms, offsetSize, uint64(len(names)))
	if _, err := w.Write(symbolTableHeader(w.pos, kind, mtime, size)); err != nil {
		return err
	}

	pos := w.pos + size
	b := make([]byte, 0, size)
	if kind.isBSDLike() {
		b = appendOffset(b, kind, numSyms*2*offsetSize)
	} else {
		b = appendOffset(b, kind, numSyms)
	}
	for i := range members {
		for _, nameOffset := range members[i].symbols {
			if kind.isBSDLike() {
				b = appendOffset(b, kind, nameOffset)
			}
			b = appendOffset(b, kind, pos)
		}
		pos += members[i].size()
	}
	if kind.isBSDLike() {
		b = appendOffset(b, kind, uint64(len(names)))
	}
	b = append(b, names...)
	b = append(b, make([]byte, pad)...)
	_, err := w.Write(b)
	return err
}
