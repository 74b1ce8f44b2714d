package ar

import (
	"bytes"
	"debug/elf"
	"debug/macho"
	"debug/pe"
	"encoding/binary"
	"errors"
)

// Mach-O nlist n_type bits.
const (
	machoStab = 0xe0
	machoType = 0x0e
	machoSect = 0x0e
	machoExt  = 0x01
)

// COFF symbol storage classes.
const (
	coffClassExternal     = 2
	coffClassWeakExternal = 105
)

// objectSymbols returns the names of the global symbols defined by an object file, in symbol table
// order. ok is false if data isn't a recognised object file, which is not an error: archives may
// contain arbitrary files.
func objectSymbols(data []byte) (names []string, ok bool) {
	r := bytes.NewReader(data)
	switch {
	case bytes.HasPrefix(data, []byte(elf.ELFMAG)):
		return elfSymbols(r)
	case isMachO(data):
		return machoSymbols(r)
	case bytes.HasPrefix(data, []byte("MZ")), isCOFF(data):
		return peSymbols(r)
	}
	return nil, false
}

func isMachO(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, magic := range []uint32{binary.BigEndian.Uint32(data), binary.LittleEndian.Uint32(data)} {
		if magic == macho.Magic32 || magic == macho.Magic64 {
			return true
		}
	}
	return false
}

// isCOFF reports whether data starts with a COFF file header for a machine that object files are
// commonly built for. A bare COFF object has no magic number of its own.
func isCOFF(data []byte) bool {
	if len(data) < 20 {
		return false
	}
	switch binary.LittleEndian.Uint16(data) {
	case pe.IMAGE_FILE_MACHINE_I386, pe.IMAGE_FILE_MACHINE_AMD64, pe.IMAGE_FILE_MACHINE_ARM,
		pe.IMAGE_FILE_MACHINE_ARMNT, pe.IMAGE_FILE_MACHINE_ARM64:
		return true
	}
	return false
}

func elfSymbols(r *bytes.Reader) ([]string, bool) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, false
	}
	syms, err := f.Symbols()
	if errors.Is(err, elf.ErrNoSymbols) {
		return nil, true
	} else if err != nil {
		return nil, false
	}
	var names []string
	for _, sym := range syms {
		if isELFArchiveSymbol(sym) {
			names = append(names, sym.Name)
		}
	}
	return names, true
}

func isELFArchiveSymbol(sym elf.Symbol) bool {
	if elf.ST_BIND(sym.Info) == elf.STB_LOCAL {
		return false
	}
	if sym.Section == elf.SHN_UNDEF || (sym.Section >= elf.SHN_LORESERVE && sym.Section != elf.SHN_XINDEX) {
		return false
	}
	switch elf.ST_TYPE(sym.Info) {
	case elf.STT_NOTYPE:
		return sym.Size != 0
	case elf.STT_FUNC, elf.STT_OBJECT:
		return true
	default:
		return false
	}
}

func machoSymbols(r *bytes.Reader) ([]string, bool) {
	f, err := macho.NewFile(r)
	if err != nil {
		return nil, false
	}
	if f.Symtab == nil {
		return nil, true
	}
	var names []string
	for _, sym := range f.Symtab.Syms {
		if isMachOArchiveSymbol(sym) {
			names = append(names, sym.Name)
		}
	}
	return names, true
}

func isMachOArchiveSymbol(sym macho.Symbol) bool {
	if sym.Type&machoStab != 0 || sym.Type&machoExt == 0 {
		return false
	}
	return sym.Type&machoType == machoSect
}

func peSymbols(r *bytes.Reader) ([]string, bool) {
	f, err := pe.NewFile(r)
	if err != nil {
		return nil, false
	}
	var names []string
	for _, sym := range f.Symbols {
		if isCOFFArchiveSymbol(sym) {
			names = append(names, sym.Name)
		}
	}
	return names, true
}

func isCOFFArchiveSymbol(sym *pe.Symbol) bool {
	if sym.StorageClass != coffClassExternal && sym.StorageClass != coffClassWeakExternal {
		return false
	}
	return sym.SectionNumber > 0
}
