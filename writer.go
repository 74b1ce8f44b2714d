/*
Copyright (c) 2013 Blake Smith <blakesmith0@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package ar

import (
	"bufio"
	"fmt"
	"io"
	"time"
)

// paddingData is the source of the newline padding that follows member data. At most 7 bytes
// align Darwin members to 8, plus 1 to make the record even.
var paddingData = []byte("\n\n\n\n\n\n\n\n")

type writerOptions struct {
	symtab        bool
	deterministic bool
	thin          bool
}

// Option configures a Writer.
type Option func(*writerOptions)

// WithSymbolTable makes the Writer emit a symbol table indexing the global symbols defined by
// object file members.
func WithSymbolTable() Option {
	return func(o *writerOptions) {
		o.symtab = true
	}
}

// Deterministic makes the output depend only on the members: the symbol table gets a zero
// timestamp, and Darwin archives give same-named members distinct timestamps.
func Deterministic() Option {
	return func(o *writerOptions) {
		o.deterministic = true
	}
}

// Thin makes the Writer produce a thin archive, which records member names and metadata but not
// their data. Only the GNU kinds support it.
func Thin() Option {
	return func(o *writerOptions) {
		o.thin = true
	}
}

// Writer writes a complete ar archive in one go.
//
// Example:
//
//	archive := ar.NewWriter(w, ar.GNU, ar.WithSymbolTable(), ar.Deterministic())
//	if err := archive.WriteArchive([]ar.Member{ar.NewMember("hello.o", obj)}); err != nil {
//		return err
//	}
type Writer struct {
	writerOptions

	// w is the underlying io.Writer to which the archive file is written.
	w io.Writer

	// kind is the variant of the format being written. It is upgraded to a 64-bit kind if the
	// archive is too large for a 32-bit symbol table.
	kind Kind

	// written is true once WriteArchive has been called.
	written bool

	// now returns the time recorded in the symbol table header of non-deterministic archives.
	now func() time.Time
}

// NewWriter creates a new Writer that writes an archive of the given kind to w.
func NewWriter(w io.Writer, kind Kind, opts ...Option) *Writer {
	aw := &Writer{
		w:    w,
		kind: kind,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(&aw.writerOptions)
	}
	return aw
}

// WriteArchive writes an archive containing members, in order, to w. It doesn't close w.
//
// Nothing is written if the kind can't be written, if a thin archive is requested for a BSD-like
// kind or if a member is too large. If writing to w fails the output is incomplete and should be
// discarded.
func WriteArchive(w io.Writer, members []Member, kind Kind, opts ...Option) error {
	return NewWriter(w, kind, opts...).WriteArchive(members)
}

// Kind returns the variant of the format the Writer writes. After WriteArchive it reflects any
// upgrade to a 64-bit symbol table.
func (aw *Writer) Kind() Kind {
	return aw.kind
}

// WriteArchive writes an archive containing members, in order. It may only be called once.
func (aw *Writer) WriteArchive(members []Member) error {
	if aw.written {
		return ErrWriterUsed
	}
	aw.written = true
	if err := aw.kind.checkWritable(); err != nil {
		return err
	}
	if aw.thin && aw.kind.isBSDLike() {
		return ErrThinNotSupported
	}

	st := newStringTable(aw.thin)
	syms := &symbolTable{}
	data, err := aw.computeMemberData(members, st, syms)
	if err != nil {
		return err
	}
	if st.buf.Len() > 0 {
		data = append([]memberData{st.member()}, data...)
	}

	// Darwin's linker refuses archives without a symbol table, so it gets one even if it's empty.
	writeSymtab := aw.symtab && (syms.names.Len() > 0 || aw.kind.isDarwin())
	if writeSymtab {
		aw.kind = aw.symbolTableKind(data, uint64(syms.names.Len()))
	}

	bw := bufio.NewWriter(aw.w)
	pw := &positionWriter{Writer: bw}
	magic := GLOBAL_HEADER
	if aw.thin {
		magic = THIN_HEADER
	}
	if _, err := io.WriteString(pw, magic); err != nil {
		return fmt.Errorf("ar: write archive header: %w", err)
	}
	if writeSymtab {
		if err := writeSymbolTable(pw, aw.kind, aw.symbolTableTime(), data, syms.names.Bytes()); err != nil {
			return fmt.Errorf("ar: write symbol table: %w", err)
		}
	}
	for i := range data {
		m := &data[i]
		for _, b := range [][]byte{m.header, m.data, m.padding} {
			if _, err := pw.Write(b); err != nil {
				return fmt.Errorf("ar: write member: %w", err)
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("ar: write archive: %w", err)
	}
	return nil
}

// computeMemberData renders the header of each member and works out its padding, filling in the
// string table and the symbol table as it goes.
func (aw *Writer) computeMemberData(members []Member, st *stringTable, syms *symbolTable) ([]memberData, error) {
	// The position of each member's header, ignoring the magic and the symbol table. Only its value
	// mod 8 matters (for BSD name padding) and both of those are multiples of 8.
	var pos uint64

	// Darwin's linker records (archive path, member name, mtime) in debug maps, so debuggers can't
	// tell members with the same name apart unless their mtimes differ. Deterministic archives give
	// each of them its own mtime based on its position, counting from zero.
	uniqueTimestamps := aw.deterministic && aw.kind.isDarwin()
	var nameCount, nextTimestamp map[string]uint64
	if uniqueTimestamps {
		nameCount = map[string]uint64{}
		nextTimestamp = map[string]uint64{}
		for i := range members {
			nameCount[members[i].Name]++
		}
	}

	ret := make([]memberData, 0, len(members)+1)
	for i := range members {
		m := &members[i]
		data := m.Data
		if aw.thin {
			data = nil
		}

		// ld64 expects members to be 8-byte aligned for 64-bit content and at least 4-byte aligned
		// for 32-bit content; cctools uses 8 for everything.
		var memberPadding uint64
		if aw.kind.isDarwin() {
			memberPadding = offsetToAlignment(uint64(len(data)), 8)
		}
		tailPadding := offsetToAlignment(uint64(len(data))+memberPadding, 2)

		mtime := m.ModTime
		if uniqueTimestamps && nameCount[m.Name] > 1 {
			mtime = nextTimestamp[m.Name]
			nextTimestamp[m.Name]++
		}

		size := uint64(len(m.Data)) + memberPadding
		if size > maxMemberSize {
			return nil, &ErrMember{Name: m.Name, Err: ErrMemberTooLarge}
		}

		var h headerBuf
		h.member(pos, st, aw.kind, m, mtime, size)

		var symbols []uint64
		if aw.symtab {
			symbols = syms.add(m.Data)
		}

		ret = append(ret, memberData{
			symbols: symbols,
			header:  h,
			data:    data,
			padding: paddingData[:memberPadding+tailPadding],
		})
		pos += ret[len(ret)-1].size()
	}
	syms.finish()
	return ret, nil
}

// symbolTableKind returns the kind to write the symbol table with. The symbol table's own size
// shifts every member, so it first lays the archive out with 32-bit offsets; if the last member
// would then start beyond what 32 bits can address, the 64-bit counterpart is used instead. The
// archive may be larger than 4GiB as long as the last member starts below that.
func (aw *Writer) symbolTableKind(data []memberData, namesLen uint64) Kind {
	maxOffset := uint64(len(GLOBAL_HEADER))
	lastOffset := maxOffset
	var numSyms uint64
	for i := range data {
		lastOffset = maxOffset
		maxOffset += data[i].size()
		numSyms += uint64(len(data[i].symbols))
	}
	size, _ := symbolTableSizeAndPad(aw.kind, numSyms, 4, namesLen)
	lastOffset += uint64(len(symbolTableHeader(uint64(len(GLOBAL_HEADER)), aw.kind, 0, size))) + size
	if lastOffset >= sym64Threshold {
		return aw.kind.upgraded()
	}
	return aw.kind
}

func (aw *Writer) symbolTableTime() uint64 {
	if aw.deterministic {
		return 0
	}
	if t := aw.now().Unix(); t > 0 {
		return uint64(t)
	}
	return 0
}

// positionWriter tracks how many bytes have been written through it.
type positionWriter struct {
	io.Writer

	pos uint64
}

func (p *positionWriter) Write(b []byte) (int, error) {
	n, err := p.Writer.Write(b)
	p.pos += uint64(n)
	return n, err
}
