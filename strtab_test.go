package ar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringTableUses(t *testing.T) {
	st := newStringTable(false)
	assert.False(t, st.uses("a.o"))
	assert.False(t, st.uses("fifteen_chars.o"))
	assert.True(t, st.uses("sixteen_chars.oo"))
	assert.True(t, st.uses("dir/a.o"))
	assert.True(t, newStringTable(true).uses("a.o"))
}

func TestStringTableDeduplicates(t *testing.T) {
	st := newStringTable(false)
	assert.Equal(t, uint64(0), st.add("first_long_name.o"))
	assert.Equal(t, uint64(19), st.add("second_long_name.o"))
	assert.Equal(t, uint64(0), st.add("first_long_name.o"))
	assert.Equal(t, "first_long_name.o/\nsecond_long_name.o/\n", st.buf.String())
}

func TestThinStringTableRepeatsNames(t *testing.T) {
	st := newStringTable(true)
	assert.Equal(t, uint64(0), st.add("a.o"))
	assert.Equal(t, uint64(5), st.add("a.o"))
	assert.Equal(t, "a.o/\na.o/\n", st.buf.String())
}

func TestStringTableMember(t *testing.T) {
	st := newStringTable(true)
	st.add("a.o")
	m := st.member()
	assert.Equal(t, "//                                              6         `\n", string(m.header))
	assert.Equal(t, "a.o/\n", string(m.data))
	assert.Equal(t, "\n", string(m.padding))
	assert.Empty(t, m.symbols)
	assert.Equal(t, uint64(66), m.size())
}
