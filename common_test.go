package ar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	for _, tc := range []struct {
		Kind     Kind
		BSDLike  bool
		Is64Bit  bool
		IsDarwin bool
		Upgraded Kind
	}{
		{GNU, false, false, false, GNU64},
		{GNU64, false, true, false, GNU64},
		{BSD, true, false, false, Darwin64},
		{Darwin, true, false, true, Darwin64},
		{Darwin64, true, true, true, Darwin64},
	} {
		t.Run(tc.Kind.String(), func(t *testing.T) {
			require.NoError(t, tc.Kind.checkWritable())
			assert.Equal(t, tc.BSDLike, tc.Kind.isBSDLike())
			assert.Equal(t, tc.Is64Bit, tc.Kind.is64Bit())
			assert.Equal(t, tc.IsDarwin, tc.Kind.isDarwin())
			assert.Equal(t, tc.Upgraded, tc.Kind.upgraded())
		})
	}
}

func TestUnwritableKinds(t *testing.T) {
	for _, kind := range []Kind{COFF, AIXBig, Kind(-1), Kind(42)} {
		t.Run(kind.String(), func(t *testing.T) {
			assert.ErrorIs(t, kind.checkWritable(), ErrUnsupportedKind)
			assert.Panics(t, func() { kind.isBSDLike() })
			assert.False(t, kind.is64Bit())
			assert.False(t, kind.isDarwin())
		})
	}
}

func TestUnwritableKindMessages(t *testing.T) {
	assert.EqualError(t, COFF.checkWritable(), "ar: archive kind not supported for writing: coff archives can only be read")
	assert.EqualError(t, AIXBig.checkWritable(), "ar: archive kind not supported for writing: aixbig archives can only be read")
	assert.EqualError(t, Kind(42).checkWritable(), "ar: archive kind not supported for writing: unknown kind 42")
}

func TestParseKind(t *testing.T) {
	for _, kind := range []Kind{GNU, GNU64, BSD, Darwin, Darwin64, COFF, AIXBig} {
		parsed, err := ParseKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	parsed, err := ParseKind("Darwin")
	require.NoError(t, err)
	assert.Equal(t, Darwin, parsed)

	_, err = ParseKind("tar")
	assert.Error(t, err)
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestOffsetToAlignment(t *testing.T) {
	for _, tc := range []struct {
		N, Align, Want uint64
	}{
		{0, 2, 0},
		{1, 2, 1},
		{500, 2, 0},
		{13, 8, 3},
		{16, 8, 0},
		{82, 8, 6},
	} {
		assert.Equal(t, tc.Want, offsetToAlignment(tc.N, tc.Align), "offsetToAlignment(%d, %d)", tc.N, tc.Align)
	}
}

func TestNewMember(t *testing.T) {
	m := NewMember("hello.o", []byte("hi"))
	assert.Equal(t, Member{Name: "hello.o", Data: []byte("hi"), Mode: 0644}, m)
}
