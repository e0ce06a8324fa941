package compare

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestIdentical(t *testing.T) {
	dir := t.TempDir()
	big := bytes.Repeat([]byte("0123456789abcdef"), 3*chunkSize/16+5)
	bigChanged := append([]byte(nil), big...)
	bigChanged[len(bigChanged)-1] ^= 0xff

	cases := []struct {
		name string
		a, b []byte
		want bool
	}{
		{"equal small", []byte("same"), []byte("same"), true},
		{"different size", []byte("same"), []byte("same!"), false},
		{"same size different bytes", []byte("abcd"), []byte("abce"), false},
		{"both empty", nil, nil, true},
		{"equal multi chunk", big, big, true},
		{"last byte differs", big, bigChanged, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := write(t, dir, tc.name+".a", tc.a)
			b := write(t, dir, tc.name+".b", tc.b)

			got, err := New(nil).Identical(a, b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIdentical_HardLinkShortcut(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a", []byte("content"))
	b := filepath.Join(dir, "b")
	require.NoError(t, os.Link(a, b))

	got, err := New(nil).Identical(a, b)
	require.NoError(t, err)
	assert.True(t, got)
}

func TestIdentical_MissingFile(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a", []byte("content"))

	_, err := New(nil).Identical(a, filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIdentical_CachesDigests(t *testing.T) {
	dir := t.TempDir()
	a := write(t, dir, "a", []byte("aaaa"))
	b := write(t, dir, "b", []byte("bbbb"))
	c := write(t, dir, "c", []byte("cccc"))

	cmp := New(nil)
	_, err := cmp.Identical(a, b)
	require.NoError(t, err)
	_, err = cmp.Identical(b, c)
	require.NoError(t, err)

	assert.Len(t, cmp.digests, 3)
}
