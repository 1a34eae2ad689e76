package source

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teranos/codecomplete/errors"
)

// countingFs records every file open
type countingFs struct {
	afero.Fs
	opens int
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.opens++
	return c.Fs.Open(name)
}

func (c *countingFs) OpenFile(name string, flag int, perm fs.FileMode) (afero.File, error) {
	c.opens++
	return c.Fs.OpenFile(name, flag, perm)
}

func fixedAbs(dir string) func(string) (string, error) {
	return func(p string) (string, error) {
		if filepath.IsAbs(p) {
			return p, nil
		}
		return filepath.Join(dir, p), nil
	}
}

func TestResolve_TextWinsWithoutRead(t *testing.T) {
	memFs := &countingFs{Fs: afero.NewMemMapFs()}
	l := NewLocator(WithFs(memFs), WithAbs(fixedAbs("/work")))

	// The file does not exist; supplying text must not touch it
	id, err := l.Resolve("Missing.swift", "let x = 1")
	require.NoError(t, err)

	assert.Equal(t, "/work/Missing.swift", id.Path)
	assert.Equal(t, "let x = 1", id.Contents)
	assert.Zero(t, memFs.opens)
}

func TestResolve_ReadsFileWhenTextEmpty(t *testing.T) {
	memFs := &countingFs{Fs: afero.NewMemMapFs()}
	require.NoError(t, afero.WriteFile(memFs.Fs, "/work/Foo.swift", []byte("struct Foo {}\n"), 0644))

	l := NewLocator(WithFs(memFs), WithAbs(fixedAbs("/work")))

	id, err := l.Resolve("Foo.swift", "")
	require.NoError(t, err)

	assert.Equal(t, "/work/Foo.swift", id.Path)
	assert.Equal(t, "struct Foo {}\n", id.Contents)
	assert.Equal(t, 1, memFs.opens)
}

func TestResolve_ReadFailedKeepsCallerPath(t *testing.T) {
	l := NewLocator(WithFs(afero.NewMemMapFs()), WithAbs(fixedAbs("/work")))

	_, err := l.Resolve("Nope.swift", "")
	require.Error(t, err)

	assert.True(t, errors.IsReadFailed(err))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Contains(t, err.Error(), "failed to read Nope.swift")
	assert.NotContains(t, err.Error(), "failed to read /work/Nope.swift")
}

func TestResolve_SyntheticPath(t *testing.T) {
	l := NewLocator(
		WithFs(afero.NewMemMapFs()),
		WithAbs(fixedAbs("/work")),
		WithIDGenerator(func() string { return "6F9619FF-8B86-D011-B42D-00C04FC964FF" }),
	)

	id, err := l.Resolve("", "struct Foo { func bar() {} }")
	require.NoError(t, err)

	assert.Equal(t, "/work/6F9619FF-8B86-D011-B42D-00C04FC964FF.swift", id.Path)
	assert.Equal(t, "struct Foo { func bar() {} }", id.Contents)
}

func TestResolve_SyntheticPathsAreFresh(t *testing.T) {
	l := NewLocator(WithFs(afero.NewMemMapFs()))

	a, err := l.Resolve("", "x")
	require.NoError(t, err)
	b, err := l.Resolve("", "x")
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(a.Path))
	assert.Equal(t, ".swift", filepath.Ext(a.Path))
	assert.NotEqual(t, a.Path, b.Path)
}

func TestResolve_CustomSuffix(t *testing.T) {
	l := NewLocator(
		WithAbs(fixedAbs("/work")),
		WithIDGenerator(func() string { return "id" }),
		WithSuffix(".m"),
	)

	id, err := l.Resolve("", "@end")
	require.NoError(t, err)
	assert.Equal(t, "/work/id.m", id.Path)
}

func TestResolve_NoFileNoText(t *testing.T) {
	// The synthetic file does not exist, so reading it fails
	l := NewLocator(
		WithFs(afero.NewMemMapFs()),
		WithAbs(fixedAbs("/work")),
		WithIDGenerator(func() string { return "id" }),
	)

	_, err := l.Resolve("", "")
	require.Error(t, err)
	assert.True(t, errors.IsReadFailed(err))
}
