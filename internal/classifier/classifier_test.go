package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestIsImage(t *testing.T) {
	tests := map[string]bool{
		"a.png":           true,
		"a.jpg":           true,
		"a.jpeg":          true,
		"favicon.ico":     true,
		"archive.tar.png": true,
		"A.PNG":           false,
		"a.gif":           false,
		"png":             false,
		"a.png.txt":       false,
		".png":            true,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsImage(name), name)
	}
}

func TestClassifyMissingPath(t *testing.T) {
	_, err := Classify(filepath.Join(t.TempDir(), "nope.png"))
	assert.ErrorIs(t, err, ErrPathNotFound)
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.png")
	txt := filepath.Join(dir, "notes.txt")
	touch(t, img)
	touch(t, txt)

	kind, err := Classify(img)
	require.NoError(t, err)
	assert.Equal(t, SingleImage, kind)

	kind, err = Classify(dir)
	require.NoError(t, err)
	assert.Equal(t, Directory, kind)

	kind, err = Classify(txt)
	require.NoError(t, err)
	assert.Equal(t, Invalid, kind)
}

func TestListImages(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.jpg", "a.png", "b.txt", "d.ICO", "e.ico"} {
		touch(t, filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.png"), 0755))
	touch(t, filepath.Join(dir, "nested.png", "inner.png"))

	files, err := ListImages(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.png"),
		filepath.Join(dir, "c.jpg"),
		filepath.Join(dir, "e.ico"),
	}, files)
}

func TestRequireDirectory(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "a.png")
	touch(t, img)

	assert.NoError(t, RequireDirectory(dir))
	assert.ErrorIs(t, RequireDirectory(img), ErrNotADirectory)
	assert.ErrorIs(t, RequireDirectory(filepath.Join(dir, "missing")), ErrPathNotFound)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "image", SingleImage.String())
	assert.Equal(t, "directory", Directory.String())
	assert.Equal(t, "invalid", Invalid.String())
}

func TestIsGenerated(t *testing.T) {
	assert.True(t, IsGenerated("a-min.png"))
	assert.True(t, IsGenerated("a-min-2.jpg"))
	assert.True(t, IsGenerated("a-minimal.jpeg"))
	assert.False(t, IsGenerated("a-min.txt"))
	assert.False(t, IsGenerated("a.png"))
}
