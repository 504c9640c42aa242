package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, content []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), content, 0644))
}

func TestReadAsDataURI(t *testing.T) {
	dir := t.TempDir()
	content := []byte("png bytes")
	writeFile(t, dir, "abc123.png", content)

	dataURI, err := ReadAsDataURI(dir, "abc123")
	require.NoError(t, err)

	expected := "data:image/png;base64," + base64.StdEncoding.EncodeToString(content)
	assert.Equal(t, expected, dataURI)
}

// 同一个标识符的重复读回必须返回完全一致的内容。
func TestReadAsDataURIIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abc123.jpg", []byte("jpeg bytes"))

	first, err := ReadAsDataURI(dir, "abc123")
	require.NoError(t, err)
	second, err := ReadAsDataURI(dir, "abc123")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// tiff 没有反向 MIME 映射，读回时按二进制流处理。
func TestReadAsDataURITiffFallsBack(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "abc123.tiff", []byte("tiff bytes"))

	dataURI, err := ReadAsDataURI(dir, "abc123")
	require.NoError(t, err)
	assert.Contains(t, dataURI, "data:application/octet-stream;base64,")
}

func TestReadAsDataURIDirMissing(t *testing.T) {
	_, err := ReadAsDataURI(filepath.Join(t.TempDir(), "不存在"), "abc123")
	assert.ErrorIs(t, err, ErrDirMissing)
}

func TestReadAsDataURINotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "other.png", []byte("png bytes"))

	_, err := ReadAsDataURI(dir, "abc123")
	assert.ErrorIs(t, err, ErrNotFound)
}
