package filetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionFor(t *testing.T) {
	cases := []struct {
		contentType string
		wantExt     string
		wantOK      bool
	}{
		{"image/jpeg", ".jpg", true},
		{"image/jpg", ".jpg", true},
		{"image/png", ".png", true},
		{"image/gif", ".gif", true},
		{"image/bmp", ".bmp", true},
		{"image/tiff", ".tiff", true},
		{"image/webp", ".webp", true},
		// 大小写和参数部分都不影响匹配
		{"IMAGE/PNG", ".png", true},
		{"Image/Jpeg; charset=utf-8", ".jpg", true},
		{" image/webp ", ".webp", true},
		// 不支持的类型
		{"text/html", "", false},
		{"application/json", "", false},
		{"image/svg+xml", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		ext, ok := ExtensionFor(tc.contentType)
		assert.Equal(t, tc.wantOK, ok, "content type %q", tc.contentType)
		assert.Equal(t, tc.wantExt, ext, "content type %q", tc.contentType)
	}
}

func TestMIMEFor(t *testing.T) {
	assert.Equal(t, "image/jpeg", MIMEFor(".jpg"))
	assert.Equal(t, "image/jpeg", MIMEFor(".jpeg"))
	assert.Equal(t, "image/png", MIMEFor(".PNG"))
	assert.Equal(t, "image/webp", MIMEFor(".webp"))

	// tiff 没有反向映射，未知扩展名一律按二进制流处理
	assert.Equal(t, DefaultMIME, MIMEFor(".tiff"))
	assert.Equal(t, DefaultMIME, MIMEFor(".exe"))
	assert.Equal(t, DefaultMIME, MIMEFor(""))
}

// 支持写入的每种内容类型，经过 扩展名 -> MIME 的往返必须是稳定的。
func TestRoundTripStable(t *testing.T) {
	for _, mime := range []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/bmp", "image/tiff", "image/webp"} {
		ext, ok := ExtensionFor(mime)
		assert.True(t, ok, mime)

		first := MIMEFor(ext)
		second := MIMEFor(ext)
		assert.NotEmpty(t, first, mime)
		assert.Equal(t, first, second, mime)
	}
}
