// Package filetype 负责内容类型和存储扩展名之间的映射。
package filetype

import "strings"

// 下载时支持写入的内容类型。键为小写的完整 MIME 类型。
var mimeToExtension = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/bmp":  ".bmp",
	"image/tiff": ".tiff",
	"image/webp": ".webp",
}

// 读取文件时由扩展名反推 MIME 类型。
// 注意：tiff 没有反向映射，未知扩展名一律按二进制流处理，这个不对称是有意保留的。
var extensionToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
}

// DefaultMIME 是无法识别的扩展名对应的兜底 MIME 类型。
const DefaultMIME = "application/octet-stream"

// ExtensionFor 把响应头中声明的 Content-Type 解析为存储用的扩展名。
// 匹配不区分大小写，并忽略 "; charset=..." 这类参数部分。
// 不在支持列表中的类型返回 ok=false。
func ExtensionFor(contentType string) (ext string, ok bool) {
	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	ext, ok = mimeToExtension[mediaType]
	return ext, ok
}

// MIMEFor 由文件扩展名反推 MIME 类型，供读回接口构造 data URI 使用。
// 扩展名不区分大小写；无法识别时返回 DefaultMIME。
func MIMEFor(ext string) string {
	if mime, ok := extensionToMIME[strings.ToLower(ext)]; ok {
		return mime
	}
	return DefaultMIME
}
