// Package storage 提供已落盘文件的读回能力。
// 存储目录是一个没有任何索引的平铺目录，文件名 "{标识符}{扩展名}" 就是全部元数据。
package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Slade66/image-fetcher/pkg/filetype"
)

var (
	// ErrDirMissing 表示存储目录不存在。
	ErrDirMissing = errors.New("存储目录不存在")
	// ErrNotFound 表示目录中没有以该标识符开头的文件。
	ErrNotFound = errors.New("找不到对应的文件")
)

// ReadAsDataURI 根据存储标识符（不含扩展名）读回文件内容，
// 返回 "data:{mimeType};base64,{payload}" 形式的字符串。
// MIME 类型完全由文件扩展名反推，无法识别的扩展名按二进制流处理。
func ReadAsDataURI(dir, storageID string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrDirMissing, dir)
		}
		return "", fmt.Errorf("read error: %v", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), storageID) {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return "", fmt.Errorf("read error: %v", err)
		}
		mimeType := filetype.MIMEFor(filepath.Ext(entry.Name()))
		return fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data)), nil
	}

	return "", fmt.Errorf("%w: %s", ErrNotFound, storageID)
}
