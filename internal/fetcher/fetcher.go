// Package fetcher 负责下载单个 URL 并把内容流式写入存储目录。
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Slade66/image-fetcher/internal/retry"
	"github.com/Slade66/image-fetcher/internal/uploader"
	"github.com/Slade66/image-fetcher/pkg/batch"
	"github.com/Slade66/image-fetcher/pkg/filetype"
	"github.com/google/uuid"
)

// Fetcher 执行单个 URL 的抓取，所有失败都会折叠成带类型的 Outcome，
// 不会向调用方抛出错误。
type Fetcher struct {
	client   *http.Client
	policy   *retry.Policy
	uploader *uploader.ObsUploader
}

// New 创建一个 Fetcher。uploader 可以为 nil，表示不开启 OBS 镜像。
func New(client *http.Client, policy *retry.Policy, up *uploader.ObsUploader) *Fetcher {
	return &Fetcher{
		client:   client,
		policy:   policy,
		uploader: up,
	}
}

// Fetch 下载一个 URL 到 destDir，文件名为 "{随机标识符}{扩展名}"。
// 标识符与 URL 和内容都无关，既避免碰撞也不泄露来源结构。
// 网络错误和非 2xx 状态码按重试策略重试；内容类型不受支持属于抓取成功
// 但载荷被拒绝，不重试也不落盘。
func (f *Fetcher) Fetch(ctx context.Context, rawURL, destDir string) batch.Outcome {
	var result batch.Outcome

	err := f.policy.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("构造请求失败: %w", err))
		}

		resp, err := f.client.Do(req)
		if err != nil {
			// 超时、连接失败等瞬时错误，交给重试策略处理。
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			// 把响应体读完再关闭，让底层连接可以被复用。
			io.Copy(io.Discard, resp.Body)
			return fmt.Errorf("服务器返回了非预期的状态码: %s", resp.Status)
		}

		// 先看响应头声明的内容类型，再决定要不要消费响应体。
		contentType := resp.Header.Get("Content-Type")
		ext, ok := filetype.ExtensionFor(contentType)
		if !ok {
			result = batch.InvalidFileType(fmt.Sprintf("不支持的内容类型: %s", contentType))
			return nil
		}

		storageID := uuid.New().String()
		filename := storageID + ext
		destPath := filepath.Join(destDir, filename)

		file, err := os.Create(destPath)
		if err != nil {
			// 目标目录不可写，重试也没有意义。
			return retry.Permanent(fmt.Errorf("创建目标文件失败: %w", err))
		}

		// 直接把响应体拷贝到文件，不在内存里缓冲整个载荷。
		if _, err := io.Copy(file, resp.Body); err != nil {
			file.Close()
			os.Remove(destPath)
			return fmt.Errorf("写入文件失败: %w", err)
		}
		if err := file.Close(); err != nil {
			os.Remove(destPath)
			return retry.Permanent(fmt.Errorf("关闭目标文件失败: %w", err))
		}

		result = batch.Success(storageID)
		f.mirror(filename, destPath)
		return nil
	})

	if err != nil {
		return batch.Failed(err.Error())
	}
	return result
}

// mirror 把已落盘的文件镜像到 OBS。镜像失败只记录日志，不影响下载结果。
func (f *Fetcher) mirror(objectKey, filePath string) {
	if !f.uploader.Enabled() {
		return
	}
	if err := f.uploader.UploadFile(objectKey, filePath); err != nil {
		log.Printf("⚠️ 镜像文件 %s 到 OBS 失败: %v", objectKey, err)
	}
}
