// Package uploader 把已落盘的文件镜像一份到华为云 OBS。
package uploader

import (
	"fmt"

	"github.com/huaweicloud/huaweicloud-sdk-go-obs/obs"
)

// ObsUploader 封装了 OBS 客户端和目标桶。
// 镜像是可选能力：未配置 OBS 时各处传入 nil 即可，调用前用 Enabled 判断。
type ObsUploader struct {
	client *obs.ObsClient
	bucket string
}

// New 创建一个 OBS 上传器实例。
func New(endpoint, ak, sk, bucket string) (*ObsUploader, error) {
	client, err := obs.New(ak, sk, endpoint)
	if err != nil {
		return nil, fmt.Errorf("无法创建 OBS 客户端: %w", err)
	}
	return &ObsUploader{client: client, bucket: bucket}, nil
}

// Enabled 报告镜像功能是否可用，nil 接收者表示未配置。
func (u *ObsUploader) Enabled() bool {
	return u != nil && u.client != nil
}

// UploadFile 把本地文件上传到 OBS。objectKey 使用与存储目录一致的
// "{标识符}{扩展名}" 命名，这样桶里的对象可以和本地文件一一对应。
func (u *ObsUploader) UploadFile(objectKey, filePath string) error {
	input := &obs.PutFileInput{}
	input.Bucket = u.bucket
	input.Key = objectKey
	input.SourceFile = filePath

	if _, err := u.client.PutFile(input); err != nil {
		if obsError, ok := err.(obs.ObsError); ok {
			return fmt.Errorf("上传失败，OBS错误码: %s, 错误信息: %s", obsError.Code, obsError.Message)
		}
		return fmt.Errorf("上传文件到 OBS 失败: %w", err)
	}
	return nil
}

// Close 关闭客户端连接。
func (u *ObsUploader) Close() {
	if u != nil && u.client != nil {
		u.client.Close()
	}
}
