// Package history 把每次批量下载的汇总结果记录到 Redis，供查询接口使用。
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/Slade66/image-fetcher/pkg/batch"
	"github.com/redis/go-redis/v9"
)

// Record 定义了一条批量下载的历史记录，用于 JSON 序列化。
type Record struct {
	ID             string `json:"id"`
	URLCount       int    `json:"url_count"`
	SuccessCount   int    `json:"success_count"`
	FailureCount   int    `json:"failure_count"`
	DuplicateCount int    `json:"duplicate_count"`
	Message        string `json:"message"`
	FinishTime     string `json:"finish_time"`
}

// Manager 结构体封装了与 Redis 的交互。
type Manager struct {
	rdb *redis.Client
}

// NewManager 创建一个新的历史记录管理器实例。
func NewManager(rdb *redis.Client) *Manager {
	return &Manager{rdb: rdb}
}

// reportKey 返回一条批量下载记录在 Redis 中的键名。
func (m *Manager) reportKey(batchID string) string {
	return fmt.Sprintf("batch:report:%s", batchID)
}

// SaveReport 在一次批量下载结束后写入一条汇总记录。
func (m *Manager) SaveReport(ctx context.Context, batchID string, request batch.DownloadRequest, report batch.DownloadReport) error {
	fields := map[string]interface{}{
		"id":              batchID,
		"url_count":       len(request.ImageURLs),
		"success_count":   report.SuccessCount,
		"failure_count":   report.FailureCount,
		"duplicate_count": report.DuplicateCount,
		"message":         report.Message,
		"finish_time":     time.Now().UTC().Format(time.RFC3339),
	}
	return m.rdb.HSet(ctx, m.reportKey(batchID), fields).Err()
}

// GetAll 获取所有批量下载的历史记录。
func (m *Manager) GetAll(ctx context.Context) ([]Record, error) {
	keys, err := m.rdb.Keys(ctx, "batch:report:*").Result()
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return []Record{}, nil
	}

	records := make([]Record, 0, len(keys))
	for _, key := range keys {
		data, err := m.rdb.HGetAll(ctx, key).Result()
		if err != nil {
			// 单条记录读取失败只跳过，不影响其余记录。
			fmt.Printf("警告: 无法读取历史记录 key '%s': %v\n", key, err)
			continue
		}

		records = append(records, Record{
			ID:             data["id"],
			URLCount:       atoiOrZero(data["url_count"]),
			SuccessCount:   atoiOrZero(data["success_count"]),
			FailureCount:   atoiOrZero(data["failure_count"]),
			DuplicateCount: atoiOrZero(data["duplicate_count"]),
			Message:        data["message"],
			FinishTime:     data["finish_time"],
		})
	}
	return records, nil
}

// atoiOrZero 把 Redis 返回的字符串字段转换为整数，解析失败按 0 处理。
func atoiOrZero(s string) int {
	var n int
	fmt.Sscanf(s, "%d", &n)
	return n
}
