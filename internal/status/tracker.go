// Package status 在一次批量下载内跟踪每个 URL 的处理结果。
package status

import (
	"fmt"
	"sync"

	"github.com/Slade66/image-fetcher/pkg/batch"
)

// Tracker 是一个并发安全的 URL -> 结果 映射。
// 每个键只允许写入一次：每个去重后的 URL 由唯一一个 worker 负责，
// 所以正常流程中不存在对同一个键的并发写入。
type Tracker struct {
	mu       sync.Mutex
	outcomes map[string]batch.Outcome
}

// NewTracker 创建一个空的结果跟踪器。
func NewTracker() *Tracker {
	return &Tracker{outcomes: make(map[string]batch.Outcome)}
}

// Record 记录一个 URL 的处理结果。同一个 URL 重复记录会返回错误，
// 这说明调度逻辑出了问题，而不是可以静默覆盖的情况。
func (t *Tracker) Record(url string, outcome batch.Outcome) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.outcomes[url]; exists {
		return fmt.Errorf("URL [%s] 的结果已经被记录过", url)
	}
	t.outcomes[url] = outcome
	return nil
}

// Len 返回已记录的结果数量。
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.outcomes)
}

// Snapshot 返回当前所有结果的一份拷贝，供报告汇总使用。
func (t *Tracker) Snapshot() map[string]batch.Outcome {
	t.mu.Lock()
	defer t.mu.Unlock()

	snapshot := make(map[string]batch.Outcome, len(t.outcomes))
	for url, outcome := range t.outcomes {
		snapshot[url] = outcome
	}
	return snapshot
}
