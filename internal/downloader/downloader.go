// Package downloader 实现批量下载的调度：去重、限制并发、分发抓取任务并汇总报告。
package downloader

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"sync"
	"sync/atomic"

	"github.com/Slade66/image-fetcher/internal/fetcher"
	"github.com/Slade66/image-fetcher/internal/observer"
	"github.com/Slade66/image-fetcher/internal/status"
	"github.com/Slade66/image-fetcher/pkg/batch"
	"golang.org/x/sync/errgroup"
)

// Downloader 结构体封装了执行一次批量下载所需的全部依赖。
type Downloader struct {
	fetcher   *fetcher.Fetcher
	destDir   string
	observers []observer.Observer
	mu        sync.Mutex
}

// New 创建一个新的 Downloader 实例。destDir 是文件的存储目录。
func New(destDir string, f *fetcher.Fetcher) *Downloader {
	return &Downloader{
		fetcher:   f,
		destDir:   destDir,
		observers: make([]observer.Observer, 0),
	}
}

// AddObserver 实现了 Observable 接口，用于添加观察者。
func (d *Downloader) AddObserver(o observer.Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.observers = append(d.observers, o)
}

// Notify 实现了 Observable 接口，用于通知所有观察者。
func (d *Downloader) Notify(completed, total int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, obs := range d.observers {
		obs.Update(completed, total)
	}
}

// Run 执行一次完整的批量下载，阻塞直到每个去重后的 URL 都有了最终结果。
// URL 列表为空时直接返回空报告，不做任何分发；
// MaxConcurrency 小于 1 属于请求非法，在分发前就返回错误。
func (d *Downloader) Run(ctx context.Context, request batch.DownloadRequest) (batch.DownloadReport, error) {
	if len(request.ImageURLs) == 0 {
		return batch.EmptyReport(), nil
	}
	if request.MaxConcurrency < 1 {
		return batch.DownloadReport{}, fmt.Errorf("maxDownloadAtOnce 必须大于等于 1，当前为 %d", request.MaxConcurrency)
	}
	if err := os.MkdirAll(d.destDir, 0755); err != nil {
		return batch.DownloadReport{}, fmt.Errorf("无法创建存储目录 %s: %w", d.destDir, err)
	}

	// 按首次出现的顺序去重，重复的 URL 只处理一次。
	distinct := dedupe(request.ImageURLs)
	duplicateCount := len(request.ImageURLs) - len(distinct)

	tracker := status.NewTracker()
	total := len(distinct)
	var completed atomic.Int64

	// SetLimit 保证同一时刻最多 MaxConcurrency 个抓取在执行，
	// 超出的任务在 Go 调用处排队等待空闲槽位。
	g := new(errgroup.Group)
	g.SetLimit(request.MaxConcurrency)

	for _, rawURL := range distinct {
		// URL 校验在占用并发槽位之前完成，非法的 URL 不会进入 worker。
		if reason, ok := validateURL(rawURL); !ok {
			d.record(tracker, rawURL, batch.InvalidURL(reason), &completed, total)
			continue
		}

		rawURL := rawURL
		g.Go(func() error {
			// 单个 URL 的任何意外都在这里兜底，绝不影响同批次的其他任务。
			defer func() {
				if r := recover(); r != nil {
					d.record(tracker, rawURL, batch.Failed(fmt.Sprintf("未预期的错误: %v", r)), &completed, total)
				}
			}()
			d.record(tracker, rawURL, d.fetcher.Fetch(ctx, rawURL, d.destDir), &completed, total)
			return nil
		})
	}
	g.Wait()

	return batch.BuildReport(tracker.Snapshot(), duplicateCount), nil
}

// record 把结果写入跟踪器并通知观察者。
func (d *Downloader) record(tracker *status.Tracker, rawURL string, outcome batch.Outcome, completed *atomic.Int64, total int) {
	if err := tracker.Record(rawURL, outcome); err != nil {
		log.Printf("‼️ %v", err)
		return
	}
	d.Notify(int(completed.Add(1)), total)
}

// dedupe 返回去重后的 URL 列表，保留每个 URL 首次出现时的顺序。
func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	distinct := make([]string, 0, len(urls))
	for _, u := range urls {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		distinct = append(distinct, u)
	}
	return distinct
}

// validateURL 检查 URL 是否是合法的 http/https 绝对地址。
func validateURL(rawURL string) (reason string, ok bool) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Sprintf("无法解析 URL: %v", err), false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Sprintf("不支持的协议: %q", parsed.Scheme), false
	}
	if parsed.Host == "" {
		return "URL 缺少主机名", false
	}
	return "", true
}
