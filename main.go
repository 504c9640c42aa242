// main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Slade66/image-fetcher/internal/client"
	"github.com/Slade66/image-fetcher/internal/downloader"
	"github.com/Slade66/image-fetcher/internal/fetcher"
	"github.com/Slade66/image-fetcher/internal/observer"
	"github.com/Slade66/image-fetcher/internal/retry"
	"github.com/Slade66/image-fetcher/pkg/batch"
)

func main() {
	// 1. 参数解析
	urlList := flag.String("urls", "", "要下载的图片 URL 列表，用逗号分隔 (必须)")
	dir := flag.String("dir", "./downloads", "文件保存目录")
	concurrency := flag.Int("concurrency", 8, "同时下载的最大任务数")
	retries := flag.Int("retries", retry.DefaultMaxAttempts, "每个 URL 失败后的最大重试次数")
	flag.Parse()

	// 2. 参数校验
	if *urlList == "" {
		fmt.Println("错误: -urls 参数是必须的")
		flag.Usage()
		os.Exit(1)
	}

	urls := make([]string, 0)
	for _, u := range strings.Split(*urlList, ",") {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}

	// 3. 组装下载器
	cfg := retry.DefaultConfig()
	cfg.MaxAttempts = *retries
	f := fetcher.New(client.New(), retry.New(cfg), nil)
	d := downloader.New(*dir, f)
	d.AddObserver(observer.NewProgressBarObserver())

	// 4. 启动批量下载
	fmt.Printf("🚀 开始下载 %d 个 URL...\n", len(urls))
	report, err := d.Run(context.Background(), batch.DownloadRequest{
		ImageURLs:      urls,
		MaxConcurrency: *concurrency,
	})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 5. 输出报告
	fmt.Println(report.Message)
	for url, storageID := range report.URLAndNames {
		fmt.Printf("  ✅ %s -> %s\n", url, storageID)
	}
	if !report.Success {
		os.Exit(1)
	}
}
