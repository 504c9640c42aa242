package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Slade66/image-fetcher/internal/client"
	"github.com/Slade66/image-fetcher/internal/downloader"
	"github.com/Slade66/image-fetcher/internal/fetcher"
	"github.com/Slade66/image-fetcher/internal/history"
	"github.com/Slade66/image-fetcher/internal/retry"
	"github.com/Slade66/image-fetcher/internal/storage"
	"github.com/Slade66/image-fetcher/internal/uploader"
	"github.com/Slade66/image-fetcher/pkg/batch"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// 客户端未指定并发数时使用的默认值
	DefaultConcurrency = 8
)

// 全局变量，方便在不同 handler 间使用
var (
	downloadDir    string
	retryCfg       retry.Config
	obsUploader    *uploader.ObsUploader
	historyManager *history.Manager
)

// initConfig 从环境变量读取配置，未设置的项使用默认值
func initConfig() {
	downloadDir = os.Getenv("DOWNLOAD_DIR")
	if downloadDir == "" {
		downloadDir = "./downloads"
	}

	retryCfg = retry.DefaultConfig()
	if v := os.Getenv("RETRY_MAX_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Fatalf("❌ RETRY_MAX_ATTEMPTS 配置非法: %q", v)
		}
		retryCfg.MaxAttempts = n
	}
}

// initRedis 初始化 Redis 连接。未配置 REDIS_ADDR 时历史记录功能关闭。
func initRedis() {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		log.Println("ℹ️ 未配置 REDIS_ADDR，批量下载历史记录功能已关闭。")
		return
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ API 无法连接到 Redis: %v", err)
	}
	fmt.Println("✅ API 成功连接到 Redis!")
	historyManager = history.NewManager(rdb)
}

// initUploader 初始化 OBS 镜像。四个 OBS_* 环境变量都配置时才开启。
func initUploader() {
	obsEndpoint := os.Getenv("OBS_ENDPOINT")
	obsAk := os.Getenv("OBS_AK")
	obsSk := os.Getenv("OBS_SK")
	obsBucket := os.Getenv("OBS_BUCKET")

	if obsEndpoint == "" || obsAk == "" || obsSk == "" || obsBucket == "" {
		log.Println("ℹ️ OBS 配置不完整，文件镜像功能已关闭。")
		return
	}

	var err error
	obsUploader, err = uploader.New(obsEndpoint, obsAk, obsSk, obsBucket)
	if err != nil {
		log.Fatalf("❌ 初始化 OBS Uploader 失败: %v", err)
	}
	log.Println("✅ OBS Uploader 初始化成功。")
}

// downloadHandler 同步执行一次批量下载并返回汇总报告
func downloadHandler(c *gin.Context) {
	var request struct {
		ImageURLs         []string `json:"imageUrls"`
		MaxDownloadAtOnce int      `json:"maxDownloadAtOnce" binding:"omitempty,min=1"`
	}

	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求: " + err.Error()})
		return
	}

	// 如果客户端未提供并发数，设置默认值
	if request.MaxDownloadAtOnce <= 0 {
		request.MaxDownloadAtOnce = DefaultConcurrency
	}

	// 每个批次使用独立的 http.Client，连接池只在批次内部共享
	f := fetcher.New(client.New(), retry.New(retryCfg), obsUploader)
	d := downloader.New(downloadDir, f)

	report, err := d.Run(c.Request.Context(), batch.DownloadRequest{
		ImageURLs:      request.ImageURLs,
		MaxConcurrency: request.MaxDownloadAtOnce,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// 记录历史是非关键操作，失败只记录日志
	if historyManager != nil {
		batchID := uuid.New().String()
		if err := historyManager.SaveReport(c.Request.Context(), batchID, batch.DownloadRequest{
			ImageURLs:      request.ImageURLs,
			MaxConcurrency: request.MaxDownloadAtOnce,
		}, report); err != nil {
			log.Printf("警告：无法写入批量下载历史记录: %v", err)
		}
	}

	c.JSON(http.StatusOK, report)
}

// imageHandler 根据存储标识符读回文件，返回 data URI 形式的内容
func imageHandler(c *gin.Context) {
	storageID := c.Param("id")

	dataURI, err := storage.ReadAsDataURI(downloadDir, storageID)
	if err != nil {
		if errors.Is(err, storage.ErrDirMissing) || errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": dataURI})
}

// tasksHandler 返回所有批量下载的历史记录
func tasksHandler(c *gin.Context) {
	if historyManager == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "未配置 Redis，历史记录功能不可用"})
		return
	}

	records, err := historyManager.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "无法从 Redis 获取历史记录: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func main() {
	// 初始化
	initConfig()
	initRedis()
	initUploader()
	defer obsUploader.Close()

	// 设置 Gin
	router := gin.Default()

	api := router.Group("/api")
	{
		api.POST("/images/download", downloadHandler)
		api.GET("/images/:id", imageHandler)
		api.GET("/tasks", tasksHandler)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("🚀 API 服务已启动，监听端口 :%s\n", port)
	router.Run(":" + port)
}
