package client

import (
	"net/http"
	"time"
)

// New 返回一个为批量下载调优的 http.Client。
// 同一批次内的所有 worker 共享这一个实例以复用连接池；
// 不同批次之间不共享，批次结束后连接随客户端一起被回收。
func New() *http.Client {
	return &http.Client{
		// 为所有请求设置一个 30 秒的整体超时，避免 worker 被慢速服务器长期占住。
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
