package observer

import (
	"fmt"
	"strings"
	"sync"
)

// ProgressBarObserver 是一个具体的观察者，在终端上按已完成的 URL 数绘制进度条。
type ProgressBarObserver struct {
	barWidth int
	mu       sync.Mutex
}

// NewProgressBarObserver 创建一个新的进度条观察者。
func NewProgressBarObserver() *ProgressBarObserver {
	return &ProgressBarObserver{
		barWidth: 50,
	}
}

// Update 实现了 Observer 接口。
func (p *ProgressBarObserver) Update(completed, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if total <= 0 {
		return
	}
	percent := float64(completed) / float64(total)
	filledWidth := int(percent * float64(p.barWidth))
	bar := strings.Repeat("=", filledWidth) + strings.Repeat(" ", p.barWidth-filledWidth)

	// 使用 \r 回到行首来刷新进度条，而不是每次都换行。
	fmt.Printf("\r[%s] %.2f%% (%d/%d)", bar, percent*100, completed, total)
	if completed >= total {
		fmt.Println()
	}
}
