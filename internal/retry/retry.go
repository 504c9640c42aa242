// Package retry 为单次网络请求提供带指数退避的重试能力。
package retry

import (
	"context"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
)

const (
	// DefaultBaseDelay 是第一次重试前的默认等待时间。
	DefaultBaseDelay = 500 * time.Millisecond
	// DefaultMultiplier 是每次重试之间延迟的默认放大倍数。
	DefaultMultiplier = 2.0
	// DefaultMaxAttempts 是默认的最大重试次数。
	DefaultMaxAttempts = 3
)

// Config 定义了重试策略的参数。
type Config struct {
	// MaxAttempts 是首次尝试之后允许的重试次数，0 表示只尝试一次、不重试。
	MaxAttempts int

	// BaseDelay 是第一次重试前的等待时间，之后每次乘以 Multiplier。
	BaseDelay time.Duration

	// Multiplier 是指数退避的倍数。
	Multiplier float64
}

// DefaultConfig 返回默认的重试配置：最多重试 3 次，500ms 起步，每次翻倍。
func DefaultConfig() Config {
	return Config{
		MaxAttempts: DefaultMaxAttempts,
		BaseDelay:   DefaultBaseDelay,
		Multiplier:  DefaultMultiplier,
	}
}

// Policy 按配置好的退避计划执行可重试的操作。
type Policy struct {
	cfg Config
}

// New 创建一个重试策略。未设置的延迟参数会回落到默认值，
// MaxAttempts 为负数时按 0 处理。
func New(cfg Config) *Policy {
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = DefaultBaseDelay
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = DefaultMultiplier
	}
	if cfg.MaxAttempts < 0 {
		cfg.MaxAttempts = 0
	}
	return &Policy{cfg: cfg}
}

// Do 执行 op，失败则按指数退避重试，直到成功、重试次数耗尽或 ctx 被取消。
// 重试耗尽时返回最后一次的错误。被 Permanent 包装的错误会立即终止重试。
// 退避等待期间不会释放调用方占用的并发槽位。
func (p *Policy) Do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.cfg.BaseDelay
	b.Multiplier = p.cfg.Multiplier
	// 关闭随机抖动和总时长上限，让退避计划严格等于 BaseDelay * Multiplier^(n-1)。
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.cfg.MaxAttempts)), ctx))
}

// Permanent 标记一个不应该被重试的错误，例如目标目录不可写。
func Permanent(err error) error {
	return backoff.Permanent(err)
}
