package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 永远失败的操作应该恰好被重试 MaxAttempts 次，也就是总共执行 MaxAttempts+1 次。
func TestDoExhaustsRetries(t *testing.T) {
	policy := New(Config{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2})

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return errors.New("连接失败")
	})

	require.Error(t, err)
	assert.Equal(t, "连接失败", err.Error())
	assert.Equal(t, 4, calls)
}

func TestDoSucceedsAfterTransientFailures(t *testing.T) {
	policy := New(Config{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2})

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("暂时失败")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

// MaxAttempts 为 0 表示不重试，首次尝试仍然会执行。
func TestDoZeroAttempts(t *testing.T) {
	policy := New(Config{MaxAttempts: 0, BaseDelay: time.Millisecond, Multiplier: 2})

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return errors.New("失败")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

// 被 Permanent 标记的错误应该立即终止重试。
func TestDoPermanentStopsImmediately(t *testing.T) {
	policy := New(Config{MaxAttempts: 5, BaseDelay: time.Millisecond, Multiplier: 2})

	calls := 0
	err := policy.Do(context.Background(), func() error {
		calls++
		return Permanent(errors.New("目录不可写"))
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDoContextCancelled(t *testing.T) {
	policy := New(Config{MaxAttempts: 100, BaseDelay: 50 * time.Millisecond, Multiplier: 2})

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := policy.Do(ctx, func() error {
		calls++
		return errors.New("失败")
	})

	require.Error(t, err)
	// 取消发生在第一次退避等待期间，不应该再产生新的尝试
	assert.Less(t, calls, 3)
}

func TestNewAppliesDefaults(t *testing.T) {
	policy := New(Config{MaxAttempts: -1})

	assert.Equal(t, 0, policy.cfg.MaxAttempts)
	assert.Equal(t, DefaultBaseDelay, policy.cfg.BaseDelay)
	assert.Equal(t, DefaultMultiplier, policy.cfg.Multiplier)
}
