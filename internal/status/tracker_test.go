package status

import (
	"fmt"
	"sync"
	"testing"

	"github.com/Slade66/image-fetcher/pkg/batch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerRecordOnce(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Record("https://a.example/1.png", batch.Success("id-1")))
	assert.Equal(t, 1, tracker.Len())

	snapshot := tracker.Snapshot()
	assert.Equal(t, batch.Success("id-1"), snapshot["https://a.example/1.png"])
}

// 同一个键只允许写入一次，重复写入说明调度出了问题。
func TestTrackerRejectsDoubleRecord(t *testing.T) {
	tracker := NewTracker()

	require.NoError(t, tracker.Record("https://a.example/1.png", batch.Success("id-1")))
	err := tracker.Record("https://a.example/1.png", batch.Failed("晚到的结果"))

	require.Error(t, err)
	assert.Equal(t, 1, tracker.Len())
	assert.Equal(t, batch.Success("id-1"), tracker.Snapshot()["https://a.example/1.png"])
}

func TestTrackerConcurrentWriters(t *testing.T) {
	tracker := NewTracker()

	const n = 100
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			url := fmt.Sprintf("https://a.example/%d.png", i)
			assert.NoError(t, tracker.Record(url, batch.Success(fmt.Sprintf("id-%d", i))))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, n, tracker.Len())
}

// Snapshot 返回的是拷贝，修改它不影响跟踪器内部状态。
func TestTrackerSnapshotIsCopy(t *testing.T) {
	tracker := NewTracker()
	require.NoError(t, tracker.Record("https://a.example/1.png", batch.Success("id-1")))

	snapshot := tracker.Snapshot()
	snapshot["https://a.example/1.png"] = batch.Failed("篡改")
	snapshot["https://a.example/2.png"] = batch.Failed("新增")

	assert.Equal(t, 1, tracker.Len())
	assert.Equal(t, batch.Success("id-1"), tracker.Snapshot()["https://a.example/1.png"])
}
