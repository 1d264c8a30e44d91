package baseworker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBaseWorker(t *testing.T) {
	t.Run("run once recovers from panic", func(t *testing.T) {
		worker := NewInstance("test", 0, time.Millisecond)
		require.NotPanics(t, func() {
			worker.RunOnce(context.Background(), func(ctx context.Context) {
				panic("boom")
			})
		})
	})
	t.Run("run stops on context cancel", func(t *testing.T) {
		worker := NewInstance("test", time.Millisecond, time.Millisecond)
		ctx, cancel := context.WithCancel(context.Background())
		var calls int32
		done := make(chan struct{})
		go func() {
			worker.Run(ctx, func(ctx context.Context) {
				if atomic.AddInt32(&calls, 1) == 3 {
					cancel()
				}
			})
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop")
		}
		require.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(3))
	})
}
