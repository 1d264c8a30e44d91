package lock

import (
	"context"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

const pollInterval = 20 * time.Millisecond

// WithDelay ejecuta safeCode con la clave tomada; success false si no se obtuvo antes de wait o del fin del contexto
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	timeout := time.NewTimer(wait)
	defer timeout.Stop()
	for {
		if _, loaded := lockMap.LoadOrStore(key, struct{}{}); !loaded {
			break
		}
		select {
		case <-timeout.C:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(pollInterval):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}
