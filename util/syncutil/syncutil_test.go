package syncutil

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWaitTimeoutCompletes(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		time.Sleep(10 * time.Millisecond)
		wg.Done()
	}()

	timedOut := WaitTimeout(&wg, 500*time.Millisecond)
	require.False(t, timedOut)
}

func TestWaitTimeoutExpires(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	defer wg.Done()

	timedOut := WaitTimeout(&wg, 20*time.Millisecond)
	require.True(t, timedOut)
}
