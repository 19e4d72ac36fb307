package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLock_SameKeyReturnsSameMutex(t *testing.T) {
	lm := NewLockManager()

	a := lm.GetLock("crypto:BTC")
	b := lm.GetLock("crypto:BTC")
	c := lm.GetLock("crypto:ETH")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
}

func TestGetLock_SerializesAccess(t *testing.T) {
	lm := NewLockManager()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lock := lm.GetLock("key")
			lock.Lock()
			counter++
			lock.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
}
