// Package concurrency provides small process-local synchronization helpers.
package concurrency

import (
	"sync"
)

// LockManager hands out named mutexes. Locks are created on first use and
// never discarded, so keys should come from a bounded set such as market
// keys.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns the mutex for the given key, creating it if needed
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}
