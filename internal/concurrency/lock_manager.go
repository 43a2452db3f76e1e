package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. Entries are created on first use
// and dropped with Forget once the keyed resource is gone.
type LockManager[K comparable] struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager[K comparable]() *LockManager[K] {
	return &LockManager[K]{}
}

// GetLock returns the mutex for key
func (lm *LockManager[K]) GetLock(key K) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Lock acquires the mutex for key and returns its unlock function. A mutex
// that was forgotten while this call waited on it is released and the
// current one is taken instead, so two holders never share a key.
func (lm *LockManager[K]) Lock(key K) (unlock func()) {
	for {
		mu := lm.GetLock(key)
		mu.Lock()
		if cur, ok := lm.locks.Load(key); ok && cur.(*sync.Mutex) == mu {
			return mu.Unlock
		}
		mu.Unlock()
	}
}

// Forget drops the mutex for key unless it is currently held. Holders
// release their key with Forget after unlocking.
func (lm *LockManager[K]) Forget(key K) {
	v, ok := lm.locks.Load(key)
	if !ok {
		return
	}
	mu := v.(*sync.Mutex)
	if !mu.TryLock() {
		return
	}
	lm.locks.CompareAndDelete(key, mu)
	mu.Unlock()
}
