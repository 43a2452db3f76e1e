package concurrency

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SameKeySameMutex(t *testing.T) {
	lm := NewLockManager[string]()
	assert.Same(t, lm.GetLock("a"), lm.GetLock("a"))
	assert.NotSame(t, lm.GetLock("a"), lm.GetLock("b"))
}

func TestLockManager_LockSerializesPerKey(t *testing.T) {
	lm := NewLockManager[int]()
	counter := 0

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock(7)
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestLockManager_Forget(t *testing.T) {
	lm := NewLockManager[string]()
	first := lm.GetLock("k")
	lm.Forget("k")
	assert.NotSame(t, first, lm.GetLock("k"))
}

func TestLockManager_ForgetKeepsHeldLock(t *testing.T) {
	lm := NewLockManager[string]()
	unlock := lm.Lock("k")
	held := lm.GetLock("k")

	lm.Forget("k")
	assert.Same(t, held, lm.GetLock("k"))

	unlock()
	lm.Forget("k")
	assert.NotSame(t, held, lm.GetLock("k"))
}

func TestLockManager_WaiterOnForgottenLockRetries(t *testing.T) {
	lm := NewLockManager[string]()
	unlock := lm.Lock("k")

	acquired := make(chan func())
	go func() { acquired <- lm.Lock("k") }()

	// Let the waiter block on the held mutex, then release and forget it.
	time.Sleep(20 * time.Millisecond)
	unlock()
	lm.Forget("k")

	unlockWaiter := <-acquired
	defer unlockWaiter()

	// The waiter owns the current mutex, so a fresh caller must block.
	assert.False(t, lm.GetLock("k").TryLock())
}
