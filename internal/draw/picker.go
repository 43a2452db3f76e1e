package draw

import (
	"fmt"
	"sync"

	"github.com/osse101/LuckyDraw_Go/internal/utils"
)

// Picker returns an index in [0, n) chosen uniformly at random.
// The engine calls it once per prize with the current size of the
// remaining participant pool.
type Picker func(n int) (int, error)

// SecurePicker draws from crypto/rand. It is the production default.
func SecurePicker() Picker {
	return utils.SecureIndex
}

// SeededPicker returns a reproducible picker for tests and replays.
// It is safe for concurrent use.
func SeededPicker(seed uint64) Picker {
	var mu sync.Mutex
	r := utils.NewSeededRand(seed)
	return func(n int) (int, error) {
		if n <= 0 {
			return 0, fmt.Errorf("cannot pick from an empty range (n=%d)", n)
		}
		mu.Lock()
		defer mu.Unlock()
		return utils.RandomIndex(r, n), nil
	}
}
