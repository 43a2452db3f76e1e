package draw

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

var fixedNow = time.Date(2026, 2, 14, 19, 30, 0, 0, time.UTC)

// sequencePicker replays idx in order and fails once they run out.
func sequencePicker(idx ...int) Picker {
	i := 0
	return func(n int) (int, error) {
		if i >= len(idx) {
			return 0, fmt.Errorf("sequence exhausted after %d picks", i)
		}
		v := idx[i]
		i++
		return v, nil
	}
}

// failingPicker succeeds for the first ok picks and then returns an error.
func failingPicker(ok int) Picker {
	calls := 0
	return func(n int) (int, error) {
		calls++
		if calls > ok {
			return 0, errors.New("entropy unavailable")
		}
		return 0, nil
	}
}

func newTestEngine(pick Picker) *Engine {
	return NewEngine(pick, WithClock(func() time.Time { return fixedNow }))
}

func people(names ...string) []domain.Participant {
	out := make([]domain.Participant, 0, len(names))
	for _, n := range names {
		out = append(out, domain.Participant{ID: uuid.New(), Name: n})
	}
	return out
}

// goldSilverState is A,B,C,D against Gold{TV,Phone} and Silver{Mug}.
func goldSilverState(t *testing.T) *State {
	t.Helper()
	return NewState(people("A", "B", "C", "D"), []domain.Prize{
		{Group: "Gold", Prize: "TV"},
		{Group: "Gold", Prize: "Phone"},
		{Group: "Silver", Prize: "Mug"},
	})
}

func participantNames(ps []domain.Participant) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.Name)
	}
	return out
}
