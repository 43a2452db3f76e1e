package draw

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyDraw_Go/internal/domain"
)

func TestNewState_CopiesInputs(t *testing.T) {
	pool := people("A", "B")
	prizes := []domain.Prize{{Group: "Gold", Prize: "TV"}}

	s := NewState(pool, prizes)
	pool[0].Name = "changed"
	prizes[0].Prize = "changed"

	assert.Equal(t, []string{"A", "B"}, participantNames(s.RemainingParticipants()))
	assert.Equal(t, "TV", s.RemainingPrizes()[0].Prize)
}

func TestNewState_AssignsMissingAndDuplicateIDs(t *testing.T) {
	shared := uuid.New()
	s := NewState([]domain.Participant{
		{Name: "NoID"},
		{ID: shared, Name: "First"},
		{ID: shared, Name: "Second"},
	}, nil)

	got := s.RemainingParticipants()
	require.Len(t, got, 3)

	assert.NotEqual(t, uuid.Nil, got[0].ID)
	assert.Equal(t, shared, got[1].ID)
	assert.NotEqual(t, shared, got[2].ID)
	assert.NotEqual(t, uuid.Nil, got[2].ID)
}

func TestGroups_FirstAppearanceOrder(t *testing.T) {
	s := NewState(nil, []domain.Prize{
		{Group: "Silver", Prize: "Mug"},
		{Group: "Gold", Prize: "TV"},
		{Group: "Silver", Prize: "Pen"},
		{Group: "Bronze", Prize: "Sticker"},
	})
	assert.Equal(t, []string{"Silver", "Gold", "Bronze"}, s.Groups())
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := goldSilverState(t)
	e := newTestEngine(sequencePicker(0))

	_, err := e.DrawGroup(context.Background(), s, "Silver")
	require.NoError(t, err)

	winners := s.Winners()
	winners[0].ParticipantName = "tampered"
	assert.Equal(t, "A", s.Winners()[0].ParticipantName)

	remaining := s.RemainingParticipants()
	remaining[0].Name = "tampered"
	assert.Equal(t, "B", s.RemainingParticipants()[0].Name)
}

func TestGroupSummaries(t *testing.T) {
	ctx := context.Background()
	s := NewState(people("A", "B", "C", "D", "E"), []domain.Prize{
		{Group: "Gold", Prize: "TV"},
		{Group: "Gold", Prize: "Phone"},
		{Group: "Gold", Prize: "Laptop"},
		{Group: "Silver", Prize: "Mug"},
	})
	e := newTestEngine(SeededPicker(3))

	_, err := e.DrawNext(ctx, s, "Gold")
	require.NoError(t, err)

	assert.Equal(t, []domain.GroupSummary{
		{Group: "Gold", Prizes: 3, Drawn: 1, Pending: true},
		{Group: "Silver", Prizes: 1, Drawn: 0, Pending: true},
	}, s.GroupSummaries())

	_, err = e.DrawGroup(ctx, s, "Gold")
	require.NoError(t, err)
	_, err = e.DrawGroup(ctx, s, "Silver")
	require.NoError(t, err)

	assert.Equal(t, []domain.GroupSummary{
		{Group: "Gold", Prizes: 3, Drawn: 3, Pending: false},
		{Group: "Silver", Prizes: 1, Drawn: 1, Pending: false},
	}, s.GroupSummaries())

	participants, prizes, winners := s.Counts()
	assert.Equal(t, 1, participants)
	assert.Zero(t, prizes)
	assert.Equal(t, 4, winners)
}
