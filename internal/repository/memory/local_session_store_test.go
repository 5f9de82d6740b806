package memory

import (
	"context"
	"testing"
	"time"

	"scireason-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedSession(id string, userId uuid.UUID) *entity.ReasoningSession {
	return &entity.ReasoningSession{
		Id:               id,
		UserId:           userId,
		ProblemStatement: "test question",
		Mode:             "evidence",
		Status:           "in_progress",
		CompletedSteps:   []int{},
		StepData:         map[string]any{},
	}
}

func TestLocalStoreSessionRoundTrip(t *testing.T) {
	store := NewLocalSessionStore()
	ctx := context.Background()

	assert.NoError(t, store.CreateSession(ctx, seedSession("s1", uuid.Nil)))

	got, err := store.GetSession(ctx, "s1")
	assert.NoError(t, err)
	assert.Equal(t, "test question", got.ProblemStatement)

	missing, err := store.GetSession(ctx, "nope")
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLocalStoreReturnsCopies(t *testing.T) {
	store := NewLocalSessionStore()
	ctx := context.Background()

	sess := seedSession("s1", uuid.Nil)
	assert.NoError(t, store.CreateSession(ctx, sess))

	first, _ := store.GetSession(ctx, "s1")
	first.StepData["step0"] = map[string]any{"mutated": true}
	first.CompletedSteps = append(first.CompletedSteps, 99)

	second, _ := store.GetSession(ctx, "s1")
	assert.NotContains(t, second.StepData, "step0")
	assert.Empty(t, second.CompletedSteps)
}

func TestLocalStoreListOrdering(t *testing.T) {
	store := NewLocalSessionStore()
	ctx := context.Background()

	a := seedSession("a", uuid.Nil)
	b := seedSession("b", uuid.Nil)
	assert.NoError(t, store.CreateSession(ctx, a))
	assert.NoError(t, store.CreateSession(ctx, b))

	// Updating "a" should float it to the front.
	time.Sleep(2 * time.Millisecond)
	a.CurrentStep = 3
	assert.NoError(t, store.UpdateSession(ctx, a))

	sessions, err := store.ListSessionsByUser(ctx, uuid.Nil, 0, 0)
	assert.NoError(t, err)
	if assert.Len(t, sessions, 2) {
		assert.Equal(t, "a", sessions[0].Id)
		assert.Equal(t, "b", sessions[1].Id)
	}
}

func TestLocalStoreListPagination(t *testing.T) {
	store := NewLocalSessionStore()
	ctx := context.Background()

	for _, id := range []string{"c", "b", "a"} {
		assert.NoError(t, store.CreateSession(ctx, seedSession(id, uuid.Nil)))
		time.Sleep(2 * time.Millisecond)
	}

	// Most recently created first: a, b, c.
	page, err := store.ListSessionsByUser(ctx, uuid.Nil, 2, 0)
	assert.NoError(t, err)
	if assert.Len(t, page, 2) {
		assert.Equal(t, "a", page[0].Id)
		assert.Equal(t, "b", page[1].Id)
	}

	rest, err := store.ListSessionsByUser(ctx, uuid.Nil, 2, 2)
	assert.NoError(t, err)
	if assert.Len(t, rest, 1) {
		assert.Equal(t, "c", rest[0].Id)
	}

	past, err := store.ListSessionsByUser(ctx, uuid.Nil, 2, 5)
	assert.NoError(t, err)
	assert.Empty(t, past)
}

func TestLocalStoreListScopedToUser(t *testing.T) {
	store := NewLocalSessionStore()
	ctx := context.Background()
	owner := uuid.New()

	assert.NoError(t, store.CreateSession(ctx, seedSession("mine", owner)))
	assert.NoError(t, store.CreateSession(ctx, seedSession("local", uuid.Nil)))

	mine, err := store.ListSessionsByUser(ctx, owner, 0, 0)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)
	assert.Equal(t, "mine", mine[0].Id)
}

func TestLocalStoreDeleteCascadesCards(t *testing.T) {
	store := NewLocalSessionStore()
	ctx := context.Background()

	assert.NoError(t, store.CreateSession(ctx, seedSession("s1", uuid.Nil)))
	assert.NoError(t, store.SaveEvidenceCards(ctx, []*entity.EvidenceCard{
		{Id: "s1_EV001", SessionId: "s1", Payload: map[string]any{"source": "x"}},
	}))
	assert.NoError(t, store.SaveHypothesisCards(ctx, []*entity.HypothesisCard{
		{Id: "s1_HYP001", SessionId: "s1", Payload: map[string]any{}},
	}))
	assert.NoError(t, store.SaveRoadmapCard(ctx, &entity.RoadmapCard{
		Id: "s1_RM001", SessionId: "s1", Payload: map[string]any{},
	}))

	existed, err := store.DeleteSession(ctx, "s1")
	assert.NoError(t, err)
	assert.True(t, existed)

	card, err := store.GetEvidenceCard(ctx, "s1_EV001")
	assert.NoError(t, err)
	assert.Nil(t, card)

	hyp, err := store.GetHypothesisCard(ctx, "s1_HYP001")
	assert.NoError(t, err)
	assert.Nil(t, hyp)

	rm, err := store.GetRoadmapCard(ctx, "s1_RM001")
	assert.NoError(t, err)
	assert.Nil(t, rm)

	existed, err = store.DeleteSession(ctx, "s1")
	assert.NoError(t, err)
	assert.False(t, existed)
}

func TestLocalStoreCardListsSortedById(t *testing.T) {
	store := NewLocalSessionStore()
	ctx := context.Background()

	assert.NoError(t, store.SaveEvidenceCards(ctx, []*entity.EvidenceCard{
		{Id: "s1_EV002", SessionId: "s1", Payload: map[string]any{}},
		{Id: "s1_EV001", SessionId: "s1", Payload: map[string]any{}},
		{Id: "s2_EV001", SessionId: "s2", Payload: map[string]any{}},
	}))

	cards, err := store.ListEvidenceCardsBySession(ctx, "s1")
	assert.NoError(t, err)
	if assert.Len(t, cards, 2) {
		assert.Equal(t, "s1_EV001", cards[0].Id)
		assert.Equal(t, "s1_EV002", cards[1].Id)
	}
}
