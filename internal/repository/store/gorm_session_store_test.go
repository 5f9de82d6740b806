package store

import (
	"context"
	"testing"

	"scireason-be/internal/entity"
	"scireason-be/internal/repository/contract"
	"scireason-be/internal/repository/specification"
	"scireason-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// The fakes record the operations the store drives through the unit of work
// so the tests can assert transaction boundaries and deletion order.

type fakeSessionRepository struct {
	session      *entity.ReasoningSession
	ops          *[]string
	findAllSpecs []specification.Specification
}

func (r *fakeSessionRepository) Create(_ context.Context, _ *entity.ReasoningSession) error {
	*r.ops = append(*r.ops, "session.create")
	return nil
}

func (r *fakeSessionRepository) Update(_ context.Context, _ *entity.ReasoningSession) error {
	*r.ops = append(*r.ops, "session.update")
	return nil
}

func (r *fakeSessionRepository) Delete(_ context.Context, _ string) error {
	*r.ops = append(*r.ops, "session.delete")
	return nil
}

func (r *fakeSessionRepository) FindOne(_ context.Context, _ ...specification.Specification) (*entity.ReasoningSession, error) {
	return r.session, nil
}

func (r *fakeSessionRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.ReasoningSession, error) {
	r.findAllSpecs = specs
	return nil, nil
}

func (r *fakeSessionRepository) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeEvidenceCardRepository struct{ ops *[]string }

func (r *fakeEvidenceCardRepository) CreateBatch(_ context.Context, _ []*entity.EvidenceCard) error {
	*r.ops = append(*r.ops, "evidence.createBatch")
	return nil
}

func (r *fakeEvidenceCardRepository) FindOne(_ context.Context, _ ...specification.Specification) (*entity.EvidenceCard, error) {
	return nil, nil
}

func (r *fakeEvidenceCardRepository) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.EvidenceCard, error) {
	return nil, nil
}

func (r *fakeEvidenceCardRepository) DeleteBySessionId(_ context.Context, _ string) error {
	*r.ops = append(*r.ops, "evidence.deleteBySession")
	return nil
}

type fakeHypothesisCardRepository struct{ ops *[]string }

func (r *fakeHypothesisCardRepository) CreateBatch(_ context.Context, _ []*entity.HypothesisCard) error {
	*r.ops = append(*r.ops, "hypothesis.createBatch")
	return nil
}

func (r *fakeHypothesisCardRepository) FindOne(_ context.Context, _ ...specification.Specification) (*entity.HypothesisCard, error) {
	return nil, nil
}

func (r *fakeHypothesisCardRepository) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.HypothesisCard, error) {
	return nil, nil
}

func (r *fakeHypothesisCardRepository) DeleteBySessionId(_ context.Context, _ string) error {
	*r.ops = append(*r.ops, "hypothesis.deleteBySession")
	return nil
}

type fakeRoadmapCardRepository struct{ ops *[]string }

func (r *fakeRoadmapCardRepository) Create(_ context.Context, _ *entity.RoadmapCard) error {
	*r.ops = append(*r.ops, "roadmap.create")
	return nil
}

func (r *fakeRoadmapCardRepository) FindOne(_ context.Context, _ ...specification.Specification) (*entity.RoadmapCard, error) {
	return nil, nil
}

func (r *fakeRoadmapCardRepository) DeleteBySessionId(_ context.Context, _ string) error {
	*r.ops = append(*r.ops, "roadmap.deleteBySession")
	return nil
}

type fakeUnitOfWork struct {
	sessions   *fakeSessionRepository
	evidence   *fakeEvidenceCardRepository
	hypotheses *fakeHypothesisCardRepository
	roadmaps   *fakeRoadmapCardRepository
	ops        *[]string
}

func newFakeUnitOfWork(session *entity.ReasoningSession) *fakeUnitOfWork {
	ops := &[]string{}
	return &fakeUnitOfWork{
		sessions:   &fakeSessionRepository{session: session, ops: ops},
		evidence:   &fakeEvidenceCardRepository{ops: ops},
		hypotheses: &fakeHypothesisCardRepository{ops: ops},
		roadmaps:   &fakeRoadmapCardRepository{ops: ops},
		ops:        ops,
	}
}

func (u *fakeUnitOfWork) Begin(_ context.Context) error {
	*u.ops = append(*u.ops, "begin")
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	*u.ops = append(*u.ops, "commit")
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	*u.ops = append(*u.ops, "rollback")
	return nil
}

func (u *fakeUnitOfWork) UserRepository() contract.UserRepository { return nil }

func (u *fakeUnitOfWork) SessionRepository() contract.SessionRepository { return u.sessions }

func (u *fakeUnitOfWork) EvidenceCardRepository() contract.EvidenceCardRepository {
	return u.evidence
}

func (u *fakeUnitOfWork) HypothesisCardRepository() contract.HypothesisCardRepository {
	return u.hypotheses
}

func (u *fakeUnitOfWork) RoadmapCardRepository() contract.RoadmapCardRepository {
	return u.roadmaps
}

func storeOver(uow *fakeUnitOfWork) contract.SessionStore {
	return NewGormSessionStore(func() unitofwork.UnitOfWork { return uow })
}

func TestDeleteSessionRemovesCardsBeforeSessionInOneTransaction(t *testing.T) {
	uow := newFakeUnitOfWork(&entity.ReasoningSession{Id: "session_1"})
	s := storeOver(uow)

	existed, err := s.DeleteSession(context.Background(), "session_1")

	assert.NoError(t, err)
	assert.True(t, existed)
	assert.Equal(t, []string{
		"begin",
		"evidence.deleteBySession",
		"hypothesis.deleteBySession",
		"roadmap.deleteBySession",
		"session.delete",
		"commit",
	}, *uow.ops)
}

func TestDeleteSessionMissingRollsBack(t *testing.T) {
	uow := newFakeUnitOfWork(nil)
	s := storeOver(uow)

	existed, err := s.DeleteSession(context.Background(), "session_missing")

	assert.NoError(t, err)
	assert.False(t, existed)
	assert.Equal(t, []string{"begin", "rollback"}, *uow.ops)
}

func TestListSessionsByUserScopesAndOrders(t *testing.T) {
	uow := newFakeUnitOfWork(nil)
	s := storeOver(uow)
	userId := uuid.New()

	_, err := s.ListSessionsByUser(context.Background(), userId, 0, 0)

	assert.NoError(t, err)
	specs := uow.sessions.findAllSpecs
	if assert.Len(t, specs, 2) {
		assert.Equal(t, specification.UserOwnedBy{UserID: userId}, specs[0])
		assert.Equal(t, specification.OrderBy{Field: "updated_at", Desc: true}, specs[1])
	}
}

func TestListSessionsByUserAppliesPagination(t *testing.T) {
	uow := newFakeUnitOfWork(nil)
	s := storeOver(uow)
	userId := uuid.New()

	_, err := s.ListSessionsByUser(context.Background(), userId, 10, 20)

	assert.NoError(t, err)
	specs := uow.sessions.findAllSpecs
	if assert.Len(t, specs, 3) {
		assert.Equal(t, specification.Pagination{Limit: 10, Offset: 20}, specs[2])
	}
}
