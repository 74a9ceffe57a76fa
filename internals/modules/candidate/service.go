package candidate

import (
	"context"

	"github.com/google/uuid"
)

type Store interface {
	Insert(ctx context.Context, cmd CreateCandidateCmd) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Candidate, error)
	List(ctx context.Context) ([]Candidate, error)
	ListByHost(ctx context.Context, hostEmail string) ([]Candidate, error)
}

// Service is deliberately thin: candidate profiles are pass-through
// documents with no reconciliation rules.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{
		store: store,
	}
}

func (s *Service) Create(ctx context.Context, cmd CreateCandidateCmd) (uuid.UUID, error) {
	return s.store.Insert(ctx, cmd)
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Candidate, error) {
	return s.store.List(ctx)
}

func (s *Service) ListByHost(ctx context.Context, hostEmail string) ([]Candidate, error) {
	return s.store.ListByHost(ctx, hostEmail)
}
