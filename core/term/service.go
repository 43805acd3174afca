package term

import (
	"context"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Term")

type Repository interface {
	core.Store[Term]
	GetTermDetail(ctx context.Context, id int) (Detail, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nt NewTerm) (Term, error) {
	t, err := svc.repo.Create(ctx, nt.Term(userID))
	return t, errors.Wrap(err, "creating term")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Term, error) {
	return svc.repo.Query(ctx, userID)
}

// Get is not scoped to the caller.
func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	return svc.repo.GetTermDetail(ctx, id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, ut UpdateTerm) (Term, error) {
	t, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return Term{}, err
	}
	ut.Apply(&t)
	t, err = svc.repo.Update(ctx, t)
	return t, errors.Wrap(err, "updating term")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
