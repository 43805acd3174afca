package class

import (
	"context"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Class")

// Repository loads classes with their location, teacher & term.
type Repository interface {
	CreateClass(ctx context.Context, c Class) (Class, error)
	// QueryClasses lists every class, or the classes of a term when termID is set, newest first.
	QueryClasses(ctx context.Context, termID *int) ([]ListItem, error)
	GetClass(ctx context.Context, id int) (Class, error)
	GetClassDetail(ctx context.Context, id int) (Detail, error)
	UpdateClass(ctx context.Context, c Class) (Class, error)
	DeleteClass(ctx context.Context, id int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewClass) (Class, error) {
	c, err := svc.repo.CreateClass(ctx, nc.Class())
	return c, errors.Wrap(err, "creating class")
}

func (svc *Service) Query(ctx context.Context) ([]ListItem, error) {
	return svc.repo.QueryClasses(ctx, nil)
}

func (svc *Service) QueryByTerm(ctx context.Context, termID int) ([]ListItem, error) {
	return svc.repo.QueryClasses(ctx, &termID)
}

func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	return svc.repo.GetClassDetail(ctx, id)
}

func (svc *Service) Update(ctx context.Context, id int, uc UpdateClass) (Class, error) {
	c, err := svc.repo.GetClass(ctx, id)
	if err != nil {
		return Class{}, err
	}
	uc.Apply(&c)
	c, err = svc.repo.UpdateClass(ctx, c)
	return c, errors.Wrap(err, "updating class")
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteClass(ctx, id)
}
