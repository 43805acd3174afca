package student

import (
	"context"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Student")

// Repository scopes every student to the organization owning its family.
type Repository interface {
	QueryStudents(ctx context.Context, orgID string, familyID *int) ([]Student, error)
	GetStudent(ctx context.Context, orgID string, id int) (Student, error)
	UpdateStudent(ctx context.Context, s Student) (Student, error)
	DeleteStudent(ctx context.Context, orgID string, id int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query(ctx context.Context, orgID string) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, orgID, nil)
}

func (svc *Service) QueryByFamily(ctx context.Context, orgID string, familyID int) ([]Student, error) {
	return svc.repo.QueryStudents(ctx, orgID, &familyID)
}

func (svc *Service) Get(ctx context.Context, orgID string, id int) (Student, error) {
	return svc.repo.GetStudent(ctx, orgID, id)
}

func (svc *Service) Update(ctx context.Context, orgID string, id int, us UpdateStudent) (Student, error) {
	s, err := svc.repo.GetStudent(ctx, orgID, id)
	if err != nil {
		return Student{}, err
	}
	us.Apply(&s)
	s, err = svc.repo.UpdateStudent(ctx, s)
	return s, errors.Wrap(err, "updating student")
}

func (svc *Service) Delete(ctx context.Context, orgID string, id int) error {
	return svc.repo.DeleteStudent(ctx, orgID, id)
}
