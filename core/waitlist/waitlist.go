package waitlist

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/class"
)

var (
	ErrNotFound = core.NewNotFoundError("Waitlist entry")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

type NewEntry struct {
	TermID    *int `json:"termId" validate:"omitempty,gt=0"`
	StudentID int  `json:"studentId" validate:"required,gt=0"`
	ClassID   *int `json:"classId" validate:"omitempty,gt=0"`
}

func (ne NewEntry) Waitlist(userID string) class.Waitlist {
	studentID := ne.StudentID
	return class.Waitlist{
		UserID:    userID,
		TermID:    ne.TermID,
		StudentID: &studentID,
		ClassID:   ne.ClassID,
		Date:      nowFunc(),
	}
}

type UpdateEntry struct {
	TermID    core.Optional[int] `json:"termId" validate:"omitempty,gt=0"`
	StudentID *int               `json:"studentId" validate:"omitempty,gt=0"`
	ClassID   core.Optional[int] `json:"classId" validate:"omitempty,gt=0"`
}

func (ue UpdateEntry) Apply(w *class.Waitlist) {
	if ue.StudentID != nil {
		id := *ue.StudentID
		w.StudentID = &id
		w.Student = nil
	}
	if ue.ClassID.Set {
		class.SetRef(&w.ClassID, ue.ClassID)
		w.Class = nil
	}
	class.SetRef(&w.TermID, ue.TermID)
}

type Repository interface {
	core.Store[class.Waitlist]
	QueryByClass(ctx context.Context, classID int) ([]class.Waitlist, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, ne NewEntry) (class.Waitlist, error) {
	w, err := svc.repo.Create(ctx, ne.Waitlist(userID))
	return w, errors.Wrap(err, "adding to waitlist")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]class.Waitlist, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *Service) QueryByClass(ctx context.Context, classID int) ([]class.Waitlist, error) {
	return svc.repo.QueryByClass(ctx, classID)
}

func (svc *Service) Get(ctx context.Context, id int) (class.Waitlist, error) {
	return svc.repo.Get(ctx, "", id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, ue UpdateEntry) (class.Waitlist, error) {
	w, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return class.Waitlist{}, err
	}
	ue.Apply(&w)
	w, err = svc.repo.Update(ctx, w)
	return w, errors.Wrap(err, "updating waitlist entry")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
