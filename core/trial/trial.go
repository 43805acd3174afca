package trial

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/class"
)

var ErrNotFound = core.NewNotFoundError("Trial")

type NewTrial struct {
	ClassID   int     `json:"classId" validate:"required,gt=0"`
	TermID    *int    `json:"termId" validate:"omitempty,gt=0"`
	StudentID int     `json:"studentId" validate:"required,gt=0"`
	LessonID  *int    `json:"lessonId" validate:"omitempty,gt=0"`
	Date      *string `json:"date" validate:"omitempty,date"`
	Status    string  `json:"status"`
	Notes     *string `json:"notes"`
}

func (nt NewTrial) Trial(userID string) class.Trial {
	studentID := nt.StudentID
	t := class.Trial{
		UserID:    userID,
		ClassID:   nt.ClassID,
		TermID:    nt.TermID,
		StudentID: &studentID,
		LessonID:  nt.LessonID,
		Status:    nt.Status,
		Notes:     null.StringFromPtr(nt.Notes),
	}
	if nt.Date != nil {
		t.Date = null.TimeFrom(core.MustParseDate(*nt.Date))
	}
	if t.Status == "" {
		t.Status = class.TrialPending
	}
	return t
}

type UpdateTrial struct {
	ClassID   *int                  `json:"classId" validate:"omitempty,gt=0"`
	TermID    core.Optional[int]    `json:"termId" validate:"omitempty,gt=0"`
	StudentID *int                  `json:"studentId" validate:"omitempty,gt=0"`
	LessonID  core.Optional[int]    `json:"lessonId" validate:"omitempty,gt=0"`
	Date      core.Optional[string] `json:"date" validate:"omitempty,date"`
	Status    *string               `json:"status" validate:"omitempty,min=1"`
	Notes     core.Optional[string] `json:"notes"`
}

func (u UpdateTrial) Apply(t *class.Trial) {
	if u.ClassID != nil {
		t.ClassID = *u.ClassID
		t.Class = nil
	}
	if u.StudentID != nil {
		id := *u.StudentID
		t.StudentID = &id
		t.Student = nil
	}
	if u.Date.Set {
		t.Date = core.NullTime(u.Date)
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	class.SetRef(&t.TermID, u.TermID)
	class.SetRef(&t.LessonID, u.LessonID)
	class.SetString(&t.Notes, u.Notes)
}

// Repository loads trials with their class & student, newest first.
type Repository interface {
	core.Store[class.Trial]
	QueryByClass(ctx context.Context, classID int) ([]class.Trial, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nt NewTrial) (class.Trial, error) {
	t, err := svc.repo.Create(ctx, nt.Trial(userID))
	return t, errors.Wrap(err, "creating trial")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]class.Trial, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *Service) QueryByClass(ctx context.Context, classID int) ([]class.Trial, error) {
	return svc.repo.QueryByClass(ctx, classID)
}

func (svc *Service) Get(ctx context.Context, id int) (class.Trial, error) {
	return svc.repo.Get(ctx, "", id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, u UpdateTrial) (class.Trial, error) {
	t, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return class.Trial{}, err
	}
	u.Apply(&t)
	t, err = svc.repo.Update(ctx, t)
	return t, errors.Wrap(err, "updating trial")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
