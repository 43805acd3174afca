package lesson

import (
	"context"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/class"
)

var ErrNotFound = core.NewNotFoundError("Lesson")

type NewLesson struct {
	ClassID      int     `json:"classId" validate:"required,gt=0"`
	Title        string  `json:"title" validate:"required"`
	IsTrial      bool    `json:"isTrial"`
	Status       string  `json:"status"`
	AttendanceID *string `json:"attendanceId"`
	Notes        *string `json:"notes"`
	Date         string  `json:"date" validate:"required,date"`
	StartTime    string  `json:"startTime" validate:"required"`
	EndTime      *string `json:"endTime"`
	Duration     int     `json:"duration" validate:"required,gt=0"`
}

func (nl NewLesson) Lesson() class.Lesson {
	l := class.Lesson{
		ClassID:      nl.ClassID,
		Title:        core.CleanString(nl.Title),
		IsTrial:      nl.IsTrial,
		Status:       nl.Status,
		AttendanceID: null.StringFromPtr(nl.AttendanceID),
		Notes:        null.StringFromPtr(nl.Notes),
		Date:         core.MustParseDate(nl.Date),
		StartTime:    nl.StartTime,
		EndTime:      null.StringFromPtr(nl.EndTime),
		Duration:     nl.Duration,
	}
	if l.Status == "" {
		l.Status = class.LessonScheduled
	}
	return l
}

type UpdateLesson struct {
	ClassID      *int                  `json:"classId" validate:"omitempty,gt=0"`
	Title        *string               `json:"title" validate:"omitempty,min=1"`
	IsTrial      *bool                 `json:"isTrial"`
	Status       *string               `json:"status" validate:"omitempty,min=1"`
	AttendanceID core.Optional[string] `json:"attendanceId"`
	Notes        core.Optional[string] `json:"notes"`
	Date         *string               `json:"date" validate:"omitempty,date"`
	StartTime    *string               `json:"startTime" validate:"omitempty,min=1"`
	EndTime      core.Optional[string] `json:"endTime"`
	Duration     *int                  `json:"duration" validate:"omitempty,gt=0"`
}

func (ul UpdateLesson) Apply(l *class.Lesson) {
	if ul.ClassID != nil {
		l.ClassID = *ul.ClassID
		l.Class = nil
	}
	if ul.Title != nil {
		l.Title = core.CleanString(*ul.Title)
	}
	if ul.IsTrial != nil {
		l.IsTrial = *ul.IsTrial
	}
	if ul.Status != nil {
		l.Status = *ul.Status
	}
	if ul.Date != nil {
		l.Date = core.MustParseDate(*ul.Date)
	}
	if ul.StartTime != nil {
		l.StartTime = *ul.StartTime
	}
	if ul.Duration != nil {
		l.Duration = *ul.Duration
	}
	class.SetString(&l.AttendanceID, ul.AttendanceID)
	class.SetString(&l.Notes, ul.Notes)
	class.SetString(&l.EndTime, ul.EndTime)
}

// Repository lists lessons by date, oldest first.
type Repository interface {
	core.Store[class.Lesson]
	QueryByClass(ctx context.Context, classID int) ([]class.Lesson, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nl NewLesson) (class.Lesson, error) {
	l, err := svc.repo.Create(ctx, nl.Lesson())
	return l, errors.Wrap(err, "creating lesson")
}

func (svc *Service) Query(ctx context.Context) ([]class.Lesson, error) {
	return svc.repo.Query(ctx, "")
}

func (svc *Service) QueryByClass(ctx context.Context, classID int) ([]class.Lesson, error) {
	return svc.repo.QueryByClass(ctx, classID)
}

func (svc *Service) Get(ctx context.Context, id int) (class.Lesson, error) {
	return svc.repo.Get(ctx, "", id)
}

func (svc *Service) Update(ctx context.Context, id int, ul UpdateLesson) (class.Lesson, error) {
	l, err := svc.repo.Get(ctx, "", id)
	if err != nil {
		return class.Lesson{}, err
	}
	ul.Apply(&l)
	l, err = svc.repo.Update(ctx, l)
	return l, errors.Wrap(err, "updating lesson")
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, "", id)
}
