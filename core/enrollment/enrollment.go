// Package enrollment books students into classes (the class_bookings table).
package enrollment

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/class"
)

var (
	ErrNotFound = core.NewNotFoundError("Enrollment")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

type NewEnrollment struct {
	ClassID             int    `json:"classId" validate:"required,gt=0"`
	TermID              *int   `json:"termId" validate:"omitempty,gt=0"`
	StudentID           int    `json:"studentId" validate:"required,gt=0"`
	EnrollmentStartDate string `json:"enrollmentStartDate" validate:"required,date"`
	EnrollmentEndDate   string `json:"enrollmentEndDate" validate:"required,date"`
	PaymentOption       string `json:"paymentOption" validate:"required"`
}

func (ne NewEnrollment) Booking(userID string) class.Booking {
	studentID := ne.StudentID
	return class.Booking{
		UserID:              userID,
		ClassID:             ne.ClassID,
		TermID:              ne.TermID,
		StudentID:           &studentID,
		EnrollmentStartDate: null.TimeFrom(core.MustParseDate(ne.EnrollmentStartDate)),
		EnrollmentEndDate:   null.TimeFrom(core.MustParseDate(ne.EnrollmentEndDate)),
		PaymentOption:       null.StringFrom(ne.PaymentOption),
		Status:              class.BookingActive,
		Date:                nowFunc(),
	}
}

type UpdateEnrollment struct {
	ClassID             *int                  `json:"classId" validate:"omitempty,gt=0"`
	TermID              core.Optional[int]    `json:"termId" validate:"omitempty,gt=0"`
	StudentID           *int                  `json:"studentId" validate:"omitempty,gt=0"`
	EnrollmentStartDate core.Optional[string] `json:"enrollmentStartDate" validate:"omitempty,date"`
	EnrollmentEndDate   core.Optional[string] `json:"enrollmentEndDate" validate:"omitempty,date"`
	PaymentOption       core.Optional[string] `json:"paymentOption"`
	Status              *string               `json:"status" validate:"omitempty,min=1"`
}

func (ue UpdateEnrollment) Apply(b *class.Booking) {
	if ue.ClassID != nil {
		b.ClassID = *ue.ClassID
		b.Class = nil
	}
	if ue.StudentID != nil {
		id := *ue.StudentID
		b.StudentID = &id
		b.Student = nil
	}
	if ue.TermID.Set {
		class.SetRef(&b.TermID, ue.TermID)
		b.Term = nil
	}
	if ue.EnrollmentStartDate.Set {
		b.EnrollmentStartDate = core.NullTime(ue.EnrollmentStartDate)
	}
	if ue.EnrollmentEndDate.Set {
		b.EnrollmentEndDate = core.NullTime(ue.EnrollmentEndDate)
	}
	if ue.Status != nil {
		b.Status = *ue.Status
	}
	class.SetString(&b.PaymentOption, ue.PaymentOption)
}

// Repository loads bookings with their class, student & term, newest first.
type Repository interface {
	core.Store[class.Booking]
	QueryByClass(ctx context.Context, classID int) ([]class.Booking, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, ne NewEnrollment) (class.Booking, error) {
	b, err := svc.repo.Create(ctx, ne.Booking(userID))
	return b, errors.Wrap(err, "creating enrollment")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]class.Booking, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *Service) QueryByClass(ctx context.Context, classID int) ([]class.Booking, error) {
	return svc.repo.QueryByClass(ctx, classID)
}

func (svc *Service) Get(ctx context.Context, id int) (class.Booking, error) {
	return svc.repo.Get(ctx, "", id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, ue UpdateEnrollment) (class.Booking, error) {
	b, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return class.Booking{}, err
	}
	ue.Apply(&b)
	b, err = svc.repo.Update(ctx, b)
	return b, errors.Wrap(err, "updating enrollment")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
