package holiday

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Holiday")

type Holiday struct {
	ID           int       `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Name         string    `json:"name" gorm:"not null"`
	IsRecurring  bool      `json:"isRecurring" gorm:"not null;default:false"`
	AffectsClass bool      `json:"affectsClass" gorm:"not null;default:false"`
	StartDate    time.Time `json:"startDate" gorm:"not null"`
	EndDate      time.Time `json:"endDate" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type NewHoliday struct {
	Name         string `json:"name" validate:"required"`
	IsRecurring  bool   `json:"isRecurring"`
	AffectsClass bool   `json:"affectsClass"`
	StartDate    string `json:"startDate" validate:"required,date"`
	EndDate      string `json:"endDate" validate:"required,date"`
}

type UpdateHoliday struct {
	Name         *string `json:"name" validate:"omitempty,min=1"`
	IsRecurring  *bool   `json:"isRecurring"`
	AffectsClass *bool   `json:"affectsClass"`
	StartDate    *string `json:"startDate" validate:"omitempty,date"`
	EndDate      *string `json:"endDate" validate:"omitempty,date"`
}

// Repository lists holidays by start date, earliest first.
type Repository = core.Store[Holiday]

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nh NewHoliday) (Holiday, error) {
	h, err := svc.repo.Create(ctx, Holiday{
		UserID:       userID,
		Name:         core.CleanString(nh.Name),
		IsRecurring:  nh.IsRecurring,
		AffectsClass: nh.AffectsClass,
		StartDate:    core.MustParseDate(nh.StartDate),
		EndDate:      core.MustParseDate(nh.EndDate),
	})
	return h, errors.Wrap(err, "creating holiday")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Holiday, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *Service) Get(ctx context.Context, userID string, id int) (Holiday, error) {
	return svc.repo.Get(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, uh UpdateHoliday) (Holiday, error) {
	h, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return Holiday{}, err
	}
	if uh.Name != nil {
		h.Name = core.CleanString(*uh.Name)
	}
	if uh.IsRecurring != nil {
		h.IsRecurring = *uh.IsRecurring
	}
	if uh.AffectsClass != nil {
		h.AffectsClass = *uh.AffectsClass
	}
	if uh.StartDate != nil {
		h.StartDate = core.MustParseDate(*uh.StartDate)
	}
	if uh.EndDate != nil {
		h.EndDate = core.MustParseDate(*uh.EndDate)
	}
	h, err = svc.repo.Update(ctx, h)
	return h, errors.Wrap(err, "updating holiday")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
