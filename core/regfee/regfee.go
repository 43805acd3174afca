// Package regfee manages the registration fees charged per student.
package regfee

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Registration fee")

type Fee struct {
	ID              int                 `json:"id" gorm:"primaryKey"`
	UserID          string              `json:"userId" gorm:"type:varchar(36);index;not null"`
	Title           string              `json:"title" gorm:"not null"`
	PricePerStudent decimal.Decimal     `json:"pricePerStudent" gorm:"type:numeric(12,2);not null"`
	MaxPerFamily    decimal.NullDecimal `json:"maxPerFamily" gorm:"type:numeric(12,2)"`
	RenewalType     string              `json:"renewalType" gorm:"not null"`
	RenewalDate     null.Time           `json:"renewalDate"`
	IsActive        bool                `json:"isActive" gorm:"not null;default:true"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

func (Fee) TableName() string { return "registration_fees" }

type NewFee struct {
	Title           string           `json:"title" validate:"required"`
	PricePerStudent decimal.Decimal  `json:"pricePerStudent" validate:"gt=0"`
	MaxPerFamily    *decimal.Decimal `json:"maxPerFamily" validate:"omitempty,gt=0"`
	RenewalType     string           `json:"renewalType" validate:"required"`
	RenewalDate     *string          `json:"renewalDate" validate:"omitempty,date"`
	IsActive        *bool            `json:"isActive"`
}

func (nf NewFee) Fee(userID string) Fee {
	f := Fee{
		UserID:          userID,
		Title:           core.CleanString(nf.Title),
		PricePerStudent: core.RoundMoney(nf.PricePerStudent),
		RenewalType:     nf.RenewalType,
		IsActive:        true,
	}
	if nf.MaxPerFamily != nil {
		f.MaxPerFamily = decimal.NewNullDecimal(core.RoundMoney(*nf.MaxPerFamily))
	}
	if nf.RenewalDate != nil {
		f.RenewalDate = null.TimeFrom(core.MustParseDate(*nf.RenewalDate))
	}
	if nf.IsActive != nil {
		f.IsActive = *nf.IsActive
	}
	return f
}

type UpdateFee struct {
	Title           *string                `json:"title" validate:"omitempty,min=1"`
	PricePerStudent decimal.NullDecimal    `json:"pricePerStudent" validate:"omitempty,gt=0"`
	MaxPerFamily    core.Optional[float64] `json:"maxPerFamily" validate:"omitempty,gt=0"`
	RenewalType     *string                `json:"renewalType" validate:"omitempty,min=1"`
	RenewalDate     core.Optional[string]  `json:"renewalDate" validate:"omitempty,date"`
	IsActive        *bool                  `json:"isActive"`
}

func (u UpdateFee) Apply(f *Fee) {
	if u.Title != nil {
		f.Title = core.CleanString(*u.Title)
	}
	if u.PricePerStudent.Valid {
		f.PricePerStudent = core.RoundMoney(u.PricePerStudent.Decimal)
	}
	if u.MaxPerFamily.Set {
		f.MaxPerFamily = decimal.NullDecimal{}
		if u.MaxPerFamily.Valid {
			f.MaxPerFamily = decimal.NewNullDecimal(core.RoundMoney(decimal.NewFromFloat(u.MaxPerFamily.Value)))
		}
	}
	if u.RenewalType != nil {
		f.RenewalType = *u.RenewalType
	}
	if u.RenewalDate.Set {
		f.RenewalDate = core.NullTime(u.RenewalDate)
	}
	if u.IsActive != nil {
		f.IsActive = *u.IsActive
	}
}

type Repository = core.Store[Fee]

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nf NewFee) (Fee, error) {
	f, err := svc.repo.Create(ctx, nf.Fee(userID))
	return f, errors.Wrap(err, "creating registration fee")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Fee, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *Service) Get(ctx context.Context, userID string, id int) (Fee, error) {
	return svc.repo.Get(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, u UpdateFee) (Fee, error) {
	f, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return Fee{}, err
	}
	u.Apply(&f)
	f, err = svc.repo.Update(ctx, f)
	return f, errors.Wrap(err, "updating registration fee")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
