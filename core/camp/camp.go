package camp

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Camp")

type Camp struct {
	ID                               int       `json:"id" gorm:"primaryKey"`
	UserID                           string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Title                            string    `json:"title" gorm:"not null"`
	StartDate                        time.Time `json:"startDate" gorm:"not null"`
	EndDate                          null.Time `json:"endDate"`
	AllowParentsToBookIndividualDays bool      `json:"allowParentsToBookIndividualDays" gorm:"not null;default:false"`
	AllowParentsToBookHalfDaySession bool      `json:"allowParentsToBookHalfDaySession" gorm:"not null;default:false"`
	OfferEarlyDropoff                bool      `json:"offerEarlyDropoff" gorm:"not null;default:false"`
	OfferLatePickup                  bool      `json:"offerLatePickup" gorm:"not null;default:false"`
	CreatedAt                        time.Time `json:"createdAt"`
	UpdatedAt                        time.Time `json:"updatedAt"`
}

type NewCamp struct {
	Title                            string  `json:"title" validate:"required"`
	StartDate                        string  `json:"startDate" validate:"required,date"`
	EndDate                          *string `json:"endDate" validate:"omitempty,date"`
	AllowParentsToBookIndividualDays bool    `json:"allowParentsToBookIndividualDays"`
	AllowParentsToBookHalfDaySession bool    `json:"allowParentsToBookHalfDaySession"`
	OfferEarlyDropoff                bool    `json:"offerEarlyDropoff"`
	OfferLatePickup                  bool    `json:"offerLatePickup"`
}

func (nc NewCamp) Camp(userID string) Camp {
	c := Camp{
		UserID:                           userID,
		Title:                            core.CleanString(nc.Title),
		StartDate:                        core.MustParseDate(nc.StartDate),
		AllowParentsToBookIndividualDays: nc.AllowParentsToBookIndividualDays,
		AllowParentsToBookHalfDaySession: nc.AllowParentsToBookHalfDaySession,
		OfferEarlyDropoff:                nc.OfferEarlyDropoff,
		OfferLatePickup:                  nc.OfferLatePickup,
	}
	if nc.EndDate != nil {
		c.EndDate = null.TimeFrom(core.MustParseDate(*nc.EndDate))
	}
	return c
}

// UpdateCamp is a partial update; `"endDate": null` clears the end date.
type UpdateCamp struct {
	Title                            *string               `json:"title" validate:"omitempty,min=1"`
	StartDate                        *string               `json:"startDate" validate:"omitempty,date"`
	EndDate                          core.Optional[string] `json:"endDate" validate:"omitempty,date"`
	AllowParentsToBookIndividualDays *bool                 `json:"allowParentsToBookIndividualDays"`
	AllowParentsToBookHalfDaySession *bool                 `json:"allowParentsToBookHalfDaySession"`
	OfferEarlyDropoff                *bool                 `json:"offerEarlyDropoff"`
	OfferLatePickup                  *bool                 `json:"offerLatePickup"`
}

func (uc UpdateCamp) Apply(c *Camp) {
	if uc.Title != nil {
		c.Title = core.CleanString(*uc.Title)
	}
	if uc.StartDate != nil {
		c.StartDate = core.MustParseDate(*uc.StartDate)
	}
	if uc.EndDate.Set {
		c.EndDate = core.NullTime(uc.EndDate)
	}
	if uc.AllowParentsToBookIndividualDays != nil {
		c.AllowParentsToBookIndividualDays = *uc.AllowParentsToBookIndividualDays
	}
	if uc.AllowParentsToBookHalfDaySession != nil {
		c.AllowParentsToBookHalfDaySession = *uc.AllowParentsToBookHalfDaySession
	}
	if uc.OfferEarlyDropoff != nil {
		c.OfferEarlyDropoff = *uc.OfferEarlyDropoff
	}
	if uc.OfferLatePickup != nil {
		c.OfferLatePickup = *uc.OfferLatePickup
	}
}

type Repository = core.Store[Camp]

// Service scopes every camp to the user who created it.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nc NewCamp) (Camp, error) {
	c, err := svc.repo.Create(ctx, nc.Camp(userID))
	return c, errors.Wrap(err, "creating camp")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Camp, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *Service) Get(ctx context.Context, userID string, id int) (Camp, error) {
	return svc.repo.Get(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, uc UpdateCamp) (Camp, error) {
	c, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return Camp{}, err
	}
	uc.Apply(&c)
	c, err = svc.repo.Update(ctx, c)
	return c, errors.Wrap(err, "updating camp")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
