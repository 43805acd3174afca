package location

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Location")

type Location struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Address   string    `json:"address" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type NewLocation struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
}

type UpdateLocation struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Address *string `json:"address" validate:"omitempty,min=1"`
}

// Repository is not scoped: locations are shared by every organization.
type Repository = core.Store[Location]

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nl NewLocation) (Location, error) {
	loc, err := svc.repo.Create(ctx, Location{
		Name:    core.CleanString(nl.Name),
		Address: core.CleanString(nl.Address),
	})
	return loc, errors.Wrap(err, "creating location")
}

func (svc *Service) Query(ctx context.Context) ([]Location, error) {
	return svc.repo.Query(ctx, "")
}

func (svc *Service) Get(ctx context.Context, id int) (Location, error) {
	return svc.repo.Get(ctx, "", id)
}

func (svc *Service) Update(ctx context.Context, id int, ul UpdateLocation) (Location, error) {
	loc, err := svc.repo.Get(ctx, "", id)
	if err != nil {
		return Location{}, err
	}
	if ul.Name != nil {
		loc.Name = core.CleanString(*ul.Name)
	}
	if ul.Address != nil {
		loc.Address = core.CleanString(*ul.Address)
	}
	loc, err = svc.repo.Update(ctx, loc)
	return loc, errors.Wrap(err, "updating location")
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, "", id)
}
