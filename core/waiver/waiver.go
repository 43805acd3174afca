// Package waiver manages the waiver policies families agree to.
package waiver

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Waiver policy")

type Policy struct {
	ID          int       `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"userId" gorm:"type:varchar(36);index;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Permission  string    `json:"permission" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Policy) TableName() string { return "waiver_policies" }

type NewPolicy struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Permission  string `json:"permission" validate:"required"`
}

type UpdatePolicy struct {
	Title       *string `json:"title" validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	Permission  *string `json:"permission" validate:"omitempty,min=1"`
}

type Repository = core.Store[Policy]

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, np NewPolicy) (Policy, error) {
	p, err := svc.repo.Create(ctx, Policy{
		UserID:      userID,
		Title:       core.CleanString(np.Title),
		Description: np.Description,
		Permission:  np.Permission,
	})
	return p, errors.Wrap(err, "creating waiver policy")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Policy, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *Service) Get(ctx context.Context, userID string, id int) (Policy, error) {
	return svc.repo.Get(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, up UpdatePolicy) (Policy, error) {
	p, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return Policy{}, err
	}
	if up.Title != nil {
		p.Title = core.CleanString(*up.Title)
	}
	if up.Description != nil {
		p.Description = *up.Description
	}
	if up.Permission != nil {
		p.Permission = *up.Permission
	}
	p, err = svc.repo.Update(ctx, p)
	return p, errors.Wrap(err, "updating waiver policy")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
