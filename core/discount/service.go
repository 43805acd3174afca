package discount

import (
	"context"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var ErrNotFound = core.NewNotFoundError("Discount")

// Repository only sees the discounts of userID and the platform-wide ones (no owner).
// Discounts are always loaded with their tiers.
type Repository interface {
	// CreateDiscount inserts d and its tiers in one transaction.
	CreateDiscount(ctx context.Context, d Discount) (Discount, error)
	QueryDiscounts(ctx context.Context, userID string) ([]Discount, error)
	GetDiscount(ctx context.Context, userID string, id int) (Discount, error)
	// UpdateDiscount saves d; when replaceTiers is set, its tiers replace the stored ones in the same transaction.
	UpdateDiscount(ctx context.Context, d Discount, replaceTiers bool) (Discount, error)
	DeleteDiscount(ctx context.Context, userID string, id int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nd NewDiscount) (Discount, error) {
	d, err := svc.repo.CreateDiscount(ctx, nd.Discount(userID))
	return d, errors.Wrap(err, "creating discount")
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Discount, error) {
	return svc.repo.QueryDiscounts(ctx, userID)
}

func (svc *Service) Get(ctx context.Context, userID string, id int) (Discount, error) {
	return svc.repo.GetDiscount(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, userID string, id int, u UpdateDiscount) (Discount, error) {
	d, err := svc.repo.GetDiscount(ctx, userID, id)
	if err != nil {
		return Discount{}, err
	}
	replaceTiers := u.Apply(&d)
	d, err = svc.repo.UpdateDiscount(ctx, d, replaceTiers)
	return d, errors.Wrap(err, "updating discount")
}

func (svc *Service) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.DeleteDiscount(ctx, userID, id)
}
