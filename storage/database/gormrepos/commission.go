package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/commission"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
)

type commissionRepository struct {
	db *gorm.DB
}

var _ commission.Repository = (*commissionRepository)(nil) // interface compliance check

func NewCommissionRepository(db *gorm.DB) *commissionRepository {
	return &commissionRepository{db: db}
}

// scoped selects the active rows of scope.
func scoped(q *gorm.DB, scope commission.Scope) *gorm.DB {
	q = q.Where("is_active = ?", true)
	if scope.BusinessID == nil {
		q = q.Where("business_id IS NULL")
	} else {
		q = q.Where("business_id = ?", *scope.BusinessID)
	}
	if scope.Country != "" {
		q = q.Where("country = ?", scope.Country)
	}
	if scope.Currency != "" {
		q = q.Where("currency = ?", scope.Currency)
	}
	return q
}

func (repo commissionRepository) ReplaceCommission(ctx context.Context, scope commission.Scope, c commission.Commission) (commission.Commission, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := scoped(tx.Model(&commission.Commission{}), scope).Update("is_active", false).Error
		if err != nil {
			return errors.Wrap(err, "deactivating commissions")
		}
		return errors.Wrap(tx.Omit(clause.Associations).Create(&c).Error, "inserting commission")
	})
	return c, err
}

func (repo commissionRepository) QueryCommissions(ctx context.Context, filter commission.QueryFilter, pq core.PageQuery) ([]commission.Commission, int64, error) {
	q := repo.db.WithContext(ctx).Model(&commission.Commission{})
	if filter.BusinessID != nil {
		q = q.Where("business_id = ?", *filter.BusinessID)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}

	comms := make([]commission.Commission, 0)
	total, err := page(q, pq, &comms, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Business").Order("business_id ASC NULLS FIRST").Order("effective_from DESC")
	})
	return comms, total, errors.Wrap(err, "querying commissions")
}

func (repo commissionRepository) GetCommission(ctx context.Context, id int) (commission.Commission, error) {
	var c commission.Commission
	if err := repo.db.WithContext(ctx).Preload("Business").First(&c, id).Error; err != nil {
		return c, trapNotFound(err, commission.ErrNotFound, "selecting commission")
	}
	return c, nil
}

func (repo commissionRepository) UpdateCommission(ctx context.Context, c commission.Commission) (commission.Commission, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Save(&c).Error; err != nil {
		return c, errors.Wrap(err, "updating commission")
	}
	return repo.GetCommission(ctx, c.ID)
}

func (repo commissionRepository) DeleteCommission(ctx context.Context, id int) error {
	res := repo.db.WithContext(ctx).Delete(&commission.Commission{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting commission")
	}
	if res.RowsAffected == 0 {
		return commission.ErrNotFound
	}
	return nil
}

func (repo commissionRepository) GetActiveCommission(ctx context.Context, scope commission.Scope) (commission.Commission, error) {
	var c commission.Commission
	err := scoped(repo.db.WithContext(ctx), scope).
		Preload("Business").
		Order("effective_from DESC").
		First(&c).Error
	if err != nil {
		return c, trapNotFound(err, commission.ErrNotFound, "selecting active commission")
	}
	return c, nil
}

func (repo commissionRepository) GetBusiness(ctx context.Context, id int) (organization.Organization, error) {
	var org organization.Organization
	if err := repo.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return org, trapNotFound(err, commission.ErrBusinessNotFound, "selecting business")
	}
	return org, nil
}
