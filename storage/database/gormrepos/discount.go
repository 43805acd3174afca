package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core/discount"
)

type discountRepository struct {
	db *gorm.DB
}

var _ discount.Repository = (*discountRepository)(nil) // interface compliance check

func NewDiscountRepository(db *gorm.DB) *discountRepository {
	return &discountRepository{db: db}
}

// visibleTo selects the discounts of userID and the platform ones.
func (repo discountRepository) visibleTo(ctx context.Context, userID string) *gorm.DB {
	return repo.db.WithContext(ctx).
		Where("user_id = ? OR user_id IS NULL", userID).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") })
}

func insertTiers(tx *gorm.DB, d discount.Discount) error {
	if len(d.Tiers) == 0 {
		return nil
	}
	for i := range d.Tiers {
		d.Tiers[i].ID = 0
		d.Tiers[i].DiscountID = d.ID
	}
	return tx.Create(&d.Tiers).Error
}

func (repo discountRepository) CreateDiscount(ctx context.Context, d discount.Discount) (discount.Discount, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&d).Error; err != nil {
			return errors.Wrap(err, "inserting discount")
		}
		return errors.Wrap(insertTiers(tx, d), "inserting tiers")
	})
	if err != nil {
		return d, err
	}
	return repo.GetDiscount(ctx, d.UserID.String, d.ID)
}

func (repo discountRepository) QueryDiscounts(ctx context.Context, userID string) ([]discount.Discount, error) {
	discounts := make([]discount.Discount, 0)
	if err := repo.visibleTo(ctx, userID).Order("created_at DESC").Find(&discounts).Error; err != nil {
		return nil, errors.Wrap(err, "selecting discounts")
	}
	return discounts, nil
}

func (repo discountRepository) GetDiscount(ctx context.Context, userID string, id int) (discount.Discount, error) {
	var d discount.Discount
	if err := repo.visibleTo(ctx, userID).First(&d, id).Error; err != nil {
		return d, trapNotFound(err, discount.ErrNotFound, "selecting discount")
	}
	return d, nil
}

func (repo discountRepository) UpdateDiscount(ctx context.Context, d discount.Discount, replaceTiers bool) (discount.Discount, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&d).Error; err != nil {
			return errors.Wrap(err, "updating discount")
		}
		if !replaceTiers {
			return nil
		}
		if err := tx.Where("discount_id = ?", d.ID).Delete(&discount.Tier{}).Error; err != nil {
			return errors.Wrap(err, "deleting tiers")
		}
		return errors.Wrap(insertTiers(tx, d), "inserting tiers")
	})
	if err != nil {
		return d, err
	}
	var out discount.Discount
	err = repo.db.WithContext(ctx).Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).First(&out, d.ID).Error
	return out, trapNotFound(err, discount.ErrNotFound, "reloading discount")
}

func (repo discountRepository) DeleteDiscount(ctx context.Context, userID string, id int) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? OR user_id IS NULL", userID).Delete(&discount.Discount{}, id)
		if res.Error != nil {
			return errors.Wrap(res.Error, "deleting discount")
		}
		if res.RowsAffected == 0 {
			return discount.ErrNotFound
		}
		return errors.Wrap(tx.Where("discount_id = ?", id).Delete(&discount.Tier{}).Error, "deleting tiers")
	})
}
