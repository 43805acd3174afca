package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core/organization"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

type organizationRepository struct {
	db *gorm.DB
}

var _ organization.Repository = (*organizationRepository)(nil) // interface compliance check

func NewOrganizationRepository(db *gorm.DB) *organizationRepository {
	return &organizationRepository{db: db}
}

func (repo organizationRepository) GetOrganizationByUserID(ctx context.Context, userID string) (organization.Organization, error) {
	var org organization.Organization
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&org).Error; err != nil {
		return org, trapNotFound(err, organization.ErrNotFound, "selecting organization")
	}
	return org, nil
}

func (repo organizationRepository) SaveProfile(ctx context.Context, usr user.User, org organization.Organization) (organization.Organization, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(&usr).Error; err != nil {
			return errors.Wrap(err, "updating user")
		}
		if org.ID == 0 {
			return errors.Wrap(tx.Omit(clause.Associations).Create(&org).Error, "inserting organization")
		}
		return errors.Wrap(tx.Omit(clause.Associations).Save(&org).Error, "updating organization")
	})
	return org, err
}
