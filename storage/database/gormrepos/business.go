package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/business"
	"github.com/arisha-glich/class-gecko-backend/core/commission"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

type businessRepository struct {
	db *gorm.DB
}

var _ business.Repository = (*businessRepository)(nil) // interface compliance check

func NewBusinessRepository(db *gorm.DB) *businessRepository {
	return &businessRepository{db: db}
}

func (repo businessRepository) QueryBusinesses(ctx context.Context, search string, pq core.PageQuery) ([]organization.Organization, int64, error) {
	q := repo.db.WithContext(ctx).Model(&organization.Organization{})
	if search != "" {
		like := "%" + search + "%"
		owners := repo.db.Model(&user.User{}).Select("id").
			Where("LOWER(email) LIKE LOWER(?) OR phone_no LIKE ?", like, like)
		q = q.Where("LOWER(company_name) LIKE LOWER(?) OR user_id IN (?)", like, owners)
	}

	orgs := make([]organization.Organization, 0)
	total, err := page(q, pq, &orgs, func(q *gorm.DB) *gorm.DB {
		return q.Preload("User").Order("created_at DESC")
	})
	return orgs, total, errors.Wrap(err, "querying businesses")
}

func (repo businessRepository) GetBusiness(ctx context.Context, id int) (organization.Organization, error) {
	var org organization.Organization
	if err := repo.db.WithContext(ctx).Preload("User.Address").First(&org, id).Error; err != nil {
		return org, trapNotFound(err, business.ErrNotFound, "selecting business")
	}
	return org, nil
}

func (repo businessRepository) CreateBusiness(ctx context.Context, owner user.User, org organization.Organization, comm *commission.Commission) (organization.Organization, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if owner.Address != nil {
			if err := tx.Create(owner.Address).Error; err != nil {
				return errors.Wrap(err, "inserting address")
			}
			owner.AddressID = &owner.Address.ID
		}
		if err := tx.Omit(clause.Associations).Create(&owner).Error; err != nil {
			return trapDuplicateEmail(err, "inserting owner")
		}
		if err := tx.Omit(clause.Associations).Create(&org).Error; err != nil {
			return errors.Wrap(err, "inserting organization")
		}
		if comm == nil {
			return nil
		}
		comm.BusinessID = &org.ID
		return errors.Wrap(tx.Omit(clause.Associations).Create(comm).Error, "inserting commission")
	})
	return org, err
}

func (repo businessRepository) SaveBusiness(ctx context.Context, org organization.Organization) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if org.User != nil {
			if err := saveOwner(tx, org.User); err != nil {
				return err
			}
		}
		return errors.Wrap(tx.Omit(clause.Associations).Save(&org).Error, "updating organization")
	})
}

func (repo businessRepository) QueryStudents(ctx context.Context, ownerID string, pq core.PageQuery) ([]student.Student, int64, error) {
	families := repo.db.Table("families").Select("id").Where("organization_id = ?", ownerID)
	q := repo.db.WithContext(ctx).Model(&student.Student{}).Where("family_id IN (?)", families)

	students := make([]student.Student, 0)
	total, err := page(q, pq, &students, func(q *gorm.DB) *gorm.DB {
		return q.Preload("Family").Order("created_at DESC")
	})
	return students, total, errors.Wrap(err, "querying students")
}
