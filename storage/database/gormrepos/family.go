package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/billing"
	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

type familyRepository struct {
	db *gorm.DB
}

var _ family.Repository = (*familyRepository)(nil) // interface compliance check

func NewFamilyRepository(db *gorm.DB) *familyRepository {
	return &familyRepository{db: db}
}

func (repo familyRepository) CreateFamily(ctx context.Context, usr user.User, fam family.Family) (family.Family, error) {
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(&usr).Error; err != nil {
			return trapDuplicateEmail(err, "inserting family account")
		}
		fam.UserID = usr.ID
		return errors.Wrap(tx.Omit(clause.Associations).Create(&fam).Error, "inserting family")
	})
	return fam, err
}

func (repo familyRepository) QueryFamilies(ctx context.Context, orgID string, filter family.QueryFilter, pq core.PageQuery) ([]family.Family, int64, error) {
	q := repo.db.WithContext(ctx).Model(&family.Family{}).Where("organization_id = ?", orgID)
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where(
			"LOWER(family_name) LIKE LOWER(?) OR LOWER(primary_parent_first_name) LIKE LOWER(?) OR "+
				"LOWER(primary_parent_last_name) LIKE LOWER(?) OR LOWER(primary_parent_email) LIKE LOWER(?)",
			like, like, like, like,
		)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	fams := make([]family.Family, 0)
	total, err := page(q, pq, &fams, func(q *gorm.DB) *gorm.DB {
		q = q.Preload("Students").Preload("User")
		for _, ord := range filter.Ordering {
			q = q.Order(ord.String())
		}
		return q.Order("created_at DESC")
	})
	return fams, total, errors.Wrap(err, "querying families")
}

func (repo familyRepository) GetFamily(ctx context.Context, orgID string, id int) (family.Family, error) {
	var fam family.Family
	err := repo.db.WithContext(ctx).
		Preload("User.Address").
		Where("organization_id = ?", orgID).
		First(&fam, id).Error
	if err != nil {
		return fam, trapNotFound(err, family.ErrNotFound, "selecting family")
	}
	return fam, nil
}

func (repo familyRepository) SaveFamily(ctx context.Context, fam family.Family, contact *user.ContactInfo) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if fam.User != nil {
			if err := saveOwner(tx, fam.User); err != nil {
				return err
			}
		}
		if err := tx.Omit(clause.Associations).Save(&fam).Error; err != nil {
			return errors.Wrap(err, "updating family")
		}
		if contact == nil {
			return nil
		}
		return errors.Wrap(tx.Save(contact).Error, "saving emergency contact")
	})
}

func (repo familyRepository) DeleteFamily(ctx context.Context, orgID string, id int) error {
	res := repo.db.WithContext(ctx).Where("organization_id = ?", orgID).Delete(&family.Family{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting family")
	}
	if res.RowsAffected == 0 {
		return family.ErrNotFound
	}
	return nil
}

func (repo familyRepository) GetEmergencyContact(ctx context.Context, userID string) (*user.ContactInfo, error) {
	var contacts []user.ContactInfo
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND use_in_emergency = ?", userID, true).
		Order("id ASC").
		Limit(1).
		Find(&contacts).Error
	if err != nil {
		return nil, errors.Wrap(err, "selecting emergency contact")
	}
	if len(contacts) == 0 {
		return nil, nil
	}
	return &contacts[0], nil
}

func (repo familyRepository) GetBusinessName(ctx context.Context, orgID string) (string, error) {
	var names []string
	err := repo.db.WithContext(ctx).Model(&organization.Organization{}).
		Where("user_id = ?", orgID).
		Limit(1).
		Pluck("company_name", &names).Error
	if err != nil || len(names) == 0 {
		return "", errors.Wrap(err, "selecting business name")
	}
	return names[0], nil
}

func (repo familyRepository) QueryFamilyStudents(ctx context.Context, familyID int) ([]student.Student, error) {
	students := make([]student.Student, 0)
	err := repo.db.WithContext(ctx).Where("family_id = ?", familyID).Order("created_at ASC").Find(&students).Error
	return students, errors.Wrap(err, "selecting students")
}

type enrolledClassRow struct {
	StudentID int
	family.EnrolledClass
}

func (repo familyRepository) QueryEnrolledClasses(ctx context.Context, studentIDs []int) (map[int][]family.EnrolledClass, error) {
	enrolled := make(map[int][]family.EnrolledClass)
	if len(studentIDs) == 0 {
		return enrolled, nil
	}

	var rows []enrolledClassRow
	err := repo.db.WithContext(ctx).Table("class_bookings AS b").
		Select("b.student_id, c.id, c.title, c.class_type").
		Joins("JOIN classes AS c ON c.id = b.class_id").
		Where("b.student_id IN ? AND b.status <> ?", studentIDs, class.BookingCancelled).
		Order("b.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "selecting class bookings")
	}
	var dropIns []enrolledClassRow
	err = repo.db.WithContext(ctx).Table("drop_in_bookings AS b").
		Select("b.student_id, c.id, c.title, c.class_type").
		Joins("JOIN drop_in_classes AS c ON c.id = b.drop_in_class_id").
		Where("b.student_id IN ?", studentIDs).
		Order("b.created_at ASC").
		Scan(&dropIns).Error
	if err != nil {
		return nil, errors.Wrap(err, "selecting drop-in bookings")
	}

	for _, r := range append(rows, dropIns...) {
		enrolled[r.StudentID] = append(enrolled[r.StudentID], r.EnrolledClass)
	}
	return enrolled, nil
}

func (repo familyRepository) QueryOrders(ctx context.Context, userID string) ([]billing.Order, error) {
	orders := make([]billing.Order, 0)
	err := repo.db.WithContext(ctx).
		Preload("Cart").
		Preload("Payment").
		Where("user_id = ?", userID).
		Order("date ASC").
		Find(&orders).Error
	return orders, errors.Wrap(err, "selecting orders")
}

func (repo familyRepository) CreateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(&s).Error; err != nil {
		return s, errors.Wrap(err, "inserting student")
	}
	return s, nil
}
