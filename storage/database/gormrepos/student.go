package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core/student"
)

// studentRepository reaches students through the organization of their family.
type studentRepository struct {
	db *gorm.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *gorm.DB) *studentRepository {
	return &studentRepository{db: db}
}

func (repo studentRepository) ofOrganization(ctx context.Context, orgID string) *gorm.DB {
	families := repo.db.Table("families").Select("id").Where("organization_id = ?", orgID)
	return repo.db.WithContext(ctx).Where("family_id IN (?)", families)
}

func (repo studentRepository) QueryStudents(ctx context.Context, orgID string, familyID *int) ([]student.Student, error) {
	q := repo.ofOrganization(ctx, orgID).Preload("Family")
	if familyID != nil {
		q = q.Where("family_id = ?", *familyID)
	}
	students := make([]student.Student, 0)
	if err := q.Order("created_at DESC").Find(&students).Error; err != nil {
		return nil, errors.Wrap(err, "selecting students")
	}
	return students, nil
}

func (repo studentRepository) GetStudent(ctx context.Context, orgID string, id int) (student.Student, error) {
	var s student.Student
	if err := repo.ofOrganization(ctx, orgID).Preload("Family").First(&s, id).Error; err != nil {
		return s, trapNotFound(err, student.ErrNotFound, "selecting student")
	}
	return s, nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, s student.Student) (student.Student, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Save(&s).Error; err != nil {
		return s, errors.Wrap(err, "updating student")
	}
	return s, nil
}

func (repo studentRepository) DeleteStudent(ctx context.Context, orgID string, id int) error {
	res := repo.ofOrganization(ctx, orgID).Delete(&student.Student{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting student")
	}
	if res.RowsAffected == 0 {
		return student.ErrNotFound
	}
	return nil
}
