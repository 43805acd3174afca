package gormrepos

import (
	"context"

	"gorm.io/gorm"

	"github.com/arisha-glich/class-gecko-backend/core/term"
)

type termRepository struct {
	*store[term.Term]
}

var _ term.Repository = (*termRepository)(nil) // interface compliance check

func NewTermRepository(db *gorm.DB) *termRepository {
	return &termRepository{store: newStore[term.Term](db, term.ErrNotFound, ownedBy("user_id"))}
}

func (repo termRepository) GetTermDetail(ctx context.Context, id int) (term.Detail, error) {
	var t term.Detail
	err := repo.db.WithContext(ctx).
		Preload("Classes", orderByCreated).
		Preload("ClassBookings", orderByCreated).
		Preload("ClassBookings.Student").
		Preload("Waitlists", orderByCreated).
		Preload("Waitlists.Student").
		Preload("Trials", orderByCreated).
		Preload("Trials.Student").
		First(&t, id).Error
	if err != nil {
		return t, trapNotFound(err, term.ErrNotFound, "selecting term")
	}
	return t, nil
}

func orderByCreated(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC")
}

func orderByDate(db *gorm.DB) *gorm.DB {
	return db.Order("date ASC")
}
