package gormrepos

import (
	"context"

	"gorm.io/gorm"

	"github.com/arisha-glich/class-gecko-backend/core/dropin"
)

var _ dropin.ClassRepository = (*store[dropin.Class])(nil) // interface compliance check

func NewDropInClassRepository(db *gorm.DB) dropin.ClassRepository {
	return newStore[dropin.Class](db, dropin.ErrClassNotFound, ownedBy("user_id"), preload("Location", "Teacher"))
}

type dropInLessonRepository struct {
	*store[dropin.Lesson]
}

var _ dropin.LessonRepository = (*dropInLessonRepository)(nil) // interface compliance check

func NewDropInLessonRepository(db *gorm.DB) *dropInLessonRepository {
	return &dropInLessonRepository{
		store: newStore[dropin.Lesson](db, dropin.ErrLessonNotFound, orderBy("date ASC"), preload("DropInClass")),
	}
}

func (repo dropInLessonRepository) QueryByClass(ctx context.Context, dropInClassID int) ([]dropin.Lesson, error) {
	return repo.find(repo.query(ctx, "").Where("drop_in_class_id = ?", dropInClassID))
}

type dropInBookingRepository struct {
	*store[dropin.Booking]
}

var _ dropin.BookingRepository = (*dropInBookingRepository)(nil) // interface compliance check

func NewDropInBookingRepository(db *gorm.DB) *dropInBookingRepository {
	return &dropInBookingRepository{
		store: newStore[dropin.Booking](db, dropin.ErrBookingNotFound, ownedBy("user_id"), preload("DropInClass", "Student")),
	}
}

func (repo dropInBookingRepository) QueryByClass(ctx context.Context, userID string, dropInClassID int) ([]dropin.Booking, error) {
	return repo.find(repo.query(ctx, userID).Where("drop_in_class_id = ?", dropInClassID))
}
