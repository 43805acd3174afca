package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/enrollment"
	"github.com/arisha-glich/class-gecko-backend/core/lesson"
	"github.com/arisha-glich/class-gecko-backend/core/trial"
	"github.com/arisha-glich/class-gecko-backend/core/waitlist"
)

var classRelations = []string{"Location", "Teacher", "Term"}

type classRepository struct {
	db *gorm.DB
}

var _ class.Repository = (*classRepository)(nil) // interface compliance check

func NewClassRepository(db *gorm.DB) *classRepository {
	return &classRepository{db: db}
}

func (repo classRepository) withRelations(ctx context.Context) *gorm.DB {
	q := repo.db.WithContext(ctx)
	for _, rel := range classRelations {
		q = q.Preload(rel)
	}
	return q
}

func (repo classRepository) CreateClass(ctx context.Context, c class.Class) (class.Class, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(&c).Error; err != nil {
		return c, errors.Wrap(err, "inserting class")
	}
	return repo.GetClass(ctx, c.ID)
}

type classCount struct {
	ClassID int
	N       int64
}

// countByClass counts the rows of table grouped by their class_id.
func (repo classRepository) countByClass(ctx context.Context, table string, ids []int) (map[int]int64, error) {
	var rows []classCount
	err := repo.db.WithContext(ctx).Table(table).
		Select("class_id, COUNT(*) AS n").
		Where("class_id IN ?", ids).
		Group("class_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "counting %s", table)
	}
	counts := make(map[int]int64, len(rows))
	for _, r := range rows {
		counts[r.ClassID] = r.N
	}
	return counts, nil
}

func (repo classRepository) QueryClasses(ctx context.Context, termID *int) ([]class.ListItem, error) {
	q := repo.withRelations(ctx)
	if termID != nil {
		q = q.Where("term_id = ?", *termID)
	}
	var classes []class.Class
	if err := q.Order("created_at DESC").Find(&classes).Error; err != nil {
		return nil, errors.Wrap(err, "selecting classes")
	}

	items := make([]class.ListItem, 0, len(classes))
	if len(classes) == 0 {
		return items, nil
	}
	ids := make([]int, 0, len(classes))
	for _, c := range classes {
		ids = append(ids, c.ID)
	}
	lessons, err := repo.countByClass(ctx, "lessons", ids)
	if err != nil {
		return nil, err
	}
	bookings, err := repo.countByClass(ctx, "class_bookings", ids)
	if err != nil {
		return nil, err
	}
	trials, err := repo.countByClass(ctx, "trials", ids)
	if err != nil {
		return nil, err
	}
	for _, c := range classes {
		items = append(items, class.ListItem{
			Class: c,
			Count: class.Counts{Lessons: lessons[c.ID], ClassBookings: bookings[c.ID], Trials: trials[c.ID]},
		})
	}
	return items, nil
}

func (repo classRepository) GetClass(ctx context.Context, id int) (class.Class, error) {
	var c class.Class
	if err := repo.withRelations(ctx).First(&c, id).Error; err != nil {
		return c, trapNotFound(err, class.ErrNotFound, "selecting class")
	}
	return c, nil
}

func (repo classRepository) GetClassDetail(ctx context.Context, id int) (class.Detail, error) {
	var d class.Detail
	err := repo.withRelations(ctx).
		Preload("Lessons", orderByDate).
		Preload("ClassBookings", orderByCreated).
		Preload("ClassBookings.Student").
		Preload("Trials", orderByCreated).
		Preload("Trials.Student").
		First(&d, id).Error
	if err != nil {
		return d, trapNotFound(err, class.ErrNotFound, "selecting class")
	}
	return d, nil
}

func (repo classRepository) UpdateClass(ctx context.Context, c class.Class) (class.Class, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Save(&c).Error; err != nil {
		return c, errors.Wrap(err, "updating class")
	}
	return repo.GetClass(ctx, c.ID)
}

func (repo classRepository) DeleteClass(ctx context.Context, id int) error {
	res := repo.db.WithContext(ctx).Delete(&class.Class{}, id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting class")
	}
	if res.RowsAffected == 0 {
		return class.ErrNotFound
	}
	return nil
}

// The records hanging off a class are stores with a by-class listing.

type lessonRepository struct {
	*store[class.Lesson]
}

var _ lesson.Repository = (*lessonRepository)(nil) // interface compliance check

func NewLessonRepository(db *gorm.DB) *lessonRepository {
	return &lessonRepository{store: newStore[class.Lesson](db, lesson.ErrNotFound, orderBy("date ASC"), preload("Class"))}
}

func (repo lessonRepository) QueryByClass(ctx context.Context, classID int) ([]class.Lesson, error) {
	return repo.find(repo.query(ctx, "").Where("class_id = ?", classID))
}

type enrollmentRepository struct {
	*store[class.Booking]
}

var _ enrollment.Repository = (*enrollmentRepository)(nil) // interface compliance check

func NewEnrollmentRepository(db *gorm.DB) *enrollmentRepository {
	return &enrollmentRepository{
		store: newStore[class.Booking](db, enrollment.ErrNotFound, ownedBy("user_id"), preload("Class", "Term", "Student")),
	}
}

func (repo enrollmentRepository) QueryByClass(ctx context.Context, classID int) ([]class.Booking, error) {
	return repo.find(repo.query(ctx, "").Where("class_id = ?", classID))
}

type trialRepository struct {
	*store[class.Trial]
}

var _ trial.Repository = (*trialRepository)(nil) // interface compliance check

func NewTrialRepository(db *gorm.DB) *trialRepository {
	return &trialRepository{store: newStore[class.Trial](db, trial.ErrNotFound, ownedBy("user_id"), preload("Class", "Student"))}
}

func (repo trialRepository) QueryByClass(ctx context.Context, classID int) ([]class.Trial, error) {
	return repo.find(repo.query(ctx, "").Where("class_id = ?", classID))
}

type waitlistRepository struct {
	*store[class.Waitlist]
}

var _ waitlist.Repository = (*waitlistRepository)(nil) // interface compliance check

func NewWaitlistRepository(db *gorm.DB) *waitlistRepository {
	return &waitlistRepository{store: newStore[class.Waitlist](db, waitlist.ErrNotFound, ownedBy("user_id"), preload("Class", "Student"))}
}

func (repo waitlistRepository) QueryByClass(ctx context.Context, classID int) ([]class.Waitlist, error) {
	return repo.find(repo.query(ctx, "").Where("class_id = ?", classID))
}
