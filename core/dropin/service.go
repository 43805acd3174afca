package dropin

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/class"
)

var (
	ErrClassNotFound   = core.NewNotFoundError("Drop-in class")
	ErrLessonNotFound  = core.NewNotFoundError("Drop-in lesson")
	ErrBookingNotFound = core.NewNotFoundError("Drop-in booking")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

// ClassRepository loads drop-in classes with their location & teacher.
type ClassRepository = core.Store[Class]

type LessonRepository interface {
	core.Store[Lesson]
	QueryByClass(ctx context.Context, dropInClassID int) ([]Lesson, error)
}

type BookingRepository interface {
	core.Store[Booking]
	QueryByClass(ctx context.Context, userID string, dropInClassID int) ([]Booking, error)
}

// ClassService scopes drop-in classes to their creator.
type ClassService struct {
	repo ClassRepository
}

func NewClassService(repo ClassRepository) *ClassService {
	return &ClassService{repo: repo}
}

func (svc *ClassService) Create(ctx context.Context, userID string, ns class.NewSchedule) (Class, error) {
	c, err := svc.repo.Create(ctx, Class{UserID: userID, Schedule: ns.Schedule(class.TypeDropIn)})
	return c, errors.Wrap(err, "creating drop-in class")
}

func (svc *ClassService) Query(ctx context.Context, userID string) ([]Class, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *ClassService) Get(ctx context.Context, userID string, id int) (Class, error) {
	return svc.repo.Get(ctx, userID, id)
}

func (svc *ClassService) Update(ctx context.Context, userID string, id int, u UpdateClass) (Class, error) {
	c, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return Class{}, err
	}
	u.Apply(&c)
	c, err = svc.repo.Update(ctx, c)
	return c, errors.Wrap(err, "updating drop-in class")
}

func (svc *ClassService) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}

// LessonService is not scoped.
type LessonService struct {
	repo LessonRepository
}

func NewLessonService(repo LessonRepository) *LessonService {
	return &LessonService{repo: repo}
}

func (svc *LessonService) Create(ctx context.Context, nl NewLesson) (Lesson, error) {
	l, err := svc.repo.Create(ctx, nl.Lesson())
	return l, errors.Wrap(err, "creating drop-in lesson")
}

func (svc *LessonService) Query(ctx context.Context) ([]Lesson, error) {
	return svc.repo.Query(ctx, "")
}

func (svc *LessonService) QueryByClass(ctx context.Context, dropInClassID int) ([]Lesson, error) {
	return svc.repo.QueryByClass(ctx, dropInClassID)
}

func (svc *LessonService) Get(ctx context.Context, id int) (Lesson, error) {
	return svc.repo.Get(ctx, "", id)
}

func (svc *LessonService) Update(ctx context.Context, id int, u UpdateLesson) (Lesson, error) {
	l, err := svc.repo.Get(ctx, "", id)
	if err != nil {
		return Lesson{}, err
	}
	u.Apply(&l)
	l, err = svc.repo.Update(ctx, l)
	return l, errors.Wrap(err, "updating drop-in lesson")
}

func (svc *LessonService) Delete(ctx context.Context, id int) error {
	return svc.repo.Delete(ctx, "", id)
}

// BookingService scopes drop-in bookings to their creator, listing by class included.
type BookingService struct {
	repo BookingRepository
}

func NewBookingService(repo BookingRepository) *BookingService {
	return &BookingService{repo: repo}
}

func (svc *BookingService) Create(ctx context.Context, userID string, nb NewBooking) (Booking, error) {
	b, err := svc.repo.Create(ctx, nb.Booking(userID))
	return b, errors.Wrap(err, "creating drop-in booking")
}

func (svc *BookingService) Query(ctx context.Context, userID string) ([]Booking, error) {
	return svc.repo.Query(ctx, userID)
}

func (svc *BookingService) QueryByClass(ctx context.Context, userID string, dropInClassID int) ([]Booking, error) {
	return svc.repo.QueryByClass(ctx, userID, dropInClassID)
}

func (svc *BookingService) Get(ctx context.Context, userID string, id int) (Booking, error) {
	return svc.repo.Get(ctx, userID, id)
}

func (svc *BookingService) Update(ctx context.Context, userID string, id int, u UpdateBooking) (Booking, error) {
	b, err := svc.repo.Get(ctx, userID, id)
	if err != nil {
		return Booking{}, err
	}
	u.Apply(&b)
	b, err = svc.repo.Update(ctx, b)
	return b, errors.Wrap(err, "updating drop-in booking")
}

func (svc *BookingService) Delete(ctx context.Context, userID string, id int) error {
	return svc.repo.Delete(ctx, userID, id)
}
