package gormrepos

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core"
)

// trapNotFound maps gorm.ErrRecordNotFound to notFound and wraps every other error with msg.
func trapNotFound(err error, notFound error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// store is the GORM implementation of core.Store.
type store[T any] struct {
	db       *gorm.DB
	notFound error
	ownerCol string // column matched against the ownerID, if the resource is owned
	order    string
	preloads []string
}

var _ core.Store[struct{}] = (*store[struct{}])(nil) // interface compliance check

type storeOption func(*storeOpts)

type storeOpts struct {
	ownerCol string
	order    string
	preloads []string
}

func ownedBy(col string) storeOption {
	return func(o *storeOpts) { o.ownerCol = col }
}

func orderBy(order string) storeOption {
	return func(o *storeOpts) { o.order = order }
}

func preload(relations ...string) storeOption {
	return func(o *storeOpts) { o.preloads = append(o.preloads, relations...) }
}

func newStore[T any](db *gorm.DB, notFound error, opts ...storeOption) *store[T] {
	o := storeOpts{order: "created_at DESC"}
	for _, opt := range opts {
		opt(&o)
	}
	return &store[T]{db: db, notFound: notFound, ownerCol: o.ownerCol, order: o.order, preloads: o.preloads}
}

func (s store[T]) where(ctx context.Context, ownerID string) *gorm.DB {
	q := s.db.WithContext(ctx)
	if ownerID != "" && s.ownerCol != "" {
		q = q.Where(s.ownerCol+" = ?", ownerID)
	}
	return q
}

func (s store[T]) query(ctx context.Context, ownerID string) *gorm.DB {
	q := s.where(ctx, ownerID)
	for _, rel := range s.preloads {
		q = q.Preload(rel)
	}
	return q
}

// reload fetches obj again by its primary key, with the relations of the store.
func (s store[T]) reload(ctx context.Context, obj T) (T, error) {
	out := obj
	if err := s.query(ctx, "").First(&out).Error; err != nil {
		return obj, trapNotFound(err, s.notFound, "reloading")
	}
	return out, nil
}

func (s store[T]) Create(ctx context.Context, obj T) (T, error) {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&obj).Error; err != nil {
		return obj, errors.Wrap(err, "inserting")
	}
	return s.reload(ctx, obj)
}

func (s store[T]) Query(ctx context.Context, ownerID string) ([]T, error) {
	return s.find(s.query(ctx, ownerID))
}

func (s store[T]) find(q *gorm.DB) ([]T, error) {
	objs := make([]T, 0)
	if err := q.Order(s.order).Find(&objs).Error; err != nil {
		return nil, errors.Wrap(err, "selecting")
	}
	return objs, nil
}

func (s store[T]) Get(ctx context.Context, ownerID string, id int) (T, error) {
	var obj T
	if err := s.query(ctx, ownerID).First(&obj, id).Error; err != nil {
		return obj, trapNotFound(err, s.notFound, "selecting")
	}
	return obj, nil
}

// page counts the rows matched by q, then loads the requested page of them into dest.
// scope adds the preloads & ordering of the page query.
func page(q *gorm.DB, pq core.PageQuery, dest interface{}, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	q = q.Session(&gorm.Session{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, errors.Wrap(err, "counting")
	}
	if err := scope(q).Offset(pq.Offset()).Limit(pq.Limit).Find(dest).Error; err != nil {
		return 0, errors.Wrap(err, "selecting")
	}
	return total, nil
}

func (s store[T]) Update(ctx context.Context, obj T) (T, error) {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&obj).Error; err != nil {
		return obj, errors.Wrap(err, "updating")
	}
	return s.reload(ctx, obj)
}

func (s store[T]) Delete(ctx context.Context, ownerID string, id int) error {
	res := s.where(ctx, ownerID).Delete(new(T), id)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deleting")
	}
	if res.RowsAffected == 0 {
		return s.notFound
	}
	return nil
}
