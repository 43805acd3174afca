package core

import "context"

// Store is the CRUD repository of the simple catalog resources.
// An empty ownerID disables the ownership filter.
type Store[T any] interface {
	Create(ctx context.Context, obj T) (T, error)
	Query(ctx context.Context, ownerID string) ([]T, error)
	Get(ctx context.Context, ownerID string, id int) (T, error)
	Update(ctx context.Context, obj T) (T, error)
	Delete(ctx context.Context, ownerID string, id int) error
}
