// Package inmemdb keeps users & sessions in memory, for tests & tooling that run without a database.
package inmemdb

import (
	"context"
	"sync"
	"time"

	"github.com/arisha-glich/class-gecko-backend/core/user"
)

type UserRepository struct {
	mutex    sync.RWMutex
	users    map[string]*user.User    // {id: user}
	sessions map[string]*user.Session // {token: session}
	pkCount  int
}

var _ user.Repository = (*UserRepository)(nil) // interface compliance check

func NewUserRepository() *UserRepository {
	return &UserRepository{
		users:    make(map[string]*user.User),
		sessions: make(map[string]*user.Session),
	}
}

func (repo *UserRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, u := range repo.users {
		if u.Email == usr.Email {
			return user.User{}, user.ErrEmailAlreadyUsed
		}
	}
	now := time.Now().UTC()
	usr.CreatedAt, usr.UpdatedAt = now, now
	repo.users[usr.ID] = &usr
	return usr, nil
}

func (repo *UserRepository) GetUserByID(_ context.Context, id string) (user.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	if usr, ok := repo.users[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	for _, usr := range repo.users {
		if usr.Email == email {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := repo.GetUserByEmail(ctx, email)
	if err == user.ErrNotFound {
		return false, nil
	}
	return err == nil, err
}

func (repo *UserRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	if _, ok := repo.users[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	usr.UpdatedAt = time.Now().UTC()
	repo.users[usr.ID] = &usr
	return usr, nil
}

func (repo *UserRepository) CreateSession(_ context.Context, sess user.Session) (user.Session, error) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	repo.pkCount++
	sess.ID = repo.pkCount
	now := time.Now().UTC()
	sess.CreatedAt, sess.UpdatedAt = now, now
	repo.sessions[sess.Token] = &sess
	return sess, nil
}

func (repo *UserRepository) GetSessionByToken(_ context.Context, token string) (user.Session, error) {
	repo.mutex.RLock()
	defer repo.mutex.RUnlock()

	if sess, ok := repo.sessions[token]; ok {
		return *sess, nil
	}
	return user.Session{}, user.ErrSessionNotFound
}

// DeleteUsersByID drops users & their sessions.
func (repo *UserRepository) DeleteUsersByID(ids ...string) {
	repo.mutex.Lock()
	defer repo.mutex.Unlock()

	for _, id := range ids {
		delete(repo.users, id)
		for token, sess := range repo.sessions {
			if sess.UserID == id {
				delete(repo.sessions, token)
			}
		}
	}
}
