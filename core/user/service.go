package user

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var (
	ErrNotFound         = core.NewNotFoundError("User")
	ErrSessionNotFound  = errors.New("session not found")
	ErrEmailAlreadyUsed = core.NewConflictError("Email already used")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

type Repository interface {
	CreateUser(ctx context.Context, usr User) (User, error)
	GetUserByID(ctx context.Context, id string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, usr User) (User, error)
	CreateSession(ctx context.Context, sess Session) (Session, error)
	GetSessionByToken(ctx context.Context, token string) (Session, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate returns the owner of a live session token.
func (svc *Service) Authenticate(ctx context.Context, token string) (User, error) {
	if token == "" {
		return User{}, ErrSessionNotFound
	}
	sess, err := svc.repo.GetSessionByToken(ctx, token)
	if err != nil {
		return User{}, err
	}
	if sess.Expired(nowFunc()) {
		return User{}, ErrSessionNotFound
	}
	usr, err := svc.repo.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrSessionNotFound
		}
		return User{}, errors.Wrap(err, "finding session user")
	}
	return usr, nil
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

// AddUser creates a user, or updates the name, role & password of the user owning nu.Email.
func (svc *Service) AddUser(ctx context.Context, nu NewUser) (User, error) {
	nu.Clean()
	usr, err := svc.repo.GetUserByEmail(ctx, nu.Email)
	creating := errors.Cause(err) == ErrNotFound
	if err != nil && !creating {
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if creating {
		usr = User{ID: uuid.New().String(), Email: nu.Email, EmailVerified: true}
	}
	usr.Name.SetValid(nu.Name)
	usr.Role = nu.Role
	usr.Banned = false
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, errors.Wrap(err, "hashing password")
	}
	if creating {
		return svc.repo.CreateUser(ctx, usr)
	}
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) ResetPassword(ctx context.Context, email, pwd string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := usr.SetPassword(pwd); err != nil {
		return errors.Wrap(err, "hashing password")
	}
	_, err = svc.repo.UpdateUser(ctx, usr)
	return err
}

// CreateSession mints a session for the user owning email, valid for ttl.
func (svc *Service) CreateSession(ctx context.Context, email string, ttl time.Duration) (Session, error) {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	return svc.repo.CreateSession(ctx, Session{
		Token:     uuid.New().String(),
		UserID:    usr.ID,
		ExpiresAt: nowFunc().Add(ttl),
	})
}
