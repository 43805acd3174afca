package gormrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/arisha-glich/class-gecko-backend/core/user"
)

type userRepository struct {
	db *gorm.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *gorm.DB) *userRepository {
	return &userRepository{db: db}
}

// trapDuplicateEmail maps unique violations of users.email to user.ErrEmailAlreadyUsed.
func trapDuplicateEmail(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return user.ErrEmailAlreadyUsed
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(&usr).Error; err != nil {
		return user.User{}, trapDuplicateEmail(err, "inserting user")
	}
	return repo.GetUserByID(ctx, usr.ID)
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var usr user.User
	if err := repo.db.WithContext(ctx).Preload("Address").Where("id = ?", id).First(&usr).Error; err != nil {
		return usr, trapNotFound(err, user.ErrNotFound, "selecting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var usr user.User
	if err := repo.db.WithContext(ctx).Preload("Address").Where("email = ?", email).First(&usr).Error; err != nil {
		return usr, trapNotFound(err, user.ErrNotFound, "selecting user")
	}
	return usr, nil
}

func (repo userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := repo.db.WithContext(ctx).Model(&user.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "counting users")
	}
	return n > 0, nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Save(&usr).Error; err != nil {
		return user.User{}, trapDuplicateEmail(err, "updating user")
	}
	return repo.GetUserByID(ctx, usr.ID)
}

func (repo userRepository) CreateSession(ctx context.Context, sess user.Session) (user.Session, error) {
	if err := repo.db.WithContext(ctx).Create(&sess).Error; err != nil {
		return sess, errors.Wrap(err, "inserting session")
	}
	return sess, nil
}

func (repo userRepository) GetSessionByToken(ctx context.Context, token string) (user.Session, error) {
	var sess user.Session
	if err := repo.db.WithContext(ctx).Where("token = ?", token).First(&sess).Error; err != nil {
		return sess, trapNotFound(err, user.ErrSessionNotFound, "selecting session")
	}
	return sess, nil
}

// saveOwner stores usr and its loaded address on tx.
func saveOwner(tx *gorm.DB, usr *user.User) error {
	if usr.Address != nil {
		if err := tx.Save(usr.Address).Error; err != nil {
			return errors.Wrap(err, "saving address")
		}
		usr.AddressID = &usr.Address.ID
	}
	if err := tx.Omit(clause.Associations).Save(usr).Error; err != nil {
		return trapDuplicateEmail(err, "saving user")
	}
	return nil
}
