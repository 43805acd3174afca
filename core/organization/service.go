package organization

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

var (
	ErrNotFound     = core.NewNotFoundError("Organization")
	ErrUserNotFound = core.NewNotFoundError("User")

	nowFunc = func() time.Time { return time.Now().UTC() } // mockable
)

type Repository interface {
	GetOrganizationByUserID(ctx context.Context, userID string) (Organization, error)
	// SaveProfile persists usr and org (creating org when it has no ID) atomically.
	SaveProfile(ctx context.Context, usr user.User, org Organization) (Organization, error)
}

type UserGetter interface {
	GetUserByID(ctx context.Context, id string) (user.User, error)
}

type Service struct {
	repo  Repository
	users UserGetter
}

func NewService(repo Repository, users UserGetter) *Service {
	return &Service{repo: repo, users: users}
}

// Get returns nil when userID does not own an organization yet.
func (svc *Service) Get(ctx context.Context, userID string) (*Settings, error) {
	org, err := svc.repo.GetOrganizationByUserID(ctx, userID)
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return org.Settings(), nil
}

// UpdateProfile completes the onboarding form: it upserts the organization of userID and
// records the phone number & expected student count on the user.
func (svc *Service) UpdateProfile(ctx context.Context, userID string, up UpdateProfile) (Profile, error) {
	up.Clean()
	usr, err := svc.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, errors.Wrap(err, "finding user")
	}

	org, err := svc.repo.GetOrganizationByUserID(ctx, userID)
	if err != nil {
		if errors.Cause(err) != ErrNotFound {
			return Profile{}, errors.Wrap(err, "finding organization")
		}
		org = New(userID, up.OrganizationName, up.Industry, nowFunc())
	}
	org.CompanyName = up.OrganizationName
	org.Industry = up.Industry

	meta, err := setMetaKey(usr.Meta.JSON, "students", *up.Students)
	if err != nil {
		return Profile{}, errors.Wrap(err, "updating user meta")
	}
	usr.Meta.SetValid(meta)
	usr.PhoneNo.SetValid(up.PhoneNo)
	usr.OnboardingStage.SetValid(OnboardingStageUpdated)

	org, err = svc.repo.SaveProfile(ctx, usr, org)
	if err != nil {
		return Profile{}, errors.Wrap(err, "saving profile")
	}
	return Profile{
		User: ProfileUser{
			ID:              usr.ID,
			PhoneNo:         usr.PhoneNo,
			OnboardingStage: usr.OnboardingStage,
			Meta:            usr.Meta,
		},
		Organization: ProfileOrganization{ID: org.ID, CompanyName: org.CompanyName, Industry: org.Industry},
	}, nil
}

// setMetaKey sets key in a JSON object, discarding raw when it is not an object.
func setMetaKey(raw []byte, key string, val interface{}) ([]byte, error) {
	obj := make(map[string]interface{})
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
			obj = make(map[string]interface{})
		}
	}
	obj[key] = val
	return json.Marshal(obj)
}
