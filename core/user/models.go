package user

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/arisha-glich/class-gecko-backend/core"
)

// Roles
const (
	RoleAdmin    = "ADMIN"    // platform staff
	RoleBusiness = "BUSINESS" // organization owner
	RoleFamily   = "FAMILY"   // family portal account
)

var AllRoles = []string{RoleAdmin, RoleBusiness, RoleFamily}

type User struct {
	ID                     string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name                   null.String `json:"name"`
	Email                  string      `json:"email" gorm:"uniqueIndex;not null"`
	EmailVerified          bool        `json:"emailVerified" gorm:"not null;default:false"`
	PasswordHash           []byte      `json:"-"`
	Role                   string      `json:"role" gorm:"not null;default:FAMILY"`
	Banned                 bool        `json:"banned" gorm:"not null;default:false"`
	PhoneNo                null.String `json:"phoneNo"`
	Dob                    null.Time   `json:"dob"`
	Gender                 null.String `json:"gender"`
	SendInvitationOnSignup bool        `json:"sendInvitationOnSignup" gorm:"not null;default:false"`
	OnboardingStage        null.String `json:"onboardingStage"`
	Meta                   null.JSON   `json:"meta" gorm:"type:jsonb"`
	AddressID              *int        `json:"addressId"`
	Address                *Address    `json:"address,omitempty" gorm:"foreignKey:AddressID"`
	CreatedAt              time.Time   `json:"createdAt"`
	UpdatedAt              time.Time   `json:"updatedAt"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool    { return u.Role == RoleAdmin }
func (u *User) IsBusiness() bool { return u.Role == RoleBusiness }

// Session is a login session issued by the auth service. Only its token is read here.
type Session struct {
	ID        int         `json:"id" gorm:"primaryKey"`
	Token     string      `json:"token" gorm:"uniqueIndex;not null"`
	UserID    string      `json:"userId" gorm:"index;not null"`
	ExpiresAt time.Time   `json:"expiresAt" gorm:"not null"`
	IPAddress null.String `json:"ipAddress"`
	UserAgent null.String `json:"userAgent"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

type Address struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Street    string    `json:"street"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Zipcode   string    `json:"zipcode"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// String formats the address as "street, city, state zipcode, country".
func (a Address) String() string {
	return a.Street + ", " + a.City + ", " + a.State + " " + a.Zipcode + ", " + a.Country
}

// ParseAddress splits a comma separated "street, city, state, zipcode, country" line.
// Missing parts are left empty, except the country which defaults to US.
func ParseAddress(line string) Address {
	parts := strings.Split(line, ",")
	get := func(i int) string {
		if i < len(parts) {
			return core.CleanString(parts[i])
		}
		return ""
	}
	addr := Address{Street: get(0), City: get(1), State: get(2), Zipcode: get(3), Country: get(4)}
	if addr.Country == "" {
		addr.Country = "US"
	}
	return addr
}

// ContactInfo holds the extra contacts of a user. The one flagged UseInEmergency is the emergency contact.
type ContactInfo struct {
	ID             int         `json:"id" gorm:"primaryKey"`
	UserID         string      `json:"userId" gorm:"index;not null"`
	Relation       null.String `json:"relation"`
	PhoneNo        null.String `json:"phoneNo"`
	Email          null.String `json:"email"`
	UseInEmergency bool        `json:"useInEmergency" gorm:"not null;default:false"`
	CreatedAt      time.Time   `json:"-"`
	UpdatedAt      time.Time   `json:"-"`
}

// NewUser contains information needed to create a new User from the admin CLI.
type NewUser struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwdminlen,pwdnospace"`
	Role     string `json:"role" validate:"required,oneof=ADMIN BUSINESS FAMILY"`
}

func (nu *NewUser) Clean() {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
}
