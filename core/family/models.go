package family

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

const (
	StatusActive = "ACTIVE"
	statusAll    = "ALL"

	ChildEnrolled    = "Enrolled"
	ChildNotEnrolled = "Not Enrolled"

	noLinkedBusiness = "N/A"
)

// Family is a household of an organization. UserID is the family portal account.
type Family struct {
	ID                        int               `json:"id" gorm:"primaryKey"`
	OrganizationID            string            `json:"organizationId" gorm:"type:varchar(36);index;not null"`
	UserID                    string            `json:"userId" gorm:"type:varchar(36);not null"`
	User                      *user.User        `json:"-" gorm:"foreignKey:UserID"`
	FamilyName                string            `json:"familyName"`
	PrimaryParentFirstName    string            `json:"primaryParentFirstName" gorm:"not null"`
	PrimaryParentLastName     string            `json:"primaryParentLastName" gorm:"not null"`
	PrimaryParentEmail        string            `json:"primaryParentEmail" gorm:"not null"`
	PrimaryParentPhoneCountry null.String       `json:"primaryParentPhoneCountry"`
	PrimaryParentPhoneNumber  null.String       `json:"primaryParentPhoneNumber"`
	SendPortalInvitation      bool              `json:"sendPortalInvitation" gorm:"not null;default:false"`
	Status                    null.String       `json:"status"`
	Notes                     null.String       `json:"notes"`
	Students                  []student.Student `json:"students" gorm:"foreignKey:FamilyID"`
	CreatedAt                 time.Time         `json:"createdAt"`
	UpdatedAt                 time.Time         `json:"updatedAt"`
}

// Phone is the primary parent phone with its country code, else the account phone.
func (f Family) Phone() string {
	if f.PrimaryParentPhoneNumber.Valid && f.PrimaryParentPhoneNumber.String != "" {
		return core.CleanString(f.PrimaryParentPhoneCountry.String + " " + f.PrimaryParentPhoneNumber.String)
	}
	if f.User != nil {
		return f.User.PhoneNo.String
	}
	return ""
}

func (f Family) DisplayName() string {
	if f.FamilyName != "" {
		return f.FamilyName
	}
	return core.CleanString(f.PrimaryParentFirstName + " " + f.PrimaryParentLastName)
}

func (f Family) StatusOrDefault() string {
	if f.Status.Valid && f.Status.String != "" {
		return f.Status.String
	}
	return StatusActive
}

type NewFamily struct {
	FirstName            string  `json:"firstName" validate:"required"`
	LastName             string  `json:"lastName" validate:"required"`
	Email                string  `json:"email" validate:"required,email"`
	Password             string  `json:"password" validate:"required,pwdminlen"`
	PhoneCountryCode     *string `json:"phoneCountryCode"`
	PhoneNumber          *string `json:"phoneNumber"`
	SendPortalInvitation *bool   `json:"sendPortalInvitation"`
	FamilyName           *string `json:"familyName"`
}

func (nf *NewFamily) Clean() {
	nf.FirstName = core.CleanString(nf.FirstName)
	nf.LastName = core.CleanString(nf.LastName)
	nf.Email = core.CleanString(nf.Email, true /* lower */)
}

type AddressInput struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Zipcode *string `json:"zipcode"`
	Country *string `json:"country"`
}

func (in AddressInput) apply(addr *user.Address) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = core.CleanString(*src)
		}
	}
	set(&addr.Street, in.Street)
	set(&addr.City, in.City)
	set(&addr.State, in.State)
	set(&addr.Zipcode, in.Zipcode)
	set(&addr.Country, in.Country)
}

type EmergencyContactInput struct {
	Name           *string `json:"name"`
	Relation       *string `json:"relation"`
	PhoneNo        *string `json:"phoneNo"`
	Email          *string `json:"email" validate:"omitempty,email"`
	UseInEmergency *bool   `json:"useInEmergency"`
}

func (in EmergencyContactInput) apply(ci *user.ContactInfo) {
	ci.Relation = null.StringFromPtr(in.Relation)
	ci.PhoneNo = null.StringFromPtr(in.PhoneNo)
	ci.Email = null.StringFromPtr(in.Email)
	ci.UseInEmergency = true
	if in.UseInEmergency != nil {
		ci.UseInEmergency = *in.UseInEmergency
	}
}

type UpdateFamily struct {
	FirstName        *string                `json:"firstName" validate:"omitempty,min=1"`
	LastName         *string                `json:"lastName" validate:"omitempty,min=1"`
	Email            *string                `json:"email" validate:"omitempty,email"`
	PhoneCountryCode *string                `json:"phoneCountryCode"`
	PhoneNumber      *string                `json:"phoneNumber"`
	FamilyName       *string                `json:"familyName"`
	Status           *string                `json:"status"`
	Notes            *string                `json:"notes"`
	Address          *AddressInput          `json:"address"`
	EmergencyContact *EmergencyContactInput `json:"emergencyContact"`
}

type UpdateStatus struct {
	Status string `json:"status" validate:"required"`
}

type QueryFilter struct {
	Search   string `query:"search"`
	Status   string `query:"status"`
	Ordering []core.DBOrdering
}

var orderableFields = map[string]bool{
	"familyName":            true,
	"primaryParentLastName": true,
	"status":                true,
	"createdAt":             true,
}

// Clean drops the "no filter" status values & the orderings on unknown fields.
func (f *QueryFilter) Clean() {
	f.Search = core.CleanString(f.Search)
	f.Status = core.CleanString(f.Status)
	if f.Status == statusAll {
		f.Status = ""
	}
	ords := f.Ordering[:0]
	for _, ord := range f.Ordering {
		if orderableFields[ord.Field] {
			ords = append(ords, ord)
		}
	}
	f.Ordering = ords
}

type Created struct {
	Family Family    `json:"family"`
	User   user.User `json:"user"`
}

type ListItem struct {
	ID         int       `json:"id"`
	FamilyName string    `json:"familyName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Students   int       `json:"students"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Page struct {
	Data       []ListItem      `json:"data"`
	Pagination core.Pagination `json:"pagination"`
}

type ContactInfo struct {
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	LinkedBusiness string `json:"linkedBusiness"`
}

type EmergencyContact struct {
	Name     string      `json:"name"`
	Relation null.String `json:"relation"`
	Phone    null.String `json:"phone"`
	Email    null.String `json:"email"`
}

type Account struct {
	ID      string      `json:"id"`
	Email   string      `json:"email"`
	Name    null.String `json:"name"`
	PhoneNo null.String `json:"phoneNo"`
}

type Detail struct {
	ID                        int               `json:"id"`
	FamilyName                string            `json:"familyName"`
	PrimaryParentFirstName    string            `json:"primaryParentFirstName"`
	PrimaryParentLastName     string            `json:"primaryParentLastName"`
	PrimaryParentEmail        string            `json:"primaryParentEmail"`
	PrimaryParentPhoneCountry null.String       `json:"primaryParentPhoneCountry"`
	PrimaryParentPhoneNumber  null.String       `json:"primaryParentPhoneNumber"`
	Status                    null.String       `json:"status"`
	Notes                     null.String       `json:"notes"`
	MemberSince               time.Time         `json:"memberSince"`
	ContactInfo               ContactInfo       `json:"contactInfo"`
	Address                   *user.Address     `json:"address"`
	EmergencyContact          *EmergencyContact `json:"emergencyContact"`
	User                      Account           `json:"user"`
}

type EnrolledClass struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	ClassType null.String `json:"classType"`
}

type Child struct {
	ID              int             `json:"id"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	DateOfBirth     null.Time       `json:"dateOfBirth"`
	Age             null.Int        `json:"age"`
	OverallStatus   string          `json:"overallStatus"`
	EnrolledClasses []EnrolledClass `json:"enrolledClasses"`
}
