package organization

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

// OnboardingStageUpdated is set on the owner once the profile form is submitted.
const OnboardingStageUpdated = "organization-updated"

// Organization is the business profile of a BUSINESS user; a user owns at most one.
type Organization struct {
	ID                         int         `json:"id" gorm:"primaryKey"`
	UserID                     string      `json:"userId" gorm:"type:varchar(36);uniqueIndex;not null"`
	User                       *user.User  `json:"-" gorm:"foreignKey:UserID"`
	CompanyName                string      `json:"companyName" gorm:"not null"`
	Address                    null.String `json:"address"`
	ContactEmail               null.String `json:"contactEmail"`
	ContactPhone               null.String `json:"contactPhone"`
	Website                    null.String `json:"website"`
	Industry                   string      `json:"industry" gorm:"not null"`
	Language                   string      `json:"language" gorm:"not null"`
	Currency                   string      `json:"currency" gorm:"not null"`
	TimeZone                   string      `json:"timeZone" gorm:"not null"`
	WebsiteTheme               string      `json:"websiteTheme" gorm:"not null"`
	TimeFormat                 string      `json:"timeFormat" gorm:"not null"`
	StartDateForWeeklyCalendar time.Time   `json:"startDateForWeeklyCalendar"`
	AgeCutoffDate              time.Time   `json:"ageCutoffDate"`
	Logo                       null.String `json:"logo"`
	CreatedAt                  time.Time   `json:"createdAt"`
	UpdatedAt                  time.Time   `json:"updatedAt"`
}

func (Organization) TableName() string { return "business_organizations" }

// New returns an organization with the platform defaults.
func New(userID, companyName, industry string, now time.Time) Organization {
	return Organization{
		UserID:                     userID,
		CompanyName:                companyName,
		Industry:                   industry,
		Language:                   "en",
		Currency:                   "USD",
		TimeZone:                   "UTC",
		WebsiteTheme:               "default",
		TimeFormat:                 "24h",
		StartDateForWeeklyCalendar: now,
		AgeCutoffDate:              now,
	}
}

// Settings is what the owner sees of their organization.
type Settings struct {
	ID                         int         `json:"id"`
	CompanyName                string      `json:"companyName"`
	Industry                   string      `json:"industry"`
	Language                   string      `json:"language"`
	Currency                   string      `json:"currency"`
	TimeZone                   string      `json:"timeZone"`
	WebsiteTheme               string      `json:"websiteTheme"`
	TimeFormat                 string      `json:"timeFormat"`
	StartDateForWeeklyCalendar time.Time   `json:"startDateForWeeklyCalendar"`
	AgeCutoffDate              time.Time   `json:"ageCutoffDate"`
	Logo                       null.String `json:"logo"`
}

func (org Organization) Settings() *Settings {
	return &Settings{
		ID:                         org.ID,
		CompanyName:                org.CompanyName,
		Industry:                   org.Industry,
		Language:                   org.Language,
		Currency:                   org.Currency,
		TimeZone:                   org.TimeZone,
		WebsiteTheme:               org.WebsiteTheme,
		TimeFormat:                 org.TimeFormat,
		StartDateForWeeklyCalendar: org.StartDateForWeeklyCalendar,
		AgeCutoffDate:              org.AgeCutoffDate,
		Logo:                       org.Logo,
	}
}

type UpdateProfile struct {
	PhoneNo          string `json:"phoneNo" validate:"required"`
	OrganizationName string `json:"organizationName" validate:"required"`
	Industry         string `json:"industry" validate:"required"`
	Students         *int   `json:"students" validate:"required,min=0"`
}

func (up *UpdateProfile) Clean() {
	up.PhoneNo = core.CleanString(up.PhoneNo)
	up.OrganizationName = core.CleanString(up.OrganizationName)
	up.Industry = core.CleanString(up.Industry)
}

type ProfileUser struct {
	ID              string      `json:"id"`
	PhoneNo         null.String `json:"phoneNo"`
	OnboardingStage null.String `json:"onboardingStage"`
	Meta            null.JSON   `json:"meta"`
}

type ProfileOrganization struct {
	ID          int    `json:"id"`
	CompanyName string `json:"companyName"`
	Industry    string `json:"industry"`
}

type Profile struct {
	User         ProfileUser         `json:"user"`
	Organization ProfileOrganization `json:"organization"`
}
