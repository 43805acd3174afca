package business

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

func status(banned bool) string {
	if banned {
		return StatusInactive
	}
	return StatusActive
}

type ListItem struct {
	ID         int         `json:"id"`
	SchoolName string      `json:"schoolName"`
	Location   null.String `json:"location"`
	Ownership  null.String `json:"ownership"`
	Registered time.Time   `json:"registered"`
	Status     string      `json:"status"`
}

func newListItem(org organization.Organization) ListItem {
	item := ListItem{
		ID:         org.ID,
		SchoolName: org.CompanyName,
		Location:   org.Address,
		Registered: org.CreatedAt,
	}
	if usr := org.User; usr != nil {
		item.Ownership = usr.Name
		item.Status = status(usr.Banned)
		if !item.Location.Valid && usr.Address != nil {
			item.Location.SetValid(usr.Address.City + ", " + usr.Address.State)
		}
	}
	return item
}

type Page struct {
	Data       []ListItem      `json:"data"`
	Pagination core.Pagination `json:"pagination"`
}

// Statistics are computed over the families & terms of the business owner.
type Statistics struct {
	TotalStudents    int64           `json:"totalStudents"`
	ActiveClasses    int64           `json:"activeClasses"`
	TotalRevenue     decimal.Decimal `json:"totalRevenue"`
	EarnedCommission decimal.Decimal `json:"earnedCommission"`
}

type ContactInfo struct {
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Address null.String `json:"address"`
	Website null.String `json:"website"`
}

type Owner struct {
	Name    null.String `json:"name"`
	Email   string      `json:"email"`
	Phone   null.String `json:"phone"`
	Address null.String `json:"address"`
}

type CommissionSummary struct {
	CommissionType  string          `json:"commissionType"`
	CommissionValue decimal.Decimal `json:"commissionValue"`
	IsGlobal        *bool           `json:"isGlobal,omitempty"`
}

type Detail struct {
	ID          int                `json:"id"`
	SchoolName  string             `json:"schoolName"`
	Email       string             `json:"email"`
	Phone       string             `json:"phone"`
	Address     null.String        `json:"address"`
	Website     null.String        `json:"website"`
	Status      string             `json:"status"`
	Registered  time.Time          `json:"registered"`
	UserID      string             `json:"userId"`
	Owner       Owner              `json:"owner"`
	Statistics  Statistics         `json:"statistics"`
	ContactInfo ContactInfo        `json:"contactInfo"`
	Commission  *CommissionSummary `json:"commission"`
}

type NewBusiness struct {
	SchoolName      string           `json:"schoolName" validate:"required"`
	Email           string           `json:"email" validate:"required,email"`
	Phone           string           `json:"phone" validate:"required"`
	Address         *string          `json:"address"`
	Website         *string          `json:"website" validate:"omitempty,url"`
	OwnerName       string           `json:"ownerName" validate:"required"`
	OwnerEmail      string           `json:"ownerEmail" validate:"required,email"`
	OwnerPhone      string           `json:"ownerPhone" validate:"required"`
	OwnerAddress    *string          `json:"ownerAddress"`
	CommissionType  string           `json:"commissionType" validate:"required,oneof=PERCENTAGE FIXED TIERED"`
	CommissionValue *decimal.Decimal `json:"commissionValue" validate:"omitempty,min=0"`
	Status          *bool            `json:"status"`
}

func (nb *NewBusiness) Clean() {
	nb.SchoolName = core.CleanString(nb.SchoolName)
	nb.Email = core.CleanString(nb.Email, true /* lower */)
	nb.Phone = core.CleanString(nb.Phone)
	nb.OwnerName = core.CleanString(nb.OwnerName)
	nb.OwnerEmail = core.CleanString(nb.OwnerEmail, true /* lower */)
	nb.OwnerPhone = core.CleanString(nb.OwnerPhone)
}

type Created struct {
	ID         int                `json:"id"`
	SchoolName string             `json:"schoolName"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Status     string             `json:"status"`
	Address    null.String        `json:"address"`
	Owner      Owner              `json:"owner"`
	Commission *CommissionSummary `json:"commission"`
}

type UpdateBusiness struct {
	SchoolName *string `json:"schoolName" validate:"omitempty,min=1"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,min=1"`
	Address    *string `json:"address"`
	Website    *string `json:"website" validate:"omitempty,url"`
	Status     *bool   `json:"status"`
}

type Updated struct {
	ID         int    `json:"id"`
	SchoolName string `json:"schoolName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Status     string `json:"status"`
}

type UpdateCommission struct {
	CommissionType  string           `json:"commissionType" validate:"required,oneof=PERCENTAGE FIXED TIERED"`
	CommissionValue *decimal.Decimal `json:"commissionValue" validate:"omitempty,min=0"`
	Country         string           `json:"country"`
	Currency        string           `json:"currency"`
}

type UpdateStatus struct {
	Status *bool `json:"status" validate:"required"`
}

type StatusResult struct {
	ID     int    `json:"id"`
	Status string `json:"status"`
}

type StudentItem struct {
	ID          int    `json:"id"`
	StudentName string `json:"studentName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Status      string `json:"status"`
}

type StudentPage struct {
	Data       []StudentItem   `json:"data"`
	Pagination core.Pagination `json:"pagination"`
}
