package discount

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
)

const (
	TypePercentage = "PERCENTAGE"
	TypeFixed      = "FIXED"

	CategoryMultipleStudent = "MULTIPLE_STUDENT"
	CategoryClassByStudent  = "CLASS_BY_STUDENT"
	CategoryClassByFamily   = "CLASS_BY_FAMILY"
)

// Discount without a UserID is offered by the platform to every organization.
type Discount struct {
	ID                   int             `json:"id" gorm:"primaryKey"`
	UserID               null.String     `json:"userId" gorm:"type:varchar(36);index"`
	Title                string          `json:"title" gorm:"not null"`
	Description          null.String     `json:"description"`
	DiscountType         string          `json:"discountType" gorm:"not null"`
	DiscountValue        decimal.Decimal `json:"discountValue" gorm:"type:numeric(12,2);not null"`
	AppliesTo            string          `json:"appliesTo" gorm:"not null"`
	ApplicableClassIDs   null.JSON       `json:"applicableClassIds" gorm:"type:jsonb"`
	ApplicableClassTypes null.JSON       `json:"applicableClassTypes" gorm:"type:jsonb"`
	MinEnrollmentCount   null.Int        `json:"minEnrollmentCount"`
	SiblingConfig        null.JSON       `json:"siblingConfig" gorm:"type:jsonb"`
	ValidFrom            time.Time       `json:"validFrom" gorm:"not null"`
	ValidUntil           time.Time       `json:"validUntil" gorm:"not null"`
	MaxUsesTotal         null.Int        `json:"maxUsesTotal"`
	MaxUsesPerFamily     null.Int        `json:"maxUsesPerFamily"`
	TimesUsed            int             `json:"timesUsed" gorm:"not null;default:0"`
	IsActive             bool            `json:"isActive" gorm:"not null;default:true"`
	Category             null.String     `json:"category"`
	Tiers                []Tier          `json:"tiers" gorm:"foreignKey:DiscountID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

type Tier struct {
	ID                int             `json:"id" gorm:"primaryKey"`
	DiscountID        int             `json:"-" gorm:"index;not null"`
	StudentsPerFamily null.Int        `json:"studentsPerFamily"`
	ClassesPerStudent null.Int        `json:"classesPerStudent"`
	PercentageOff     decimal.Decimal `json:"percentageOff" gorm:"type:numeric(5,2);not null"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

func (Tier) TableName() string { return "discount_tiers" }

type NewTier struct {
	StudentsPerFamily *int            `json:"studentsPerFamily" validate:"omitempty,min=1"`
	ClassesPerStudent *int            `json:"classesPerStudent" validate:"omitempty,min=1"`
	PercentageOff     decimal.Decimal `json:"percentageOff" validate:"min=0"`
}

func newTiers(nts []NewTier) []Tier {
	tiers := make([]Tier, 0, len(nts))
	for _, nt := range nts {
		tiers = append(tiers, Tier{
			StudentsPerFamily: null.IntFromPtr(nt.StudentsPerFamily),
			ClassesPerStudent: null.IntFromPtr(nt.ClassesPerStudent),
			PercentageOff:     nt.PercentageOff,
		})
	}
	return tiers
}

type NewDiscount struct {
	Title                string          `json:"title" validate:"required"`
	Description          *string         `json:"description"`
	DiscountType         string          `json:"discountType" validate:"required,oneof=PERCENTAGE FIXED"`
	DiscountValue        decimal.Decimal `json:"discountValue"`
	AppliesTo            string          `json:"appliesTo" validate:"required"`
	ApplicableClassIDs   json.RawMessage `json:"applicableClassIds"`
	ApplicableClassTypes json.RawMessage `json:"applicableClassTypes"`
	MinEnrollmentCount   *int            `json:"minEnrollmentCount"`
	SiblingConfig        json.RawMessage `json:"siblingConfig"`
	ValidFrom            string          `json:"validFrom" validate:"required,date"`
	ValidUntil           string          `json:"validUntil" validate:"required,date"`
	MaxUsesTotal         *int            `json:"maxUsesTotal"`
	MaxUsesPerFamily     *int            `json:"maxUsesPerFamily"`
	IsActive             *bool           `json:"isActive"`
	Category             *string         `json:"category" validate:"omitempty,oneof=MULTIPLE_STUDENT CLASS_BY_STUDENT CLASS_BY_FAMILY"`
	Tiers                []NewTier       `json:"tiers" validate:"omitempty,dive"`
}

func (nd NewDiscount) Discount(userID string) Discount {
	d := Discount{
		UserID:               null.StringFrom(userID),
		Title:                core.CleanString(nd.Title),
		Description:          null.StringFromPtr(nd.Description),
		DiscountType:         nd.DiscountType,
		DiscountValue:        nd.DiscountValue,
		AppliesTo:            nd.AppliesTo,
		ApplicableClassIDs:   rawJSON(nd.ApplicableClassIDs),
		ApplicableClassTypes: rawJSON(nd.ApplicableClassTypes),
		MinEnrollmentCount:   null.IntFromPtr(nd.MinEnrollmentCount),
		SiblingConfig:        rawJSON(nd.SiblingConfig),
		ValidFrom:            core.MustParseDate(nd.ValidFrom),
		ValidUntil:           core.MustParseDate(nd.ValidUntil),
		MaxUsesTotal:         null.IntFromPtr(nd.MaxUsesTotal),
		MaxUsesPerFamily:     null.IntFromPtr(nd.MaxUsesPerFamily),
		IsActive:             true,
		Category:             null.StringFromPtr(nd.Category),
		Tiers:                newTiers(nd.Tiers),
	}
	if nd.IsActive != nil {
		d.IsActive = *nd.IsActive
	}
	return d
}

// UpdateDiscount is a partial update. Tiers, when sent, replace the existing ones.
type UpdateDiscount struct {
	Title                *string                        `json:"title" validate:"omitempty,min=1"`
	Description          core.Optional[string]          `json:"description"`
	DiscountType         *string                        `json:"discountType" validate:"omitempty,oneof=PERCENTAGE FIXED"`
	DiscountValue        decimal.NullDecimal            `json:"discountValue"`
	AppliesTo            *string                        `json:"appliesTo" validate:"omitempty,min=1"`
	ApplicableClassIDs   core.Optional[json.RawMessage] `json:"applicableClassIds"`
	ApplicableClassTypes core.Optional[json.RawMessage] `json:"applicableClassTypes"`
	MinEnrollmentCount   core.Optional[int]             `json:"minEnrollmentCount"`
	SiblingConfig        core.Optional[json.RawMessage] `json:"siblingConfig"`
	ValidFrom            *string                        `json:"validFrom" validate:"omitempty,date"`
	ValidUntil           *string                        `json:"validUntil" validate:"omitempty,date"`
	MaxUsesTotal         core.Optional[int]             `json:"maxUsesTotal"`
	MaxUsesPerFamily     core.Optional[int]             `json:"maxUsesPerFamily"`
	IsActive             *bool                          `json:"isActive"`
	Category             core.Optional[string]          `json:"category" validate:"omitempty,oneof=MULTIPLE_STUDENT CLASS_BY_STUDENT CLASS_BY_FAMILY"`
	Tiers                []NewTier                      `json:"tiers" validate:"omitempty,dive"`
}

// Apply reports whether the tiers of d were replaced.
func (u UpdateDiscount) Apply(d *Discount) bool {
	if u.Title != nil {
		d.Title = core.CleanString(*u.Title)
	}
	if u.DiscountType != nil {
		d.DiscountType = *u.DiscountType
	}
	if u.DiscountValue.Valid {
		d.DiscountValue = u.DiscountValue.Decimal
	}
	if u.AppliesTo != nil {
		d.AppliesTo = *u.AppliesTo
	}
	if u.ValidFrom != nil {
		d.ValidFrom = core.MustParseDate(*u.ValidFrom)
	}
	if u.ValidUntil != nil {
		d.ValidUntil = core.MustParseDate(*u.ValidUntil)
	}
	if u.IsActive != nil {
		d.IsActive = *u.IsActive
	}
	setJSON(&d.ApplicableClassIDs, u.ApplicableClassIDs)
	setJSON(&d.ApplicableClassTypes, u.ApplicableClassTypes)
	setJSON(&d.SiblingConfig, u.SiblingConfig)
	if u.Description.Set {
		d.Description = core.NullString(u.Description)
	}
	if u.Category.Set {
		d.Category = core.NullString(u.Category)
	}
	if u.MinEnrollmentCount.Set {
		d.MinEnrollmentCount = core.NullInt(u.MinEnrollmentCount)
	}
	if u.MaxUsesTotal.Set {
		d.MaxUsesTotal = core.NullInt(u.MaxUsesTotal)
	}
	if u.MaxUsesPerFamily.Set {
		d.MaxUsesPerFamily = core.NullInt(u.MaxUsesPerFamily)
	}

	if u.Tiers == nil {
		return false
	}
	d.Tiers = newTiers(u.Tiers)
	return true
}

func rawJSON(raw json.RawMessage) null.JSON {
	if len(raw) == 0 || string(raw) == "null" {
		return null.JSON{}
	}
	return null.JSONFrom(raw)
}

func setJSON(dst *null.JSON, o core.Optional[json.RawMessage]) {
	if o.Set {
		*dst = core.NullJSON(o)
	}
}
