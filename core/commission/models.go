package commission

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
)

// Commission types
const (
	TypePercentage = "PERCENTAGE"
	TypeFixed      = "FIXED"
	TypeTiered     = "TIERED"
)

const (
	DefaultCountry  = "US"
	DefaultCurrency = "USD"
	AppliesToAll    = "ALL"

	GlobalBusinessName  = "Global (All Organizations)"
	UnknownBusinessName = "Unknown Business"
)

// Commission is a platform fee rule. A nil BusinessID makes it global.
type Commission struct {
	ID                 int                        `json:"id" gorm:"primaryKey"`
	BusinessID         *int                       `json:"businessId" gorm:"index"`
	Business           *organization.Organization `json:"-" gorm:"foreignKey:BusinessID"`
	EffectiveFrom      time.Time                  `json:"effectiveFrom"`
	Country            string                     `json:"country" gorm:"not null;default:US"`
	Currency           string                     `json:"currency" gorm:"not null;default:USD"`
	CommissionType     string                     `json:"commissionType" gorm:"not null"`
	CommissionValue    decimal.Decimal            `json:"commissionValue" gorm:"type:numeric(12,2);not null"`
	TierConfig         null.JSON                  `json:"tierConfig" gorm:"type:jsonb"`
	PlatformCommission decimal.Decimal            `json:"platformCommission" gorm:"type:numeric(12,2);not null"`
	PlatformAmount     decimal.Decimal            `json:"platformAmount" gorm:"type:numeric(12,2);not null"`
	AppliesTo          string                     `json:"appliesTo" gorm:"not null;default:ALL"`
	MinTransactionAmt  decimal.NullDecimal        `json:"minTransactionAmt" gorm:"type:numeric(12,2)"`
	MaxTransactionAmt  decimal.NullDecimal        `json:"maxTransactionAmt" gorm:"type:numeric(12,2)"`
	IsActive           bool                       `json:"isActive" gorm:"not null;default:true"`
	CreatedAt          time.Time                  `json:"createdAt"`
	UpdatedAt          time.Time                  `json:"updatedAt"`
}

func (c Commission) Global() bool { return c.BusinessID == nil }

// BusinessName is the display name of the organization c applies to.
func (c Commission) BusinessName() string {
	switch {
	case c.Global():
		return GlobalBusinessName
	case c.Business != nil && c.Business.CompanyName != "":
		return c.Business.CompanyName
	default:
		return UnknownBusinessName
	}
}

// Detail is a commission as listed to admins.
type Detail struct {
	Commission
	BusinessName string `json:"businessName"`
}

func NewDetail(c Commission) Detail {
	return Detail{Commission: c, BusinessName: c.BusinessName()}
}

// Resolved is the commission that applies to a business, with where it came from.
type Resolved struct {
	Detail
	IsGlobal bool `json:"isGlobal"`
}

// Scope selects the active rows a new commission supersedes. Empty Country & Currency match any.
type Scope struct {
	BusinessID *int
	Country    string
	Currency   string
}

type QueryFilter struct {
	BusinessID *int  `query:"businessId"`
	IsActive   *bool `query:"isActive"`
}

type Page struct {
	Data       []Detail        `json:"data"`
	Pagination core.Pagination `json:"pagination"`
}

type NewCommission struct {
	CommissionType    string           `json:"commissionType" validate:"required,oneof=PERCENTAGE FIXED TIERED"`
	CommissionValue   *decimal.Decimal `json:"commissionValue" validate:"omitempty,min=0"`
	Country           string           `json:"country" validate:"omitempty,max=3"`
	Currency          string           `json:"currency" validate:"omitempty,len=3"`
	EffectiveFrom     *string          `json:"effectiveFrom" validate:"omitempty,date"`
	AppliesTo         string           `json:"appliesTo"`
	MinTransactionAmt *decimal.Decimal `json:"minTransactionAmt" validate:"omitempty,min=0"`
	MaxTransactionAmt *decimal.Decimal `json:"maxTransactionAmt"`
	TierConfig        null.JSON        `json:"tierConfig"`
}

func (nc *NewCommission) Clean() {
	nc.Country = core.CleanString(nc.Country)
	nc.Currency = core.CleanString(nc.Currency)
	nc.AppliesTo = core.CleanString(nc.AppliesTo)
	if nc.Country == "" || nc.Country == "USA" {
		nc.Country = DefaultCountry
	}
	if nc.Currency == "" {
		nc.Currency = DefaultCurrency
	}
	if nc.AppliesTo == "" {
		nc.AppliesTo = AppliesToAll
	}
}

type NewBusinessCommission struct {
	BusinessID int `json:"businessId" validate:"required,min=1"`
	NewCommission
}

// Validate also requires a value, which global commissions may omit.
func (nc NewBusinessCommission) Validate(validate *validator.Validate) error {
	if err := validate.Struct(nc); err != nil {
		return err
	}
	if nc.CommissionValue == nil {
		return core.NewValidationError(nil, core.FieldError{Field: "commissionValue", Error: "commissionValue is required"})
	}
	return nil
}

type UpdateCommission struct {
	CommissionType    *string          `json:"commissionType" validate:"omitempty,oneof=PERCENTAGE FIXED TIERED"`
	CommissionValue   *decimal.Decimal `json:"commissionValue" validate:"omitempty,min=0"`
	Country           *string          `json:"country" validate:"omitempty,min=1,max=3"`
	Currency          *string          `json:"currency" validate:"omitempty,len=3"`
	EffectiveFrom     *string          `json:"effectiveFrom" validate:"omitempty,date"`
	AppliesTo         *string          `json:"appliesTo" validate:"omitempty,min=1"`
	MinTransactionAmt *decimal.Decimal `json:"minTransactionAmt" validate:"omitempty,min=0"`
	MaxTransactionAmt *decimal.Decimal `json:"maxTransactionAmt" validate:"omitempty,min=0"`
	TierConfig        null.JSON        `json:"tierConfig"`
	IsActive          *bool            `json:"isActive"`
}

// Apply copies the fields set in uc onto c.
func (uc UpdateCommission) Apply(c *Commission) {
	if uc.CommissionType != nil {
		c.CommissionType = *uc.CommissionType
	}
	if uc.CommissionValue != nil {
		c.CommissionValue = *uc.CommissionValue
	}
	if uc.Country != nil {
		c.Country = *uc.Country
	}
	if uc.Currency != nil {
		c.Currency = *uc.Currency
	}
	if uc.EffectiveFrom != nil {
		c.EffectiveFrom = core.MustParseDate(*uc.EffectiveFrom)
	}
	if uc.AppliesTo != nil {
		c.AppliesTo = *uc.AppliesTo
	}
	if uc.MinTransactionAmt != nil {
		c.MinTransactionAmt = decimal.NewNullDecimal(*uc.MinTransactionAmt)
	}
	if uc.MaxTransactionAmt != nil {
		c.MaxTransactionAmt = decimal.NewNullDecimal(*uc.MaxTransactionAmt)
	}
	if uc.TierConfig.Valid {
		c.TierConfig = uc.TierConfig
	}
	if uc.IsActive != nil {
		c.IsActive = *uc.IsActive
	}
}
