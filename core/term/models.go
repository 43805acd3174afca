package term

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/class"
)

const (
	BillingUpfront       = "Upfront"
	BillingMonthly       = "Monthly"
	BillingEveryTwoWeeks = "Every two weeks"
	BillingWeekly        = "Weekly"
	BillingCustom        = "Custom"
)

var BillingTypes = []string{BillingUpfront, BillingMonthly, BillingEveryTwoWeeks, BillingWeekly, BillingCustom}

// BillingOption is stored verbatim; only its type is checked.
type BillingOption struct {
	Enabled           bool    `json:"enabled"`
	Type              string  `json:"type" validate:"billing_type"`
	PaymentDate       *string `json:"paymentDate,omitempty"`
	Frequency         *string `json:"frequency,omitempty"`
	StartDate         *string `json:"startDate,omitempty"`
	CustomName        *string `json:"customName,omitempty"`
	CustomDescription *string `json:"customDescription,omitempty"`
	CustomFrequency   *string `json:"customFrequency,omitempty"`
	CustomStartDate   *string `json:"customStartDate,omitempty"`
}

type SeasonFee struct {
	Name         string   `json:"name" validate:"required"`
	Amount       float64  `json:"amount"`
	MaxPerFamily *float64 `json:"maxPerFamily,omitempty"`
}

type Term struct {
	ID                 int             `json:"id" gorm:"primaryKey"`
	UserID             string          `json:"userId" gorm:"type:varchar(36);index;not null"`
	Title              string          `json:"title" gorm:"not null"`
	StartDate          time.Time       `json:"startDate" gorm:"not null"`
	EndDate            time.Time       `json:"endDate" gorm:"not null"`
	RegistrationFee    bool            `json:"registrationFee" gorm:"not null;default:false"`
	SeasonSpecificFee  bool            `json:"seasonSpecificFee" gorm:"not null;default:false"`
	PricingType        null.String     `json:"pricingType"`
	BillingOptions     []BillingOption `json:"billingOptions" gorm:"column:payment_options;type:jsonb;serializer:json"`
	Pricing            null.JSON       `json:"pricing" gorm:"type:jsonb"`
	SeasonSpecificFees []SeasonFee     `json:"seasonSpecificFees" gorm:"type:jsonb;serializer:json"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// Detail is a term with everything scheduled in it.
type Detail struct {
	Term
	Classes       []class.Class    `json:"classes" gorm:"foreignKey:TermID"`
	ClassBookings []class.Booking  `json:"classBookings" gorm:"foreignKey:TermID"`
	Waitlists     []class.Waitlist `json:"waitlists" gorm:"foreignKey:TermID"`
	Trials        []class.Trial    `json:"trials" gorm:"foreignKey:TermID"`
}

func (Detail) TableName() string { return "terms" }

type NewTerm struct {
	Title              string          `json:"title" validate:"required"`
	StartDate          string          `json:"startDate" validate:"required,date"`
	EndDate            string          `json:"endDate" validate:"required,date"`
	RegistrationFee    bool            `json:"registrationFee"`
	SeasonSpecificFee  bool            `json:"seasonSpecificFee"`
	PricingType        *string         `json:"pricingType" validate:"omitempty,oneof='By Lesson' 'By Month' 'By Season' 'Number of Classes' 'Number of Hours'"`
	BillingOptions     []BillingOption `json:"billingOptions" validate:"omitempty,dive"`
	Pricing            null.JSON       `json:"pricing"`
	SeasonSpecificFees []SeasonFee     `json:"seasonSpecificFees" validate:"omitempty,dive"`
}

func (nt NewTerm) Term(userID string) Term {
	t := Term{
		UserID:             userID,
		Title:              core.CleanString(nt.Title),
		StartDate:          core.MustParseDate(nt.StartDate),
		EndDate:            core.MustParseDate(nt.EndDate),
		RegistrationFee:    nt.RegistrationFee,
		SeasonSpecificFee:  nt.SeasonSpecificFee,
		PricingType:        null.StringFromPtr(nt.PricingType),
		BillingOptions:     nt.BillingOptions,
		Pricing:            nt.Pricing,
		SeasonSpecificFees: nt.SeasonSpecificFees,
	}
	if t.BillingOptions == nil {
		t.BillingOptions = []BillingOption{}
	}
	if !t.Pricing.Valid {
		t.Pricing = null.JSONFrom([]byte("{}"))
	}
	return t
}

type UpdateTerm struct {
	Title              *string         `json:"title" validate:"omitempty,min=1"`
	StartDate          *string         `json:"startDate" validate:"omitempty,date"`
	EndDate            *string         `json:"endDate" validate:"omitempty,date"`
	RegistrationFee    *bool           `json:"registrationFee"`
	SeasonSpecificFee  *bool           `json:"seasonSpecificFee"`
	PricingType        *string         `json:"pricingType" validate:"omitempty,oneof='By Lesson' 'By Month' 'By Season' 'Number of Classes' 'Number of Hours'"`
	BillingOptions     []BillingOption `json:"billingOptions" validate:"omitempty,dive"`
	Pricing            null.JSON       `json:"pricing"`
	SeasonSpecificFees []SeasonFee     `json:"seasonSpecificFees" validate:"omitempty,dive"`
}

// Apply replaces the billing options & season fees wholesale when they are sent.
func (u UpdateTerm) Apply(t *Term) {
	if u.Title != nil {
		t.Title = core.CleanString(*u.Title)
	}
	if u.StartDate != nil {
		t.StartDate = core.MustParseDate(*u.StartDate)
	}
	if u.EndDate != nil {
		t.EndDate = core.MustParseDate(*u.EndDate)
	}
	if u.RegistrationFee != nil {
		t.RegistrationFee = *u.RegistrationFee
	}
	if u.SeasonSpecificFee != nil {
		t.SeasonSpecificFee = *u.SeasonSpecificFee
	}
	if u.PricingType != nil {
		t.PricingType = null.StringFrom(*u.PricingType)
	}
	if u.BillingOptions != nil {
		t.BillingOptions = u.BillingOptions
	}
	if u.Pricing.Valid {
		t.Pricing = u.Pricing
	}
	if u.SeasonSpecificFees != nil {
		t.SeasonSpecificFees = u.SeasonSpecificFees
	}
}
