package student

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
)

type Student struct {
	ID                int          `json:"id" gorm:"primaryKey"`
	FamilyID          *int         `json:"familyId" gorm:"index"`
	Family            *FamilyRef   `json:"family,omitempty" gorm:"foreignKey:FamilyID"`
	FirstName         string       `json:"firstName" gorm:"not null"`
	LastName          string       `json:"lastName" gorm:"not null"`
	DateOfBirth       null.Time    `json:"dateOfBirth"`
	Gender            null.String  `json:"gender"`
	MedicalInfo       null.String  `json:"medicalInfo"`
	PhotoVideoConsent bool         `json:"photoVideoConsent" gorm:"not null;default:false"`
	Height            null.Float64 `json:"height"`
	Neck              null.Float64 `json:"neck"`
	Girth             null.Float64 `json:"girth"`
	Chest             null.Float64 `json:"chest"`
	BraSize           null.String  `json:"braSize"`
	Waist             null.Float64 `json:"waist"`
	Hips              null.Float64 `json:"hips"`
	Inseam            null.Float64 `json:"inseam"`
	ShoeSize          null.String  `json:"shoeSize"`
	TshirtSize        null.String  `json:"tshirtSize"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
}

func (s Student) FullName() string {
	return core.CleanString(s.FirstName + " " + s.LastName)
}

// Age in whole years at now, if the date of birth is known.
func (s Student) Age(now time.Time) null.Int {
	if !s.DateOfBirth.Valid {
		return null.Int{}
	}
	dob := s.DateOfBirth.Time
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return null.IntFrom(age)
}

// FamilyRef is the part of a family a student listing shows.
type FamilyRef struct {
	ID                       int         `json:"id"`
	OrganizationID           string      `json:"-"`
	FamilyName               string      `json:"familyName"`
	PrimaryParentEmail       string      `json:"-"`
	PrimaryParentPhoneNumber null.String `json:"-"`
}

func (FamilyRef) TableName() string { return "families" }

// Summary is a student the way a student's summary is shown alongside a booking.
type Summary struct {
	ID        int    `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type NewStudent struct {
	FirstName         string  `json:"firstName" validate:"required"`
	LastName          string  `json:"lastName" validate:"required"`
	DateOfBirth       *string `json:"dateOfBirth" validate:"omitempty,date"`
	Gender            *string `json:"gender"`
	MedicalInfo       *string `json:"medicalInfo"`
	PhotoVideoConsent *bool   `json:"photoVideoConsent"`
}

func (ns NewStudent) Student(familyID int) Student {
	s := Student{
		FamilyID:    &familyID,
		FirstName:   core.CleanString(ns.FirstName),
		LastName:    core.CleanString(ns.LastName),
		Gender:      null.StringFromPtr(ns.Gender),
		MedicalInfo: null.StringFromPtr(ns.MedicalInfo),
	}
	if ns.DateOfBirth != nil {
		s.DateOfBirth = null.TimeFrom(core.MustParseDate(*ns.DateOfBirth))
	}
	if ns.PhotoVideoConsent != nil {
		s.PhotoVideoConsent = *ns.PhotoVideoConsent
	}
	return s
}

// UpdateStudent is a partial update; an explicit null clears a nullable field.
type UpdateStudent struct {
	FirstName         *string                `json:"firstName" validate:"omitempty,min=1"`
	LastName          *string                `json:"lastName" validate:"omitempty,min=1"`
	DateOfBirth       core.Optional[string]  `json:"dateOfBirth" validate:"omitempty,date"`
	Gender            core.Optional[string]  `json:"gender"`
	MedicalInfo       core.Optional[string]  `json:"medicalInfo"`
	PhotoVideoConsent *bool                  `json:"photoVideoConsent"`
	Height            core.Optional[float64] `json:"height" validate:"omitempty,min=0"`
	Neck              core.Optional[float64] `json:"neck" validate:"omitempty,min=0"`
	Girth             core.Optional[float64] `json:"girth" validate:"omitempty,min=0"`
	Chest             core.Optional[float64] `json:"chest" validate:"omitempty,min=0"`
	BraSize           core.Optional[string]  `json:"braSize"`
	Waist             core.Optional[float64] `json:"waist" validate:"omitempty,min=0"`
	Hips              core.Optional[float64] `json:"hips" validate:"omitempty,min=0"`
	Inseam            core.Optional[float64] `json:"inseam" validate:"omitempty,min=0"`
	ShoeSize          core.Optional[string]  `json:"shoeSize"`
	TshirtSize        core.Optional[string]  `json:"tshirtSize"`
}

func (us UpdateStudent) Apply(s *Student) {
	if us.FirstName != nil {
		s.FirstName = core.CleanString(*us.FirstName)
	}
	if us.LastName != nil {
		s.LastName = core.CleanString(*us.LastName)
	}
	if us.DateOfBirth.Set {
		s.DateOfBirth = core.NullTime(us.DateOfBirth)
	}
	if us.PhotoVideoConsent != nil {
		s.PhotoVideoConsent = *us.PhotoVideoConsent
	}
	setString(&s.Gender, us.Gender)
	setString(&s.MedicalInfo, us.MedicalInfo)
	setString(&s.BraSize, us.BraSize)
	setString(&s.ShoeSize, us.ShoeSize)
	setString(&s.TshirtSize, us.TshirtSize)

	// measurements
	setFloat(&s.Height, us.Height)
	setFloat(&s.Neck, us.Neck)
	setFloat(&s.Girth, us.Girth)
	setFloat(&s.Chest, us.Chest)
	setFloat(&s.Waist, us.Waist)
	setFloat(&s.Hips, us.Hips)
	setFloat(&s.Inseam, us.Inseam)
}

func setString(dst *null.String, o core.Optional[string]) {
	if o.Set {
		*dst = core.NullString(o)
	}
}

func setFloat(dst *null.Float64, o core.Optional[float64]) {
	if o.Set {
		*dst = core.NullFloat64(o)
	}
}
