// Package class holds the scheduling models shared by classes, lessons,
// enrollments (class bookings), trials & waitlists, and the class service.
package class

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/location"
)

const (
	FrequencyDaily   = "DAILY"
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"

	TypeOngoing = "ONGOING_CLASS"
	TypeDropIn  = "DROP_CLASS"

	LessonScheduled  = "scheduled"
	BookingActive    = "Active"
	BookingCancelled = "Cancelled"
	TrialPending     = "pending"
)

type Teacher struct {
	ID        int         `json:"id" gorm:"primaryKey"`
	UserID    null.String `json:"userId" gorm:"type:varchar(36)"`
	FirstName string      `json:"firstName" gorm:"not null"`
	LastName  string      `json:"lastName" gorm:"not null"`
	Email     string      `json:"email" gorm:"not null"`
	Phone     null.String `json:"phone"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// TermRef is the part of a term shown alongside its classes & bookings.
type TermRef struct {
	ID        int       `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

func (TermRef) TableName() string { return "terms" }

// StudentRef is the part of a student shown alongside bookings, trials & waitlists.
type StudentRef struct {
	ID                int         `json:"id"`
	FirstName         string      `json:"firstName"`
	LastName          string      `json:"lastName"`
	FamilyID          *int        `json:"familyId"`
	MedicalInfo       null.String `json:"medicalInfo"`
	PhotoVideoConsent bool        `json:"photoVideoConsent"`
}

func (StudentRef) TableName() string { return "students" }

// Schedule holds the columns shared by classes & drop-in classes.
type Schedule struct {
	LocationID          *int            `json:"locationId"`
	TeacherID           *int            `json:"teacherId"`
	Title               string          `json:"title" gorm:"not null"`
	Description         null.String     `json:"description"`
	StartDate           time.Time       `json:"startDate" gorm:"not null"`
	EndDate             time.Time       `json:"endDate" gorm:"not null"`
	Frequency           string          `json:"frequency" gorm:"not null"`
	RecurringDay        null.String     `json:"recurringDay"`
	StartTimeOfClass    string          `json:"startTimeOfClass" gorm:"not null"`
	EndTimeOfClass      null.String     `json:"endTimeOfClass"`
	Duration            int             `json:"duration" gorm:"not null"`
	PricingPerLesson    decimal.Decimal `json:"pricingPerLesson" gorm:"type:numeric(12,2);not null"`
	ClassImage          null.String     `json:"classImage"`
	MinimumAge          null.Int        `json:"minimumAge"`
	MaximumAge          null.Int        `json:"maximumAge"`
	ClassColor          null.String     `json:"classColor"`
	LimitCapacity       bool            `json:"limitCapacity" gorm:"not null;default:false"`
	Capacity            null.Int        `json:"capacity"`
	AllowPortalBooking  bool            `json:"allowPortalBooking" gorm:"not null;default:true"`
	FamilyPortalTrial   bool            `json:"familyPortalTrial" gorm:"not null;default:false"`
	GlobalClassDiscount bool            `json:"globalClassDiscount" gorm:"not null;default:false"`
	SiblingDiscount     bool            `json:"siblingDiscount" gorm:"not null;default:false"`
	ClassType           string          `json:"classType" gorm:"not null"`
}

type Class struct {
	ID     int      `json:"id" gorm:"primaryKey"`
	TermID *int     `json:"termId" gorm:"index"`
	Term   *TermRef `json:"term,omitempty" gorm:"foreignKey:TermID"`
	Schedule
	Location  *location.Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Teacher   *Teacher           `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// Counts of the records hanging off a class.
type Counts struct {
	Lessons       int64 `json:"lessons"`
	ClassBookings int64 `json:"classBookings"`
	Trials        int64 `json:"trials"`
}

type ListItem struct {
	Class
	Count Counts `json:"_count" gorm:"-"`
}

// Detail is a class with its lessons (by date), bookings & trials.
type Detail struct {
	Class
	Lessons       []Lesson  `json:"lessons" gorm:"foreignKey:ClassID"`
	ClassBookings []Booking `json:"classBookings" gorm:"foreignKey:ClassID"`
	Trials        []Trial   `json:"trials" gorm:"foreignKey:ClassID"`
}

func (Detail) TableName() string { return "classes" }

type Lesson struct {
	ID           int         `json:"id" gorm:"primaryKey"`
	ClassID      int         `json:"classId" gorm:"index;not null"`
	Class        *Class      `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Title        string      `json:"title" gorm:"not null"`
	IsTrial      bool        `json:"isTrial" gorm:"not null;default:false"`
	Status       string      `json:"status" gorm:"not null;default:scheduled"`
	AttendanceID null.String `json:"attendanceId"`
	Notes        null.String `json:"notes"`
	Date         time.Time   `json:"date" gorm:"not null"`
	StartTime    string      `json:"startTime" gorm:"not null"`
	EndTime      null.String `json:"endTime"`
	Duration     int         `json:"duration" gorm:"not null"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Booking is an enrollment of a student into a class.
type Booking struct {
	ID                  int         `json:"id" gorm:"primaryKey"`
	UserID              string      `json:"userId" gorm:"type:varchar(36);index;not null"`
	ClassID             int         `json:"classId" gorm:"index;not null"`
	Class               *Class      `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	TermID              *int        `json:"termId"`
	Term                *TermRef    `json:"term,omitempty" gorm:"foreignKey:TermID"`
	StudentID           *int        `json:"studentId" gorm:"index"`
	Student             *StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	EnrollmentStartDate null.Time   `json:"enrollmentStartDate"`
	EnrollmentEndDate   null.Time   `json:"enrollmentEndDate"`
	PaymentOption       null.String `json:"paymentOption"`
	Status              string      `json:"status" gorm:"not null;default:Active"`
	Date                time.Time   `json:"date"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

func (Booking) TableName() string { return "class_bookings" }

type Trial struct {
	ID        int         `json:"id" gorm:"primaryKey"`
	UserID    string      `json:"userId" gorm:"type:varchar(36);index;not null"`
	ClassID   int         `json:"classId" gorm:"index;not null"`
	Class     *Class      `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	TermID    *int        `json:"termId"`
	StudentID *int        `json:"studentId"`
	Student   *StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	LessonID  *int        `json:"lessonId"`
	Date      null.Time   `json:"date"`
	Status    string      `json:"status" gorm:"not null;default:pending"`
	Notes     null.String `json:"notes"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

type Waitlist struct {
	ID        int         `json:"id" gorm:"primaryKey"`
	UserID    string      `json:"userId" gorm:"type:varchar(36);index;not null"`
	TermID    *int        `json:"termId"`
	StudentID *int        `json:"studentId"`
	Student   *StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	ClassID   *int        `json:"classId" gorm:"index"`
	Class     *Class      `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Date      time.Time   `json:"date"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// NewSchedule is the payload shared by new classes & drop-in classes.
type NewSchedule struct {
	Title               string          `json:"title" validate:"required"`
	Description         *string         `json:"description"`
	StartDate           string          `json:"startDate" validate:"required,date"`
	EndDate             string          `json:"endDate" validate:"required,date"`
	Frequency           string          `json:"frequency" validate:"required,oneof=DAILY WEEKLY MONTHLY"`
	RecurringDay        *string         `json:"recurringDay"`
	StartTimeOfClass    string          `json:"startTimeOfClass" validate:"required"`
	EndTimeOfClass      *string         `json:"endTimeOfClass"`
	Duration            int             `json:"duration" validate:"required,gt=0"`
	PricingPerLesson    decimal.Decimal `json:"pricingPerLesson" validate:"gt=0"`
	ClassImage          *string         `json:"classImage" validate:"omitempty,url"`
	LocationID          *int            `json:"locationId"`
	TeacherID           *int            `json:"teacherId"`
	MinimumAge          *int            `json:"minimumAge"`
	MaximumAge          *int            `json:"maximumAge"`
	ClassColor          *string         `json:"classColor"`
	LimitCapacity       *bool           `json:"limitCapacity"`
	Capacity            *int            `json:"capacity" validate:"omitempty,gt=0"`
	AllowPortalBooking  *bool           `json:"allowPortalBooking"`
	FamilyPortalTrial   *bool           `json:"familyPortalTrial"`
	GlobalClassDiscount *bool           `json:"globalClassDiscount"`
	SiblingDiscount     *bool           `json:"siblingDiscount"`
	ClassType           string          `json:"classType" validate:"omitempty,oneof=ONGOING_CLASS DROP_CLASS"`
}

// Schedule applies the defaults; classType falls back to defaultType.
func (ns NewSchedule) Schedule(defaultType string) Schedule {
	s := Schedule{
		LocationID:          ns.LocationID,
		TeacherID:           ns.TeacherID,
		Title:               core.CleanString(ns.Title),
		Description:         null.StringFromPtr(ns.Description),
		StartDate:           core.MustParseDate(ns.StartDate),
		EndDate:             core.MustParseDate(ns.EndDate),
		Frequency:           ns.Frequency,
		RecurringDay:        null.StringFromPtr(ns.RecurringDay),
		StartTimeOfClass:    ns.StartTimeOfClass,
		EndTimeOfClass:      null.StringFromPtr(ns.EndTimeOfClass),
		Duration:            ns.Duration,
		PricingPerLesson:    core.RoundMoney(ns.PricingPerLesson),
		ClassImage:          null.StringFromPtr(ns.ClassImage),
		MinimumAge:          null.IntFromPtr(ns.MinimumAge),
		MaximumAge:          null.IntFromPtr(ns.MaximumAge),
		ClassColor:          null.StringFromPtr(ns.ClassColor),
		LimitCapacity:       boolOr(ns.LimitCapacity, false),
		Capacity:            null.IntFromPtr(ns.Capacity),
		AllowPortalBooking:  boolOr(ns.AllowPortalBooking, true),
		FamilyPortalTrial:   boolOr(ns.FamilyPortalTrial, false),
		GlobalClassDiscount: boolOr(ns.GlobalClassDiscount, false),
		SiblingDiscount:     boolOr(ns.SiblingDiscount, false),
		ClassType:           ns.ClassType,
	}
	if s.ClassType == "" {
		s.ClassType = defaultType
	}
	return s
}

type NewClass struct {
	NewSchedule
	TermID *int `json:"termId"`
}

func (nc NewClass) Class() Class {
	return Class{TermID: nc.TermID, Schedule: nc.Schedule(TypeOngoing)}
}

// UpdateSchedule is a partial update; an explicit null clears a nullable field.
type UpdateSchedule struct {
	Title               *string               `json:"title" validate:"omitempty,min=1"`
	Description         core.Optional[string] `json:"description"`
	StartDate           *string               `json:"startDate" validate:"omitempty,date"`
	EndDate             *string               `json:"endDate" validate:"omitempty,date"`
	Frequency           *string               `json:"frequency" validate:"omitempty,oneof=DAILY WEEKLY MONTHLY"`
	RecurringDay        core.Optional[string] `json:"recurringDay"`
	StartTimeOfClass    *string               `json:"startTimeOfClass" validate:"omitempty,min=1"`
	EndTimeOfClass      core.Optional[string] `json:"endTimeOfClass"`
	Duration            *int                  `json:"duration" validate:"omitempty,gt=0"`
	PricingPerLesson    decimal.NullDecimal   `json:"pricingPerLesson" validate:"omitempty,gt=0"`
	ClassImage          core.Optional[string] `json:"classImage" validate:"omitempty,url"`
	LocationID          core.Optional[int]    `json:"locationId"`
	TeacherID           core.Optional[int]    `json:"teacherId"`
	MinimumAge          core.Optional[int]    `json:"minimumAge"`
	MaximumAge          core.Optional[int]    `json:"maximumAge"`
	ClassColor          core.Optional[string] `json:"classColor"`
	LimitCapacity       *bool                 `json:"limitCapacity"`
	Capacity            core.Optional[int]    `json:"capacity" validate:"omitempty,gt=0"`
	AllowPortalBooking  *bool                 `json:"allowPortalBooking"`
	FamilyPortalTrial   *bool                 `json:"familyPortalTrial"`
	GlobalClassDiscount *bool                 `json:"globalClassDiscount"`
	SiblingDiscount     *bool                 `json:"siblingDiscount"`
	ClassType           *string               `json:"classType" validate:"omitempty,oneof=ONGOING_CLASS DROP_CLASS"`
}

func (u UpdateSchedule) Apply(s *Schedule) {
	if u.Title != nil {
		s.Title = core.CleanString(*u.Title)
	}
	if u.StartDate != nil {
		s.StartDate = core.MustParseDate(*u.StartDate)
	}
	if u.EndDate != nil {
		s.EndDate = core.MustParseDate(*u.EndDate)
	}
	if u.Frequency != nil {
		s.Frequency = *u.Frequency
	}
	if u.StartTimeOfClass != nil {
		s.StartTimeOfClass = *u.StartTimeOfClass
	}
	if u.Duration != nil {
		s.Duration = *u.Duration
	}
	if u.PricingPerLesson.Valid {
		s.PricingPerLesson = core.RoundMoney(u.PricingPerLesson.Decimal)
	}
	if u.ClassType != nil {
		s.ClassType = *u.ClassType
	}
	setBool(&s.LimitCapacity, u.LimitCapacity)
	setBool(&s.AllowPortalBooking, u.AllowPortalBooking)
	setBool(&s.FamilyPortalTrial, u.FamilyPortalTrial)
	setBool(&s.GlobalClassDiscount, u.GlobalClassDiscount)
	setBool(&s.SiblingDiscount, u.SiblingDiscount)

	SetString(&s.Description, u.Description)
	SetString(&s.RecurringDay, u.RecurringDay)
	SetString(&s.EndTimeOfClass, u.EndTimeOfClass)
	SetString(&s.ClassImage, u.ClassImage)
	SetString(&s.ClassColor, u.ClassColor)
	SetInt(&s.MinimumAge, u.MinimumAge)
	SetInt(&s.MaximumAge, u.MaximumAge)
	SetInt(&s.Capacity, u.Capacity)
	SetRef(&s.LocationID, u.LocationID)
	SetRef(&s.TeacherID, u.TeacherID)
}

type UpdateClass struct {
	UpdateSchedule
	TermID core.Optional[int] `json:"termId"`
}

// Apply drops the loaded relations whose reference changed.
func (uc UpdateClass) Apply(c *Class) {
	uc.UpdateSchedule.Apply(&c.Schedule)
	SetRef(&c.TermID, uc.TermID)
	if uc.LocationID.Set {
		c.Location = nil
	}
	if uc.TeacherID.Set {
		c.Teacher = nil
	}
	if uc.TermID.Set {
		c.Term = nil
	}
}

// SetString, SetInt & SetRef apply a set Optional to a nullable column.

func SetString(dst *null.String, o core.Optional[string]) {
	if o.Set {
		*dst = core.NullString(o)
	}
}

func SetInt(dst *null.Int, o core.Optional[int]) {
	if o.Set {
		*dst = core.NullInt(o)
	}
}

func SetRef(dst **int, o core.Optional[int]) {
	if !o.Set {
		return
	}
	if !o.Valid {
		*dst = nil
		return
	}
	id := o.Value
	*dst = &id
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
