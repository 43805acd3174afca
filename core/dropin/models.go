// Package dropin manages drop-in classes: classes booked one session at a time,
// outside of any term.
package dropin

import (
	"time"

	"github.com/volatiletech/null/v8"

	"github.com/arisha-glich/class-gecko-backend/core"
	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/location"
)

type Class struct {
	ID     int    `json:"id" gorm:"primaryKey"`
	UserID string `json:"userId" gorm:"type:varchar(36);index;not null"`
	class.Schedule
	Location  *location.Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
	Teacher   *class.Teacher     `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func (Class) TableName() string { return "drop_in_classes" }

type Lesson struct {
	ID            int         `json:"id" gorm:"primaryKey"`
	DropInClassID int         `json:"dropInClassId" gorm:"index;not null"`
	DropInClass   *Class      `json:"dropInClass,omitempty" gorm:"foreignKey:DropInClassID"`
	Title         string      `json:"title" gorm:"not null"`
	Status        string      `json:"status" gorm:"not null;default:scheduled"`
	Notes         null.String `json:"notes"`
	Date          time.Time   `json:"date" gorm:"not null"`
	StartTime     string      `json:"startTime" gorm:"not null"`
	EndTime       null.String `json:"endTime"`
	Duration      int         `json:"duration" gorm:"not null"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (Lesson) TableName() string { return "drop_in_lessons" }

type Booking struct {
	ID             int               `json:"id" gorm:"primaryKey"`
	UserID         string            `json:"userId" gorm:"type:varchar(36);index;not null"`
	DropInClassID  int               `json:"dropInClassId" gorm:"index;not null"`
	DropInClass    *Class            `json:"dropInClass,omitempty" gorm:"foreignKey:DropInClassID"`
	StudentID      *int              `json:"studentId" gorm:"index"`
	Student        *class.StudentRef `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	EnrollmentDate null.Time         `json:"enrollmentDate"`
	PaymentOption  null.String       `json:"paymentOption"`
	Status         string            `json:"status" gorm:"not null;default:Active"`
	Date           time.Time         `json:"date"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}

func (Booking) TableName() string { return "drop_in_bookings" }

type UpdateClass struct {
	class.UpdateSchedule
}

func (u UpdateClass) Apply(c *Class) {
	u.UpdateSchedule.Apply(&c.Schedule)
	if u.LocationID.Set {
		c.Location = nil
	}
	if u.TeacherID.Set {
		c.Teacher = nil
	}
}

type NewLesson struct {
	DropInClassID int     `json:"dropInClassId" validate:"required,gt=0"`
	Title         string  `json:"title" validate:"required"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes"`
	Date          string  `json:"date" validate:"required,date"`
	StartTime     string  `json:"startTime" validate:"required"`
	EndTime       *string `json:"endTime"`
	Duration      int     `json:"duration" validate:"required,gt=0"`
}

func (nl NewLesson) Lesson() Lesson {
	l := Lesson{
		DropInClassID: nl.DropInClassID,
		Title:         core.CleanString(nl.Title),
		Status:        nl.Status,
		Notes:         null.StringFromPtr(nl.Notes),
		Date:          core.MustParseDate(nl.Date),
		StartTime:     nl.StartTime,
		EndTime:       null.StringFromPtr(nl.EndTime),
		Duration:      nl.Duration,
	}
	if l.Status == "" {
		l.Status = class.LessonScheduled
	}
	return l
}

type UpdateLesson struct {
	DropInClassID *int                  `json:"dropInClassId" validate:"omitempty,gt=0"`
	Title         *string               `json:"title" validate:"omitempty,min=1"`
	Status        *string               `json:"status" validate:"omitempty,min=1"`
	Notes         core.Optional[string] `json:"notes"`
	Date          *string               `json:"date" validate:"omitempty,date"`
	StartTime     *string               `json:"startTime" validate:"omitempty,min=1"`
	EndTime       core.Optional[string] `json:"endTime"`
	Duration      *int                  `json:"duration" validate:"omitempty,gt=0"`
}

func (u UpdateLesson) Apply(l *Lesson) {
	if u.DropInClassID != nil {
		l.DropInClassID = *u.DropInClassID
		l.DropInClass = nil
	}
	if u.Title != nil {
		l.Title = core.CleanString(*u.Title)
	}
	if u.Status != nil {
		l.Status = *u.Status
	}
	if u.Date != nil {
		l.Date = core.MustParseDate(*u.Date)
	}
	if u.StartTime != nil {
		l.StartTime = *u.StartTime
	}
	if u.Duration != nil {
		l.Duration = *u.Duration
	}
	class.SetString(&l.Notes, u.Notes)
	class.SetString(&l.EndTime, u.EndTime)
}

type NewBooking struct {
	DropInClassID  int     `json:"dropInClassId" validate:"required,gt=0"`
	StudentID      int     `json:"studentId" validate:"required,gt=0"`
	EnrollmentDate *string `json:"enrollmentDate" validate:"omitempty,date"`
	PaymentOption  *string `json:"paymentOption"`
	Status         *string `json:"status"`
}

func (nb NewBooking) Booking(userID string) Booking {
	studentID := nb.StudentID
	b := Booking{
		UserID:         userID,
		DropInClassID:  nb.DropInClassID,
		StudentID:      &studentID,
		EnrollmentDate: null.TimeFrom(nowFunc()),
		PaymentOption:  null.StringFromPtr(nb.PaymentOption),
		Status:         class.BookingActive,
		Date:           nowFunc(),
	}
	if nb.EnrollmentDate != nil {
		b.EnrollmentDate = null.TimeFrom(core.MustParseDate(*nb.EnrollmentDate))
	}
	if nb.Status != nil && *nb.Status != "" {
		b.Status = *nb.Status
	}
	return b
}

type UpdateBooking struct {
	DropInClassID  *int                  `json:"dropInClassId" validate:"omitempty,gt=0"`
	StudentID      *int                  `json:"studentId" validate:"omitempty,gt=0"`
	EnrollmentDate core.Optional[string] `json:"enrollmentDate" validate:"omitempty,date"`
	PaymentOption  core.Optional[string] `json:"paymentOption"`
	Status         *string               `json:"status" validate:"omitempty,min=1"`
}

func (u UpdateBooking) Apply(b *Booking) {
	if u.DropInClassID != nil {
		b.DropInClassID = *u.DropInClassID
		b.DropInClass = nil
	}
	if u.StudentID != nil {
		id := *u.StudentID
		b.StudentID = &id
		b.Student = nil
	}
	if u.EnrollmentDate.Set {
		b.EnrollmentDate = core.NullTime(u.EnrollmentDate)
	}
	if u.Status != nil {
		b.Status = *u.Status
	}
	class.SetString(&b.PaymentOption, u.PaymentOption)
}
