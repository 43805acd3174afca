// Package di builds the services of the API on top of their repositories.
package di

import (
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	echoapi "github.com/arisha-glich/class-gecko-backend/apps/api/echo"
	"github.com/arisha-glich/class-gecko-backend/core/business"
	"github.com/arisha-glich/class-gecko-backend/core/camp"
	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/commission"
	"github.com/arisha-glich/class-gecko-backend/core/customfield"
	"github.com/arisha-glich/class-gecko-backend/core/discount"
	"github.com/arisha-glich/class-gecko-backend/core/dropin"
	"github.com/arisha-glich/class-gecko-backend/core/enrollment"
	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/holiday"
	"github.com/arisha-glich/class-gecko-backend/core/lesson"
	"github.com/arisha-glich/class-gecko-backend/core/location"
	"github.com/arisha-glich/class-gecko-backend/core/organization"
	"github.com/arisha-glich/class-gecko-backend/core/regfee"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/term"
	"github.com/arisha-glich/class-gecko-backend/core/trial"
	"github.com/arisha-glich/class-gecko-backend/core/user"
	"github.com/arisha-glich/class-gecko-backend/core/waitlist"
	"github.com/arisha-glich/class-gecko-backend/core/waiver"
	"github.com/arisha-glich/class-gecko-backend/storage/database/gormrepos"
	sqlxrepos "github.com/arisha-glich/class-gecko-backend/storage/database/sqlx"
)

// NewServices wires every service. xdb shares the connection pool of db.
func NewServices(db *gorm.DB, xdb *sqlx.DB) echoapi.Services {
	usrRepo := gormrepos.NewUserRepository(db)
	commissionSvc := commission.NewService(gormrepos.NewCommissionRepository(db))

	return echoapi.Services{
		User:         user.NewService(usrRepo),
		Organization: organization.NewService(gormrepos.NewOrganizationRepository(db), usrRepo),
		Business: business.NewService(
			gormrepos.NewBusinessRepository(db),
			sqlxrepos.NewStatsRepository(xdb),
			commissionSvc,
			usrRepo,
		),
		Commission:      commissionSvc,
		Family:          family.NewService(gormrepos.NewFamilyRepository(db), usrRepo),
		Student:         student.NewService(gormrepos.NewStudentRepository(db)),
		Location:        location.NewService(gormrepos.NewLocationRepository(db)),
		Term:            term.NewService(gormrepos.NewTermRepository(db)),
		Class:           class.NewService(gormrepos.NewClassRepository(db)),
		Lesson:          lesson.NewService(gormrepos.NewLessonRepository(db)),
		Enrollment:      enrollment.NewService(gormrepos.NewEnrollmentRepository(db)),
		Trial:           trial.NewService(gormrepos.NewTrialRepository(db)),
		Waitlist:        waitlist.NewService(gormrepos.NewWaitlistRepository(db)),
		Camp:            camp.NewService(gormrepos.NewCampRepository(db)),
		Holiday:         holiday.NewService(gormrepos.NewHolidayRepository(db)),
		Waiver:          waiver.NewService(gormrepos.NewWaiverRepository(db)),
		CustomField:     customfield.NewService(gormrepos.NewCustomFieldRepository(db)),
		RegistrationFee: regfee.NewService(gormrepos.NewRegistrationFeeRepository(db)),
		Discount:        discount.NewService(gormrepos.NewDiscountRepository(db)),
		DropInClass:     dropin.NewClassService(gormrepos.NewDropInClassRepository(db)),
		DropInLesson:    dropin.NewLessonService(gormrepos.NewDropInLessonRepository(db)),
		DropInBooking:   dropin.NewBookingService(gormrepos.NewDropInBookingRepository(db)),
	}
}
