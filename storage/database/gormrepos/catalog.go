package gormrepos

import (
	"gorm.io/gorm"

	"github.com/arisha-glich/class-gecko-backend/core/camp"
	"github.com/arisha-glich/class-gecko-backend/core/customfield"
	"github.com/arisha-glich/class-gecko-backend/core/holiday"
	"github.com/arisha-glich/class-gecko-backend/core/location"
	"github.com/arisha-glich/class-gecko-backend/core/regfee"
	"github.com/arisha-glich/class-gecko-backend/core/waiver"
)

// The settings of an organization are plain stores.

var (
	_ location.Repository    = (*store[location.Location])(nil)
	_ camp.Repository        = (*store[camp.Camp])(nil)
	_ holiday.Repository     = (*store[holiday.Holiday])(nil)
	_ waiver.Repository      = (*store[waiver.Policy])(nil)
	_ customfield.Repository = (*store[customfield.CustomField])(nil)
	_ regfee.Repository      = (*store[regfee.Fee])(nil)
)

func NewLocationRepository(db *gorm.DB) location.Repository {
	return newStore[location.Location](db, location.ErrNotFound)
}

func NewCampRepository(db *gorm.DB) camp.Repository {
	return newStore[camp.Camp](db, camp.ErrNotFound, ownedBy("user_id"))
}

func NewHolidayRepository(db *gorm.DB) holiday.Repository {
	return newStore[holiday.Holiday](db, holiday.ErrNotFound, ownedBy("user_id"), orderBy("start_date ASC"))
}

func NewWaiverRepository(db *gorm.DB) waiver.Repository {
	return newStore[waiver.Policy](db, waiver.ErrNotFound, ownedBy("user_id"))
}

func NewCustomFieldRepository(db *gorm.DB) customfield.Repository {
	return newStore[customfield.CustomField](db, customfield.ErrNotFound, ownedBy("user_id"))
}

func NewRegistrationFeeRepository(db *gorm.DB) regfee.Repository {
	return newStore[regfee.Fee](db, regfee.ErrNotFound, ownedBy("user_id"))
}
