package echoapi

import (
	"github.com/arisha-glich/class-gecko-backend/core/camp"
	"github.com/arisha-glich/class-gecko-backend/core/customfield"
	"github.com/arisha-glich/class-gecko-backend/core/holiday"
	"github.com/arisha-glich/class-gecko-backend/core/location"
	"github.com/arisha-glich/class-gecko-backend/core/regfee"
	"github.com/arisha-glich/class-gecko-backend/core/waiver"
)

func registerCampAPI(g router, deps handlerDeps, svc *camp.Service) {
	registerOwnedAPI(g, "/camps", &ownedAPI[camp.Camp, camp.NewCamp, camp.UpdateCamp]{
		handlerDeps: deps,
		res:         resource{one: "Camp", many: "Camps"},
		svc:         svc,
		notFound:    camp.ErrNotFound,
	})
}

// registerCatalogAPI registers the settings of an organization: fees, custom fields, holidays, waivers & locations.
func registerCatalogAPI(g router, deps handlerDeps, svcs Services) {
	registerOwnedAPI(g, "/registration-fees", &ownedAPI[regfee.Fee, regfee.NewFee, regfee.UpdateFee]{
		handlerDeps: deps,
		res:         resource{one: "Registration fee", many: "Registration fees"},
		svc:         svcs.RegistrationFee,
		notFound:    regfee.ErrNotFound,
	})
	registerOwnedAPI(g, "/custom-fields", &ownedAPI[customfield.CustomField, customfield.NewCustomField, customfield.UpdateCustomField]{
		handlerDeps: deps,
		res:         resource{one: "Custom field", many: "Custom fields"},
		svc:         svcs.CustomField,
		notFound:    customfield.ErrNotFound,
	})
	registerOwnedAPI(g, "/holidays", &ownedAPI[holiday.Holiday, holiday.NewHoliday, holiday.UpdateHoliday]{
		handlerDeps: deps,
		res:         resource{one: "Holiday", many: "Holidays"},
		svc:         svcs.Holiday,
		notFound:    holiday.ErrNotFound,
	})
	registerOwnedAPI(g, "/waivers-policies", &ownedAPI[waiver.Policy, waiver.NewPolicy, waiver.UpdatePolicy]{
		handlerDeps: deps,
		res:         resource{one: "Waiver policy", many: "Waiver policies"},
		svc:         svcs.Waiver,
		notFound:    waiver.ErrNotFound,
	})
	registerSharedAPI(g, "/locations", &sharedAPI[location.Location, location.NewLocation, location.UpdateLocation]{
		handlerDeps: deps,
		res:         resource{one: "Location", many: "Locations"},
		svc:         svcs.Location,
		notFound:    location.ErrNotFound,
	})
}
