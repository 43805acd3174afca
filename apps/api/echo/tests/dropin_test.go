package tests

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/dropin"
	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/location"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

func Test_dropInApi(t *testing.T) {
	app := setup(t)
	_, token := app.signIn(t, "Owner", "owner@test.cd", user.RoleBusiness)
	_, otherToken := app.signIn(t, "Other", "other@test.cd", user.RoleBusiness)

	// locations are shared by every organization
	var loc location.Location
	resp := app.do(t, http.MethodPost, "/locations", token, obj{"name": "Main hall", "address": "1 Main St"}, http.StatusCreated, &loc)
	assert.Equal(t, "Location created successfully", resp.Message)
	var locs []location.Location
	app.do(t, http.MethodGet, "/locations", otherToken, nil, http.StatusOK, &locs)
	require.Len(t, locs, 1)

	body := newClassBody("Open gym", 0)
	delete(body, "termId")
	body["locationId"] = loc.ID
	var dc dropin.Class
	resp = app.do(t, http.MethodPost, "/dropin-classes", token, body, http.StatusCreated, &dc)
	assert.Equal(t, "Drop-in class created successfully", resp.Message)
	assert.Equal(t, class.TypeDropIn, dc.ClassType)
	require.NotNil(t, dc.Location)
	assert.Equal(t, "Main hall", dc.Location.Name)
	dcID := strconv.Itoa(dc.ID)

	tests := []httpTest{
		{
			name: "Other organization's class", path: "/dropin-classes/" + dcID, token: otherToken, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Drop-in class not found"}),
		},
		{
			name: "Bookings of a non integer class", path: "/dropin-bookings/class/abc", token: token, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Drop-in class not found"}),
		},
	}
	runTests(t, app, tests)

	// lessons
	var l dropin.Lesson
	resp = app.do(t, http.MethodPost, "/dropin-lessons", token,
		obj{"dropInClassId": dc.ID, "title": "Session 1", "date": "2025-02-01", "startTime": "10:00", "duration": 90}, http.StatusCreated, &l)
	assert.Equal(t, "Drop-in lesson created successfully", resp.Message)
	assert.Equal(t, class.LessonScheduled, l.Status)
	var lessons []dropin.Lesson
	app.do(t, http.MethodGet, "/dropin-lessons/class/"+dcID, token, nil, http.StatusOK, &lessons)
	require.Len(t, lessons, 1)
	assert.Equal(t, l.ID, lessons[0].ID)

	// bookings
	var fam family.Created
	app.do(t, http.MethodPost, "/families", token, newFamilyBody("Jane", "Doe", "jane@test.cd"), http.StatusCreated, &fam)
	var kid student.Student
	app.do(t, http.MethodPost, "/families/"+strconv.Itoa(fam.Family.ID)+"/students", token,
		obj{"firstName": "Kid", "lastName": "Doe"}, http.StatusCreated, &kid)

	var b dropin.Booking
	resp = app.do(t, http.MethodPost, "/dropin-bookings", token,
		obj{"dropInClassId": dc.ID, "studentId": kid.ID, "enrollmentDate": "2025-02-01"}, http.StatusCreated, &b)
	assert.Equal(t, "Drop-in booking created successfully", resp.Message)
	assert.Equal(t, class.BookingActive, b.Status)
	assert.True(t, b.EnrollmentDate.Valid)

	var bookings []dropin.Booking
	app.do(t, http.MethodGet, "/dropin-bookings/class/"+dcID, token, nil, http.StatusOK, &bookings)
	require.Len(t, bookings, 1)
	app.do(t, http.MethodGet, "/dropin-bookings/class/"+dcID, otherToken, nil, http.StatusOK, &bookings)
	assert.Empty(t, bookings)

	var kids []family.Child
	app.do(t, http.MethodGet, "/families/"+strconv.Itoa(fam.Family.ID)+"/children", token, nil, http.StatusOK, &kids)
	require.Len(t, kids, 1)
	require.Len(t, kids[0].EnrolledClasses, 1)
	assert.Equal(t, "Open gym", kids[0].EnrolledClasses[0].Title)
	assert.Equal(t, class.TypeDropIn, kids[0].EnrolledClasses[0].ClassType.String)

	// updates
	var updated dropin.Class
	resp = app.do(t, http.MethodPatch, "/dropin-classes/"+dcID, token, obj{"locationId": nil}, http.StatusOK, &updated)
	assert.Equal(t, "Drop-in class updated successfully", resp.Message)
	assert.Equal(t, dc.ID, updated.ID)
	assert.Nil(t, updated.LocationID)
	assert.Nil(t, updated.Location)

	app.do(t, http.MethodPatch, "/dropin-bookings/"+strconv.Itoa(b.ID), token, obj{"paymentOption": "Cash"}, http.StatusOK, &b)
	assert.Equal(t, "Cash", b.PaymentOption.String)

	app.do(t, http.MethodDelete, "/dropin-classes/"+dcID, otherToken, nil, http.StatusNotFound, nil)
	app.do(t, http.MethodDelete, "/dropin-classes/"+dcID, token, nil, http.StatusOK, nil)
}
