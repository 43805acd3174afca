package tests

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisha-glich/class-gecko-backend/core/class"
	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

// newBookable creates a class & a student of the caller's organization.
func (app *testApp) newBookable(t *testing.T, token, title, email string) (class.Class, student.Student) {
	t.Helper()
	body := newClassBody(title, 0)
	delete(body, "termId")
	var cls class.Class
	app.do(t, http.MethodPost, "/classes", token, body, http.StatusCreated, &cls)

	var fam family.Created
	app.do(t, http.MethodPost, "/families", token, newFamilyBody("Jane", "Doe", email), http.StatusCreated, &fam)
	var kid student.Student
	app.do(t, http.MethodPost, "/families/"+strconv.Itoa(fam.Family.ID)+"/students", token,
		obj{"firstName": "Kid", "lastName": "Doe"}, http.StatusCreated, &kid)
	return cls, kid
}

func Test_trialApi(t *testing.T) {
	app := setup(t)
	_, token := app.signIn(t, "Owner", "owner@test.cd", user.RoleBusiness)
	_, otherToken := app.signIn(t, "Other", "other@test.cd", user.RoleBusiness)
	cls, kid := app.newBookable(t, token, "Ballet", "jane@test.cd")

	var tr class.Trial
	resp := app.do(t, http.MethodPost, "/trials", token, obj{"classId": cls.ID, "studentId": kid.ID, "date": "2025-01-13"}, http.StatusCreated, &tr)
	assert.Equal(t, "Trial created successfully", resp.Message)
	assert.Equal(t, class.TrialPending, tr.Status)
	assert.True(t, tr.Date.Valid)
	require.NotNil(t, tr.Student)
	assert.Equal(t, "Kid", tr.Student.FirstName)
	require.NotNil(t, tr.Class)
	assert.Equal(t, "Ballet", tr.Class.Title)
	trialPath := "/trials/" + strconv.Itoa(tr.ID)

	tests := []httpTest{
		{name: "Unauthenticated", path: "/trials", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{
			name: "Missing student", method: http.MethodPost, path: "/trials", token: token,
			body:     marchallObj(t, obj{"classId": cls.ID}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Message: "Validation failed", Errors: map[string]string{"studentId": "studentId is required"}}),
		},
		{
			name: "Empty date", method: http.MethodPatch, path: trialPath, token: token,
			body: marchallObj(t, obj{"date": ""}), wantCode: http.StatusBadRequest,
		},
		{
			name: "Unknown trial", path: "/trials/9999", token: token, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Trial not found"}),
		},
		{
			name: "Trials of a non integer class", path: "/trials/class/abc", token: token, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Class not found"}),
		},
		{
			name: "Other organization's update", method: http.MethodPatch, path: trialPath, token: otherToken,
			body: marchallObj(t, obj{"status": "attended"}), wantCode: http.StatusNotFound,
		},
	}
	runTests(t, app, tests)

	t.Run("list", func(t *testing.T) {
		var trials []class.Trial
		resp := app.do(t, http.MethodGet, "/trials", token, nil, http.StatusOK, &trials)
		assert.Equal(t, "Trials retrieved successfully", resp.Message)
		require.Len(t, trials, 1)
		assert.Equal(t, tr.ID, trials[0].ID)

		app.do(t, http.MethodGet, "/trials", otherToken, nil, http.StatusOK, &trials)
		assert.Empty(t, trials)

		app.do(t, http.MethodGet, "/trials/class/"+strconv.Itoa(cls.ID), otherToken, nil, http.StatusOK, &trials)
		require.Len(t, trials, 1)
		app.do(t, http.MethodGet, "/trials/class/9999", token, nil, http.StatusOK, &trials)
		assert.Empty(t, trials)

		// single reads are not scoped
		var got class.Trial
		app.do(t, http.MethodGet, trialPath, otherToken, nil, http.StatusOK, &got)
		assert.Equal(t, tr.ID, got.ID)

		var d class.Detail
		app.do(t, http.MethodGet, "/classes/"+strconv.Itoa(cls.ID), token, nil, http.StatusOK, &d)
		require.Len(t, d.Trials, 1)
	})

	t.Run("update", func(t *testing.T) {
		var got class.Trial
		resp := app.do(t, http.MethodPatch, trialPath, token, obj{"status": "attended", "notes": "Loved it", "date": nil}, http.StatusOK, &got)
		assert.Equal(t, "Trial updated successfully", resp.Message)
		assert.Equal(t, "attended", got.Status)
		assert.Equal(t, "Loved it", got.Notes.String)
		assert.False(t, got.Date.Valid)
		assert.Equal(t, cls.ID, got.ClassID)
	})

	t.Run("delete", func(t *testing.T) {
		app.do(t, http.MethodDelete, trialPath, otherToken, nil, http.StatusNotFound, nil)
		resp := app.do(t, http.MethodDelete, trialPath, token, nil, http.StatusOK, nil)
		assert.Equal(t, "Trial deleted successfully", resp.Message)
		app.do(t, http.MethodDelete, trialPath, token, nil, http.StatusNotFound, nil)
	})
}

func Test_waitlistApi(t *testing.T) {
	app := setup(t)
	_, token := app.signIn(t, "Owner", "owner@test.cd", user.RoleBusiness)
	_, otherToken := app.signIn(t, "Other", "other@test.cd", user.RoleBusiness)
	cls, kid := app.newBookable(t, token, "Ballet", "jane@test.cd")

	var w class.Waitlist
	resp := app.do(t, http.MethodPost, "/waitlist", token, obj{"classId": cls.ID, "studentId": kid.ID}, http.StatusCreated, &w)
	assert.Equal(t, "Waitlist entry created successfully", resp.Message)
	assert.False(t, w.Date.IsZero())
	require.NotNil(t, w.ClassID)
	assert.Equal(t, cls.ID, *w.ClassID)
	require.NotNil(t, w.Student)
	assert.Equal(t, "Kid", w.Student.FirstName)
	entryPath := "/waitlist/" + strconv.Itoa(w.ID)

	tests := []httpTest{
		{
			name: "Missing student", method: http.MethodPost, path: "/waitlist", token: token,
			body: marchallObj(t, obj{"classId": cls.ID}), wantCode: http.StatusBadRequest,
		},
		{
			name: "Unknown entry", path: "/waitlist/9999", token: token, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Waitlist entry not found"}),
		},
		{name: "Other organization's read", path: entryPath, token: otherToken},
		{name: "Other organization's delete", method: http.MethodDelete, path: entryPath, token: otherToken, wantCode: http.StatusNotFound},
	}
	runTests(t, app, tests)

	var entries []class.Waitlist
	resp = app.do(t, http.MethodGet, "/waitlist", token, nil, http.StatusOK, &entries)
	assert.Equal(t, "Waitlist entries retrieved successfully", resp.Message)
	require.Len(t, entries, 1)
	app.do(t, http.MethodGet, "/waitlist", otherToken, nil, http.StatusOK, &entries)
	assert.Empty(t, entries)
	app.do(t, http.MethodGet, "/waitlist/class/"+strconv.Itoa(cls.ID), token, nil, http.StatusOK, &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, w.ID, entries[0].ID)

	// leaving the class
	var updated class.Waitlist
	app.do(t, http.MethodPatch, entryPath, token, obj{"classId": nil}, http.StatusOK, &updated)
	assert.Nil(t, updated.ClassID)
	assert.Nil(t, updated.Class)
	app.do(t, http.MethodGet, "/waitlist/class/"+strconv.Itoa(cls.ID), token, nil, http.StatusOK, &entries)
	assert.Empty(t, entries)

	app.do(t, http.MethodDelete, entryPath, token, nil, http.StatusOK, nil)
	app.do(t, http.MethodDelete, entryPath, token, nil, http.StatusNotFound, nil)
}
