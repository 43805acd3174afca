package tests

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisha-glich/class-gecko-backend/core/family"
	"github.com/arisha-glich/class-gecko-backend/core/student"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

func Test_studentApi(t *testing.T) {
	app := setup(t)
	_, token := app.signIn(t, "Owner", "owner@test.cd", user.RoleBusiness)
	_, otherToken := app.signIn(t, "Other", "other@test.cd", user.RoleBusiness)

	var fam family.Created
	app.do(t, http.MethodPost, "/families", token, newFamilyBody("Jane", "Doe", "jane@test.cd"), http.StatusCreated, &fam)
	var kid student.Student
	app.do(t, http.MethodPost, "/families/"+strconv.Itoa(fam.Family.ID)+"/students", token,
		obj{"firstName": "Kid", "lastName": "Doe", "dateOfBirth": "2018-05-01"}, http.StatusCreated, &kid)
	kidPath := "/students/" + strconv.Itoa(kid.ID)

	dateErr := "dateOfBirth must be an ISO-8601 date (YYYY-MM-DD or RFC 3339)"
	tests := []httpTest{
		{name: "Unauthenticated", path: "/students", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{
			name: "Other organization's student", path: kidPath, token: otherToken, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Student not found"}),
		},
		{
			name: "Empty date of birth", method: http.MethodPatch, path: kidPath, token: token,
			body:     marchallObj(t, obj{"dateOfBirth": ""}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Message: "Validation failed", Errors: map[string]string{"dateOfBirth": dateErr}}),
		},
		{
			name: "Malformed date of birth", method: http.MethodPatch, path: kidPath, token: token,
			body:     marchallObj(t, obj{"dateOfBirth": "01/05/2018"}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Message: "Validation failed", Errors: map[string]string{"dateOfBirth": dateErr}}),
		},
		{
			name: "Empty date of birth on create", method: http.MethodPost, path: "/families/" + strconv.Itoa(fam.Family.ID) + "/students",
			token: token, body: marchallObj(t, obj{"firstName": "Kid", "lastName": "Doe", "dateOfBirth": ""}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "Negative measurement", method: http.MethodPatch, path: kidPath, token: token,
			body: marchallObj(t, obj{"height": -1}), wantCode: http.StatusBadRequest,
		},
	}
	runTests(t, app, tests)

	t.Run("list", func(t *testing.T) {
		var students []student.Student
		resp := app.do(t, http.MethodGet, "/students", token, nil, http.StatusOK, &students)
		assert.Equal(t, "Students retrieved successfully", resp.Message)
		require.Len(t, students, 1)
		assert.Equal(t, kid.ID, students[0].ID)

		app.do(t, http.MethodGet, "/students/family/"+strconv.Itoa(fam.Family.ID), token, nil, http.StatusOK, &students)
		require.Len(t, students, 1)

		app.do(t, http.MethodGet, "/students", otherToken, nil, http.StatusOK, &students)
		assert.Empty(t, students)
	})

	t.Run("update", func(t *testing.T) {
		var s student.Student
		resp := app.do(t, http.MethodPatch, kidPath, token, obj{"dateOfBirth": "2018-06-02", "height": 120.5, "shoeSize": "32"}, http.StatusOK, &s)
		assert.Equal(t, "Student updated successfully", resp.Message)
		assert.True(t, time.Date(2018, 6, 2, 0, 0, 0, 0, time.UTC).Equal(s.DateOfBirth.Time))
		assert.Equal(t, 120.5, s.Height.Float64)
		assert.Equal(t, "32", s.ShoeSize.String)

		var cleared student.Student
		app.do(t, http.MethodPatch, kidPath, token, obj{"dateOfBirth": nil}, http.StatusOK, &cleared)
		assert.False(t, cleared.DateOfBirth.Valid)
		assert.Equal(t, "Kid", cleared.FirstName)
		assert.Equal(t, 120.5, cleared.Height.Float64)
	})

	t.Run("delete", func(t *testing.T) {
		app.do(t, http.MethodDelete, kidPath, otherToken, nil, http.StatusNotFound, nil)
		resp := app.do(t, http.MethodDelete, kidPath, token, nil, http.StatusOK, nil)
		assert.Equal(t, "Student deleted successfully", resp.Message)
		app.do(t, http.MethodDelete, kidPath, token, nil, http.StatusNotFound, nil)
	})
}
