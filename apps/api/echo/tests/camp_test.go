package tests

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisha-glich/class-gecko-backend/core/camp"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

func Test_campApi(t *testing.T) {
	app := setup(t)
	_, token := app.signIn(t, "Owner", "owner@test.cd", user.RoleBusiness)
	_, otherToken := app.signIn(t, "Other", "other@test.cd", user.RoleBusiness)

	// create
	var c camp.Camp
	resp := app.do(t, http.MethodPost, "/camps", token, obj{
		"title":             "  Summer Camp ",
		"startDate":         "2025-07-01",
		"endDate":           "2025-07-31",
		"offerEarlyDropoff": true,
	}, http.StatusCreated, &c)
	assert.Equal(t, "Camp created successfully", resp.Message)
	assert.True(t, resp.Success)
	assert.Equal(t, "Summer Camp", c.Title)
	assert.True(t, c.StartDate.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, c.EndDate.Valid)
	assert.True(t, c.OfferEarlyDropoff)
	assert.False(t, c.OfferLatePickup)
	campPath := "/camps/" + strconv.Itoa(c.ID)

	// list: only the owner's camps
	var camps []camp.Camp
	resp = app.do(t, http.MethodGet, "/camps", token, nil, http.StatusOK, &camps)
	assert.Equal(t, "Camps retrieved successfully", resp.Message)
	require.Len(t, camps, 1)
	assert.Equal(t, c.ID, camps[0].ID)
	app.do(t, http.MethodGet, "/camps", otherToken, nil, http.StatusOK, &camps)
	assert.Empty(t, camps)

	// partial update; null clears the end date
	resp = app.do(t, http.MethodPatch, campPath, token, obj{"title": "Winter Camp", "endDate": nil}, http.StatusOK, &c)
	assert.Equal(t, "Camp updated successfully", resp.Message)
	assert.Equal(t, "Winter Camp", c.Title)
	assert.False(t, c.EndDate.Valid)
	assert.True(t, c.OfferEarlyDropoff)

	tests := []httpTest{
		{name: "Auth required", path: "/camps", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errUnauthorized)},
		{
			name: "Invalid token", path: "/camps", token: "lol", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errUnauthorized),
		},
		{
			name: "Non integer id", path: "/camps/abc", token: token, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Camp not found"}),
		},
		{
			name: "Other user's camp", path: campPath, token: otherToken, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Camp not found"}),
		},
		{
			name: "Missing fields", method: http.MethodPost, path: "/camps", token: token,
			body: marchallObj(t, obj{"startDate": "tomorrow"}), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Validation failed",
				Errors: map[string]string{
					"title":     "title is required",
					"startDate": "startDate must be an ISO-8601 date (YYYY-MM-DD or RFC 3339)",
				},
			}),
		},
		{
			name: "Malformed body", method: http.MethodPost, path: "/camps", token: token,
			body: []byte(`{"title": 1`), wantCode: http.StatusBadRequest,
		},
	}
	runTests(t, app, tests)

	// delete twice
	resp = app.do(t, http.MethodDelete, campPath, token, nil, http.StatusOK, nil)
	assert.Equal(t, "Camp deleted successfully", resp.Message)
	resp = app.do(t, http.MethodDelete, campPath, token, nil, http.StatusNotFound, nil)
	assert.Equal(t, "Camp not found", resp.Message)
}
