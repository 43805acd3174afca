package tests

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisha-glich/class-gecko-backend/core/business"
	"github.com/arisha-glich/class-gecko-backend/core/commission"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

func Test_commissionApi(t *testing.T) {
	app := setup(t)
	_, adminToken := app.signIn(t, "Admin", "admin@test.cd", user.RoleAdmin)
	_, bizToken := app.signIn(t, "Biz", "biz@test.cd", user.RoleBusiness)

	var biz business.Created
	app.do(t, http.MethodPost, "/business", adminToken, newBusinessBody("gecko", "owner@gecko.cd"), http.StatusCreated, &biz)
	resolvePath := "/commissions/business/" + strconv.Itoa(biz.ID)

	tests := []httpTest{
		{name: "Admin required", path: "/commissions", token: bizToken, wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{
			name: "Nothing to resolve", path: resolvePath, token: adminToken, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Commission not found"}),
		},
		{
			name: "Unknown business", path: "/commissions/business/9999", token: adminToken, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Business not found"}),
		},
		{
			name: "Business commission requires a value", method: http.MethodPost, path: "/commissions/organization", token: adminToken,
			body:     marchallObj(t, obj{"businessId": biz.ID, "commissionType": commission.TypePercentage}),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{
				Message: "Validation failed",
				Errors:  map[string]string{"commissionValue": "commissionValue is required"},
			}),
		},
		{
			name: "Invalid isActive", path: "/commissions?isActive=maybe", token: adminToken, wantCode: http.StatusBadRequest,
		},
	}
	runTests(t, app, tests)

	// global fallback
	var global commission.Detail
	resp := app.do(t, http.MethodPost, "/commissions/global", adminToken,
		obj{"commissionType": commission.TypePercentage, "commissionValue": "10"}, http.StatusCreated, &global)
	assert.Equal(t, "Global commission created successfully", resp.Message)
	assert.Equal(t, commission.GlobalBusinessName, global.BusinessName)
	assert.Equal(t, commission.DefaultCountry, global.Country)
	assert.Equal(t, commission.DefaultCurrency, global.Currency)
	assert.True(t, global.IsActive)

	var res commission.Resolved
	app.do(t, http.MethodGet, resolvePath, adminToken, nil, http.StatusOK, &res)
	assert.True(t, res.IsGlobal)
	assert.Equal(t, global.ID, res.ID)

	// a new global commission supersedes the previous one
	var global2 commission.Detail
	app.do(t, http.MethodPost, "/commissions/global", adminToken,
		obj{"commissionType": commission.TypeFixed, "commissionValue": "2"}, http.StatusCreated, &global2)
	var old commission.Detail
	app.do(t, http.MethodGet, "/commissions/"+strconv.Itoa(global.ID), adminToken, nil, http.StatusOK, &old)
	assert.False(t, old.IsActive)

	// the business commission is preferred
	var own commission.Detail
	resp = app.do(t, http.MethodPost, "/commissions/organization", adminToken,
		obj{"businessId": biz.ID, "commissionType": commission.TypePercentage, "commissionValue": "7.5"}, http.StatusCreated, &own)
	assert.Equal(t, "Organization commission created successfully", resp.Message)
	assert.Equal(t, "gecko", own.BusinessName)

	app.do(t, http.MethodGet, resolvePath, adminToken, nil, http.StatusOK, &res)
	assert.False(t, res.IsGlobal)
	assert.Equal(t, own.ID, res.ID)
	assert.True(t, decimal.NewFromFloat(7.5).Equal(res.CommissionValue))

	// other currency: falls back on... nothing
	app.do(t, http.MethodGet, resolvePath+"?currency=EUR", adminToken, nil, http.StatusNotFound, nil)

	t.Run("country & currency default to US & USD", func(t *testing.T) {
		var other business.Created
		app.do(t, http.MethodPost, "/business", adminToken, newBusinessBody("maple", "owner@maple.cd"), http.StatusCreated, &other)
		otherPath := "/commissions/business/" + strconv.Itoa(other.ID)

		var cad commission.Detail
		app.do(t, http.MethodPost, "/commissions/organization", adminToken, obj{
			"businessId": other.ID, "commissionType": commission.TypeFixed, "commissionValue": "3",
			"country": "CA", "currency": "CAD",
		}, http.StatusCreated, &cad)
		assert.Equal(t, "CA", cad.Country)

		var res commission.Resolved
		app.do(t, http.MethodGet, otherPath, adminToken, nil, http.StatusOK, &res)
		assert.True(t, res.IsGlobal)
		assert.Equal(t, global2.ID, res.ID)

		app.do(t, http.MethodGet, otherPath+"?country=CA&currency=CAD", adminToken, nil, http.StatusOK, &res)
		assert.False(t, res.IsGlobal)
		assert.Equal(t, cad.ID, res.ID)

		app.do(t, http.MethodDelete, "/commissions/"+strconv.Itoa(cad.ID), adminToken, nil, http.StatusOK, nil)
	})

	t.Run("list", func(t *testing.T) {
		var page commission.Page
		resp := app.do(t, http.MethodGet, "/commissions", adminToken, nil, http.StatusOK, &page)
		assert.Equal(t, "Commissions retrieved successfully", resp.Message)
		require.Len(t, page.Data, 3)
		assert.True(t, page.Data[0].Global())
		assert.True(t, page.Data[1].Global())
		assert.Equal(t, own.ID, page.Data[2].ID)

		app.do(t, http.MethodGet, "/commissions?isActive=true", adminToken, nil, http.StatusOK, &page)
		assert.Len(t, page.Data, 2)

		app.do(t, http.MethodGet, "/commissions?businessId="+strconv.Itoa(biz.ID), adminToken, nil, http.StatusOK, &page)
		require.Len(t, page.Data, 1)
		assert.Equal(t, own.ID, page.Data[0].ID)
	})

	t.Run("update & delete", func(t *testing.T) {
		var d commission.Detail
		resp := app.do(t, http.MethodPatch, "/commissions/"+strconv.Itoa(own.ID), adminToken, obj{"isActive": false}, http.StatusOK, &d)
		assert.Equal(t, "Commission updated successfully", resp.Message)
		assert.False(t, d.IsActive)

		// back on the global commission
		app.do(t, http.MethodGet, resolvePath, adminToken, nil, http.StatusOK, &res)
		assert.True(t, res.IsGlobal)
		assert.Equal(t, global2.ID, res.ID)

		resp = app.do(t, http.MethodDelete, "/commissions/"+strconv.Itoa(own.ID), adminToken, nil, http.StatusOK, nil)
		assert.Equal(t, "Commission deleted successfully", resp.Message)
		app.do(t, http.MethodDelete, "/commissions/"+strconv.Itoa(own.ID), adminToken, nil, http.StatusNotFound, nil)
	})
}
