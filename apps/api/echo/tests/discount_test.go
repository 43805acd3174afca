package tests

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arisha-glich/class-gecko-backend/core/discount"
	"github.com/arisha-glich/class-gecko-backend/core/user"
)

func Test_discountApi(t *testing.T) {
	app := setup(t)
	_, token := app.signIn(t, "Owner", "owner@test.cd", user.RoleBusiness)
	_, otherToken := app.signIn(t, "Other", "other@test.cd", user.RoleBusiness)

	body := obj{
		"title":         "Siblings",
		"discountType":  discount.TypePercentage,
		"discountValue": "10",
		"appliesTo":     "ALL_CLASSES",
		"validFrom":     "2025-01-01",
		"validUntil":    "2025-12-31",
		"category":      discount.CategoryMultipleStudent,
		"siblingConfig": obj{"maxSiblings": 3},
		"tiers": []obj{
			{"studentsPerFamily": 2, "percentageOff": "5"},
			{"studentsPerFamily": 3, "percentageOff": "10"},
		},
	}
	var d discount.Discount
	resp := app.do(t, http.MethodPost, "/discounts", token, body, http.StatusCreated, &d)
	assert.Equal(t, "Discount created successfully", resp.Message)
	assert.True(t, d.IsActive)
	assert.Equal(t, 0, d.TimesUsed)
	assert.JSONEq(t, `{"maxSiblings": 3}`, string(d.SiblingConfig.JSON))
	require.Len(t, d.Tiers, 2)
	assert.EqualValues(t, 2, d.Tiers[0].StudentsPerFamily.Int)
	assert.True(t, decimal.NewFromInt(10).Equal(d.Tiers[1].PercentageOff))
	path := "/discounts/" + strconv.Itoa(d.ID)

	tests := []httpTest{
		{
			name: "Unknown category", method: http.MethodPost, path: "/discounts", token: token,
			body: marchallObj(t, obj{
				"title": "x", "discountType": discount.TypeFixed, "appliesTo": "ALL", "validFrom": "2025-01-01",
				"validUntil": "2025-02-01", "category": "LOL",
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "Invalid tier", method: http.MethodPost, path: "/discounts", token: token,
			body: marchallObj(t, obj{
				"title": "x", "discountType": discount.TypeFixed, "appliesTo": "ALL", "validFrom": "2025-01-01",
				"validUntil": "2025-02-01", "tiers": []obj{{"studentsPerFamily": 2, "percentageOff": "-5"}},
			}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "Other organization", path: path, token: otherToken, wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Message: "Discount not found"}),
		},
	}
	runTests(t, app, tests)

	// untouched tiers
	resp = app.do(t, http.MethodPatch, path, token, obj{"title": "Siblings 2025", "description": "For families"}, http.StatusOK, &d)
	assert.Equal(t, "Discount updated successfully", resp.Message)
	assert.Equal(t, "Siblings 2025", d.Title)
	assert.Equal(t, "For families", d.Description.String)
	assert.Len(t, d.Tiers, 2)

	// replaced tiers, cleared config
	app.do(t, http.MethodPatch, path, token, obj{
		"siblingConfig": nil,
		"tiers":         []obj{{"classesPerStudent": 4, "percentageOff": "15"}},
	}, http.StatusOK, &d)
	assert.False(t, d.SiblingConfig.Valid)
	require.Len(t, d.Tiers, 1)
	assert.EqualValues(t, 4, d.Tiers[0].ClassesPerStudent.Int)
	assert.False(t, d.Tiers[0].StudentsPerFamily.Valid)

	var discounts []discount.Discount
	resp = app.do(t, http.MethodGet, "/discounts", token, nil, http.StatusOK, &discounts)
	assert.Equal(t, "Discounts retrieved successfully", resp.Message)
	require.Len(t, discounts, 1)
	assert.Len(t, discounts[0].Tiers, 1)

	app.do(t, http.MethodDelete, path, token, nil, http.StatusOK, nil)
	app.do(t, http.MethodGet, path, token, nil, http.StatusNotFound, nil)
}
