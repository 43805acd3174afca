package discount

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestNewDiscount_Discount(t *testing.T) {
	var nd NewDiscount
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": " Siblings ",
		"discountType": "PERCENTAGE",
		"discountValue": 10,
		"appliesTo": "ALL_CLASSES",
		"siblingConfig": null,
		"applicableClassIds": [1, 2],
		"validFrom": "2025-01-01",
		"validUntil": "2025-12-31",
		"tiers": [{"studentsPerFamily": 2, "percentageOff": 5}]
	}`), &nd))

	d := nd.Discount("owner")
	assert.Equal(t, null.StringFrom("owner"), d.UserID)
	assert.Equal(t, "Siblings", d.Title)
	assert.True(t, d.IsActive)
	assert.False(t, d.SiblingConfig.Valid)
	assert.JSONEq(t, `[1, 2]`, string(d.ApplicableClassIDs.JSON))
	assert.False(t, d.ApplicableClassTypes.Valid)
	require.Len(t, d.Tiers, 1)
	assert.Equal(t, null.IntFrom(2), d.Tiers[0].StudentsPerFamily)
	assert.False(t, d.Tiers[0].ClassesPerStudent.Valid)

	inactive := false
	nd.IsActive = &inactive
	nd.Tiers = nil
	d = nd.Discount("owner")
	assert.False(t, d.IsActive)
	assert.NotNil(t, d.Tiers)
	assert.Empty(t, d.Tiers)
}

func TestUpdateDiscount_Apply(t *testing.T) {
	d := Discount{
		Title:         "Siblings",
		Description:   null.StringFrom("For families"),
		DiscountValue: decimal.NewFromInt(10),
		IsActive:      true,
		SiblingConfig: null.JSONFrom([]byte(`{"maxSiblings": 3}`)),
		MaxUsesTotal:  null.IntFrom(100),
		Tiers:         []Tier{{ID: 1, PercentageOff: decimal.NewFromInt(5)}},
	}

	tests := []struct {
		name        string
		body        string
		wantReplace bool
		check       func(t *testing.T, d Discount)
	}{
		{
			name: "scalar fields",
			body: `{"title": " Siblings 2025 ", "discountValue": 15, "isActive": false}`,
			check: func(t *testing.T, d Discount) {
				assert.Equal(t, "Siblings 2025", d.Title)
				assert.True(t, decimal.NewFromInt(15).Equal(d.DiscountValue))
				assert.False(t, d.IsActive)
				assert.Equal(t, null.StringFrom("For families"), d.Description)
				assert.Len(t, d.Tiers, 1)
			},
		},
		{
			name: "explicit nulls",
			body: `{"description": null, "siblingConfig": null, "maxUsesTotal": null}`,
			check: func(t *testing.T, d Discount) {
				assert.False(t, d.Description.Valid)
				assert.False(t, d.SiblingConfig.Valid)
				assert.False(t, d.MaxUsesTotal.Valid)
			},
		},
		{
			name:        "tiers replaced",
			body:        `{"tiers": [{"classesPerStudent": 3, "percentageOff": 10}, {"classesPerStudent": 5, "percentageOff": 20}]}`,
			wantReplace: true,
			check: func(t *testing.T, d Discount) {
				require.Len(t, d.Tiers, 2)
				assert.Zero(t, d.Tiers[0].ID)
				assert.Equal(t, null.IntFrom(5), d.Tiers[1].ClassesPerStudent)
			},
		},
		{
			name:        "tiers emptied",
			body:        `{"tiers": []}`,
			wantReplace: true,
			check: func(t *testing.T, d Discount) {
				assert.Empty(t, d.Tiers)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u UpdateDiscount
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			got := d
			got.Tiers = append([]Tier(nil), d.Tiers...)
			assert.Equal(t, tt.wantReplace, u.Apply(&got))
			tt.check(t, got)
		})
	}
}
