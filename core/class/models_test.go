package class

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestNewSchedule_Schedule(t *testing.T) {
	capacity := 12
	yes := true
	ns := NewSchedule{
		Title:             "  Ballet ",
		StartDate:         "2025-01-06",
		EndDate:           "2025-03-31T00:00:00Z",
		Frequency:         FrequencyWeekly,
		StartTimeOfClass:  "16:00",
		Duration:          60,
		PricingPerLesson:  decimal.RequireFromString("9.999"),
		Capacity:          &capacity,
		FamilyPortalTrial: &yes,
	}

	s := ns.Schedule(TypeOngoing)
	assert.Equal(t, "Ballet", s.Title)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), s.StartDate)
	assert.Equal(t, time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), s.EndDate)
	assert.True(t, decimal.NewFromInt(10).Equal(s.PricingPerLesson))
	assert.Equal(t, TypeOngoing, s.ClassType)
	assert.Equal(t, null.IntFrom(12), s.Capacity)
	assert.False(t, s.RecurringDay.Valid)

	// defaults
	assert.False(t, s.LimitCapacity)
	assert.True(t, s.AllowPortalBooking)
	assert.True(t, s.FamilyPortalTrial)
	assert.False(t, s.GlobalClassDiscount)
	assert.False(t, s.SiblingDiscount)

	assert.Equal(t, TypeDropIn, ns.Schedule(TypeDropIn).ClassType)
	ns.ClassType = TypeDropIn
	assert.Equal(t, TypeDropIn, ns.Schedule(TypeOngoing).ClassType)

	termID := 4
	c := NewClass{NewSchedule: ns, TermID: &termID}.Class()
	require.NotNil(t, c.TermID)
	assert.Equal(t, 4, *c.TermID)
}

func TestUpdateClass_Apply(t *testing.T) {
	termID, locationID := 1, 2
	c := Class{
		TermID: &termID,
		Term:   &TermRef{ID: termID},
		Schedule: Schedule{
			LocationID:       &locationID,
			Title:            "Ballet",
			RecurringDay:     null.StringFrom("Monday"),
			Capacity:         null.IntFrom(10),
			PricingPerLesson: decimal.NewFromInt(10),
			ClassColor:       null.StringFrom("#fff"),
		},
	}

	var u UpdateClass
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": " Jazz ",
		"recurringDay": null,
		"capacity": 20,
		"pricingPerLesson": 12.345,
		"termId": 3,
		"limitCapacity": true
	}`), &u))
	u.Apply(&c)

	assert.Equal(t, "Jazz", c.Title)
	assert.False(t, c.RecurringDay.Valid)
	assert.Equal(t, null.IntFrom(20), c.Capacity)
	assert.True(t, decimal.RequireFromString("12.35").Equal(c.PricingPerLesson))
	assert.True(t, c.LimitCapacity)
	require.NotNil(t, c.TermID)
	assert.Equal(t, 3, *c.TermID)
	assert.Nil(t, c.Term)

	// untouched
	assert.Equal(t, null.StringFrom("#fff"), c.ClassColor)
	require.NotNil(t, c.LocationID)
	assert.Equal(t, 2, *c.LocationID)

	u = UpdateClass{}
	require.NoError(t, json.Unmarshal([]byte(`{"locationId": null, "termId": null}`), &u))
	u.Apply(&c)
	assert.Nil(t, c.LocationID)
	assert.Nil(t, c.TermID)
	assert.Equal(t, "Jazz", c.Title)
}
