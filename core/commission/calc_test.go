package commission

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/volatiletech/null/v8"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestOwed(t *testing.T) {
	tiers := null.JSONFrom([]byte(`{"tiers":[
		{"upTo":1000,"type":"PERCENTAGE","value":10},
		{"upTo":5000,"type":"PERCENTAGE","value":5},
		{"upTo":null,"type":"FIXED","value":300}
	]}`))

	tests := []struct {
		name    string
		revenue string
		comm    Commission
		want    string
	}{
		{"percentage", "1234.56", Commission{CommissionType: TypePercentage, CommissionValue: dec("10")}, "123.46"},
		{"percentage rounds half up", "0.05", Commission{CommissionType: TypePercentage, CommissionValue: dec("10")}, "0.01"},
		{"fixed ignores revenue", "99999", Commission{CommissionType: TypeFixed, CommissionValue: dec("25.5")}, "25.5"},
		{"tiered first bracket", "800", Commission{CommissionType: TypeTiered, TierConfig: tiers}, "80"},
		{"tiered bracket ceiling is inclusive", "1000", Commission{CommissionType: TypeTiered, TierConfig: tiers}, "100"},
		{"tiered second bracket", "2000.10", Commission{CommissionType: TypeTiered, TierConfig: tiers}, "100.01"},
		{"tiered unbounded bracket", "10000", Commission{CommissionType: TypeTiered, TierConfig: tiers}, "300"},
		{"tiered without config", "10000", Commission{CommissionType: TypeTiered}, "0"},
		{"tiered with bad config", "10000", Commission{CommissionType: TypeTiered, TierConfig: null.JSONFrom([]byte(`[1,2]`))}, "0"},
		{"tiered with no tiers", "10000", Commission{CommissionType: TypeTiered, TierConfig: null.JSONFrom([]byte(`{"tiers":[]}`))}, "0"},
		{"unknown type", "10000", Commission{CommissionType: "BOGUS", CommissionValue: dec("5")}, "0"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Owed(dec(tc.revenue), tc.comm)
			assert.True(t, dec(tc.want).Equal(got), "want %s, got %s", tc.want, got)
		})
	}
}

func TestTieredCeilingNotCovered(t *testing.T) {
	c := Commission{
		CommissionType: TypeTiered,
		TierConfig:     null.JSONFrom([]byte(`{"tiers":[{"upTo":100,"value":50}]}`)),
	}
	assert.True(t, Owed(dec("100"), c).Equal(dec("50")), "type defaults to PERCENTAGE")
	assert.True(t, Owed(dec("101"), c).IsZero())
}

func TestBusinessName(t *testing.T) {
	id := 3
	assert.Equal(t, GlobalBusinessName, Commission{}.BusinessName())
	assert.Equal(t, UnknownBusinessName, Commission{BusinessID: &id}.BusinessName())
}
