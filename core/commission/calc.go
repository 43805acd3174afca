package commission

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/arisha-glich/class-gecko-backend/core"
)

var hundred = decimal.NewFromInt(100)

// Tier is a bracket of a TIERED commission. A nil UpTo is unbounded.
type Tier struct {
	UpTo  *decimal.Decimal `json:"upTo"`
	Type  string           `json:"type"`
	Value decimal.Decimal  `json:"value"`
}

type TierConfig struct {
	Tiers []Tier `json:"tiers"`
}

// ParseTierConfig decodes the tierConfig column. ok is false when it holds no usable tiers.
func ParseTierConfig(raw []byte) (cfg TierConfig, ok bool) {
	if len(raw) == 0 {
		return TierConfig{}, false
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return TierConfig{}, false
	}
	return cfg, len(cfg.Tiers) > 0
}

// Owed is the commission due on revenue, rounded to cents.
func Owed(revenue decimal.Decimal, c Commission) decimal.Decimal {
	switch c.CommissionType {
	case TypeTiered:
		cfg, ok := ParseTierConfig(c.TierConfig.JSON)
		if !c.TierConfig.Valid || !ok {
			return decimal.Zero
		}
		return core.RoundMoney(cfg.owed(revenue))
	default:
		return core.RoundMoney(amount(c.CommissionType, c.CommissionValue, revenue))
	}
}

// owed applies the first tier whose ceiling covers revenue.
func (cfg TierConfig) owed(revenue decimal.Decimal) decimal.Decimal {
	for _, t := range cfg.Tiers {
		if t.UpTo == nil || t.UpTo.GreaterThanOrEqual(revenue) {
			typ := t.Type
			if typ == "" {
				typ = TypePercentage
			}
			return amount(typ, t.Value, revenue)
		}
	}
	return decimal.Zero
}

func amount(typ string, value, revenue decimal.Decimal) decimal.Decimal {
	switch typ {
	case TypeFixed:
		return value
	case TypePercentage:
		return revenue.Mul(value).Div(hundred)
	}
	return decimal.Zero
}
