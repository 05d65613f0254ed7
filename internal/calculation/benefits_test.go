package calculation

import (
	"testing"

	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestBenefitCost_ZeroUnitsOrNoRule(t *testing.T) {
	rules := []domain.BenefitRule{
		domain.Copay(dec(25)),
		domain.Deductible(dec(1000)),
		domain.DeductibleCoinsurance(dec(500), dec(20)),
		domain.Coinsurance(dec(30)),
		domain.DeductibleCopay(dec(500), dec(15)),
		{Kind: domain.KindOther},
	}

	for _, rule := range rules {
		rule := rule
		t.Run(rule.Kind.String(), func(t *testing.T) {
			assert.True(t, BenefitCost(&rule, 0, dec(150)).IsZero(), "zero units should cost nothing")
		})
	}

	assert.True(t, BenefitCost(nil, 4, dec(150)).IsZero(), "missing rule should cost nothing")
}

func TestBenefitCost_Formulas(t *testing.T) {
	tests := []struct {
		name      string
		rule      domain.BenefitRule
		units     int
		unitPrice decimal.Decimal
		expected  decimal.Decimal
	}{
		{
			name:      "copay ignores billed amount",
			rule:      domain.Copay(dec(25)),
			units:     2,
			unitPrice: dec(150),
			expected:  dec(50),
		},
		{
			name:      "deductible below cap pays billed",
			rule:      domain.Deductible(dec(1000)),
			units:     1,
			unitPrice: dec(200),
			expected:  dec(200),
		},
		{
			name:      "deductible above cap pays cap",
			rule:      domain.Deductible(dec(1000)),
			units:     3,
			unitPrice: dec(800),
			expected:  dec(1000),
		},
		{
			name:      "deductible coinsurance splits remainder",
			rule:      domain.DeductibleCoinsurance(dec(2000), dec(20)),
			units:     3,
			unitPrice: dec(2000),
			expected:  dec(2800),
		},
		{
			name:      "deductible coinsurance under deductible",
			rule:      domain.DeductibleCoinsurance(dec(2000), dec(20)),
			units:     1,
			unitPrice: dec(500),
			expected:  dec(500),
		},
		{
			name:      "coinsurance percentage of billed",
			rule:      domain.Coinsurance(dec(30)),
			units:     2,
			unitPrice: dec(75),
			expected:  dec(45),
		},
		{
			name:      "coinsurance keeps cents",
			rule:      domain.Coinsurance(dec(15)),
			units:     1,
			unitPrice: dec(75),
			expected:  decimal.RequireFromString("11.25"),
		},
		{
			name:      "deductible copay adds per unit copay",
			rule:      domain.DeductibleCopay(dec(500), dec(15)),
			units:     2,
			unitPrice: dec(800),
			expected:  dec(530),
		},
		{
			name:      "deductible copay with no add on",
			rule:      domain.BenefitRule{Kind: domain.KindDeductibleCopay, Amount: dec(100)},
			units:     2,
			unitPrice: dec(200),
			expected:  dec(100),
		},
		{
			name:      "other kind pays full billed",
			rule:      domain.BenefitRule{Kind: domain.KindOther, Amount: dec(10), Percentage: dec(50)},
			units:     3,
			unitPrice: dec(200),
			expected:  dec(600),
		},
		{
			name:      "unparsed kind pays full billed",
			rule:      domain.BenefitRule{Kind: domain.ParseBenefitKind("tiered_copay"), Amount: dec(10)},
			units:     1,
			unitPrice: dec(1500),
			expected:  dec(1500),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BenefitCost(&tt.rule, tt.units, tt.unitPrice)
			assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
		})
	}
}

func TestBenefitCost_CopayScalesLinearly(t *testing.T) {
	rule := domain.Copay(dec(35))
	for units := 1; units <= 10; units++ {
		single := BenefitCost(&rule, units, dec(200))
		double := BenefitCost(&rule, 2*units, dec(200))
		assert.True(t, double.Equal(single.Mul(dec(2))), "units=%d", units)
	}
}

func TestBenefitCost_DeductibleNeverExceedsCapOrBilled(t *testing.T) {
	rule := domain.Deductible(dec(1200))
	price := dec(350)
	for units := 1; units <= 8; units++ {
		billed := price.Mul(dec(int64(units)))
		got := BenefitCost(&rule, units, price)
		assert.True(t, got.Equal(decimal.Min(billed, rule.Amount)), "units=%d got %s", units, got)
		assert.True(t, got.LessThanOrEqual(rule.Amount))
		assert.True(t, got.LessThanOrEqual(billed))
	}
}

func TestBenefitCost_CoinsuranceExact(t *testing.T) {
	for pct := int64(0); pct <= 100; pct += 5 {
		rule := domain.Coinsurance(dec(pct))
		billed := dec(4 * 800)
		expected := billed.Mul(dec(pct)).Div(dec(100))
		got := BenefitCost(&rule, 4, dec(800))
		assert.True(t, expected.Equal(got), "pct=%d expected %s got %s", pct, expected, got)
	}
}

func TestBenefitCost_MedicalBillWithSyntheticRule(t *testing.T) {
	rule := domain.DeductibleCoinsurance(dec(1000), dec(20))
	got := BenefitCost(&rule, 1, dec(5000))
	assert.True(t, dec(1800).Equal(got), "expected 1800, got %s", got)
}
