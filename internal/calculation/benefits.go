package calculation

import (
	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// BenefitCost returns the patient's share for units of a service billed at
// unitPrice each, under rule. A nil rule or zero units costs nothing.
func BenefitCost(rule *domain.BenefitRule, units int, unitPrice decimal.Decimal) decimal.Decimal {
	if rule == nil || units <= 0 {
		return decimal.Zero
	}

	n := decimal.NewFromInt(int64(units))
	billed := n.Mul(unitPrice)

	switch rule.Kind {
	case domain.KindCopay:
		return n.Mul(rule.Amount)

	case domain.KindDeductible:
		return decimal.Min(billed, rule.Amount)

	case domain.KindDeductibleCoinsurance:
		deductiblePart := decimal.Min(billed, rule.Amount)
		remaining := decimal.Max(decimal.Zero, billed.Sub(rule.Amount))
		return deductiblePart.Add(remaining.Mul(rule.Percentage).Div(hundred))

	case domain.KindCoinsurance:
		return billed.Mul(rule.Percentage).Div(hundred)

	case domain.KindDeductibleCopay:
		return decimal.Min(billed, rule.Amount).Add(n.Mul(rule.CopayAddOn))

	case domain.KindOther:
		return billed
	}

	// Kinds outside the enumeration get the same treatment as KindOther.
	return billed
}
