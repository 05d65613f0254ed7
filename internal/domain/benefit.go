package domain

import (
	"github.com/shopspring/decimal"
)

// BenefitKind selects the cost-sharing formula of a BenefitRule
type BenefitKind int

const (
	// KindOther covers missing or unrecognized kinds; the patient pays the full billed amount
	KindOther BenefitKind = iota
	KindCopay
	KindDeductible
	KindDeductibleCoinsurance
	KindCoinsurance
	KindDeductibleCopay
)

var benefitKindNames = map[BenefitKind]string{
	KindOther:                 "other",
	KindCopay:                 "copay",
	KindDeductible:            "deductible",
	KindDeductibleCoinsurance: "deductible_coinsurance",
	KindCoinsurance:           "coinsurance",
	KindDeductibleCopay:       "deductible_copay",
}

// ParseBenefitKind never fails: anything it does not recognize is KindOther
func ParseBenefitKind(s string) BenefitKind {
	for k, name := range benefitKindNames {
		if name == s && k != KindOther {
			return k
		}
	}
	return KindOther
}

func (k BenefitKind) String() string {
	if name, ok := benefitKindNames[k]; ok {
		return name
	}
	return benefitKindNames[KindOther]
}

func (k BenefitKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BenefitKind) UnmarshalText(text []byte) error {
	*k = ParseBenefitKind(string(text))
	return nil
}

// BenefitRule is the cost-sharing rule for one service category or drug tier
type BenefitRule struct {
	Kind BenefitKind `yaml:"kind" json:"kind"`
	// Amount is the copay, or the deductible cap for deductible-bearing kinds
	Amount decimal.Decimal `yaml:"amount" json:"amount"`
	// Percentage is the coinsurance rate in whole percent (0-100)
	Percentage decimal.Decimal `yaml:"percentage,omitempty" json:"percentage,omitempty"`
	// CopayAddOn is the per-unit copay charged on top of the deductible by deductible_copay
	CopayAddOn decimal.Decimal `yaml:"copay_add_on,omitempty" json:"copay_add_on,omitempty"`
}

// Copay returns a flat per-unit copay rule
func Copay(amount decimal.Decimal) BenefitRule {
	return BenefitRule{Kind: KindCopay, Amount: amount}
}

// Coinsurance returns a rule charging pct percent of the billed amount
func Coinsurance(pct decimal.Decimal) BenefitRule {
	return BenefitRule{Kind: KindCoinsurance, Percentage: pct}
}

// Deductible returns a rule charging the billed amount up to limit
func Deductible(limit decimal.Decimal) BenefitRule {
	return BenefitRule{Kind: KindDeductible, Amount: limit}
}

// DeductibleCoinsurance returns a rule charging up to limit, then pct percent of the remainder
func DeductibleCoinsurance(limit, pct decimal.Decimal) BenefitRule {
	return BenefitRule{Kind: KindDeductibleCoinsurance, Amount: limit, Percentage: pct}
}

// DeductibleCopay returns a rule charging up to limit plus addOn per unit
func DeductibleCopay(limit, addOn decimal.Decimal) BenefitRule {
	return BenefitRule{Kind: KindDeductibleCopay, Amount: limit, CopayAddOn: addOn}
}
