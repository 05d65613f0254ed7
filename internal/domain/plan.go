package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxComparedPlans is how many plans a comparison may select at once
const MaxComparedPlans = 6

// PlanDefinition describes one insurance plan and its cost-sharing rules
type PlanDefinition struct {
	ID                     string                   `yaml:"id" json:"id"`
	Name                   string                   `yaml:"name" json:"name"`
	Type                   string                   `yaml:"type,omitempty" json:"type,omitempty"` // free text: HMO, PPO, HDHP...
	AnnualDeductible       decimal.Decimal          `yaml:"annual_deductible" json:"annual_deductible"`
	AnnualOOPMax           decimal.Decimal          `yaml:"annual_oop_max" json:"annual_oop_max"`
	PrescriptionDeductible decimal.Decimal          `yaml:"prescription_deductible" json:"prescription_deductible"`
	Benefits               map[Category]BenefitRule `yaml:"benefits,omitempty" json:"benefits,omitempty"`
	Prescription           map[DrugTier]BenefitRule `yaml:"prescription,omitempty" json:"prescription,omitempty"`

	// Premium is the annual premium, assigned when the plan is selected for comparison
	Premium decimal.Decimal `yaml:"premium,omitempty" json:"premium,omitempty"`
}

// NewPlanDefinition creates an empty plan with a fresh identifier
func NewPlanDefinition(name, planType string) PlanDefinition {
	return PlanDefinition{
		ID:           uuid.NewString(),
		Name:         name,
		Type:         planType,
		Benefits:     map[Category]BenefitRule{},
		Prescription: map[DrugTier]BenefitRule{},
	}
}

// Benefit returns the rule for a service category, if the plan defines one
func (p PlanDefinition) Benefit(c Category) (BenefitRule, bool) {
	rule, ok := p.Benefits[c]
	return rule, ok
}

// DrugBenefit returns the rule for a drug tier, if the plan defines one
func (p PlanDefinition) DrugBenefit(t DrugTier) (BenefitRule, bool) {
	rule, ok := p.Prescription[t]
	return rule, ok
}

// WithPremium returns a copy of the plan carrying the given annual premium.
// The rule maps are copied so the receiver is left untouched.
func (p PlanDefinition) WithPremium(premium decimal.Decimal) PlanDefinition {
	out := p.Clone()
	out.Premium = premium
	return out
}

// Clone returns a deep copy of the plan
func (p PlanDefinition) Clone() PlanDefinition {
	out := p
	if p.Benefits != nil {
		out.Benefits = make(map[Category]BenefitRule, len(p.Benefits))
		for c, r := range p.Benefits {
			out.Benefits[c] = r
		}
	}
	if p.Prescription != nil {
		out.Prescription = make(map[DrugTier]BenefitRule, len(p.Prescription))
		for t, r := range p.Prescription {
			out.Prescription[t] = r
		}
	}
	return out
}
