package domain

import (
	"github.com/shopspring/decimal"
)

// LineItem is the projected patient cost for one category or drug tier
type LineItem struct {
	Label string          `json:"label"`
	Units int             `json:"units"`
	Cost  decimal.Decimal `json:"cost"`
}

// PlanCostResult is the projected annual cost of one plan under one usage scenario
type PlanCostResult struct {
	PlanID   string `json:"planId"`
	PlanName string `json:"planName"`
	PlanType string `json:"planType,omitempty"`

	BasicMedical decimal.Decimal `json:"basicMedical"`
	MajorMedical decimal.Decimal `json:"majorMedical"`
	DrugCosts    decimal.Decimal `json:"drugCosts"`    // annualized (monthly fills x 12)
	MedicalBills decimal.Decimal `json:"medicalBills"` // ad-hoc bills priced against the ER rule

	// TotalOOP is the component sum, capped at the OOP maximum once it passes the deductible
	TotalOOP decimal.Decimal `json:"totalOOP"`
	Premium  decimal.Decimal `json:"premium"`
	// TotalCost is the uncapped component sum plus premium
	TotalCost     decimal.Decimal `json:"totalCost"`
	OOPCapApplied bool            `json:"oopCapApplied"`

	Services []LineItem `json:"services,omitempty"`
	Drugs    []LineItem `json:"drugs,omitempty"`
	Bills    []LineItem `json:"bills,omitempty"`
}

// WorstCase is the total OOP plus premium
func (r PlanCostResult) WorstCase() decimal.Decimal {
	return r.TotalOOP.Add(r.Premium)
}

// RankSummary names the standout plans of a comparison
type RankSummary struct {
	BestValue     PlanCostResult `json:"bestValue"`
	BestWorstCase PlanCostResult `json:"bestWorstCase"`
	HighestOOP    PlanCostResult `json:"highestOOP"`
	LowestOOP     PlanCostResult `json:"lowestOOP"`
}

// PlanSelection picks a plan for comparison and assigns its premium
type PlanSelection struct {
	PlanID  string          `yaml:"plan_id" json:"plan_id"`
	Premium decimal.Decimal `yaml:"premium" json:"premium"`
}

// Configuration is a complete comparison request: candidate plans, the plans
// selected for comparison, the usage scenario and the ad-hoc bills.
type Configuration struct {
	Plans    []PlanDefinition `yaml:"plans" json:"plans"`
	Selected []PlanSelection  `yaml:"selected,omitempty" json:"selected,omitempty"`
	Usage    UsageScenario    `yaml:"usage" json:"usage"`
	Bills    []MedicalBill    `yaml:"bills,omitempty" json:"bills,omitempty"`

	// Stored holds plans from a plan store. They resolve selected ids but are
	// never compared unless selected.
	Stored []PlanDefinition `yaml:"-" json:"-"`
}

// FindPlan looks up a candidate plan by id. Plans defined in the
// configuration shadow stored plans with the same id.
func (c *Configuration) FindPlan(id string) (PlanDefinition, bool) {
	for _, p := range c.Plans {
		if p.ID == id {
			return p, true
		}
	}
	for _, p := range c.Stored {
		if p.ID == id {
			return p, true
		}
	}
	return PlanDefinition{}, false
}

// SelectedPlans returns the plans to compare, in selection order, each carrying
// its selected premium. With no explicit selection every plan defined in the
// configuration is compared with the premium recorded on it. Unknown ids are skipped; validation reports them.
func (c *Configuration) SelectedPlans() []PlanDefinition {
	if len(c.Selected) == 0 {
		out := make([]PlanDefinition, 0, len(c.Plans))
		for _, p := range c.Plans {
			out = append(out, p.Clone())
		}
		return out
	}

	out := make([]PlanDefinition, 0, len(c.Selected))
	for _, sel := range c.Selected {
		if p, ok := c.FindPlan(sel.PlanID); ok {
			out = append(out, p.WithPremium(sel.Premium))
		}
	}
	return out
}
