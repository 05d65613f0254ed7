package calculation

import (
	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
)

// MonthsPerYear annualizes the monthly drug fill counts
const MonthsPerYear = 12

// DefaultBillCoinsurance is the coinsurance rate applied to medical bills
// for plans that define no Emergency Room rule
var DefaultBillCoinsurance = decimal.NewFromInt(20)

// PlanCostCalculator projects the annual cost of a plan under a usage scenario
type PlanCostCalculator struct{}

// NewPlanCostCalculator creates a new plan cost calculator
func NewPlanCostCalculator() *PlanCostCalculator {
	return &PlanCostCalculator{}
}

// Aggregate computes every cost bucket for one plan. It never fails: a
// category without a rule contributes nothing.
func (pc *PlanCostCalculator) Aggregate(
	plan domain.PlanDefinition,
	usage domain.UsageScenario,
	bills []domain.MedicalBill,
) domain.PlanCostResult {

	result := domain.PlanCostResult{
		PlanID:   plan.ID,
		PlanName: plan.Name,
		PlanType: plan.Type,
		Premium:  plan.Premium,
	}

	var services []domain.LineItem
	result.BasicMedical, services = pc.sumCategories(plan, usage, domain.BasicMedicalCategories, services)
	result.MajorMedical, services = pc.sumCategories(plan, usage, domain.MajorMedicalCategories, services)
	result.Services = services

	result.DrugCosts, result.Drugs = pc.drugCosts(plan, usage)
	result.MedicalBills, result.Bills = pc.billCosts(plan, bills)

	uncapped := result.BasicMedical.
		Add(result.MajorMedical).
		Add(result.DrugCosts).
		Add(result.MedicalBills)

	// The cap only engages once the sum is strictly past the deductible.
	result.TotalOOP = uncapped
	if uncapped.GreaterThan(plan.AnnualDeductible) && uncapped.GreaterThan(plan.AnnualOOPMax) {
		result.TotalOOP = plan.AnnualOOPMax
		result.OOPCapApplied = true
	}

	// TotalCost is never capped.
	result.TotalCost = uncapped.Add(plan.Premium)

	return result
}

// sumCategories adds the cost of each category, appending a line item per category
func (pc *PlanCostCalculator) sumCategories(
	plan domain.PlanDefinition,
	usage domain.UsageScenario,
	categories []domain.Category,
	items []domain.LineItem,
) (decimal.Decimal, []domain.LineItem) {
	total := decimal.Zero
	for _, c := range categories {
		units := usage.Visits(c)
		var cost decimal.Decimal
		if rule, ok := plan.Benefit(c); ok {
			cost = BenefitCost(&rule, units, c.ReferencePrice())
		}
		total = total.Add(cost)
		items = append(items, domain.LineItem{Label: c.String(), Units: units, Cost: cost})
	}
	return total, items
}

// drugCosts prices one month of fills per tier and annualizes the sum
func (pc *PlanCostCalculator) drugCosts(plan domain.PlanDefinition, usage domain.UsageScenario) (decimal.Decimal, []domain.LineItem) {
	months := decimal.NewFromInt(MonthsPerYear)
	monthly := decimal.Zero
	items := make([]domain.LineItem, 0, len(domain.DrugTiers()))

	for _, t := range domain.DrugTiers() {
		fills := usage.Fills(t)
		var cost decimal.Decimal
		if rule, ok := plan.DrugBenefit(t); ok {
			cost = BenefitCost(&rule, fills, t.ReferencePrice())
		}
		monthly = monthly.Add(cost)
		items = append(items, domain.LineItem{Label: t.String(), Units: fills, Cost: cost.Mul(months)})
	}

	return monthly.Mul(months), items
}

// billCosts prices each bill as a single unit under the plan's ER rule
func (pc *PlanCostCalculator) billCosts(plan domain.PlanDefinition, bills []domain.MedicalBill) (decimal.Decimal, []domain.LineItem) {
	rule := pc.BillRule(plan)
	total := decimal.Zero
	items := make([]domain.LineItem, 0, len(bills))

	for _, bill := range bills {
		cost := BenefitCost(&rule, 1, bill.Amount)
		total = total.Add(cost)
		items = append(items, domain.LineItem{Label: bill.Description, Units: 1, Cost: cost})
	}

	return total, items
}

// BillRule returns the rule medical bills are priced under: the plan's
// Emergency Room rule, or deductible then 20% coinsurance when it has none
func (pc *PlanCostCalculator) BillRule(plan domain.PlanDefinition) domain.BenefitRule {
	if rule, ok := plan.Benefit(domain.EmergencyRoom); ok {
		return rule
	}
	return domain.DeductibleCoinsurance(plan.AnnualDeductible, DefaultBillCoinsurance)
}
