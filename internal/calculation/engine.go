package calculation

import (
	"context"

	"github.com/rgehrsitz/plancost/internal/domain"
)

// CalculationEngine runs the plan cost projection over a set of plans
type CalculationEngine struct {
	PlanCalc *PlanCostCalculator
	Logger   Logger
	Debug    bool // Enable per-line-item debug output
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		PlanCalc: NewPlanCostCalculator(),
		Logger:   NopLogger{},
	}
}

// SetLogger replaces the engine logger; nil installs a no-op logger
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// RunPlans projects every plan against the same usage and bills, preserving
// plan order. The only error is context cancellation.
func (ce *CalculationEngine) RunPlans(
	ctx context.Context,
	plans []domain.PlanDefinition,
	usage domain.UsageScenario,
	bills []domain.MedicalBill,
) ([]domain.PlanCostResult, error) {
	if len(plans) > domain.MaxComparedPlans {
		ce.Logger.Warnf("comparing %d plans, more than the usual limit of %d", len(plans), domain.MaxComparedPlans)
	}

	results := make([]domain.PlanCostResult, 0, len(plans))
	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := ce.PlanCalc.Aggregate(plan, usage, bills)
		ce.Logger.Infof("plan %q: basic=%s major=%s drugs=%s bills=%s oop=%s total=%s",
			result.PlanName,
			result.BasicMedical.String(),
			result.MajorMedical.String(),
			result.DrugCosts.String(),
			result.MedicalBills.String(),
			result.TotalOOP.String(),
			result.TotalCost.String())

		if ce.Debug {
			for _, item := range result.Services {
				ce.Logger.Debugf("  %s x%d = %s", item.Label, item.Units, item.Cost.String())
			}
			for _, item := range result.Drugs {
				ce.Logger.Debugf("  %s x%d/mo = %s/yr", item.Label, item.Units, item.Cost.String())
			}
			for _, item := range result.Bills {
				ce.Logger.Debugf("  bill %q = %s", item.Label, item.Cost.String())
			}
		}
		if result.OOPCapApplied {
			ce.Logger.Debugf("plan %q: out-of-pocket capped at %s", result.PlanName, plan.AnnualOOPMax.String())
		}

		results = append(results, result)
	}

	return results, nil
}
