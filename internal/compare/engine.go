package compare

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/plancost/internal/calculation"
	"github.com/rgehrsitz/plancost/internal/domain"
)

// CompareEngine orchestrates plan comparison
type CompareEngine struct {
	CalcEngine *calculation.CalculationEngine
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{CalcEngine: calcEngine}
}

// Compare projects every plan and, when at least two were given, ranks them
func (ce *CompareEngine) Compare(
	ctx context.Context,
	plans []domain.PlanDefinition,
	usage domain.UsageScenario,
	bills []domain.MedicalBill,
) (*ComparisonSet, error) {

	results, err := ce.CalcEngine.RunPlans(ctx, plans, usage, bills)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate plan costs: %w", err)
	}

	compSet := &ComparisonSet{
		Usage:   usage,
		Bills:   bills,
		Results: results,
	}

	rank, err := Rank(results)
	switch {
	case errors.Is(err, ErrInsufficientPlans):
		ce.CalcEngine.Logger.Debugf("%d plan(s) selected, ranking suppressed", len(results))
	case err != nil:
		return nil, err
	default:
		compSet.Ranking = &rank
	}

	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

// CompareConfiguration compares the selected plans of a loaded configuration
func (ce *CompareEngine) CompareConfiguration(ctx context.Context, config *domain.Configuration) (*ComparisonSet, error) {
	return ce.Compare(ctx, config.SelectedPlans(), config.Usage, config.Bills)
}
