package compare

import (
	"errors"

	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInsufficientPlans is returned when ranking fewer than two plans
var ErrInsufficientPlans = errors.New("ranking requires at least two plans")

// Rank picks the standout plans. Ties go to the plan that appears first.
func Rank(results []domain.PlanCostResult) (domain.RankSummary, error) {
	if len(results) < 2 {
		return domain.RankSummary{}, ErrInsufficientPlans
	}

	totalCost := func(r domain.PlanCostResult) decimal.Decimal { return r.TotalCost }
	worstCase := func(r domain.PlanCostResult) decimal.Decimal { return r.WorstCase() }
	totalOOP := func(r domain.PlanCostResult) decimal.Decimal { return r.TotalOOP }

	return domain.RankSummary{
		BestValue:     results[pick(results, totalCost, lower)],
		BestWorstCase: results[pick(results, worstCase, lower)],
		HighestOOP:    results[pick(results, totalOOP, higher)],
		LowestOOP:     results[pick(results, totalOOP, lower)],
	}, nil
}

func lower(a, b decimal.Decimal) bool  { return a.LessThan(b) }
func higher(a, b decimal.Decimal) bool { return a.GreaterThan(b) }

// pick returns the index of the first result whose key beats every earlier one.
// Only a strict improvement replaces the current pick, keeping ties stable.
func pick(results []domain.PlanCostResult, key func(domain.PlanCostResult) decimal.Decimal, better func(a, b decimal.Decimal) bool) int {
	best := 0
	for i := 1; i < len(results); i++ {
		if better(key(results[i]), key(results[best])) {
			best = i
		}
	}
	return best
}
