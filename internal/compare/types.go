package compare

import (
	"fmt"

	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
)

// ComparisonSet is the outcome of comparing plans under one usage scenario
type ComparisonSet struct {
	Usage           domain.UsageScenario    `json:"usage"`
	Bills           []domain.MedicalBill    `json:"bills,omitempty"`
	Results         []domain.PlanCostResult `json:"results"`
	Ranking         *domain.RankSummary     `json:"ranking,omitempty"` // nil with fewer than two plans
	Recommendations []string                `json:"recommendations"`
	ConfigPath      string                  `json:"configPath,omitempty"`
}

// GenerateRecommendations describes the ranking in plain sentences
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.Ranking == nil {
		return recommendations
	}
	rank := compSet.Ranking

	// Savings of the best value plan against the most expensive one
	mostExpensive := compSet.Results[0]
	for _, r := range compSet.Results[1:] {
		if r.TotalCost.GreaterThan(mostExpensive.TotalCost) {
			mostExpensive = r
		}
	}
	savings := mostExpensive.TotalCost.Sub(rank.BestValue.TotalCost)
	if savings.IsPositive() {
		recommendations = append(recommendations,
			"Best Value: "+rank.BestValue.PlanName+" saves $"+savings.StringFixed(2)+
				" per year compared to "+mostExpensive.PlanName)
	} else {
		recommendations = append(recommendations,
			"Best Value: all plans project the same total cost of $"+rank.BestValue.TotalCost.StringFixed(2))
	}

	recommendations = append(recommendations,
		"Best Worst Case: "+rank.BestWorstCase.PlanName+" limits premium plus out-of-pocket to $"+
			rank.BestWorstCase.WorstCase().StringFixed(2))

	spread := rank.HighestOOP.TotalOOP.Sub(rank.LowestOOP.TotalOOP)
	if spread.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Out-of-Pocket Range: %s ($%s) to %s ($%s), a spread of $%s",
				rank.LowestOOP.PlanName, rank.LowestOOP.TotalOOP.StringFixed(2),
				rank.HighestOOP.PlanName, rank.HighestOOP.TotalOOP.StringFixed(2),
				spread.StringFixed(2)))
	}

	for _, r := range compSet.Results {
		if r.OOPCapApplied {
			recommendations = append(recommendations,
				"Capped: "+r.PlanName+" reaches its out-of-pocket maximum at this usage level")
		}
	}

	return recommendations
}

// SavingsVersus returns how much less result costs in total than other
func SavingsVersus(result, other domain.PlanCostResult) decimal.Decimal {
	return other.TotalCost.Sub(result.TotalCost)
}
