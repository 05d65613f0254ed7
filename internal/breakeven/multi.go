package breakeven

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/plancost/internal/domain"
)

// SolveAll sweeps every service in turn and reports which ones can change
// the best value plan within the sweep bound
func (s *Solver) SolveAll(
	ctx context.Context,
	plans []domain.PlanDefinition,
	usage domain.UsageScenario,
	bills []domain.MedicalBill,
	maxVisits int,
) (*MultiResult, error) {

	multi := &MultiResult{}

	for _, service := range domain.Categories() {
		result, err := s.Solve(ctx, Request{
			Plans:     plans,
			Usage:     usage,
			Bills:     bills,
			Service:   service,
			MaxVisits: maxVisits,
		})
		if err != nil {
			return nil, err
		}

		multi.Results = append(multi.Results, *result)
		if !result.Stable() {
			multi.Sensitive = append(multi.Sensitive, service)
		}
	}

	multi.Recommendations = generateRecommendations(multi)

	return multi, nil
}

func generateRecommendations(multi *MultiResult) []string {
	var recommendations []string

	for _, result := range multi.Results {
		for _, c := range result.Crossovers {
			if c.Visits > result.BaseVisits {
				recommendations = append(recommendations, fmt.Sprintf(
					"%s: from %d visits, %s replaces %s as the best value",
					result.Service, c.Visits, c.To, c.From))
				continue
			}
			// Walking down from the base usage reverses the crossover
			recommendations = append(recommendations, fmt.Sprintf(
				"%s: below %d visits, %s replaces %s as the best value",
				result.Service, c.Visits, c.From, c.To))
		}
	}

	if len(recommendations) == 0 && len(multi.Results) > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"%s stays the best value across every service sweep",
			multi.Results[0].Base.PlanName))
	}

	return recommendations
}
