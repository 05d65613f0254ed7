package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/plancost/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty   bool // If true, format with indentation
	Detailed bool // If true, keep per-service line items
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	out := *compSet
	if !jf.Detailed {
		out.Results = make([]domain.PlanCostResult, len(compSet.Results))
		for i, r := range compSet.Results {
			out.Results[i] = withoutLineItems(r)
		}
		if compSet.Ranking != nil {
			rank := domain.RankSummary{
				BestValue:     withoutLineItems(compSet.Ranking.BestValue),
				BestWorstCase: withoutLineItems(compSet.Ranking.BestWorstCase),
				HighestOOP:    withoutLineItems(compSet.Ranking.HighestOOP),
				LowestOOP:     withoutLineItems(compSet.Ranking.LowestOOP),
			}
			out.Ranking = &rank
		}
	}

	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(out, "", "  ")
	} else {
		data, err = json.Marshal(out)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func withoutLineItems(r domain.PlanCostResult) domain.PlanCostResult {
	r.Services, r.Drugs, r.Bills = nil, nil, nil
	return r
}
