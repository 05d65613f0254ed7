package compare

import (
	"encoding/csv"
	"strings"

	"github.com/rgehrsitz/plancost/internal/domain"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results, one row per plan
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Plan",
		"Type",
		"Basic Medical",
		"Major Medical",
		"Drug Costs",
		"Medical Bills",
		"Total Out-of-Pocket",
		"Premium",
		"Total Cost",
		"OOP Cap Applied",
		"Rank",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, result := range compSet.Results {
		if err := writer.Write(cf.formatRow(result, rankLabels(compSet.Ranking, result))); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a plan result as a CSV row
func (cf *CSVFormatter) formatRow(result domain.PlanCostResult, labels []string) []string {
	capped := "no"
	if result.OOPCapApplied {
		capped = "yes"
	}
	return []string{
		result.PlanName,
		result.PlanType,
		result.BasicMedical.StringFixed(2),
		result.MajorMedical.StringFixed(2),
		result.DrugCosts.StringFixed(2),
		result.MedicalBills.StringFixed(2),
		result.TotalOOP.StringFixed(2),
		result.Premium.StringFixed(2),
		result.TotalCost.StringFixed(2),
		capped,
		strings.Join(labels, "; "),
	}
}

// rankLabels lists the ranking titles a plan holds
func rankLabels(rank *domain.RankSummary, result domain.PlanCostResult) []string {
	if rank == nil {
		return nil
	}
	var labels []string
	if rank.BestValue.PlanID == result.PlanID {
		labels = append(labels, "Best Value")
	}
	if rank.BestWorstCase.PlanID == result.PlanID {
		labels = append(labels, "Best Worst Case")
	}
	if rank.LowestOOP.PlanID == result.PlanID {
		labels = append(labels, "Lowest OOP")
	}
	if rank.HighestOOP.PlanID == result.PlanID {
		labels = append(labels, "Highest OOP")
	}
	return labels
}
