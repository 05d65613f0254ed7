package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats break-even sweeps as console tables
type TableFormatter struct {
	ShowPoints bool // If true, list the best value plan at every visit count
}

// Format generates a formatted report for one service sweep
func (tf *TableFormatter) Format(result *Result) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Service:          %s\n", result.Service))
	sb.WriteString(fmt.Sprintf("Expected Visits:  %d\n", result.BaseVisits))
	sb.WriteString(fmt.Sprintf("Best Value Now:   %s ($%s)\n", result.Base.PlanName, tf.formatCurrency(result.Base.TotalCost)))
	sb.WriteString(fmt.Sprintf("Evaluations:      %d\n", result.Evaluations))
	sb.WriteString("\n")

	sb.WriteString("CROSSOVERS\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	if result.Stable() {
		sb.WriteString(fmt.Sprintf("None: %s is the best value at every visit count swept\n", result.Base.PlanName))
	}
	for _, c := range result.Crossovers {
		sb.WriteString(fmt.Sprintf("%4d visits  %s -> %s\n", c.Visits, tf.truncate(c.From, 30), tf.truncate(c.To, 30)))
	}
	sb.WriteString("\n")

	if tf.ShowPoints {
		sb.WriteString(fmt.Sprintf("%6s  %-30s %14s\n", "Visits", "Best Value", "Total Cost"))
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, p := range result.Points {
			sb.WriteString(fmt.Sprintf("%6d  %-30s %14s\n", p.Visits, tf.truncate(p.PlanName, 30), "$"+tf.formatCurrency(p.TotalCost)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatMulti formats sweeps of every service
func (tf *TableFormatter) FormatMulti(result *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN ANALYSIS BY SERVICE\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("%-24s %8s %-28s %12s\n", "Service", "Visits", "Best Value Now", "Crossovers"))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	for _, res := range result.Results {
		sb.WriteString(fmt.Sprintf("%-24s %8d %-28s %12d\n",
			tf.truncate(res.Service.String(), 24),
			res.BaseVisits,
			tf.truncate(res.Base.PlanName, 28),
			len(res.Crossovers)))
	}
	sb.WriteString("\n")

	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for one sweep
func (jf *JSONFormatter) Format(result *Result) (string, error) {
	return jf.marshal(result)
}

// FormatMulti generates JSON output for sweeps of every service
func (jf *JSONFormatter) FormatMulti(result *MultiResult) (string, error) {
	return jf.marshal(result)
}

func (jf *JSONFormatter) marshal(v any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
