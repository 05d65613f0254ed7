package compare

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	sectionStyle   = lipgloss.NewStyle().Bold(true)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct {
	Detailed bool // If true, print the per-service breakdown of each plan
}

// Format generates a formatted table comparing plans
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("HEALTH PLAN COST COMPARISON") + "\n")
	sb.WriteString(strings.Repeat("=", 96) + "\n")
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}
	sb.WriteString(fmt.Sprintf("Plans compared: %d\n\n", len(compSet.Results)))

	nameWidth := 22
	numWidth := 12

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
		nameWidth, "Plan",
		numWidth, "Basic",
		numWidth, "Major",
		numWidth, "Drugs",
		numWidth, "Bills",
		numWidth, "Total OOP",
		numWidth, "Total Cost"))
	sb.WriteString(strings.Repeat("-", 96) + "\n")

	for _, result := range compSet.Results {
		sb.WriteString(tf.formatRow(result, nameWidth, numWidth))
	}
	sb.WriteString(strings.Repeat("=", 96) + "\n")

	if tf.Detailed {
		for _, result := range compSet.Results {
			sb.WriteString(tf.formatBreakdown(result))
		}
	}

	if compSet.Ranking != nil {
		rank := compSet.Ranking
		sb.WriteString("\n" + sectionStyle.Render("SUMMARY") + "\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		sb.WriteString(fmt.Sprintf("  Best Value:       %s ($%s)\n",
			highlightStyle.Render(rank.BestValue.PlanName), tf.formatDecimal(rank.BestValue.TotalCost)))
		sb.WriteString(fmt.Sprintf("  Best Worst Case:  %s ($%s)\n",
			rank.BestWorstCase.PlanName, tf.formatDecimal(rank.BestWorstCase.WorstCase())))
		sb.WriteString(fmt.Sprintf("  Lowest OOP:       %s ($%s)\n",
			rank.LowestOOP.PlanName, tf.formatDecimal(rank.LowestOOP.TotalOOP)))
		sb.WriteString(fmt.Sprintf("  Highest OOP:      %s ($%s)\n",
			rank.HighestOOP.PlanName, tf.formatDecimal(rank.HighestOOP.TotalOOP)))

		for _, result := range compSet.Results {
			if result.PlanID == rank.BestValue.PlanID {
				continue
			}
			extra := SavingsVersus(rank.BestValue, result)
			sb.WriteString(fmt.Sprintf("  %s costs %s$%s vs best value\n",
				result.PlanName, tf.deltaSymbol(extra), tf.formatDecimal(extra.Abs())))
		}
	}

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\n" + sectionStyle.Render("RECOMMENDATIONS") + "\n")
		sb.WriteString(strings.Repeat("-", 96) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatRow formats a single plan row
func (tf *TableFormatter) formatRow(result domain.PlanCostResult, nameWidth, numWidth int) string {
	oop := "$" + tf.formatDecimal(result.TotalOOP)
	if result.OOPCapApplied {
		oop += "*"
	}

	return fmt.Sprintf("%-*s %*s %*s %*s %*s %*s %*s\n",
		nameWidth, tf.truncate(result.PlanName, nameWidth),
		numWidth, "$"+tf.formatDecimal(result.BasicMedical),
		numWidth, "$"+tf.formatDecimal(result.MajorMedical),
		numWidth, "$"+tf.formatDecimal(result.DrugCosts),
		numWidth, "$"+tf.formatDecimal(result.MedicalBills),
		numWidth, oop,
		numWidth, "$"+tf.formatDecimal(result.TotalCost))
}

// formatBreakdown lists the non-zero line items of one plan
func (tf *TableFormatter) formatBreakdown(result domain.PlanCostResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("\n%s (premium $%s):\n", result.PlanName, tf.formatDecimal(result.Premium)))

	write := func(items []domain.LineItem, unit string) {
		for _, item := range items {
			if item.Units == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("  %-28s %4d%-4s $%s\n", tf.truncate(item.Label, 28), item.Units, unit, tf.formatDecimal(item.Cost)))
		}
	}
	write(result.Services, "")
	write(result.Drugs, "/mo")
	write(result.Bills, "")

	return sb.String()
}

// formatDecimal formats a currency amount with two decimals and thousands separators
func (tf *TableFormatter) formatDecimal(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}

	if d.IsNegative() {
		return "-" + grouped.String() + frac
	}
	return grouped.String() + frac
}

// deltaSymbol returns + for positive amounts and - for negative ones
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	} else if delta.IsNegative() {
		return "-"
	}
	return ""
}

// truncate truncates a string to maxLen
func (tf *TableFormatter) truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
