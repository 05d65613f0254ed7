package config

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

var hundred = decimal.NewFromInt(100)

// InputParser handles parsing of comparison input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a comparison configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	return ip.LoadFromFileWithPlans(filename, nil)
}

// LoadFromFileWithPlans loads a comparison configuration and makes previously
// stored plans available to its selection by id. Stored plans are compared
// only when selected, and plans defined in the file win over stored plans
// with the same id.
func (ip *InputParser) LoadFromFileWithPlans(filename string, stored []domain.PlanDefinition) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config, err := ip.Parse(data)
	if err != nil {
		return nil, err
	}

	config.Stored = stored

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Parse decodes a YAML configuration and assigns ids to plans and bills that
// lack one. It does not validate.
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i := range config.Plans {
		if config.Plans[i].ID == "" {
			config.Plans[i].ID = uuid.NewString()
		}
	}
	for i := range config.Bills {
		if config.Bills[i].ID == "" {
			config.Bills[i].ID = uuid.NewString()
		}
	}

	return &config, nil
}

// ValidateConfiguration validates a loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Plans) == 0 && len(config.Selected) == 0 {
		return fmt.Errorf("no plans provided")
	}

	seen := make(map[string]bool, len(config.Plans))
	for i := range config.Plans {
		plan := &config.Plans[i]
		if seen[plan.ID] {
			return fmt.Errorf("duplicate plan id %s", plan.ID)
		}
		seen[plan.ID] = true

		if err := ip.ValidatePlan(plan); err != nil {
			return fmt.Errorf("plan %d (%s) validation failed: %w", i, plan.Name, err)
		}
	}

	if err := ip.validateSelection(config); err != nil {
		return fmt.Errorf("selection validation failed: %w", err)
	}

	if err := ip.validateUsage(&config.Usage); err != nil {
		return fmt.Errorf("usage validation failed: %w", err)
	}

	for i, bill := range config.Bills {
		if err := ip.validateBill(&bill); err != nil {
			return fmt.Errorf("bill %d (%s) validation failed: %w", i, bill.Description, err)
		}
	}

	return nil
}

// ValidatePlan validates a single plan definition
func (ip *InputParser) ValidatePlan(plan *domain.PlanDefinition) error {
	if plan.Name == "" {
		return fmt.Errorf("name is required")
	}
	if plan.AnnualDeductible.IsNegative() {
		return fmt.Errorf("annual deductible cannot be negative")
	}
	if plan.AnnualOOPMax.IsNegative() {
		return fmt.Errorf("annual out-of-pocket maximum cannot be negative")
	}
	if plan.PrescriptionDeductible.IsNegative() {
		return fmt.Errorf("prescription deductible cannot be negative")
	}
	if plan.Premium.IsNegative() {
		return fmt.Errorf("premium cannot be negative")
	}

	for category, rule := range plan.Benefits {
		if err := ip.validateRule(&rule); err != nil {
			return fmt.Errorf("benefit %s: %w", category, err)
		}
	}
	for tier, rule := range plan.Prescription {
		if err := ip.validateRule(&rule); err != nil {
			return fmt.Errorf("prescription %s: %w", tier, err)
		}
	}

	return nil
}

// validateRule validates a benefit rule
func (ip *InputParser) validateRule(rule *domain.BenefitRule) error {
	if rule.Amount.IsNegative() {
		return fmt.Errorf("amount cannot be negative")
	}
	if rule.CopayAddOn.IsNegative() {
		return fmt.Errorf("copay add-on cannot be negative")
	}
	if rule.Percentage.IsNegative() || rule.Percentage.GreaterThan(hundred) {
		return fmt.Errorf("percentage must be between 0 and 100")
	}
	return nil
}

// validateSelection checks the selected plans exist and stay within the comparison limit
func (ip *InputParser) validateSelection(config *domain.Configuration) error {
	count := len(config.Selected)
	if count == 0 {
		count = len(config.Plans)
	}
	if count > domain.MaxComparedPlans {
		return fmt.Errorf("at most %d plans can be compared, got %d", domain.MaxComparedPlans, count)
	}

	picked := make(map[string]bool, len(config.Selected))
	for _, sel := range config.Selected {
		if _, ok := config.FindPlan(sel.PlanID); !ok {
			return fmt.Errorf("selection references unknown plan: %s", sel.PlanID)
		}
		if picked[sel.PlanID] {
			return fmt.Errorf("plan %s selected more than once", sel.PlanID)
		}
		picked[sel.PlanID] = true
		if sel.Premium.IsNegative() {
			return fmt.Errorf("premium for plan %s cannot be negative", sel.PlanID)
		}
	}

	return nil
}

// validateUsage rejects negative visit and fill counts
func (ip *InputParser) validateUsage(usage *domain.UsageScenario) error {
	for _, c := range domain.Categories() {
		if usage.Visits(c) < 0 {
			return fmt.Errorf("%s visits cannot be negative", c)
		}
	}
	for _, t := range domain.DrugTiers() {
		if usage.Fills(t) < 0 {
			return fmt.Errorf("%s fills cannot be negative", t)
		}
	}
	return nil
}

// validateBill validates a medical bill
func (ip *InputParser) validateBill(bill *domain.MedicalBill) error {
	if bill.Description == "" {
		return fmt.Errorf("description is required")
	}
	if !bill.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}
