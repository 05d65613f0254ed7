package breakeven

import (
	"fmt"

	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/shopspring/decimal"
)

// Request describes a sweep of one service's annual visit count across
// a set of plans, everything else in the usage held fixed
type Request struct {
	Plans     []domain.PlanDefinition
	Usage     domain.UsageScenario
	Bills     []domain.MedicalBill
	Service   domain.Category
	MaxVisits int // Upper bound of the sweep; zero uses the solver default
}

// Point is the best value plan at one visit count
type Point struct {
	Visits    int             `json:"visits"`
	PlanID    string          `json:"planId"`
	PlanName  string          `json:"planName"`
	TotalCost decimal.Decimal `json:"totalCost"`
}

// Crossover marks the visit count at which the best value plan changes
type Crossover struct {
	Visits int    `json:"visits"`
	From   string `json:"from"`
	To     string `json:"to"`
}

// Result contains the outcome of sweeping one service
type Result struct {
	Service     domain.Category `json:"service"`
	BaseVisits  int             `json:"baseVisits"`
	Base        Point           `json:"base"`
	Points      []Point         `json:"points,omitempty"`
	Crossovers  []Crossover     `json:"crossovers"`
	Evaluations int             `json:"evaluations"`
}

// Stable reports whether the best value plan never changes across the sweep
func (r *Result) Stable() bool {
	return len(r.Crossovers) == 0
}

// MultiResult contains sweeps of every service
type MultiResult struct {
	Results         []Result          `json:"results"`
	Sensitive       []domain.Category `json:"sensitive"`
	Recommendations []string          `json:"recommendations"`
}

// SolverOptions configures the sweep
type SolverOptions struct {
	MaxVisits int // Default upper bound of each sweep
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxVisits: 52, // weekly for a year
	}
}

// Validate checks that the request can be ranked at every visit count
func (r *Request) Validate() error {
	if len(r.Plans) < 2 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("at least two plans are required, got %d", len(r.Plans)),
		}
	}

	if !r.Service.Valid() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("unknown service %d", int(r.Service)),
		}
	}

	if r.MaxVisits < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "max visits cannot be negative",
		}
	}

	if r.Usage.Visits(r.Service) < 0 {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   fmt.Sprintf("%s visits cannot be negative", r.Service),
		}
	}

	return nil
}

// BreakEvenError represents errors from the break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
