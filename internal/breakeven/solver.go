// Package breakeven finds the visit counts at which the cheapest plan changes.
package breakeven

import (
	"context"

	"github.com/rgehrsitz/plancost/internal/calculation"
	"github.com/rgehrsitz/plancost/internal/compare"
	"github.com/rgehrsitz/plancost/internal/domain"
)

// Solver sweeps service usage and records best value crossovers
type Solver struct {
	CalcEngine *calculation.CalculationEngine
	Options    SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(calcEngine *calculation.CalculationEngine, options SolverOptions) *Solver {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &Solver{
		CalcEngine: calcEngine,
		Options:    options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(calcEngine *calculation.CalculationEngine) *Solver {
	return NewSolver(calcEngine, DefaultSolverOptions())
}

// Solve evaluates every visit count from zero to the sweep bound. Costs are
// not monotone in the difference between plans, so the sweep is exhaustive
// rather than a bisection.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	maxVisits := req.MaxVisits
	if maxVisits == 0 {
		maxVisits = s.Options.MaxVisits
	}

	result := &Result{
		Service:    req.Service,
		BaseVisits: req.Usage.Visits(req.Service),
	}

	base, err := s.bestValue(ctx, req, result.BaseVisits)
	if err != nil {
		return nil, err
	}
	result.Base = base
	result.Evaluations++

	for visits := 0; visits <= maxVisits; visits++ {
		point, err := s.bestValue(ctx, req, visits)
		if err != nil {
			return nil, err
		}
		result.Evaluations++

		if n := len(result.Points); n > 0 && result.Points[n-1].PlanID != point.PlanID {
			prev := result.Points[n-1]
			result.Crossovers = append(result.Crossovers, Crossover{
				Visits: visits,
				From:   prev.PlanName,
				To:     point.PlanName,
			})
			s.CalcEngine.Logger.Debugf("%s: best value moves from %s to %s at %d visits",
				req.Service, prev.PlanName, point.PlanName, visits)
		}
		result.Points = append(result.Points, point)
	}

	return result, nil
}

// bestValue ranks the plans with the service set to visits
func (s *Solver) bestValue(ctx context.Context, req Request, visits int) (Point, error) {
	usage := req.Usage.WithVisits(req.Service, visits)

	results, err := s.CalcEngine.RunPlans(ctx, req.Plans, usage, req.Bills)
	if err != nil {
		return Point{}, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to calculate plan costs",
			Cause:     err,
		}
	}

	rank, err := compare.Rank(results)
	if err != nil {
		return Point{}, &BreakEvenError{
			Operation: "solve",
			Message:   "failed to rank plans",
			Cause:     err,
		}
	}

	return Point{
		Visits:    visits,
		PlanID:    rank.BestValue.PlanID,
		PlanName:  rank.BestValue.PlanName,
		TotalCost: rank.BestValue.TotalCost,
	}, nil
}

// SolveConfiguration sweeps one service over a loaded configuration's selection
func (s *Solver) SolveConfiguration(ctx context.Context, config *domain.Configuration, service domain.Category, maxVisits int) (*Result, error) {
	return s.Solve(ctx, Request{
		Plans:     config.SelectedPlans(),
		Usage:     config.Usage,
		Bills:     config.Bills,
		Service:   service,
		MaxVisits: maxVisits,
	})
}
