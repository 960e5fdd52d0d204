package allocator

import "math"

// Config contains the run-wide parameters for an allocation. It is resolved
// once by the options loader and never mutated here.
type Config struct {
	// Pool is the total amount available for increases across all employees
	Pool float64

	// DivisionSize is the discrete increment every allocation step uses
	DivisionSize float64

	// PerformanceWeights translates an employee rating into the weight used
	// by the value score
	PerformanceWeights map[int]float64

	// MinSalaryIncreasePercent is the guaranteed raise floor applied to every
	// eligible employee before discretionary distribution
	MinSalaryIncreasePercent float64

	// BadPerformerGetsMin entitles zero-weight employees to the raise floor
	// anyway
	BadPerformerGetsMin bool
}

// Outcome is the result of an allocation run. Employees are the same records
// passed in, mutated in place; PoolRemaining is what the discretionary loop
// could not spend.
type Outcome struct {
	Employees     []*Employee
	PoolRemaining float64
}

// Allocate runs the full distribution over the given employees: resolve
// per-employee bounds, fund the mandatory minimum raises, then hand out the
// remaining pool one division at a time to the employee with the best
// knapsack ratio until the pool is spent or nobody can win.
//
// Employees are mutated in place, in input order. A rating missing from the
// weight table or a pool too small for the minimum raises fails the run.
func Allocate(cfg Config, employees []*Employee) (*Outcome, error) {
	if err := checkRatings(cfg, employees); err != nil {
		return nil, err
	}

	remaining, err := applyMinimumRaises(cfg, employees)
	if err != nil {
		return nil, err
	}

	remaining = distribute(cfg, employees, remaining)

	return &Outcome{Employees: employees, PoolRemaining: remaining}, nil
}

// PreviewBounds resolves every employee's performance weight and increase
// bounds without spending any pool. Used to vet inputs before a real run.
func PreviewBounds(cfg Config, employees []*Employee) error {
	if err := checkRatings(cfg, employees); err != nil {
		return err
	}
	for _, e := range employees {
		resolveBounds(cfg, e)
	}
	return nil
}

// checkRatings verifies every employee's rating has a weight entry, so a
// table gap aborts before any record is mutated.
func checkRatings(cfg Config, employees []*Employee) error {
	for _, e := range employees {
		if _, ok := cfg.PerformanceWeights[e.Rating]; !ok {
			return &RatingNotFoundError{Employee: e.Name, Rating: e.Rating}
		}
	}
	return nil
}

// resolveBounds sets the employee's performance weight from the rating table
// and settles their minimum and maximum increase percentages.
func resolveBounds(cfg Config, e *Employee) {
	e.PerformanceWeight = cfg.PerformanceWeights[e.Rating]

	// Resolve the minimum unless the roster supplied one. Zero performers
	// get no floor unless the run says otherwise, and nobody's floor can
	// exceed their own ceiling.
	if e.MinIncreasePercent == 0 {
		floorEntitlement := math.Inf(1)
		if e.PerformanceWeight == 0 && !cfg.BadPerformerGetsMin {
			floorEntitlement = 0
		}
		e.MinIncreasePercent = min(cfg.MinSalaryIncreasePercent, e.MaxIncreasePercent, floorEntitlement)
	}

	// A zero performer's ceiling collapses to their floor, keeping them out
	// of the discretionary loop entirely.
	if e.PerformanceWeight == 0 {
		e.MaxIncreasePercent = e.MinIncreasePercent
	}
}

// applyMinimumRaises resolves bounds and funds the guaranteed raise for each
// employee in input order, returning the pool left for discretionary
// distribution. The raise is applied as a percentage bump plus the rounded-up
// division credit; the pool is charged for the credited divisions.
func applyMinimumRaises(cfg Config, employees []*Employee) (float64, error) {
	remaining := cfg.Pool

	for _, e := range employees {
		resolveBounds(cfg, e)

		e.NewSalary += e.NewSalary * e.MinIncreasePercent

		rounds := int(math.Ceil(e.SalaryDelta() / cfg.DivisionSize))
		e.ApplyIncrement(cfg.DivisionSize, rounds)

		remaining -= float64(rounds) * cfg.DivisionSize
		if remaining < 0 {
			return 0, &InsufficientPoolError{
				Pool:               cfg.Pool,
				MinIncreasePercent: cfg.MinSalaryIncreasePercent,
			}
		}
	}

	return remaining, nil
}

// distribute runs the greedy knapsack loop: while at least one division
// remains, award it to the employee with the strictly best positive ratio
// whose band ceiling the award would not breach. When no employee qualifies
// the division goes back to the pool and the loop ends.
func distribute(cfg Config, employees []*Employee, remaining float64) float64 {
	for remaining >= cfg.DivisionSize {
		remaining -= cfg.DivisionSize

		winner := findWinner(cfg, employees)
		if winner == nil {
			// Nobody can take this division; return it so the reported
			// leftover stays accurate.
			remaining += cfg.DivisionSize
			break
		}

		winner.ApplyIncrement(cfg.DivisionSize, 1)
	}

	return remaining
}

// findWinner scans employees in input order and returns the one with the
// strictly greatest knapsack ratio for one division, or nil when every
// employee is over ceiling or scores non-positive. Ties keep the earlier
// employee because the comparison is strict.
func findWinner(cfg Config, employees []*Employee) *Employee {
	var winner *Employee
	bestRatio := 0.0

	for _, e := range employees {
		// Skip anyone this division would push to or past the band top
		if e.ProjectedMRPPercent(cfg.DivisionSize) >= e.BandTopRatio {
			continue
		}

		ratio, err := e.KnapsackRatio(cfg.DivisionSize)
		if err != nil {
			// Undefined value score just means not a candidate this round
			continue
		}

		if ratio > bestRatio {
			bestRatio = ratio
			winner = e
		}
	}

	return winner
}
