package allocator

import (
	"math"

	"github.com/meritpool/merit/pkg/core/model"
)

// Default band and rating values applied when a roster record leaves them out
const (
	DefaultRating          = 3
	DefaultBandTopRatio    = 1.2
	DefaultBandBottomRatio = 0.8
)

// Employee holds one person's compensation facts plus the running state the
// allocator mutates during a run: resolved increase bounds, the new salary
// accumulated so far, and the number of pool divisions won.
type Employee struct {
	Name          string
	CurrentSalary float64
	MRP           float64
	Rating        int

	// Pay band expressed as multiples of MRP
	BandTopRatio    float64
	BandBottomRatio float64

	// PerformanceWeight multiplies the value score. Zero marks an employee
	// ineligible for discretionary increases. Overwritten from the options'
	// rating table during bound resolution.
	PerformanceWeight float64

	// MinIncreasePercent uses 0 as the "not yet resolved" sentinel; the
	// allocator resolves it because it depends on run-wide options.
	MinIncreasePercent float64

	// MaxIncreasePercent is resolved at construction from the band top
	// unless the record supplies it explicitly.
	MaxIncreasePercent float64

	NewSalary float64
	RoundsWon int
}

// NewEmployee builds an allocator employee from a raw roster record, filling
// defaults for omitted fields and deriving the maximum increase from the top
// of the pay band when not explicitly overridden.
func NewEmployee(rec model.EmployeeRecord) *Employee {
	e := &Employee{
		Name:              rec.Name,
		CurrentSalary:     rec.CurrentSalary,
		MRP:               rec.MRP,
		Rating:            DefaultRating,
		BandTopRatio:      DefaultBandTopRatio,
		BandBottomRatio:   DefaultBandBottomRatio,
		PerformanceWeight: 1,
	}

	if rec.Rating != nil {
		e.Rating = *rec.Rating
	}
	if rec.BandTopRatio != nil {
		e.BandTopRatio = *rec.BandTopRatio
	}
	if rec.BandBottomRatio != nil {
		e.BandBottomRatio = *rec.BandBottomRatio
	}
	if rec.PerformanceWeight != nil {
		e.PerformanceWeight = *rec.PerformanceWeight
	}
	if rec.MinIncreasePercent != nil {
		e.MinIncreasePercent = *rec.MinIncreasePercent
	}

	if rec.MaxIncreasePercent != nil {
		e.MaxIncreasePercent = *rec.MaxIncreasePercent
	} else {
		e.MaxIncreasePercent = (e.BandTopRatio*e.MRP)/e.CurrentSalary - 1
	}

	e.NewSalary = e.CurrentSalary

	return e
}

// CurrentMRPPercent returns the pre-run salary as a fraction of MRP.
func (e *Employee) CurrentMRPPercent() float64 {
	return e.CurrentSalary / e.MRP
}

// ProjectedMRPPercent returns the running new salary, plus an optional extra
// amount, as a fraction of MRP.
func (e *Employee) ProjectedMRPPercent(extra float64) float64 {
	return (e.NewSalary + extra) / e.MRP
}

// SalaryDelta returns the absolute increase accumulated so far.
func (e *Employee) SalaryDelta() float64 {
	return e.NewSalary - e.CurrentSalary
}

// SalaryPercentDelta returns the increase accumulated so far as a fraction
// of the original salary.
func (e *Employee) SalaryPercentDelta() float64 {
	return e.NewSalary/e.CurrentSalary - 1
}

// ValueScore computes the value half of the knapsack ratio for a proposed
// increase. It rewards employees who sit close to the bottom of their band
// and for whom one increase moves their MRP position the most: both distances
// are multiplied and run through a base-1/e log, so the score grows as the
// product shrinks toward zero. The result is weighted by PerformanceWeight.
//
// Returns ErrValueUndefined when the product is not a valid log argument
// (at or below the band floor, or no MRP movement); callers treat that as
// "not a candidate this round".
func (e *Employee) ValueScore(increase float64) (float64, error) {
	distFromFloor := e.ProjectedMRPPercent(increase) - e.BandBottomRatio
	mrpMove := e.ProjectedMRPPercent(increase) - e.ProjectedMRPPercent(0)

	product := distFromFloor * mrpMove
	if product <= 0 {
		return 0, ErrValueUndefined
	}

	// log base 1/e is the negated natural log
	return e.PerformanceWeight * -math.Log(product), nil
}

// CostScore computes the cost half of the knapsack ratio: one more than the
// rounds already won, so repeat winners get progressively more expensive.
func (e *Employee) CostScore() float64 {
	return float64(e.RoundsWon + 1)
}

// KnapsackRatio is the sole ranking criterion of the discretionary loop:
// value of the proposed increase divided by the cost of awarding it here.
func (e *Employee) KnapsackRatio(increase float64) (float64, error) {
	value, err := e.ValueScore(increase)
	if err != nil {
		return 0, err
	}
	return value / e.CostScore(), nil
}

// ApplyIncrement credits the employee with one or more divisions of the given
// size, updating the running salary and the rounds counter. Ceiling checks
// are the caller's responsibility.
func (e *Employee) ApplyIncrement(amount float64, times int) {
	e.NewSalary += amount * float64(times)
	e.RoundsWon += times
}
