package allocator

import (
	"errors"
	"fmt"
)

// ErrValueUndefined is returned by ValueScore when the log argument is not
// positive. It excludes the employee from the round, never fails the run.
var ErrValueUndefined = errors.New("value score undefined for proposed increase")

// RatingNotFoundError means an employee's rating has no entry in the options'
// rating-to-weight table. Reported before any allocation happens.
type RatingNotFoundError struct {
	Employee string
	Rating   int
}

func (e *RatingNotFoundError) Error() string {
	return fmt.Sprintf("employee %q has rating %d with no entry in the performance translation table", e.Employee, e.Rating)
}

// InsufficientPoolError means the pool ran out while funding the mandatory
// minimum raises, before any discretionary distribution.
type InsufficientPoolError struct {
	Pool               float64
	MinIncreasePercent float64
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("pool of %v is too small to meet minimum raises for all employees at a minimum salary increase of %v", e.Pool, e.MinIncreasePercent)
}
