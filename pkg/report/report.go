// Package report renders the final state of a distribution run for humans
// (plain text) and machines (JSON).
package report

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"

	"github.com/meritpool/merit/pkg/core/allocator"
)

// Line is the per-employee view of a finished run.
type Line struct {
	Name              string  `json:"name"`
	CurrentSalary     float64 `json:"currentSalary"`
	NewSalary         float64 `json:"newSalary"`
	CurrentMRPPercent float64 `json:"currentMRPPercent"`
	NewMRPPercent     float64 `json:"newMRPPercent"`
	PercentChange     float64 `json:"percentChange"`
	Direction         string  `json:"direction"`
	RoundsWon         int     `json:"roundsWon"`
}

// Report is the full run summary handed to the output sink.
type Report struct {
	RunID         string  `json:"runId"`
	Lines         []Line  `json:"employees"`
	PoolRemaining float64 `json:"poolRemaining"`
}

// Build assembles a report from the final employee records and the leftover
// pool. Employees are read only; order follows the input.
func Build(runID string, employees []*allocator.Employee, poolRemaining float64) *Report {
	r := &Report{
		RunID:         runID,
		Lines:         make([]Line, len(employees)),
		PoolRemaining: poolRemaining,
	}

	for i, e := range employees {
		direction := "increase"
		if e.SalaryPercentDelta() < 0 {
			direction = "decrease"
		}

		r.Lines[i] = Line{
			Name:              e.Name,
			CurrentSalary:     e.CurrentSalary,
			NewSalary:         e.NewSalary,
			CurrentMRPPercent: e.CurrentMRPPercent(),
			NewMRPPercent:     e.ProjectedMRPPercent(0),
			PercentChange:     e.SalaryPercentDelta(),
			Direction:         direction,
			RoundsWon:         e.RoundsWon,
		}
	}

	return r
}

// WriteText renders the report as one line per employee, with the leftover
// pool appended only when something was actually left over.
func (r *Report) WriteText(w io.Writer) error {
	for _, line := range r.Lines {
		_, err := fmt.Fprintf(w, "%s: $%.2f -> $%.2f, %.3f MRP -> %.3f MRP, a %.3f%% %s after %d rounds\n",
			line.Name,
			line.CurrentSalary,
			line.NewSalary,
			line.CurrentMRPPercent,
			line.NewMRPPercent,
			line.PercentChange*100,
			line.Direction,
			line.RoundsWon,
		)
		if err != nil {
			return err
		}
	}

	if r.PoolRemaining > 0 {
		if _, err := fmt.Fprintf(w, "Pool Remaining: $%.2f\n", r.PoolRemaining); err != nil {
			return err
		}
	}

	return nil
}

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
