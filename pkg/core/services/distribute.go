package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meritpool/merit/internal/config"
	"github.com/meritpool/merit/pkg/core/allocator"
	"github.com/meritpool/merit/pkg/core/model"
)

// DistributeResult contains the outcome of one distribution run.
type DistributeResult struct {
	RunID         string
	Employees     []*allocator.Employee
	PoolRemaining float64
}

// Distribute builds allocator employees from roster records and runs the
// full allocation with the given options. Records are consumed in file order;
// the returned employees carry the final salaries and round counts.
func Distribute(ctx context.Context, logger *zap.Logger, opts *config.Options, records []model.EmployeeRecord) (*DistributeResult, error) {
	runID := uuid.NewString()

	logger.Info("Starting distribution run",
		zap.String("run_id", runID),
		zap.Int("employees", len(records)),
		zap.Float64("pool", opts.Pool),
		zap.Float64("division_size", opts.Divisions))

	employees := buildEmployees(records)

	outcome, err := allocator.Allocate(allocatorConfig(opts), employees)
	if err != nil {
		return nil, fmt.Errorf("allocation failed: %w", err)
	}

	logger.Info("Distribution run complete",
		zap.String("run_id", runID),
		zap.Float64("pool_remaining", outcome.PoolRemaining))

	return &DistributeResult{
		RunID:         runID,
		Employees:     outcome.Employees,
		PoolRemaining: outcome.PoolRemaining,
	}, nil
}

// BoundsPreview is one employee's resolved bounds, for vetting inputs
// without running an allocation.
type BoundsPreview struct {
	Name               string
	Rating             int
	PerformanceWeight  float64
	MinIncreasePercent float64
	MaxIncreasePercent float64
}

// PreviewBounds resolves per-employee weights and increase bounds from the
// given records and options without spending any pool. It surfaces rating
// table gaps before a real run would.
func PreviewBounds(ctx context.Context, logger *zap.Logger, opts *config.Options, records []model.EmployeeRecord) ([]BoundsPreview, error) {
	employees := buildEmployees(records)

	if err := allocator.PreviewBounds(allocatorConfig(opts), employees); err != nil {
		return nil, fmt.Errorf("bound resolution failed: %w", err)
	}

	previews := make([]BoundsPreview, len(employees))
	for i, e := range employees {
		previews[i] = BoundsPreview{
			Name:               e.Name,
			Rating:             e.Rating,
			PerformanceWeight:  e.PerformanceWeight,
			MinIncreasePercent: e.MinIncreasePercent,
			MaxIncreasePercent: e.MaxIncreasePercent,
		}
	}

	logger.Info("Resolved employee bounds", zap.Int("employees", len(previews)))

	return previews, nil
}

func buildEmployees(records []model.EmployeeRecord) []*allocator.Employee {
	employees := make([]*allocator.Employee, len(records))
	for i, rec := range records {
		employees[i] = allocator.NewEmployee(rec)
	}
	return employees
}

func allocatorConfig(opts *config.Options) allocator.Config {
	return allocator.Config{
		Pool:                     opts.Pool,
		DivisionSize:             opts.Divisions,
		PerformanceWeights:       opts.PerfTranslate,
		MinSalaryIncreasePercent: opts.MinSalaryIncreasePercent,
		BadPerformerGetsMin:      opts.BadPerformerGetsMin,
	}
}
