package allocator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meritpool/merit/pkg/core/model"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestNewEmployee_Defaults(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{
		Name:          "Alice",
		CurrentSalary: 52000,
		MRP:           55000,
	})

	assert.Equal(t, "Alice", e.Name)
	assert.Equal(t, DefaultRating, e.Rating)
	assert.Equal(t, DefaultBandTopRatio, e.BandTopRatio)
	assert.Equal(t, DefaultBandBottomRatio, e.BandBottomRatio)
	assert.Equal(t, 1.0, e.PerformanceWeight)
	assert.Equal(t, 0.0, e.MinIncreasePercent, "minimum stays at the unset sentinel")

	// Max derived from the band top: (1.2*55000)/52000 - 1 = 0.269230...
	assert.InDelta(t, (1.2*55000)/52000-1, e.MaxIncreasePercent, 1e-9)

	assert.Equal(t, 52000.0, e.NewSalary, "new salary starts at current salary")
	assert.Equal(t, 0, e.RoundsWon)
}

func TestNewEmployee_Overrides(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{
		Name:               "Bob",
		CurrentSalary:      61000,
		MRP:                58000,
		Rating:             intPtr(4),
		BandTopRatio:       floatPtr(1.25),
		BandBottomRatio:    floatPtr(0.85),
		PerformanceWeight:  floatPtr(1.5),
		MinIncreasePercent: floatPtr(0.02),
		MaxIncreasePercent: floatPtr(0.05),
	})

	assert.Equal(t, 4, e.Rating)
	assert.Equal(t, 1.25, e.BandTopRatio)
	assert.Equal(t, 0.85, e.BandBottomRatio)
	assert.Equal(t, 1.5, e.PerformanceWeight)
	assert.Equal(t, 0.02, e.MinIncreasePercent)
	assert.Equal(t, 0.05, e.MaxIncreasePercent, "explicit maximum is not derived")
}

func TestEmployee_MRPPercents(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 50000, MRP: 40000})

	assert.InDelta(t, 1.25, e.CurrentMRPPercent(), 1e-9)
	assert.InDelta(t, 1.25, e.ProjectedMRPPercent(0), 1e-9)
	// (50000+1000)/40000 = 1.275
	assert.InDelta(t, 1.275, e.ProjectedMRPPercent(1000), 1e-9)
}

func TestEmployee_Deltas(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 50000, MRP: 50000})
	e.ApplyIncrement(100, 5)

	assert.InDelta(t, 500, e.SalaryDelta(), 1e-9)
	// 50500/50000 - 1 = 0.01
	assert.InDelta(t, 0.01, e.SalaryPercentDelta(), 1e-9)
}

func TestEmployee_ValueScore(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 50000, MRP: 50000})

	value, err := e.ValueScore(100)
	require.NoError(t, err)

	// distFromFloor = (50100/50000) - 0.8 = 0.202
	// mrpMove       = (50100/50000) - 1   = 0.002
	// value = 1 * -ln(0.202 * 0.002) = 7.8142...
	assert.InDelta(t, -math.Log(0.202*0.002), value, 1e-9)
}

func TestEmployee_ValueScore_WeightScales(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 50000, MRP: 50000})
	e.PerformanceWeight = 2

	value, err := e.ValueScore(100)
	require.NoError(t, err)

	assert.InDelta(t, 2*-math.Log(0.202*0.002), value, 1e-9)
}

func TestEmployee_ValueScore_UndefinedBelowBandFloor(t *testing.T) {
	// 30100/50000 = 0.602 sits below the 0.8 band floor, so the product of
	// the two factors is negative and the log is undefined.
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 30000, MRP: 50000})

	_, err := e.ValueScore(100)
	assert.ErrorIs(t, err, ErrValueUndefined)
}

func TestEmployee_ValueScore_UndefinedOnZeroIncrease(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 50000, MRP: 50000})

	// No MRP movement makes the second factor zero.
	_, err := e.ValueScore(0)
	assert.ErrorIs(t, err, ErrValueUndefined)
}

func TestEmployee_CostScore(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 50000, MRP: 50000})

	assert.Equal(t, 1.0, e.CostScore())

	e.ApplyIncrement(100, 3)
	assert.Equal(t, 4.0, e.CostScore())
}

func TestEmployee_KnapsackRatio(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 50000, MRP: 50000})
	e.ApplyIncrement(100, 1)

	ratio, err := e.KnapsackRatio(100)
	require.NoError(t, err)

	// distFromFloor = (50200/50000) - 0.8 = 0.204
	// mrpMove       = (50200/50000) - (50100/50000) = 0.002
	// value = -ln(0.204 * 0.002), cost = rounds+1 = 2
	assert.InDelta(t, -math.Log(0.204*0.002)/2, ratio, 1e-9)
}

func TestEmployee_KnapsackRatio_DampensRepeatWinners(t *testing.T) {
	fresh := NewEmployee(model.EmployeeRecord{Name: "Fresh", CurrentSalary: 50000, MRP: 50000})
	repeat := NewEmployee(model.EmployeeRecord{Name: "Repeat", CurrentSalary: 50000, MRP: 50000})
	repeat.RoundsWon = 5

	freshRatio, err := fresh.KnapsackRatio(100)
	require.NoError(t, err)
	repeatRatio, err := repeat.KnapsackRatio(100)
	require.NoError(t, err)

	assert.Greater(t, freshRatio, repeatRatio)
}

func TestEmployee_ApplyIncrement(t *testing.T) {
	e := NewEmployee(model.EmployeeRecord{Name: "Alice", CurrentSalary: 50000, MRP: 50000})

	e.ApplyIncrement(100, 8)
	assert.InDelta(t, 50800, e.NewSalary, 1e-9)
	assert.Equal(t, 8, e.RoundsWon)

	e.ApplyIncrement(100, 1)
	assert.InDelta(t, 50900, e.NewSalary, 1e-9)
	assert.Equal(t, 9, e.RoundsWon)
}
