package model

// EmployeeRecord is one entry of the employee roster file, before any
// defaulting or bound resolution. Optional fields are pointers so that an
// explicit zero in the file can be told apart from "not supplied".
type EmployeeRecord struct {
	Name          string  `yaml:"name" validate:"required"`
	CurrentSalary float64 `yaml:"currentSalary" validate:"required,gt=0"`
	MRP           float64 `yaml:"mrp" validate:"required,gt=0"`

	Rating             *int     `yaml:"rating,omitempty" validate:"omitempty,min=1"`
	BandTopRatio       *float64 `yaml:"bandTopRatio,omitempty" validate:"omitempty,gt=0"`
	BandBottomRatio    *float64 `yaml:"bandBottomRatio,omitempty" validate:"omitempty,gt=0"`
	PerformanceWeight  *float64 `yaml:"performanceWeight,omitempty" validate:"omitempty,min=0"`
	MinIncreasePercent *float64 `yaml:"minIncreasePercent,omitempty" validate:"omitempty,min=0"`
	MaxIncreasePercent *float64 `yaml:"maxIncreasePercent,omitempty" validate:"omitempty,min=0"`
}
