// Package roster loads the employee roster file that feeds an allocation run.
package roster

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/meritpool/merit/pkg/core/model"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load reads and validates the employee roster at path. Every record must
// carry a name, a positive current salary, and a positive MRP; everything
// else is optional and defaulted later by the allocator.
func Load(path string) ([]model.EmployeeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	var records []model.EmployeeRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse roster file: %w", err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("roster file %s contains no employees", path)
	}

	for i, rec := range records {
		if err := validate.Struct(&rec); err != nil {
			return nil, fmt.Errorf("invalid roster record %d (%q): %w", i, rec.Name, err)
		}
	}

	return records, nil
}
