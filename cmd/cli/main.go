package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meritpool/merit/internal/config"
	"github.com/meritpool/merit/pkg/core/model"
	"github.com/meritpool/merit/pkg/core/services"
	"github.com/meritpool/merit/pkg/report"
	"github.com/meritpool/merit/pkg/roster"
	"github.com/meritpool/merit/pkg/utils/logging"
)

// App holds the application dependencies
type App struct {
	logger *zap.Logger
	ctx    context.Context
}

var (
	logDir       string
	employeePath string
	optionsPath  string
	app          *App
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "merit",
		Short: "Merit Pool Distributor - allocate a raise pool across employees",
		Long: `A CLI tool that distributes a fixed salary-increase pool across a set of
employees: guaranteed minimum raises first, then greedy knapsack-scored
discretionary increases in fixed divisions, respecting pay-band ceilings.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.logger != nil {
				app.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&employeePath, "employees", "employees.yaml", "Path to the employee roster file")
	rootCmd.PersistentFlags().StringVar(&optionsPath, "options", "", "Path to the options file (built-in defaults when omitted)")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Directory for JSON log files (console only when omitted)")

	rootCmd.AddCommand(distributeCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(sampleCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger and shared context
func initApp() error {
	var err error
	app = &App{
		ctx: context.Background(),
	}

	app.logger, err = logging.InitLogger(logDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	return nil
}

// loadInputs loads the options and roster files named by the persistent flags
func loadInputs() (*config.Options, []model.EmployeeRecord, error) {
	opts, err := config.Load(optionsPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load options: %w", err)
	}
	app.logger.Debug("Options loaded",
		zap.Float64("pool", opts.Pool),
		zap.Float64("divisions", opts.Divisions))

	records, err := roster.Load(employeePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load roster: %w", err)
	}
	app.logger.Debug("Roster loaded", zap.Int("employees", len(records)))

	return opts, records, nil
}

// Command definitions

func distributeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "distribute",
		Short: "Run the allocation and print the final report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			outputPath, _ := cmd.Flags().GetString("output")

			opts, records, err := loadInputs()
			if err != nil {
				return err
			}

			result, err := services.Distribute(app.ctx, app.logger, opts, records)
			if err != nil {
				return err
			}

			rpt := report.Build(result.RunID, result.Employees, result.PoolRemaining)

			out := os.Stdout
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if asJSON {
				return rpt.WriteJSON(out)
			}
			return rpt.WriteText(out)
		},
	}

	cmd.Flags().Bool("json", false, "Render the report as JSON")
	cmd.Flags().String("output", "", "Write the report to a file instead of stdout")

	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the input files and print resolved per-employee bounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, records, err := loadInputs()
			if err != nil {
				return err
			}

			previews, err := services.PreviewBounds(app.ctx, app.logger, opts, records)
			if err != nil {
				return err
			}

			fmt.Printf("\nInputs valid. Resolved bounds for %d employees:\n\n", len(previews))
			for _, p := range previews {
				fmt.Printf("  %-20s rating %d  weight %.2f  min %.3f%%  max %.3f%%\n",
					p.Name,
					p.Rating,
					p.PerformanceWeight,
					p.MinIncreasePercent*100,
					p.MaxIncreasePercent*100,
				)
			}
			fmt.Println()

			return nil
		},
	}
}

func sampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write example roster and options files to a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create sample directory: %w", err)
			}

			employeesFile := filepath.Join(dir, "employees.yaml")
			if err := os.WriteFile(employeesFile, []byte(sampleEmployees), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", employeesFile, err)
			}

			optionsFile := filepath.Join(dir, "options.yaml")
			if err := os.WriteFile(optionsFile, []byte(sampleOptions), 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", optionsFile, err)
			}

			fmt.Printf("Wrote %s and %s\n", employeesFile, optionsFile)
			return nil
		},
	}

	cmd.Flags().String("dir", ".", "Directory to write the sample files into")

	return cmd
}

const sampleEmployees = `# Employee roster. name, currentSalary and mrp are required; the rest is
# optional and defaulted (rating 3, band 0.8-1.2 of MRP).
- name: Alice Example
  currentSalary: 52000
  mrp: 55000
  rating: 4
- name: Bob Example
  currentSalary: 61000
  mrp: 58000
  rating: 3
  bandTopRatio: 1.25
- name: Carol Example
  currentSalary: 47000
  mrp: 50000
  rating: 2
`

const sampleOptions = `# Distribution options. Every key is optional; omitted keys use the
# built-in defaults shown here.
pool: 10000
divisions: 100
perfTranslate:
  1: 0
  2: 0
  3: 1
  4: 1.5
  5: 2
minSalaryIncreasePercent: 0.015
badPerformerGetsMin: false
`
