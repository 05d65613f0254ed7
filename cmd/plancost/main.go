package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/plancost/internal/breakeven"
	"github.com/rgehrsitz/plancost/internal/calculation"
	"github.com/rgehrsitz/plancost/internal/compare"
	"github.com/rgehrsitz/plancost/internal/config"
	"github.com/rgehrsitz/plancost/internal/domain"
	"github.com/spf13/cobra"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "plancost %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(out, info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "plancost",
		Short: "Health plan cost comparison CLI",
		Long: `Project the annual cost of health insurance plans for an expected year of
care and rank them by total cost, worst case and out-of-pocket spend.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("store", "", "Path to a YAML plan store")
	rootCmd.PersistentFlags().String("dsn", os.Getenv("PLANCOST_DSN"), "PostgreSQL connection string for the plan store (default $PLANCOST_DSN)")

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(breakEvenCmd())
	rootCmd.AddCommand(plansCmd())
	rootCmd.AddCommand(versionCmd())
	return rootCmd
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Project and rank the selected plans of a comparison file",
		Long: `Project the annual cost of every selected plan and rank them.

Examples:
  plancost calculate comparison.yaml
  plancost calculate comparison.yaml --format csv
  plancost calculate comparison.yaml --store plans.yaml --detailed
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			ctx := cmd.Context()

			stored, err := storedPlans(ctx, cmd)
			if err != nil {
				return err
			}

			parser := config.NewInputParser()
			configData, err := parser.LoadFromFileWithPlans(inputFile, stored)
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngine()
			debugMode, _ := cmd.Flags().GetBool("debug")
			if debugMode {
				engine.SetLogger(simpleCLILogger{})
				engine.Debug = true
			}

			compSet, err := compare.NewCompareEngine(engine).CompareConfiguration(ctx, configData)
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.ConfigPath = inputFile

			outputFormat, _ := cmd.Flags().GetString("format")
			detailed, _ := cmd.Flags().GetBool("detailed")
			output, err := formatComparison(compSet, outputFormat, detailed)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json)")
	cmd.Flags().Bool("detailed", false, "Include the per-service breakdown of each plan")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

func formatComparison(compSet *compare.ComparisonSet, format string, detailed bool) (string, error) {
	switch strings.ToLower(format) {
	case "csv":
		output, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return "", fmt.Errorf("failed to format CSV: %w", err)
		}
		return output, nil

	case "json":
		output, err := (&compare.JSONFormatter{Pretty: true, Detailed: detailed}).Format(compSet)
		if err != nil {
			return "", fmt.Errorf("failed to format JSON: %w", err)
		}
		return output, nil

	case "table", "console", "":
		return (&compare.TableFormatter{Detailed: detailed}).Format(compSet), nil

	default:
		return "", fmt.Errorf("unknown output format: %s (valid: table, csv, json)", format)
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a comparison file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]

			stored, err := storedPlans(cmd.Context(), cmd)
			if err != nil {
				return err
			}

			configData, err := config.NewInputParser().LoadFromFileWithPlans(inputFile, stored)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid (%d plans, %d selected)\n",
				inputFile, len(configData.Plans), len(configData.SelectedPlans()))
			return nil
		},
	}
}

func breakEvenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "break-even [input-file]",
		Short: "Find the visit counts at which the best value plan changes",
		Long: `Sweep the annual visit count of a service, holding the rest of the usage
fixed, and report where the best value plan changes.

Examples:
  plancost break-even comparison.yaml
  plancost break-even comparison.yaml --service "Specialist Visit" --max 30 --points
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile := args[0]
			ctx := cmd.Context()

			// The solver reads a zero bound as its default
			maxVisits, _ := cmd.Flags().GetInt("max")
			if maxVisits < 1 {
				return fmt.Errorf("--max must be at least 1, got %d", maxVisits)
			}

			stored, err := storedPlans(ctx, cmd)
			if err != nil {
				return err
			}

			configData, err := config.NewInputParser().LoadFromFileWithPlans(inputFile, stored)
			if err != nil {
				return err
			}

			engine := calculation.NewCalculationEngine()
			if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
				engine.SetLogger(simpleCLILogger{})
			}
			solver := breakeven.NewDefaultSolver(engine)

			serviceName, _ := cmd.Flags().GetString("service")
			outputFormat, _ := cmd.Flags().GetString("format")
			showPoints, _ := cmd.Flags().GetBool("points")
			out := cmd.OutOrStdout()

			if serviceName == "" {
				multi, err := solver.SolveAll(ctx, configData.SelectedPlans(), configData.Usage, configData.Bills, maxVisits)
				if err != nil {
					return err
				}
				if strings.EqualFold(outputFormat, "json") {
					output, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMulti(multi)
					if err != nil {
						return fmt.Errorf("failed to format JSON: %w", err)
					}
					fmt.Fprintln(out, output)
					return nil
				}
				fmt.Fprint(out, (&breakeven.TableFormatter{}).FormatMulti(multi))
				return nil
			}

			service, err := domain.ParseCategory(serviceName)
			if err != nil {
				return err
			}

			result, err := solver.SolveConfiguration(ctx, configData, service, maxVisits)
			if err != nil {
				return err
			}
			if strings.EqualFold(outputFormat, "json") {
				output, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprintln(out, output)
				return nil
			}
			fmt.Fprint(out, (&breakeven.TableFormatter{ShowPoints: showPoints}).Format(result))
			return nil
		},
	}

	cmd.Flags().String("service", "", "Service to sweep, by label (default: every service)")
	cmd.Flags().Int("max", breakeven.DefaultSolverOptions().MaxVisits, "Highest visit count to evaluate")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	cmd.Flags().Bool("points", false, "List the best value plan at every visit count")
	cmd.Flags().Bool("debug", false, "Enable debug output for detailed calculations")
	return cmd
}

// storedPlans returns the plans of the configured store, or nil when no
// store was requested
func storedPlans(ctx context.Context, cmd *cobra.Command) ([]domain.PlanDefinition, error) {
	if !storeRequested(cmd) {
		return nil, nil
	}

	repo, closeStore, err := openPlanRepository(ctx, cmd)
	if err != nil {
		return nil, err
	}
	defer closeStore()

	return repo.List(ctx)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
