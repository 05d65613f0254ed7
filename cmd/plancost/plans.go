package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/plancost/internal/config"
	"github.com/rgehrsitz/plancost/internal/storage"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultStorePath = "plancost-plans.yaml"

func storeRequested(cmd *cobra.Command) bool {
	path, _ := cmd.Flags().GetString("store")
	dsn, _ := cmd.Flags().GetString("dsn")
	return path != "" || dsn != ""
}

// openPlanRepository opens the PostgreSQL store when --dsn is set and the
// YAML file store otherwise. The returned func releases the store.
func openPlanRepository(ctx context.Context, cmd *cobra.Command) (*storage.PlanRepository, func(), error) {
	if dsn, _ := cmd.Flags().GetString("dsn"); dsn != "" {
		store, err := storage.NewPostgresStore(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return storage.NewPlanRepository(store), store.Close, nil
	}

	path, _ := cmd.Flags().GetString("store")
	if path == "" {
		path = defaultStorePath
	}
	return storage.NewPlanRepository(storage.NewFileStore(path)), func() {}, nil
}

func plansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Manage stored plan definitions",
		Long: `Save plan definitions once and select them by id from any comparison file.

Plans are kept in a YAML file (--store, default ` + defaultStorePath + `) or in
PostgreSQL when --dsn is given.`,
	}

	cmd.AddCommand(plansSaveCmd())
	cmd.AddCommand(plansListCmd())
	cmd.AddCommand(plansShowCmd())
	cmd.AddCommand(plansRemoveCmd())
	return cmd
}

func plansSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [input-file]",
		Short: "Store every plan defined in a comparison file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			configData, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			repo, closeStore, err := openPlanRepository(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			for _, plan := range configData.Plans {
				if err := repo.Save(ctx, plan); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Saved plan %s (%s)\n", plan.Name, plan.ID)
			}
			return nil
		},
	}
}

func plansListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, closeStore, err := openPlanRepository(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			plans, err := repo.List(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(plans) == 0 {
				fmt.Fprintln(out, "No stored plans")
				return nil
			}

			fmt.Fprintf(out, "%-36s %-24s %-8s %12s %12s\n", "ID", "Name", "Type", "Deductible", "OOP Max")
			fmt.Fprintln(out, strings.Repeat("-", 96))
			for _, plan := range plans {
				fmt.Fprintf(out, "%-36s %-24s %-8s %12s %12s\n",
					plan.ID, plan.Name, plan.Type,
					plan.AnnualDeductible.StringFixed(2), plan.AnnualOOPMax.StringFixed(2))
			}
			return nil
		},
	}
}

func plansShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [plan-id]",
		Short: "Print a stored plan as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, closeStore, err := openPlanRepository(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			plan, err := repo.Load(ctx, args[0])
			if err != nil {
				return err
			}

			data, err := yaml.Marshal(plan)
			if err != nil {
				return fmt.Errorf("failed to encode plan %s: %w", plan.ID, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func plansRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [plan-id]",
		Short: "Delete a stored plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			repo, closeStore, err := openPlanRepository(ctx, cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := repo.Remove(ctx, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed plan %s\n", args[0])
			return nil
		},
	}
}
