package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gostop/adapters/export"
	"gostop/adapters/report"
	"gostop/adapters/rng"
	"gostop/adapters/sim"
	"gostop/app"
	"gostop/domain/stopping"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gostop",
		Short: "Secretary-problem simulation and sweep engine",
	}

	rootCmd.AddCommand(
		newTrialCmd(),
		newEstimateCmd(),
		newSweepCmd(),
		newOptimumCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newTrialCmd() *cobra.Command {
	var n, skip int
	var seed int64

	cmd := &cobra.Command{
		Use:   "trial",
		Short: "Run one simulated sequential search",
		Long: `Run a single look-then-leap trial and print the selected rank.

Example: gostop trial --n 100 --skip 37 --seed 12345`,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter := rng.NewAdapter()
			stream, err := adapter.SeededStream(cmd.Context(), "trial", seed)
			if err != nil {
				return err
			}

			rank, err := sim.RunTrial(stopping.Params{N: n, Skip: skip}, stream)
			if err != nil {
				return err
			}

			fmt.Printf("selected rank %d of %d", rank, n)
			if rank == n {
				fmt.Print(" (best item)")
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 100, "Number of items in the search horizon")
	cmd.Flags().IntVar(&skip, "skip", 37, "Size of the look phase")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic operations")

	return cmd
}

func newEstimateCmd() *cobra.Command {
	var n, skip, trials int
	var seed int64

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate success probability for one skip value",
		Long: `Estimate the success probability of a single skip value from repeated
seeded trials and compare it against the closed form.

Example: gostop estimate --n 100 --skip 37 --trials 100000 --seed 12345`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd.Context(), n, skip, trials, seed)
		},
	}

	cmd.Flags().IntVar(&n, "n", 100, "Number of items in the search horizon")
	cmd.Flags().IntVar(&skip, "skip", 37, "Size of the look phase")
	cmd.Flags().IntVar(&trials, "trials", 10000, "Number of Monte Carlo trials")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic operations")

	return cmd
}

func runEstimate(ctx context.Context, n, skip, trials int, seed int64) error {
	estimator := sim.NewEstimator(rng.NewAdapter())
	est, err := estimator.EstimateSuccessRate(ctx, stopping.Params{N: n, Skip: skip}, trials, seed)
	if err != nil {
		return err
	}

	analytic, err := stopping.AnalyticSuccessProbability(n, skip)
	if err != nil {
		return err
	}

	fmt.Printf("n=%d skip=%d trials=%d seed=%d\n", n, skip, trials, seed)
	fmt.Printf("estimated %.4f (95%% CI %.4f-%.4f), analytic %.4f\n",
		est.Probability, est.CILower, est.CIUpper, analytic)
	return nil
}

func newSweepCmd() *cobra.Command {
	var n, trials int
	var seed int64
	var mode, exportPath string
	var asJSON, asMarkdown bool

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate every skip value and locate the optimum",
		Long: `Evaluate success probability for every skip in 0..n, print the curve
summary, and optionally export the table.

Example: gostop sweep --n 100 --mode monte_carlo --trials 10000 --seed 12345 --export sweep.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			parsedMode, err := stopping.ParseMode(mode)
			if err != nil {
				return err
			}

			service := app.NewSweepService(sim.NewEstimator(rng.NewAdapter()), nil)
			result, err := service.Run(cmd.Context(), app.SweepRequest{
				N:      n,
				Mode:   parsedMode,
				Trials: trials,
				Seed:   seed,
			})
			if err != nil {
				return err
			}

			switch {
			case asJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(result); err != nil {
					return err
				}
			case asMarkdown:
				md, err := report.Markdown(result)
				if err != nil {
					return err
				}
				fmt.Println(md)
			default:
				fmt.Println(report.Summary(result))
			}

			if exportPath != "" {
				if err := export.WriteXLSX(result, exportPath); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "wrote %s\n", exportPath)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 100, "Number of items in the search horizon")
	cmd.Flags().StringVar(&mode, "mode", string(stopping.ModeAnalytic), "Sweep mode: analytic or monte_carlo")
	cmd.Flags().IntVar(&trials, "trials", 10000, "Monte Carlo trials per skip value")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic operations")
	cmd.Flags().StringVar(&exportPath, "export", "", "Write the sweep table to this .xlsx path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full result as JSON")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Print the full report as markdown")

	return cmd
}

func newOptimumCmd() *cobra.Command {
	var n int

	cmd := &cobra.Command{
		Use:   "optimum",
		Short: "Show the analytic optimum against floor(n/e)",
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.NewSweepService(sim.NewEstimator(rng.NewAdapter()), nil)
			result, err := service.Run(cmd.Context(), app.SweepRequest{N: n, Mode: stopping.ModeAnalytic})
			if err != nil {
				return err
			}

			fmt.Println(report.Summary(result))
			fmt.Printf("floor(n/e) = %d, curve peak at skip %d\n",
				result.TheoreticalSkip, result.Optimum.Skip)
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 100, "Number of items in the search horizon")

	return cmd
}
