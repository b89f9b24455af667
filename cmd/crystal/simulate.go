package main

import (
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/scenario"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSimulateCommand() *cobra.Command {
	var (
		workers int
		step    time.Duration
		list    bool
	)
	cmd := &cobra.Command{
		Use:   "simulate [scenario...]",
		Short: "Run scripted scenarios headlessly and print their final state",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if list {
				for _, s := range scenario.Builtin() {
					fmt.Fprintf(out, "%-24s %s\n", s.Name, s.Description)
				}
				return nil
			}

			scenarios, err := scenario.ByName(args...)
			if err != nil {
				return err
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			runner := scenario.NewRunner(
				scenario.WithConfig(cfg),
				scenario.WithWorkers(workers),
				scenario.WithStep(step),
			)
			reports := runner.Run(cmd.Context(), scenarios)

			summaries := make([]scenario.Summary, len(reports))
			for i, r := range reports {
				summaries[i] = r.Summary()
			}
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(summaries); err != nil {
				return fmt.Errorf("encode reports: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent scenarios (0 = one per CPU)")
	cmd.Flags().DurationVar(&step, "step", 10*time.Millisecond, "Simulated time per tick")
	cmd.Flags().BoolVar(&list, "list", false, "List the builtin scenarios")
	return cmd
}
