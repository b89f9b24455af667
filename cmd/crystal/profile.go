package main

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-crystal/engine/device"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newProfileCommand() *cobra.Command {
	var (
		override      string
		clearOverride bool
	)
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the detected device profile",
		Long:  "Print the detected device profile. --override forces and persists a performance tier; --clear-override removes it.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := device.NewResolver(
				device.WithSignalSource(device.NativeSource{}),
				device.WithOverrideStore(device.NewGdataOverrideStore(appName)),
			)
			switch {
			case clearOverride:
				if err := r.ClearOverride(); err != nil {
					return fmt.Errorf("clear override: %w", err)
				}
			case override != "":
				tier, ok := device.ParseTier(override)
				if !ok {
					return fmt.Errorf("unknown tier %q (want low, medium or high)", override)
				}
				if err := r.Override(tier); err != nil {
					return fmt.Errorf("override: %w", err)
				}
			}

			data, err := yaml.Marshal(r.Profile())
			if err != nil {
				return fmt.Errorf("encode profile: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&override, "override", "", "Force a performance tier (low, medium, high)")
	cmd.Flags().BoolVar(&clearOverride, "clear-override", false, "Remove a forced tier")
	cmd.MarkFlagsMutuallyExclusive("override", "clear-override")
	return cmd
}
