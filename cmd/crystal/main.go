// Command crystal runs the crystal assembly in a window, in a terminal, as a headless
// scenario batch, or prints the detected device profile.
package main

import (
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/spf13/cobra"
)

const appName = "oxy-crystal"

var configPath string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "crystal",
		Short: "Interactive exploding crystal",
		Long: `crystal - an interactive crystal that fractures into selectable facets.

Controls (window and term):
  Space       - Explode / reform
  1-9         - Select facet
  Arrows      - Move hover between facets
  Enter       - Select hovered facet
  Esc         - Deselect, or reform when nothing is selected
  Mouse drag  - Orbit while exploded
  Mouse wheel - Zoom, when camera.enableZoom is set
  H           - Toggle help
  Q           - Quit`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or TOML config file")

	root.AddCommand(
		newWindowCommand(),
		newTermCommand(),
		newSimulateCommand(),
		newProfileCommand(),
	)
	return root
}

// loadConfig returns the --config file, or the defaults when no file was given.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
