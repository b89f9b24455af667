package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/Carmen-Shannon/oxy-crystal/engine/config"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/term"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
)

func newTermCommand() *cobra.Command {
	var (
		fps   int
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Run the crystal in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("create screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init screen: %w", err)
			}
			defer screen.Fini()

			// Log lines would tear the screen.
			log.SetOutput(io.Discard)
			defer log.SetOutput(os.Stderr)

			a := crystal.NewAssembly(crystal.WithConfig(cfg))
			v, err := term.NewViewer(screen, a, term.WithFrameInterval(time.Second/time.Duration(max(fps, 1))))
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if watch && configPath != "" {
				go watchConfig(ctx, a)
			}

			if err := v.Run(ctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "Frames per second")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload --config when the file changes")
	return cmd
}

// watchConfig applies every reload of --config to a until ctx is done.
func watchConfig(ctx context.Context, a crystal.Assembly) {
	err := config.Watch(ctx, configPath, a.ApplyConfig)
	if err != nil && err != context.Canceled {
		log.Printf("[Config] watch stopped: %v", err)
	}
}
