package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Carmen-Shannon/oxy-crystal/engine"
	"github.com/Carmen-Shannon/oxy-crystal/engine/audio"
	"github.com/Carmen-Shannon/oxy-crystal/engine/camera"
	"github.com/Carmen-Shannon/oxy-crystal/engine/crystal"
	"github.com/Carmen-Shannon/oxy-crystal/engine/device"
	"github.com/Carmen-Shannon/oxy-crystal/engine/input"
	"github.com/Carmen-Shannon/oxy-crystal/engine/renderer"
	"github.com/Carmen-Shannon/oxy-crystal/engine/timer"
	"github.com/Carmen-Shannon/oxy-crystal/engine/window"
	"github.com/spf13/cobra"
)

func newWindowCommand() *cobra.Command {
	var (
		width, height int
		software      bool
		profiling     bool
		watch         bool
	)
	cmd := &cobra.Command{
		Use:   "window",
		Short: "Run the crystal in a GPU window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			w, err := window.NewWindow(
				window.WithTitle(appName),
				window.WithSize(width, height),
			)
			if err != nil {
				return err
			}
			mode, modeErr := w.VideoMode()
			if modeErr != nil {
				log.Printf("[Window] warning: %v", modeErr)
			}

			player := audio.NewPlayer(audio.WithAudioConfig(cfg.Audio))
			defer player.Close()

			a := crystal.NewAssembly(
				crystal.WithConfig(cfg),
				crystal.WithPhaseListener(player.HandlePhase),
			)
			cam := camera.NewCamera(
				camera.WithFovDegrees(cfg.Camera.FovDegrees),
				camera.WithViewport(w.Width(), w.Height(), 1),
				camera.WithClipPlanes(0.1, 100),
			)

			r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, w,
				renderer.WithPresentMode(renderer.PresentModeVSync),
				renderer.WithForceSoftwareRenderer(software),
				renderer.WithMaterial(a.Material()),
				renderer.WithCamera(cam),
			)
			if err != nil {
				_ = w.Close()
				return fmt.Errorf("create renderer: %w", err)
			}
			defer r.Release()

			ctrl := input.NewController(a)
			ctrl.SetViewport(w.Width(), w.Height(), cam.ProjectionMatrix())

			sched := timer.NewScheduler(timer.WallClock{})
			resolver := device.NewResolver(
				device.WithSignalSource(device.NativeSource{
					Screen: func() (int, int, float32, error) {
						if modeErr != nil {
							return 0, 0, 0, modeErr
						}
						return mode.Width, mode.Height, mode.ContentScale, nil
					},
					GPU: func() (*device.GPUInfo, error) {
						return r.AdapterInfo(), nil
					},
				}),
				device.WithOverrideStore(device.NewGdataOverrideStore(appName)),
				device.WithScheduler(sched),
			)
			perf := resolver.Profile().Performance

			eng := engine.NewEngine(
				engine.WithWindow(w),
				engine.WithRenderer(r),
				engine.WithAssembly(a),
				engine.WithCamera(cam),
				engine.WithProfiling(profiling),
				engine.WithTickRate(60),
				engine.WithRenderFrameLimit(float64(perf.TargetFPS)),
				engine.WithResizeHook(func(width, height int) {
					ctrl.SetViewport(width, height, cam.ProjectionMatrix())
					resolver.NotifyResize(width, height)
				}),
			)
			applyBudget := func(p device.PerformanceConfig) {
				r.ApplyPerformance(p)
				eng.SetRenderFrameLimit(float64(p.TargetFPS))
				a.SetPBR(p.UsePBR)
			}
			applyBudget(perf)
			resolver.OnChange(func(p device.Profile) {
				applyBudget(p.Performance)
			})

			eng.SetTickCallback(func(float32) {
				sched.Update()
			})
			var lastTitle string
			eng.SetFrameCallback(func(f crystal.Frame) {
				if t := frameTitle(f); t != lastTitle {
					lastTitle = t
					w.SetTitle(t)
				}
			})

			w.SetKeyDownCallback(func(key uint32) {
				switch ctrl.HandleKey(key) {
				case input.ActionQuit:
					eng.Quit()
				case input.ActionToggleHelp:
					if ctrl.HelpVisible() {
						log.Print(cmd.Root().Long)
					}
				}
			})
			w.SetMouseDownCallback(func(b window.MouseButton, x, y int32) {
				if b == window.MouseButtonLeft {
					ctrl.PointerDown(float32(x), float32(y))
				}
			})
			w.SetMouseUpCallback(func(b window.MouseButton, x, y int32) {
				if b == window.MouseButtonLeft {
					ctrl.PointerUp(float32(x), float32(y))
				}
			})
			w.SetMouseMoveCallback(func(x, y int32) {
				ctrl.PointerMove(float32(x), float32(y))
			})
			w.SetScrollCallback(ctrl.Scroll)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			go func() {
				select {
				case <-eng.Done():
					cancel()
				case <-ctx.Done():
				}
			}()
			if watch && configPath != "" {
				go watchConfig(ctx, a)
			}

			eng.Run()
			return nil
		},
	}
	cmd.Flags().IntVar(&width, "width", 1280, "Window width")
	cmd.Flags().IntVar(&height, "height", 720, "Window height")
	cmd.Flags().BoolVar(&software, "software", false, "Force the software (CPU) adapter")
	cmd.Flags().BoolVar(&profiling, "profile-fps", false, "Log frame rate statistics")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload --config when the file changes")
	return cmd
}

func frameTitle(f crystal.Frame) string {
	switch {
	case f.Selected != "":
		if ff, ok := f.Facet(f.Selected); ok && ff.Label != "" {
			return appName + " - " + ff.Label
		}
		return appName + " - " + f.Selected
	case f.Hovered != "":
		return appName + " - " + f.Phase.String() + " (" + f.Hovered + ")"
	default:
		return appName + " - " + f.Phase.String()
	}
}
