// Command cubemapview cycles a cubemap through its compressed encodings on the local GPU.
//
// Every few seconds the next candidate encoding the device can sample is loaded, reinterpreted
// as a cube and bound to the skybox. The window title shows the active encoding. Press N, Space
// or the right arrow to cycle immediately, P to toggle profiler output and Esc to quit.
package main

import (
	"cmp"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Carmen-Shannon/oxy-cubemap/common"
	"github.com/Carmen-Shannon/oxy-cubemap/engine"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/asset"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/config"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/cubemap"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/gpu"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/logger"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/profiler"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/scene"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/texture"
	"github.com/Carmen-Shannon/oxy-cubemap/engine/window"
	"github.com/cogentcore/webgpu/wgpu"

	"go.uber.org/zap"
)

type options struct {
	configPath string
	assetRoot  string
	headless   bool
	policy     string
	duration   time.Duration
	watch      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "YAML configuration file (defaults are used when empty)")
	flag.StringVar(&opts.assetRoot, "assets", "", "asset root directory, overrides asset_root")
	flag.BoolVar(&opts.headless, "headless", false, "run without a window")
	flag.StringVar(&opts.policy, "policy", "", "failure policy: advance, retry or hold")
	flag.DurationVar(&opts.duration, "duration", 0, "quit after this long (0 runs until closed)")
	flag.BoolVar(&opts.watch, "watch", false, "reload assets when their files change")
	flag.Parse()

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, "cubemapview:", err)
		os.Exit(1)
	}
}

func loadConfig(opts options) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		if cfg, err = config.Load(opts.configPath); err != nil {
			return config.Config{}, err
		}
	}

	cfg.AssetRoot = cmp.Or(opts.assetRoot, cfg.AssetRoot)
	cfg.FailurePolicy = cmp.Or(opts.policy, cfg.FailurePolicy)
	cfg.Window.Headless = cfg.Window.Headless || opts.headless
	cfg.WatchAssets = cfg.WatchAssets || opts.watch
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func run(opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// ── Logger ──────────────────────────────────────────────────────────
	if err := logger.Init(cfg.Log.Development, cfg.Log.Level); err != nil {
		return err
	}
	log := logger.Get()
	defer func() { _ = log.Sync() }()

	// ── Window ──────────────────────────────────────────────────────────
	var win window.Window
	var surface *wgpu.SurfaceDescriptor
	if !cfg.Window.Headless {
		win, err = window.NewWindow(
			window.WithTitle(cfg.Window.Title),
			window.WithSize(cfg.Window.Width, cfg.Window.Height),
		)
		if err != nil {
			return fmt.Errorf("failed to create window: %w", err)
		}
		defer win.Close()
		surface = win.SurfaceDescriptor()
	}

	// ── Device ──────────────────────────────────────────────────────────
	var probe texture.CapabilityProbe
	device, err := gpu.NewDevice(surface, false, log)
	switch {
	case err == nil:
		defer device.Release()
		probe = device.Probe()
	case cfg.Window.Headless:
		log.Warn("no GPU device, only uncompressed candidates are eligible", zap.Error(err))
		probe = texture.StaticProbe(texture.CapabilityNone)
	default:
		return err
	}

	// ── Assets ──────────────────────────────────────────────────────────
	assets := asset.NewServer(
		asset.WithRoot(cfg.AssetRoot),
		asset.WithWorkers(cfg.Workers),
		asset.WithWatch(cfg.WatchAssets),
		asset.WithLogger(log),
	)
	defer assets.Close()

	// ── Scene ───────────────────────────────────────────────────────────
	sc := scene.NewScene("cubemap",
		scene.WithSkybox(cfg.Skybox),
		scene.WithEnvironmentMap(cfg.Environment),
	)
	envMap := sc.EnvironmentMap()

	// ── Cubemap ─────────────────────────────────────────────────────────
	status := cubemap.NewStatusLine(func(line string) {
		if win != nil {
			win.SetTitle(fmt.Sprintf("%s - %s", cfg.Window.Title, line))
			return
		}
		log.Info("status", zap.String("status", line), zap.String("scene", sc.Describe()))
	})

	ctrl := cubemap.NewController(probe, assets, append(cfg.ControllerOptions(),
		cubemap.WithConsumers(sc.CubemapSlots()...),
		cubemap.WithLogger(log),
		cubemap.WithStatusCallback(status.SetCubemap),
	)...)
	defer ctrl.Close()

	env := cubemap.NewEnvironmentLoader(assets, cfg.Environment.Maps(), envMap.DiffuseSlot(), envMap.SpecularSlot(),
		cubemap.WithEnvironmentTimeout(cfg.LoadTimeout),
		cubemap.WithEnvironmentLogger(log),
	)
	defer env.Close()

	// ── Profiler ────────────────────────────────────────────────────────
	prof := profiler.NewProfiler(
		profiler.WithLogger(log),
		profiler.WithStatsSource(func() []zap.Field {
			stats := ctrl.Stats()
			return []zap.Field{
				zap.String("cubemap", stats.Path),
				zap.Bool("loaded", stats.Loaded),
				zap.Stringer("supported", stats.Supported),
				zap.Int("eligible", stats.Eligible),
				zap.Int("loads", stats.Loads),
				zap.Int("failures", stats.Failures),
				zap.Int("retries", stats.Retries),
				zap.Int("malformed", stats.Malformed),
				zap.Int("skipped", stats.Skipped),
				zap.Float64("swap_delay", stats.SwapDelay),
				zap.Stringer("rearm_policy", stats.RearmPolicy),
				zap.Float64("next_swap", stats.NextSwap),
				zap.Int("pending_assets", assets.Pending()),
				zap.Bool("environment_ready", env.Ready()),
			}
		}),
	)

	// ── Input ───────────────────────────────────────────────────────────
	keys := make(chan uint32, 8)
	if win != nil {
		win.SetKeyDownCallback(func(keyCode uint32) {
			select {
			case keys <- keyCode:
			default:
			}
		})
	}

	// ── Engine ──────────────────────────────────────────────────────────
	profiling := cfg.Profiling
	engineOptions := []engine.EngineBuilderOption{
		engine.WithTickRate(float64(cfg.TickRate)),
		engine.WithProfiler(prof),
		engine.WithProfiling(profiling),
		engine.WithScene(0, sc),
		engine.WithLogger(log),
	}
	if win != nil {
		engineOptions = append(engineOptions, engine.WithWindow(win))
	}
	eng := engine.NewEngine(engineOptions...)

	ctrl.Start(0)
	env.Start(0)
	status.TrackEnvironment(env)

	eng.SetTickCallback(func(now float64) {
	drain:
		for {
			select {
			case key := <-keys:
				switch key {
				case common.KeyN, common.KeySpace, common.KeyRight:
					ctrl.CycleNow(now)
				case common.KeyP:
					profiling = !profiling
					if profiling {
						eng.EnableProfiler()
					} else {
						eng.DisableProfiler()
					}
				}
			case p := <-assets.Changes():
				ctrl.Reload(now, p)
				env.Reload(now, p)
			default:
				break drain
			}
		}

		ctrl.Tick(now)
		env.Tick(now)
		status.TrackEnvironment(env)
	})

	// ── Shutdown ────────────────────────────────────────────────────────
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case sig := <-signals:
			log.Info("shutting down", zap.Stringer("signal", sig))
			eng.Quit()
		case <-eng.Done():
		}
	}()

	if opts.duration > 0 {
		timer := time.AfterFunc(opts.duration, eng.Quit)
		defer timer.Stop()
	}

	eng.Run()

	stats := ctrl.Stats()
	log.Info("done",
		zap.Int("cycles", stats.Cycles),
		zap.Int("loads", stats.Loads),
		zap.Int("failures", stats.Failures),
	)
	return nil
}
