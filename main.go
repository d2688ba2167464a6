// apex-pulse renders live host telemetry onto the OLED screen of a
// SteelSeries Apex 5 keyboard.
//
// It samples CPU, memory, volume, network, and lock-key state every tick,
// rasterizes the configured widget layout into a 1-bit 128x40 frame, and
// streams the packed frame to the keyboard over hidraw. A terminal preview
// sink and an external SSD1306 mirror are available for development.
//
// Usage:
//
//	apex-pulse [flags]
//
// Flags:
//
//	-config string  Path to layout file (default: search profiles/ and XDG config)
//	-preview        Render to the terminal instead of the keyboard
//	-oled string    Also mirror frames to an SSD1306 on this I2C bus ("" = off)
//	-one            Render a single frame to stdout and exit
//	-verbose        Enable verbose logging
//	-version        Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gitlab.com/tinyland/lab/apex-pulse/pkg/config"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/dashboard"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/hidraw"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/metrics"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/oled"
	"gitlab.com/tinyland/lab/apex-pulse/pkg/preview"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// frameSink receives packed frames. Every output (keyboard, terminal
// preview, OLED mirror) implements it.
type frameSink interface {
	SendFrame(frame []byte) error
}

func main() {
	var (
		configPath  = flag.String("config", "", "Path to layout file")
		usePreview  = flag.Bool("preview", false, "Render to the terminal instead of the keyboard")
		oledBus     = flag.String("oled", "", "Also mirror frames to an SSD1306 on this I2C bus")
		renderOne   = flag.Bool("one", false, "Render a single frame to stdout and exit")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("apex-pulse %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	var (
		cfg *config.Config
		err error
	)
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("shutting down", "signal", sig)
		cancel()
	}()

	renderer := dashboard.New(cfg.Display.Width, cfg.Display.Height)
	collector := metrics.New(metricIntervals(cfg))

	if *renderOne {
		renderer.SkipBoot()
		sample := collector.Sample(ctx, cfg.PreferredNetworkInterface())
		frame := renderer.Render(cfg, sample)
		term := preview.New(os.Stdout, cfg.Display.Width, cfg.Display.Height)
		defer term.Close()
		if err := term.SendFrame(frame); err != nil {
			fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var sinks []frameSink
	if *usePreview {
		term := preview.New(os.Stdout, cfg.Display.Width, cfg.Display.Height)
		defer term.Close()
		sinks = append(sinks, term)
	} else {
		sender := hidraw.NewSender(hidraw.Apex5VID, hidraw.Apex5PID, hidraw.Apex5Interface)
		defer sender.Close()
		sinks = append(sinks, sender)
	}
	if *oledBus != "" {
		mirror, err := oled.Open(*oledBus, oled.DefaultAddr,
			cfg.Display.Width, cfg.Display.Height, 128, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "oled mirror: %v\n", err)
			os.Exit(1)
		}
		defer mirror.Close()
		sinks = append(sinks, mirror)
	}

	refresh := time.Duration(cfg.EffectiveRefreshRateMS()) * time.Millisecond
	logger.Info("starting",
		"display", fmt.Sprintf("%dx%d", cfg.Display.Width, cfg.Display.Height),
		"widgets", len(cfg.Widgets),
		"refresh", refresh)

	run(ctx, logger, cfg, renderer, collector, sinks, refresh)
}

// metricIntervals derives the collector's refresh cadence from the config:
// a per-widget refresh_rate_ms override tightens the matching metric's
// interval, everything else keeps the defaults.
func metricIntervals(cfg *config.Config) metrics.Intervals {
	intervals := metrics.DefaultIntervals()
	if ms := cfg.WidgetRefreshRateMS("volume"); ms > 0 {
		intervals.Volume = time.Duration(ms) * time.Millisecond
	}
	if ms := cfg.WidgetRefreshRateMS("network"); ms > 0 {
		intervals.Network = time.Duration(ms) * time.Millisecond
	}
	if ms := cfg.WidgetRefreshRateMS("keyboard"); ms > 0 {
		intervals.Keyboard = time.Duration(ms) * time.Millisecond
	}
	return intervals
}

// run is the render loop: sample, rasterize, send, once per refresh period.
// Send failures are logged and the loop keeps going; the hidraw sender
// handles device reconnects internally.
func run(ctx context.Context, logger *slog.Logger, cfg *config.Config,
	renderer *dashboard.Renderer, collector *metrics.Collector,
	sinks []frameSink, refresh time.Duration) {

	ticker := time.NewTicker(refresh)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sample := collector.Sample(ctx, cfg.PreferredNetworkInterface())
			frame := renderer.Render(cfg, sample)
			for _, sink := range sinks {
				if err := sink.SendFrame(frame); err != nil {
					logger.Error("frame send failed", "error", err)
				}
			}
		}
	}
}
