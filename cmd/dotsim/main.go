package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/dotsim/internal/config"
	"github.com/san-kum/dotsim/internal/export"
	"github.com/san-kum/dotsim/internal/palette"
	"github.com/san-kum/dotsim/internal/random"
	"github.com/san-kum/dotsim/internal/session"
	"github.com/san-kum/dotsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	width      int
	height     int
	radius     int
	interval   time.Duration
	transition time.Duration
	source     string
	seed       int64
	theme      string
	fps        int
	logFile    string
	saveDir    string

	cycles  int
	outFile string
	settled bool
)

// main registers the dotsim commands and runs the live view when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "dotsim",
		Short:        "animated random dots in the terminal",
		SilenceUsage: true,
		RunE:         runLive,
	}
	addSessionFlags(rootCmd)
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	rootCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "view refresh rate")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file")
	rootCmd.Flags().StringVar(&saveDir, "save-dir", ".", "directory for saved svg frames")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "paint a number of cycles and write the frame as svg",
		RunE:  runSnapshot,
	}
	addSessionFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&cycles, "cycles", 1, "number of repaints")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "dots.svg", "output file")
	snapshotCmd.Flags().BoolVar(&settled, "settled", true, "draw final radii instead of mid-transition")

	paletteCmd := &cobra.Command{
		Use:   "palette",
		Short: "list the colors of the palette source",
		RunE:  listPalette,
	}
	paletteCmd.Flags().StringVar(&source, "palette", palette.CrayolaURL, "palette url or file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tRADIUS\tINTERVAL\tTRANSITION")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%d\t%v\t%v\n", name, p.Width, p.Height, p.Radius, p.Interval, p.Transition)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(snapshotCmd, paletteCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "canvas width in pixels")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "canvas height in pixels")
	cmd.Flags().IntVar(&radius, "radius", config.DefaultRadius, "initial radius cap")
	cmd.Flags().DurationVar(&interval, "interval", config.DefaultInterval, "time between repaints")
	cmd.Flags().DurationVar(&transition, "transition", config.DefaultTransition, "radius transition length")
	cmd.Flags().StringVar(&source, "palette", palette.CrayolaURL, "palette url or file")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 seeds from the clock)")
}

// resolveConfig layers preset, config file and explicit flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("interval") {
		cfg.Interval = interval
	}
	if flags.Changed("transition") {
		cfg.Transition = transition
	}
	if flags.Changed("palette") || cfg.Palette == "" {
		cfg.Palette = source
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	return cfg, cfg.Validate()
}

func newSession(cfg *config.Config, logger *log.Logger) *session.Session {
	opts := []session.Option{session.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, session.WithSampler(random.NewWithSource(rand.NewSource(cfg.Seed))))
	}
	return session.New(session.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Radius:     cfg.Radius,
		Interval:   cfg.Interval,
		Transition: cfg.Transition,
	}, palette.NewLoader(cfg.Palette), opts...)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	// the alt screen owns the terminal, so logs go to a file or nowhere
	logger := log.New(io.Discard, "", 0)
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "dotsim")
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer f.Close()
		logger = log.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sess := newSession(cfg, logger)
	go sess.Run(ctx)

	logger.Printf("starting %dx%d session, palette %s", cfg.Width, cfg.Height, cfg.Palette)
	return viz.Run(sess, viz.Options{
		Width:   cfg.Width,
		Height:  cfg.Height,
		FPS:     cfg.FPS,
		Theme:   cfg.Theme,
		SaveDir: saveDir,
	})
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cycles < 1 {
		return fmt.Errorf("cycles must be at least 1, got %d", cycles)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	sess := newSession(cfg, logger)
	// stopped before Run, so only the explicit paints below happen
	if err := sess.Stop(); err != nil {
		return err
	}
	go sess.Run(ctx)

	select {
	case <-sess.Ready():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err := sess.Err(); err != nil {
		return err
	}

	start := time.Now()
	for i := 0; i < cycles; i++ {
		if err := sess.Paint(); err != nil {
			return err
		}
	}

	frame, err := sess.Snapshot()
	if err != nil {
		return err
	}
	if err := export.WriteSVG(outFile, frame, settled); err != nil {
		return err
	}

	fmt.Printf("painted %d cycles in %v\n", frame.Cycles, time.Since(start))
	fmt.Printf("circles: %d (radius cap %d)\n", frame.Live, frame.RadiusCap)
	fmt.Printf("saved to %s\n", outFile)
	return nil
}

func listPalette(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	p, err := palette.NewLoader(source).Load(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tHEX\tRGB")
	for _, c := range p {
		fmt.Fprintf(w, "%s\t%s\t%s\n", c.Name, c.Hex, c.RGB)
	}
	return w.Flush()
}
