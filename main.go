package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/radial-progress/internal/config"
	"github.com/iburimskiy/radial-progress/internal/game"
	"github.com/iburimskiy/radial-progress/internal/logging"
	"github.com/iburimskiy/radial-progress/internal/svgout"
	"github.com/iburimskiy/radial-progress/internal/term"
)

var (
	ringsPath string
	duration  time.Duration
	logFile   string
	logLevel  string
	values    string

	outputPath string
	width      int
	height     int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "radial",
		Short: "Animated concentric progress rings",
		Long: `radial draws concentric progress rings that animate toward target values.
Without a subcommand it opens a window.`,
		SilenceUsage: true,
		RunE:         runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&ringsPath, "rings", "", "JSON file describing the rings (default: four-ring demo)")
	pf.DurationVar(&duration, "duration", 0, "Animation duration (default 900ms or RADIAL_DURATION_MS)")
	pf.StringVar(&logFile, "log-file", "", "Also append logs to this file")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&values, "values", "", "Comma-separated targets, e.g. 45,55,65,75 (default: demo script)")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "Open a window; the rings can follow an audio file",
		RunE:  runWindow,
	}

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "Draw the rings in the terminal",
		RunE:  runTerm,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Animate offline to the settled frame and write it as SVG",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	renderCmd.Flags().IntVar(&width, "width", 400, "SVG width")
	renderCmd.Flags().IntVar(&height, "height", 400, "SVG height")

	rootCmd.AddCommand(windowCmd, termCmd, renderCmd)
	return rootCmd
}

// loadConfig merges defaults, environment and flags.
func loadConfig() (*config.Config, error) {
	cfg := config.FromEnv()
	if ringsPath != "" {
		rings, err := config.LoadRings(ringsPath)
		if err != nil {
			return nil, err
		}
		cfg.Rings = rings
	}
	if duration != 0 {
		cfg.Duration = duration
	}
	if logFile != "" {
		cfg.LogFile = logFile
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// script returns the --values targets, or the demo script.
func script() ([][]float64, error) {
	if values == "" {
		return config.DemoScript, nil
	}
	v, err := parseValues(values)
	if err != nil {
		return nil, err
	}
	return [][]float64{v}, nil
}

func parseValues(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "value %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := script()
	if err != nil {
		return err
	}
	logger, closeLog := logging.New(os.Stderr, cfg.LogFile, cfg.LogLevel)
	defer closeLog()
	logger.Info("starting window", "rings", len(cfg.Rings), "duration", cfg.Duration)
	return game.Run(cfg, sc, logger)
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := script()
	if err != nil {
		return err
	}
	// the screen owns stdout, so logs only go to the file
	logger, closeLog := logging.New(io.Discard, cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	screen, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "terminal")
	}
	if err := screen.Init(); err != nil {
		return errors.Wrap(err, "terminal")
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := term.Run(ctx, screen, cfg, sc, logger); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := script()
	if err != nil {
		return err
	}
	logger, closeLog := logging.New(os.Stderr, cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	out := os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		out = f
	}

	frames, err := svgout.Render(out, cfg, sc[0], width, height, logger)
	if err != nil {
		return err
	}
	if outputPath != "" {
		fmt.Fprintf(os.Stderr, "wrote %s (%d frames)\n", outputPath, frames)
	}
	return nil
}
