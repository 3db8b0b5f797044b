package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/logging"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/orbit"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/tui"
	"github.com/san-kum/orbitsim/internal/viz"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	configFile string
	preset     string
	logLevel   string
	themeName  string
	// live
	plain bool
	// render
	renderOut  string
	frameIndex int
	// trace
	traceOut string

	logger *log.Logger
)

// main runs the root command and exits with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if logger == nil {
			logger = log.Default()
		}
		logger.Error("orbitsim failed", "err", err)
		os.Exit(1)
	}
}

// newRootCmd registers every command. The live animation runs when no
// subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "orbitsim",
		Short:             "circular planetary orbit animation",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogger,
		RunE:              runLive,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "solar", "preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "colour theme (overrides the config)")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "use the plain ANSI player")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().BoolVar(&plain, "plain", false, "use the plain ANSI player")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render a frame to svg or the whole run to gif",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "orbits.svg", "output file (.svg or .gif)")
	renderCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame to render to svg (default last)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "write every body position per frame as csv",
		Args:  cobra.NoArgs,
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVarP(&traceOut, "out", "o", "-", "output file, - for stdout")

	plotCmd := &cobra.Command{
		Use:   "plot [body]",
		Short: "plot x(t) and y(t) of a body",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPlot,
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list configured bodies",
		Args:  cobra.NoArgs,
		RunE:  listBodies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets and themes",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "presets:")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(out, "  %-8s %d bodies\n", name, len(cfg.Bodies))
			}
			fmt.Fprintln(out, "themes:")
			for _, name := range viz.ThemeNames() {
				fmt.Fprintf(out, "  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(liveCmd, renderCmd, traceCmd, plotCmd, bodiesCmd, presetsCmd)
	return rootCmd
}

func setupLogger(cmd *cobra.Command, args []string) error {
	level := logLevel
	if level == "" {
		level = config.DefaultLogLevel
		if cfg, err := loadConfig(); err == nil && cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
	}
	l, err := logging.New(os.Stderr, level)
	if err != nil {
		return err
	}
	logger = l
	log.SetDefault(l)
	return nil
}

// loadConfig reads --config when given and the --preset otherwise.
func loadConfig() (*config.SimulationConfig, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q (available: %s)", preset, strings.Join(config.ListPresets(), ", "))
	}
	return cfg, nil
}

func initialize() (*config.SimulationConfig, *sim.RenderState, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	if !slices.Contains(viz.ThemeNames(), cfg.Theme) {
		return nil, nil, fmt.Errorf("unknown theme %q (available: %s)", cfg.Theme, strings.Join(viz.ThemeNames(), ", "))
	}
	state, err := sim.Initialize(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("initialized", "bodies", len(state.Bodies), "frames", len(state.Times), "slowdown", cfg.Slowdown)
	return cfg, state, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, state, err := initialize()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		p := tui.NewPlayer(state, cfg, os.Stdout)
		p.SetLogger(logger)
		return p.Run(ctx)
	}

	m, err := viz.NewModel(state, viz.OptionsFromConfig(cfg))
	if err != nil {
		return err
	}
	logging.Quiet(logger)
	m.Driver().SetLogger(logger)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return m.Err()
}

type flusher interface {
	sim.Surface
	Flush() error
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, state, err := initialize()
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(renderOut))
	if ext != ".svg" && ext != ".gif" {
		return fmt.Errorf("unsupported output format %q (want .svg or .gif)", ext)
	}

	f, err := os.Create(renderOut)
	if err != nil {
		return err
	}

	var surface flusher
	if ext == ".svg" {
		svg := export.NewSVGSurface(f, cfg)
		svg.SetFrame(frameIndex)
		surface = svg
	} else {
		surface = export.NewGIFSurface(f, cfg)
	}

	result, err := newBatchDriver(state, surface).Run(cmd.Context())
	if err == nil {
		err = surface.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(renderOut)
		return err
	}

	logger.Info("rendered", "out", renderOut, "frames", result.Frames)
	printMetrics(cmd.OutOrStdout(), result)
	return nil
}

func runTrace(cmd *cobra.Command, args []string) error {
	_, state, err := initialize()
	if err != nil {
		return err
	}

	if traceOut == "-" {
		trace := export.NewTraceSurface(cmd.OutOrStdout())
		result, err := newBatchDriver(state, trace).Run(cmd.Context())
		if err != nil {
			return err
		}
		logger.Info("traced", "out", "stdout", "rows", trace.Rows())
		printMetrics(cmd.ErrOrStderr(), result)
		return nil
	}

	f, err := os.Create(traceOut)
	if err != nil {
		return err
	}
	trace := export.NewTraceSurface(f)
	result, err := newBatchDriver(state, trace).Run(cmd.Context())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(traceOut)
		return err
	}

	logger.Info("traced", "out", traceOut, "rows", trace.Rows())
	printMetrics(cmd.OutOrStdout(), result)
	return nil
}

// seriesRecorder collects one body's coordinates per frame.
type seriesRecorder struct {
	index int
	xs    []float64
	ys    []float64
}

func (r *seriesRecorder) OnFrame(f sim.Frame) {
	p := f.Positions[r.index].Position
	r.xs = append(r.xs, p.X)
	r.ys = append(r.ys, p.Y)
}

type nullSurface struct{}

func (nullSurface) Init([]orbit.Body) error                           { return nil }
func (nullSurface) SetPosition(int, orbit.Body, orbit.Position) error { return nil }
func (nullSurface) Present(sim.Frame) error                           { return nil }

func runPlot(cmd *cobra.Command, args []string) error {
	_, state, err := initialize()
	if err != nil {
		return err
	}

	name := state.Bodies[0].Name
	if len(args) > 0 {
		name = args[0]
	}
	body, index, ok := state.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown body %q", name)
	}

	rec := &seriesRecorder{index: index}
	d := newBatchDriver(state, nullSurface{})
	d.AddObserver(rec)
	result, err := d.Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "body: %s\n", body.Name)
	fmt.Fprintf(out, "radius: %.2f\n", body.ScaledRadius())
	fmt.Fprintf(out, "frames: %d\n\n", result.Frames)

	graph := asciigraph.PlotMany([][]float64{rec.xs, rec.ys},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.Caption(body.Name+" x (red), y (blue)"),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)
	printMetrics(out, result)
	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	_, state, err := initialize()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE RADIUS\tSCALED RADIUS\tPERIOD\tEFFECTIVE PERIOD\tCOLOR")
	for _, b := range state.Bodies {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.3f\t%.1f\t%s\n",
			b.Name,
			b.BaseRadius,
			b.ScaledRadius(),
			b.Period,
			state.Model.EffectivePeriod(b),
			b.Color,
		)
	}
	return w.Flush()
}

// newBatchDriver attaches the drift metric and one revolution counter per
// body.
func newBatchDriver(state *sim.RenderState, surface sim.Surface) *sim.Driver {
	d := sim.New(state, surface)
	d.SetLogger(logger)
	d.AddMetric(metrics.NewRadiusDrift(state.Bodies))
	names := make([]string, len(state.Bodies))
	for i, b := range state.Bodies {
		names[i] = b.Name
	}
	for _, m := range metrics.ForBodies(names) {
		d.AddMetric(m)
	}
	return d
}

func printMetrics(w io.Writer, result *sim.Result) {
	keys := make([]string, 0, len(result.Metrics))
	for k := range result.Metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "frames\t%d\n", result.Frames)
	fmt.Fprintf(tw, "last t\t%.1f\n", result.LastT)
	for _, k := range keys {
		fmt.Fprintf(tw, "%s\t%.6g\n", k, result.Metrics[k])
	}
	tw.Flush()
}
