package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/pdesim/internal/analysis"
	"github.com/san-kum/pdesim/internal/automation"
	"github.com/san-kum/pdesim/internal/config"
	"github.com/san-kum/pdesim/internal/experiment"
	"github.com/san-kum/pdesim/internal/fdm"
	"github.com/san-kum/pdesim/internal/optim"
	"github.com/san-kum/pdesim/internal/sim"
	"github.com/san-kum/pdesim/internal/storage"
	"github.com/san-kum/pdesim/internal/viz"
)

var (
	dataDir  string
	logLevel string

	dx, dt        float64
	steps         int
	subSteps      int
	every         int
	seed          int64
	icName        string
	amplitude     float64
	x0, y0, width float64
	speed         float64
	drive         float64
	edge          float64
	diffusivity   float64
	du, dv        float64
	feed, kill    float64
	// Config file
	configFile string
	saveConfig string
	// Preset name
	preset string

	plot        bool
	progress    bool
	noSave      bool
	stopOnNaN   bool
	component   int
	frameIndex  int
	outPath     string
	numRuns     int
	benchSteps  int
	benchScales []float64
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepN      int
	searchGrid  []string
	metricName  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "pdesim",
		Short:        "explicit finite-difference PDE simulator",
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pdesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [scheme]",
		Short: "run a simulation and store its frames",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSchemeFlags(runCmd)
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the final profile")
	runCmd.Flags().BoolVar(&progress, "progress", false, "show a live progress view on stderr")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVar(&stopOnNaN, "stop-on-nan", false, "stop at the first non-finite frame")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the resolved config to this yaml file")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored frame profile",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&component, "component", 0, "field component (1 is V for grayscott)")
	plotCmd.Flags().IntVar(&frameIndex, "frame", -1, "recorded frame index, negative counts from the end")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "print the frame table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [scheme]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	stabilityCmd := &cobra.Command{
		Use:   "stability [scheme]",
		Short: "report the stability ratio without running",
		Args:  cobra.ExactArgs(1),
		RunE:  checkStability,
	}
	addSchemeFlags(stabilityCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [scheme]",
		Short: "time the stepper over refined grids",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScheme,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 100, "time levels per run")
	benchCmd.Flags().Float64SliceVar(&benchScales, "refine", []float64{1, 0.5, 0.25}, "dx scale factors")
	benchCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [scheme]",
		Short: "run consecutive seeds in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	addSchemeFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 4, "number of seeds")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scheme]",
		Short: "sweep one parameter and compare predicted and observed stability",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addSchemeFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "dt", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.05, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.15, "last value")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of values")

	searchCmd := &cobra.Command{
		Use:   "search [scheme]",
		Short: "grid search parameters minimizing a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runSearch,
	}
	addSchemeFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&searchGrid, "grid", nil, "parameter values, e.g. dt=0.01,0.02 (repeatable)")
	searchCmd.Flags().StringVar(&metricName, "metric", "max_abs", "metric to minimize")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations from yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd,
		presetsCmd, stabilityCmd, benchCmd, ensembleCmd, sweepCmd, searchCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSchemeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dx, "dx", config.DefaultDx, "space increment")
	f.Float64Var(&dt, "dt", config.DefaultDt, "time increment")
	f.IntVar(&steps, "steps", config.DefaultSteps, "number of time levels")
	f.IntVar(&subSteps, "substeps", 1, "inner updates per frame")
	f.IntVar(&every, "every", config.DefaultEvery, "record every n-th frame (0 keeps only the last)")
	f.Int64Var(&seed, "seed", 0, "random seed (default time based)")
	f.StringVar(&icName, "ic", "", "initial condition (gaussian, square, uniform-random, exponential)")
	f.Float64Var(&amplitude, "amplitude", 1, "initial condition amplitude")
	f.Float64Var(&x0, "x0", 0, "initial condition center x")
	f.Float64Var(&y0, "y0", 0, "initial condition center y")
	f.Float64Var(&width, "width", 0.25, "gaussian width, square half-width or exponential scale")
	f.Float64Var(&speed, "speed", config.DefaultSpeed, "wave speed")
	f.Float64Var(&drive, "drive", 3, "wave1d boundary drive amplitude (0 disables)")
	f.Float64Var(&edge, "edge", 0, "fixed value on 2d edges")
	f.Float64Var(&diffusivity, "k", config.DefaultHeatK, "heat diffusivity")
	f.Float64Var(&du, "du", 0.16, "grayscott U diffusion")
	f.Float64Var(&dv, "dv", 0.08, "grayscott V diffusion")
	f.Float64Var(&feed, "feed", 0.035, "grayscott feed rate F")
	f.Float64Var(&kill, "kill", 0.065, "grayscott kill rate k")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

func newLogger() *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// resolveConfig layers the scheme's canonical preset, a named preset or a
// config file, then any flag the user set explicitly.
func resolveConfig(cmd *cobra.Command, scheme string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		cfg.Scheme = scheme
	case preset != "":
		cfg = config.GetPreset(scheme, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(scheme))
		}
	default:
		cfg = config.ForScheme(scheme)
		if cfg == nil {
			return nil, fmt.Errorf("unknown scheme: %s (available: %v)", scheme, config.ListSchemes())
		}
	}

	changed := cmd.Flags().Changed
	if changed("dx") {
		cfg.Dx = dx
	}
	if changed("dt") {
		cfg.Dt = dt
	}
	if changed("steps") {
		cfg.Steps = steps
	}
	if changed("substeps") {
		cfg.SubSteps = subSteps
	}
	if changed("every") {
		cfg.Every = every
	}
	if changed("ic") {
		cfg.InitialCondition = icName
	}
	if changed("amplitude") {
		cfg.Profile.Amplitude = amplitude
	}
	if changed("x0") {
		cfg.Profile.X0 = x0
	}
	if changed("y0") {
		cfg.Profile.Y0 = y0
	}
	if changed("width") {
		cfg.Profile.Width = width
	}
	if changed("speed") {
		cfg.Wave.Speed = speed
	}
	if changed("drive") {
		cfg.Wave.DriveAmplitude = drive
	}
	if changed("edge") {
		cfg.Wave.Edge = edge
		cfg.Heat.Edge = edge
	}
	if changed("k") {
		cfg.Heat.Diffusivity = diffusivity
	}
	if changed("du") {
		cfg.GrayScott.Du = du
	}
	if changed("dv") {
		cfg.GrayScott.Dv = dv
	}
	if changed("feed") {
		cfg.GrayScott.F = feed
	}
	if changed("kill") {
		cfg.GrayScott.K = kill
	}
	if changed("seed") {
		cfg.Seed = seed
	} else if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return err
		}
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}
	exp.SetLogger(newLogger())

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s simulation (seed %d)...\n", cfg.Scheme, cfg.Seed)
	start := time.Now()

	simCfg := experiment.SimConfig(cfg)
	simCfg.StopOnNonFinite = stopOnNaN
	ic, err := experiment.InitialCondition(cfg, cfg.Seed)
	if err != nil {
		return err
	}
	var result *sim.Result
	if progress {
		result, err = runWithProgress(ctx, os.Stderr, exp.GetSimulator(), ic, simCfg)
	} else {
		result, err = exp.GetSimulator().Run(ctx, ic, simCfg)
	}
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		fmt.Printf("interrupted: %v\n", err)
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Println(viz.Report(result))

	if plot {
		profile := viz.MidProfile(result.Final, 0)
		fmt.Println()
		fmt.Println(viz.Profile(profile,
			fmt.Sprintf("%s u after %d steps", cfg.Scheme, result.StepsTaken), 80, 12))
		fmt.Println()
		printDiagnostics(result.Frames, profile)
	}
	return nil
}

// runWithProgress runs the simulation in the background while a bubbletea
// program draws its progress on out.
func runWithProgress(ctx context.Context, out io.Writer, simulator *sim.Simulator, ic fdm.InitialCondition, cfg sim.Config) (*sim.Result, error) {
	scheme := simulator.Scheme()
	model := viz.NewProgress(scheme.Name(), scheme.Stability(), cfg.Steps)
	p := tea.NewProgram(model,
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
		tea.WithContext(ctx),
	)

	obs := viz.NewProgressObserver(p.Send, cfg.Steps)
	simulator.AddObserver(obs)

	var (
		result *sim.Result
		runErr error
	)
	done := make(chan struct{})
	go func() {
		defer close(done)
		result, runErr = simulator.Run(ctx, ic, cfg)
		p.Send(viz.DoneMsg{})
	}()

	_, uiErr := p.Run()
	<-done
	if uiErr != nil && !errors.Is(uiErr, tea.ErrProgramKilled) {
		newLogger().Warn("progress view failed", "err", uiErr)
	}
	return result, runErr
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCHEME\tTIME\tGRID\tDT\tSTEPS\tRATIO\tLIMIT")

	for _, run := range runs {
		grid := fmt.Sprintf("%d", run.Nx)
		if run.Ny > 1 {
			grid = fmt.Sprintf("%dx%d", run.Nx, run.Ny)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%d\t%.4g\t%.4g\n",
			run.ID,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			grid,
			run.Dt,
			run.StepsTaken,
			run.Stability.Ratio,
			run.Stability.Limit,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if component < 0 || component >= meta.Components {
		return fmt.Errorf("component %d out of range (run has %d)", component, meta.Components)
	}
	idx := frameIndex
	if idx < 0 {
		idx += len(frames)
	}
	if idx < 0 || idx >= len(frames) {
		return fmt.Errorf("frame %d out of range (run has %d)", frameIndex, len(frames))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scheme: %s\n", meta.Scheme)
	fmt.Printf("stability: %s\n", viz.StabilityBadge(meta.Stability))
	fmt.Printf("frames: %d\n", len(frames))
	fmt.Printf("peak |u|: %s\n\n", viz.Sparkline(viz.Peaks(frames), 60))

	fr := frames[idx]
	profile := viz.MidProfile(fr.Field, component)
	caption := fmt.Sprintf("component %d at t=%d", component, fr.T)
	if meta.Ny > 1 {
		caption += fmt.Sprintf(", row %d", meta.Ny/2)
	}
	fmt.Println(viz.Profile(profile, caption, 80, 12))
	fmt.Println()
	printDiagnostics(frames, profile)
	return nil
}

func printDiagnostics(frames []sim.Frame, profile []float64) {
	times := make([]float64, len(frames))
	for i, fr := range frames {
		times[i] = float64(fr.T)
	}
	if rate, ok := analysis.GrowthRate(times, viz.Peaks(frames)); ok {
		fmt.Printf("peak growth: %.4g per level (x%.4g)\n", rate, math.Exp(rate))
	}
	fmt.Printf("high-k power: %.1f%% (dominant mode %d)\n",
		100*analysis.HighFrequencyFraction(profile), analysis.DominantMode(profile))
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta, nil)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if _, err := st.Load(args[0]); err != nil {
		return err
	}

	file, err := os.Open(st.FramesPath(args[0]))
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = io.Copy(os.Stdout, file)
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, frames, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return storage.ExportJSONStdout(meta, frames)
	}
	if err := storage.ExportJSON(outPath, meta, frames); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	schemes := config.ListSchemes()
	if len(args) == 1 {
		schemes = args
	}
	for _, scheme := range schemes {
		presets := config.ListPresets(scheme)
		if len(presets) == 0 {
			fmt.Printf("no presets for scheme: %s\n", scheme)
			continue
		}
		fmt.Printf("presets for %s:\n", scheme)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}

func checkStability(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	scheme, err := experiment.NewRegistry().GetScheme(cfg)
	if err != nil {
		return err
	}

	s := scheme.Stability()
	fmt.Printf("scheme:    %s\n", scheme.Name())
	fmt.Printf("grid:      %s\n", scheme.Grid())
	fmt.Printf("ratio:     %s\n", viz.StabilityBadge(s))
	fmt.Printf("max dt:    %.6g\n", s.MaxDt(cfg.Dt, scheme.Order()))
	fmt.Printf("margin:    %.4g\n", s.Margin())
	if !s.Stable() {
		fmt.Println(viz.StatusUnstable.Render("the field will diverge; the stepper does not clamp"))
	}
	return nil
}

func benchScheme(cmd *cobra.Command, args []string) error {
	base := config.ForScheme(args[0])
	if preset != "" {
		base = config.GetPreset(args[0], preset)
	}
	if base == nil {
		return fmt.Errorf("unknown scheme or preset: %s %s", args[0], preset)
	}

	registry := experiment.NewRegistry()
	fmt.Printf("benchmarking %s\n\n", args[0])
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DX\tDT\tGRID\tUPDATES\tTIME\tPOINTS/SEC")

	for _, scale := range benchScales {
		cfg := base.Clone()
		cfg.Seed = 42
		cfg.Steps = benchSteps
		cfg.Every = 0
		cfg.Heat.Heaters = nil
		cfg.Wave.Obstacles = nil
		cfg.Dx = base.Dx * scale

		// Keep the stability ratio fixed: it scales as dt^order / dx^2.
		probe, err := registry.GetScheme(cfg)
		if err != nil {
			return err
		}
		order := float64(probe.Order())
		cfg.Dt = base.Dt * math.Pow(scale, 2/order)

		exp, err := experiment.New(cfg, registry)
		if err != nil {
			return err
		}

		start := time.Now()
		result, err := exp.Run(context.Background())
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		sub := max(cfg.SubSteps, 1)
		updates := result.StepsTaken * sub
		points := float64(updates) * float64(result.Grid.Len())
		fmt.Fprintf(w, "%.4g\t%.4g\t%s\t%d\t%v\t%.3g\n",
			cfg.Dx, cfg.Dt, gridLabel(result.Grid), updates, elapsed.Round(time.Microsecond), points/elapsed.Seconds())
	}

	return w.Flush()
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	exp, err := experiment.New(cfg, experiment.NewRegistry())
	if err != nil {
		return err
	}
	exp.SetLogger(newLogger())

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %d %s members from seed %d...\n", numRuns, cfg.Scheme, cfg.Seed)
	start := time.Now()
	results, err := exp.Ensemble(ctx, numRuns)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMAX_ABS\tDIVERGED_AT\tMEAN")
	peaks := make([]float64, len(results))
	for i, r := range results {
		peaks[i] = r.Metrics["max_abs"]
		fmt.Fprintf(w, "%d\t%.6g\t%s\t%.6g\n",
			cfg.Seed+int64(i), peaks[i], divergedAt(r), r.Metrics["mean"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, std := stat.MeanStdDev(peaks, nil)
	fmt.Printf("\nmax_abs over seeds: %.6g ± %.3g\n", mean, std)
	return nil
}

func divergedAt(r *sim.Result) string {
	if t := r.Metrics["divergence_frame"]; t >= 0 {
		return fmt.Sprintf("%d", int(t))
	}
	return "-"
}

func gridLabel(g *fdm.Grid) string {
	shape := g.Shape()
	parts := make([]string, len(shape))
	for i, n := range shape {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, "x")
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	cfg.Every = 0

	ctx, cancel := signalContext()
	defer cancel()

	results, err := automation.RunSweep(ctx, &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepN,
	}, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tRATIO\tLIMIT\tPREDICTED\tMAX_ABS\tDIVERGED_AT\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		predicted := "stable"
		if !r.Stability.Stable() {
			predicted = "unstable"
		}
		diverged := "-"
		if r.DivergedAt >= 0 {
			diverged = strconv.Itoa(r.DivergedAt)
		}
		fmt.Fprintf(w, "%.4g\t%.4g\t%.4g\t%s\t%.4g\t%s\n",
			r.ParamValue, r.Stability.Ratio, r.Stability.Limit, predicted, r.MaxAbs, diverged)
	}
	return w.Flush()
}

// parseGrid reads name=v1,v2,... args.
func parseGrid(args []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		name, list, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, nil, fmt.Errorf("bad grid %q, want name=v1,v2", arg)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad grid %q: %w", arg, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	cfg.Every = 0

	names, ranges, err := parseGrid(searchGrid)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("no --grid given (parameters: %v)", config.Params())
	}
	search, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("searching %d combinations of %v for the lowest %s\n\n", search.Size(), names, metricName)
	points, best, err := search.Search(ctx, cfg, experiment.NewRegistry(), metricName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metricName))
	for _, p := range points {
		for _, name := range names {
			fmt.Fprintf(w, "%.4g\t", p.Params[name])
		}
		fmt.Fprintf(w, "%.6g\n", p.Value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %v -> %.6g\n", best.Params, best.Value)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario %s: %s\n", scenario.Name, scenario.Description)
	results, err := automation.RunScenario(ctx, scenario, experiment.NewRegistry(), st, newLogger())
	for i, r := range results {
		id := r.RunID
		if id == "" {
			id = "(not saved)"
		}
		fmt.Printf("%d. %s %s\n", i+1, id, viz.StabilityBadge(r.Result.Stability))
	}
	return err
}
