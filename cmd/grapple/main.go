package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/grapple/internal/analysis"
	"github.com/san-kum/grapple/internal/automation"
	"github.com/san-kum/grapple/internal/config"
	"github.com/san-kum/grapple/internal/constraint"
	"github.com/san-kum/grapple/internal/control"
	"github.com/san-kum/grapple/internal/dynamo"
	"github.com/san-kum/grapple/internal/export"
	"github.com/san-kum/grapple/internal/metrics"
	"github.com/san-kum/grapple/internal/optim"
	"github.com/san-kum/grapple/internal/sim"
	"github.com/san-kum/grapple/internal/storage"
	"github.com/san-kum/grapple/internal/viz"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	dataDir string
	debug   bool
	logFile *os.File
	// Scenario selection
	configFile string
	preset     string
	name       string
	// Rope overrides
	dt           float64
	duration     float64
	points       int
	distance     float64
	iterations   int
	gravity      float64
	extendSpeed  float64
	retractSpeed float64
	// Output
	frameIndex int
	trajectory bool
	outFile    string
	// Live view
	manual bool
	// Sweep
	sweepParams []string
	sweepMetric string
	parallel    int
	top         int
	// Monte Carlo
	trials       int
	perturbation float64
	seed         int64
)

// main registers the grapple commands, opens the preset menu when no
// subcommand is given, and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "grapple",
		Short: "verlet grapple rope simulator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(debug)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".grapple", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug log to logs/grapple.log")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario and store its frames",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().BoolVar(&manual, "manual", false, "steer the grapple from the keyboard instead of the script")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot rope length, contacts and a rendered frame",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame to render (-1 for the last active frame)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "sway frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a frame or the rope end trajectory to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame to draw (-1 for the last active frame)")
	exportSVGCmd.Flags().BoolVar(&trajectory, "trajectory", false, "draw the path of the rope end instead of a frame")
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tDURATION\tPOINTS\tEVENTS\tWORLD")
			for _, p := range config.ListPresets() {
				cfg := config.GetPreset(p)
				fmt.Fprintf(w, "%s\t%.1fs\t%d\t%d\t%d segments\n",
					p, cfg.Duration, cfg.Rope.Points, len(cfg.Scenario.Events), len(cfg.World.Segments()))
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [preset]",
		Short: "print a scenario config as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  dumpConfig,
	}
	configCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search rope parameters",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "parameter values as name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "max_stretch", "metric to minimize")
	sweepCmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "concurrent simulations")
	sweepCmd.Flags().IntVar(&top, "top", 10, "trials to print")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput",
		Args:  cobra.NoArgs,
		RunE:  benchSimulator,
	}
	addScenarioFlags(benchCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run a YAML batch of scenarios and store each run",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run trials with jittered grapple targets",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addScenarioFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturb", 2.0, "maximum jitter per axis")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for time based)")
	monteCarloCmd.Flags().IntVar(&parallel, "parallel", runtime.NumCPU(), "concurrent simulations")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, configCmd, sweepCmd, benchCmd, batchCmd, monteCarloCmd)

	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&name, "name", "", "run name")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&points, "points", sim.DefaultPoints, "rope points")
	cmd.Flags().Float64Var(&distance, "distance", config.DefaultDistance, "constraint distance between points")
	cmd.Flags().IntVar(&iterations, "iterations", constraint.DefaultIterations, "constraint relaxation passes per tick")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravityY, "downward gravity")
	cmd.Flags().Float64Var(&extendSpeed, "extend-speed", control.DefaultExtendSpeed, "grapple extension speed")
	cmd.Flags().Float64Var(&retractSpeed, "retract-speed", control.DefaultRetractSpeed, "retraction speed")
}

// loadConfig resolves the scenario: preset, then config file, then any
// flags set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, preset, config.ListPresets())
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
	if flags.Changed("name") {
		cfg.Name = name
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("points") {
		cfg.Rope.Points = points
	}
	if flags.Changed("distance") {
		cfg.Rope.Distance = distance
	}
	if flags.Changed("iterations") {
		cfg.Rope.Iterations = iterations
	}
	if flags.Changed("gravity") {
		cfg.Rope.Gravity.Y = gravity
	}
	if flags.Changed("extend-speed") {
		cfg.Rope.ExtendSpeed = extendSpeed
	}
	if flags.Changed("retract-speed") {
		cfg.Rope.RetractSpeed = retractSpeed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSimulator(cfg *config.Config) *sim.Simulator {
	s := sim.New(cfg.Params(), cfg.World.Oracle())
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}
	return s
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := newSimulator(cfg)
	log.Printf("run %s: dt=%g duration=%g points=%d iterations=%d", cfg.Name, cfg.Dt, cfg.Duration, cfg.Rope.Points, cfg.Rope.Iterations)

	fmt.Printf("running %s...\n", cfg.Name)
	start := time.Now()

	result, err := s.Run(ctx, &cfg.Scenario, cfg.SimConfig())
	if err != nil {
		var simErr *dynamo.SimulationError
		if errors.As(err, &simErr) {
			log.Printf("run %s stopped at tick %d (t=%.4f): %v", cfg.Name, simErr.Tick, simErr.Time, simErr.Wrapped)
		}
		return err
	}

	elapsed := time.Since(start)
	for _, e := range result.Errors {
		log.Printf("run %s: %v", cfg.Name, e)
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	runID, err := saveRun(st, cfg, result)
	if err != nil {
		return err
	}
	log.Printf("run %s saved as %s (%d ticks in %v)", cfg.Name, runID, result.TicksTaken, elapsed)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Println("\nmetrics:")
	for _, k := range sortedKeys(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", k, result.Metrics[k])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		preset = args[0]
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log.Printf("live %s (manual=%v)", cfg.Name, manual)
	return viz.Run(cfg, !manual)
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tPOINTS\tITER\tTICKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Points,
			run.Iterations,
			run.Ticks,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.Frame, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, frames, nil
}

// pickFrame returns frame idx, or the last active frame when idx is
// negative.
func pickFrame(frames []dynamo.Frame, idx int) (dynamo.Frame, error) {
	if idx < 0 {
		for i := len(frames) - 1; i >= 0; i-- {
			if frames[i].Active() {
				return frames[i], nil
			}
		}
		return dynamo.Frame{}, fmt.Errorf("%w: no active frame", dynamo.ErrEmptyRun)
	}
	if idx >= len(frames) {
		return dynamo.Frame{}, fmt.Errorf("frame %d out of range (run has %d)", idx, len(frames))
	}
	return frames[idx], nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("name: %s\n", meta.Name)
	fmt.Printf("frames: %d\n\n", len(frames))

	lengths := make([]float64, len(frames))
	contacts := make([]float64, len(frames))
	for i, f := range frames {
		lengths[i] = f.RopeLength
		contacts[i] = float64(f.Contacts)
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{lengths, "rope length"},
		{contacts, "contacts per tick"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	f, err := pickFrame(frames, frameIndex)
	if err != nil {
		fmt.Println("rope never active, nothing to render")
		return nil
	}
	fmt.Printf("frame %d (t=%.3fs)\n", f.Tick, f.Time)
	fmt.Print(viz.RenderFrame(f, meta.World.Segments(), 60, 15))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	sway := analysis.SwaySignal(frames)
	if len(sway) < 4 {
		return fmt.Errorf("%w: only %d active frames", dynamo.ErrEmptyRun, len(sway))
	}

	fmt.Printf("sway analysis: %s\n", meta.ID)
	fmt.Printf("active frames: %d of %d\n\n", len(sway), len(frames))

	fmt.Println(asciigraph.Plot(sway,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mid-point offset from chord"),
	))
	fmt.Println()

	ps := analysis.Spectrum(sway)
	plotData := ps[:max(len(ps)/2, 2)]
	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("sway spectrum"),
	))
	fmt.Println()

	freq := analysis.DominantFrequency(sway, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time", "rope_length", "contacts"}
	for i := 0; i < meta.Points; i++ {
		header = append(header, fmt.Sprintf("x%d", i), fmt.Sprintf("y%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, f := range frames {
		row := []string{
			strconv.FormatFloat(f.Time, 'f', 6, 64),
			strconv.FormatFloat(f.RopeLength, 'f', 6, 64),
			strconv.Itoa(f.Contacts),
		}
		for _, p := range f.Points {
			row = append(row, strconv.FormatFloat(p.X, 'f', 6, 64), strconv.FormatFloat(p.Y, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	type jsonFrame struct {
		Tick       int           `json:"tick"`
		Time       float64       `json:"time"`
		RopeLength float64       `json:"rope_length"`
		Contacts   int           `json:"contacts"`
		Points     []dynamo.Vec2 `json:"points,omitempty"`
	}
	out := struct {
		Metadata *storage.RunMetadata `json:"metadata"`
		Frames   []jsonFrame          `json:"frames"`
	}{Metadata: meta, Frames: make([]jsonFrame, len(frames))}

	for i, f := range frames {
		out.Frames[i] = jsonFrame{Tick: f.Tick, Time: f.Time, RopeLength: f.RopeLength, Contacts: f.Contacts, Points: f.Points}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	if trajectory {
		svg = export.TrajectoryToSVG(analysis.Track(frames, -1), 800, 600, "#00ff88")
	} else {
		f, err := pickFrame(frames, frameIndex)
		if err != nil {
			return err
		}
		svg = export.FrameToSVG(f, meta.World.Segments(), 800, 600)
	}
	if svg == "" {
		return fmt.Errorf("%w: nothing to draw", dynamo.ErrEmptyRun)
	}
	return writeOut([]byte(svg))
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) == 1 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, args[0], config.ListPresets())
		}
	}
	if outFile != "" {
		return config.Save(outFile, cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func writeOut(data []byte) error {
	if outFile == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outFile, data, 0644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", outFile)
	return nil
}

// parseSweepParam reads "name=v1,v2,...".
func parseSweepParam(s string) (string, []float64, error) {
	key, list, ok := strings.Cut(s, "=")
	if !ok || key == "" || list == "" {
		return "", nil, fmt.Errorf("%w: sweep parameter %q must look like name=v1,v2", dynamo.ErrInvalidConfig, s)
	}
	var vals []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("%w: sweep parameter %q: %v", dynamo.ErrInvalidConfig, key, err)
		}
		vals = append(vals, v)
	}
	return key, vals, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepParams) == 0 {
		return fmt.Errorf("%w: at least one --param is required", dynamo.ErrInvalidConfig)
	}
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(sweepParams))
	ranges := make([][]float64, 0, len(sweepParams))
	for _, p := range sweepParams {
		key, vals, err := parseSweepParam(p)
		if err != nil {
			return err
		}
		names = append(names, key)
		ranges = append(ranges, vals)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("sweep %s over %v minimizing %s", base.Name, names, sweepMetric)
	start := time.Now()
	trials, err := optim.NewGridSearch(names, ranges, parallel).Search(ctx, base, sweepMetric)
	if err != nil {
		return err
	}
	fmt.Printf("%d trials in %v\n\n", len(trials), time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for i, tr := range trials {
		if i >= top {
			break
		}
		cols := make([]string, 0, len(names)+1)
		for _, n := range names {
			cols = append(cols, strconv.FormatFloat(tr.Params[n], 'g', 6, 64))
		}
		cols = append(cols, strconv.FormatFloat(tr.Score, 'f', 6, 64))
		fmt.Fprintln(w, strings.Join(cols, "\t"))
	}
	return w.Flush()
}

func benchSimulator(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking %s (%.1fs simulated per row)\n\n", base.Name, base.Duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "POINTS\tITER\tTICKS\tTIME\tTICKS/SEC")

	for _, n := range []int{16, 32, 64, 128} {
		for _, it := range []int{1, 3, 10} {
			cfg := base.Clone()
			cfg.Rope.Points, cfg.Rope.Iterations = n, it

			s := sim.New(cfg.Params(), cfg.World.Oracle())
			start := time.Now()
			result, err := s.Run(context.Background(), &cfg.Scenario, cfg.SimConfig())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n",
				n, it, result.TicksTaken, elapsed, float64(result.TicksTaken)/elapsed.Seconds())
		}
	}
	return w.Flush()
}

func saveRun(st *storage.Store, cfg *config.Config, result *dynamo.Result) (string, error) {
	return st.Save(storage.RunMetadata{
		Name:       cfg.Name,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Points:     cfg.Rope.Points,
		Distance:   cfg.Rope.Distance,
		Iterations: cfg.Rope.Iterations,
		Gravity:    cfg.Rope.Gravity,
		World:      cfg.World,
	}, result)
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("batch %s: %d steps\n", b.Name, len(b.Steps))
	results, runErr := automation.RunBatch(ctx, b)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tRUN ID\tTICKS\tMAX STRETCH")
	for i, r := range results {
		runID, err := saveRun(st, r.Config, r.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.6f\n", i+1, r.Config.Name, runID, r.Result.TicksTaken, r.Result.Metrics["max_stretch"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("montecarlo %s: %d trials, perturbation %g", base.Name, trials, perturbation)
	start := time.Now()
	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:         base,
		Perturbation: perturbation,
		NumTrials:    trials,
		Parallel:     parallel,
		Seed:         seed,
	})
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	worst := results[0]
	for _, r := range results[1:] {
		if r.Metrics["max_stretch"] > worst.Metrics["max_stretch"] {
			worst = r
		}
	}

	fmt.Printf("%d trials in %v\n", len(results), time.Since(start))
	fmt.Printf("stable: %d  unstable: %d\n", stable, unstable)
	fmt.Printf("worst max_stretch: %.6f (trial %d, targets %v)\n", worst.Metrics["max_stretch"], worst.TrialID, worst.Targets)
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
