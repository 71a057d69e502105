package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/verletsim/internal/automation"
	"github.com/san-kum/verletsim/internal/config"
	"github.com/san-kum/verletsim/internal/dynamo"
	"github.com/san-kum/verletsim/internal/export"
	"github.com/san-kum/verletsim/internal/logging"
	"github.com/san-kum/verletsim/internal/metrics"
	"github.com/san-kum/verletsim/internal/physics"
	"github.com/san-kum/verletsim/internal/sim"
	"github.com/san-kum/verletsim/internal/spawn"
	"github.com/san-kum/verletsim/internal/storage"
	"github.com/san-kum/verletsim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	frameDt     float64
	frames      int
	benchFrames int
	seed        int64
	gravity     float64
	maxBodies   int
	noSave      bool
	outFile     string
	svgScale    float64
	benchRuns   int
	preset      string
	sweepMin    float64
	sweepMax    float64
	sweepSteps  int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "verletsim",
		Short: "circles falling into a circle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".verletsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a headless simulation and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot per-frame statistics of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the final snapshot of a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the final snapshot of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 1.0, "pixels per world unit")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark frame throughput",
		RunE:  benchSolver,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 120, "frames per measurement")
	benchCmd.Flags().IntVar(&benchRuns, "runs", 4, "concurrent worlds in the ensemble pass")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFRAMES\tGRAVITY\tEMITTERS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.0f\t%d\n", name, p.Frames, p.Solver.Gravity.Y, len(p.Emitters))
			}
			w.Flush()
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file to edit",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations and store each",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "run a preset across a range of gravity values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "lowest gravity")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 4000, "highest gravity")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of gravity values")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, showCmd, plotCmd, exportJSONCmd, exportSVGCmd, benchCmd, presetsCmd, initConfigCmd, scenarioCmd, sweepCmd)
	return rootCmd
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&frameDt, "dt", physics.DefaultFrameDt, "frame timestep")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed for emitters")
	cmd.Flags().Float64Var(&gravity, "gravity", physics.DefaultGravityY, "downward gravity")
	cmd.Flags().IntVar(&maxBodies, "max-bodies", 0, "population cap (0 = unlimited)")
}

// resolveConfig layers defaults, the named preset, the config file and then
// any flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.FrameDt = frameDt
	}
	if cmd.Flags().Changed("frames") {
		cfg.Frames = frames
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Solver.Gravity = dynamo.Vec(0, gravity)
	}
	if cmd.Flags().Changed("max-bodies") {
		cfg.MaxBodies = maxBodies
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runID := fmt.Sprintf("%s_%d", cfg.Name, time.Now().UnixNano())
	ctx = logging.WithRunID(ctx, runID)
	log := logging.NewLogger()

	spawners, err := cfg.Spawners(cfg.Seed)
	if err != nil {
		return err
	}
	s := sim.New(cfg.BuildSolver(), spawners...)
	s.SetLogger(log)
	s.AddMetric(metrics.NewKineticEnergy(cfg.FrameDt / physics.SubSteps))
	s.AddMetric(metrics.NewOverlap())
	s.AddMetric(metrics.NewPopulation())
	s.AddMetric(metrics.NewContainment(cfg.Boundary(), 1e-6))

	log.Info(ctx, "run started", "preset", cfg.Name, "frames", cfg.Frames, "frame_dt", cfg.FrameDt, "seed", cfg.Seed)
	start := time.Now()

	result, err := s.Run(ctx, dynamo.NewWorld(), sim.Config{FrameDt: cfg.FrameDt, Frames: cfg.Frames, ValidateState: true})
	if err != nil {
		steps := 0
		if result != nil {
			steps = result.StepsTaken
		}
		log.Error(ctx, "run failed", err, "frames", steps)
		return err
	}
	elapsed := time.Since(start)
	log.Info(ctx, "run finished", "elapsed", elapsed, "bodies", len(result.Final), "rejected", result.Rejected)

	out := cmd.OutOrStdout()
	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := newMetadata(cfg)
		meta.ID = runID
		if _, err := st.Save(meta, result); err != nil {
			return logging.WrapError(err, "save run %s", runID)
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "frames: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "bodies: %d\n", len(result.Final))
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range []string{"kinetic_energy", "max_overlap", "bodies", "containment"} {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func newMetadata(cfg *config.Config) storage.RunMetadata {
	b := cfg.Boundary()
	return storage.RunMetadata{
		Name:     cfg.Name,
		Seed:     cfg.Seed,
		FrameDt:  cfg.FrameDt,
		Frames:   cfg.Frames,
		SubSteps: physics.SubSteps,
		Gravity:  cfg.Solver.Gravity,
		Boundary: storage.BoundaryMetadata{X: b.Center.X, Y: b.Center.Y, Radius: b.Radius},
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	spawners, err := cfg.Spawners(cfg.Seed)
	if err != nil {
		return err
	}
	s := sim.New(cfg.BuildSolver(), spawners...)
	return viz.Run(viz.NewModel(s, dynamo.NewWorld(), cfg.FrameDt, cfg.Name))
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tDT\tBODIES\tREJECTED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FrameDt,
			run.Bodies,
			run.Rejected,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	stats, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "preset: %s\n", meta.Name)
	fmt.Fprintf(out, "frames: %d\n\n", len(stats))

	series := []struct {
		caption string
		value   func(sim.FrameStat) float64
	}{
		{"bodies", func(f sim.FrameStat) float64 { return float64(f.Bodies) }},
		{"kinetic energy", func(f sim.FrameStat) float64 { return f.Kinetic }},
		{"max overlap", func(f sim.FrameStat) float64 { return f.Overlap }},
	}
	for _, sr := range series {
		data := make([]float64, len(stats))
		for i, f := range stats {
			data[i] = sr.value(f)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

// output returns the --out file or the command's stdout.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snap, err := st.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, snap); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	snap, err := st.LoadSnapshot(args[0])
	if err != nil {
		return err
	}

	boundary := physics.Boundary{
		Center: dynamo.Vec(meta.Boundary.X, meta.Boundary.Y),
		Radius: meta.Boundary.Radius,
	}
	if boundary.Radius <= 0 {
		boundary = physics.DefaultBoundary()
	}

	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, export.SnapshotToSVG(snap, boundary, svgScale)+"\n"); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func benchSolver(cmd *cobra.Command, args []string) error {
	if benchFrames <= 0 || benchRuns <= 0 {
		return fmt.Errorf("frames and runs must be positive")
	}
	out := cmd.OutOrStdout()
	solver := physics.DefaultSolver()

	fmt.Fprintf(out, "benchmarking %d frames, %d sub-steps\n\n", benchFrames, physics.SubSteps)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tFRAMES\tTIME\tFRAMES/SEC")

	for _, n := range []int{10, 100, 250, 500} {
		world := dynamo.NewWorld()
		if err := fillWorld(world, solver.Boundary, n, 5); err != nil {
			return err
		}
		start := time.Now()
		for i := 0; i < benchFrames; i++ {
			solver.Step(world, physics.DefaultFrameDt)
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, benchFrames, elapsed, float64(benchFrames)/elapsed.Seconds())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	rain := config.GetPreset("rain")
	factory := func(s int64) ([]spawn.Spawner, error) { return rain.Spawners(s) }
	start := time.Now()
	results, err := sim.NewEnsemble(solver, factory, benchRuns, 1).Run(context.Background(), sim.Config{FrameDt: physics.DefaultFrameDt, Frames: benchFrames})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	total := 0
	for _, r := range results {
		total += r.StepsTaken
	}
	fmt.Fprintf(out, "\nensemble: %d worlds, %d frames in %v (%.0f frames/sec)\n", benchRuns, total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}

// fillWorld packs n bodies of radius r on a square grid around the boundary
// centre, skipping cells that would poke through the boundary.
func fillWorld(w *dynamo.World, b physics.Boundary, n int, r float64) error {
	step := 2 * r
	for ring := 0; w.Len() < n; ring++ {
		added := false
		for i := -ring; i <= ring && w.Len() < n; i++ {
			for j := -ring; j <= ring && w.Len() < n; j++ {
				if max(abs(i), abs(j)) != ring {
					continue
				}
				p := b.Center.Add(dynamo.Vec(float64(i)*step, float64(j)*step))
				if !b.Contains(p, r, 0) {
					continue
				}
				if _, err := w.Spawn(p.X, p.Y, r); err != nil {
					return err
				}
				added = true
			}
		}
		if !added && float64(ring)*step > b.Radius {
			return fmt.Errorf("boundary fits only %d bodies of radius %v", w.Len(), r)
		}
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	log := logging.NewLogger()

	results, runErr := automation.RunScenario(ctx, sc, log)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for i, r := range results {
		id, err := st.Save(newMetadata(r.Config), r.Result)
		if err != nil {
			return logging.WrapError(err, "save step %d", i+1)
		}
		fmt.Fprintf(out, "step %d: %s (%d bodies)\n", i+1, id, len(r.Result.Final))
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, &automation.GravitySweep{
		Base:     cfg,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	}, logging.NewLogger())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRAVITY\tBODIES\tMEAN KE\tMAX OVERLAP\tCONTAINED")
	for _, r := range results {
		fmt.Fprintf(w, "%.0f\t%d\t%.4g\t%.4f\t%.2f\n", r.Gravity, r.Bodies, r.MeanKinetic, r.MaxOverlap, r.Containment)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
