package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/toralab/internal/analysis"
	"github.com/san-kum/toralab/internal/config"
	"github.com/san-kum/toralab/internal/experiment"
	"github.com/san-kum/toralab/internal/export"
	"github.com/san-kum/toralab/internal/ode"
	"github.com/san-kum/toralab/internal/render"
	"github.com/san-kum/toralab/internal/storage"
	"github.com/san-kum/toralab/internal/sweep"
	"github.com/san-kum/toralab/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	solver     string
	controller string
	adaptive   bool
	tolerance  float64
	// initial conditions
	pos    float64
	vel    float64
	theta  float64
	omega  float64
	theta1 float64
	theta2 float64
	omega1 float64
	omega2 float64
	// controller gains
	kp     float64
	ki     float64
	kd     float64
	target float64
	torque float64
	// model params as name=value pairs
	paramSets []string
	bdfOrder  int
	// phase plot axes
	xAxis   int
	yAxis   int
	renderX int
	renderY int
	// file output
	outPath    string
	svgPath    string
	configFile string
	preset     string
	// sweep grid
	sweepSolvers  []string
	sweepDts      []float64
	sweepMetric   string
	sweepDuration float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "toralab",
		Short: "oscillator models and ODE solver lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".toralab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [solver1] [solver2] ...",
		Short: "compare solvers on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSolvers,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	compareCmd.Flags().StringSliceVar(&paramSets, "set", nil, "model param name=value")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run trajectories in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write an SVG of x0(t)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")
	phaseCmd.Flags().StringVar(&svgPath, "svg", "", "also write the portrait as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "throughput benchmark across step sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	benchCmd.Flags().StringVar(&solver, "solver", "rk4", "solver")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "grid sweep over solvers and step sizes",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringSliceVar(&sweepSolvers, "solvers", []string{"euler", "rk4", "trapezoid", "bdf", "rosenbrock"}, "solvers to sweep")
	sweepCmd.Flags().Float64SliceVar(&sweepDts, "dts", []float64{0.001, 0.01, 0.1}, "step sizes to sweep")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_drift", "metric to score by")
	sweepCmd.Flags().Float64Var(&sweepDuration, "time", 5.0, "duration")
	sweepCmd.Flags().StringSliceVar(&paramSets, "set", nil, "model param name=value")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run states as CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run data as JSON to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	renderCmd := &cobra.Command{
		Use:   "render [run_id]",
		Short: "render a run as a figure (png/svg/pdf by extension)",
		Args:  cobra.ExactArgs(1),
		RunE:  renderRun,
	}
	renderCmd.Flags().StringVar(&outPath, "out", "trajectory.png", "output file")
	renderCmd.Flags().IntVar(&renderX, "x-axis", -1, "phase x index (set both axes for a phase figure)")
	renderCmd.Flags().IntVar(&renderY, "y-axis", -1, "phase y index")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "interactive live view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	rootCmd.AddCommand(runCmd, compareCmd, listCmd, plotCmd, phaseCmd, analyzeCmd,
		benchCmd, sweepCmd, presetsCmd, exportCSVCmd, exportJSONCmd, renderCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	cmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&solver, "solver", "rk4", "solver")
	cmd.Flags().StringVar(&controller, "controller", "none", "controller")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive stepping")
	cmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive error tolerance")
	cmd.Flags().Float64Var(&pos, "pos", 1.0, "initial position (double_integrator)")
	cmd.Flags().Float64Var(&vel, "vel", 0.0, "initial velocity (double_integrator)")
	cmd.Flags().Float64Var(&theta, "theta", 0.5, "initial angle (tora)")
	cmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity (tora)")
	cmd.Flags().Float64Var(&theta1, "theta1", 0.5, "first angle (coupled_tora)")
	cmd.Flags().Float64Var(&theta2, "theta2", -0.3, "second angle (coupled_tora)")
	cmd.Flags().Float64Var(&omega1, "omega1", 0.0, "first angular velocity (coupled_tora)")
	cmd.Flags().Float64Var(&omega2, "omega2", 0.0, "second angular velocity (coupled_tora)")
	cmd.Flags().Float64Var(&kp, "kp", 10.0, "pd/pid kp")
	cmd.Flags().Float64Var(&ki, "ki", 0.1, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", 5.0, "pd/pid kd")
	cmd.Flags().Float64Var(&target, "target", 0.0, "pd/pid target")
	cmd.Flags().Float64Var(&torque, "torque", 1.0, "constant controller torque")
	cmd.Flags().IntVar(&bdfOrder, "bdf-order", 2, "bdf order (1-6)")
	cmd.Flags().StringSliceVar(&paramSets, "set", nil, "model param name=value (repeatable)")
}

func buildInitState(model string) []float64 {
	switch model {
	case "coupled_tora":
		return []float64{theta1, theta2, omega1, omega2}
	case "tora":
		return []float64{theta, omega}
	default:
		return []float64{pos, vel}
	}
}

func buildParams() (map[string]float64, error) {
	params := map[string]float64{
		"kp":        kp,
		"ki":        ki,
		"kd":        kd,
		"target":    target,
		"torque":    torque,
		"bdf_order": float64(bdfOrder),
	}
	for _, pair := range paramSets {
		name, valStr, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("bad --set %q, want name=value", pair)
		}
		val, err := strconv.ParseFloat(valStr, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --set %q: %w", pair, err)
		}
		params[name] = val
	}
	return params, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	if preset != "" {
		cfg := config.GetPreset(model, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		applyConfig(cmd, cfg)
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
	}

	params, err := buildParams()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	sys, err := registry.GetModel(model)
	if err != nil {
		return err
	}
	integ, err := registry.GetSolver(solver, params)
	if err != nil {
		return err
	}
	ctrl, err := registry.GetController(controller, sys.ControlDim(), params)
	if err != nil {
		return err
	}

	cfg := experiment.Config{
		Model:      model,
		Solver:     solver,
		Controller: controller,
		InitState:  buildInitState(model),
		Dt:         dt,
		Duration:   duration,
		Seed:       seed,
		Tolerance:  tolerance,
		Adaptive:   adaptive,
		Params:     params,
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(sys, integ, ctrl, experiment.DefaultMetrics(sys)); err != nil {
		return err
	}

	fmt.Printf("running %s with %s...\n", model, solver)
	start := time.Now()
	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(model, dt, duration, seed, solver, controller, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d  func evals: %d\n", result.StepsTaken, result.FuncEvals)
	for _, runErr := range result.Errors {
		fmt.Printf("warning: %v\n", runErr)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

// applyConfig pushes preset/file values into the flag variables, keeping
// anything the user set explicitly on the command line.
func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("dt") && cfg.Dt > 0 {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") && cfg.Duration > 0 {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("solver") && cfg.Solver != "" {
		solver = cfg.Solver
	}
	if !cmd.Flags().Changed("controller") && cfg.Controller != "" {
		controller = cfg.Controller
	}
	if !cmd.Flags().Changed("adaptive") {
		adaptive = cfg.Adaptive
	}
	if !cmd.Flags().Changed("tol") && cfg.Tolerance > 0 {
		tolerance = cfg.Tolerance
	}
	if cfg.Seed != 0 && !cmd.Flags().Changed("seed") {
		seed = cfg.Seed
	}
	if !cmd.Flags().Changed("pos") {
		pos = cfg.InitState.Pos
	}
	if !cmd.Flags().Changed("vel") {
		vel = cfg.InitState.Vel
	}
	if !cmd.Flags().Changed("theta") {
		theta = cfg.InitState.Theta
	}
	if !cmd.Flags().Changed("omega") {
		omega = cfg.InitState.Omega
	}
	if !cmd.Flags().Changed("theta1") {
		theta1 = cfg.InitState.Theta1
	}
	if !cmd.Flags().Changed("theta2") {
		theta2 = cfg.InitState.Theta2
	}
	if !cmd.Flags().Changed("omega1") {
		omega1 = cfg.InitState.Omega1
	}
	if !cmd.Flags().Changed("omega2") {
		omega2 = cfg.InitState.Omega2
	}
	if !cmd.Flags().Changed("kp") && cfg.ControllerParams.Kp != 0 {
		kp = cfg.ControllerParams.Kp
	}
	if !cmd.Flags().Changed("ki") && cfg.ControllerParams.Ki != 0 {
		ki = cfg.ControllerParams.Ki
	}
	if !cmd.Flags().Changed("kd") && cfg.ControllerParams.Kd != 0 {
		kd = cfg.ControllerParams.Kd
	}
	if !cmd.Flags().Changed("target") {
		target = cfg.ControllerParams.Target
	}
	if !cmd.Flags().Changed("torque") && cfg.ControllerParams.Torque != 0 {
		torque = cfg.ControllerParams.Torque
	}
	for name, value := range cfg.ModelParams {
		paramSets = append(paramSets, fmt.Sprintf("%s=%g", name, value))
	}
}

func compareSolvers(cmd *cobra.Command, args []string) error {
	model := args[0]
	solvers := args[1:]

	params, err := buildParams()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	fmt.Printf("comparing solvers for %s (dt=%.4f, duration=%.1fs)\n\n", model, dt, duration)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tFINAL_X0\tENERGY_DRIFT\tSTEPS\tFUNC_EVALS\tTIME_MS")

	for _, name := range solvers {
		// Fresh model per solver so implicit history never leaks between runs.
		sys, err := registry.GetModel(model)
		if err != nil {
			return err
		}
		integ, err := registry.GetSolver(name, params)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		ctrl, err := registry.GetController("none", sys.ControlDim(), params)
		if err != nil {
			return err
		}

		cfg := ode.DefaultConfig()
		cfg.Dt = dt
		cfg.Duration = duration

		sim := ode.New(sys, integ, ctrl)
		start := time.Now()
		result, err := sim.Run(context.Background(), experiment.DefaultInitState(model), cfg)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		status := ""
		if len(result.Errors) > 0 {
			status = " (!)"
		}
		fmt.Fprintf(w, "%s%s\t%.6f\t%.2e\t%d\t%d\t%.2f\n",
			name, status,
			result.Final()[0],
			result.EnergyDrift,
			result.StepsTaken,
			result.FuncEvals,
			float64(elapsed.Microseconds())/1000)
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tDT\tSOLVER\tCTRL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Solver,
			run.Controller,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))
	fmt.Print(viz.PlotStates(states, meta.Model, 80, 10))

	if svgPath != "" {
		series := make([]float64, len(states))
		for i := range states {
			series[i] = states[i][0]
		}
		svg := export.TrajectorySVG(times, series, 800, 400, "#00ccff")
		if err := export.WriteFile(svgPath, svg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if xAxis >= len(states[0]) || yAxis >= len(states[0]) {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	labels := viz.StateLabels(meta.Model, len(states[0]))
	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("model: %s  (%s vs %s)\n\n", meta.Model, labels[xAxis], labels[yAxis])
	fmt.Print(viz.PhasePlot(states, xAxis, yAxis, 70, 22))

	if svgPath != "" {
		svg := export.PhaseSVG(states, xAxis, yAxis, 600, 600, "#00ff88")
		if err := export.WriteFile(svgPath, svg); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 || len(states[0]) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i][0]
	}

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps[:len(ps)/4],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	params, err := buildParams()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	initState := experiment.DefaultInitState(model)

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{0.001, 0.01, 0.1}

	fmt.Printf("benchmarking %s with %s\n\n", model, solver)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tFUNC_EVALS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			sys, err := registry.GetModel(model)
			if err != nil {
				return err
			}
			integ, err := registry.GetSolver(solver, params)
			if err != nil {
				return err
			}
			ctrl, err := registry.GetController("none", sys.ControlDim(), nil)
			if err != nil {
				return err
			}

			cfg := experiment.Config{
				Model:     model,
				InitState: initState,
				Dt:        step,
				Duration:  dur,
				Seed:      42,
			}
			exp := experiment.New(cfg)
			if err := exp.Setup(sys, integ, ctrl, nil); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, result.FuncEvals, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	model := args[0]

	params, err := buildParams()
	if err != nil {
		return err
	}

	base := experiment.Config{
		Model:      model,
		Controller: "none",
		InitState:  experiment.DefaultInitState(model),
		Duration:   sweepDuration,
		Seed:       42,
		Params:     params,
	}

	grid := &sweep.Grid{
		Solvers: sweepSolvers,
		Dts:     sweepDts,
		Metric:  sweepMetric,
	}

	fmt.Printf("sweeping %s over %d solvers x %d step sizes (metric: %s)\n\n",
		model, len(sweepSolvers), len(sweepDts), sweepMetric)

	cells, bestIdx, err := grid.Run(context.Background(), base, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tDT\tSCORE\tSTEPS\tFUNC_EVALS\tTIME")
	for i, cell := range cells {
		mark := ""
		if i == bestIdx {
			mark = " *"
		}
		if cell.Err != nil {
			fmt.Fprintf(w, "%s\t%.4f\tfailed: %v\n", cell.Solver, cell.Dt, cell.Err)
			continue
		}
		fmt.Fprintf(w, "%s%s\t%.4f\t%.3e\t%d\t%d\t%v\n",
			cell.Solver, mark, cell.Dt, cell.Score, cell.Steps, cell.FuncEvals, cell.Elapsed)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if bestIdx >= 0 {
		best := cells[bestIdx]
		fmt.Printf("\nbest: %s at dt=%.4f (%s %.3e)\n", best.Solver, best.Dt, sweepMetric, best.Score)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, fmt.Sprintf("x%d", i))
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'g', -1, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'g', -1, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	result := &ode.Result{
		States:      make([]ode.State, len(states)),
		Times:       times,
		Metrics:     meta.Metrics,
		StepsTaken:  meta.Steps,
		FuncEvals:   meta.FuncEvals,
		EnergyDrift: meta.EnergyDrift,
	}
	for i, s := range states {
		result.States[i] = s
	}

	return storage.ExportJSONStdout(meta.Model, meta.Solver, meta.Controller, meta.Dt, meta.Duration, result)
}

func renderRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to render")
	}

	labels := viz.StateLabels(meta.Model, len(states[0]))
	title := fmt.Sprintf("%s (%s, dt=%.4g)", meta.Model, meta.Solver, meta.Dt)

	if renderX >= 0 && renderY >= 0 {
		if renderX >= len(states[0]) || renderY >= len(states[0]) {
			return fmt.Errorf("state dimension too small for selected axes")
		}
		if err := render.SavePhase(states, renderX, renderY, labels[renderX], labels[renderY], title, outPath); err != nil {
			return err
		}
	} else {
		if err := render.SaveTrajectory(times, states, labels, title, outPath); err != nil {
			return err
		}
	}

	fmt.Printf("wrote %s\n", outPath)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	params, err := buildParams()
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	sys, err := registry.GetModel(model)
	if err != nil {
		return err
	}
	integ, err := registry.GetSolver(solver, params)
	if err != nil {
		return err
	}
	ctrl, err := registry.GetController(controller, sys.ControlDim(), params)
	if err != nil {
		return err
	}

	m := viz.NewModel(sys, integ, ctrl, buildInitState(model), dt, model)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
