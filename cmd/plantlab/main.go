package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/soren-h/plantlab/internal/analysis"
	"github.com/soren-h/plantlab/internal/config"
	"github.com/soren-h/plantlab/internal/experiment"
	"github.com/soren-h/plantlab/internal/export"
	"github.com/soren-h/plantlab/internal/sim"
	"github.com/soren-h/plantlab/internal/storage"
	"github.com/soren-h/plantlab/internal/telemetry"
	"github.com/soren-h/plantlab/internal/tui"
	"github.com/soren-h/plantlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	dt         float64
	duration   float64
	seed       int64
	integrator string
	controller string
	topology   string

	// initial state (model-dependent subset is used)
	pos      float64
	vel      float64
	theta    float64
	thetaDot float64
	x0       float64
	y0f      float64
	psi      float64

	windSpeed float64
	windDir   float64

	kp     float64
	ki     float64
	kd     float64
	target float64

	xAxis     int
	yAxis     int
	frameRate int
	addr      string
	stride    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "plantlab",
		Short: "rigid-body plant simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".plantlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export trajectory plot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	exportSVGCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	watchCmd := &cobra.Command{
		Use:   "watch [model]",
		Short: "run simulation with plain terminal rendering",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	addSimFlags(watchCmd)
	watchCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve [model]",
		Short: "run simulation and stream frames over websocket",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	addSimFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8090", "listen address")
	serveCmd.Flags().IntVar(&stride, "stride", 5, "broadcast every n-th step")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addSimFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportSVGCmd, exportCSVCmd,
		analyzeCmd, phaseCmd, liveCmd, watchCmd, serveCmd, compareCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler|rk4)")
	cmd.Flags().StringVar(&controller, "controller", "none", "controller (none|pid|lqr)")
	cmd.Flags().StringVar(&topology, "topology", "differential", "boat thruster topology (differential|steerable)")
	cmd.Flags().Float64Var(&pos, "pos", 0.0, "initial cart position")
	cmd.Flags().Float64Var(&vel, "vel", 0.0, "initial cart velocity")
	cmd.Flags().Float64Var(&theta, "theta", 0.1, "initial pole angle")
	cmd.Flags().Float64Var(&thetaDot, "theta-dot", 0.0, "initial pole angular velocity")
	cmd.Flags().Float64Var(&x0, "x", 0.0, "initial boat x")
	cmd.Flags().Float64Var(&y0f, "y", 0.0, "initial boat y")
	cmd.Flags().Float64Var(&psi, "psi", 0.0, "initial boat heading")
	cmd.Flags().Float64Var(&windSpeed, "wind-speed", 0.0, "wind speed (boat)")
	cmd.Flags().Float64Var(&windDir, "wind-dir", 0.0, "wind direction in radians (boat)")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	cmd.Flags().Float64Var(&target, "target", 0.0, "pid target")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig resolves the effective configuration for a model: preset
// first, then config file, then any flag the user actually set.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(model, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	cfg.Model = model

	flagOverrides := map[string]func(){
		"dt":         func() { cfg.Dt = dt },
		"time":       func() { cfg.Duration = duration },
		"seed":       func() { cfg.Seed = seed },
		"integrator": func() { cfg.Integrator = integrator },
		"controller": func() { cfg.Controller = controller },
		"topology":   func() { cfg.Topology = topology },
		"pos":        func() { cfg.InitState.Pos = pos },
		"vel":        func() { cfg.InitState.Vel = vel },
		"theta":      func() { cfg.InitState.Theta = theta },
		"theta-dot":  func() { cfg.InitState.ThetaDot = thetaDot },
		"x":          func() { cfg.InitState.X = x0 },
		"y":          func() { cfg.InitState.Y = y0f },
		"psi":        func() { cfg.InitState.Psi = psi },
		"wind-speed": func() { cfg.Wind.Enabled = true; cfg.Wind.Speed = windSpeed },
		"wind-dir":   func() { cfg.Wind.Direction = windDir },
		"kp":         func() { cfg.ControllerParams.Kp = kp },
		"ki":         func() { cfg.ControllerParams.Ki = ki },
		"kd":         func() { cfg.ControllerParams.Kd = kd },
		"target":     func() { cfg.ControllerParams.Target = target },
	}
	for name, apply := range flagOverrides {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	return cfg, nil
}

// buildPlant resolves the dynamics, integrator and controller from a config.
func buildPlant(cfg *config.Config) (sim.Dynamics, sim.Integrator, sim.Controller, error) {
	registry := experiment.NewRegistry()

	dyn, err := registry.GetModel(cfg.Model, cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, nil, nil, err
	}

	ctrl, err := registry.GetController(cfg.Controller, map[string]float64{
		"dim":    float64(dyn.ControlDim()),
		"kp":     cfg.ControllerParams.Kp,
		"ki":     cfg.ControllerParams.Ki,
		"kd":     cfg.ControllerParams.Kd,
		"target": cfg.ControllerParams.Target,
		"index":  2,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	return dyn, integ, ctrl, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, integ, ctrl, err := buildPlant(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(experiment.Config{
		Model:      cfg.Model,
		Integrator: cfg.Integrator,
		Controller: cfg.Controller,
		InitState:  cfg.GetInitState(),
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Seed:       cfg.Seed,
	})

	registry := experiment.NewRegistry()
	if err := exp.Setup(dyn, integ, ctrl, registry.DefaultMetrics(dyn)); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", cfg.Model)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Model:      cfg.Model,
		Topology:   cfg.Topology,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Controller: cfg.Controller,
		WindSpeed:  cfg.Wind.Speed,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tMODEL\tTOPOLOGY\tTIME\tDURATION\tDT\tINTEG\tCTRL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Topology,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Controller,
		)
	}

	return w.Flush()
}

// stateCaption names a state component for the known models.
func stateCaption(model string, idx int) string {
	boatNames := []string{"x position", "y position", "heading psi", "surge vx", "sway vy", "yaw rate omega", "adapt 1", "adapt 2"}
	cartNames := []string{"cart position", "cart velocity", "pole angle", "pole angular velocity"}

	switch model {
	case "boat":
		if idx < len(boatNames) {
			return boatNames[idx]
		}
	case "cartpole":
		if idx < len(cartNames) {
			return cartNames[idx]
		}
	}
	return fmt.Sprintf("x%d vs time", idx)
}

func plotRun(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	numVars := len(states[0])
	if numVars > 8 {
		numVars = 8
	}

	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(stateCaption(meta.Model, varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
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

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	portrait := analysis.ExtractPhasePortrait(states, xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	svg := export.TrajectorySVG(portrait, 800, 600, "#00ff00")
	if svg == "" {
		return fmt.Errorf("not enough data to render")
	}
	fmt.Println(svg)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
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
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
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

	ps := analysis.PowerSpectrum(analysis.PadPow2(data))
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x0)"),
	)
	fmt.Println(graph)
	fmt.Println()

	maxPower := 0.0
	maxIdx := 0
	for i := 1; i < len(plotData); i++ {
		if plotData[i] > maxPower {
			maxPower = plotData[i]
			maxIdx = i
		}
	}

	freq := float64(maxIdx) / meta.Duration
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
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

	portrait := analysis.ExtractPhasePortrait(states, xAxis, yAxis)
	if portrait == nil {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase space plot: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n",
		stateCaption(meta.Model, xAxis), stateCaption(meta.Model, yAxis))
	fmt.Println(portrait.RenderASCII(70, 20))

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, integ, ctrl, err := buildPlant(cfg)
	if err != nil {
		return err
	}

	m := viz.NewModel(dyn, integ, ctrl, cfg.WindField(), cfg.GetInitState(), cfg.Dt, cfg.Model)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, integ, ctrl, err := buildPlant(cfg)
	if err != nil {
		return err
	}

	renderer := tui.NewLiveRenderer(cfg.Model, frameRate)
	renderer.Start()
	defer renderer.Stop()

	s := sim.New(dyn, integ, ctrl)
	s.AddObserver(renderer)

	// Pace the loop to wall-clock time so the animation is watchable.
	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, Seed: cfg.Seed}
	return s.RunWithCallback(context.Background(), sim.State(cfg.GetInitState()), simCfg,
		func(x sim.State, u sim.Control, t float64) bool {
			time.Sleep(time.Duration(cfg.Dt * float64(time.Second)))
			return true
		})
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	dyn, integ, ctrl, err := buildPlant(cfg)
	if err != nil {
		return err
	}

	hub := telemetry.NewHub(cfg.Model, stride)
	defer hub.Close()

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		}
	}()
	defer srv.Close()

	display := addr
	if strings.HasPrefix(display, ":") {
		display = "localhost" + display
	}
	fmt.Printf("streaming %s on ws://%s/ws\n", cfg.Model, display)

	s := sim.New(dyn, integ, ctrl)
	s.AddObserver(hub)

	simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, Seed: cfg.Seed}
	return s.RunWithCallback(context.Background(), sim.State(cfg.GetInitState()), simCfg,
		func(x sim.State, u sim.Control, t float64) bool {
			time.Sleep(time.Duration(cfg.Dt * float64(time.Second)))
			return true
		})
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	names := args[1:]

	registry := experiment.NewRegistry()

	fmt.Printf("comparing integrators for %s (dt=%.4f, duration=%.1fs)\n\n", cfg.Model, cfg.Dt, cfg.Duration)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s\n", "integrator", "final_x0", "energy_drift", "time_ms")
	fmt.Println(strings.Repeat("-", 54))

	for _, intName := range names {
		integ, err := registry.GetIntegrator(intName)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		// Fresh dynamics per integrator: stateful models must not share.
		dyn, err := registry.GetModel(cfg.Model, cfg)
		if err != nil {
			return err
		}
		ctrl, err := registry.GetController("none", map[string]float64{"dim": float64(dyn.ControlDim())})
		if err != nil {
			return err
		}

		s := sim.New(dyn, integ, ctrl)
		simCfg := sim.Config{Dt: cfg.Dt, Duration: cfg.Duration}

		start := time.Now()
		result, err := s.Run(context.Background(), sim.State(cfg.GetInitState()), simCfg)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", intName, err)
			continue
		}

		finalX0 := 0.0
		if len(result.States) > 0 && len(result.States[len(result.States)-1]) > 0 {
			finalX0 = result.States[len(result.States)-1][0]
		}

		fmt.Printf("%-12s  %12.6f  %12.2e  %12.2f\n",
			intName, finalX0, result.EnergyDrift, float64(elapsed.Microseconds())/1000)
	}

	return nil
}
