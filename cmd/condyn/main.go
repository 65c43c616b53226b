package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/mweb/condyn/internal/config"
	"github.com/mweb/condyn/internal/metrics"
	"github.com/mweb/condyn/internal/model"
	"github.com/mweb/condyn/internal/models"
	"github.com/mweb/condyn/internal/solver"
	"github.com/mweb/condyn/internal/storage"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	dt       float64
	t1       float64
	rhoInf   float64
	atol     float64
	maxIter  int
	daeIndex int
	ggl      bool

	plotCol string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "condyn",
		Short: "constrained multibody dynamics with a generalized-alpha DAE integrator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			})))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".condyn", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&t1, "time", config.DefaultT1, "final time")
	runCmd.Flags().Float64Var(&rhoInf, "rho-inf", config.DefaultRhoInf, "spectral radius at infinity (numerical damping, 1 = none)")
	runCmd.Flags().Float64Var(&atol, "atol", config.DefaultAtol, "newton tolerance")
	runCmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "newton iteration budget per step")
	runCmd.Flags().IntVar(&daeIndex, "dae-index", 2, "DAE index of the bilateral constraints (1, 2 or 3)")
	runCmd.Flags().BoolVar(&ggl, "ggl", true, "GGL constraint stabilization")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "preset configuration ("+strings.Join(config.PresetNames(), ", ")+")")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a trajectory column in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotCol, "col", "q0", "trajectory column to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print a full run (metadata, trajectory, metrics) as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func buildConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case preset != "":
		cfg, err = config.Preset(preset)
	case configFile != "":
		cfg, err = config.Load(configFile)
	default:
		cfg = config.DefaultConfig()
		cfg.Dt = dt
		cfg.T1 = t1
		cfg.RhoInf = rhoInf
		cfg.Atol = atol
		cfg.MaxIter = maxIter
		cfg.DAEIndex = daeIndex
		cfg.GGL = ggl
	}
	if err != nil {
		return nil, err
	}
	if len(args) == 1 {
		cfg.Model = args[0]
	}
	return cfg, nil
}

func buildModel(cfg *config.Config) (model.Model, error) {
	if cfg.Params.Links > 0 && cfg.Model == "chain" {
		c := models.NewChain(cfg.Params.Links)
		applyCommon(cfg, &c.Mass, &c.Length, &c.Gravity)
		return c, nil
	}

	m, err := models.New(cfg.Model)
	if err != nil {
		return nil, err
	}
	switch m := m.(type) {
	case *models.Ball:
		applyCommon(cfg, &m.Mass, nil, &m.Gravity)
		if cfg.Params.Y != 0 {
			m.Y0 = cfg.Params.Y
		}
		if cfg.Params.ProxR != 0 {
			m.ProxR = cfg.Params.ProxR
		}
		if cfg.Params.Restitution != 0 {
			m.Restitution = cfg.Params.Restitution
		}
	case *models.Pendulum:
		applyCommon(cfg, &m.Mass, &m.Length, &m.Gravity)
		if cfg.Params.Theta != 0 {
			m.Theta0 = cfg.Params.Theta
		}
		if cfg.Params.Omega != 0 {
			m.Omega0 = cfg.Params.Omega
		}
	case *models.Rotor:
		if cfg.Params.Torque != 0 {
			m.Torque = cfg.Params.Torque
		}
		if cfg.Params.Omega != 0 {
			m.Omega0 = cfg.Params.Omega
		}
	}
	return m, nil
}

func applyCommon(cfg *config.Config, mass, length, gravity *float64) {
	if mass != nil && cfg.Params.Mass != 0 {
		*mass = cfg.Params.Mass
	}
	if length != nil && cfg.Params.Length != 0 {
		*length = cfg.Params.Length
	}
	if gravity != nil && cfg.Params.Gravity != 0 {
		*gravity = cfg.Params.Gravity
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(args)
	if err != nil {
		return err
	}

	m, err := buildModel(cfg)
	if err != nil {
		return err
	}

	opts, err := cfg.SolverOptions()
	if err != nil {
		return err
	}

	eng, err := solver.New(m, cfg.T1, cfg.Dt, opts)
	if err != nil {
		return err
	}

	runMetrics := []metrics.Metric{metrics.NewConstraintViolation(m)}
	if rep, ok := m.(model.EnergyReporter); ok {
		runMetrics = append(runMetrics, metrics.NewEnergyDrift(rep))
	}
	if m.Dims().NlaN > 0 {
		runMetrics = append(runMetrics, metrics.NewPenetration(m))
	}
	for _, mt := range runMetrics {
		eng.AddObserver(mt)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	sol, err := eng.Solve(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	values := make(map[string]float64, len(runMetrics))
	for _, mt := range runMetrics {
		values[mt.Name()] = mt.Value()
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(storage.RunMetadata{
		Model:    cfg.Model,
		Dt:       cfg.Dt,
		T1:       cfg.T1,
		RhoInf:   cfg.RhoInf,
		DAEIndex: cfg.DAEIndex,
		GGL:      cfg.GGL,
		Metrics:  values,
	}, sol)
	if err != nil {
		return err
	}

	slog.Info("run complete",
		"run", runID,
		"model", cfg.Model,
		"steps", sol.Len()-1,
		"elapsed", elapsed.Round(time.Millisecond))
	for name, v := range values {
		slog.Info("metric", "name", name, "value", v)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	ids, err := store.List()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tMODEL\tDT\tT1\tSTEPS\tWHEN")
	for _, id := range ids {
		meta, err := store.Load(id)
		if err != nil {
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%d\t%s\n",
			meta.ID, meta.Model, meta.Dt, meta.T1, meta.Steps,
			meta.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	header, rows, err := store.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	col := -1
	for i, name := range header {
		if name == plotCol {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("column %q not in trajectory (have %v)", plotCol, header)
	}

	data := make([]float64, len(rows))
	for i, row := range rows {
		data[i] = row[col]
	}

	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(20),
		asciigraph.Width(100),
		asciigraph.Caption(fmt.Sprintf("%s: %s", args[0], plotCol))))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	meta, err := store.Load(args[0])
	if err != nil {
		return err
	}
	sol, err := store.LoadSolution(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, sol, meta.Metrics)
}
