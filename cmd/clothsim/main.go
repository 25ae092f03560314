package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/config"
	"github.com/zackradisic/toilet-paper-twitter/internal/export"
	"github.com/zackradisic/toilet-paper-twitter/internal/metrics"
	"github.com/zackradisic/toilet-paper-twitter/internal/sim"
	"github.com/zackradisic/toilet-paper-twitter/internal/storage"
	"github.com/zackradisic/toilet-paper-twitter/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	clothWidth  float64
	clothHeight float64
	cols        int
	rows        int
	fixedStep   float64
	damping     float64
	iterations  int

	duration  float64
	frameTime float64

	svgOut   string
	svgMode  string
	svgScale float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clothsim",
		Short: "verlet cloth simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".clothsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation",
		RunE:  runSimulation,
	}
	addClothFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration in seconds")
	runCmd.Flags().Float64Var(&frameTime, "frame-time", 1.0/60.0, "wall-clock frame delta")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE:  runLive,
	}
	addClothFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's metric series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "render a settled cloth snapshot to SVG",
		RunE:  exportSVG,
	}
	addClothFlags(exportSVGCmd)
	exportSVGCmd.Flags().Float64Var(&duration, "time", 3.0, "settle time before the snapshot")
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "cloth.svg", "output path")
	exportSVGCmd.Flags().StringVar(&svgMode, "mode", "canvas", "render mode: canvas or mesh")
	exportSVGCmd.Flags().Float64Var(&svgScale, "scale", 4.0, "canvas dot scale")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark tick throughput across grid sizes",
		RunE:  benchGrids,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, presetsCmd, exportSVGCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addClothFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&clothWidth, "width", config.DefaultWidth, "cloth width in world units")
	cmd.Flags().Float64Var(&clothHeight, "height", config.DefaultHeight, "cloth height in world units")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	cmd.Flags().Float64Var(&fixedStep, "step", cloth.DefaultFixedStep, "fixed physics timestep")
	cmd.Flags().Float64Var(&damping, "damping", cloth.DefaultDamping, "verlet damping")
	cmd.Flags().IntVar(&iterations, "iterations", cloth.DefaultIterations, "constraint relaxation passes")
}

// buildConfig resolves the effective configuration. Preset first, then
// config file, then explicit flags on top.
func buildConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		// Copy so flag overrides never touch the shared preset.
		clone := *p
		cfg = &clone
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = configFile
	}

	if cmd.Flags().Changed("width") {
		cfg.Geometry.Width = clothWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Geometry.Height = clothHeight
	}
	if cmd.Flags().Changed("cols") {
		cfg.Geometry.Cols = cols
	}
	if cmd.Flags().Changed("rows") {
		cfg.Geometry.Rows = rows
	}
	if cmd.Flags().Changed("step") {
		cfg.Sim.FixedStep = fixedStep
	}
	if cmd.Flags().Changed("damping") {
		cfg.Sim.Damping = damping
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Sim.Iterations = iterations
	}

	return cfg, name, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	c, err := cfg.NewCloth()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := sim.New(cloth.NewPhysics(c))
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s (%dx%d, %d constraints)...\n",
		name, c.Cols(), c.Rows(), c.NumConstraints())
	start := time.Now()

	result, err := runner.Run(context.Background(), sim.Config{
		Duration:      duration,
		FrameTime:     frameTime,
		ValidateState: true,
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(name, c.Cols(), c.Rows(), cfg.Sim.FixedStep, duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  ticks: %d\n", result.Frames, result.Ticks)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if series, ok := result.Series["constraint_residual"]; ok && len(series) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(series,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("constraint residual"),
		))
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, name, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	model, err := viz.NewModel(cfg, name)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tDURATION\tTICKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.2fs\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Cols,
			run.Rows,
			run.Duration,
			run.Ticks,
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

	series, times, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d\n", meta.Cols, meta.Rows)
	fmt.Printf("samples: %d\n\n", len(times))

	for name, data := range series {
		if len(data) < 2 {
			continue
		}
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name),
		))
		fmt.Println()
	}

	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, _, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	c, err := cfg.NewCloth()
	if err != nil {
		return err
	}

	// Let the cloth settle before taking the snapshot.
	runner := sim.New(cloth.NewPhysics(c))
	if _, err := runner.Run(context.Background(), sim.Config{
		Duration:      duration,
		FrameTime:     1.0 / 60.0,
		ValidateState: true,
	}); err != nil {
		return err
	}

	var svg string
	switch svgMode {
	case "canvas":
		canvas := viz.NewCanvas(80, 30)
		viz.RenderCloth(c, canvas, viz.NewCamera())
		svg = export.CanvasToSVG(canvas, svgScale)
	case "mesh":
		svg = export.MeshToSVG(c, 800, 800)
	default:
		return fmt.Errorf("unknown mode: %s (want canvas or mesh)", svgMode)
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func benchGrids(cmd *cobra.Command, args []string) error {
	grids := []struct{ cols, rows int }{
		{11, 13},
		{22, 26},
		{44, 52},
	}
	durations := []float64{1.0, 5.0}

	fmt.Println("benchmarking tick throughput")
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tDURATION\tTICKS\tTIME\tTICKS/SEC")

	for _, g := range grids {
		for _, dur := range durations {
			c, err := cloth.New(config.DefaultWidth, config.DefaultHeight, g.cols, g.rows, cloth.DefaultParams())
			if err != nil {
				return err
			}

			runner := sim.New(cloth.NewPhysics(c))
			start := time.Now()
			result, err := runner.Run(context.Background(), sim.Config{
				Duration:      dur,
				FrameTime:     1.0 / 60.0,
				ValidateState: false,
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%dx%d\t%.1fs\t%d\t%v\t%.0f\n",
				g.cols, g.rows, dur, result.Ticks, elapsed,
				float64(result.Ticks)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
