package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/isinglab/internal/analysis"
	"github.com/san-kum/isinglab/internal/config"
	"github.com/san-kum/isinglab/internal/lattice"
	"github.com/san-kum/isinglab/internal/metrics"
	"github.com/san-kum/isinglab/internal/sim"
	"github.com/san-kum/isinglab/internal/storage"
	"github.com/san-kum/isinglab/internal/viz"
)

var (
	dataDir     string
	dims        int
	sweeps      int
	seed        int64
	tMin        float64
	tMax        float64
	tStep       float64
	temperature float64
	frameRate   int
	configFile  string
	preset      string
	svgOut      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "isinglab",
		Short: "2D Ising ferromagnet under Glauber dynamics",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isinglab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the batch temperature sweep",
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&dims, "dims", config.DefaultDimensions, "lattice edge length N")
	runCmd.Flags().IntVar(&sweeps, "sweeps", config.DefaultSweeps, "sweeps per temperature")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().Float64Var(&tMin, "tmin", config.DefaultTMin, "schedule start temperature")
	runCmd.Flags().Float64Var(&tMax, "tmax", config.DefaultTMax, "schedule stop temperature (exclusive)")
	runCmd.Flags().Float64Var(&tStep, "tstep", config.DefaultTStep, "schedule temperature step")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the lattice evolve at a fixed temperature",
		RunE:  runLive,
	}
	liveCmd.Flags().IntVar(&dims, "dims", 40, "lattice edge length N")
	liveCmd.Flags().Float64Var(&temperature, "temp", config.DefaultTemperature, "temperature")
	liveCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot observables against temperature",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "fluctuation analysis and critical-point estimate",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write run samples to stdout as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write run data to stdout as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render the magnetization curve as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "magnetization.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMODE\tDIMS\tSWEEPS\tSCHEDULE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				schedule := fmt.Sprintf("[%.2f,%.2f) step %.2f", p.Schedule.TMin, p.Schedule.TMax, p.Schedule.TStep)
				if p.Mode == "visual" {
					schedule = fmt.Sprintf("T=%.2f", p.Temperature)
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", name, p.Mode, p.Dimensions, p.Sweeps, schedule)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// progressPrinter reports run progress the way the batch mode always has:
// the current temperature at each block start, the sweep counter every ten
// sweeps.
type progressPrinter struct{}

func (progressPrinter) OnTemperature(temp float64) {
	fmt.Printf("current temperature: %.1f\n", temp)
}

func (progressPrinter) OnSweep(_ float64, sweep, total int) {
	fmt.Printf("  sweep %d of %d\n", sweep, total)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override preset and config file values.
	if cmd.Flags().Changed("dims") {
		cfg.Dimensions = dims
	}
	if cmd.Flags().Changed("sweeps") {
		cfg.Sweeps = sweeps
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("tmin") {
		cfg.Schedule.TMin = tMin
	}
	if cmd.Flags().Changed("tmax") {
		cfg.Schedule.TMax = tMax
	}
	if cmd.Flags().Changed("tstep") {
		cfg.Schedule.TStep = tStep
	}

	mode, err := sim.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}
	if mode == sim.ModeVisual {
		return startLive(cfg.Dimensions, cfg.Seed, cfg.Temperature, 30)
	}

	schedule, err := cfg.BuildSchedule()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runCfg := sim.Config{
		Dimensions: cfg.Dimensions,
		Sweeps:     cfg.Sweeps,
		Seed:       cfg.Seed,
		Schedule:   schedule,
	}

	runner, err := sim.NewRunner(runCfg)
	if err != nil {
		return err
	}
	runner.AddMetric(metrics.NewEnergyPerSite(cfg.Dimensions))
	runner.AddMetric(metrics.NewAbsMagnetizationPerSite(cfg.Dimensions))
	runner.AddObserver(progressPrinter{})

	fmt.Printf("running glauber sweep: %dx%d lattice, %d sweeps, %d temperatures\n",
		cfg.Dimensions, cfg.Dimensions, cfg.Sweeps, len(schedule))
	start := time.Now()

	result, err := runner.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	runID, err := st.Save(runner.Config(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.Samples))
	if result.Attempts > 0 {
		fmt.Printf("acceptance: %.1f%%\n", 100*float64(result.Accepted)/float64(result.Attempts))
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	return startLive(dims, seed, temperature, frameRate)
}

func startLive(n int, seed int64, temp float64, fps int) error {
	lat, err := lattice.New(n)
	if err != nil {
		return err
	}

	m := viz.NewModel(lat, seed, temp, fps)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
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
	fmt.Fprintln(w, "ID\tTIME\tDIMS\tSWEEPS\tTEMPS\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dimensions,
			run.Dimensions,
			run.Sweeps,
			len(run.Schedule),
			run.Samples,
		)
	}

	return w.Flush()
}

// perTemperature averages sampled values for each schedule temperature in
// order, returning parallel temp/value slices.
func perTemperature(samples []sim.Sample, value func(sim.Sample) float64) ([]float64, []float64) {
	var temps []float64
	var values []float64
	var count int

	flush := func(sum float64) {
		if count > 0 {
			values = append(values, sum/float64(count))
		}
	}

	sum := 0.0
	for _, s := range samples {
		if len(temps) == 0 || temps[len(temps)-1] != s.Temperature {
			flush(sum)
			temps = append(temps, s.Temperature)
			sum, count = 0, 0
		}
		sum += value(s)
		count++
	}
	flush(sum)

	return temps, values
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	sites := float64(meta.Dimensions * meta.Dimensions)
	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("lattice: %dx%d, %d sweeps per temperature\n\n", meta.Dimensions, meta.Dimensions, meta.Sweeps)

	temps, energy := perTemperature(samples, func(s sim.Sample) float64 { return s.Energy / sites })
	_, mag := perTemperature(samples, func(s sim.Sample) float64 {
		m := s.Magnetization / sites
		if m < 0 {
			m = -m
		}
		return m
	})

	caption := fmt.Sprintf("energy per site, T = %.2f .. %.2f", temps[0], temps[len(temps)-1])
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	))
	fmt.Println()

	fmt.Println(asciigraph.Plot(mag,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("|m| per site over the same range"),
	))

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	sites := meta.Dimensions * meta.Dimensions

	fmt.Printf("fluctuation analysis: %s\n\n", meta.ID)

	series := make([]float64, len(samples))
	for i, s := range samples {
		series[i] = s.Magnetization / float64(sites)
	}

	if ps := analysis.PowerSpectrum(series); len(ps) > 1 {
		fmt.Println(asciigraph.Plot(ps,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum of m (sample order)"),
		))
		fmt.Println()
	}

	fmt.Printf("integrated autocorrelation time: %.2f samples\n\n", analysis.IntegratedTime(series))

	points := analysis.Susceptibility(samples, sites)
	if len(points) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TEMP\tSUSCEPTIBILITY")
		for _, p := range points {
			fmt.Fprintf(w, "%.2f\t%.4f\n", p.Temperature, p.Susceptibility)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	if tc, ok := analysis.Curie(samples, sites); ok {
		fmt.Printf("\nsusceptibility peak (Curie estimate): T = %.2f\n", tc)
	} else {
		fmt.Println("\nnot enough samples per temperature for a Curie estimate")
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	title := fmt.Sprintf("Glauber Simulation of %d Cells and %d TimeSteps",
		meta.Dimensions*meta.Dimensions, meta.Sweeps)
	if err := w.Write([]string{title}); err != nil {
		return err
	}
	if err := w.Write([]string{"temp", "avgEnergy", "avgMag"}); err != nil {
		return err
	}

	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Temperature, 'g', -1, 64),
			strconv.FormatFloat(s.Energy, 'g', -1, 64),
			strconv.FormatFloat(s.Magnetization, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(meta, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}

	svg := storage.MagnetizationSVG(samples, meta.Dimensions*meta.Dimensions, 640, 360, "#00ff88")
	if svg == "" {
		return fmt.Errorf("not enough distinct temperatures to draw a curve")
	}

	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}
