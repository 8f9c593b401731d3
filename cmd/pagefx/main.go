package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pagefx/internal/config"
	"github.com/san-kum/pagefx/internal/export"
	"github.com/san-kum/pagefx/internal/metrics"
	"github.com/san-kum/pagefx/internal/particle"
	"github.com/san-kum/pagefx/internal/scenario"
	"github.com/san-kum/pagefx/internal/sim"
	"github.com/san-kum/pagefx/internal/storage"
	"github.com/san-kum/pagefx/internal/viz"
)

var (
	dataDir    string
	configFile string
	verbose    bool

	preset    string
	width     int
	height    int
	seed      int64
	fps       int
	frames    int
	themeName string
	scale     float64

	format     string
	outPath    string
	renderSave bool
	gifEvery   int
	scriptSave bool
	runs       int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "pagefx",
		Short:        "page effects and CMS preview tooling",
		SilenceUsage: true,
		RunE:         runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pagefx", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests and frames to stderr")
	addFieldFlags(rootCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the particle network in the terminal",
		RunE:  runLive,
	}
	addFieldFlags(liveCmd)
	liveCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headlessly to svg or gif",
		Long: "Render runs the network without a terminal. SVG keeps the last frame.\n" +
			"GIF keeps every --every-th frame in memory until the end, width*height\n" +
			"bytes each (the defaults hold 600 frames of 800x600, about 288 MB).",
		RunE:  runRender,
	}
	addFieldFlags(renderCmd)
	renderCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames to render")
	renderCmd.Flags().StringVar(&format, "format", "svg", "output format (svg, gif)")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default network.<format>)")
	renderCmd.Flags().IntVar(&gifEvery, "every", 1, "keep every n-th frame in a gif")
	renderCmd.Flags().BoolVar(&renderSave, "save", true, "record the run in the data directory")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run an ensemble of seeds and compare metrics",
		RunE:  runBench,
	}
	addFieldFlags(benchCmd)
	benchCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per run")
	benchCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().BoolVar(&scriptSave, "save", false, "record the run in the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list animation presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tMOTION\tSPAWN\tDENSITY\tVELOCITY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.2f\n", name, p.Motion, p.Spawn, p.Density, p.VelocityScale)
			}
			w.Flush()
		},
	}

	rootCmd.AddCommand(liveCmd, renderCmd, benchCmd, scriptCmd, listCmd, plotCmd, presetsCmd, fadeCommand())
	rootCmd.AddCommand(serverCommands()...)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addFieldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "animation preset")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "surface width in px")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "surface height in px")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	cmd.Flags().StringVar(&themeName, "theme", config.DefaultTheme, "color theme")
	cmd.Flags().Float64Var(&scale, "scale", 4, "page pixels per braille dot (live)")
}

func newLogger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "pagefx: ", log.LstdFlags)
}

// loadConfig layers defaults, the config file, the environment, the preset
// and finally any flag the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if flags.Lookup("width") != nil && flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Lookup("height") != nil && flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Lookup("frames") != nil && flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Lookup("theme") != nil && flags.Changed("theme") {
		cfg.Theme = themeName
	}
	if flags.Lookup("base-url") != nil && flags.Changed("base-url") {
		cfg.Server.BaseURL = baseURL
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func attachField(cfg *config.Config, s particle.Surface) (*particle.Field, error) {
	opts, err := cfg.Network.Options()
	if err != nil {
		return nil, err
	}
	f, err := particle.Attach(s, opts, rand.New(rand.NewSource(cfg.Seed)))
	if errors.Is(err, particle.ErrNoContainer) {
		newLogger().Printf("no surface, animation disabled")
	}
	return f, err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	surface := viz.NewTermSurface(1, 1, scale)
	surface.Resize(cfg.Width, cfg.Height)
	f, err := attachField(cfg, surface)
	if err != nil {
		return err
	}

	l := viz.NewLive(f, surface, cfg.Profile, viz.GetTheme(cfg.Theme), cfg.FPS)
	return viz.RunLive(l)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if outPath == "" {
		outPath = "network." + format
	}

	var (
		surface particle.Surface
		svg     *export.SVGSurface
		rec     *export.GIFRecorder
	)
	switch format {
	case "svg":
		svg = export.NewSVGSurface(cfg.Width, cfg.Height)
		surface = svg
	case "gif":
		inks := append([]string{cfg.Network.LineColor}, cfg.Network.ParticleColors...)
		rec, err = export.NewGIFRecorder(cfg.Width, cfg.Height, "#ffffff", inks)
		if err != nil {
			return err
		}
		surface = rec
	default:
		return fmt.Errorf("unknown format: %s (available: svg, gif)", format)
	}

	f, err := attachField(cfg, surface)
	if err != nil {
		return err
	}

	loop := sim.New(f)
	for _, m := range metrics.Defaults() {
		loop.AddMetric(m)
	}
	trace := metrics.NewTrace(0)
	loop.AddObserver(trace)
	if rec != nil {
		rec.SetStride(gifEvery)
		loop.AddObserver(rec)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("rendering %s (%dx%d, seed %d)...\n", cfg.Profile, cfg.Width, cfg.Height, cfg.Seed)
	start := time.Now()
	result, err := loop.Run(ctx, sim.Config{Frames: cfg.Frames})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()
	if svg != nil {
		_, err = io.WriteString(out, svg.String())
	} else {
		err = rec.Encode(out)
	}
	if err != nil {
		return err
	}

	fmt.Printf("completed %d frames in %v\n", result.Frames, elapsed)
	if result.Frozen {
		fmt.Println("network froze (velocity 0)")
	}
	fmt.Printf("wrote %s\n", outPath)

	if renderSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.RunMetadata{
			Profile: cfg.Profile,
			Seed:    cfg.Seed,
			Width:   cfg.Width,
			Height:  cfg.Height,
			Frames:  result.Frames,
			Frozen:  result.Frozen,
			Metrics: result.Metrics,
		}, trace.Samples())
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	printMetrics(result.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, name := range []string{"particles", "links", "link_alpha", "opacity"} {
		if v, ok := m[name]; ok {
			fmt.Printf("  %s: %.6f\n", name, v)
		}
	}
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive")
	}

	newField := func(s int64) (*particle.Field, error) {
		c := *cfg
		c.Seed = s
		return attachField(&c, &particle.Blank{W: cfg.Width, H: cfg.Height})
	}
	newMetrics := func() []sim.Metric {
		ms := metrics.Defaults()
		out := make([]sim.Metric, len(ms))
		for i, m := range ms {
			out[i] = m
		}
		return out
	}

	fmt.Printf("benchmarking %s: %d runs x %d frames\n\n", cfg.Profile, runs, cfg.Frames)
	start := time.Now()
	results, err := sim.NewEnsemble(newField, newMetrics, runs, cfg.Seed).Run(context.Background(), sim.Config{Frames: cfg.Frames})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%-20s  %10s  %10s  %10s\n", "seed", "particles", "links", "link_alpha")
	fmt.Println(strings.Repeat("-", 56))
	for i, r := range results {
		fmt.Printf("%-20d  %10.0f  %10.2f  %10.4f\n", cfg.Seed+int64(i), r.Metrics["particles"], r.Metrics["links"], r.Metrics["link_alpha"])
	}
	total := runs * cfg.Frames
	fmt.Printf("\n%d frames in %v (%.0f frames/s)\n", total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := scenario.LoadScenario(args[0])
	if err != nil {
		return err
	}
	f, err := sc.Field(nil)
	if err != nil {
		return err
	}

	trace := metrics.NewTrace(0)
	fmt.Printf("running scenario %s (%d steps)\n\n", sc.Name, len(sc.Steps))
	results, err := scenario.Run(context.Background(), sc, f, trace)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tFRAMES\tPARTICLES\tLINKS\tPOINTER\tFROZEN")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%t\t%t\n", r.Index, r.Frames, r.Particles, r.Links, r.Pointer, r.Frozen)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if scriptSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		fw, fh := f.Size()
		runID, err := st.Save(storage.RunMetadata{
			Profile: sc.Profile,
			Seed:    sc.Seed,
			Width:   fw,
			Height:  fh,
			Frames:  len(trace.Samples()),
		}, trace.Samples())
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
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
	fmt.Fprintln(w, "ID\tPROFILE\tTIME\tSIZE\tFRAMES\tSEED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\n",
			run.ID,
			run.Profile,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Frames,
			run.Seed,
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

	samples, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("profile: %s\n", meta.Profile)
	fmt.Printf("frames: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(metrics.Sample) float64
	}{
		{"particles", func(s metrics.Sample) float64 { return float64(s.Particles) }},
		{"links", func(s metrics.Sample) float64 { return float64(s.Links) }},
		{"mean link alpha", func(s metrics.Sample) float64 { return s.MeanAlpha }},
		{"mean opacity", func(s metrics.Sample) float64 { return s.MeanOpacity }},
	}
	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}
