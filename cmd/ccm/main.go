package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/san-kum/ccm/internal/config"
	"github.com/san-kum/ccm/internal/edm"
	"github.com/san-kum/ccm/internal/export"
	"github.com/san-kum/ccm/internal/systems"
)

var (
	verbose    bool
	configFile string
	preset     string

	system    string
	input     string
	steps     int
	transient int
	seed      uint64
	params    map[string]string

	source   string
	target   string
	embedDim int
	tp       int
	lib      int
	maxE     int
	maxTp    int
	workers  int
	lengths  []int
	samples  int
	rows     int
	theme    string
	showPlot bool

	outFile  string
	jsonFile string
	csvFile  string
	plotFile string
)

var logger = slog.New(slog.DiscardHandler)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ccm",
		Short:         "convergent cross mapping and simplex forecasting",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	simulateCmd := &cobra.Command{
		Use:   "simulate [system]",
		Short: "generate series from a built-in system",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulate,
	}
	sessionFlags(simulateCmd)
	simulateCmd.Flags().StringVarP(&outFile, "out", "o", "", "write CSV to file instead of stdout")

	embedCmd := &cobra.Command{
		Use:   "embed",
		Short: "print the first rows of a shadow manifold",
		RunE:  runEmbed,
	}
	sessionFlags(embedCmd)
	embedCmd.Flags().IntVar(&rows, "rows", 10, "rows to print")
	embedCmd.Flags().BoolVar(&showPlot, "plot", false, "draw a projection of the manifold")

	scanCmd := &cobra.Command{
		Use:   "scan",
		Short: "cross map both directions over library lengths",
		RunE:  runScan,
	}
	sessionFlags(scanCmd)
	exportFlags(scanCmd)

	simplexCmd := &cobra.Command{
		Use:   "simplex",
		Short: "simplex forecast skill, embedding dimension and prediction decay",
		RunE:  runSimplex,
	}
	sessionFlags(simplexCmd)
	simplexCmd.Flags().IntVar(&lib, "lib", 0, "library rows (default half the manifold)")
	simplexCmd.Flags().IntVar(&maxE, "max-e", config.DefaultMaxE, "largest embedding dimension tried")
	simplexCmd.Flags().IntVar(&maxTp, "max-tp", config.DefaultMaxTp, "largest forecast horizon tried")
	simplexCmd.Flags().StringVar(&jsonFile, "json", "", "write report JSON")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "cross map with a live view",
		RunE:  runWatch,
	}
	sessionFlags(watchCmd)
	watchCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "initial color theme")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list analysis presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-18s %s %s->%s E=%d steps=%d\n", name, p.System, p.Source, p.Target, p.E, p.Steps)
			}
			return nil
		},
	}

	systemsCmd := &cobra.Command{
		Use:   "systems",
		Short: "list built-in systems",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := systems.NewRegistry()
			for _, name := range reg.List() {
				vars, _ := reg.Vars(name)
				fmt.Printf("  %-10s %-40s %v\n", name, reg.Describe(name), vars)
			}
			return nil
		},
	}

	rootCmd.AddCommand(simulateCmd, embedCmd, scanCmd, simplexCmd, watchCmd, presetsCmd, systemsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func sessionFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&system, "system", config.DefaultSystem, "built-in system")
	f.StringVar(&input, "csv", "", "read series from CSV instead of a system")
	f.IntVar(&steps, "steps", config.DefaultSteps, "series length")
	f.IntVar(&transient, "transient", 0, "steps discarded before recording")
	f.Uint64Var(&seed, "seed", 0, "random seed")
	f.StringToStringVar(&params, "param", nil, "system parameter name=value")
	f.StringVar(&source, "source", "x", "series whose manifold is searched")
	f.StringVar(&target, "target", "y", "series estimated from the manifold")
	f.IntVarP(&embedDim, "dim", "E", config.DefaultE, "embedding dimension")
	f.IntVar(&tp, "tp", config.DefaultTp, "forecast horizon")
	f.IntVar(&workers, "workers", 0, "concurrent library lengths (0 = GOMAXPROCS)")
	f.IntSliceVar(&lengths, "lengths", nil, "explicit library lengths")
	f.IntVar(&samples, "samples", 0, "random libraries per length (0 = prefix libraries)")
}

func exportFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&jsonFile, "json", "", "write report JSON")
	f.StringVar(&csvFile, "out-csv", "", "write curves CSV")
	f.StringVar(&plotFile, "png", "", "write curve plot (png, svg or pdf by extension)")
}

// loadConfig layers defaults, a preset, a config file and explicit flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	f := cmd.Flags()
	if f.Changed("system") {
		cfg.System = system
	}
	if f.Changed("csv") {
		cfg.Input = input
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("transient") {
		cfg.Transient = transient
	}
	if f.Changed("seed") {
		cfg.Seed = seed
		if cfg.Random != nil {
			cfg.Random.Seed = seed
		}
	}
	if f.Changed("param") {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		for k, v := range params {
			x, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("param %s: %w", k, err)
			}
			cfg.Params[k] = x
		}
	}
	if f.Changed("source") {
		cfg.Source = source
	}
	if f.Changed("target") {
		cfg.Target = target
	}
	if f.Changed("dim") {
		cfg.E = embedDim
	}
	if f.Changed("tp") {
		cfg.Tp = tp
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("lengths") {
		cfg.Lengths = lengths
	}
	if f.Changed("samples") {
		if samples > 0 {
			cfg.Random = &edm.RandomLibs{Samples: samples, Seed: cfg.Seed}
		} else {
			cfg.Random = nil
		}
	}
	if f.Changed("lib") {
		cfg.Lib = lib
	}
	if f.Changed("max-e") {
		cfg.MaxE = maxE
	}
	if f.Changed("max-tp") {
		cfg.MaxTp = maxTp
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDataset(ctx context.Context, cfg *config.Config) (*systems.Dataset, error) {
	if cfg.Input != "" {
		logger.Debug("reading series", "path", cfg.Input)
		return export.LoadSeriesCSV(cfg.Input)
	}
	logger.Debug("generating series", "system", cfg.System, "steps", cfg.Steps, "seed", cfg.Seed)
	return systems.NewRegistry().Generate(ctx, cfg.Spec())
}

func column(ds *systems.Dataset, name string) ([]float64, error) {
	s, ok := ds.Series[name]
	if !ok {
		return nil, fmt.Errorf("unknown series %q (have %v)", name, ds.Names)
	}
	return s, nil
}

// loadPair returns the source and target series of the session.
func loadPair(ctx context.Context, cfg *config.Config) (x, y []float64, err error) {
	ds, err := loadDataset(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if x, err = column(ds, cfg.Source); err != nil {
		return nil, nil, err
	}
	if y, err = column(ds, cfg.Target); err != nil {
		return nil, nil, err
	}
	return x, y, nil
}

func sessionOptions(cfg *config.Config) edm.Options {
	opts := cfg.Options()
	opts.Logger = logger
	return opts
}

func label(cfg *config.Config) string {
	if cfg.Input != "" {
		return cfg.Input
	}
	return cfg.System
}
