package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/ccm/internal/config"
	"github.com/san-kum/ccm/internal/edm"
	"github.com/san-kum/ccm/internal/export"
	"github.com/san-kum/ccm/internal/viz"
)

func runSimulate(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		system = args[0]
		if err := cmd.Flags().Set("system", system); err != nil {
			return err
		}
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	if outFile == "" {
		return export.WriteSeriesCSV(os.Stdout, ds)
	}
	file, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := export.WriteSeriesCSV(file, ds); err != nil {
		return err
	}
	logger.Info("series written", "path", outFile, "system", cfg.System, "steps", cfg.Steps)
	return nil
}

func runEmbed(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	series, err := column(ds, cfg.Source)
	if err != nil {
		return err
	}

	m, err := edm.Embed(series, cfg.E)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s E=%d rows=%d\n\n", label(cfg), cfg.Source, m.Dim(), m.Rows())
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"row"}
	for k := 0; k < m.Dim(); k++ {
		header = append(header, fmt.Sprintf("%s(t+%d)", cfg.Source, k))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for i, row := range m.Slice(rows) {
		cells := []string{fmt.Sprint(i)}
		for _, v := range row {
			cells = append(cells, fmt.Sprintf("%.6f", v))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showPlot {
		fmt.Println()
		fmt.Println(viz.RenderManifold(m, 60, 15))
	}
	return nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	x, y, err := loadPair(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	logger.Info("cross mapping", "input", label(cfg), "source", cfg.Source, "target", cfg.Target,
		"E", cfg.E, "n", len(x), "random", cfg.Random != nil)
	res, err := edm.CrossMap(cmd.Context(), x, y, sessionOptions(cfg))
	if err != nil {
		return err
	}

	curves := res.Curves()
	curves[0].Name = cfg.Source + "_from_" + cfg.Target
	curves[1].Name = cfg.Target + "_from_" + cfg.Source

	fmt.Println(viz.Title.Render(fmt.Sprintf("%s: %s and %s, E=%d", label(cfg), cfg.Source, cfg.Target, cfg.E)))
	fmt.Println(viz.RenderTable(curves))
	if plot := viz.RenderCurves(curves, viz.ThemeCyberpunk, 60, 12); plot != "" {
		fmt.Println(plot)
		fmt.Println()
	}
	printVerdict(cfg.Source, cfg.Target, res)

	if jsonFile != "" {
		rep := report(cfg)
		rep.Result = res
		rep.Dominant = res.Dominant()
		if err := export.ExportJSON(jsonFile, rep); err != nil {
			return err
		}
		logger.Info("report written", "path", jsonFile)
	}
	if csvFile != "" {
		file, err := os.Create(csvFile)
		if err != nil {
			return err
		}
		defer file.Close()
		if err := export.WriteCSV(file, curves...); err != nil {
			return err
		}
		logger.Info("curves written", "path", csvFile)
	}
	if plotFile != "" {
		if err := export.SavePlot(plotFile, label(cfg)+" cross mapping", curves...); err != nil {
			return err
		}
		logger.Info("plot written", "path", plotFile)
	}
	return nil
}

func printVerdict(x, y string, res *edm.Result) {
	verdict := func(c edm.Curve, driver, driven string) {
		status := viz.SparkLow.Render("no convergence")
		if edm.Converged(c, edm.DefaultMargin) {
			status = viz.SparkHigh.Render("converges")
		}
		fmt.Printf("%s %s  %s drives %s?\n", viz.MetricLabel.Render(fmt.Sprintf("%-7s", driver+"->"+driven)), status, driver, driven)
	}
	verdict(res.XFromY, x, y)
	verdict(res.YFromX, y, x)

	dominant := res.Dominant()
	switch dominant {
	case "x->y":
		dominant = x + "->" + y
	case "y->x":
		dominant = y + "->" + x
	}
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("stronger"), viz.MetricValue.Render(dominant))
}

func runSimplex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ds, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	series, err := column(ds, cfg.Source)
	if err != nil {
		return err
	}

	libRows := cfg.SimplexLib(len(series))
	logger.Info("simplex", "input", label(cfg), "series", cfg.Source, "lib", libRows, "max_e", cfg.MaxE)

	skills, err := edm.EmbeddingSkill(series, cfg.MaxE, libRows, cfg.Tp)
	if err != nil {
		return err
	}
	best := edm.BestEmbedding(skills)
	fmt.Println(viz.Title.Render(fmt.Sprintf("%s %s: forecast skill by E (Tp=%d, lib=%d)", label(cfg), cfg.Source, cfg.Tp, libRows)))
	fmt.Println(viz.RenderSkills(skills, best))

	decay, err := edm.PredictionDecay(series, best, libRows, cfg.MaxTp)
	if err != nil {
		return err
	}
	fmt.Println(viz.Title.Render(fmt.Sprintf("prediction decay at E=%d", best)))
	fmt.Println(viz.RenderSkills(decay, -1))

	rhos := make([]float64, len(decay))
	for i, s := range decay {
		rhos[i] = s.Rho
	}
	fmt.Printf("%s %s\n", viz.MetricLabel.Render("rho by Tp"), viz.Sparkline(rhos))

	forecast, err := edm.Simplex(series, best, libRows, cfg.Tp)
	if err != nil {
		return err
	}

	if jsonFile != "" {
		rep := report(cfg)
		rep.E = best
		rep.Skills = append(skills, decay...)
		rep.Forecast = forecast
		if err := export.ExportJSON(jsonFile, rep); err != nil {
			return err
		}
		logger.Info("report written", "path", jsonFile)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	x, y, err := loadPair(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	updates := make(chan tea.Msg, 64)
	send := func(msg tea.Msg) {
		select {
		case updates <- msg:
		case <-ctx.Done():
		}
	}

	opts := sessionOptions(cfg)
	// Log lines would tear the alternate screen.
	opts.Logger = nil
	opts.CrossProgress = func(dir edm.Direction, p edm.Point) {
		send(viz.PointMsg{Direction: dir, Point: p})
	}
	go func() {
		res, err := edm.CrossMap(ctx, x, y, opts)
		send(viz.DoneMsg{Result: res, Err: err})
	}()

	title := fmt.Sprintf("%s: %s and %s, E=%d", label(cfg), cfg.Source, cfg.Target, cfg.E)
	model := viz.NewWatchModel(title, len(opts.LibraryLengths(len(x))), updates)
	model.SetTheme(theme)

	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func report(cfg *config.Config) *export.Report {
	return &export.Report{
		System: cfg.System,
		Input:  cfg.Input,
		Source: cfg.Source,
		Target: cfg.Target,
		E:      cfg.E,
		Tp:     cfg.Tp,
		Seed:   cfg.Seed,
	}
}
