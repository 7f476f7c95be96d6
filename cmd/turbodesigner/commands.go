package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/turbodesigner/internal/blade"
	"github.com/san-kum/turbodesigner/internal/config"
	"github.com/san-kum/turbodesigner/internal/deviation"
	"github.com/san-kum/turbodesigner/internal/export"
	"github.com/san-kum/turbodesigner/internal/metrics"
	"github.com/san-kum/turbodesigner/internal/optim"
	"github.com/san-kum/turbodesigner/internal/registry"
	"github.com/san-kum/turbodesigner/internal/storage"
	"github.com/san-kum/turbodesigner/internal/sweep"
	"github.com/san-kum/turbodesigner/internal/turbo"
	"github.com/san-kum/turbodesigner/internal/units"
	"github.com/san-kum/turbodesigner/internal/viz"
)

// loadDesign reads --config, or the --preset when no file is given, and
// applies the --set overrides.
func loadDesign() (*config.Design, string, error) {
	var (
		d    *config.Design
		name string
	)
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		d, name = cfg, configFile
	} else {
		d = config.GetPreset(preset)
		if d == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	for _, kv := range overrides {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, "", fmt.Errorf("bad --set %q, want name=value", kv)
		}
		val, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, "", fmt.Errorf("bad --set %q: %w", kv, err)
		}
		if err := d.SetParam(k, val); err != nil {
			return nil, "", err
		}
	}
	return d, name, nil
}

func buildMachine() (*turbo.Machine, string, error) {
	d, name, err := loadDesign()
	if err != nil {
		return nil, "", err
	}
	start := time.Now()
	m, err := turbo.New(d)
	if err != nil {
		return nil, "", err
	}
	log.WithFields(log.Fields{"design": name, "stages": len(m.Stages()), "elapsed": time.Since(start)}).Debug("machine assembled")
	return m, name, nil
}

func printSummary(w io.Writer, m *turbo.Machine) {
	s := viz.DefaultStyles
	d := m.Design()
	fmt.Fprintln(w, viz.StageTable(m))
	fmt.Fprintf(w, "%s %s  %s %s  %s %s  %s %s\n",
		s.Label.Render("PR"), s.Value.Render(fmt.Sprintf("%.4f", d.PR)),
		s.Label.Render("TR"), s.Value.Render(fmt.Sprintf("%.4f", m.TR())),
		s.Label.Render("η_poly"), s.Value.Render(fmt.Sprintf("%.6f", m.EtaPoly())),
		s.Label.Render("ΔTt"), s.Value.Render(fmt.Sprintf("%.2f K", m.DeltaTt())),
	)
}

func evaluateAll(m *turbo.Machine) map[string]float64 {
	return metrics.Evaluate(m.Rows(), registry.NewRegistry().DefaultMetrics()...)
}

func printMetrics(w io.Writer, values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.6g\n", name, values[name])
	}
	return tw.Flush()
}

func runDesign(cmd *cobra.Command, args []string) error {
	m, name, err := buildMachine()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSummary(out, m)
	fmt.Fprintln(out)

	values := evaluateAll(m)
	if err := printMetrics(out, values); err != nil {
		return err
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.DefaultStyles.ViolationTable(metrics.DefaultLimits().Check(m.Rows())))

	if !saveRun {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, m, values)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "run id: %s\n", runID)
	return nil
}

func runStations(cmd *cobra.Command, args []string) error {
	m, _, err := buildMachine()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "STAGE\tROW\tSTREAM\tr [mm]\tTt [K]\tPt [kPa]\tT [K]\tP [kPa]\tVm\tVθ\tα [°]\tβ [°]\tM\tM rel\t")
	for _, rec := range storage.Stations(m) {
		row := "S"
		if rec.Rotating {
			row = "R"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.2f\t%.2f\t%.3f\t%.2f\t%.3f\t%.2f\t%.2f\t%.2f\t%.2f\t%.4f\t%.4f\t\n",
			rec.Stage, row, rec.Stream, rec.Radius, rec.Tt, rec.Pt/1000, rec.T, rec.P/1000,
			rec.Vm, rec.Vtheta, rec.Alpha, rec.Beta, rec.MN, rec.MNRel)
	}
	return w.Flush()
}

func runRows(cmd *cobra.Command, args []string) error {
	m, _, err := buildMachine()
	if err != nil {
		return err
	}
	if rowsStage < 0 || rowsStage > len(m.Stages()) {
		return fmt.Errorf("stage %d out of range 1..%d", rowsStage, len(m.Stages()))
	}

	out := cmd.OutOrStdout()
	s := viz.DefaultStyles
	for _, row := range m.Rows() {
		if rowsStage != 0 && row.StageNumber() != rowsStage {
			continue
		}
		fmt.Fprintln(out, s.RowHeader(row))
		fmt.Fprintln(out, s.RowTable(row))
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	m, _, err := buildMachine()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case flowpath:
		fmt.Fprint(out, viz.Flowpath(m, 80, 16))
		if svgFile == "" {
			return nil
		}
		if err := os.WriteFile(svgFile, []byte(export.FlowpathSVG(viz.Layout(m), 1200, 400)), 0644); err != nil {
			return err
		}
		log.WithField("path", svgFile).Info("flowpath written")
		return nil
	case radial:
		if plotStage < 1 || plotStage > len(m.Stages()) {
			return fmt.Errorf("stage %d out of range 1..%d", plotStage, len(m.Stages()))
		}
		st := m.Stages()[plotStage-1]
		for _, row := range []*blade.Row{st.Rotor(), st.Stator()} {
			plot, err := viz.RadialPlot(row, viz.DefaultPlotSize)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, plot)
			fmt.Fprintln(out)
		}
		return nil
	}

	plot, err := viz.StagePlot(m, quantity, viz.DefaultPlotSize)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, plot)
	return nil
}

func runSections(cmd *cobra.Command, args []string) error {
	m, _, err := buildMachine()
	if err != nil {
		return err
	}
	if secStage < 1 || secStage > len(m.Stages()) {
		return fmt.Errorf("stage %d out of range 1..%d", secStage, len(m.Stages()))
	}
	row := m.Stages()[secStage-1].Rotor()
	if secStator {
		row = m.Stages()[secStage-1].Stator()
	}
	ex, err := row.Export()
	if err != nil {
		return err
	}

	format := "svg"
	if ext := strings.TrimPrefix(filepath.Ext(outFile), "."); ext != "" {
		format = strings.ToLower(ext)
	}
	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	if err := export.SectionsPlot(w, ex, format, 6*vg.Inch); err != nil {
		_ = done()
		return err
	}
	if outFile != "" {
		log.WithFields(log.Fields{"path": outFile, "sections": len(ex.Sections)}).Info("sections written")
	}
	return done()
}

func runSweep(cmd *cobra.Command, args []string) error {
	d, _, err := loadDesign()
	if err != nil {
		return err
	}
	param := args[0]

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s := sweep.Range(param, sweepFrom, sweepTo, sweepN, sweep.WithWorkers(workers))
	start := time.Now()
	points, err := s.Run(ctx, d)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	names := registry.NewRegistry().ListMetrics()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(param), strings.ToUpper(strings.Join(names, "\t")))
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%.6g\tinfeasible: %v\n", p.Value, p.Err)
			continue
		}
		fmt.Fprintf(w, "%.6g", p.Value)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6g", p.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%d/%d feasible in %v\n\n", len(sweep.Feasible(points)), len(points), time.Since(start))

	xs, ys := sweep.Series(points, metricName)
	if len(ys) == 0 {
		return nil
	}
	fmt.Fprintf(out, "%s over %s %.4g..%.4g: %s\n", metricName, param, xs[0], xs[len(xs)-1], viz.Sparkline(ys))
	return nil
}

// parseGrid splits name=v1,v2,... into its knob name and values.
func parseGrid(arg string) (string, []float64, error) {
	name, list, ok := strings.Cut(arg, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("bad --param %q, want name=v1,v2,...", arg)
	}
	var values []float64
	for _, s := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad --param %q: %w", arg, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	d, _, err := loadDesign()
	if err != nil {
		return err
	}
	metric, err := registry.NewRegistry().GetMetric(metricName)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(gridParams))
	ranges := make([][]float64, 0, len(gridParams))
	for _, arg := range gridParams {
		name, values, err := parseGrid(arg)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	res, err := g.Search(cmd.Context(), d, metric, maximize)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tBEST")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, res.Params[name])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n%s = %.6g (%d evaluated, %d infeasible)\n", metricName, res.Value, res.Evaluated, res.Failed)
	return nil
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
	fmt.Fprintln(w, "ID\tNAME\tSTAGES\tPR\tBLADES\tTIMESTAMP")
	for _, r := range runs {
		pr := 0.0
		if r.Design != nil {
			pr = r.Design.PR
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4g\t%.0f\t%s\n",
			r.ID, r.Name, r.Stages, pr, r.Metrics["blade_count"], r.Timestamp.Format(time.RFC3339))
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	m, err := st.LoadMachine(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s (%s)\nsaved: %s\n\n", meta.ID, meta.Name, meta.Timestamp.Format(time.RFC3339))
	printSummary(out, m)
	fmt.Fprintln(out)
	return printMetrics(out, meta.Metrics)
}

// output opens --out, or stdout when it is unset.
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
	ex, err := storage.New(dataDir).LoadExport(args[0])
	if err != nil {
		return err
	}
	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	if err := storage.WriteJSON(w, ex); err != nil {
		_ = done()
		return err
	}
	return done()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	m, err := storage.New(dataDir).LoadMachine(args[0])
	if err != nil {
		return err
	}
	w, done, err := output(cmd)
	if err != nil {
		return err
	}
	if err := storage.WriteStationsCSV(w, m); err != nil {
		_ = done()
		return err
	}
	return done()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTAGES\tPR\tN [rpm]\tMDOT [kg/s]")
	for _, name := range config.ListPresets() {
		d := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.0f\t%.4g\n", name, d.NStg, d.PR, d.N, d.Mdot)
	}
	return w.Flush()
}

func initDesign(cmd *cobra.Command, args []string) error {
	d := config.GetPreset(preset)
	if d == nil {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	if err := config.Save(args[0], d); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s design to %s\n", preset, args[0])
	return nil
}

func runBrowse(cmd *cobra.Command, args []string) error {
	m, _, err := buildMachine()
	if err != nil {
		return err
	}
	return viz.Browse(m, metrics.DefaultLimits(), viz.GetTheme(themeName))
}

func runDeviation(cmd *cobra.Command, args []string) error {
	fam, err := deviation.ParseFamily(family)
	if err != nil {
		return err
	}
	jb := deviation.JohnsenBullock{
		Beta1:  units.Radians(beta1Deg),
		Beta2:  units.Radians(beta2Deg),
		Sigma:  sigma,
		Tbc:    tbc,
		Family: fam,
	}
	ma, err := jb.MetalAngles(iterations)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, kv := range []struct {
		name  string
		value float64
	}{
		{"kappa1", ma.Kappa1},
		{"kappa2", ma.Kappa2},
		{"incidence", ma.Incidence},
		{"deviation", ma.Deviation},
		{"camber", ma.Theta()},
		{"stagger", ma.Xi()},
	} {
		fmt.Fprintf(w, "%s\t%.4f°\n", kv.name, units.Degrees(kv.value))
	}
	return w.Flush()
}
