package main

import (
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/san-kum/turbodesigner/internal/viz"
)

var (
	dataDir    string
	logLevel   string
	themeName  string
	configFile string
	preset     string
	overrides  []string
	saveRun    bool
	outFile    string
	rowsStage  int
	plotStage  int
	secStage   int
	secStator  bool
	quantity   string
	radial     bool
	flowpath   bool
	svgFile    string
	metricName string
	sweepFrom  float64
	sweepTo    float64
	sweepN     int
	workers    int
	gridParams []string
	maximize   bool
	beta1Deg   float64
	beta2Deg   float64
	sigma      float64
	tbc        float64
	family     string
	iterations int
)

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:           "turbodesigner",
		Short:         "meanline axial compressor design",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetOutput(os.Stderr)
			log.SetLevel(level)
			viz.DefaultStyles = viz.NewStyles(viz.GetTheme(themeName))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envOr("TURBODESIGNER_DATA", ".turbodesigner"), "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", envOr("TURBODESIGNER_LOG_LEVEL", "warn"), "log level")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", envOr("TURBODESIGNER_THEME", "default"), "color theme")

	designFlags := func(cmd *cobra.Command) {
		cmd.Flags().StringVarP(&configFile, "config", "c", "", "design file (yaml or json)")
		cmd.Flags().StringVarP(&preset, "preset", "p", "base", "preset design")
		cmd.Flags().StringArrayVar(&overrides, "set", nil, "override a knob, name=value")
	}

	designCmd := &cobra.Command{
		Use:   "design",
		Short: "assemble a design and print the stage summary",
		Args:  cobra.NoArgs,
		RunE:  runDesign,
	}
	designFlags(designCmd)
	designCmd.Flags().BoolVar(&saveRun, "save", false, "store the run in the data directory")

	stationsCmd := &cobra.Command{
		Use:   "stations",
		Short: "print the inlet flow station of every row stream",
		Args:  cobra.NoArgs,
		RunE:  runStations,
	}
	designFlags(stationsCmd)

	rowsCmd := &cobra.Command{
		Use:   "rows",
		Short: "print per-stream blade row aerodynamics",
		Args:  cobra.NoArgs,
		RunE:  runRows,
	}
	designFlags(rowsCmd)
	rowsCmd.Flags().IntVar(&rowsStage, "stage", 0, "only this stage (1-based)")

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "plot stage quantities, radial flow angles or the flowpath",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	designFlags(plotCmd)
	plotCmd.Flags().StringVarP(&quantity, "quantity", "q", "pr", "stage quantity to plot")
	plotCmd.Flags().BoolVar(&radial, "radial", false, "plot flow angles hub to tip")
	plotCmd.Flags().BoolVar(&flowpath, "flowpath", false, "draw the meridional flowpath")
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the flowpath as SVG to this file")
	plotCmd.Flags().IntVar(&plotStage, "stage", 1, "stage for --radial")

	sectionsCmd := &cobra.Command{
		Use:   "sections",
		Short: "plot the hub-to-tip blade sections of one row",
		Args:  cobra.NoArgs,
		RunE:  runSections,
	}
	designFlags(sectionsCmd)
	sectionsCmd.Flags().IntVar(&secStage, "stage", 1, "stage (1-based)")
	sectionsCmd.Flags().BoolVar(&secStator, "stator", false, "stator row instead of rotor")
	sectionsCmd.Flags().StringVarP(&outFile, "output", "o", "", "output file, format from extension (default svg on stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "evaluate designs over a range of one knob",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	designFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "last value")
	sweepCmd.Flags().IntVarP(&sweepN, "count", "n", 5, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent assemblies (0 = GOMAXPROCS)")
	sweepCmd.Flags().StringVarP(&metricName, "metric", "m", "max_df", "metric to plot")
	_ = sweepCmd.MarkFlagRequired("from")
	_ = sweepCmd.MarkFlagRequired("to")

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "grid search knobs for the best metric value",
		Args:  cobra.NoArgs,
		RunE:  runOptimize,
	}
	designFlags(optimizeCmd)
	optimizeCmd.Flags().StringArrayVarP(&gridParams, "param", "P", nil, "knob and its values, name=v1,v2,...")
	optimizeCmd.Flags().StringVarP(&metricName, "metric", "m", "max_df", "metric to optimize")
	optimizeCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")
	_ = optimizeCmd.MarkFlagRequired("param")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write the manufacturing export of a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write the flow stations of a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset designs",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a preset design document to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initDesign,
	}
	initCmd.Flags().StringVarP(&preset, "preset", "p", "base", "preset design")

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "browse the stages of a design interactively",
		Args:  cobra.NoArgs,
		RunE:  runBrowse,
	}
	designFlags(browseCmd)

	deviationCmd := &cobra.Command{
		Use:   "deviation",
		Short: "solve metal angles for one stream",
		Args:  cobra.NoArgs,
		RunE:  runDeviation,
	}
	deviationCmd.Flags().Float64Var(&beta1Deg, "beta1", 0, "inlet flow angle (deg)")
	deviationCmd.Flags().Float64Var(&beta2Deg, "beta2", 0, "exit flow angle (deg)")
	deviationCmd.Flags().Float64Var(&sigma, "sigma", 1, "solidity")
	deviationCmd.Flags().Float64Var(&tbc, "tbc", 0.1, "thickness to chord")
	deviationCmd.Flags().StringVar(&family, "family", "DCA", "airfoil family")
	deviationCmd.Flags().IntVar(&iterations, "iterations", 20, "fixed-point iterations")

	rootCmd.AddCommand(designCmd, stationsCmd, rowsCmd, plotCmd, sectionsCmd, sweepCmd, optimizeCmd, listCmd, showCmd,
		exportJSONCmd, exportCSVCmd, presetsCmd, initCmd, browseCmd, deviationCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
