package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/inmilk/internal/bootstrap"
	"github.com/mamadbah2/inmilk/internal/config"
	"github.com/mamadbah2/inmilk/internal/domain/models"
	"github.com/mamadbah2/inmilk/internal/service/calculator"
	"github.com/mamadbah2/inmilk/internal/service/reporting"
	"github.com/mamadbah2/inmilk/pkg/logger"
)

type calcOptions struct {
	envFile  string
	output   string
	asJSON   bool
	logLevel string
	values   map[string]*string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inmilk",
		Short:         "Inmilk dairy feed cost/benefit calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCalcCmd())
	return root
}

func newCalcCmd() *cobra.Command {
	opts := &calcOptions{values: make(map[string]*string, len(models.InputFields))}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute the fifteen metrics for one scenario",
		Long: `Computes costs, revenues, breakeven volumes and ROI for one scenario.
Numbers accept a comma as decimal separator. With --output the PDF report is
rendered with the configured renderer and written to the given path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd, opts)
		},
	}

	for _, key := range models.InputFields {
		opts.values[key] = cmd.Flags().String(flagName(key), "", strings.ReplaceAll(key, "_", " "))
	}
	cmd.Flags().StringVar(&opts.envFile, "env", "", "env file with report settings")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the PDF report to this path")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print inputs and results as JSON")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "warn", "log level for diagnostics on stderr")

	return cmd
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func runCalc(cmd *cobra.Command, opts *calcOptions) error {
	values := make(map[string]string, len(opts.values))
	for key, v := range opts.values {
		values[key] = *v
	}
	raw := models.RawInputsFromValues(values)

	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	labels, err := reporting.Catalog(cfg.Report.Language)
	if err != nil {
		return err
	}

	in, res, err := calculator.Calculate(raw)
	if err != nil {
		return describeInputError(err, labels)
	}

	if opts.output != "" {
		if err := writeReport(cmd, cfg, raw, opts); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		return printJSON(out, in, res)
	}
	return printTable(out, res, labels)
}

func writeReport(cmd *cobra.Command, cfg *config.Config, raw models.RawInputs, opts *calcOptions) error {
	log, err := logger.New(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	renderer, cleanup, err := bootstrap.NewRenderer(cmd.Context(), cfg.Report, logger.Named(log, "reporting"))
	if err != nil {
		return err
	}
	defer cleanup()

	svc, err := bootstrap.NewSimulationService(cfg.Report, renderer, nil, nil, logger.Named(log, "svc.simulation"))
	if err != nil {
		return err
	}

	sim, err := svc.Run(cmd.Context(), raw)
	if err != nil {
		return err
	}

	if err := os.WriteFile(opts.output, sim.Document, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	log.Info("report written", zap.String("path", opts.output), zap.Int("bytes", len(sim.Document)))
	return nil
}

func describeInputError(err error, labels reporting.Labels) error {
	var missing *calculator.ValidationError
	if errors.As(err, &missing) {
		flags := make([]string, 0, len(missing.Fields))
		for _, f := range missing.Fields {
			flags = append(flags, "--"+flagName(f))
		}
		return fmt.Errorf("%s (%s): %w", labels.MissingField, strings.Join(flags, ", "), err)
	}
	var overflow *calculator.RangeError
	if errors.As(err, &overflow) {
		return fmt.Errorf("%s (%s): %w", labels.InvalidNumber, overflow.Metric, err)
	}
	var invalid *calculator.ParseError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%s (--%s=%q): %w", labels.InvalidNumber, flagName(invalid.Field), invalid.Value, err)
	}
	return err
}

func printJSON(w io.Writer, in models.Inputs, res models.Results) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Inputs  models.Inputs  `json:"inputs"`
		Results models.Results `json:"results"`
	}{in, res})
}

func printTable(w io.Writer, res models.Results, labels reporting.Labels) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\n", labels.MetricHeader, labels.ValueHeader)
	for _, row := range reporting.OutputRows(res, labels) {
		fmt.Fprintf(tw, "%s\t%s\n", row.Label, row.Value)
	}
	return tw.Flush()
}
