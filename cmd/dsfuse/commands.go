package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Harshitk-cp/dsfusion/internal/buildconfig"
	"github.com/Harshitk-cp/dsfusion/internal/config"
	"github.com/Harshitk-cp/dsfusion/internal/domain"
	"github.com/Harshitk-cp/dsfusion/internal/service"
	"github.com/Harshitk-cp/dsfusion/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalOptions struct {
	dataFile    string
	labelColumn int
	noHeader    bool
	logLevel    string
}

func newRootCmd(evidence domain.EvidenceConfig) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:          "dsfuse",
		Short:        "Fuse evidence with Dempster's rule of combination",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.dataFile, "data", config.DataFile(), "sample file (.csv or .xlsx)")
	root.PersistentFlags().IntVar(&opts.labelColumn, "label-column", config.DataLabelColumn(), "zero-based column of the class label")
	root.PersistentFlags().BoolVar(&opts.noHeader, "no-header", !config.DataHasHeader(), "the sample file has no header row")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		newClassifyCmd(opts, evidence),
		newCombineCmd(opts),
		newProfileCmd(opts, evidence),
		newVersionCmd(),
	)
	return root
}

func newClassifyCmd(opts *globalOptions, evidence domain.EvidenceConfig) *cobra.Command {
	var verbose bool
	values := make(map[string]*float64, len(evidence.Dimensions))

	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify an observation by fusing the evidence of each given dimension",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.logLevel)
			defer func() { _ = logger.Sync() }()

			obs := service.Observation{}
			for name, v := range values {
				if cmd.Flags().Changed(name) {
					obs[name] = *v
				}
			}

			samples, err := loadSamples(opts)
			if err != nil {
				return err
			}
			source, err := service.NewEvidenceSource(evidence, logger)
			if err != nil {
				return err
			}
			classifier := service.NewClassificationService(samples, source, service.NewCombinationService(logger), logger)

			result, err := classifier.Classify(cmd.Context(), obs)
			if err != nil {
				return err
			}
			if verbose {
				return printJSON(cmd.OutOrStdout(), result)
			}
			return printJSON(cmd.OutOrStdout(), result.Masses)
		},
	}

	for _, d := range evidence.Dimensions {
		values[d.Name] = cmd.Flags().Float64(d.Name, 0, fmt.Sprintf("observed %s (lookup interval ±%g)", d.Name, d.Interval))
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print per-dimension evidence and the evaluation")
	return cmd
}

type combineFile struct {
	Frame       []string             `json:"frame"`
	Assignments []map[string]float64 `json:"assignments"`
}

func newCombineCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "combine FILE",
		Short: "Combine the mass assignments of a JSON file left to right",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.logLevel)
			defer func() { _ = logger.Sync() }()

			in, err := readCombineFile(args[0])
			if err != nil {
				return err
			}

			hs := make([]domain.Hypothesis, len(in.Frame))
			for i, h := range in.Frame {
				hs[i] = domain.Hypothesis(h)
			}
			frame, err := domain.NewFrame(hs...)
			if err != nil {
				return err
			}

			masses := make([]*domain.MassAssignment, 0, len(in.Assignments))
			for i, a := range in.Assignments {
				m, err := domain.FromMap(frame, a)
				if err != nil {
					return fmt.Errorf("assignment %d: %w", i, err)
				}
				masses = append(masses, m)
			}

			result, err := service.NewCombinationService(logger).Fold(masses...)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"masses":     result.ToMap(),
				"evaluation": service.Evaluate(result),
			})
		},
	}
}

func newProfileCmd(opts *globalOptions, evidence domain.EvidenceConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Summarize the sample file per dimension and class",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(opts.logLevel)
			defer func() { _ = logger.Sync() }()

			samples, err := loadSamples(opts)
			if err != nil {
				return err
			}
			profiles, err := service.NewSampleService(samples, evidence, logger).Profile(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profiles)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildconfig.String())
		},
	}
}

func loadSamples(opts *globalOptions) (*store.FileSampleStore, error) {
	return store.LoadFile(opts.dataFile, store.FileOptions{
		HasHeader:   !opts.noHeader,
		LabelColumn: opts.labelColumn,
	})
}

func readCombineFile(path string) (combineFile, error) {
	var in combineFile
	data, err := os.ReadFile(path)
	if err != nil {
		return in, err
	}
	if err := json.Unmarshal(data, &in); err != nil {
		return in, fmt.Errorf("parse %s: %w", path, err)
	}
	return in, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
