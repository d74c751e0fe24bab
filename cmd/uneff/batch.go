package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uneff-io/uneff/pkg/logger"
	"github.com/uneff-io/uneff/pkg/pipeline"
	"github.com/uneff-io/uneff/pkg/report"
)

var (
	batchIgnore      []string
	batchConcurrency int
)

var batchCmd = &cobra.Command{
	Use:   "batch DIR",
	Short: "Clean every text file under a directory",
	Long: `The batch command walks DIR, skipping ignored paths and binary files, and
writes a cleaned copy next to every text file it finds. A per-file failure is
reported in the summary and does not stop the run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cfg.BatchOptions()
		opts.Verbose = !quiet
		opts.IgnorePatterns = append(opts.IgnorePatterns, batchIgnore...)
		if cmd.Flags().Changed("mapping") {
			opts.MappingPath = mappingFile
		}
		if cmd.Flags().Changed("concurrency") {
			opts.Concurrency = batchConcurrency
		}

		res, err := pipeline.New(logger.Get()).CleanDir(args[0], opts)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), report.FormatBatch(res))
		return nil
	},
}

func init() {
	batchCmd.Flags().StringVarP(&mappingFile, "mapping", "m", "", "Path to the mappings CSV (default uneff_mappings.csv)")
	batchCmd.Flags().StringArrayVar(&batchIgnore, "ignore", nil, "Extra ignore pattern, gitignore syntax (repeatable)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", pipeline.DefaultConcurrency, "Files cleaned in parallel")
}
