package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/uneff-io/uneff/pkg/cleaner"
	"github.com/uneff-io/uneff/pkg/logger"
	"github.com/uneff-io/uneff/pkg/pipeline"
	"github.com/uneff-io/uneff/pkg/report"
	"github.com/uneff-io/uneff/pkg/textfile"
)

var (
	mappingFile   string
	outputFile    string
	showLocations bool
	jsonOutput    bool
	sampleLimit   int
	contextWindow int
)

var cleanCmd = &cobra.Command{
	Use:   "clean FILE",
	Short: "Clean a single file and write a cleaned copy next to it",
	Long: `The clean command strips any leading byte order mark from FILE, removes the
characters flagged in the mapping table, and writes the cleaned copy next to
the original. A report of what changed is printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts := cfg.FileOptions()
		opts.Verbose = !quiet
		opts.CollectLocations = showLocations || !quiet
		if cmd.Flags().Changed("mapping") {
			opts.MappingPath = mappingFile
		}
		if outputFile != "" {
			opts.OutputPath = outputFile
		}
		if cmd.Flags().Changed("sample-limit") {
			opts.SampleLimit = sampleLimit
		}
		if cmd.Flags().Changed("context") {
			opts.ContextWindow = contextWindow
		}

		res, err := pipeline.New(logger.Get()).CleanFile(args[0], opts)
		if err != nil {
			return err
		}

		if jsonOutput {
			res.CleanedText = ""
			out, err := report.FormatJSON(res)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		}
		if !quiet {
			fmt.Fprint(cmd.OutOrStdout(), report.Format(res))
		}
		return nil
	},
}

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Clean text from stdin and write it to stdout",
	Long: `The text command reads from stdin, removes any leading byte order mark and
the characters flagged in the mapping table, and writes the cleaned text to
stdout. Diagnostics stay on stderr so the output can be piped.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}

		body, _ := textfile.StripBOM(raw)
		text, _ := textfile.Decode(body)

		opts := pipeline.TextOptions{MappingPath: cfg.MappingPath}
		if cmd.Flags().Changed("mapping") {
			opts.MappingPath = mappingFile
		}

		cleaned := pipeline.New(logger.Get()).CleanText(text, opts)
		fmt.Fprint(cmd.OutOrStdout(), cleaned)
		return nil
	},
}

func init() {
	cleanCmd.Flags().StringVarP(&mappingFile, "mapping", "m", "", "Path to the mappings CSV (default uneff_mappings.csv)")
	cleanCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Where to write the cleaned copy")
	cleanCmd.Flags().BoolVar(&showLocations, "locations", false, "Include per-character locations in the report")
	cleanCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the report as JSON")
	cleanCmd.Flags().IntVar(&sampleLimit, "sample-limit", cleaner.DefaultSampleLimit, "Locations reported per character")
	cleanCmd.Flags().IntVar(&contextWindow, "context", cleaner.DefaultContextWindow, "Runes of context shown around each location")

	textCmd.Flags().StringVarP(&mappingFile, "mapping", "m", "", "Path to the mappings CSV (default uneff_mappings.csv)")
}
