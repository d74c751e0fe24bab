package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uneff-io/uneff/pkg/fsutil"
	"github.com/uneff-io/uneff/pkg/logger"
	"github.com/uneff-io/uneff/pkg/mapping"
	"github.com/uneff-io/uneff/pkg/report"
)

var mappingsInit bool

var mappingsCmd = &cobra.Command{
	Use:   "mappings",
	Short: "Show or initialize the problematic character table",
	Long: `The mappings command prints the character table uneff cleans with. With
--init it writes the built-in default table to the mappings file so the
entries can be edited before the next run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		path := cfg.MappingPath
		if cmd.Flags().Changed("mapping") {
			path = mappingFile
		}

		if mappingsInit {
			if fsutil.FileExists(path) {
				return fmt.Errorf("mappings file already exists: %s", path)
			}
			if err := mapping.WriteTable(path, mapping.Defaults()); err != nil {
				return fmt.Errorf("writing mappings file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default mapping table to %s\n", path)
			return nil
		}

		set := mapping.NewStore(logger.Get()).Load(path, false)
		fmt.Fprint(cmd.OutOrStdout(), report.FormatMappings(set))
		return nil
	},
}

func init() {
	mappingsCmd.Flags().StringVarP(&mappingFile, "mapping", "m", "", "Path to the mappings CSV (default uneff_mappings.csv)")
	mappingsCmd.Flags().BoolVar(&mappingsInit, "init", false, "Write the default table to the mappings path")
}
