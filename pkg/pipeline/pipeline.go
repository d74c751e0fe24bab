// Package pipeline wires the cleaning stages together: read, BOM strip,
// decode, mapping-driven cleaning, and the write of the cleaned copy. It is
// the engine behind both the CLI and library callers.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/uneff-io/uneff/pkg/cleaner"
	"github.com/uneff-io/uneff/pkg/fsutil"
	"github.com/uneff-io/uneff/pkg/mapping"
	"github.com/uneff-io/uneff/pkg/textfile"
)

const (
	// DefaultMappingFile is where the character table lives when no path is
	// configured, resolved against the working directory.
	DefaultMappingFile = "uneff_mappings.csv"
	// DefaultOutputPrefix marks cleaned copies of input files.
	DefaultOutputPrefix = "uneffd_"
)

// CleanResult is the outcome of one clean operation.
type CleanResult struct {
	CleanedText string               `json:"cleaned_text,omitempty"`
	BOMRemoved  bool                 `json:"bom_removed"`
	BOM         textfile.BOM         `json:"bom"`
	Encoding    textfile.Encoding    `json:"encoding"`
	Report      cleaner.ChangeReport `json:"report"`
	OutputPath  string               `json:"output_path,omitempty"`
	SampleLimit int                  `json:"sample_limit,omitempty"`
	Success     bool                 `json:"success"`
	Error       string               `json:"error,omitempty"`
}

// Changed reports whether the output differs from the input, counting BOM
// strips at either the byte or the text level alongside character removals.
func (r *CleanResult) Changed() bool {
	return r.BOMRemoved || r.Report.HasChanges()
}

// FileOptions configures a single-file clean. Zero values select defaults.
type FileOptions struct {
	// MappingPath overrides the character table location
	MappingPath string
	// OutputPath overrides where the cleaned copy is written
	OutputPath string
	// OutputPrefix replaces the uneffd_ default when OutputPath is empty
	OutputPrefix string
	// Verbose selects the full default table when the mappings file has to
	// be created
	Verbose bool
	// CollectLocations samples per-occurrence positions for the report
	CollectLocations bool
	SampleLimit      int
	ContextWindow    int
}

func (o FileOptions) outputPrefix() string {
	if o.OutputPrefix != "" {
		return o.OutputPrefix
	}
	return DefaultOutputPrefix
}

// TextOptions configures an in-memory clean.
type TextOptions struct {
	MappingPath string
	Verbose     bool
}

// Pipeline runs the cleaning stages and owns their logging.
type Pipeline struct {
	logger zerolog.Logger
	store  *mapping.Store
}

// New creates a pipeline that logs through the given logger.
func New(logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		logger: logger.With().Str("component", "pipeline").Logger(),
		store:  mapping.NewStore(logger),
	}
}

// DefaultOutputPath returns where the cleaned copy of path goes when no
// explicit output is given: the same directory, basename prefixed.
func DefaultOutputPath(path string) string {
	return filepath.Join(filepath.Dir(path), DefaultOutputPrefix+filepath.Base(path))
}

// CleanFile cleans the file at path and writes a cleaned copy. The returned
// error is non-nil only when the input does not exist; every later problem
// is reported through the result instead.
func (p *Pipeline) CleanFile(path string, opts FileOptions) (*CleanResult, error) {
	if !fsutil.FileExists(path) {
		return nil, fmt.Errorf("input file does not exist: %s", path)
	}

	set := p.store.Load(p.mappingPath(opts.MappingPath), opts.Verbose)
	return p.cleanLoaded(path, set, opts), nil
}

// cleanLoaded cleans one file with an already-loaded character table. Batch
// runs share a single table across goroutines, so everything here must stay
// read-only with respect to set.
func (p *Pipeline) cleanLoaded(path string, set mapping.Set, opts FileOptions) *CleanResult {
	p.logger.Info().Str("file", path).Msg("Processing file")

	raw, err := os.ReadFile(path)
	if err != nil {
		p.logger.Error().Err(err).Str("file", path).Msg("Failed to read file")
		return &CleanResult{
			Report: emptyReport(),
			Error:  fmt.Sprintf("reading file: %v", err),
		}
	}

	res := p.cleanBytes(raw, set, opts)

	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(path), opts.outputPrefix()+filepath.Base(path))
	}
	res.OutputPath = outputPath

	if err := writeFileAtomic(outputPath, []byte(res.CleanedText)); err != nil {
		p.logger.Error().Err(err).Str("output", outputPath).Msg("Failed to write cleaned file")
		res.Success = false
		res.Error = fmt.Sprintf("writing cleaned file: %v", err)
		return res
	}

	p.logger.Info().
		Str("output", outputPath).
		Bool("bom_removed", res.BOMRemoved).
		Int("removals", len(res.Report.Removals)).
		Msg("Cleaned file saved")

	return res
}

// CleanText removes problematic characters from text in memory, stripping a
// leading U+FEFF first. It never fails: any internal problem leaves the text
// unchanged.
func (p *Pipeline) CleanText(text string, opts TextOptions) string {
	cleaned, _ := p.CleanTextReport(text, opts)
	return cleaned
}

// CleanTextReport is CleanText for callers that also need the change report.
func (p *Pipeline) CleanTextReport(text string, opts TextOptions) (cleaned string, report cleaner.ChangeReport) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Interface("panic", r).Msg("Text cleaning failed, returning original text")
			cleaned = text
			report = cleaner.ChangeReport{Removals: make([]cleaner.Removal, 0)}
		}
	}()

	set := p.store.Load(p.mappingPath(opts.MappingPath), opts.Verbose)
	cleaned, report = cleaner.Clean(text, set, cleaner.Options{})
	return cleaned, report
}

// cleanBytes runs the in-memory stages shared by file and batch cleaning.
func (p *Pipeline) cleanBytes(raw []byte, set mapping.Set, opts FileOptions) *CleanResult {
	rest, bom := textfile.StripBOM(raw)
	if bom.Found() {
		p.logger.Info().Str("bom", string(bom)).Msg("BOM detected at start, removing")
	} else {
		p.logger.Debug().Msg("No BOM detected at start")
	}

	text, enc := textfile.Decode(rest)
	switch enc {
	case textfile.EncodingUTF8Replaced:
		p.logger.Warn().Msg("Used replacement characters during decoding, file might have encoding issues")
	case textfile.EncodingLatin1:
		p.logger.Warn().Msg("Forced Latin-1 decoding, character representation may be incorrect")
	}

	sampleLimit := opts.SampleLimit
	if sampleLimit <= 0 {
		sampleLimit = cleaner.DefaultSampleLimit
	}

	cleaned, report := cleaner.Clean(text, set, cleaner.Options{
		CollectLocations: opts.CollectLocations,
		SampleLimit:      sampleLimit,
		ContextWindow:    opts.ContextWindow,
	})

	return &CleanResult{
		CleanedText: cleaned,
		BOMRemoved:  bom.Found() || report.LeadingBOM,
		BOM:         bom,
		Encoding:    enc,
		Report:      report,
		SampleLimit: sampleLimit,
		Success:     true,
	}
}

func (p *Pipeline) mappingPath(path string) string {
	if path != "" {
		return path
	}
	return DefaultMappingFile
}

func emptyReport() cleaner.ChangeReport {
	return cleaner.ChangeReport{Removals: make([]cleaner.Removal, 0)}
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place, so a failed write never leaves a truncated output behind.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".uneff-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting output file mode: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing output file: %w", err)
	}

	return nil
}
