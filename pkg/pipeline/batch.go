package pipeline

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/uneff-io/uneff/pkg/fsutil"
)

// DefaultConcurrency bounds how many files a batch cleans at once.
const DefaultConcurrency = 4

// BatchOptions configures a directory clean.
type BatchOptions struct {
	FileOptions
	// IgnorePatterns adds gitignore-style patterns on top of the defaults
	IgnorePatterns []string
	// Concurrency bounds parallel file cleans; zero selects the default
	Concurrency int
}

// FileResult pairs one file of a batch with its clean outcome. Path is
// relative to the batch directory.
type FileResult struct {
	Path   string       `json:"path"`
	Result *CleanResult `json:"result"`
}

// BatchResult summarizes a directory clean.
type BatchResult struct {
	Dir     string       `json:"dir"`
	Files   []FileResult `json:"files"`
	Cleaned int          `json:"cleaned"`
	Changed int          `json:"changed"`
	Failed  int          `json:"failed"`
}

// CleanDir cleans every eligible file under dir into prefixed siblings. The
// returned error is non-nil only when dir does not exist or cannot be
// walked; each file cleans independently and its problems land in the
// per-file result.
func (p *Pipeline) CleanDir(dir string, opts BatchOptions) (*BatchResult, error) {
	if !fsutil.DirExists(dir) {
		return nil, fmt.Errorf("input directory does not exist: %s", dir)
	}

	walkOptions := fsutil.DefaultWalkOptions()
	if prefix := opts.outputPrefix(); prefix != DefaultOutputPrefix {
		walkOptions.IgnorePatterns = append(walkOptions.IgnorePatterns, prefix+"*")
	}
	walkOptions.IgnorePatterns = append(walkOptions.IgnorePatterns, opts.IgnorePatterns...)

	files, err := fsutil.ListFiles(dir, walkOptions)
	if err != nil {
		return nil, fmt.Errorf("walking directory: %w", err)
	}

	p.logger.Info().Str("dir", dir).Int("files", len(files)).Msg("Starting batch clean")

	// One table for the whole batch; loading per file would race on
	// create-if-missing.
	set := p.store.Load(p.mappingPath(opts.MappingPath), opts.Verbose)

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]FileResult, 0, len(files))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for _, rel := range files {
		wg.Add(1)
		go func(rel string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			fileOpts := opts.FileOptions
			// Each file writes its own prefixed sibling.
			fileOpts.OutputPath = ""
			res := p.cleanLoaded(filepath.Join(dir, rel), set, fileOpts)

			mu.Lock()
			results = append(results, FileResult{Path: rel, Result: res})
			mu.Unlock()
		}(rel)
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	batch := &BatchResult{Dir: dir, Files: results}
	for _, fr := range results {
		if !fr.Result.Success {
			batch.Failed++
			continue
		}
		batch.Cleaned++
		if fr.Result.Changed() {
			batch.Changed++
		}
	}

	p.logger.Info().
		Int("cleaned", batch.Cleaned).
		Int("changed", batch.Changed).
		Int("failed", batch.Failed).
		Msg("Batch clean completed")

	return batch, nil
}
