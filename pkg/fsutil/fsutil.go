// Package fsutil provides the file system helpers shared by the cleaning
// pipeline: existence checks and ignore-aware directory walking for batch
// runs.
package fsutil

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// FileExists checks if a file exists at the given path
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// DirExists checks if a directory exists at the given path
func DirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// DefaultIgnorePatterns contains paths a batch clean skips: version control
// and dependency directories, formats that are not text, and the outputs of
// previous runs.
var DefaultIgnorePatterns = []string{
	".git/",
	".svn/",
	".hg/",
	"node_modules/",
	"vendor/",
	"__pycache__/",
	".idea/",
	".vscode/",
	".DS_Store",
	"uneffd_*",
	"*.png",
	"*.jpg",
	"*.jpeg",
	"*.gif",
	"*.ico",
	"*.woff",
	"*.woff2",
	"*.ttf",
	"*.eot",
	"*.pdf",
	"*.zip",
	"*.tar",
	"*.gz",
	"*.7z",
	"*.exe",
	"*.dll",
	"*.so",
	"*.dylib",
	"*.class",
	"*.pyc",
	"*.pyo",
	"*.o",
	"*.a",
	"*.jar",
	"*.mp3",
	"*.mp4",
	"*.avi",
	"*.mov",
}

// WalkOptions configures which files a batch walk yields.
type WalkOptions struct {
	// IgnorePatterns is a list of gitignore-style patterns for paths to skip
	IgnorePatterns []string
	// UseGitIgnore determines whether to respect the root's .gitignore file
	UseGitIgnore bool
	// ShowHidden determines whether to include hidden files/directories
	ShowHidden bool
}

// DefaultWalkOptions returns the batch defaults: common ignore patterns
// applied, .gitignore respected, hidden files skipped.
func DefaultWalkOptions() WalkOptions {
	return WalkOptions{
		IgnorePatterns: DefaultIgnorePatterns,
		UseGitIgnore:   true,
		ShowHidden:     false,
	}
}

// ListFiles walks root and returns the regular files a batch clean should
// process, as root-relative paths in walk order.
func ListFiles(root string, options WalkOptions) ([]string, error) {
	ignorePatterns := options.IgnorePatterns

	if options.UseGitIgnore {
		gitignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(gitignorePath); err == nil {
			content, err := os.ReadFile(gitignorePath)
			if err == nil {
				ignorePatterns = append(ignorePatterns, strings.Split(string(content), "\n")...)
			}
		}
	}

	matcher := ignore.CompileIgnoreLines(ignorePatterns...)

	files := make([]string, 0)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		// Skip root directory itself
		if relPath == "." {
			return nil
		}

		// Append slash for directories so patterns ending in '/' match
		pathToMatch := relPath
		if info.IsDir() {
			pathToMatch = relPath + string(filepath.Separator)
		}
		if matcher.MatchesPath(pathToMatch) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		// Skip hidden files/directories unless explicitly enabled
		if !options.ShowHidden && strings.HasPrefix(info.Name(), ".") {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if info.Mode().IsRegular() {
			files = append(files, relPath)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
