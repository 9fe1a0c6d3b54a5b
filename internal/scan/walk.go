// Package scan drives the link-check pipeline over files and directory trees.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aidanlsb/mdcheck/internal/cache"
	"github.com/aidanlsb/mdcheck/internal/linkcheck"
)

// FileResult contains the outcome of checking one markdown file.
type FileResult struct {
	Path         string
	RelativePath string
	Result       linkcheck.Result
	Cached       bool // result came from the scan cache
	Err          error
}

// Options contains options for walking markdown files.
type Options struct {
	// Extensions are the file extensions treated as Markdown.
	Extensions []string

	// CheckImages also checks image destinations.
	CheckImages bool

	// Cache, when non-nil, is consulted before checking a file and updated
	// after. Cache failures degrade to uncached operation.
	Cache *cache.Cache
}

// IsMarkdown reports whether path carries one of the given Markdown
// extensions.
func IsMarkdown(path string, extensions []string) bool {
	ext := filepath.Ext(path)
	for _, e := range extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// CheckFile reads and checks a single markdown file. A read failure aborts
// just this file and is returned to the caller.
func CheckFile(path string, opts Options) (linkcheck.Result, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return linkcheck.Result{}, err
	}
	return linkcheck.CheckDocument(content, path, linkcheck.Options{
		IncludeImages: opts.CheckImages,
	}), nil
}

// Walk checks all markdown files under root and calls the handler for each.
// It automatically:
// - Skips the .mdcheck cache directory and .git
// - Only processes files with a configured Markdown extension
// - Records per-file errors on the result instead of aborting the walk
// The walk order is filepath.WalkDir's lexical order, so results are
// deterministic for an unchanged tree.
func Walk(root string, opts Options, handler func(result FileResult) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			relativePath, _ := filepath.Rel(root, path)
			return handler(FileResult{
				Path:         path,
				RelativePath: relativePath,
				Err:          err,
			})
		}

		if d.IsDir() {
			name := d.Name()
			if name == cache.Dir || name == ".git" {
				return filepath.SkipDir
			}
			return nil
		}

		if !IsMarkdown(path, opts.Extensions) {
			return nil
		}

		relativePath, _ := filepath.Rel(root, path)

		info, err := d.Info()
		if err != nil {
			return handler(FileResult{
				Path:         path,
				RelativePath: relativePath,
				Err:          err,
			})
		}
		size := info.Size()
		mtime := info.ModTime().Unix()

		if opts.Cache != nil {
			if entry, ok := opts.Cache.Lookup(relativePath, size, mtime); ok {
				return handler(FileResult{
					Path:         path,
					RelativePath: relativePath,
					Result:       linkcheck.Result{Diagnostics: entry.Diagnostics},
					Cached:       true,
				})
			}
		}

		result, err := CheckFile(path, opts)
		if err != nil {
			return handler(FileResult{
				Path:         path,
				RelativePath: relativePath,
				Err:          err,
			})
		}

		if opts.Cache != nil {
			if len(result.Missing) == 0 && !result.Skipped {
				// Best effort; a full disk shouldn't fail the scan.
				_ = opts.Cache.Store(relativePath, size, mtime, cache.Entry{
					Diagnostics: result.Diagnostics,
				})
			} else {
				_ = opts.Cache.Invalidate(relativePath)
			}
		}

		return handler(FileResult{
			Path:         path,
			RelativePath: relativePath,
			Result:       result,
		})
	})
}
