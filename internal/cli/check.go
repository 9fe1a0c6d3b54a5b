package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/aidanlsb/mdcheck/internal/cache"
	"github.com/aidanlsb/mdcheck/internal/linkcheck"
	"github.com/aidanlsb/mdcheck/internal/scan"
	"github.com/aidanlsb/mdcheck/internal/ui"
)

// errBrokenLinks signals a non-zero exit without an extra error line; the
// report itself is the message.
var errBrokenLinks = errors.New("broken links found")

// fileReport is the per-file JSON output shape.
type fileReport struct {
	Path        string                  `json:"path"`
	Missing     []linkcheck.MissingLink `json:"missing"`
	Diagnostics []linkcheck.Diagnostic  `json:"diagnostics,omitempty"`
	Cached      bool                    `json:"cached,omitempty"`
	Error       string                  `json:"error,omitempty"`
}

// checkReport is the top-level JSON output shape. Files carries only files
// with findings or errors.
type checkReport struct {
	Files        []fileReport `json:"files"`
	FilesChecked int          `json:"files_checked"`
	TotalMissing int          `json:"total_missing"`
}

func runCheck(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("`%s` not found", src)
		}
		return err
	}

	if info.IsDir() {
		return checkDirectory(src)
	}
	return checkSingleFile(src)
}

func checkSingleFile(src string) error {
	if !scan.IsMarkdown(src, cfg.Extensions) {
		fmt.Fprintln(os.Stderr, ui.Warningf("`%s` does not appear to be a Markdown file, skipping", src))
		return nil
	}

	result, err := scan.CheckFile(src, scanOptions(nil))
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", src, err)
	}

	if jsonOutput {
		report := checkReport{
			Files:        []fileReport{},
			FilesChecked: 1,
			TotalMissing: len(result.Missing),
		}
		// Same rule as directory scans: a clean file contributes no entry.
		if len(result.Missing) > 0 || len(result.Diagnostics) > 0 {
			report.Files = append(report.Files, fileReport{Path: src, Missing: result.Missing, Diagnostics: result.Diagnostics})
		}
		outputSuccess(report)
	} else {
		dc := ui.NewDisplayContext()
		if len(result.Missing) > 0 {
			fmt.Fprintln(os.Stderr, "The following linked files cannot be found:")
		}
		if out := ui.RenderFileReport(src, result, false, dc); out != "" {
			fmt.Print(out)
		}
	}

	if len(result.Missing) > 0 {
		return errBrokenLinks
	}
	return nil
}

func checkDirectory(root string) error {
	var scanCache *cache.Cache
	if cfg.Cache && !noCache {
		var err error
		scanCache, err = cache.Open(root)
		if err != nil {
			// Degrade to an uncached scan.
			fmt.Fprintln(os.Stderr, ui.Warningf("cache unavailable: %v", err))
			scanCache = nil
		} else {
			defer scanCache.Close()
		}
	}

	dc := ui.NewDisplayContext()
	report := checkReport{Files: []fileReport{}}
	var fileCount, errCount int
	headerPrinted := false

	err := scan.Walk(root, scanOptions(scanCache), func(r scan.FileResult) error {
		if r.Err != nil {
			errCount++
			if jsonOutput {
				report.Files = append(report.Files, fileReport{Path: r.RelativePath, Error: r.Err.Error()})
			} else {
				fmt.Fprintln(os.Stderr, ui.Warningf("`%s` could not be read, skipping: %v", r.RelativePath, r.Err))
			}
			return nil
		}

		fileCount++
		report.TotalMissing += len(r.Result.Missing)

		if jsonOutput {
			if len(r.Result.Missing) > 0 || len(r.Result.Diagnostics) > 0 {
				report.Files = append(report.Files, fileReport{
					Path:        r.RelativePath,
					Missing:     r.Result.Missing,
					Diagnostics: r.Result.Diagnostics,
					Cached:      r.Cached,
				})
			}
			return nil
		}

		if out := ui.RenderFileReport(r.RelativePath, r.Result, true, dc); out != "" {
			if headerPrinted {
				fmt.Println()
			}
			headerPrinted = true
			fmt.Print(out)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to scan %s: %w", root, err)
	}

	if jsonOutput {
		report.FilesChecked = fileCount
		outputSuccess(report)
	} else {
		if headerPrinted {
			fmt.Println()
		}
		fmt.Println(ui.RenderSummary(fileCount, report.TotalMissing))
	}

	if report.TotalMissing > 0 || errCount > 0 {
		return errBrokenLinks
	}
	return nil
}

// scanOptions builds scan options from the loaded config and flags.
func scanOptions(scanCache *cache.Cache) scan.Options {
	return scan.Options{
		Extensions:  cfg.Extensions,
		CheckImages: cfg.CheckImages || withImages,
		Cache:       scanCache,
	}
}
