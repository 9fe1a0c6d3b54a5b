// Package linkcheck finds links to local files that do not exist on disk.
//
// The pipeline for one document: parse the markdown, extract every link
// target in document order, drop targets that are full URLs, percent-decode
// the rest, resolve them against the document's directory, and probe the
// filesystem for each resolved path.
package linkcheck

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/aidanlsb/mdcheck/internal/parser"
)

// MissingLink is a local reference whose resolved path has no filesystem entry.
type MissingLink struct {
	// Path is the resolved filesystem path that was probed.
	Path string `json:"path"`
	// Raw is the target as written in the document.
	Raw string `json:"raw"`
	// Line is the 1-indexed line of the enclosing block.
	Line int `json:"line"`
}

// Diagnostic reports a link target that could not be decoded. The target is
// excluded from the missing-link computation; presentation is the caller's
// concern.
type Diagnostic struct {
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
	Line   int    `json:"line"`
}

// Result holds the outcome of checking one document. Missing preserves the
// pre-order document order of the corresponding links; nothing is deduplicated.
type Result struct {
	Missing     []MissingLink `json:"missing"`
	Diagnostics []Diagnostic  `json:"diagnostics,omitempty"`

	// Skipped is set when the document opted out via `mdcheck: false`.
	Skipped bool `json:"-"`
}

// Options controls the per-document pipeline.
type Options struct {
	// IncludeImages also checks image destinations.
	IncludeImages bool
	// IgnoreGlobs are path.Match patterns; raw targets matching any of them
	// are not checked. Merged with the document's own mdcheck_ignore globs.
	IgnoreGlobs []string
}

// CheckDocument runs the full pipeline on one document. content is the
// document text; docPath is where the document lives on disk and supplies the
// base directory for relative targets. The document itself is never read here.
func CheckDocument(content []byte, docPath string, opts Options) Result {
	body := content
	startLine := 1
	ignore := opts.IgnoreGlobs

	fm, fmErr := parser.ParseFrontmatter(string(content))
	if fm != nil {
		// The block is never treated as document body, even when its YAML
		// is broken; directives are only trusted when it parsed.
		body = []byte(fm.Body)
		startLine = fm.BodyStartLine()
		if fmErr == nil {
			if fm.Skip() {
				return Result{Skipped: true}
			}
			ignore = append(ignore, fm.IgnoreGlobs...)
		}
	}

	doc := parser.Parse(body)
	links := parser.ExtractLinks(doc, body, parser.ExtractOptions{
		IncludeImages: opts.IncludeImages,
		StartLine:     startLine,
	})

	baseDir := filepath.Dir(docPath)

	var result Result
	for _, link := range links {
		if matchesAny(ignore, link.Destination) {
			continue
		}
		if IsExternal(link.Destination) {
			continue
		}

		target, _ := splitFragment(link.Destination)
		if target == "" {
			// Pure fragment ("#section"); anchors aren't validated.
			continue
		}

		resolved, err := ResolveLocal(target, baseDir)
		if err != nil {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Raw:    link.Destination,
				Reason: err.Error(),
				Line:   link.Line,
			})
			continue
		}

		if !entryExists(resolved) {
			result.Missing = append(result.Missing, MissingLink{
				Path: resolved,
				Raw:  link.Destination,
				Line: link.Line,
			})
		}
	}

	return result
}

// IsExternal reports whether a raw target is a full URL (absolute URI with a
// scheme). External targets are never checked. Note that authority-less URIs
// like mailto: count as external, same as the scheme-only rule in RFC 3986.
func IsExternal(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}

// ResolveLocal percent-decodes a local reference (fragment already stripped)
// and resolves it to a filesystem path: absolute targets are used as-is,
// relative ones are joined onto baseDir.
func ResolveLocal(target, baseDir string) (string, error) {
	decoded, err := url.PathUnescape(target)
	if err != nil {
		return "", err
	}
	if !utf8.ValidString(decoded) {
		return "", fmt.Errorf("decoded target is not valid UTF-8")
	}
	if filepath.IsAbs(decoded) {
		return decoded, nil
	}
	return filepath.Join(baseDir, decoded), nil
}

// splitFragment splits "file.md#section" into path and fragment parts.
func splitFragment(raw string) (target, fragment string) {
	target, fragment, _ = strings.Cut(raw, "#")
	return target, fragment
}

// entryExists probes for any filesystem entry at p. Lstat, not Stat: a
// dangling symlink is still an entry.
func entryExists(p string) bool {
	_, err := os.Lstat(p)
	return err == nil
}

func matchesAny(globs []string, raw string) bool {
	for _, g := range globs {
		if ok, err := path.Match(g, raw); err == nil && ok {
			return true
		}
	}
	return false
}
