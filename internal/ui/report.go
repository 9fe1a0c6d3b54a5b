package ui

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/mdcheck/internal/linkcheck"
)

// RenderFileReport renders one document's missing links and diagnostics.
// With a header the file path is shown first (directory mode); without,
// only the per-link lines are emitted (single-file mode). Returns "" when
// there is nothing to report.
func RenderFileReport(path string, result linkcheck.Result, header bool, dc *DisplayContext) string {
	if len(result.Missing) == 0 && len(result.Diagnostics) == 0 {
		return ""
	}

	var b strings.Builder

	if header {
		b.WriteString(fmt.Sprintf("%s %s\n",
			FilePath(path),
			Count(len(result.Missing), "broken link", "broken links")))
	}

	indent := ""
	if header {
		indent = "  "
	}

	for _, m := range result.Missing {
		line := fmt.Sprintf("%s%s %s %s", indent, SymbolError, m.Path, LineNum(m.Line))
		b.WriteString(dc.Truncate(line))
		b.WriteByte('\n')
	}

	for _, d := range result.Diagnostics {
		line := fmt.Sprintf("%s%s could not decode %q: %s", indent, SymbolWarning, d.Raw, d.Reason)
		b.WriteString(dc.Truncate(line))
		b.WriteByte('\n')
	}

	return b.String()
}

// RenderSummary renders the end-of-scan line for directory mode.
func RenderSummary(files, missing int) string {
	if missing == 0 {
		return Success(fmt.Sprintf("checked %d %s, no broken links",
			files, pluralize("file", files)))
	}
	return Error(fmt.Sprintf("checked %d %s, %d broken %s",
		files, pluralize("file", files),
		missing, pluralize("link", missing)))
}

// pluralize returns singular or plural form based on count
func pluralize(singular string, count int) string {
	if count == 1 {
		return singular
	}
	return singular + "s"
}
