package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/aidanlsb/mdcheck/internal/linkcheck"
)

func plainContext() *DisplayContext {
	return NewDisplayContextWithWidth(200)
}

func TestRenderFileReportEmpty(t *testing.T) {
	DisableColor()
	out := RenderFileReport("docs/guide.md", linkcheck.Result{}, true, plainContext())
	if out != "" {
		t.Errorf("clean result should render nothing, got %q", out)
	}
}

func TestRenderFileReportWithHeader(t *testing.T) {
	DisableColor()
	result := linkcheck.Result{
		Missing: []linkcheck.MissingLink{
			{Path: "/tmp/docs/assets/diagram.png", Raw: "./assets/diagram.png", Line: 3},
		},
		Diagnostics: []linkcheck.Diagnostic{
			{Raw: "my%zzfile.md", Reason: "invalid URL escape \"%zz\"", Line: 9},
		},
	}

	out := RenderFileReport("docs/guide.md", result, true, plainContext())

	if !strings.Contains(out, "docs/guide.md (1 broken link)") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, SymbolError+" /tmp/docs/assets/diagram.png") {
		t.Errorf("missing path line: %q", out)
	}
	if !strings.Contains(out, SymbolWarning+" could not decode \"my%zzfile.md\"") {
		t.Errorf("missing diagnostic line: %q", out)
	}
}

func TestRenderFileReportWithoutHeader(t *testing.T) {
	DisableColor()
	result := linkcheck.Result{
		Missing: []linkcheck.MissingLink{{Path: "/a.md", Line: 1}, {Path: "/b.md", Line: 2}},
	}

	out := RenderFileReport("guide.md", result, false, plainContext())

	if strings.Contains(out, "guide.md") {
		t.Errorf("single-file mode should not print the file name: %q", out)
	}
	if lines := strings.Count(out, "\n"); lines != 2 {
		t.Errorf("expected one line per missing path, got %q", out)
	}
	if idxA, idxB := strings.Index(out, "/a.md"), strings.Index(out, "/b.md"); idxA < 0 || idxB < 0 || idxA > idxB {
		t.Errorf("report order broken: %q", out)
	}
}

func TestRenderSummary(t *testing.T) {
	DisableColor()
	tests := []struct {
		files, missing int
		want           string
	}{
		{3, 0, SymbolSuccess + " checked 3 files, no broken links"},
		{1, 0, SymbolSuccess + " checked 1 file, no broken links"},
		{2, 1, SymbolError + " checked 2 files, 1 broken link"},
		{2, 5, SymbolError + " checked 2 files, 5 broken links"},
	}
	for _, tt := range tests {
		if got := RenderSummary(tt.files, tt.missing); got != tt.want {
			t.Errorf("RenderSummary(%d, %d) = %q, want %q", tt.files, tt.missing, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	dc := NewDisplayContextWithWidth(10)
	if got := dc.Truncate("short"); got != "short" {
		t.Errorf("short string altered: %q", got)
	}
	long := "0123456789abcdef"
	got := dc.Truncate(long)
	if w := ansi.StringWidth(got); w != 10 {
		t.Errorf("truncated to width %d: %q", w, got)
	}
	if !strings.Contains(got, "…") {
		t.Errorf("missing ellipsis: %q", got)
	}
}

func TestTruncateMeasuresDisplayWidth(t *testing.T) {
	dc := NewDisplayContextWithWidth(10)

	styled := "\x1b[38;5;39m0123456789\x1b[0m"
	// Escape sequences carry no width; a string that fits on screen is
	// left alone even though it has far more bytes than the terminal.
	if got := dc.Truncate(styled); got != styled {
		t.Errorf("styled-but-fitting string altered: %q", got)
	}

	long := "\x1b[38;5;39m0123456789abcdef\x1b[0m"
	got := dc.Truncate(long)
	if w := ansi.StringWidth(got); w > 10 {
		t.Errorf("display width %d exceeds terminal: %q", w, got)
	}
	if strings.Contains(strings.TrimSuffix(got, "\x1b[0m"), "\x1b[0") && !strings.Contains(got, "…") {
		t.Errorf("unexpected truncation result: %q", got)
	}
}
