package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter represents parsed YAML frontmatter.
type Frontmatter struct {
	// Check is the value of the `mdcheck` key; nil when absent. `mdcheck:
	// false` excludes the whole document from checking.
	Check *bool

	// IgnoreGlobs are patterns from `mdcheck_ignore`. Link targets matching
	// any of them are not checked.
	IgnoreGlobs []string

	// Raw is the raw frontmatter content.
	Raw string

	// EndLine is the 1-indexed line of the closing delimiter.
	EndLine int

	// Body is the document content after the closing delimiter.
	Body string
}

// Skip reports whether the document opted out of checking.
func (f *Frontmatter) Skip() bool {
	return f != nil && f.Check != nil && !*f.Check
}

// BodyStartLine returns the 1-indexed line the body begins at.
func (f *Frontmatter) BodyStartLine() int {
	if f == nil {
		return 1
	}
	return f.EndLine + 1
}

// FrontmatterBounds returns the opening and closing frontmatter line indices.
// It only detects frontmatter when the first line is '---'.
// If frontmatter is present but unclosed, endLine is -1.
func FrontmatterBounds(lines []string) (startLine int, endLine int, ok bool) {
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return 0, -1, false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return 0, i, true
		}
	}

	return 0, -1, true
}

// ParseFrontmatter parses YAML frontmatter from markdown content.
// Returns nil if no frontmatter is found (including the unclosed case, where
// the leading '---' is just a thematic break as far as we're concerned).
// When the block is delimited but its YAML does not parse, the bounds and
// body are still returned alongside the error: the block is frontmatter
// either way and must stay out of the document body, only its directives are
// unusable.
func ParseFrontmatter(content string) (*Frontmatter, error) {
	lines := strings.Split(content, "\n")

	_, endLine, ok := FrontmatterBounds(lines)
	if !ok || endLine == -1 {
		return nil, nil
	}

	raw := strings.Join(lines[1:endLine], "\n")

	fm := &Frontmatter{
		Raw:     raw,
		EndLine: endLine + 1,
		Body:    strings.Join(lines[endLine+1:], "\n"),
	}

	var directives struct {
		Check  *bool    `yaml:"mdcheck"`
		Ignore []string `yaml:"mdcheck_ignore"`
	}
	if err := yaml.Unmarshal([]byte(raw), &directives); err != nil {
		return fm, err
	}

	fm.Check = directives.Check
	fm.IgnoreGlobs = directives.Ignore
	return fm, nil
}
