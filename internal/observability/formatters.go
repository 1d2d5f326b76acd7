// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/navinkumarg9/pro-resume-mentor/internal/export"
	"github.com/navinkumarg9/pro-resume-mentor/internal/library"
	"github.com/navinkumarg9/pro-resume-mentor/internal/rendering"
	"github.com/navinkumarg9/pro-resume-mentor/internal/scoring"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(title, inner), inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis outputs the score, its label, the per-category points and the suggestions.
func (p *Printer) PrintAnalysis(rows []scoring.CategoryScore) {
	result := scoring.Summarize(rows)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Score:  %d / %d (%s)\n\n", result.Score, scoring.MaxScore, scoring.Label(result.Score))

	for _, row := range rows {
		mark := "✓"
		if row.Awarded < row.Max {
			mark = "·"
		}
		label := row.Category
		if row.Bonus {
			label += " (bonus)"
		}
		fmt.Fprintf(&sb, "%s %-22s %3d / %d\n", mark, label, row.Awarded, row.Max)
	}

	if len(result.Suggestions) > 0 {
		sb.WriteString("\nSuggestions:\n")
		for _, s := range result.Suggestions {
			fmt.Fprintf(&sb, "  • %s\n", s)
		}
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResume outputs a short summary of the document.
func (p *Printer) PrintResume(doc types.Resume) {
	name := doc.PersonalInfo.FullName
	if name == "" {
		name = rendering.NamePlaceholder
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:      %s\n", name)
	fmt.Fprintf(&sb, "Template:  %s\n\n", doc.TemplateID)

	counts := []struct {
		label string
		n     int
	}{
		{"Experience", len(doc.Experience)},
		{"Education", len(doc.Education)},
		{"Skills", len(doc.Skills)},
		{"Projects", len(doc.Projects)},
		{"Certifications", len(doc.Certifications)},
		{"Languages", len(doc.Languages)},
		{"Interests", len(doc.Interests)},
		{"Custom sections", len(doc.CustomSections)},
	}
	for _, c := range counts {
		if c.n > 0 {
			fmt.Fprintf(&sb, "%-16s %d\n", c.label+":", c.n)
		}
	}

	count := min(len(doc.Experience), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\nRecent roles:\n")
	}
	for i := 0; i < count; i++ {
		e := doc.Experience[i]
		fmt.Fprintf(&sb, "  • %s, %s\n", e.Position, e.Company)
	}
	if len(doc.Experience) > maxItemsToShow {
		fmt.Fprintf(&sb, "  ... and %d more\n", len(doc.Experience)-maxItemsToShow)
	}

	p.printBox("RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTemplates outputs the template registry.
func (p *Printer) PrintTemplates(templates []rendering.Template) {
	var sb strings.Builder
	for _, t := range templates {
		fmt.Fprintf(&sb, "%-13s %s\n", t.ID, t.Name)
	}
	p.printBox(fmt.Sprintf("TEMPLATES (%d)", len(templates)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintLibrary outputs the saved resumes.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintLibrary(entries []library.Summary) {
	if len(entries) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %s │\n", pad("No saved resumes", boxWidth-4))
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	for i, e := range entries {
		fmt.Fprintf(&sb, "%s\n", e.Name)
		fmt.Fprintf(&sb, "  id: %s\n", e.ID)
		fmt.Fprintf(&sb, "  updated: %s\n", e.UpdatedAt.Format("2006-01-02 15:04"))
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("SAVED RESUMES (%d)", len(entries)), sb.String())
}

// PrintExport outputs the result of a PDF export.
func (p *Printer) PrintExport(res *export.Result, path string) {
	if res == nil {
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "File:      %s\n", path)
	fmt.Fprintf(&sb, "Mode:      %s\n", res.Mode)
	fmt.Fprintf(&sb, "Pages:     %d\n", res.Pages)
	fmt.Fprintf(&sb, "Size:      %d bytes\n", len(res.PDF))
	fmt.Fprintf(&sb, "Duration:  %s", res.Duration.Round(1e6))
	p.printBox("PDF EXPORTED", sb.String())
}
