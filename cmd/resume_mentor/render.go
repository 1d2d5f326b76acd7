package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/rendering"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a resume document as HTML, Markdown or LaTeX",
	Long: `Renders a resume document with one of the built-in templates.

Formats:
  html      standalone A4 page, the same page the PDF export uses
  markdown  plain text version of the HTML page
  latex     LaTeX source; --latex-template selects a custom text/template file`,
	RunE: runRender,
}

var (
	renderResume        string
	renderFormat        string
	renderTemplate      string
	renderLaTeXTemplate string
	renderOutput        string
)

func init() {
	renderCmd.Flags().StringVarP(&renderResume, "resume", "r", "", "Path to resume JSON file (required)")
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "Output format: html, markdown or latex")
	renderCmd.Flags().StringVarP(&renderTemplate, "template", "t", "", "Template id override (default: the document's template)")
	renderCmd.Flags().StringVar(&renderLaTeXTemplate, "latex-template", "", "Path to a LaTeX template file (latex format only)")
	renderCmd.Flags().StringVarP(&renderOutput, "out", "o", "", "Path to output file (default stdout)")
	_ = renderCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	doc, err := readResume(renderResume)
	if err != nil {
		return err
	}

	templateID := doc.TemplateID
	if renderTemplate != "" {
		templateID = renderTemplate
	}

	var out string
	switch strings.ToLower(renderFormat) {
	case "html":
		out, err = rendering.RenderHTML(doc, templateID)
	case "markdown", "md":
		out, err = rendering.RenderMarkdown(doc, templateID)
	case "latex", "tex":
		if renderLaTeXTemplate != "" {
			out, err = rendering.RenderLaTeXFile(doc, renderLaTeXTemplate)
		} else {
			out, err = rendering.RenderLaTeX(doc)
		}
	default:
		return fmt.Errorf("unknown format %q (want html, markdown or latex)", renderFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to render resume: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), renderOutput, []byte(out))
}
