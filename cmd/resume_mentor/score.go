package main

import (
	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/observability"
	"github.com/navinkumarg9/pro-resume-mentor/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume document and list suggestions",
	RunE:  runScore,
}

var (
	scoreResume string
	scoreJSON   bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume JSON file (required)")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the analysis and breakdown as JSON")
	_ = scoreCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	doc, err := readResume(scoreResume)
	if err != nil {
		return err
	}

	rows := scoring.Breakdown(doc)
	if scoreJSON {
		result := scoring.Summarize(rows)
		return writeJSON(cmd.OutOrStdout(), "", map[string]any{
			"analysis":   result,
			"label":      scoring.Label(result.Score),
			"categories": rows,
		})
	}

	p := printer(cmd)
	p.PrintResume(doc)
	p.PrintAnalysis(rows)
	return nil
}

func printer(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.OutOrStdout())
}
