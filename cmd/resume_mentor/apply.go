package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/scoring"
	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply edit commands to a resume document",
	Long: `Replays a JSON array of command envelopes ({"type": "...", "payload": {...}}) through the
same reducer the local server uses. Commands that reference an unknown id change nothing.

The result is written back to --resume unless --out is given.`,
	RunE: runApply,
}

var (
	applyResume   string
	applyCommands string
	applyOutput   string
	applyAnalyze  bool
)

func init() {
	applyCmd.Flags().StringVarP(&applyResume, "resume", "r", "", "Path to resume JSON file (default: start from a blank resume)")
	applyCmd.Flags().StringVarP(&applyCommands, "commands", "c", "", "Path to command list JSON file (required)")
	applyCmd.Flags().StringVarP(&applyOutput, "out", "o", "", "Path to output resume JSON file (default: --resume, or stdout)")
	applyCmd.Flags().BoolVar(&applyAnalyze, "analyze", false, "Print the analysis of the result")

	if err := applyCmd.MarkFlagRequired("commands"); err != nil {
		panic(fmt.Sprintf("failed to mark commands flag as required: %v", err))
	}

	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, _ []string) error {
	doc, err := readResume(applyResume)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(applyCommands)
	if err != nil {
		return fmt.Errorf("failed to read commands file: %w", err)
	}
	cmds, err := store.DecodeCommands(data)
	if err != nil {
		return err
	}

	s := store.New(store.WithResume(doc))
	st := s.DispatchAll(cmds)
	slog.Debug("commands applied", "count", len(cmds), "version", st.Version, "document_version", st.DocumentVersion)

	out := applyOutput
	if out == "" {
		out = applyResume
	}
	if err := writeJSON(cmd.OutOrStdout(), out, st.Resume); err != nil {
		return err
	}
	if out != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Applied %d commands to %s\n", len(cmds), out)
	}
	if applyAnalyze {
		printer(cmd).PrintAnalysis(scoring.Breakdown(st.Resume))
	}
	return nil
}
