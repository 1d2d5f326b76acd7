package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/rendering"
	"github.com/navinkumarg9/pro-resume-mentor/internal/store"
	"github.com/navinkumarg9/pro-resume-mentor/internal/types"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create a blank resume document",
	Long:  "Writes a blank resume document. Name and template can be set up front; everything else is edited with apply.",
	RunE:  runNew,
}

var (
	newName     string
	newTemplate string
	newOutput   string
)

func init() {
	newCmd.Flags().StringVarP(&newName, "name", "n", "", "Full name of the candidate")
	newCmd.Flags().StringVarP(&newTemplate, "template", "t", "", "Template id (see templates)")
	newCmd.Flags().StringVarP(&newOutput, "out", "o", "", "Path to output resume JSON file (default stdout)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	if newTemplate != "" && !rendering.Known(newTemplate) {
		return fmt.Errorf("unknown template %q", newTemplate)
	}

	s := store.New(store.WithResume(newResume()))
	if newName != "" {
		s.Dispatch(store.UpdatePersonalInfo{Patch: types.PersonalInfoPatch{FullName: types.Ptr(newName)}})
	}
	if newTemplate != "" {
		s.Dispatch(store.ChangeTemplate{TemplateID: newTemplate})
	}
	return writeJSON(cmd.OutOrStdout(), newOutput, s.Resume())
}
