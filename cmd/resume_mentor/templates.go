package main

import (
	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/rendering"
)

var templatesJSON bool

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if templatesJSON {
			return writeJSON(cmd.OutOrStdout(), "", rendering.Templates())
		}
		printer(cmd).PrintTemplates(rendering.Templates())
		return nil
	},
}

func init() {
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Print the registry as JSON")
	rootCmd.AddCommand(templatesCmd)
}
