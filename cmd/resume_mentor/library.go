package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage saved resumes",
	Long:  "Saved resumes live in the storage backend selected by --storage, RESUME_STORAGE_URL or the config file (memory:, file://, sqlite://, postgres://, redis://).",
}

var libraryListJSON bool

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved resumes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		lib, kv, err := openLibrary(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		entries, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}
		if libraryListJSON {
			return writeJSON(cmd.OutOrStdout(), "", entries)
		}
		printer(cmd).PrintLibrary(entries)
		return nil
	},
}

var (
	librarySaveName   string
	librarySaveResume string
)

var librarySaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save a resume document under a name",
	Long:  "Saves the document under --name. Saving under an existing name replaces that entry.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		doc, err := readResume(librarySaveResume)
		if err != nil {
			return err
		}
		lib, kv, err := openLibrary(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		entry, err := lib.Save(cmd.Context(), librarySaveName, doc)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved %q (%s)\n", entry.Name, entry.ID)
		return nil
	},
}

var libraryLoadOutput string

var libraryLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Write a saved resume document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, kv, err := openLibrary(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		doc, err := lib.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), libraryLoadOutput, doc)
	},
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved resume",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib, kv, err := openLibrary(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		if err := lib.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

var libraryImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge a savedResumes export into the library",
	Long:  "Merges a JSON array of saved resumes, as exported by the browser editor or library export. Entries are matched by name; nothing is written unless every entry is valid.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blob, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read import file: %w", err)
		}
		lib, kv, err := openLibrary(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		report, err := lib.Import(cmd.Context(), blob)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d new, %d updated\n", report.Added, report.Updated)
		return nil
	},
}

var libraryExportOutput string

var libraryExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole library as a savedResumes JSON array",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		lib, kv, err := openLibrary(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = kv.Close() }()

		blob, err := lib.Export(cmd.Context())
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), libraryExportOutput, append(blob, '\n'))
	},
}

func init() {
	libraryListCmd.Flags().BoolVar(&libraryListJSON, "json", false, "Print summaries as JSON")

	librarySaveCmd.Flags().StringVarP(&librarySaveName, "name", "n", "", "Name to save under (required)")
	librarySaveCmd.Flags().StringVarP(&librarySaveResume, "resume", "r", "", "Path to resume JSON file (required)")
	_ = librarySaveCmd.MarkFlagRequired("name")
	_ = librarySaveCmd.MarkFlagRequired("resume")

	libraryLoadCmd.Flags().StringVarP(&libraryLoadOutput, "out", "o", "", "Path to output resume JSON file (default stdout)")
	libraryExportCmd.Flags().StringVarP(&libraryExportOutput, "out", "o", "", "Path to output JSON file (default stdout)")

	libraryCmd.AddCommand(libraryListCmd, librarySaveCmd, libraryLoadCmd, libraryDeleteCmd, libraryImportCmd, libraryExportCmd)
	rootCmd.AddCommand(libraryCmd)
}
