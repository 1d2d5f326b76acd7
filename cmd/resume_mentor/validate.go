package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/navinkumarg9/pro-resume-mentor/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a JSON file against a JSON Schema",
	Long:  "Validates a resume document against the built-in resume schema, or any JSON file against the schema given with --schema.",
	RunE:  runValidate,
}

var (
	validateJSONPath   string
	validateSchemaPath string
)

// errValidationFailed makes the command exit non-zero after the report was printed.
var errValidationFailed = errors.New("validation failed")

func init() {
	validateCmd.Flags().StringVarP(&validateJSONPath, "json", "j", "", "Path to JSON file (required)")
	validateCmd.Flags().StringVarP(&validateSchemaPath, "schema", "s", "", "Path to JSON Schema file (default: built-in resume schema)")

	if err := validateCmd.MarkFlagRequired("json"); err != nil {
		panic(fmt.Sprintf("failed to mark json flag as required: %v", err))
	}

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	var err error
	if validateSchemaPath != "" {
		err = schemas.ValidateJSON(validateSchemaPath, validateJSONPath)
	} else {
		err = schemas.ValidateResumeFile(validateJSONPath)
	}

	out := cmd.OutOrStdout()
	if err == nil {
		fmt.Fprintf(out, "Validation passed: %s\n", validateJSONPath)
		return nil
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Fprintf(out, "Validation failed: %s\n", validateJSONPath)
		for i, fe := range validationErr.Errors {
			fmt.Fprintf(out, "  %d. %s: %s\n", i+1, fe.Field, fe.Message)
		}
		return errValidationFailed
	}
	return err
}
