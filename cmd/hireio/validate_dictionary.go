package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hireio/hireio/internal/extract"
	"github.com/hireio/hireio/internal/schemas"
)

var validateDictSchemaPath string

var validateDictCmd = &cobra.Command{
	Use:   "validate-dictionary <dictionary-file>",
	Short: "Validate a skill dictionary file against its schema",
	Long:  `Check that a custom JSON skill dictionary conforms to schemas/dictionary.schema.json and loads cleanly before pointing the server at it.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidateDictionary,
}

func init() {
	validateDictCmd.Flags().StringVar(&validateDictSchemaPath, "schema", "", "Path to the dictionary schema (defaults to schemas/dictionary.schema.json)")
	rootCmd.AddCommand(validateDictCmd)
}

func runValidateDictionary(_ *cobra.Command, args []string) error {
	dictPath := args[0]

	schemaPath := validateDictSchemaPath
	if schemaPath == "" {
		schemaPath = schemas.ResolveSchemaPath(filepath.Join("schemas", "dictionary.schema.json"))
		if schemaPath == "" {
			return fmt.Errorf("could not locate dictionary.schema.json; pass --schema explicitly")
		}
	}

	if err := schemas.ValidateJSON(schemaPath, dictPath); err != nil {
		return fmt.Errorf("dictionary is invalid: %w", err)
	}

	dict, err := extract.LoadDictionary(dictPath)
	if err != nil {
		return fmt.Errorf("dictionary failed to load: %w", err)
	}

	fmt.Printf("%s is valid: %d skills, %d tags\n", dictPath, len(dict.Skills), len(dict.Tags))
	return nil
}
