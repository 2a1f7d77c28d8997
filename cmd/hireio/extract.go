package main

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hireio/hireio/internal/extract"
	"github.com/hireio/hireio/internal/observability"
)

var (
	extractDictPath string
	extractAsJSON   bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <resume-file>",
	Short: "Extract a structured profile from a resume document",
	Long:  `Run the resume feature extractor on a local PDF, DOCX, DOC, or text file and print the extracted profile.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractDictPath, "dictionary", "", "Path to a JSON skill dictionary (defaults to the built-in tables)")
	extractCmd.Flags().BoolVar(&extractAsJSON, "json", false, "Print the profile as JSON")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, args []string) error {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	dict, err := extract.LoadDictionary(extractDictPath)
	if err != nil {
		return fmt.Errorf("failed to load dictionary: %w", err)
	}

	mimeType := mime.TypeByExtension(filepath.Ext(path))
	profile, err := extract.NewExtractor(dict).Extract(data, mimeType, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if extractAsJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(profile)
	}

	observability.NewPrinter(os.Stdout).PrintProfile(profile)
	return nil
}
