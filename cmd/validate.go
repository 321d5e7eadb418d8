package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcusworks/deckherald/internal/library"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a card-art library directory",
	Long: `Validate checks that a card-art library directory is usable: a complete
library.toml manifest, background sheets that exist, and set directories
whose art files are named after well-formed card identifiers.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := args[0]

		// Check if path exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			return fmt.Errorf("library directory not found: %s", libraryPath)
		}

		// Create validator and run validation
		v := library.NewValidator(libraryPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %v", err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("✅ Library '%s' is valid.\n", libraryPath)
		} else {
			fmt.Printf("❌ Library '%s' has %d validation errors:\n", libraryPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, err)
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, warn)
			}
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(validateCmd)
}
