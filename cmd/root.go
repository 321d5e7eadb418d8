package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "deckherald",
	Short: "Decode KCG deck codes and render deck sheets",
	Long: `Deckherald decodes the compact "KCG-" deck-code format into card lists
and renders them as composite deck-sheet images. It can run as a chat bot
that answers deck codes with rendered sheets, or be used directly from the
command line.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
