package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcusworks/deckherald/internal/config"
	"github.com/arcusworks/deckherald/internal/library"
)

// libraryCmd represents the library command group
var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage your card-art library",
	Long:  `Commands for managing the card-art library used to render deck sheets.`,
}

// libraryListCmd represents the library ls command
var libraryListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the sets present in your card-art library",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			return
		}

		// Check if the library exists
		if _, err := os.Stat(cfg.LibraryPath); os.IsNotExist(err) {
			fmt.Printf("Card-art library at %s does not exist.\n", cfg.LibraryPath)
			fmt.Println("Run 'deckherald library init' to create it.")
			return
		}

		lib, err := library.Load(cfg.LibraryPath)
		if err != nil {
			fmt.Printf("Error loading library: %v\n", err)
			return
		}

		fmt.Printf("Library: %s (%s)\n", lib.Manifest.Library.Name, cfg.LibraryPath)

		entries, err := os.ReadDir(cfg.LibraryPath)
		if err != nil {
			fmt.Printf("Error reading library directory: %v\n", err)
			return
		}

		sets := 0
		for _, entry := range entries {
			if !entry.IsDir() || entry.Name() == library.SheetDir {
				continue
			}

			files, err := os.ReadDir(filepath.Join(cfg.LibraryPath, entry.Name()))
			if err != nil {
				fmt.Printf("Error reading set %s: %v\n", entry.Name(), err)
				continue
			}

			count := 0
			for _, file := range files {
				if !file.IsDir() {
					count++
				}
			}

			fmt.Printf("  %s (%d cards)\n", entry.Name(), count)
			sets++
		}

		if sets == 0 {
			fmt.Println("No set directories found.")
			fmt.Println("You can add card art by copying it to:", cfg.LibraryPath)
		}
	},
}

// libraryInitCmd represents the library init command
var libraryInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the card-art library",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			fmt.Printf("Error initializing config: %v\n", err)
			return
		}

		// Create the library directory and sheet directory
		sheetDir := filepath.Join(cfg.LibraryPath, library.SheetDir)
		if err := os.MkdirAll(sheetDir, 0755); err != nil {
			fmt.Printf("Error creating library: %v\n", err)
			return
		}

		// Write a starter manifest if none exists
		manifestPath := filepath.Join(cfg.LibraryPath, "library.toml")
		if _, err := os.Stat(manifestPath); os.IsNotExist(err) {
			starter := `[library]
id = "default"
name = "Default Library"
version = "1.0"
game = "kcg"

[sheets]
`
			if err := os.WriteFile(manifestPath, []byte(starter), 0644); err != nil {
				fmt.Printf("Error writing library.toml: %v\n", err)
				return
			}
		}

		fmt.Println("Card-art library initialized at:", cfg.LibraryPath)
		fmt.Println("Add card art as <library>/<set>/<card-id>.png and background sheets under", sheetDir)
		fmt.Println("Config file:", config.GetConfigFilePath())
	},
}

func init() {
	RootCmd.AddCommand(libraryCmd)
	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(libraryInitCmd)
}
