package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arcusworks/deckherald/internal/card"
	"github.com/arcusworks/deckherald/internal/config"
	"github.com/arcusworks/deckherald/internal/library"
	"github.com/arcusworks/deckherald/internal/render"
)

var renderCmd = &cobra.Command{
	Use:   "render [deck_code]",
	Short: "Render a deck code to a PNG sheet",
	Long: `Render decodes a deck code and composes a deck-sheet image: card art
from your library laid out on a background sheet, with identifiers and
copy counts. Cards missing from the library render as placeholders.

You can specify a library using the --library flag; if none is given,
the library from your config is used.

Examples:
  deckherald render KCG-YDqjwgKJkG
  deckherald render --output deck.png --library ./my-library KCG-YDqjwgKJkG`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decoder, err := decoderFromFlags(cmd)
		if err != nil {
			return err
		}

		ids, err := decoder.Decode(args[0])
		if err != nil {
			return err
		}
		entries := card.Tally(ids)
		if len(entries) == 0 {
			return fmt.Errorf("deck code decodes to no cards")
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %v", err)
		}

		libraryPath, _ := cmd.Flags().GetString("library")
		if libraryPath == "" {
			libraryPath = cfg.LibraryPath
		}
		lib, err := library.Load(libraryPath)
		if err != nil {
			return fmt.Errorf("error loading library: %v", err)
		}

		renderer := render.New(lib, render.Options{
			CardWidth:  cfg.Render.CardWidth,
			CardHeight: cfg.Render.CardHeight,
			Gutter:     cfg.Render.Gutter,
			CacheDir:   config.GetCacheDir(),
		})

		img, err := renderer.Compose(entries)
		if err != nil {
			return fmt.Errorf("error composing sheet: %v", err)
		}
		data, err := render.EncodePNG(img)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if err := os.WriteFile(output, data, 0644); err != nil {
			return fmt.Errorf("error writing %s: %v", output, err)
		}

		fmt.Printf("Wrote %s (%d cards, %d distinct)\n", output, len(ids), len(entries))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)
	addPolicyFlags(renderCmd)
	renderCmd.Flags().StringP("output", "o", "deck.png", "Output PNG path")
	renderCmd.Flags().StringP("library", "l", "", "Card-art library path (defaults to config)")
}
