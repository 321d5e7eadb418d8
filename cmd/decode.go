package cmd

import (
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcusworks/deckherald/internal/card"
	"github.com/arcusworks/deckherald/internal/deckcode"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [deck_code]",
	Short: "Decode a deck code and print the card list",
	Long: `Decode turns a "KCG-" deck code into its card identifiers and prints
the tally plus the full ordered list.

Known revisions of the encoding disagree on two details, exposed here as
policies:

  --padding  modulo (default) or legacy: how the padding descriptor maps
             to discarded trailing bits
  --trim     placeholder-first (default) or strict: how an unaligned
             digit string is shortened

Examples:
  deckherald decode KCG-YDqjwgKJkG
  deckherald decode --padding legacy KCG-gDqXC`,
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
			fmt.Println("No cards decoded.")
			return nil
		}

		fmt.Println(colorize.CyanString("Cards: ") +
			colorize.HiWhiteString("%d (%d distinct)", len(ids), len(entries)))
		for _, e := range entries {
			fmt.Printf("  %s x%d\n", colorize.HiWhiteString(e.Card.ID), e.Count)
		}

		// Get terminal width
		width, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || width <= 0 {
			width = 80 // Default if we can't get terminal width
		}

		fmt.Println(colorize.CyanString("Order:"))
		for _, line := range wrapText(strings.Join(ids, " "), width-2) {
			fmt.Println("  " + line)
		}

		return nil
	},
}

func init() {
	RootCmd.AddCommand(decodeCmd)
	addPolicyFlags(decodeCmd)
}

// addPolicyFlags registers the decoder policy flags on a command.
func addPolicyFlags(cmd *cobra.Command) {
	cmd.Flags().String("padding", "modulo", "padding-trim policy (modulo or legacy)")
	cmd.Flags().String("trim", "placeholder-first", "digit-trim policy (placeholder-first or strict)")
}

// decoderFromFlags builds a decoder from the policy flags.
func decoderFromFlags(cmd *cobra.Command) (*deckcode.Decoder, error) {
	var opts []deckcode.Option

	padding, _ := cmd.Flags().GetString("padding")
	switch padding {
	case "modulo", "":
	case "legacy":
		opts = append(opts, deckcode.WithPaddingPolicy(deckcode.PaddingLegacy))
	default:
		return nil, fmt.Errorf("unknown padding policy: %s", padding)
	}

	trim, _ := cmd.Flags().GetString("trim")
	switch trim {
	case "placeholder-first", "":
	case "strict":
		opts = append(opts, deckcode.WithTrimPolicy(deckcode.TrimStrict))
	default:
		return nil, fmt.Errorf("unknown trim policy: %s", trim)
	}

	return deckcode.NewDecoder(opts...), nil
}

// wrapText wraps text to a specified width
func wrapText(text string, width int) []string {
	// Ensure width is reasonable
	if width < 10 {
		width = 40 // Use a sensible default if width is too small
	}

	var result []string
	var currentLine string
	words := strings.Fields(text)

	if len(words) == 0 {
		return []string{""}
	}

	for _, word := range words {
		// Check if adding this word would exceed the width
		if len(currentLine) == 0 {
			// First word on the line, always add it
			currentLine = word
		} else if len(currentLine)+1+len(word) <= width {
			// Word fits on current line with a space
			currentLine += " " + word
		} else {
			// Word doesn't fit, start a new line
			result = append(result, currentLine)
			currentLine = word
		}
	}

	// Add the last line if not empty
	if currentLine != "" {
		result = append(result, currentLine)
	}

	return result
}
