package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Faultbox/merchkit/internal/colorfill"
	"github.com/Faultbox/merchkit/internal/fonts"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "List the garment colors and text fonts",
	Args:  cobra.NoArgs,
	RunE:  runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	fmt.Println("Garment colors:")
	for i, hex := range cfg.Editor.Palette {
		c, err := colorfill.ParseHex(hex)
		if err != nil {
			fmt.Printf("  %d  %-8s (invalid: %v)\n", i, hex, err)
			continue
		}
		fmt.Printf("  %d  %-8s rgb(%d, %d, %d)\n", i, hex, c.R, c.G, c.B)
	}

	fmt.Println("\nFonts:")
	for _, name := range cfg.Editor.Fonts {
		if face := fonts.Resolve(name); face != name {
			fmt.Printf("  %-16s -> %s\n", name, face)
			continue
		}
		fmt.Printf("  %s\n", name)
	}
	return nil
}
