package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-bomber/internal/catalog"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "Print the level catalog",
	Long:  `Shows every level with the power-up it grants and its enemy roster.`,
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		printLevels(os.Stdout, catalog.Default())
	},
}

func printLevels(w io.Writer, c *catalog.Catalog) {
	fmt.Fprintf(w, "  %-5s  %-13s  %-7s  %s\n", "Level", "Power", "Size", "Enemies")
	fmt.Fprintf(w, "  %-5s  %-13s  %-7s  %s\n", "-----", "-----", "----", "-------")
	for i := 1; i <= c.Len(); i++ {
		def, _ := c.Lookup(i)
		size := fmt.Sprintf("%dx%d", def.Width, def.Height)
		fmt.Fprintf(w, "  %-5d  %-13s  %-7s  %s\n", i, def.GrantedPower, size, def.Summary())
	}
}
