package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Faultbox/merchkit/internal/design"
	"github.com/Faultbox/merchkit/internal/overlay"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [design]",
	Short: "List the overlays of a design and the records it drops",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	d, err := design.Load(args[0])
	if err != nil {
		return err
	}
	snap, report := d.Snapshot()

	fmt.Println("Design")
	fmt.Println("======")
	if d.Name != "" {
		fmt.Printf("Name:      %s\n", d.Name)
	}
	fmt.Printf("Garment:   %s\n", d.Garment)
	fmt.Printf("Color:     %s\n", d.BaseColor())
	fmt.Printf("Space:     %s\n", spaceName(d.Space))
	fmt.Printf("Thumbnail: %t\n\n", d.Thumbnail != "")

	fmt.Printf("Overlays (%d):\n", snap.Len())
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tKIND\tPOSITION\tROTATION\tSCALE\tDETAIL")
	for i, o := range snap.Items() {
		fmt.Fprintf(w, "  %d\t%s\t(%.3f, %.3f)\t%.1f\t%.2f\t%s\n",
			i, o.Kind, o.Position.U, o.Position.V, o.Rotation, o.Scale, detail(o))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !report.Clean() {
		fmt.Printf("\nDropped records (%d):\n", len(report.Dropped))
		for _, dr := range report.Dropped {
			fmt.Printf("  %d: %s\n", dr.Index, dr.Reason)
		}
	}
	return nil
}

func spaceName(sp overlay.Space) string {
	if sp == "" {
		return string(overlay.SpaceUV)
	}
	return string(sp)
}

// detail summarizes the kind-specific fields of o.
func detail(o overlay.Overlay) string {
	switch o.Kind {
	case overlay.KindText:
		return fmt.Sprintf("%q %dpx %s %s", o.Content, o.FontSize, o.Color, o.FontFamily)
	case overlay.KindImage:
		return fmt.Sprintf("%dx%d %s", o.Width, o.Height, shorten(o.Source, 40))
	default:
		return ""
	}
}

// shorten keeps data URLs readable in a table.
func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
