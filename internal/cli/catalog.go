package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/llehouerou/eko/internal/catalog"
	"github.com/llehouerou/eko/internal/icons"
	"github.com/llehouerou/eko/internal/ui/render"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the catalog tree",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		icons.Init("none")
		src, err := openCatalog(cfg)
		if err != nil {
			return err
		}
		return printCatalog(cmd, src, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func printCatalog(cmd *cobra.Command, src catalog.Source, out io.Writer) error {
	ctx := cmd.Context()
	contexts, err := src.Contexts(ctx)
	if err != nil {
		return err
	}
	for _, c := range contexts {
		fmt.Fprintf(out, "%s (%s)\n", c.Title, c.ID)
		playlists, err := src.Playlists(ctx, c.ID)
		if err != nil {
			return err
		}
		for _, p := range playlists {
			fmt.Fprintf(out, "  %s (%s)\n", p.Title, p.ID)
			tracks, err := src.Tracks(ctx, p.ID)
			if err != nil {
				return err
			}
			for _, t := range tracks {
				line := "    " + icons.Track(t.Title, t.IsVideo())
				if t.Duration > 0 {
					line += "  " + render.Clock(t.Duration)
				}
				fmt.Fprintln(out, line)
			}
		}
	}
	return nil
}
