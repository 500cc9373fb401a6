package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newMapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "map <tzid>...",
		Short: "Map time zone ids to Windows time zones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := c.app.Map(cmd.Context(), c.opts, args)
			out := cmd.OutOrStdout()
			for _, r := range results {
				if !r.Found() {
					_, _ = fmt.Fprintf(out, "%s -> (unmapped)\n", r.TZID)
					continue
				}
				_, _ = fmt.Fprintf(out, "%s -> %s (%s)\n", r.TZID, r.Zone.ID, r.Zone.Location)
			}
			return err
		},
	}
}
