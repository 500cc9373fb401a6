package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newIDsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ids",
		Short: "List the time zone ids that can be mapped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ids, err := c.app.IDs(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, id := range ids {
				_, _ = fmt.Fprintln(out, id)
			}
			return nil
		},
	}
}

func (c *CLI) newZonesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "zones",
		Short: "List the distinct Windows time zones in the mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			zones, err := c.app.Zones(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, z := range zones {
				_, _ = fmt.Fprintf(out, "%s\t%s\n", z.ID, z.Location)
			}
			return nil
		},
	}
}
