package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the source, versions and size of the mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info, err := c.app.Info(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintf(w, "source:\t%s\n", info.Source)
			_, _ = fmt.Fprintf(w, "version:\t%s\n", info.Version)
			_, _ = fmt.Fprintf(w, "tzid version:\t%s\n", info.TZIDVersion)
			_, _ = fmt.Fprintf(w, "platform version:\t%s\n", info.PlatformVersion)
			_, _ = fmt.Fprintf(w, "digest:\t%s\n", info.Digest)
			_, _ = fmt.Fprintf(w, "ids:\t%d\n", info.IDs)
			_, _ = fmt.Fprintf(w, "zones:\t%d\n", info.Zones)
			return w.Flush()
		},
	}
}
