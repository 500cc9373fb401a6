package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (c *CLI) newWarmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Download the online mapping into the cache and validate the bundled one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Warm(cmd.Context(), c.opts)
		},
	}
}

func (c *CLI) newCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cache",
		Short: "Show the state of the cached online mapping",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := c.app.Cache(cmd.Context(), c.opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "uri:   %s\n", status.URI)
			_, _ = fmt.Fprintf(out, "path:  %s\n", status.Path)
			if !status.Present {
				_, _ = fmt.Fprintln(out, "state: missing")
				return nil
			}
			state := "stale"
			if status.Fresh {
				state = "fresh"
			}
			_, _ = fmt.Fprintf(out, "state: %s (age %s, ttl %s)\n", state, status.Age.Round(time.Second), status.TTL)
			return nil
		},
	}
}
