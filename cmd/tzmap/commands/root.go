// Package commands implements the CLI commands for tzmap.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tzmap/internal/app"
	"go.trai.ch/tzmap/internal/build"
	"go.trai.ch/tzmap/internal/core/domain"
)

// CLI represents the command line interface for tzmap.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	opts    app.Options
	json    bool
	verbose bool
}

// Application represents the application logic interface.
type Application interface {
	Map(ctx context.Context, opts app.Options, ids []string) ([]app.MapResult, error)
	IDs(ctx context.Context, opts app.Options) ([]string, error)
	Zones(ctx context.Context, opts app.Options) ([]*domain.Zone, error)
	Info(ctx context.Context, opts app.Options) (*app.Info, error)
	Warm(ctx context.Context, opts app.Options) error
	Cache(ctx context.Context, opts app.Options) (*app.CacheStatus, error)
	ConfigureLogging(jsonOutput, verbose bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "tzmap",
		Short:         "Map IANA time zone ids to Windows time zones",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.opts.ConfigPath, "config", "", "Path to "+domain.ConfigFileName+" (default: search upwards from the working directory)")
	flags.StringVarP(&c.opts.Source, "source", "s", "",
		"Mapping source: static, online, fallback or file (default: from config, else static)")
	flags.StringVarP(&c.opts.File, "file", "f", "", "Map from a local windowsZones.xml (implies --source file)")
	flags.BoolVar(&c.json, "json", false, "Write logs as JSON")
	flags.BoolVar(&c.verbose, "verbose", false, "Enable debug logging")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		c.app.ConfigureLogging(c.json, c.verbose)
	}

	rootCmd.AddCommand(c.newMapCmd())
	rootCmd.AddCommand(c.newIDsCmd())
	rootCmd.AddCommand(c.newZonesCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newWarmCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
