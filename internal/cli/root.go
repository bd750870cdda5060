// Package cli implements the tstore command-line interface.
//
// tstore talks to a Thunderstore package registry. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - info: Print a package's metadata as JSON
//   - download (dl): Download a package archive, optionally with its
//     full dependency closure
//   - publish: Upload a package archive
//
// # Global Flags
//
//   - --token (-t): service account token, defaults to $TSTORE_TOKEN
//   - --domain (-d): registry subdomain, e.g. "valheim"
//   - --url: full registry base URL, overriding --domain
//   - --verbose (-v): debug logging, including every registry request
//
// # Logging
//
// Loggers are passed through context.Context. With --verbose the CLI also
// registers observability hooks that log registry requests, dependency
// resolution and saved archives.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/tstore/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "tstore is a command-line client for the Thunderstore package registry",
		Long:          `tstore queries, downloads and publishes packages on Thunderstore or one of its community subdomains.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			c.resolveToken(cmd.Flags().Changed("token"))
			if err := c.resolveBaseURL(); err != nil {
				return err
			}

			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			c.Logger.Debug("registry", "url", c.baseURL)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVarP(&c.token, "token", "t", "", "service account token (default $"+envToken+")")
	flags.StringVarP(&c.domain, "domain", "d", "", "registry subdomain, e.g. valheim")
	flags.StringVar(&c.url, "url", "", "registry base URL (overrides --domain)")
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	// Register all subcommands
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.downloadCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.completionCommand())

	return root
}
