package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// infoCommand creates the info command.
func (c *CLI) infoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <author> <package_name>",
		Short: "Print package metadata as JSON",
		Long: `Fetch a package's metadata from the registry and print it as formatted JSON.

The output has the same fields as the registry's response.

Examples:
  tstore info bbepis BepInExPack
  tstore -d valheim info denikson BepInExPack_Valheim`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func (c *CLI) runInfo(ctx context.Context, w io.Writer, author, name string) error {
	if err := validateIdentity(author, name); err != nil {
		return err
	}

	spinner := c.spinnerFor(ctx, fmt.Sprintf("Fetching %s-%s...", author, name))
	spinner.Start()
	pkg, err := c.newClient().FetchPackage(ctx, author, name)
	spinner.Stop()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", pkg.FullName, err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
