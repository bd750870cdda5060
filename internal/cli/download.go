package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tstore/pkg/archive"
	"github.com/matzehuels/tstore/pkg/deps"
	"github.com/matzehuels/tstore/pkg/errors"
	"github.com/matzehuels/tstore/pkg/registry"
)

// downloadOpts holds the command-line flags for the download command.
type downloadOpts struct {
	recurse bool   // download the full dependency closure
	output  string // directory archives are written to
}

// downloadCommand creates the download command.
func (c *CLI) downloadCommand() *cobra.Command {
	opts := downloadOpts{output: "."}

	cmd := &cobra.Command{
		Use:     "download <author> <package_name>",
		Aliases: []string{"dl"},
		Short:   "Download a package archive",
		Long: `Download the latest archive of a package as {full_name}-{version}.zip.

With --recurse, the package's dependencies are resolved first and one
archive is downloaded for every package in the dependency closure,
dependencies before the packages that need them. Existing files with the
same name are overwritten.

Examples:
  tstore download bbepis BepInExPack
  tstore dl -r -o mods/ Author SomeModpack`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDownload(cmd.Context(), args[0], args[1], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.recurse, "recurse", "r", false, "also download all dependencies")
	cmd.Flags().StringVarP(&opts.output, "output", "o", opts.output, "directory to write archives to")

	return cmd
}

func (c *CLI) runDownload(ctx context.Context, author, name string, opts downloadOpts) error {
	if err := validateIdentity(author, name); err != nil {
		return err
	}
	logger := loggerFromContext(ctx)
	client := c.newClient()

	spinner := c.spinnerFor(ctx, fmt.Sprintf("Fetching %s-%s...", author, name))
	spinner.Start()
	root, err := client.FetchPackage(ctx, author, name)
	spinner.Stop()
	if err != nil {
		return err
	}

	pkgs := []*registry.Package{root}
	if opts.recurse {
		spinner = c.spinnerFor(ctx, fmt.Sprintf("Resolving dependencies of %s...", root.FullName))
		spinner.Start()

		prog := newProgress(logger)
		set, err := deps.Resolve(ctx, root, client.FetchPackage, deps.Options{
			Logger: func(msg string, args ...any) { logger.Debugf(msg, args...) },
		})
		if err != nil {
			spinner.StopWithError("Dependency resolution failed")
			return err
		}
		prog.done(fmt.Sprintf("Resolved %d packages", set.Len()))
		spinner.StopWithSuccess(fmt.Sprintf("Resolved %d packages", set.Len()))
		pkgs = set.Packages()
	}

	if err := os.MkdirAll(opts.output, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create output directory %s", opts.output)
	}

	if len(pkgs) > 1 {
		printInfo("Downloading %d archives to %s", len(pkgs), StyleHighlight.Render(opts.output))
	}
	return archive.DownloadAll(ctx, archive.NewFetcher(client), opts.output, pkgs, func(pkg *registry.Package, path string) {
		printSuccess("%s finished downloading!", pkg.Name)
		logger.Debug("saved", "path", path)
	})
}
