package cli

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tstore/pkg/errors"
	"github.com/matzehuels/tstore/pkg/publish"
)

// publishOpts holds the command-line flags for the publish command.
type publishOpts struct {
	author      string
	categories  []string
	communities []string
	nsfw        bool
	config      string
}

// publishCommand creates the publish command.
func (c *CLI) publishCommand() *cobra.Command {
	opts := publishOpts{config: publish.DefaultConfigPath}

	cmd := &cobra.Command{
		Use:   "publish [zip]",
		Short: "Publish a package archive to the registry",
		Long: `Upload a package archive to the registry.

Every option can also be set in a TOML config file (publish.toml by default).
A value given on the command line always wins over the config file:

  author      = "MyTeam"
  categories  = ["Mods"]
  communities = ["riskofrain2"]
  nsfw        = false
  zip         = "build/MyMod.zip"
  token       = "tss_..."

author, communities, the archive and the token are required. The token is
read from --token, then $TSTORE_TOKEN, then the config file.

Examples:
  tstore publish -a MyTeam -c riskofrain2 --categories Mods,Tools build/MyMod.zip
  tstore publish --config release.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := opts.flags(cmd, args)
			if c.token != "" {
				flags.Token = &c.token
			}
			return c.runPublish(cmd.Context(), flags, opts.config)
		},
	}

	cmd.Flags().StringVarP(&opts.author, "author", "a", "", "name of the team to publish to")
	cmd.Flags().StringSliceVar(&opts.categories, "categories", nil, "categories the package should be in")
	cmd.Flags().StringSliceVarP(&opts.communities, "communities", "c", nil, "communities to publish to")
	cmd.Flags().BoolVar(&opts.nsfw, "nsfw", false, "package contains NSFW content")
	cmd.Flags().StringVar(&opts.config, "config", opts.config, "path to the publish config file")

	return cmd
}

// flags converts the parsed command line into publish.Flags. Options that
// were not given stay nil.
func (o *publishOpts) flags(cmd *cobra.Command, args []string) publish.Flags {
	var f publish.Flags
	set := cmd.Flags().Changed
	if set("author") {
		f.Author = &o.author
	}
	if set("categories") {
		f.Categories = append([]string{}, o.categories...)
	}
	if set("communities") {
		f.Communities = append([]string{}, o.communities...)
	}
	f.NSFW = o.nsfw
	if len(args) == 1 {
		f.Zip = &args[0]
	}
	return f
}

func (c *CLI) runPublish(ctx context.Context, flags publish.Flags, configPath string) error {
	logger := loggerFromContext(ctx)

	if flags.Zip != nil && !fileExists(*flags.Zip) {
		return errors.New(errors.ErrCodeInvalidInput, "ZIP file %s doesn't exist", *flags.Zip)
	}

	cfg, err := publish.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if cfg == nil {
		logger.Debug("no config file", "path", configPath)
	} else if len(cfg.Unknown) > 0 {
		printWarning("Ignoring unknown keys in %s: %s", configPath, strings.Join(cfg.Unknown, ", "))
	}

	opts, err := publish.Resolve(flags, cfg, fileExists)
	if err != nil {
		return err
	}
	metadata, err := opts.MetadataJSON()
	if err != nil {
		return err
	}
	logger.Debug("publishing", "archive", opts.Archive, "author", opts.Author, "communities", opts.Communities)

	spinner := c.spinnerFor(ctx, "Uploading "+opts.Archive+"...")
	spinner.Start()
	res, err := c.newClient().Upload(ctx, opts.Token, opts.Archive, metadata)
	if err != nil {
		spinner.StopWithError("Upload failed")
		return err
	}
	spinner.Stop()

	printSuccess("Package uploaded successfully!")
	printKeyValue("Package", res.Namespace+"-"+res.Name)
	if res.VersionNumber != "" {
		printKeyValue("Version", res.VersionNumber)
	}
	printFile(opts.Archive)
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
