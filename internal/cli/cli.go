package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/matzehuels/tstore/pkg/errors"
	"github.com/matzehuels/tstore/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "tstore"

	// envToken is the environment variable read when --token is not given.
	envToken = "TSTORE_TOKEN"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags, resolved in the root command's pre-run.
	token   string
	domain  string
	url     string
	verbose bool

	baseURL string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Registry Access
// =============================================================================

// resolveBaseURL picks the registry base URL from --url or --domain.
func (c *CLI) resolveBaseURL() error {
	if c.url != "" {
		if err := errors.ValidateURL(c.url); err != nil {
			return err
		}
		c.baseURL = c.url
		return nil
	}
	if c.domain != "" {
		if err := errors.ValidateDomain(c.domain); err != nil {
			return err
		}
	}
	c.baseURL = registry.BaseURL(c.domain)
	return nil
}

// resolveToken falls back to the environment when --token was not given.
func (c *CLI) resolveToken(flagSet bool) {
	if !flagSet {
		c.token = os.Getenv(envToken)
	}
}

// newClient returns a registry client for the selected registry.
func (c *CLI) newClient() *registry.Client {
	return registry.NewClient(c.baseURL)
}

// validateIdentity checks the author and package name arguments.
func validateIdentity(author, name string) error {
	if err := errors.ValidatePackageName("author", author); err != nil {
		return err
	}
	return errors.ValidatePackageName("package name", name)
}

// spinnerFor returns a spinner for msg. Nothing is drawn with --verbose or
// when stderr is not a terminal.
func (c *CLI) spinnerFor(ctx context.Context, msg string) *Spinner {
	if c.verbose || !isatty.IsTerminal(os.Stderr.Fd()) {
		return quietSpinner(ctx, msg)
	}
	return newSpinnerWithContext(ctx, msg)
}
