// Package cli implements the typespub command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/typespub/pkg/buildinfo"
	"github.com/matzehuels/typespub/pkg/cache"
	"github.com/matzehuels/typespub/pkg/config"
	"github.com/matzehuels/typespub/pkg/errors"
	"github.com/matzehuels/typespub/pkg/integrations/npm"
	"github.com/matzehuels/typespub/pkg/packages"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

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

	configPath string
	dataDir    string
	config     config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level), config: config.Default()}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "typespub tests and versions type declaration packages",
		Long:              `typespub checks every type declaration package under the types root and computes the next published version of each one against the npm registry.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default ./"+config.FileName+")")
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "directory holding the package data files")

	root.AddCommand(c.testCommand())
	root.AddCommand(c.calculateVersionsCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and tags the logger with a run id.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	c.config = cfg

	logger, id := withRunID(c.Logger)
	c.Logger = logger
	c.Logger.Debug("starting run", "id", id, "config", cfg.Path, "data", cfg.DataDir)
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// ErrorSummary renders err for the final line on stderr. Errors that stopped
// the run part way are prefixed with "aborted: "; per-package failures are
// shown as they are.
func ErrorSummary(err error) string {
	msg := errors.UserMessage(err)
	if errors.IsFatal(err) {
		return "aborted: " + msg
	}
	return msg
}

// =============================================================================
// Factories
// =============================================================================

func (c *CLI) newStore() packages.Store {
	return packages.NewFileStore(c.config.DataDir)
}

// newRegistry creates an npm client backed by the response cache.
func (c *CLI) newRegistry(noCache bool) (*npm.Client, error) {
	cc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return npm.NewClient(c.config.RegistryURL, cc, c.config.CacheTTL.Duration), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/typespub/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
