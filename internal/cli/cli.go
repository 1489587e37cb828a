package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/unprecompose/pkg/buildinfo"
	"github.com/matzehuels/unprecompose/pkg/config"
	"github.com/matzehuels/unprecompose/pkg/errors"
	"github.com/matzehuels/unprecompose/pkg/history"
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
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Unprecompose flattens precompositions into their parent composition",
		Long: `Unprecompose replaces precomposition layers with copies of the layers inside them,
re-basing their timing and composing their transforms so the picture stays the same.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/unprecompose/config.toml)")

	// Register all subcommands
	root.AddCommand(c.flattenCommand())
	root.AddCommand(c.undoCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads configuration and attaches the logger to the command context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.SetLogLevel(logLevel(cfg.Log.Level, c.verbose))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	c.Logger.Debug("config loaded", "history", cfg.History.Backend, "placement", cfg.Flatten.Placement)
	return nil
}

// logLevel resolves the configured level; --verbose always wins.
func logLevel(configured string, verbose bool) log.Level {
	if verbose {
		return log.DebugLevel
	}
	level, err := log.ParseLevel(configured)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// PrintError reports a command failure to the user.
func PrintError(err error) {
	printError("%s", errors.UserMessage(err))
}

// =============================================================================
// History Factory
// =============================================================================

// newHistory opens the configured snapshot store.
func (c *CLI) newHistory(ctx context.Context, disabled bool) (*history.History, error) {
	opts := history.Options{TTL: c.cfg.History.TTL, Logger: c.Logger}
	if disabled {
		return history.New(history.NewNullStore(), opts), nil
	}

	switch c.cfg.History.Backend {
	case config.BackendNone:
		return history.New(history.NewNullStore(), opts), nil
	case config.BackendRedis:
		store, err := history.NewRedisStore(ctx, history.RedisConfig{
			Addr:     c.cfg.History.RedisAddr,
			Password: c.cfg.History.RedisPassword,
			DB:       c.cfg.History.RedisDB,
		})
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis at %s", c.cfg.History.RedisAddr)
		}
		return history.New(store, opts), nil
	}

	if c.cfg.History.Dir == "" {
		c.Logger.Warn("no cache directory; undo history disabled")
		return history.New(history.NewNullStore(), opts), nil
	}
	store, err := history.NewFileStore(c.cfg.History.Dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open history directory %s", c.cfg.History.Dir)
	}
	return history.New(store, opts), nil
}
