// Package cli implements the spritestrip command-line interface.
//
// # Commands
//
//   - filmstrip: tile a base image and stamp overlay frames onto it
//   - grid: draw cell boundaries over a sprite sheet
//   - stack: place one image above another
//   - batch: run a TOML, YAML or JSON manifest of jobs
//   - cache: inspect or clear the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// passed through context.Context and injected into the batch runner.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/spritestrip/pkg/batch"
	"github.com/matzehuels/spritestrip/pkg/buildinfo"
	"github.com/matzehuels/spritestrip/pkg/cache"
	"github.com/matzehuels/spritestrip/pkg/errors"
	"github.com/matzehuels/spritestrip/pkg/observability"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "spritestrip"

	// envCacheURL supplies --cache-url for the redis and mongo backends.
	envCacheURL = "SPRITESTRIP_CACHE_URL"
)

// Cache backends selectable with --cache.
const (
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheMongo = "mongo"
	cacheNone  = "none"
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

	cacheBackend string
	cacheURL     string
	noCache      bool
	verbose      bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:       newLogger(w, level),
		cacheBackend: cacheFile,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Spritestrip composites sprite sheets",
		Long: `Spritestrip builds sprite sheets from PNG images: filmstrips of animation
frames stamped onto a tiled base, grid overlays that show cell boundaries, and
vertical stacks of sheets.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			if c.Logger.GetLevel() <= log.DebugLevel {
				hooks := &logHooks{logger: c.Logger}
				observability.SetBatchHooks(hooks)
				observability.SetCacheHooks(hooks)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")
	flags.StringVar(&c.cacheBackend, "cache", cacheFile, "cache backend: file, redis, mongo, none")
	flags.StringVar(&c.cacheURL, "cache-url", os.Getenv(envCacheURL), "redis:// or mongodb:// URL for the cache backend (env "+envCacheURL+")")

	root.AddCommand(c.filmstripCommand())
	root.AddCommand(c.gridCommand())
	root.AddCommand(c.stackCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a batch runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*batch.Runner, error) {
	backend := c.cacheBackend
	if c.noCache {
		backend = cacheNone
	}
	store, err := c.openCache(ctx, backend)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, buildinfo.CacheScope())
	return batch.NewRunner(cache.Observed(store, backend), keyer, loggerFromContext(ctx)), nil
}

// openCache opens the named cache backend.
func (c *CLI) openCache(ctx context.Context, backend string) (cache.Cache, error) {
	switch backend {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheFile:
		dir, err := cacheDir()
		if err != nil {
			loggerFromContext(ctx).Debug("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		store, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return store, nil
	case cacheRedis:
		if c.cacheURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--cache redis needs --cache-url or %s", envCacheURL)
		}
		store, err := cache.NewRedisCache(c.cacheURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "redis cache url")
		}
		return store, nil
	case cacheMongo:
		if c.cacheURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--cache mongo needs --cache-url or %s", envCacheURL)
		}
		store, err := cache.NewMongoCache(ctx, c.cacheURL, "")
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "mongo cache url")
		}
		if err := store.EnsureIndexes(ctx); err != nil {
			loggerFromContext(ctx).Debug("mongo ttl index not created", "err", err)
		}
		return store, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, redis, mongo or none)", backend)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/spritestrip/).
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

// =============================================================================
// Errors
// =============================================================================

// PrintError prints err for the user, with its code when it has one.
func PrintError(err error) {
	if code := errors.GetCode(err); code != "" {
		printError("%s %s", errors.UserMessage(err), StyleDim.Render("["+string(code)+"]"))
		return
	}
	printError("%s", fmt.Sprint(err))
}
