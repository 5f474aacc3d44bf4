// Package cli implements the fpgroups command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fpgroups/pkg/buildinfo"
	"github.com/matzehuels/fpgroups/pkg/cache"
	"github.com/matzehuels/fpgroups/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "fpgroups"
)

// Cache backends selectable with --cache.
const (
	backendFile   = "file"
	backendBadger = "badger"
	backendRedis  = "redis"
	backendNone   = "none"
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

	// Out receives command output. It defaults to os.Stdout.
	Out io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "fpgroups",
		Short: "fpgroups computes with finitely presented groups",
		Long: `fpgroups computes with finitely presented groups: coset tables by
Todd-Coxeter enumeration, conjugacy classes of subgroups of small index,
abelian invariants and presentations of point stabilizers.

Presentations are given with --gen/--rel flags or read from a TOML, YAML
or JSON file.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)

	root.AddCommand(c.cosetsCommand())
	root.AddCommand(c.subgroupsCommand())
	root.AddCommand(c.invariantsCommand())
	root.AddCommand(c.stabilizerCommand())
	root.AddCommand(c.reportCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheOpts selects the cache backend of a runner.
type cacheOpts struct {
	backend   string // file, badger, redis or none
	redisAddr string // address of the redis server
	dir       string // overrides the cache directory
}

func (o *cacheOpts) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.backend, "cache", backendFile, "cache backend: file, badger, redis, none")
	cmd.Flags().StringVar(&o.redisAddr, "redis", "localhost:6379", "redis address for --cache redis")
	cmd.Flags().StringVar(&o.dir, "cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/fpgroups)")
	_ = cmd.RegisterFlagCompletionFunc("cache", cobra.FixedCompletions(
		[]string{backendFile, backendBadger, backendRedis, backendNone}, cobra.ShellCompDirectiveNoFileComp))
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cmd *cobra.Command, opts cacheOpts) (*pipeline.Runner, error) {
	cc, err := c.newCache(cmd, opts)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cc, nil, c.Logger), nil
}

// newCache opens the selected backend. A file cache falls back to no cache
// when no cache directory can be determined.
func (c *CLI) newCache(cmd *cobra.Command, opts cacheOpts) (cache.Cache, error) {
	switch opts.backend {
	case backendNone:
		return cache.NewNullCache(), nil
	case backendRedis:
		return cache.NewRedisCache(cmd.Context(), opts.redisAddr)
	case backendFile, backendBadger, "":
	default:
		return nil, fmt.Errorf("invalid cache backend: %q (must be file, badger, redis or none)", opts.backend)
	}

	dir := opts.dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
	}
	if opts.backend == backendBadger {
		return cache.NewBadgerCache(filepath.Join(dir, "badger"))
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/fpgroups/).
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
