package commands

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/turris-cz/turrishw/src/internal/config"
	"github.com/turris-cz/turrishw/src/internal/domain"
	"github.com/turris-cz/turrishw/src/internal/log"
)

type Runner interface {
	Init(args []string, globalArgs *AppContext) error
	Run() error
	Name() string
}

type AppContext struct {
	ConfigPath string
	Verbose    bool
	// Root overrides the configured sysfs root when set.
	Root string
	// Stdout receives command output. Nil means os.Stdout.
	Stdout io.Writer
}

func (ctx *AppContext) stdout() io.Writer {
	if ctx.Stdout == nil {
		return os.Stdout
	}
	return ctx.Stdout
}

// loadConfig loads the configuration and applies the overrides in order of
// precedence: environment, -root, positional root.
func loadConfig(ctx *AppContext, root string) (*config.Config, error) {
	cfg, err := config.LoadConfig(ctx.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg.ApplyEnv()
	cfg.SetRoot(ctx.Root)
	cfg.SetRoot(root)
	if ctx.Verbose {
		cfg.General.Verbose = true
	}
	return cfg, nil
}

func validateConfig(cfg *config.Config) error {
	if err := cfg.ValidateConfig(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	log.SetVerbose(cfg.General.Verbose)
	log.Debugf("Using root %s", cfg.General.Root)
	return nil
}

// newDependencies builds the production dependencies for cfg. A nil
// registerer disables metrics.
func newDependencies(cfg *config.Config, reg prometheus.Registerer) (*domain.AppDependencies, error) {
	return domain.NewAppDependencies(domain.AppConfig{
		Root:           cfg.General.Root,
		PCIIDsPath:     cfg.General.PCIIDsPath,
		Registerer:     reg,
		DisableMetrics: reg == nil,
	})
}

// positionalRoot returns the optional root argument left after flag parsing.
func positionalRoot(fs *flag.FlagSet) (string, error) {
	switch fs.NArg() {
	case 0:
		return "", nil
	case 1:
		return fs.Arg(0), nil
	default:
		return "", fmt.Errorf("%s: expected at most one root argument, got %v", fs.Name(), fs.Args())
	}
}

// isFlagSet reports whether name was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
