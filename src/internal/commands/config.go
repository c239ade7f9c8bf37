package commands

import (
	"flag"
	"fmt"

	"github.com/turris-cz/turrishw/src/internal/config"
)

// ConfigCommand prints the effective configuration, after the environment
// and command line overrides, as TOML.
type ConfigCommand struct {
	fs  *flag.FlagSet
	ctx *AppContext
	cfg *config.Config
}

func CreateConfigCommand() *ConfigCommand {
	return &ConfigCommand{
		fs: flag.NewFlagSet("config", flag.ContinueOnError),
	}
}

func (c *ConfigCommand) Name() string {
	return c.fs.Name()
}

func (c *ConfigCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	root, err := positionalRoot(c.fs)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, root)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *ConfigCommand) Run() error {
	buf, err := c.cfg.SerializeConfig()
	if err != nil {
		return fmt.Errorf("failed to serialize configuration: %w", err)
	}
	_, err = buf.WriteTo(c.ctx.stdout())
	return err
}
