package commands

import (
	"flag"
	"fmt"

	"github.com/turris-cz/turrishw/src/internal/domain"
	"github.com/turris-cz/turrishw/src/internal/log"
	"github.com/turris-cz/turrishw/src/internal/service"
)

// BoardCommand prints the detected board tag.
type BoardCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	deps *domain.AppDependencies
}

func CreateBoardCommand() *BoardCommand {
	return &BoardCommand{
		fs: flag.NewFlagSet("board", flag.ContinueOnError),
	}
}

func (c *BoardCommand) Name() string {
	return c.fs.Name()
}

func (c *BoardCommand) Init(args []string, ctx *AppContext) error {
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

	if c.deps, err = newDependencies(cfg, nil); err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return nil
}

func (c *BoardCommand) Run() error {
	info, err := service.NewInterfaceService(c.deps).GetBoard()
	if err != nil {
		return fmt.Errorf("failed to identify board: %w", err)
	}
	if !info.Supported {
		log.Warnf("Unsupported board model %q", info.Model)
	}
	_, err = fmt.Fprintln(c.ctx.stdout(), info.Board)
	return err
}
