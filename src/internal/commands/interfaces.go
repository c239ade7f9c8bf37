package commands

import (
	"flag"
	"fmt"
	"io"

	"github.com/turris-cz/turrishw/src/internal/config"
	"github.com/turris-cz/turrishw/src/internal/domain"
	"github.com/turris-cz/turrishw/src/internal/hw"
	"github.com/turris-cz/turrishw/src/internal/service"
)

func CreateInterfacesCommand() *InterfacesCommand {
	gc := &InterfacesCommand{
		fs: flag.NewFlagSet("interfaces", flag.ContinueOnError),
	}
	gc.fs.StringVar(&gc.types, "type", "", "Comma separated interface types to report (eth, wifi, wwan)")
	gc.fs.StringVar(&gc.format, "format", "", "Output format: json or text (default from configuration)")
	return gc
}

type InterfacesCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg  *config.Config
	deps *domain.AppDependencies

	types  string
	format string
	filter *hw.TypeFilter
}

func (g *InterfacesCommand) Name() string {
	return g.fs.Name()
}

func (g *InterfacesCommand) Init(args []string, ctx *AppContext) error {
	g.ctx = ctx

	if err := g.fs.Parse(args); err != nil {
		return err
	}
	root, err := positionalRoot(g.fs)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, root)
	if err != nil {
		return err
	}
	if g.format != "" {
		cfg.Output.Format = g.format
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	g.cfg = cfg

	// -type "" selects nothing, a missing -type selects everything
	if isFlagSet(g.fs, "type") {
		g.filter = hw.ParseTypeFilter(g.types)
	}

	if g.deps, err = newDependencies(cfg, nil); err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	return nil
}

func (g *InterfacesCommand) Run() error {
	ifaceService := service.NewInterfaceService(g.deps)
	result, err := ifaceService.GetInterfaces(g.filter)
	if err != nil {
		return fmt.Errorf("failed to get interfaces: %w", err)
	}

	out := g.ctx.stdout()
	switch g.cfg.Output.Format {
	case config.FormatText:
		text, err := service.FormatText(result, g.cfg.Output.TextTemplate)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, text)
		return err
	default:
		data, err := service.FormatJSON(result)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}
}
