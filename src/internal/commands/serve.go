package commands

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/turris-cz/turrishw/src/internal/api"
	"github.com/turris-cz/turrishw/src/internal/config"
	"github.com/turris-cz/turrishw/src/internal/domain"
	"github.com/turris-cz/turrishw/src/internal/log"
)

// ServeCommand runs the HTTP API server.
type ServeCommand struct {
	fs   *flag.FlagSet
	ctx  *AppContext
	cfg    *config.Config
	deps   *domain.AppDependencies
	access *api.AccessPolicy

	listenAddr string
	listenPort uint
}

// CreateServeCommand creates a new serve command.
func CreateServeCommand() *ServeCommand {
	c := &ServeCommand{
		fs: flag.NewFlagSet("serve", flag.ContinueOnError),
	}
	c.fs.StringVar(&c.listenAddr, "listen", "", "Address to listen on (default from configuration)")
	c.fs.UintVar(&c.listenPort, "port", 0, "Port to listen on (default from configuration)")
	return c
}

func (c *ServeCommand) Name() string {
	return c.fs.Name()
}

func (c *ServeCommand) Init(args []string, ctx *AppContext) error {
	c.ctx = ctx

	if err := c.fs.Parse(args); err != nil {
		return err
	}
	if c.fs.NArg() > 0 {
		return fmt.Errorf("serve: unexpected arguments %v", c.fs.Args())
	}

	cfg, err := loadConfig(ctx, "")
	if err != nil {
		return err
	}
	if isFlagSet(c.fs, "listen") {
		cfg.API.ListenAddr = c.listenAddr
	}
	if isFlagSet(c.fs, "port") {
		if c.listenPort > 65535 {
			return fmt.Errorf("serve: port %d out of range", c.listenPort)
		}
		cfg.API.ListenPort = uint16(c.listenPort)
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	c.cfg = cfg

	if c.access, err = api.NewAccessPolicy(cfg.API.TrustedProxies); err != nil {
		return err
	}
	if c.deps, err = newDependencies(cfg, prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return nil
}

// ListenAddress returns the address the server will listen on.
func (c *ServeCommand) ListenAddress() string {
	return c.cfg.GetListenAddress()
}

func (c *ServeCommand) Run() error {
	addr := c.ListenAddress()
	log.Infof("Starting turrishw API server on %s (root %s)", addr, c.cfg.General.Root)
	if len(c.cfg.API.TrustedProxies) > 0 {
		log.Infof("Access restricted to local networks, trusting proxies %v", c.cfg.API.TrustedProxies)
	} else {
		log.Infof("Access restricted to local networks")
	}

	runner := NewRestartableRunner(RunnerConfig{Name: "api", MaxRestarts: 5}, func(ctx context.Context) error {
		server := api.NewServer(addr, c.deps, c.access)
		errc := make(chan error, 1)
		go func() {
			errc <- server.Start()
		}()

		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				log.Errorf("Error during server shutdown: %v", err)
			}
			return <-errc
		}
	})

	if err := runner.Start(context.Background()); err != nil {
		return err
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	select {
	case <-runner.Done():
		if err := runner.LastError(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case sig := <-shutdown:
		log.Infof("Received signal %v, shutting down server...", sig)
		if err := runner.Stop(); err != nil {
			return err
		}
		log.Infof("Server stopped gracefully")
		return nil
	}
}
