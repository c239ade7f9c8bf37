package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/turris-cz/turrishw/src/internal/commands"
	"github.com/turris-cz/turrishw/src/internal/log"
)

var (
	version = "dev"
	commit  = "n/a"
	date    = "n/a"
)

func main() {
	ctx := &commands.AppContext{}

	// Define flags
	flag.StringVar(&ctx.ConfigPath, "config", "", "Path to configuration file (optional)")
	flag.BoolVar(&ctx.Verbose, "verbose", false, "Enable debug logging")
	flag.StringVar(&ctx.Root, "root", "", "Directory to read sys/, proc/ and usr/ from (default /, or $TURRISHW_ROOT)")

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Turris hardware interface classifier\n")
		fmt.Fprintf(os.Stderr, "Version: %s (Commit: %s, Date: %s)\n\n", version, commit, date)
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [command] [command options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "  interfaces [-type t1,t2] [-format json|text] [root]   Print classified interfaces (default)\n")
		fmt.Fprintf(os.Stderr, "  board [root]                                          Print the detected board\n")
		fmt.Fprintf(os.Stderr, "  serve [-listen addr] [-port n]                        Run the HTTP API\n")
		fmt.Fprintf(os.Stderr, "  config [root]                                         Print the effective configuration\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if ctx.Verbose {
		log.SetVerbose(true)
	}

	cmds := []commands.Runner{
		commands.CreateInterfacesCommand(),
		commands.CreateBoardCommand(),
		commands.CreateServeCommand(),
		commands.CreateConfigCommand(),
	}

	args := flag.Args()
	subcommand := "interfaces"
	if len(args) > 0 {
		subcommand, args = args[0], args[1:]
	}

	for _, cmd := range cmds {
		if cmd.Name() == subcommand {
			if err := cmd.Init(args, ctx); err != nil {
				if errors.Is(err, flag.ErrHelp) {
					os.Exit(0)
				}
				log.Fatalf("Failed to initialize command: %v", err)
			}

			if err := cmd.Run(); err != nil {
				log.Fatalf("Failed to run command: %v", err)
			}

			os.Exit(0)
		}
	}

	fmt.Fprintf(os.Stderr, "Unknown subcommand: %s\n\n", subcommand)
	flag.Usage()
	os.Exit(2)
}
