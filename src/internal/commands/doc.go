// Package commands implements CLI command handlers for turrishw.
//
// Each command implements the Runner interface and delegates the work to the
// service layer.
//
// # Command Structure
//
// All commands follow a consistent pattern:
//   - Init(): Parse arguments, load and validate configuration
//   - Run(): Execute command using service layer
//   - Name(): Return command name for routing
//
// # Available Commands
//
//   - interfaces [-type eth,wifi] [-format json|text] [root]: print the classified interfaces
//   - board [root]: print the detected board tag
//   - serve [-listen addr] [-port n]: run the HTTP API
//
// # Example Usage
//
//	cmd := commands.CreateInterfacesCommand()
//	ctx := &commands.AppContext{Root: "/tmp/capture"}
//	if err := cmd.Init([]string{"-type", "wifi"}, ctx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cmd.Run(); err != nil {
//	    log.Fatal(err)
//	}
package commands
