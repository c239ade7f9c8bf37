// Package service provides the orchestration layer between the command layer
// (CLI/API) and the classification core.
//
// InterfaceService identifies the board, runs its classifier against the
// configured hardware view, applies the type filter and reports enumeration
// statistics. FormatJSON and FormatText render the result for the CLI.
//
// # Example Usage
//
//	deps, err := domain.NewAppDependencies(domain.AppConfig{Root: "/"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc := service.NewInterfaceService(deps)
//
//	result, err := svc.GetInterfaces(nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, _ := service.FormatJSON(result)
//	os.Stdout.Write(out)
package service
