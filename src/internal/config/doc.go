// Package config handles configuration file parsing and validation for turrishw.
//
// The configuration file is optional TOML. Missing keys keep their defaults,
// so a file only needs to mention what it changes.
//
// # Configuration Structure
//
//	[general]
//	root = "/"                                # TURRISHW_ROOT overrides it
//	pci_ids_path = "usr/share/hwdata/pci.ids" # relative to root unless absolute
//	verbose = false
//
//	[output]
//	format = "json"                           # json | text
//	text_template = "{{name}}\t{{type}}\t{{bus}}\t{{slot}}\t{{state}}\t{{link_speed}}"
//
//	[api]
//	listen_addr = "127.0.0.1"
//	listen_port = 8787
//
// # Precedence
//
// Defaults < configuration file < TURRISHW_ROOT < root given on the command
// line.
//
// # Example Usage
//
//	cfg, err := config.LoadConfig("/etc/turrishw.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cfg.ApplyEnv()
//	if err := cfg.ValidateConfig(); err != nil {
//	    log.Fatal(err)
//	}
package config
