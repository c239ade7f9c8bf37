package config

import (
	"net"
	"path/filepath"
	"strconv"

	"github.com/turris-cz/turrishw/src/internal/sysfs"
)

// EnvRoot overrides the sysfs root used for all reads.
const EnvRoot = "TURRISHW_ROOT"

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// DefaultTextTemplate renders one interface per line.
const DefaultTextTemplate = "{{name}}\t{{type}}\t{{bus}}\t{{slot}}\t{{state}}\t{{link_speed}}"

type Config struct {
	// General holds general configuration.
	General GeneralConfig `toml:"general" json:"general"`
	// Output controls how the interfaces command prints its result.
	Output OutputConfig `toml:"output" json:"output"`
	// API configures the HTTP server started by the serve command.
	API APIConfig `toml:"api" json:"api"`

	_absConfigFilePath string
}

type GeneralConfig struct {
	// Root is the directory sys/, proc/ and usr/ are read from (default: /).
	Root string `toml:"root" json:"root" validate:"required"`
	// PCIIDsPath is the pci.ids database, relative to Root unless absolute (default: usr/share/hwdata/pci.ids).
	PCIIDsPath string `toml:"pci_ids_path" json:"pci_ids_path" validate:"required"`
	// Verbose enables debug logging.
	Verbose bool `toml:"verbose" json:"verbose"`
}

type OutputConfig struct {
	// Format is either "json" or "text" (default: json).
	Format string `toml:"format" json:"format" validate:"oneof=json text"`
	// TextTemplate is the per-interface line used by the text format. Placeholders are {{name}}, {{type}}, {{bus}}, {{slot}}, {{module_id}}, {{macaddr}}, {{state}}, {{link_speed}}, {{vlan_id}}, {{slot_path}}, {{qmi_device}}, {{vendor}} and {{pci_id}}.
	TextTemplate string `toml:"text_template" json:"text_template" validate:"text_template"`
}

type APIConfig struct {
	// ListenAddr is the address the API listens on (default: 127.0.0.1).
	ListenAddr string `toml:"listen_addr" json:"listen_addr" validate:"ip_or_empty"`
	// ListenPort is the port the API listens on (default: 8787).
	ListenPort uint16 `toml:"listen_port" json:"listen_port" validate:"required,min=1"`
	// TrustedProxies lists the CIDRs of reverse proxies whose X-Forwarded-For
	// header is honored. Without it only the peer address is checked.
	TrustedProxies []string `toml:"trusted_proxies" json:"trusted_proxies" validate:"omitempty,dive,cidr"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		General: GeneralConfig{
			Root:       "/",
			PCIIDsPath: sysfs.DefaultPCIIDs,
		},
		Output: OutputConfig{
			Format:       FormatJSON,
			TextTemplate: DefaultTextTemplate,
		},
		API: APIConfig{
			ListenAddr: "127.0.0.1",
			ListenPort: 8787,
		},
	}
}

// GetConfigDir returns the directory of the loaded configuration file, or ""
// for the built-in defaults.
func (c *Config) GetConfigDir() string {
	if c._absConfigFilePath == "" {
		return ""
	}
	return filepath.Dir(c._absConfigFilePath)
}

// GetListenAddress returns the host:port the API listens on.
func (c *Config) GetListenAddress() string {
	return net.JoinHostPort(c.API.ListenAddr, strconv.Itoa(int(c.API.ListenPort)))
}
