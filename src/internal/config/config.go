package config

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/turris-cz/turrishw/src/internal/errors"
	"github.com/turris-cz/turrishw/src/internal/log"
	"github.com/turris-cz/turrishw/src/internal/utils"
)

// LoadConfig reads the TOML file at configPath on top of the defaults. An
// empty configPath yields the defaults. The environment is not consulted, see
// ApplyEnv.
func LoadConfig(configPath string) (*Config, error) {
	config := Default()
	if configPath == "" {
		return config, nil
	}

	configFile := filepath.Clean(configPath)
	if !filepath.IsAbs(configFile) {
		if path, err := filepath.Abs(configFile); err != nil {
			return nil, errors.NewConfigError("failed to get absolute path", err)
		} else {
			configFile = path
		}
	}

	content, err := os.ReadFile(configFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Errorf("Configuration file not found: %s", configFile)
			return nil, errors.NewConfigError(fmt.Sprintf("configuration file not found: %s", configFile), err)
		}
		return nil, errors.NewConfigError("failed to read config file", err)
	}

	if err := toml.Unmarshal(content, config); err != nil {
		var derr *toml.DecodeError
		if stderrors.As(err, &derr) {
			log.Errorf("%s", derr.String())
			row, col := derr.Position()
			log.Errorf("Error at line %d, column %d", row, col)
			return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file at line %d, column %d", row, col), err)
		}
		return nil, errors.NewConfigError("failed to parse config file", err)
	}

	config._absConfigFilePath = configFile
	log.Debugf("Configuration file path: %s", configFile)

	// a relative root in the file is relative to the file itself
	if config.General.Root != "" && !filepath.IsAbs(config.General.Root) {
		config.General.Root = utils.GetAbsolutePath(config.General.Root, config.GetConfigDir())
	}

	return config, nil
}

// ApplyEnv lets TURRISHW_ROOT override the configured root. A relative value
// is taken relative to the working directory.
func (c *Config) ApplyEnv() {
	if root, ok := os.LookupEnv(EnvRoot); ok && root != "" {
		log.Debugf("Using root %s from %s", root, EnvRoot)
		c.General.Root = absRoot(root)
	}
}

// SetRoot overrides the root, e.g. from the command line. Empty values are
// ignored and relative ones are taken relative to the working directory.
func (c *Config) SetRoot(root string) {
	if root != "" {
		c.General.Root = absRoot(root)
	}
}

func absRoot(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		log.Warnf("Cannot make root %s absolute: %v", root, err)
		return root
	}
	return abs
}

func (c *Config) SerializeConfig() (*bytes.Buffer, error) {
	buf := bytes.Buffer{}
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return nil, err
	}
	return &buf, nil
}
