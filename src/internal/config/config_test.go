package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/turris-cz/turrishw/src/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "turrishw.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfig_EmptyPathGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.General.Root != "/" {
		t.Errorf("Expected root /, got %q", cfg.General.Root)
	}
	if cfg.Output.Format != FormatJSON {
		t.Errorf("Expected json format, got %q", cfg.Output.Format)
	}
	if cfg.API.ListenPort != 8787 {
		t.Errorf("Expected port 8787, got %d", cfg.API.ListenPort)
	}
	if cfg.GetConfigDir() != "" {
		t.Errorf("Expected no config dir for defaults, got %q", cfg.GetConfigDir())
	}
	if err := cfg.ValidateConfig(); err != nil {
		t.Errorf("Expected defaults to be valid, got: %v", err)
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[general]
root = "/tmp/fixture"

[output]
format = "text"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if cfg.General.Root != "/tmp/fixture" {
		t.Errorf("Expected root from file, got %q", cfg.General.Root)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Expected text format, got %q", cfg.Output.Format)
	}
	if cfg.Output.TextTemplate != DefaultTextTemplate {
		t.Errorf("Expected default template to survive, got %q", cfg.Output.TextTemplate)
	}
	if cfg.General.PCIIDsPath != "usr/share/hwdata/pci.ids" {
		t.Errorf("Expected default pci.ids path, got %q", cfg.General.PCIIDsPath)
	}
	if cfg.GetConfigDir() != filepath.Dir(path) {
		t.Errorf("Expected config dir %q, got %q", filepath.Dir(path), cfg.GetConfigDir())
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
	if !errors.HasCode(err, errors.ErrCodeConfig) {
		t.Errorf("Expected CONFIG_ERROR, got %v", err)
	}
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[general\nroot = 1\n")

	_, err := LoadConfig(path)
	if err == nil {
		t.Fatal("Expected error for invalid TOML")
	}
	if !errors.HasCode(err, errors.ErrCodeConfig) {
		t.Errorf("Expected CONFIG_ERROR, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Errorf("Expected error position in message, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()

	t.Setenv(EnvRoot, "/srv/capture")
	cfg.ApplyEnv()
	if cfg.General.Root != "/srv/capture" {
		t.Errorf("Expected root from environment, got %q", cfg.General.Root)
	}

	cfg.SetRoot("")
	if cfg.General.Root != "/srv/capture" {
		t.Errorf("Expected empty override to be ignored, got %q", cfg.General.Root)
	}
	cfg.SetRoot("/cli")
	if cfg.General.Root != "/cli" {
		t.Errorf("Expected root from command line, got %q", cfg.General.Root)
	}
}

func TestApplyEnv_EmptyValueIgnored(t *testing.T) {
	cfg := Default()
	t.Setenv(EnvRoot, "")
	cfg.ApplyEnv()
	if cfg.General.Root != "/" {
		t.Errorf("Expected default root, got %q", cfg.General.Root)
	}
}

func TestRelativeRoot(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}

	cfg := Default()
	cfg.SetRoot("fixture")
	if want := filepath.Join(wd, "fixture"); cfg.General.Root != want {
		t.Errorf("Expected root %q from command line, got %q", want, cfg.General.Root)
	}

	t.Setenv(EnvRoot, "capture/omnia")
	cfg.ApplyEnv()
	if want := filepath.Join(wd, "capture/omnia"); cfg.General.Root != want {
		t.Errorf("Expected root %q from environment, got %q", want, cfg.General.Root)
	}

	path := writeConfig(t, "[general]\nroot = \"trees/mox\"\n")
	cfg, err = LoadConfig(path)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if want := filepath.Join(filepath.Dir(path), "trees/mox"); cfg.General.Root != want {
		t.Errorf("Expected root %q next to the config file, got %q", want, cfg.General.Root)
	}
}

func TestGetListenAddress(t *testing.T) {
	cfg := Default()
	if got := cfg.GetListenAddress(); got != "127.0.0.1:8787" {
		t.Errorf("GetListenAddress() = %q", got)
	}
	cfg.API.ListenAddr = "::1"
	if got := cfg.GetListenAddress(); got != "[::1]:8787" {
		t.Errorf("GetListenAddress() = %q", got)
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{"valid defaults", func(*Config) {}, nil},
		{"unknown format", func(c *Config) { c.Output.Format = "xml" }, []string{"output.format"}},
		{"empty root", func(c *Config) { c.General.Root = "" }, []string{"general.root"}},
		{"zero port", func(c *Config) { c.API.ListenPort = 0 }, []string{"api.listen_port"}},
		{"bad address", func(c *Config) { c.API.ListenAddr = "localhost" }, []string{"api.listen_addr"}},
		{"empty address", func(c *Config) { c.API.ListenAddr = "" }, nil},
		{"trusted proxies", func(c *Config) { c.API.TrustedProxies = []string{"192.168.1.1/32", "fd00::/8"} }, nil},
		{"bad trusted proxy", func(c *Config) { c.API.TrustedProxies = []string{"10.0.0.0/8", "proxy"} }, []string{"api.trusted_proxies[1]"}},
		{"unclosed placeholder", func(c *Config) { c.Output.TextTemplate = "{{name" }, []string{"output.text_template"}},
		{
			"text without template",
			func(c *Config) {
				c.Output.Format = FormatText
				c.Output.TextTemplate = ""
			},
			[]string{"output.text_template"},
		},
		{
			"several errors",
			func(c *Config) {
				c.General.Root = ""
				c.Output.Format = "yaml"
			},
			[]string{"general.root", "output.format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.ValidateConfig()
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("Expected no error, got: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !errors.HasCode(err, errors.ErrCodeValidation) {
				t.Errorf("Expected VALIDATION_ERROR, got %v", err)
			}

			var verrs ValidationErrors
			if !stderrors.As(err, &verrs) {
				t.Fatalf("Expected ValidationErrors cause, got %T", err)
			}
			if len(verrs) != len(tt.fields) {
				t.Fatalf("Expected %d errors, got %d: %v", len(tt.fields), len(verrs), verrs)
			}
			for i, field := range tt.fields {
				if verrs[i].FieldPath != field {
					t.Errorf("Error %d: expected field %q, got %q", i, field, verrs[i].FieldPath)
				}
			}
		})
	}
}

func TestSerializeConfig(t *testing.T) {
	buf, err := Default().SerializeConfig()
	if err != nil {
		t.Fatalf("SerializeConfig failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"[general]", "root", "[output]", "format", "listen_port = 8787"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in serialized config:\n%s", want, out)
		}
	}
}
