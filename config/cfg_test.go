package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stylecore/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Version != 1 {
		t.Errorf("default version = %d", cfg.Version)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" {
		t.Errorf("default console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
	if len(cfg.Render.Stylesheets) != 0 {
		t.Errorf("unexpected default stylesheets: %v", cfg.Render.Stylesheets)
	}
}

func TestLoadConfigurationFromFile(t *testing.T) {
	path := writeConfig(t, `
version: 1
render:
  user_agent_stylesheet: ua.css
  stylesheets:
    - site.css
    - page.css
logging:
  console:
    level: debug
`)
	cfg, err := config.LoadConfiguration(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.UserAgentStylesheet != "ua.css" {
		t.Errorf("user agent stylesheet = %q", cfg.Render.UserAgentStylesheet)
	}
	if len(cfg.Render.Stylesheets) != 2 || cfg.Render.Stylesheets[1] != "page.css" {
		t.Errorf("stylesheets = %v", cfg.Render.Stylesheets)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("console level = %q", cfg.Logging.ConsoleLogger.Level)
	}
	// file logger keeps its default
	if cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("file mode = %q", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfigurationRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
version: 1
renderer:
  stylesheets: [a.css]
`)
	if _, err := config.LoadConfiguration(path); err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadConfigurationRejectsBadValues(t *testing.T) {
	for _, body := range []string{
		"version: 2\n",
		"version: 1\nlogging:\n  console:\n    level: loud\n",
		"version: 1\nlogging:\n  file:\n    level: normal\n    mode: rotate\n",
	} {
		path := writeConfig(t, body)
		if _, err := config.LoadConfiguration(path); err == nil {
			t.Errorf("expected error for config %q", body)
		}
	}
}

func TestDumpRoundTrip(t *testing.T) {
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Render.Stylesheets = []string{"main.css"}

	data, err := config.Dump(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "main.css") {
		t.Errorf("dump missing stylesheet entry:\n%s", data)
	}

	reloaded, err := config.LoadConfiguration(writeConfig(t, string(data)))
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded.Render.Stylesheets) != 1 || reloaded.Render.Stylesheets[0] != "main.css" {
		t.Errorf("reloaded stylesheets = %v", reloaded.Render.Stylesheets)
	}
}

func TestPrepareLogger(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "run.log")
	conf := config.LoggingConfig{
		ConsoleLogger: config.LoggerConfig{Level: "none"},
		FileLogger:    config.LoggerConfig{Level: "debug", Destination: dest, Mode: "overwrite"},
	}
	log, err := conf.Prepare()
	if err != nil {
		t.Fatal(err)
	}
	log.Debug("test entry")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "test entry") {
		t.Errorf("log file missing entry:\n%s", data)
	}
}
