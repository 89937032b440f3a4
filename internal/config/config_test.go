package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

const validYAML = `
server:
  host: 127.0.0.1
  port: 8080
database:
  host: localhost
  port: 5432
  name: ironcycle
  user: ironcycle
  password: secret
auth:
  api_key: test-key
`

func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "ironcycle" {
		t.Errorf("database name = %q, want ironcycle", cfg.Database.Name)
	}
	if cfg.Auth.APIKey != "test-key" {
		t.Errorf("api key = %q, want test-key", cfg.Auth.APIKey)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("IRONCYCLE_SERVER_PORT", "9090")
	t.Setenv("IRONCYCLE_DB_PASSWORD", "from-env")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("password = %q, want env override", cfg.Database.Password)
	}
}

func TestValidationMissingAPIKey(t *testing.T) {
	yaml := strings.Replace(validYAML, "api_key: test-key", "api_key: \"\"", 1)
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("Load succeeded with empty api key")
	}
	if !strings.Contains(err.Error(), "api_key") {
		t.Errorf("error %q does not mention api_key", err)
	}
}

func TestValidationMissingPortWithoutTailscale(t *testing.T) {
	yaml := strings.Replace(validYAML, "port: 8080", "port: 0", 1)
	_, err := Load(writeTemp(t, yaml))
	if err == nil {
		t.Fatal("Load succeeded with no server port and tailscale disabled")
	}
}

func TestTailscaleAllowsNoPort(t *testing.T) {
	yaml := strings.Replace(validYAML, "port: 8080", "port: 0", 1) + `
tailscale:
  enabled: true
  hostname: ironcycle
`
	cfg, err := Load(writeTemp(t, yaml))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Tailscale.Enabled {
		t.Error("tailscale not enabled")
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db.local", Port: 5432, Name: "ironcycle",
		User: "app", Password: "pw",
	}
	want := "postgres://app:pw@db.local:5432/ironcycle?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
