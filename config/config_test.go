package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

type testHTTP struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	NoVerify bool          `mapstructure:"no_verify"`
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	HTTP          testHTTP `mapstructure:"http"`
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	cfg := ServiceConfig{Name: "gofetch"}
	cfg.ApplyDefaults()

	if cfg.Environment != "development" {
		t.Errorf("expected 'development', got %q", cfg.Environment)
	}
	if cfg.Logging.ServiceName != "gofetch" {
		t.Errorf("expected logging service name 'gofetch', got %q", cfg.Logging.ServiceName)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected logging level 'info', got %q", cfg.Logging.Level)
	}
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ServiceConfig
		wantErr string
	}{
		{"valid development", ServiceConfig{Name: "svc", Environment: "development"}, ""},
		{"valid production", ServiceConfig{Name: "svc", Environment: "production"}, ""},
		{"missing name", ServiceConfig{Environment: "production"}, "name: is required"},
		{"invalid environment", ServiceConfig{Name: "svc", Environment: "invalid"}, "environment: must be one of"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.cfg.Logging.ApplyDefaults()
			err := tc.cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %q", tc.wantErr, err.Error())
			}
		})
	}
}

func TestServiceConfigValidateLogging(t *testing.T) {
	cfg := ServiceConfig{Name: "svc", Environment: "development"}
	cfg.Logging.ApplyDefaults()
	cfg.Logging.Level = "loud"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "config.logging") {
		t.Errorf("expected logging error, got %v", err)
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gofetch.yml", `
name: gofetch
environment: staging
logging:
  level: debug
http:
  timeout: 5s
  no_verify: true
`)

	var cfg testConfig
	if err := LoadConfig("gofetch", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "gofetch" {
		t.Errorf("expected name 'gofetch', got %q", cfg.Name)
	}
	if cfg.Environment != "staging" {
		t.Errorf("expected environment 'staging', got %q", cfg.Environment)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected logging level 'debug', got %q", cfg.Logging.Level)
	}
	if cfg.HTTP.Timeout != 5*time.Second {
		t.Errorf("expected timeout 5s, got %v", cfg.HTTP.Timeout)
	}
	if !cfg.HTTP.NoVerify {
		t.Error("expected no_verify true")
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gofetch.yml", "http:\n  timeout: 5s\n")
	t.Setenv("GOFETCH_HTTP_TIMEOUT", "250ms")
	t.Setenv("GOFETCH_HTTP_NO_VERIFY", "true")
	t.Setenv("HTTP_TIMEOUT", "9s")

	var cfg testConfig
	if err := LoadConfig("gofetch", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.HTTP.Timeout != 250*time.Millisecond {
		t.Errorf("expected timeout 250ms, got %v", cfg.HTTP.Timeout)
	}
	if !cfg.HTTP.NoVerify {
		t.Error("expected no_verify from environment")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("gofetch", &cfg,
		WithFileSystem(&mockFS{files: map[string]bool{}}),
		WithDefault("http.timeout", "3s"),
		WithDefault("name", "from-default"),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.HTTP.Timeout != 3*time.Second {
		t.Errorf("expected timeout 3s, got %v", cfg.HTTP.Timeout)
	}
	if cfg.Name != "from-default" {
		t.Errorf("expected name 'from-default', got %q", cfg.Name)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "GOFETCH_ENVFILE_PROBE=loaded\n")
	t.Cleanup(func() { os.Unsetenv("GOFETCH_ENVFILE_PROBE") })

	type probeConfig struct {
		Envfile struct {
			Probe string `mapstructure:"probe"`
		} `mapstructure:"envfile"`
	}

	var cfg probeConfig
	if err := LoadConfig("gofetch", &cfg, WithEnvFile(envPath)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Envfile.Probe != "loaded" {
		t.Errorf("expected value from .env file, got %q", cfg.Envfile.Probe)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("gofetch", &cfg, WithConfigFile("/nonexistent/gofetch.yml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gofetch.yml", "http: [unclosed\n")

	var cfg testConfig
	if err := LoadConfig("gofetch", &cfg, WithConfigFile(path)); err == nil {
		t.Fatal("expected parse error")
	}
}

type mockFS struct {
	files     map[string]bool
	configDir string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }
func (m *mockFS) UserConfigDir() (string, error) {
	return m.configDir, nil
}

func TestResolverWorkingDirectory(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./gofetch.yml": true,
		".env":          true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("gofetch", LoaderConfig{})

	if files.ConfigFile != "./gofetch.yml" {
		t.Errorf("expected ./gofetch.yml, got %q", files.ConfigFile)
	}
	if files.EnvFile != ".env" {
		t.Errorf("expected .env, got %q", files.EnvFile)
	}
}

func TestResolverUserConfigDir(t *testing.T) {
	want := filepath.Join("/home/u/.config", "gofetch", "config.yml")
	fs := &mockFS{
		files:     map[string]bool{want: true, ".env.gofetch": true, ".env": true},
		configDir: "/home/u/.config",
	}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("gofetch", LoaderConfig{})

	if files.ConfigFile != want {
		t.Errorf("expected %q, got %q", want, files.ConfigFile)
	}
	if files.EnvFile != ".env.gofetch" {
		t.Errorf("expected app-specific env file first, got %q", files.EnvFile)
	}
}

func TestResolverExplicitPaths(t *testing.T) {
	resolver := &Resolver{FileSystem: &mockFS{files: map[string]bool{"./gofetch.yml": true}}}
	files := resolver.ResolveFiles("gofetch", LoaderConfig{ConfigFile: "/etc/gofetch.yml", EnvFile: "/etc/gofetch.env"})

	if files.ConfigFile != "/etc/gofetch.yml" || files.EnvFile != "/etc/gofetch.env" {
		t.Errorf("expected explicit paths, got %+v", files)
	}
}

func TestGenerateEnvKeyVariants(t *testing.T) {
	variants := generateEnvKeyVariants("FETCH_TLS_SKIP_VERIFY")
	for _, want := range []string{"fetch_tls_skip_verify", "fetch.tls.skip.verify", "fetch.tls.skip_verify", "fetch.tls_skip_verify"} {
		if !slices.Contains(variants, want) {
			t.Errorf("expected variant %q in %v", want, variants)
		}
	}

	if got := generateEnvKeyVariants("NAME"); len(got) != 1 || got[0] != "name" {
		t.Errorf("expected [name], got %v", got)
	}
}

func TestEnvPrefix(t *testing.T) {
	if got := envPrefix("go-fetch"); got != "GO_FETCH_" {
		t.Errorf("expected GO_FETCH_, got %q", got)
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithDefault("fetch.timeout", "60s")(&lc)

	if lc.FileSystem == nil {
		t.Error("expected FileSystem to be set")
	}
	if lc.ConfigFile != "/path/to/config.yml" {
		t.Errorf("expected config file path, got %q", lc.ConfigFile)
	}
	if lc.EnvFile != "/path/to/.env" {
		t.Errorf("expected env file path, got %q", lc.EnvFile)
	}
	if lc.Defaults["fetch.timeout"] != "60s" {
		t.Errorf("expected default, got %v", lc.Defaults["fetch.timeout"])
	}
}
