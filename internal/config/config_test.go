package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	p := writeFile(t, t.TempDir(), "gosfd.yaml", `
server:
  addr: ":9090"
  shutdown_timeout: 2s
  rate_limit: 1.5
  rate_burst: 3
plot:
  width_in: 10
  height_in: 6
log:
  debug: true
report:
  author: "J. Dela Cruz"
`)

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.ShutdownTimeout != 2*time.Second {
		t.Errorf("shutdown timeout = %s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Server.RateLimit != 1.5 || cfg.Server.RateBurst != 3 {
		t.Errorf("rate = %v/%d", cfg.Server.RateLimit, cfg.Server.RateBurst)
	}
	if cfg.Plot.WidthIn != 10 || cfg.Plot.HeightIn != 6 {
		t.Errorf("plot = %+v", cfg.Plot)
	}
	if !cfg.Log.Debug {
		t.Error("expected debug")
	}
	if cfg.Report.Author != "J. Dela Cruz" {
		t.Errorf("author = %q", cfg.Report.Author)
	}
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	p := writeFile(t, t.TempDir(), "partial.yaml", "plot:\n  width_in: 12\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if cfg.Server != def.Server {
		t.Errorf("server = %+v, want defaults %+v", cfg.Server, def.Server)
	}
	if cfg.Plot.WidthIn != 12 || cfg.Plot.HeightIn != def.Plot.HeightIn {
		t.Errorf("plot = %+v", cfg.Plot)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	p := writeFile(t, t.TempDir(), "empty.yaml", "")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadUnknownKey(t *testing.T) {
	p := writeFile(t, t.TempDir(), "bad.yaml", "server:\n  port: 80\n")
	if _, err := Load(p); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	p := writeFile(t, t.TempDir(), "gosfd.yaml", "server:\n  addr: \":9090\"\n")
	t.Setenv("GOSFD_ADDR", "127.0.0.1:7000")
	t.Setenv("GOSFD_RATE_BURST", "20")
	t.Setenv("GOSFD_DEBUG", "true")

	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.RateBurst != 20 {
		t.Errorf("burst = %d", cfg.Server.RateBurst)
	}
	if !cfg.Log.Debug {
		t.Error("expected debug from env")
	}
}

func TestApplyEnvReportsAllBadValues(t *testing.T) {
	env := map[string]string{
		"GOSFD_DEBUG":      "sometimes",
		"GOSFD_RATE_LIMIT": "fast",
	}
	cfg := Default()
	err := cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"GOSFD_DEBUG", "GOSFD_RATE_LIMIT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err.Error(), want)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	cfg := Default()
	cfg.Server.Addr = ""
	cfg.Server.RateBurst = 0
	cfg.Plot.WidthIn = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"server.addr", "server.rate_burst", "plot size"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %s", err.Error(), want)
		}
	}
}
