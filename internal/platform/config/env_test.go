package config

import "testing"

type testConfig struct {
	Addr string `env:"NARRATOR_TEST_ADDR" envDefault:"localhost:9000"`
	Name string `env:"NARRATOR_TEST_NAME"`
}

// TestParseEnvDefaults ensures envDefault values apply when unset.
func TestParseEnvDefaults(t *testing.T) {
	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv returned error: %v", err)
	}
	if cfg.Addr != "localhost:9000" {
		t.Fatalf("expected default addr, got %q", cfg.Addr)
	}
}

// TestParseEnvReadsVariables ensures set variables override defaults.
func TestParseEnvReadsVariables(t *testing.T) {
	t.Setenv("NARRATOR_TEST_ADDR", "localhost:7000")
	t.Setenv("NARRATOR_TEST_NAME", "narrator")

	var cfg testConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv returned error: %v", err)
	}
	if cfg.Addr != "localhost:7000" {
		t.Fatalf("expected env addr, got %q", cfg.Addr)
	}
	if cfg.Name != "narrator" {
		t.Fatalf("expected env name, got %q", cfg.Name)
	}
}
