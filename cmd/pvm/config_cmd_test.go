package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pvm-php/pvm/internal/config"
)

func TestConfigInit(t *testing.T) {
	root := setupHome(t)

	tests := []struct {
		name string
		args []string
		path string
	}{
		{"default path", []string{"config", "init"}, "pvm.yml"},
		{"explicit path", []string{"config", "init", filepath.Join("nested", "custom.yml")}, filepath.Join("nested", "custom.yml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runPvm(t, debianHost, tt.args...)
			if err != nil {
				t.Fatalf("config init: %v", err)
			}
			if !strings.Contains(out, "Configuration file created at: "+tt.path) {
				t.Errorf("unexpected output:\n%s", out)
			}

			data, err := os.ReadFile(tt.path)
			if err != nil {
				t.Fatalf("reading generated config: %v", err)
			}
			if !strings.HasPrefix(string(data), "# PVM - Global Configuration") {
				t.Errorf("expected commented header, got:\n%s", data)
			}

			loaded, err := config.LoadGlobalConfig(tt.path)
			if err != nil {
				t.Fatalf("generated config does not load: %v", err)
			}
			if loaded.RootDir != root {
				t.Errorf("RootDir = %q, want %q", loaded.RootDir, root)
			}
		})
	}
}

func TestConfigShow(t *testing.T) {
	root := setupHome(t)

	out, err := runPvm(t, debianHost, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{
		"(defaults)",
		filepath.Join(root, "builds"),
		filepath.Join(root, "versions"),
		"info",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	setupHome(t)

	out, err := runPvm(t, debianHost, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "pvm v") {
		t.Errorf("unexpected version output:\n%s", out)
	}
}

func TestConfigShowFromFile(t *testing.T) {
	setupHome(t)
	dir := t.TempDir()
	root := filepath.Join(dir, "pvm")
	versions := filepath.Join(dir, "php")
	cfgPath := filepath.Join(dir, "pvm.yml")
	content := "root_dir: " + root + "\nversions_dir: " + versions + "\nlogging:\n  level: debug\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := runPvm(t, debianHost, "--config", cfgPath, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	for _, want := range []string{cfgPath, root, filepath.Join(root, "builds"), versions, "debug"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestConfigFileWithUnknownKeyFails(t *testing.T) {
	setupHome(t)
	cfgPath := filepath.Join(t.TempDir(), "pvm.yml")
	if err := os.WriteFile(cfgPath, []byte("root_dir: /opt/pvm\nversions_dr: /srv/php\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := runPvm(t, debianHost, "--config", cfgPath, "ls")
	if err == nil || !strings.Contains(err.Error(), "schema validation failed") {
		t.Fatalf("expected schema validation error, got %v", err)
	}
}
