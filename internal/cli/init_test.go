package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/tjporte/internal/config"
	"github.com/ppiankov/tjporte/internal/roles"
)

func TestRunInit_WritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	configPath = path
	initForce = false
	t.Cleanup(func() { configPath = "" })

	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not created: %v", err)
	}
	if !strings.HasPrefix(string(data), "# TJ-Porte") {
		t.Error("config missing header")
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("written config does not load: %v", err)
	}
	if cfg.Roles != roles.DefaultTable() {
		t.Errorf("roles = %+v, want defaults", cfg.Roles)
	}
	if cfg.DecisionTimeout != config.DefaultConfig().DecisionTimeout {
		t.Errorf("decision_timeout = %s", cfg.DecisionTimeout)
	}
}

func TestRunInit_NoOverwriteWithoutForce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	configPath = path
	t.Cleanup(func() { configPath = ""; initForce = false })

	sentinel := "# sentinel content\n"
	if err := os.WriteFile(path, []byte(sentinel), 0o644); err != nil {
		t.Fatal(err)
	}

	initForce = false
	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit failed: %v", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != sentinel {
		t.Error("config was overwritten without --force")
	}

	initForce = true
	if err := runInit(nil, nil); err != nil {
		t.Fatalf("runInit --force failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) == sentinel {
		t.Error("config was not overwritten with --force")
	}
}

func TestDoctorChecks(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing token and config", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "")
		checks := doctorChecks(filepath.Join(dir, "absent.yaml"))
		failed := failedLabels(checks)
		if !failed["token"] || !failed["config file"] {
			t.Errorf("expected token and config file failures, got %+v", checks)
		}
		if failed["roles"] {
			t.Error("default roles should pass")
		}
	})

	t.Run("duplicate roles", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "abc")
		path := filepath.Join(dir, "dup.yaml")
		if err := os.WriteFile(path, []byte("roles:\n  judge: Advogado\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		failed := failedLabels(doctorChecks(path))
		if failed["token"] || !failed["config"] {
			t.Errorf("expected only config failure, got %v", failed)
		}
	})

	t.Run("healthy", func(t *testing.T) {
		t.Setenv(config.TokenEnv, "abc")
		path := filepath.Join(dir, "ok.yaml")
		if err := os.WriteFile(path, []byte("guild_id: \"123\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		checks := doctorChecks(path)
		if failed := failedLabels(checks); len(failed) != 0 {
			t.Errorf("unexpected failures %v", failed)
		}
		last := checks[len(checks)-1]
		if last.label != "command scope" || last.detail != "guild 123" {
			t.Errorf("unexpected scope check %+v", last)
		}
	})
}

func failedLabels(checks []checkResult) map[string]bool {
	failed := make(map[string]bool)
	for _, c := range checks {
		if !c.ok {
			failed[c.label] = true
		}
	}
	return failed
}
