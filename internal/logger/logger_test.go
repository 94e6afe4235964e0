package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetupWritesJSONToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	cleanup, err := Setup(Config{Dir: dir, Debug: true})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	L().Info("calc.completed", "max_shear", "50.00")
	if Path() != filepath.Join(dir, FileName) {
		t.Fatalf("Path() = %q", Path())
	}
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if Path() != "" {
		t.Fatal("Path should be empty after cleanup")
	}

	b, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatal(err)
	}
	var found bool
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		if rec["msg"] == "calc.completed" {
			found = true
			if rec["max_shear"] != "50.00" {
				t.Errorf("max_shear = %v", rec["max_shear"])
			}
			ts, _ := rec["time"].(string)
			if !strings.HasSuffix(ts, "Z") {
				t.Errorf("time %q is not UTC", ts)
			}
		}
	}
	if !found {
		t.Fatal("log record not written")
	}
}

func TestSetupWithoutDir(t *testing.T) {
	cleanup, err := Setup(Config{})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer cleanup()

	if Path() != "" {
		t.Fatalf("Path() = %q, want empty", Path())
	}
	if L() == nil {
		t.Fatal("logger is nil")
	}
}
