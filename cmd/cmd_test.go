package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/kcal/internal/quantity"
	"github.com/theirongolddev/kcal/internal/store"
	"github.com/theirongolddev/kcal/internal/tracker"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		args []string
		want int
	}{
		{[]string{"250"}, 250},
		{[]string{"-50"}, -50},
		{[]string{"250", "+", "180"}, 430},
		{[]string{"2*120"}, 240},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.args)
		if err != nil {
			t.Fatalf("parseAmount(%q) error: %v", tt.args, err)
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %d, want %d", tt.args, got, tt.want)
		}
	}

	if _, err := parseAmount([]string{"lots"}); !errors.Is(err, quantity.ErrNotNumeric) {
		t.Errorf("parseAmount(lots) error = %v, want ErrNotNumeric", err)
	}
}

func TestResolvePreset(t *testing.T) {
	tr := tracker.New(store.NewMemory(nil))

	p, err := resolvePreset(tr, "2")
	if err != nil {
		t.Fatalf("resolvePreset(2): %v", err)
	}
	if p.Name != "Banana" {
		t.Errorf("resolvePreset(2) = %q, want Banana", p.Name)
	}

	p, err = resolvePreset(tr, "protein shake")
	if err != nil {
		t.Fatalf("resolvePreset(protein shake): %v", err)
	}
	if p.Calories != 150 {
		t.Errorf("Protein Shake calories = %d, want 150", p.Calories)
	}

	if _, err := resolvePreset(tr, "99"); err == nil {
		t.Error("resolvePreset(99) should fail")
	}
}

func TestFilterDetachArg(t *testing.T) {
	got := filterDetachArg([]string{"daemon", "--detach", "--addr", "127.0.0.1:9000", "--detach=true"})
	want := []string{"daemon", "--addr", "127.0.0.1:9000"}
	if len(got) != len(want) {
		t.Fatalf("filterDetachArg len = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("filterDetachArg[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRuntimeStateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kcal.pid")

	if err := ensureDaemonNotRunning(path); err != nil {
		t.Fatalf("missing pid file: %v", err)
	}

	want := daemonRuntimeState{PID: os.Getpid(), Addr: "127.0.0.1:9000", Store: "/tmp/kcal.db"}
	if err := writeRuntimeState(path, want); err != nil {
		t.Fatalf("writeRuntimeState: %v", err)
	}
	got, err := readRuntimeState(path)
	if err != nil {
		t.Fatalf("readRuntimeState: %v", err)
	}
	if got.PID != want.PID || got.Addr != want.Addr || got.Store != want.Store {
		t.Errorf("runtime state = %+v, want %+v", got, want)
	}

	// The test process is alive, so the pid file counts as a running daemon.
	if err := ensureDaemonNotRunning(path); err == nil {
		t.Error("ensureDaemonNotRunning should fail for a live pid")
	}

	if err := os.WriteFile(path, []byte("garbage"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := readRuntimeState(path); err == nil {
		t.Error("readRuntimeState should reject a malformed file")
	}
	if err := ensureDaemonNotRunning(path); err != nil {
		t.Fatalf("malformed pid file: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("malformed pid file should be removed")
	}
}
