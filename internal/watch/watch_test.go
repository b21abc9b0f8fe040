package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRelevant(t *testing.T) {
	w := &Watcher{base: "kcal.db"}
	tests := []struct {
		name string
		want bool
	}{
		{"/data/kcal.db", true},
		{"/data/kcal.db-wal", true},
		{"/data/kcal.db-journal", true},
		{"/data/kcal.db-shm", false},
		{"/data/other.db", false},
		{"/data/kcal.dbx", false},
	}
	for _, tt := range tests {
		if got := w.Relevant(tt.name); got != tt.want {
			t.Errorf("Relevant(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRun_CoalescesWrites(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "kcal.db")

	w, err := New(db, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = w.Close() }()
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan struct{}, 10)
	go w.Run(ctx, func() { changes <- struct{}{} })

	for i := 0; i < 3; i++ {
		if err := os.WriteFile(db, []byte{byte(i)}, 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case <-changes:
		t.Fatal("burst reported more than once")
	case <-time.After(300 * time.Millisecond):
	}
}
