package store

import (
	"path/filepath"
	"testing"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "nested", FileName))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDB_GetMissing(t *testing.T) {
	db := openTemp(t)

	v, ok, err := db.Get("nope")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || v != "" {
		t.Fatalf("Get(nope) = %q, %v; want \"\", false", v, ok)
	}
}

func TestDB_SetOverwrites(t *testing.T) {
	db := openTemp(t)

	if err := db.Set("k", `{"a":1}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Set("k", `{"a":2}`); err != nil {
		t.Fatalf("Set: %v", err)
	}

	v, ok, err := db.Get("k")
	if err != nil || !ok {
		t.Fatalf("Get: %q, %v, %v", v, ok, err)
	}
	if v != `{"a":2}` {
		t.Errorf("Get(k) = %q, want {\"a\":2}", v)
	}
}

func TestDB_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Set("calorieTrackerStateV2", `{"goal":1800,"history":{}}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	_ = db.Close()

	db, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = db.Close() }()

	v, ok, err := db.Get("calorieTrackerStateV2")
	if err != nil || !ok {
		t.Fatalf("Get after reopen: %q, %v, %v", v, ok, err)
	}
}

func TestDB_KeysSorted(t *testing.T) {
	db := openTemp(t)
	for _, k := range []string{"b", "a", "c", "a"} {
		if err := db.Set(k, "x"); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := db.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[1] != "b" || keys[2] != "c" {
		t.Fatalf("Keys = %v, want [a b c]", keys)
	}
}

func TestMemory_SeedIsCopied(t *testing.T) {
	seed := map[string]string{"k": "v"}
	m := NewMemory(seed)
	seed["k"] = "changed"

	v, ok, _ := m.Get("k")
	if !ok || v != "v" {
		t.Fatalf("Get(k) = %q, %v; want v, true", v, ok)
	}
}
