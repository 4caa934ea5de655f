package storage

import (
	"bytes"
	"testing"
)

func TestBoltStoreSavesAndLoadsSeries(t *testing.T) {
	store, err := NewStore("bbolt", t.TempDir()+"/snapshots.db")
	if err != nil {
		t.Fatalf("NewStore bbolt: %v", err)
	}
	defer store.Close()

	const key = "mod13q1_512/-12,-54/2020-01-01..2020-01-17"
	doc := []byte(`{"result":{"timeline":["2020-01-01"]}}`)

	if _, found, err := store.LoadSeries(key); err != nil || found {
		t.Fatalf("expected empty store, found=%v err=%v", found, err)
	}

	if err := store.SaveSeries(key, doc); err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}

	got, found, err := store.LoadSeries(key)
	if err != nil {
		t.Fatalf("LoadSeries: %v", err)
	}
	if !found || !bytes.Equal(got, doc) {
		t.Fatalf("expected stored document back, found=%v got=%s", found, got)
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != key {
		t.Fatalf("unexpected keys: %v", keys)
	}
}

func TestBoltStoreReplacesSnapshot(t *testing.T) {
	store, err := NewStore("bbolt", t.TempDir()+"/snapshots.db")
	if err != nil {
		t.Fatalf("NewStore bbolt: %v", err)
	}
	defer store.Close()

	if err := store.SaveSeries("k", []byte("first")); err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}
	if err := store.SaveSeries("k", []byte("second")); err != nil {
		t.Fatalf("SaveSeries: %v", err)
	}

	got, found, err := store.LoadSeries("k")
	if err != nil || !found {
		t.Fatalf("LoadSeries: found=%v err=%v", found, err)
	}
	if string(got) != "second" {
		t.Fatalf("expected replacement snapshot, got %s", got)
	}
}

func TestNewStoreSupportsNoop(t *testing.T) {
	store, err := NewStore("none", "")
	if err != nil {
		t.Fatalf("NewStore none: %v", err)
	}
	if err := store.SaveSeries("x", []byte("{}")); err != nil {
		t.Fatalf("noop store SaveSeries: %v", err)
	}
	if _, found, err := store.LoadSeries("x"); err != nil || found {
		t.Fatalf("noop store should not find anything, found=%v err=%v", found, err)
	}
}

func TestNewStoreRejectsUnknownType(t *testing.T) {
	if _, err := NewStore("redis", ""); err == nil {
		t.Fatal("expected unsupported storage type error, got nil")
	}
}
