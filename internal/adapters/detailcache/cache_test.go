package detailcache

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"zakupki-parser/internal/core/port"
)

func TestCacheBackends(t *testing.T) {
	backends := []struct {
		name string
		open func(t *testing.T) port.DetailCachePort
	}{
		{
			name: "file",
			open: func(t *testing.T) port.DetailCachePort {
				cache, err := NewFileCacheAdapter(t.TempDir())
				if err != nil {
					t.Fatalf("open file cache: %v", err)
				}
				return cache
			},
		},
		{
			name: "pebble",
			open: func(t *testing.T) port.DetailCachePort {
				cache, err := NewPebbleCacheAdapter(t.TempDir())
				if err != nil {
					t.Fatalf("open pebble cache: %v", err)
				}
				return cache
			},
		},
	}

	for _, backend := range backends {
		t.Run(backend.name, func(t *testing.T) {
			t.Run("put get has", func(t *testing.T) {
				cache := backend.open(t)
				defer cache.Close()

				key := "item:auction:9103001"
				blob := []byte(`{"name":"Поставка бумаги"}`)

				if cache.Has(key) {
					t.Error("Has on empty cache = true")
				}
				if _, err := cache.Get(key); err == nil {
					t.Error("Get on empty cache succeeded")
				}

				if err := cache.Put(key, blob); err != nil {
					t.Fatalf("Put: %v", err)
				}
				if !cache.Has(key) {
					t.Error("Has after Put = false")
				}
				got, err := cache.Get(key)
				if err != nil {
					t.Fatalf("Get: %v", err)
				}
				if !bytes.Equal(got, blob) {
					t.Errorf("Get = %s, want %s", got, blob)
				}
			})

			t.Run("put overwrites", func(t *testing.T) {
				cache := backend.open(t)
				defer cache.Close()

				key := "customer:5"
				if err := cache.Put(key, []byte(`old`)); err != nil {
					t.Fatalf("Put: %v", err)
				}
				if err := cache.Put(key, []byte(`new`)); err != nil {
					t.Fatalf("Put: %v", err)
				}
				got, err := cache.Get(key)
				if err != nil {
					t.Fatalf("Get: %v", err)
				}
				if string(got) != "new" {
					t.Errorf("Get = %s, want new", got)
				}
			})

			t.Run("delete", func(t *testing.T) {
				cache := backend.open(t)
				defer cache.Close()

				key := "item:need:7001"
				if err := cache.Put(key, []byte(`{}`)); err != nil {
					t.Fatalf("Put: %v", err)
				}
				if err := cache.Delete(key); err != nil {
					t.Fatalf("Delete: %v", err)
				}
				if cache.Has(key) {
					t.Error("Has after Delete = true")
				}
				// Deleting a missing entry is not an error.
				if err := cache.Delete(key); err != nil {
					t.Errorf("Delete of missing entry: %v", err)
				}
			})

			t.Run("purge", func(t *testing.T) {
				cache := backend.open(t)
				defer cache.Close()

				keys := []string{"item:auction:1", "item:need:2", "customer:3"}
				for _, key := range keys {
					if err := cache.Put(key, []byte(`{}`)); err != nil {
						t.Fatalf("Put %s: %v", key, err)
					}
				}
				if err := cache.Purge(); err != nil {
					t.Fatalf("Purge: %v", err)
				}
				for _, key := range keys {
					if cache.Has(key) {
						t.Errorf("Has(%s) after Purge = true", key)
					}
				}
				// Cache stays usable after a purge.
				if err := cache.Put("customer:9", []byte(`{}`)); err != nil {
					t.Errorf("Put after Purge: %v", err)
				}
			})
		})
	}
}

func TestFileCacheLayout(t *testing.T) {
	root := t.TempDir()
	cache, err := NewFileCacheAdapter(root)
	if err != nil {
		t.Fatalf("open file cache: %v", err)
	}

	if err := cache.Put("item:auction:9103001", []byte(`{}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := cache.Put("customer:2770", []byte(`{}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	for _, p := range []string{
		filepath.Join(root, "item", "auction", "9103001.json"),
		filepath.Join(root, "customer", "2770.json"),
	} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("expected cache file %s: %v", p, err)
		}
	}
}

func TestFileCacheRejectsEmptyRoot(t *testing.T) {
	if _, err := NewFileCacheAdapter(""); err == nil {
		t.Fatal("expected error for empty cache root")
	}
}
