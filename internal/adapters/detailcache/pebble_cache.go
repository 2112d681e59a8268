package detailcache

import (
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"
)

// PebbleCacheAdapter реализует DetailCachePort поверх PebbleDB.
// Подходит для больших рабочих кэшей, где файл-на-ключ упирается
// в файловую систему.
type PebbleCacheAdapter struct {
	db *pebble.DB
}

// NewPebbleCacheAdapter открывает кэш в указанном каталоге.
func NewPebbleCacheAdapter(dir string) (*PebbleCacheAdapter, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache directory cannot be empty")
	}
	db, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &PebbleCacheAdapter{db: db}, nil
}

// Has сообщает, есть ли запись с таким ключом.
func (a *PebbleCacheAdapter) Has(key string) bool {
	_, closer, err := a.db.Get([]byte(key))
	if err != nil {
		return false
	}
	_ = closer.Close()
	return true
}

// Get читает запись кэша.
func (a *PebbleCacheAdapter) Get(key string) ([]byte, error) {
	v, closer, err := a.db.Get([]byte(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	blob := append([]byte(nil), v...)
	_ = closer.Close()
	return blob, nil
}

// Put записывает запись кэша.
func (a *PebbleCacheAdapter) Put(key string, blob []byte) error {
	if err := a.db.Set([]byte(key), blob, pebble.Sync); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// Delete удаляет одну запись; отсутствие записи не ошибка.
func (a *PebbleCacheAdapter) Delete(key string) error {
	if err := a.db.Delete([]byte(key), pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete cache entry %s: %w", key, err)
	}
	return nil
}

// Purge очищает кэш целиком: собирает ключи итератором и удаляет их
// одним батчем.
func (a *PebbleCacheAdapter) Purge() error {
	it, err := a.db.NewIter(nil)
	if err != nil {
		return fmt.Errorf("failed to iterate cache: %w", err)
	}
	var keys [][]byte
	for it.First(); it.Valid(); it.Next() {
		keys = append(keys, append([]byte(nil), it.Key()...))
	}
	if err := it.Close(); err != nil {
		return fmt.Errorf("failed to close cache iterator: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	wb := a.db.NewBatch()
	for _, k := range keys {
		_ = wb.Delete(k, nil)
	}
	if err := wb.Commit(pebble.Sync); err != nil {
		_ = wb.Close()
		return fmt.Errorf("failed to purge cache: %w", err)
	}
	return wb.Close()
}

// Close закрывает базу кэша.
func (a *PebbleCacheAdapter) Close() error { return a.db.Close() }
