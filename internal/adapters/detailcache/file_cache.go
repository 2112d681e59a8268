package detailcache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileCacheAdapter реализует DetailCachePort как файл-на-ключ.
// Ключ "item:auction:123" превращается в <root>/item/auction/123.json,
// "customer:5" — в <root>/customer/5.json.
type FileCacheAdapter struct {
	root string
}

// NewFileCacheAdapter создает кэш в указанном каталоге.
func NewFileCacheAdapter(root string) (*FileCacheAdapter, error) {
	if root == "" {
		return nil, fmt.Errorf("cache root directory cannot be empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory %s: %w", root, err)
	}
	return &FileCacheAdapter{root: root}, nil
}

func (a *FileCacheAdapter) path(key string) string {
	parts := strings.Split(key, ":")
	last := len(parts) - 1
	elems := append([]string{a.root}, parts[:last]...)
	elems = append(elems, parts[last]+".json")
	return filepath.Join(elems...)
}

// Has сообщает, есть ли запись с таким ключом.
func (a *FileCacheAdapter) Has(key string) bool {
	_, err := os.Stat(a.path(key))
	return err == nil
}

// Get читает запись кэша.
func (a *FileCacheAdapter) Get(key string) ([]byte, error) {
	blob, err := os.ReadFile(a.path(key))
	if err != nil {
		return nil, fmt.Errorf("failed to read cache entry %s: %w", key, err)
	}
	return blob, nil
}

// Put записывает запись кэша, создавая недостающие каталоги.
func (a *FileCacheAdapter) Put(key string, blob []byte) error {
	p := a.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create cache subdirectory for %s: %w", key, err)
	}
	if err := os.WriteFile(p, blob, 0o644); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// Delete удаляет одну запись; отсутствие записи не ошибка.
func (a *FileCacheAdapter) Delete(key string) error {
	if err := os.Remove(a.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete cache entry %s: %w", key, err)
	}
	return nil
}

// Purge очищает кэш целиком.
func (a *FileCacheAdapter) Purge() error {
	if err := os.RemoveAll(a.root); err != nil {
		return fmt.Errorf("failed to purge cache directory %s: %w", a.root, err)
	}
	return os.MkdirAll(a.root, 0o755)
}

// Close ничего не делает для файлового бэкенда.
func (a *FileCacheAdapter) Close() error { return nil }
