package port

// DetailCachePort определяет контракт рабочего кэша детальных ответов.
// Промах кэша не является ошибкой — он означает "нужно сходить на портал".
// Вытеснения нет: записи живут до явного Purge в конце успешного прогона.
type DetailCachePort interface {
	Has(key string) bool
	Get(key string) ([]byte, error)
	Put(key string, blob []byte) error

	// Delete удаляет одну запись; используется, когда закэшированное тело
	// оказалось некорректным (встроенный 404).
	Delete(key string) error

	// Purge очищает кэш целиком.
	Purge() error

	Close() error
}
