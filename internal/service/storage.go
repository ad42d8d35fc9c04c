package service

import "mime/multipart"

// FileStorage абстрагирует хранилище загруженных файлов
type FileStorage interface {
	// Save сохраняет файл и возвращает сохраненное имя
	Save(file *multipart.FileHeader) (string, error)
	Delete(storedName string) error
	// PublicURL возвращает URL, по которому файл доступен клиенту
	PublicURL(storedName string) string
}
