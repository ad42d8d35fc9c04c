package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LocalStorage сохраняет загруженные файлы на локальный диск
// и раздает их по публичному URL-префиксу
type LocalStorage struct {
	dir          string
	publicPrefix string
}

// NewLocalStorage создает хранилище и каталог для загрузок при необходимости
func NewLocalStorage(dir, publicPrefix string) (*LocalStorage, error) {
	if dir == "" {
		return nil, fmt.Errorf("uploads dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create uploads dir: %w", err)
	}
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &LocalStorage{dir: dir, publicPrefix: publicPrefix}, nil
}

// Dir возвращает каталог хранилища для раздачи статики
func (s *LocalStorage) Dir() string {
	return s.dir
}

// Save сохраняет файл под уникальным именем с меткой времени
// и возвращает сохраненное имя
func (s *LocalStorage) Save(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	storedName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), sanitizeFilename(file.Filename))
	dstPath := filepath.Join(s.dir, storedName)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", err
	}
	return storedName, nil
}

// Delete удаляет сохраненный файл; отсутствие файла не считается ошибкой
func (s *LocalStorage) Delete(storedName string) error {
	if storedName == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.Base(storedName)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// PublicURL возвращает URL, по которому файл доступен клиенту
func (s *LocalStorage) PublicURL(storedName string) string {
	return s.publicPrefix + "/" + filepath.Base(storedName)
}

// sanitizeFilename убирает из имени файла разделители путей и управляющие символы
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.Map(func(r rune) rune {
		if r < 32 || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, name)
	if name == "" || name == "." || name == ".." {
		name = "file"
	}
	return name
}
