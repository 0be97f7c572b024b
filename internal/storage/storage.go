package storage

import (
	"context"
	"fmt"
	"io"
)

// Storage - абстракция файлового хранилища для загружаемых изображений
type Storage interface {
	Save(ctx context.Context, path string, reader io.Reader) error
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) (bool, error)
	// GetURL возвращает публичный URL файла
	GetURL(path string) string
}

// Config - настройки хранилища
type Config struct {
	BasePath  string
	URLPrefix string
}

// NewStorage создает хранилище (сейчас поддерживается только локальное)
func NewStorage(cfg Config) (Storage, error) {
	store, err := NewLocalStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init local storage: %w", err)
	}
	return store, nil
}
