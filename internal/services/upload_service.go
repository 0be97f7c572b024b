package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"coffeezone_backend/internal/services/dto"
	"coffeezone_backend/internal/storage"
	"coffeezone_backend/pkg/apperrors"

	"github.com/google/uuid"
)

// UploadService принимает изображения для карточек каталога.
// Файл сохраняется до записи URL в каталог: админка сначала
// загружает картинку, потом подставляет полученный URL в сущность.
type UploadService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error)
	// UploadCommit сохраняет файл и вызывает commit с его публичным URL.
	// Если commit вернул ошибку, осиротевший файл удаляется.
	UploadCommit(ctx context.Context, file *multipart.FileHeader, commit func(url string) error) (*dto.UploadResponse, error)
}

type uploadService struct {
	store      storage.Storage
	maxSize    int64
	allowedExt map[string]bool
}

func NewUploadService(store storage.Storage, maxSize int64, allowedExt []string) UploadService {
	allowed := make(map[string]bool, len(allowedExt))
	for _, ext := range allowedExt {
		allowed[strings.ToLower(ext)] = true
	}
	return &uploadService{
		store:      store,
		maxSize:    maxSize,
		allowedExt: allowed,
	}
}

func (s *uploadService) Upload(ctx context.Context, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	return s.UploadCommit(ctx, file, nil)
}

func (s *uploadService) UploadCommit(ctx context.Context, file *multipart.FileHeader, commit func(url string) error) (*dto.UploadResponse, error) {
	if file.Size > s.maxSize {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("File is too large, limit is %d bytes", s.maxSize))
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !s.allowedExt[ext] {
		return nil, apperrors.NewBadRequestError("File type is not allowed")
	}

	src, err := file.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	// Имя файла случайное, клиентское имя не используется.
	// Файлы раскладываются по месяцам, чтобы директория не разрасталась.
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	path := filepath.Join(time.Now().UTC().Format("2006-01"), name)

	if err := s.store.Save(ctx, path, src); err != nil {
		return nil, apperrors.InternalError(err)
	}

	url := s.store.GetURL(filepath.ToSlash(path))
	if commit != nil {
		// Файл сохраняется до записи URL в каталог; если запись не
		// удалась, подчищаем осиротевший файл.
		if err := commit(url); err != nil {
			_ = s.store.Delete(ctx, path)
			return nil, err
		}
	}

	return &dto.UploadResponse{URL: url}, nil
}
