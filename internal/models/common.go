package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Timestamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// EnsureCode генерирует код вида "<префикс>-<8 hex>", если код не задан
func EnsureCode(code, prefix string) string {
	if code != "" {
		return code
	}
	return fmt.Sprintf("%s-%s", prefix, strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// GalleryFromStrings упаковывает список URL в JSON-колонку
func GalleryFromStrings(urls []string) datatypes.JSON {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// ParseGallery разбирает JSON-колонку галереи в список URL.
// Невалидный JSON трактуется как пустая галерея.
func ParseGallery(value datatypes.JSON) []string {
	if len(value) == 0 {
		return []string{}
	}
	var raw []interface{}
	if err := json.Unmarshal(value, &raw); err != nil {
		return []string{}
	}
	urls := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			urls = append(urls, s)
		}
	}
	return urls
}

// SplitSpecs разбивает многострочные характеристики на список
func SplitSpecs(specs string) []string {
	if specs == "" {
		return []string{}
	}
	lines := strings.Split(specs, "\n")
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}
