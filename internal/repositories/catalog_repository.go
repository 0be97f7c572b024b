package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// ============================================
// ОБЩИЕ ОПЕРАЦИИ НАД СЛОВАРЯМИ КАТАЛОГА
// ============================================
//
// Словарные сущности (техника, каркасы, цвета) имеют одинаковую форму
// доступа, поэтому CRUD для них обобщенный. Вариации и комплекты со
// своей логикой живут в отдельных репозиториях.

// ListActive возвращает активные записи, отсортированные по id
func ListActive[T any](db *gorm.DB) ([]T, error) {
	var items []T
	err := db.Where("active = ?", true).Order("id").Find(&items).Error
	return items, err
}

// List возвращает все записи (для админки), отсортированные по id
func List[T any](db *gorm.DB) ([]T, error) {
	var items []T
	err := db.Order("id").Find(&items).Error
	return items, err
}

// FindByID ищет запись по первичному ключу
func FindByID[T any](db *gorm.DB, id int) (*T, error) {
	var item T
	err := db.First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// ExistsActive проверяет, что запись существует и активна
func ExistsActive[T any](db *gorm.DB, id int) (bool, error) {
	var count int64
	var model T
	err := db.Model(&model).Where("id = ? AND active = ?", id, true).Count(&count).Error
	return count > 0, err
}

// CodeTaken проверяет занятость кода другой записью
func CodeTaken[T any](db *gorm.DB, code string, excludeID int) (bool, error) {
	var count int64
	var model T
	err := db.Model(&model).Where("code = ? AND id <> ?", code, excludeID).Count(&count).Error
	return count > 0, err
}

// Create сохраняет новую запись
func Create[T any](db *gorm.DB, item *T) error {
	return db.Create(item).Error
}

// Save перезаписывает все поля записи
func Save[T any](db *gorm.DB, item *T) error {
	return db.Save(item).Error
}

// DeleteByID удаляет запись по первичному ключу
func DeleteByID[T any](db *gorm.DB, id int) error {
	var model T
	result := db.Delete(&model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountWhere считает записи по произвольному условию
func CountWhere[T any](db *gorm.DB, query string, args ...interface{}) (int64, error) {
	var count int64
	var model T
	err := db.Model(&model).Where(query, args...).Count(&count).Error
	return count, err
}
