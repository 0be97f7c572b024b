package services

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"coffeezone_backend/internal/excel"
	"coffeezone_backend/internal/models"
	"coffeezone_backend/internal/repositories"
	"coffeezone_backend/pkg/apperrors"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ImportResult - сводка импорта xlsx: сколько строк создано и обновлено,
// плюс ошибки по строкам (импорт не останавливается на первой)
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// ExcelService - выгрузка и загрузка словарей каталога в xlsx.
// Строки при импорте сопоставляются по колонке code.
type ExcelService interface {
	Export(db *gorm.DB, entity string) (*excelize.File, string, error)
	Import(db *gorm.DB, entity string, r io.Reader) (*ImportResult, error)
}

type excelEntity struct {
	sheet   string
	headers []string
	export  func(db *gorm.DB) ([][]interface{}, error)
	upsert  func(db *gorm.DB, row map[string]string) (created bool, err error)
}

type excelService struct {
	entities map[string]excelEntity
}

func NewExcelService() ExcelService {
	s := &excelService{entities: make(map[string]excelEntity)}

	catalogHeaders := []string{"id", "code", "name", "specs", "price", "active"}
	colorHeaders := []string{"id", "code", "name", "price_delta", "active"}

	s.entities["machines"] = excelEntity{
		sheet:   "Machines",
		headers: []string{"id", "code", "name", "short_title", "specs", "price", "active"},
		export: func(db *gorm.DB) ([][]interface{}, error) {
			items, err := repositories.List[models.CoffeeMachine](db)
			if err != nil {
				return nil, err
			}
			rows := make([][]interface{}, 0, len(items))
			for _, m := range items {
				rows = append(rows, []interface{}{m.ID, m.Code, m.Name, m.ShortTitle, m.Specs, m.Price, m.Active})
			}
			return rows, nil
		},
		upsert: func(db *gorm.DB, row map[string]string) (bool, error) {
			return upsertCatalogRow(db, row, func(m *models.CoffeeMachine) *models.CatalogItem {
				m.ShortTitle = row["short_title"]
				return &m.CatalogItem
			})
		},
	}
	s.entities["fridges"] = excelEntity{
		sheet:   "Fridges",
		headers: catalogHeaders,
		export:  exportCatalogRows[models.Fridge](func(f *models.Fridge) *models.CatalogItem { return &f.CatalogItem }),
		upsert: func(db *gorm.DB, row map[string]string) (bool, error) {
			return upsertCatalogRow(db, row, func(f *models.Fridge) *models.CatalogItem { return &f.CatalogItem })
		},
	}
	s.entities["carcasses"] = excelEntity{
		sheet:   "Carcasses",
		headers: catalogHeaders,
		export:  exportCatalogRows[models.Carcass](func(c *models.Carcass) *models.CatalogItem { return &c.CatalogItem }),
		upsert: func(db *gorm.DB, row map[string]string) (bool, error) {
			return upsertCatalogRow(db, row, func(c *models.Carcass) *models.CatalogItem { return &c.CatalogItem })
		},
	}
	s.entities["terminals"] = excelEntity{
		sheet:   "Terminals",
		headers: catalogHeaders,
		export:  exportCatalogRows[models.Terminal](func(t *models.Terminal) *models.CatalogItem { return &t.CatalogItem }),
		upsert: func(db *gorm.DB, row map[string]string) (bool, error) {
			return upsertCatalogRow(db, row, func(t *models.Terminal) *models.CatalogItem { return &t.CatalogItem })
		},
	}
	s.entities["carcass_colors"] = excelEntity{
		sheet:   "CarcassColors",
		headers: colorHeaders,
		export:  exportColorRows[models.CarcassColor](func(c *models.CarcassColor) *models.ColorItem { return &c.ColorItem }),
		upsert: func(db *gorm.DB, row map[string]string) (bool, error) {
			return upsertColorRow(db, row, func(c *models.CarcassColor) *models.ColorItem { return &c.ColorItem })
		},
	}
	s.entities["design_colors"] = excelEntity{
		sheet:   "DesignColors",
		headers: colorHeaders,
		export:  exportColorRows[models.DesignColor](func(c *models.DesignColor) *models.ColorItem { return &c.ColorItem }),
		upsert: func(db *gorm.DB, row map[string]string) (bool, error) {
			return upsertColorRow(db, row, func(c *models.DesignColor) *models.ColorItem { return &c.ColorItem })
		},
	}

	return s
}

func (s *excelService) Export(db *gorm.DB, entity string) (*excelize.File, string, error) {
	spec, ok := s.entities[entity]
	if !ok {
		return nil, "", apperrors.NewNotFoundError("excel", "Unknown catalog entity: "+entity)
	}

	rows, err := spec.export(db)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	file, err := excel.Build(spec.sheet, spec.headers, rows)
	if err != nil {
		return nil, "", apperrors.InternalError(err)
	}

	filename := fmt.Sprintf("%s_%s.xlsx", entity, time.Now().UTC().Format("2006-01-02"))
	return file, filename, nil
}

func (s *excelService) Import(db *gorm.DB, entity string, r io.Reader) (*ImportResult, error) {
	spec, ok := s.entities[entity]
	if !ok {
		return nil, apperrors.NewNotFoundError("excel", "Unknown catalog entity: "+entity)
	}

	records, err := excel.Parse(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Failed to parse xlsx file: " + err.Error())
	}

	result := &ImportResult{Errors: []string{}}
	err = db.Transaction(func(tx *gorm.DB) error {
		for i, record := range records {
			created, err := spec.upsert(tx, record)
			if err != nil {
				// +2: строка 1 занята заголовками
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
				continue
			}
			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return result, nil
}

// ============================================
// ОБОБЩЕННЫЕ ВЫГРУЗКА И UPSERT
// ============================================

func exportCatalogRows[T any](get func(*T) *models.CatalogItem) func(*gorm.DB) ([][]interface{}, error) {
	return func(db *gorm.DB) ([][]interface{}, error) {
		items, err := repositories.List[T](db)
		if err != nil {
			return nil, err
		}
		rows := make([][]interface{}, 0, len(items))
		for i := range items {
			c := get(&items[i])
			rows = append(rows, []interface{}{c.ID, c.Code, c.Name, c.Specs, c.Price, c.Active})
		}
		return rows, nil
	}
}

func exportColorRows[T any](get func(*T) *models.ColorItem) func(*gorm.DB) ([][]interface{}, error) {
	return func(db *gorm.DB) ([][]interface{}, error) {
		items, err := repositories.List[T](db)
		if err != nil {
			return nil, err
		}
		rows := make([][]interface{}, 0, len(items))
		for i := range items {
			c := get(&items[i])
			rows = append(rows, []interface{}{c.ID, c.Code, c.Name, c.PriceDelta, c.Active})
		}
		return rows, nil
	}
}

func upsertCatalogRow[T any](db *gorm.DB, row map[string]string, get func(*T) *models.CatalogItem) (bool, error) {
	code := row["code"]
	if code == "" {
		return false, errors.New("missing code")
	}
	if row["name"] == "" {
		return false, errors.New("missing name")
	}
	price, err := parseIntField(row, "price", 0)
	if err != nil {
		return false, err
	}
	active, err := parseBoolField(row, "active", true)
	if err != nil {
		return false, err
	}

	var item T
	created := false
	if err := db.First(&item, "code = ?", code).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		created = true
	}

	c := get(&item)
	c.Code = code
	c.Name = row["name"]
	c.Specs = row["specs"]
	c.Price = price
	c.Active = active
	if created && len(c.GalleryImageURLs) == 0 {
		c.GalleryImageURLs = models.GalleryFromStrings(nil)
	}

	if created {
		return true, repositories.Create(db, &item)
	}
	return false, repositories.Save(db, &item)
}

func upsertColorRow[T any](db *gorm.DB, row map[string]string, get func(*T) *models.ColorItem) (bool, error) {
	code := row["code"]
	if code == "" {
		return false, errors.New("missing code")
	}
	if row["name"] == "" {
		return false, errors.New("missing name")
	}
	priceDelta, err := parseIntField(row, "price_delta", 0)
	if err != nil {
		return false, err
	}
	active, err := parseBoolField(row, "active", true)
	if err != nil {
		return false, err
	}

	var item T
	created := false
	if err := db.First(&item, "code = ?", code).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return false, err
		}
		created = true
	}

	c := get(&item)
	c.Code = code
	c.Name = row["name"]
	c.PriceDelta = priceDelta
	c.Active = active
	if created && len(c.GalleryImageURLs) == 0 {
		c.GalleryImageURLs = models.GalleryFromStrings(nil)
	}

	if created {
		return true, repositories.Create(db, &item)
	}
	return false, repositories.Save(db, &item)
}

func parseIntField(row map[string]string, key string, def int) (int, error) {
	value := row[key]
	if value == "" {
		return def, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, value)
	}
	return n, nil
}

func parseBoolField(row map[string]string, key string, def bool) (bool, error) {
	value := row[key]
	if value == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %q", key, value)
	}
	return b, nil
}
