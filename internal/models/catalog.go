package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ============================================
// СЛОВАРИ КАТАЛОГА
// ============================================

// CatalogItem - общие поля компонентов каталога (техника и каркасы)
type CatalogItem struct {
	ID               int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string         `gorm:"size:100;not null;uniqueIndex" json:"code"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	Specs            string         `gorm:"type:text" json:"specs"`
	Price            int            `gorm:"not null;default:0" json:"price"`
	MainImageURL     string         `gorm:"size:500" json:"main_image_url"`
	GalleryImageURLs datatypes.JSON `gorm:"not null;default:'[]'" json:"-"`
	// Без default в колонке: gorm опускает zero-value поля с default-тегом
	// при Create, и явный false молча превращался бы в true
	Active bool `gorm:"not null" json:"active"`
}

// ColorItem - общие поля цветовых словарей
type ColorItem struct {
	ID               int            `gorm:"primaryKey;autoIncrement" json:"id"`
	Code             string         `gorm:"size:100;not null;uniqueIndex" json:"code"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	PriceDelta       int            `gorm:"not null;default:0" json:"price_delta"`
	MainImageURL     string         `gorm:"size:500" json:"main_image_url"`
	GalleryImageURLs datatypes.JSON `gorm:"not null;default:'[]'" json:"-"`
	Active           bool           `gorm:"not null" json:"active"`
}

type CoffeeMachine struct {
	CatalogItem
	ShortTitle string `gorm:"size:120" json:"short_title"`
}

func (CoffeeMachine) TableName() string { return "coffee_machines" }

func (m *CoffeeMachine) BeforeCreate(tx *gorm.DB) error {
	m.Code = EnsureCode(m.Code, "coffee_machine")
	return nil
}

type Fridge struct {
	CatalogItem
}

func (Fridge) TableName() string { return "fridges" }

func (m *Fridge) BeforeCreate(tx *gorm.DB) error {
	m.Code = EnsureCode(m.Code, "fridge")
	return nil
}

type Carcass struct {
	CatalogItem

	DesignCombinations []CarcassDesignCombination `gorm:"foreignKey:CarcassID" json:"-"`
}

func (Carcass) TableName() string { return "carcasses" }

func (m *Carcass) BeforeCreate(tx *gorm.DB) error {
	m.Code = EnsureCode(m.Code, "carcass")
	return nil
}

type Terminal struct {
	CatalogItem
}

func (Terminal) TableName() string { return "terminals" }

func (m *Terminal) BeforeCreate(tx *gorm.DB) error {
	m.Code = EnsureCode(m.Code, "terminal")
	return nil
}

type CarcassColor struct {
	ColorItem
}

func (CarcassColor) TableName() string { return "carcass_colors" }

func (m *CarcassColor) BeforeCreate(tx *gorm.DB) error {
	m.Code = EnsureCode(m.Code, "carcass_color")
	return nil
}

type DesignColor struct {
	ColorItem
}

func (DesignColor) TableName() string { return "design_colors" }

func (m *DesignColor) BeforeCreate(tx *gorm.DB) error {
	m.Code = EnsureCode(m.Code, "design_color")
	return nil
}

// ============================================
// ВАРИАЦИИ КАРКАСА
// ============================================

// CarcassDesignCombination - вариация каркаса: конкретная пара
// (цвет каркаса, цвет дизайна) со своими изображениями.
// Инварианты: пара цветов уникальна в пределах каркаса;
// не более одной вариации каркаса с is_default=true.
type CarcassDesignCombination struct {
	ID               int            `gorm:"primaryKey;autoIncrement" json:"id"`
	CarcassID        int            `gorm:"not null;uniqueIndex:uq_carcass_design_combo" json:"carcass_id"`
	CarcassColorID   int            `gorm:"not null;uniqueIndex:uq_carcass_design_combo" json:"carcass_color_id"`
	DesignColorID    int            `gorm:"not null;uniqueIndex:uq_carcass_design_combo" json:"design_color_id"`
	Code             string         `gorm:"size:120;not null;uniqueIndex" json:"code"`
	Name             string         `gorm:"size:255;not null" json:"name"`
	MainImageURL     string         `gorm:"size:500" json:"main_image_url"`
	GalleryImageURLs datatypes.JSON `gorm:"not null;default:'[]'" json:"-"`
	Active           bool           `gorm:"not null" json:"active"`
	IsDefault        bool           `gorm:"not null" json:"is_default"`
	Timestamps

	Carcass      *Carcass      `gorm:"foreignKey:CarcassID" json:"-"`
	CarcassColor *CarcassColor `gorm:"foreignKey:CarcassColorID" json:"-"`
	DesignColor  *DesignColor  `gorm:"foreignKey:DesignColorID" json:"-"`
}

func (CarcassDesignCombination) TableName() string { return "carcass_design_combinations" }

func (m *CarcassDesignCombination) BeforeCreate(tx *gorm.DB) error {
	m.Code = EnsureCode(m.Code, "combination")
	return nil
}
