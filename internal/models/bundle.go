package models

// Bundle - готовый комплект: вариация каркаса + выбранная техника,
// кастомная цена и ссылка на карточку Ozon.
// carcass_id и цвета всегда производные от выбранной вариации.
type Bundle struct {
	ID                         int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                       string `gorm:"size:255;not null" json:"name"`
	CoffeeMachineID            int    `gorm:"not null" json:"coffee_machine_id"`
	FridgeID                   *int   `json:"fridge_id"`
	CarcassID                  int    `gorm:"not null" json:"carcass_id"`
	CarcassColorID             int    `gorm:"not null" json:"carcass_color_id"`
	DesignColorID              int    `gorm:"not null" json:"design_color_id"`
	TerminalID                 *int   `json:"terminal_id"`
	CarcassDesignCombinationID *int   `json:"carcass_design_combination_id"`
	CustomPrice                *int   `json:"custom_price"`
	OzonURL                    string `gorm:"size:500" json:"ozon_url"`
	// Без default в колонке, иначе gorm опустил бы явный false при Create
	IsAvailable bool `gorm:"not null" json:"is_available"`
	ShowOnSite  bool `gorm:"not null" json:"show_on_site"`
	Timestamps

	CoffeeMachine            *CoffeeMachine            `gorm:"foreignKey:CoffeeMachineID" json:"-"`
	Fridge                   *Fridge                   `gorm:"foreignKey:FridgeID" json:"-"`
	Carcass                  *Carcass                  `gorm:"foreignKey:CarcassID" json:"-"`
	CarcassColor             *CarcassColor             `gorm:"foreignKey:CarcassColorID" json:"-"`
	DesignColor              *DesignColor              `gorm:"foreignKey:DesignColorID" json:"-"`
	Terminal                 *Terminal                 `gorm:"foreignKey:TerminalID" json:"-"`
	CarcassDesignCombination *CarcassDesignCombination `gorm:"foreignKey:CarcassDesignCombinationID" json:"-"`
}

func (Bundle) TableName() string { return "bundles" }
