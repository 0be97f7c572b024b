package dto

// BundleResponse - комплект в публичном API
type BundleResponse struct {
	ID                         int    `json:"id"`
	Name                       string `json:"name"`
	CoffeeMachineID            int    `json:"coffee_machine_id"`
	FridgeID                   *int   `json:"fridge_id"`
	CarcassID                  int    `json:"carcass_id"`
	CarcassColorID             int    `json:"carcass_color_id"`
	DesignColorID              int    `json:"design_color_id"`
	TerminalID                 *int   `json:"terminal_id"`
	CarcassDesignCombinationID *int   `json:"carcass_design_combination_id"`
	CustomPrice                *int   `json:"custom_price"`
	OzonURL                    string `json:"ozon_url"`
	IsAvailable                bool   `json:"is_available"`
}

// PreviewRequest - параметры запроса /api/preview
type PreviewRequest struct {
	CoffeeMachineID            int  `form:"coffee_machine_id" json:"coffee_machine_id" validate:"required,min=1"`
	FridgeID                   int  `form:"fridge_id" json:"fridge_id" validate:"required,min=1"`
	CarcassID                  int  `form:"carcass_id" json:"carcass_id" validate:"required,min=1"`
	CarcassColorID             int  `form:"carcass_color_id" json:"carcass_color_id" validate:"required,min=1"`
	DesignColorID              int  `form:"design_color_id" json:"design_color_id" validate:"required,min=1"`
	TerminalID                 *int `form:"terminal_id" json:"terminal_id" validate:"omitempty,min=1"`
	CarcassDesignCombinationID *int `form:"carcass_design_combination_id" json:"carcass_design_combination_id" validate:"omitempty,min=1"`
}

// PreviewResponse - результат подбора комплекта.
// При отсутствии точного совпадения возвращается только is_exact_bundle=false;
// итоговую цену в этом случае считает клиент по ценам компонентов.
type PreviewResponse struct {
	IsExactBundle bool    `json:"is_exact_bundle"`
	BundleID      *int    `json:"bundle_id,omitempty"`
	CustomPrice   *int    `json:"custom_price,omitempty"`
	OzonURL       *string `json:"ozon_url,omitempty"`
}

// BundleRequest - создание/обновление комплекта в админке.
// carcass_id и цвета не принимаются: они выводятся из выбранной вариации.
type BundleRequest struct {
	Name                       string `json:"name" validate:"required"`
	CarcassDesignCombinationID int    `json:"carcass_design_combination_id" validate:"required,min=1"`
	CoffeeMachineID            int    `json:"coffee_machine_id" validate:"required,min=1"`
	FridgeID                   *int   `json:"fridge_id" validate:"omitempty,min=1"`
	TerminalID                 *int   `json:"terminal_id" validate:"omitempty,min=1"`
	CustomPrice                *int   `json:"custom_price" validate:"omitempty,min=0"`
	OzonURL                    string `json:"ozon_url" validate:"omitempty,url"`
	IsAvailable                *bool  `json:"is_available"`
	ShowOnSite                 *bool  `json:"show_on_site"`
}
