package dto

// ColorRef - краткая ссылка на цвет внутри вариации
type ColorRef struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// CatalogItemResponse - компонент каталога в публичном API
type CatalogItemResponse struct {
	ID               int      `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Price            int      `json:"price"`
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	SpecsShort       []string `json:"specs_short"`
	Active           bool     `json:"active"`
	ShortTitle       string   `json:"short_title,omitempty"`
}

// VariationResponse - вариация каркаса в публичном API
type VariationResponse struct {
	ID               int      `json:"id"`
	CarcassColor     ColorRef `json:"carcass_color"`
	DesignColor      ColorRef `json:"design_color"`
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	Active           bool     `json:"active"`
	IsDefault        bool     `json:"is_default"`
}

// CarcassResponse - каркас со встроенным списком вариаций
type CarcassResponse struct {
	CatalogItemResponse
	Variations []VariationResponse `json:"variations"`
}

// ColorResponse - запись цветового словаря в публичном API
type ColorResponse struct {
	ID               int      `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	PriceDelta       int      `json:"price_delta"`
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	Active           bool     `json:"active"`
}

// MetaResponse - агрегат всех активных словарей каталога
type MetaResponse struct {
	Machines      []CatalogItemResponse `json:"machines"`
	Fridges       []CatalogItemResponse `json:"fridges"`
	Carcasses     []CarcassResponse     `json:"carcasses"`
	CarcassColors []ColorResponse       `json:"carcass_colors"`
	DesignColors  []ColorResponse       `json:"design_colors"`
	Terminals     []CatalogItemResponse `json:"terminals"`
}
