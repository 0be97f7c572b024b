package dto

// CatalogItemRequest - создание/обновление компонента каталога в админке
type CatalogItemRequest struct {
	Code             string   `json:"code"` // пустой код генерируется автоматически
	Name             string   `json:"name" validate:"required"`
	Specs            string   `json:"specs"`
	Price            int      `json:"price" validate:"min=0"`
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	Active           *bool    `json:"active"`
	ShortTitle       string   `json:"short_title"` // только для кофемашин
}

// ColorRequest - создание/обновление записи цветового словаря
type ColorRequest struct {
	Code             string   `json:"code"`
	Name             string   `json:"name" validate:"required"`
	PriceDelta       int      `json:"price_delta"`
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	Active           *bool    `json:"active"`
}

// VariationRequest - создание/обновление вариации каркаса
type VariationRequest struct {
	CarcassColorID   int      `json:"carcass_color_id" validate:"required,min=1"`
	DesignColorID    int      `json:"design_color_id" validate:"required,min=1"`
	Name             string   `json:"name"` // пустое имя собирается из названий каркаса и цветов
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	IsDefault        bool     `json:"is_default"`
	Active           *bool    `json:"active"`
}

// AdminCatalogItemResponse - компонент каталога в админском API:
// характеристики отдаются сырым текстом для редактирования
type AdminCatalogItemResponse struct {
	ID               int      `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	Specs            string   `json:"specs"`
	Price            int      `json:"price"`
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	Active           bool     `json:"active"`
	ShortTitle       string   `json:"short_title,omitempty"`
}

// AdminColorResponse - запись цветового словаря в админском API
type AdminColorResponse struct {
	ID               int      `json:"id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	PriceDelta       int      `json:"price_delta"`
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	Active           bool     `json:"active"`
}

// AdminVariationResponse - вариация в админском API
type AdminVariationResponse struct {
	ID               int      `json:"id"`
	CarcassID        int      `json:"carcass_id"`
	CarcassColorID   int      `json:"carcass_color_id"`
	DesignColorID    int      `json:"design_color_id"`
	Code             string   `json:"code"`
	Name             string   `json:"name"`
	MainImageURL     string   `json:"main_image_url"`
	GalleryImageURLs []string `json:"gallery_image_urls"`
	Active           bool     `json:"active"`
	IsDefault        bool     `json:"is_default"`
}

// LoginRequest - вход в админку
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - выданный токен админской сессии
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // секунды
}

// UploadResponse - результат загрузки изображения
type UploadResponse struct {
	URL string `json:"url"`
}
