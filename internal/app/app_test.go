package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"coffeezone_backend/internal/config"
	"coffeezone_backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Admin.Username = "admin"
	cfg.Admin.Password = "secret123"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	cfg.API.AllowedOrigins = []string{"https://shop.example", "https://*.shop.example"}
	cfg.Uploads.Dir = t.TempDir()
	cfg.Uploads.URLPrefix = "/uploads"
	cfg.Uploads.MaxSize = 1 << 20
	cfg.Uploads.Allowed = []string{".png", ".jpg"}

	router, err := SetupRouter(cfg, db)
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out),
		"failed to decode response: %s", rec.Body.String())
}

func loginAdmin(t *testing.T, router *gin.Engine) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"username": "admin",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestApp_AdminAuth(t *testing.T) {
	router := newTestApp(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/admin/machines", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/login", "", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := loginAdmin(t, router)
	rec = doJSON(t, router, http.MethodGet, "/api/v1/admin/machines", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_CatalogFlow(t *testing.T) {
	router := newTestApp(t)
	token := loginAdmin(t, router)

	// Валидация: name обязателен
	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/machines", token, map[string]interface{}{
		"price": 100,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, rec, &errResp)
	assert.Equal(t, "VALIDATION_FAILED", errResp.Error.Code)

	var created struct {
		ID   int    `json:"id"`
		Code string `json:"code"`
	}

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/machines", token, map[string]interface{}{
		"name":        "Jetinno JL300",
		"short_title": "JL300",
		"price":       850000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	decodeBody(t, rec, &created)
	machineID := created.ID
	assert.NotEmpty(t, created.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/fridges", token, map[string]interface{}{
		"name": "Холодильник", "price": 120000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeBody(t, rec, &created)
	fridgeID := created.ID

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/carcasses", token, map[string]interface{}{
		"name": "Каркас Стандарт", "price": 300000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeBody(t, rec, &created)
	carcassID := created.ID

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/carcass-colors", token, map[string]interface{}{
		"name": "Белый",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeBody(t, rec, &created)
	carcassColorID := created.ID

	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/design-colors", token, map[string]interface{}{
		"name": "Графит", "price_delta": 15000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	decodeBody(t, rec, &created)
	designColorID := created.ID

	// Вариация каркаса
	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/carcasses/%d/variations", carcassID), token,
		map[string]interface{}{
			"carcass_color_id": carcassColorID,
			"design_color_id":  designColorID,
			"is_default":       true,
		})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var variation struct {
		ID        int  `json:"id"`
		IsDefault bool `json:"is_default"`
	}
	decodeBody(t, rec, &variation)
	assert.True(t, variation.IsDefault)

	// Дубликат пары цветов отклоняется со стабильным кодом
	rec = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/carcasses/%d/variations", carcassID), token,
		map[string]interface{}{
			"carcass_color_id": carcassColorID,
			"design_color_id":  designColorID,
		})
	require.Equal(t, http.StatusConflict, rec.Code)
	decodeBody(t, rec, &errResp)
	assert.Equal(t, "DUPLICATE_VARIATION", errResp.Error.Code)

	// Комплект
	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/bundles", token, map[string]interface{}{
		"name":                          "Комплект Стандарт",
		"carcass_design_combination_id": variation.ID,
		"coffee_machine_id":             machineID,
		"fridge_id":                     fridgeID,
		"custom_price":                  990000,
		"ozon_url":                      "https://www.ozon.ru/product/123",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var bundle struct {
		ID        int `json:"id"`
		CarcassID int `json:"carcass_id"`
	}
	decodeBody(t, rec, &bundle)
	assert.Equal(t, carcassID, bundle.CarcassID)

	// Каркас с вариациями не удаляется
	rec = doJSON(t, router, http.MethodDelete,
		fmt.Sprintf("/api/v1/admin/carcasses/%d", carcassID), token, nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	decodeBody(t, rec, &errResp)
	assert.Equal(t, "CONFLICT", errResp.Error.Code)

	// Публичная выдача
	rec = doJSON(t, router, http.MethodGet, "/api/meta", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var meta struct {
		Machines  []json.RawMessage `json:"machines"`
		Carcasses []struct {
			Variations []json.RawMessage `json:"variations"`
		} `json:"carcasses"`
	}
	decodeBody(t, rec, &meta)
	assert.Len(t, meta.Machines, 1)
	require.Len(t, meta.Carcasses, 1)
	assert.Len(t, meta.Carcasses[0].Variations, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/bundles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	previewPath := fmt.Sprintf(
		"/api/preview?coffee_machine_id=%d&fridge_id=%d&carcass_id=%d&carcass_color_id=%d&design_color_id=%d",
		machineID, fridgeID, carcassID, carcassColorID, designColorID)
	rec = doJSON(t, router, http.MethodGet, previewPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview struct {
		IsExactBundle bool `json:"is_exact_bundle"`
		BundleID      *int `json:"bundle_id"`
	}
	decodeBody(t, rec, &preview)
	assert.True(t, preview.IsExactBundle)
	require.NotNil(t, preview.BundleID)
	assert.Equal(t, bundle.ID, *preview.BundleID)
}

func TestApp_OriginCheck(t *testing.T) {
	router := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var errResp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decodeBody(t, rec, &errResp)
	assert.Equal(t, "FORBIDDEN_ORIGIN", errResp.Error.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.Header.Set("Origin", "https://landing.shop.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_Preview_MissingParams(t *testing.T) {
	router := newTestApp(t)

	rec := doJSON(t, router, http.MethodGet, "/api/preview?coffee_machine_id=1", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func doUploadFile(t *testing.T, router *gin.Engine, path, token, filename string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestApp_AttachImage(t *testing.T) {
	router := newTestApp(t)
	token := loginAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/machines", token, map[string]interface{}{
		"name": "Jetinno JL300", "price": 850000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		ID int `json:"id"`
	}
	decodeBody(t, rec, &created)

	// Главное изображение
	rec = doUploadFile(t, router,
		fmt.Sprintf("/api/v1/admin/machines/%d/image", created.ID), token, "main.png")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Два файла в галерею
	rec = doUploadFile(t, router,
		fmt.Sprintf("/api/v1/admin/machines/%d/gallery", created.ID), token, "side.jpg")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doUploadFile(t, router,
		fmt.Sprintf("/api/v1/admin/machines/%d/gallery", created.ID), token, "back.jpg")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet,
		fmt.Sprintf("/api/v1/admin/machines/%d", created.ID), token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var machine struct {
		MainImageURL     string   `json:"main_image_url"`
		GalleryImageURLs []string `json:"gallery_image_urls"`
	}
	decodeBody(t, rec, &machine)
	assert.Contains(t, machine.MainImageURL, "/uploads/")
	assert.Len(t, machine.GalleryImageURLs, 2)

	// Несуществующая сущность: файл не должен привязаться
	rec = doUploadFile(t, router, "/api/v1/admin/machines/9999/image", token, "lost.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApp_PublicDictionaries(t *testing.T) {
	router := newTestApp(t)
	token := loginAdmin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/admin/machines", token, map[string]interface{}{
		"name": "Jetinno JL300", "price": 850000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/admin/machines", token, map[string]interface{}{
		"name": "Скрытая машина", "price": 1, "active": false,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Публичный словарь отдает только активные позиции
	rec = doJSON(t, router, http.MethodGet, "/api/machines", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var machines []struct {
		Name string `json:"name"`
	}
	decodeBody(t, rec, &machines)
	require.Len(t, machines, 1)
	assert.Equal(t, "Jetinno JL300", machines[0].Name)

	rec = doJSON(t, router, http.MethodGet, "/api/design-colors", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestApp_Upload(t *testing.T) {
	router := newTestApp(t)
	token := loginAdmin(t, router)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake png bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		URL string `json:"url"`
	}
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.URL, "/uploads/")
	assert.Contains(t, resp.URL, ".png")

	// Недопустимое расширение
	buf.Reset()
	writer = multipart.NewWriter(&buf)
	part, err = writer.CreateFormFile("file", "script.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("nope"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
