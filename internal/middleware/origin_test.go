package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newOriginRouter(allowed []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(TrustedOriginMiddleware(allowed, "/api"))
	router.GET("/api/meta", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestTrustedOriginMiddleware(t *testing.T) {
	allowed := []string{"https://coffeezone.example", "https://*.coffeezone.example"}

	tests := []struct {
		name       string
		path       string
		origin     string
		referer    string
		wantStatus int
	}{
		{
			name:       "без заголовков пропускается",
			path:       "/api/meta",
			wantStatus: http.StatusOK,
		},
		{
			name:       "разрешенный origin",
			path:       "/api/meta",
			origin:     "https://coffeezone.example",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wildcard поддомен",
			path:       "/api/meta",
			origin:     "https://admin.coffeezone.example",
			wantStatus: http.StatusOK,
		},
		{
			name:       "origin сравнивается без учета регистра",
			path:       "/api/meta",
			origin:     "https://COFFEEZONE.example",
			wantStatus: http.StatusOK,
		},
		{
			name:       "чужой origin отклоняется",
			path:       "/api/meta",
			origin:     "https://evil.example",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "referer используется как фоллбэк",
			path:       "/api/meta",
			referer:    "https://evil.example/page?x=1",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "разрешенный referer",
			path:       "/api/meta",
			referer:    "https://shop.coffeezone.example/catalog",
			wantStatus: http.StatusOK,
		},
		{
			name:       "пути вне /api не проверяются",
			path:       "/health",
			origin:     "https://evil.example",
			wantStatus: http.StatusOK,
		},
	}

	router := newOriginRouter(allowed)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestTrustedOriginMiddleware_SameHost(t *testing.T) {
	router := newOriginRouter([]string{"https://coffeezone.example"})

	// Запрос с того же хоста пропускается, даже если его нет в allow-list
	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.Host = "api.internal:8000"
	req.Header.Set("Origin", "http://api.internal")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// localhost и 127.0.0.1 считаются одним хостом
	req = httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.Host = "localhost:8000"
	req.Header.Set("Origin", "http://127.0.0.1:3000")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// IPv6 loopback в скобках разбирается корректно
	req = httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.Host = "[::1]:8000"
	req.Header.Set("Origin", "http://localhost:3000")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestHostname(t *testing.T) {
	assert.Equal(t, "api.internal", requestHostname("api.internal:8000"))
	assert.Equal(t, "api.internal", requestHostname("api.internal"))
	assert.Equal(t, "::1", requestHostname("[::1]:8000"))
	assert.Equal(t, "::1", requestHostname("[::1]"))
}

func TestTrustedOriginMiddleware_EmptyAllowList(t *testing.T) {
	// Пустой allow-list означает, что проверка выключена
	router := newOriginRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/meta", nil)
	req.Header.Set("Origin", "https://anything.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNormalizeOrigin(t *testing.T) {
	assert.Equal(t, "", NormalizeOrigin(""))
	assert.Equal(t, "https://a.example", NormalizeOrigin("https://a.example/"))
	assert.Equal(t, "https://a.example", NormalizeOrigin("https://a.example/some/page?q=1"))
	assert.Equal(t, "http://a.example:8000", NormalizeOrigin("http://a.example:8000/page"))
}
