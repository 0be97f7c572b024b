package middleware

import (
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"coffeezone_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// ============================================
// ПРОВЕРКА ДОВЕРЕННЫХ ДОМЕНОВ
// ============================================

// CompileOriginPatterns компилирует список разрешенных origin-ов
// в регулярные выражения с поддержкой wildcard: https://*.example.com
func CompileOriginPatterns(origins []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(origins))
	for _, origin := range origins {
		normalized := strings.TrimRight(origin, "/")
		if normalized == "" {
			continue
		}
		escaped := strings.ReplaceAll(regexp.QuoteMeta(normalized), `\*`, ".*")
		re, err := regexp.Compile("(?i)^" + escaped + "$")
		if err != nil {
			continue
		}
		patterns = append(patterns, re)
	}
	return patterns
}

// NormalizeOrigin приводит значение заголовка Origin/Referer к виду scheme://host
func NormalizeOrigin(headerValue string) string {
	if headerValue == "" {
		return ""
	}
	parsed, err := url.Parse(headerValue)
	if err == nil && parsed.Scheme != "" && parsed.Host != "" {
		return strings.TrimRight(parsed.Scheme+"://"+parsed.Host, "/")
	}
	return strings.TrimRight(headerValue, "/")
}

func canonicalHost(host string) string {
	host = strings.ToLower(host)
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return "local"
	}
	return host
}

func isSameHost(origin string, req *http.Request) bool {
	parsed, err := url.Parse(origin)
	if err != nil {
		return false
	}
	originHost := parsed.Hostname()
	if originHost == "" {
		return false
	}

	requestHost := requestHostname(req.Host)
	if requestHost == "" {
		return false
	}

	return canonicalHost(originHost) == canonicalHost(requestHost)
}

// requestHostname выделяет хост из req.Host с учетом IPv6 в скобках
func requestHostname(hostport string) string {
	if host, _, err := net.SplitHostPort(hostport); err == nil {
		return host
	}
	// Хост без порта; у IPv6 снимаем скобки
	return strings.Trim(hostport, "[]")
}

// TrustedOriginMiddleware ограничивает публичный API по Origin/Referer.
// Запросы без заголовков и запросы с того же хоста пропускаются;
// все остальные должны попадать в allow-list (с wildcard-поддоменами).
func TrustedOriginMiddleware(allowedOrigins []string, apiPrefix string) gin.HandlerFunc {
	patterns := CompileOriginPatterns(allowedOrigins)

	return func(c *gin.Context) {
		if !strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
			c.Next()
			return
		}

		candidate := NormalizeOrigin(c.GetHeader("Origin"))
		if candidate == "" {
			candidate = NormalizeOrigin(c.GetHeader("Referer"))
		}

		if candidate == "" {
			c.Next()
			return
		}

		if isSameHost(candidate, c.Request) {
			c.Next()
			return
		}

		if len(patterns) > 0 {
			allowed := false
			for _, pattern := range patterns {
				if pattern.MatchString(candidate) {
					allowed = true
					break
				}
			}
			if !allowed {
				apperrors.HandleError(c, apperrors.NewForbiddenOriginError(candidate))
				c.Abort()
				return
			}
		}

		c.Next()
	}
}

// CORSMiddleware - CORS для публичного API: явные origin-ы плюс wildcard-шаблоны,
// только чтение (GET/OPTIONS), с credentials.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	patterns := CompileOriginPatterns(allowedOrigins)

	return func(c *gin.Context) {
		origin := NormalizeOrigin(c.GetHeader("Origin"))

		if origin != "" {
			allowed := len(patterns) == 0
			for _, pattern := range patterns {
				if pattern.MatchString(origin) {
					allowed = true
					break
				}
			}
			if allowed {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
				c.Header("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
