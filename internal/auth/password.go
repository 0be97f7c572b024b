package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword создает bcrypt хеш пароля
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash проверяет пароль против хеша
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// VerifyAdminPassword сравнивает пароль с настроенным значением.
// Если в конфиге лежит bcrypt-хеш - сравниваем через bcrypt,
// иначе константное по времени сравнение строк.
func VerifyAdminPassword(configured, candidate string) bool {
	if strings.HasPrefix(configured, "$2a$") || strings.HasPrefix(configured, "$2b$") {
		return CheckPasswordHash(candidate, configured)
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(candidate)) == 1
}
