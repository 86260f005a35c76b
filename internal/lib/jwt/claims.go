// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки JWT токенов с uid, username и role.
// MakerImpl — конкретная реализация с использованием секретного ключа, issuer, audience и срока
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
//
// Методы позволяют создавать токен с указанием uid пользователя, username и роли,
// а также разбирать токен и извлекать из него кастомные данные.
type Maker interface {
	// GenerateToken принимает uid пользователя, username и role
	GenerateToken(useruid, username, role string) (string, error)
	// ParseToken возвращает *CustomClaims с uid, username и role
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа,
// значений issuer и audience и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	issuer    string        // Значение issuer, проверяемое при парсинге.
	audience  string        // Значение audience, проверяемое при парсинге.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа,
// issuer, audience и TTL.
func NewJWTMaker(secretKey, issuer, audience string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		issuer:    issuer,
		audience:  audience,
		tokenTTL:  ttl,
	}
}
