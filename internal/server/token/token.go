// Package token issues and verifies the signed tokens used for
// authentication. Access and refresh tokens share the same structure and
// secret and differ only in the configured lifetime.
package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrSecretMissing indicates that the signing secret is not configured.
	// Every issue/verify path must fail with it rather than accept or
	// silently reject a token.
	ErrSecretMissing = errors.New("signing secret is not configured")

	// ErrInvalidToken indicates a malformed, tampered or expired token.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims представляет JWT claims приложения.
// Nonce — случайное число, исключающее выпуск одинаковых токенов
// при совпадении subject и времени выпуска.
type Claims struct {
	Nonce int64 `json:"nonce"`
	jwt.RegisteredClaims
}

// Service подписывает и проверяет токены одним общим секретом
type Service struct {
	secret          []byte
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewService создает новый сервис токенов.
// Пустой secret допустим: сервер стартует, но каждый путь выпуска и
// проверки токена будет возвращать ErrSecretMissing.
func NewService(secret string, accessTokenTTL, refreshTokenTTL time.Duration) *Service {
	return &Service{
		secret:          []byte(secret),
		accessTokenTTL:  accessTokenTTL,
		refreshTokenTTL: refreshTokenTTL,
	}
}

// IssueAccessToken выпускает короткоживущий access token для userID
func (s *Service) IssueAccessToken(userID string) (string, error) {
	token, _, err := s.issue(userID, s.accessTokenTTL)
	return token, err
}

// IssueRefreshToken выпускает долгоживущий refresh token для userID.
// Возвращает также время истечения для записи в storage.
func (s *Service) IssueRefreshToken(userID string) (string, time.Time, error) {
	return s.issue(userID, s.refreshTokenTTL)
}

// Parse проверяет подпись и срок действия токена и возвращает claims.
// Любая причина отказа кроме отсутствующего секрета сворачивается в
// ErrInvalidToken: наблюдаемый контракт для вызывающих бинарный.
func (s *Service) Parse(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrSecretMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Принимаем только HMAC, иначе секрет можно обойти alg=none
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

func (s *Service) issue(userID string, ttl time.Duration) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrSecretMissing
	}

	nonce, err := rand.Int(rand.Reader, big.NewInt(1<<62))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		Nonce: nonce.Int64(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "microblog",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}
