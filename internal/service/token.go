package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ignatzorin/gastro-backend/internal/domain/entity"
	"github.com/ignatzorin/gastro-backend/internal/domain/valueobject"
	"github.com/ignatzorin/gastro-backend/internal/pkg/apperror"
)

var ErrInvalidToken = apperror.New(apperror.ErrCodeUnauthorized, "token inválido ou expirado")

// TokenManager проверяет access-токены и определяет участника запроса.
// Токены выпускает внешний сервис аутентификации; IssueAccess нужен для тестов и локальной отладки.
type TokenManager struct {
	accessSecret []byte
	accessTTL    time.Duration
	now          func() time.Time
}

func NewTokenManager(accessSecret string, accessTTL time.Duration) *TokenManager {
	return &TokenManager{
		accessSecret: []byte(accessSecret),
		accessTTL:    accessTTL,
		now:          time.Now,
	}
}

// IssueAccess выпускает access-токен с клеймами sub и role.
func (m *TokenManager) IssueAccess(actor entity.Actor) (string, time.Time, error) {
	now := m.now()
	exp := now.Add(m.accessTTL)
	claims := jwt.MapClaims{
		"sub":  actor.ID.String(),
		"role": string(actor.Role),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.accessSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseAccess проверяет подпись HS256 и срок действия, возвращает участника.
func (m *TokenManager) ParseAccess(token string) (entity.Actor, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		return m.accessSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return entity.Actor{}, apperror.Wrap(err, apperror.ErrCodeUnauthorized, ErrInvalidToken.Message)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return entity.Actor{}, ErrInvalidToken
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return entity.Actor{}, ErrInvalidToken
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return entity.Actor{}, ErrInvalidToken
	}

	raw, _ := claims["role"].(string)
	role := valueobject.Role(raw)
	if !role.IsValid() {
		return entity.Actor{}, ErrInvalidToken
	}

	return entity.Actor{ID: userID, Role: role}, nil
}
