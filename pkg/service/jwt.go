package service

import (
	stderrors "errors"
	"fmt"
	"time"

	"asset-tracker/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
)

type JwtCustomClaim struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService подписывает и проверяет содержимое сессионной cookie.
type JWTService interface {
	GenerateToken(userID uint64, username, role string) (string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetSessionTTL() time.Duration
}

type jwtService struct {
	SecretKey  string
	SessionExp time.Duration
	now        func() time.Time
}

func NewJWTService(secretKey string, sessionExp time.Duration) JWTService {
	return &jwtService{
		SecretKey:  secretKey,
		SessionExp: sessionExp,
		now:        time.Now,
	}
}

func (service *jwtService) GenerateToken(userID uint64, username, role string) (string, error) {
	issuedAt := service.now()

	claims := &JwtCustomClaim{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(service.SessionExp)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", fmt.Errorf("не удалось подписать токен: %w", err)
	}
	return signed, nil
}

func (s *jwtService) GetSessionTTL() time.Duration {
	return s.SessionExp
}

func (service *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			return []byte(service.SecretKey), nil
		default:
			return nil, errors.ErrInvalidSigningMethod
		}
	}, jwt.WithTimeFunc(service.now))
	if err != nil {
		switch {
		case stderrors.Is(err, jwt.ErrTokenExpired):
			return nil, errors.ErrTokenExpired
		case stderrors.Is(err, errors.ErrInvalidSigningMethod):
			return nil, errors.ErrInvalidSigningMethod
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		return nil, errors.ErrInvalidToken
	}

	return claims, nil
}
