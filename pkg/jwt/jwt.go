package jwt

import (
	"errors"
	"time"

	"propman/pkg/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "propman"

// JWTClaims JWT声明，ID（jti）用于登出时吊销
type JWTClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// JWTManager JWT管理器
type JWTManager struct {
	secretKey     string
	tokenDuration time.Duration
}

// NewJWTManager 创建JWT管理器
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     secretKey,
		tokenDuration: tokenDuration,
	}
}

// NewJWTManagerFromConfig 按配置创建，时长无法解析时使用24小时
func NewJWTManagerFromConfig(cfg *config.Config) *JWTManager {
	tokenDuration, err := time.ParseDuration(cfg.JWT.TokenDuration)
	if err != nil || tokenDuration <= 0 {
		tokenDuration = 24 * time.Hour
	}
	return NewJWTManager(cfg.JWT.SecretKey, tokenDuration)
}

// GenerateToken 生成JWT令牌
func (manager *JWTManager) GenerateToken(userID uint, username string) (string, *JWTClaims, error) {
	now := time.Now()
	claims := &JWTClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(manager.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   username,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(manager.secretKey))
	if err != nil {
		return "", nil, err
	}
	return signed, claims, nil
}

// VerifyToken 验证JWT令牌
func (manager *JWTManager) VerifyToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&JWTClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(manager.secretKey), nil
		},
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	return claims, nil
}

// GetTokenDuration 获取令牌有效期
func (manager *JWTManager) GetTokenDuration() time.Duration {
	return manager.tokenDuration
}

// RemainingTTL 令牌剩余有效期，已过期返回0
func RemainingTTL(claims *JWTClaims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 0 {
		return 0
	}
	return ttl
}
