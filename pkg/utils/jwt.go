// Package utils 提供通用工具函数
package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims JWT 声明结构
// 账号体系由外部的认证服务签发，这里只做校验与取用。
type Claims struct {
	UserID string `json:"user_id"`
	Plan   string `json:"plan,omitempty"`
	Type   string `json:"type"` // "access" or "refresh"
	jwt.RegisteredClaims
}

// JWTManager JWT 管理器
type JWTManager struct {
	secret string
	issuer string
}

// NewJWTManager 创建 JWT 管理器
func NewJWTManager(secret, issuer string) *JWTManager {
	return &JWTManager{
		secret: secret,
		issuer: issuer,
	}
}

// GenerateToken 生成单个 Token
func (m *JWTManager) GenerateToken(userID, plan, tokenType string, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID: userID,
		Plan:   plan,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    m.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secret))
}

// ParseToken 解析并验证 Token
func (m *JWTManager) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(m.secret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
