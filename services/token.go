package services

import (
	"fmt"
	"strings"
	"time"

	"ngi/errors"

	"github.com/dgrijalva/jwt-go"
)

// AdminInfo is what an access token says about its holder
type AdminInfo struct {
	Username string `json:"username"`
	Method   string `json:"method"`
}

type Claims struct {
	AdminInfo AdminInfo `json:"admininfo"`
	jwt.StandardClaims
}

// GenerateToken signs an HS256 access token valid for ttl
func GenerateToken(info AdminInfo, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		AdminInfo: info,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Subject:   info.Username,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates signature and expiry and returns the admin info
func ParseToken(tokenString string, secret []byte) (*AdminInfo, error) {
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, errors.NewAppError(errors.ErrCodeMissingToken, "Token is missing", errors.ErrUnauthorized)
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Invalid token", err)
	}
	if claims.AdminInfo.Username == "" {
		return nil, errors.NewAppError(errors.ErrCodeInvalidToken, "Token has no admin info", errors.ErrUnauthorized)
	}
	return &claims.AdminInfo, nil
}
