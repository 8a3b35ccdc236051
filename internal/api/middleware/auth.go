package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/d60-Lab/postwatch/pkg/logger"
	"github.com/d60-Lab/postwatch/pkg/response"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid token")
)

// JWTAuth 校验 HS256 Bearer token，通过后把 subject 写入 context 的 user_id。
// secret 为空时不鉴权。
func JWTAuth(secret string) gin.HandlerFunc {
	if secret == "" {
		return func(c *gin.Context) { c.Next() }
	}
	key := []byte(secret)
	return func(c *gin.Context) {
		claims, err := parseToken(c.GetHeader("Authorization"), key)
		if err != nil {
			logger.Debug("auth rejected", zap.Error(err), zap.String("request_id", c.GetString("request_id")))
			if errors.Is(err, errMissingToken) {
				response.Unauthorized(c, errMissingToken.Error())
			} else {
				response.Unauthorized(c, errInvalidToken.Error())
			}
			return
		}
		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

func parseToken(header string, key []byte) (*jwt.RegisteredClaims, error) {
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, errMissingToken
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidToken, err)
	}
	if !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}
