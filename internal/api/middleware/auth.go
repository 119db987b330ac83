package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/jayeshk55/CredLink-sub000/pkg/response"
)

const userIDKey = "auth.user_id"

// Auth 解析 Bearer JWT 并把 viewer id 放进请求上下文。
// 引擎只消费解析后的身份，令牌签发在 /auth/login。
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "missing bearer token")
			c.Abort()
			return
		}
		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !parsed.Valid {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		sub, err := parsed.Claims.GetSubject()
		if err != nil || sub == "" {
			response.Unauthorized(c, "invalid token subject")
			c.Abort()
			return
		}
		c.Set(userIDKey, sub)
		c.Next()
	}
}

// CurrentUser 取出 Auth 中间件写入的 viewer id
func CurrentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// SignToken issues an HS256 token for the given user id.
func SignToken(secret, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
