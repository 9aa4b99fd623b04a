package middleware

import (
	"errors"
	"strings"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// JWTAuth JWT authentication middleware
func JWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.ErrorResponse(c, 401, "인증 토큰이 필요합니다", nil)
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.ErrorResponse(c, 401, "잘못된 인증 헤더 형식입니다", nil)
			c.Abort()
			return
		}

		claims, err := jwtManager.VerifyToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				common.ErrorResponse(c, 401, "토큰이 만료되었습니다", err)
			} else {
				common.ErrorResponse(c, 401, "유효하지 않은 토큰입니다", err)
			}
			c.Abort()
			return
		}

		c.Set("uid", claims.UID)
		c.Set("name", claims.Name)
		c.Set("role", claims.Role)

		c.Next()
	}
}

// OptionalJWTAuth parses the token when present but never rejects. Used
// on the websocket endpoint, where anonymous clients may still read
// public settings topics.
func OptionalJWTAuth(jwtManager *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			// 웹소켓은 헤더를 못 쓰는 브라우저 사정으로 쿼리 파라미터도 허용
			token = c.Query("token")
		}
		if token != "" {
			if claims, err := jwtManager.VerifyToken(token); err == nil {
				c.Set("uid", claims.UID)
				c.Set("name", claims.Name)
				c.Set("role", claims.Role)
			}
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// GetUID extracts the authenticated uid from context
func GetUID(c *gin.Context) string {
	uid, exists := c.Get("uid")
	if !exists {
		return ""
	}
	if str, ok := uid.(string); ok {
		return str
	}
	return ""
}

// GetName extracts the display name from context
func GetName(c *gin.Context) string {
	name, exists := c.Get("name")
	if !exists {
		return ""
	}
	if str, ok := name.(string); ok {
		return str
	}
	return ""
}

// GetRole extracts the token role from context
func GetRole(c *gin.Context) string {
	role, exists := c.Get("role")
	if !exists {
		return ""
	}
	if str, ok := role.(string); ok {
		return str
	}
	return ""
}
