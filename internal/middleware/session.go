package middleware

import (
	"net/http"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// ResolveSession resolves the full session (profile, role, capabilities)
// for the authenticated identity and stores it in the context. Must run
// after JWTAuth.
func ResolveSession(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := GetUID(c)
		if uid == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
			c.Abort()
			return
		}
		sess := sessions.Resolve(c.Request.Context(), service.Identity{
			UID:         uid,
			DisplayName: GetName(c),
		})
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession extracts the resolved session from context
func GetSession(c *gin.Context) *service.Session {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	if sess, ok := v.(*service.Session); ok {
		return sess
	}
	return nil
}

// RequireActive rejects 대기권한 sessions. Everything behind the main
// shell sits behind this gate.
func RequireActive() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || sess.IsPending() {
			common.ErrorResponse(c, http.StatusForbidden, "승인 대기 중인 계정입니다", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCapability checks the session's resolved capability set
func RequireCapability(cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil || !sess.Can(cap) {
			common.ErrorResponse(c, http.StatusForbidden, "관리자 권한이 필요합니다", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
