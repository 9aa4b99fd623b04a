package handler

import (
	"net/http"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/middleware"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the resolved session and its view routing
type SessionHandler struct {
	settingsService *service.SettingsService
	boardService    *service.BoardService
}

// NewSessionHandler creates a SessionHandler
func NewSessionHandler(settingsService *service.SettingsService, boardService *service.BoardService) *SessionHandler {
	return &SessionHandler{
		settingsService: settingsService,
		boardService:    boardService,
	}
}

// Get handles GET /api/v1/session. It returns the session plus the view
// state (screen, visible tabs, effective active tab) so the client
// renders the same gate the server enforces.
func (h *SessionHandler) Get(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
		return
	}

	menu, err := h.settingsService.MenuConfig()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "메뉴 설정을 불러오지 못했습니다", err)
		return
	}
	cats, err := h.boardService.Categories()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "게시판 목록을 불러오지 못했습니다", err)
		return
	}

	view := service.ResolveView(sess, false, c.Query("active_tab"), menu, cats)
	common.Success(c, gin.H{
		"session": sess,
		"view":    view,
	})
}

// Me handles GET /api/v1/auth/me and returns the resolved session alone
func (h *SessionHandler) Me(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
		return
	}
	common.Success(c, gin.H{"session": sess})
}

// Tabs handles GET /api/v1/session/tabs. It returns only the visible
// nav entries for clients that re-fetch the tab set after a settings or
// category change without re-resolving the whole view.
func (h *SessionHandler) Tabs(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
		return
	}
	if sess.IsPending() {
		common.ErrorResponse(c, http.StatusForbidden, "아직 승인되지 않은 계정입니다", nil)
		return
	}

	menu, err := h.settingsService.MenuConfig()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "메뉴 설정을 불러오지 못했습니다", err)
		return
	}
	cats, err := h.boardService.Categories()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "게시판 목록을 불러오지 못했습니다", err)
		return
	}

	common.Success(c, gin.H{"tabs": service.VisibleTabs(sess, menu, cats)})
}
