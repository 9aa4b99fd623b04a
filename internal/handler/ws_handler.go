package handler

import (
	"net/http"
	"strings"

	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/live"
	"github.com/donghaechoir/choir-backend/internal/middleware"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler handles the live mirror WebSocket. Clients subscribe to
// collection topics and receive full-snapshot replacements on every
// mutation; the initial snapshot loads through the services below.
type WSHandler struct {
	hub               *live.Hub
	memberService     *service.MemberService
	joinService       *service.JoinService
	attendanceService *service.AttendanceService
	settingsService   *service.SettingsService
	boardService      *service.BoardService
	allowedOrigins    []string
	upgrader          websocket.Upgrader
}

// NewWSHandler creates a WSHandler
func NewWSHandler(
	hub *live.Hub,
	memberService *service.MemberService,
	joinService *service.JoinService,
	attendanceService *service.AttendanceService,
	settingsService *service.SettingsService,
	boardService *service.BoardService,
	allowedOrigins string,
) *WSHandler {
	h := &WSHandler{
		hub:               hub,
		memberService:     memberService,
		joinService:       joinService,
		attendanceService: attendanceService,
		settingsService:   settingsService,
		boardService:      boardService,
		allowedOrigins:    parseOrigins(allowedOrigins),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// parseOrigins parses comma-separated origins string
func parseOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// checkOrigin validates the request origin against allowed origins
func (h *WSHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // Same-origin requests don't have Origin header
	}
	if len(h.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Connect handles GET /ws — WebSocket upgrade. Anonymous connections are
// allowed but may only read settings topics (schedules, hymns); roster,
// attendance and board topics need an approved session.
func (h *WSHandler) Connect(c *gin.Context) {
	role := middleware.GetRole(c)
	active := role != "" && role != domain.RolePending

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := live.NewClient(h.hub, conn, h.loadSnapshot, func(topic string) bool {
		if live.IsSettingsTopic(topic) {
			return true
		}
		return active
	})
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}

// loadSnapshot resolves a topic's current full state for a new subscriber
func (h *WSHandler) loadSnapshot(topic string) (interface{}, error) {
	switch {
	case topic == live.TopicMembers:
		return h.memberService.Roster()
	case topic == live.TopicJoinRequests:
		return h.joinService.Pending()
	case topic == live.TopicAttendance:
		return h.attendanceService.CurrentGrid()
	case topic == live.TopicBoardCategories:
		return h.boardService.Categories()
	case live.IsBoardTopic(topic):
		return h.boardService.Posts(live.BoardTopicID(topic))
	case live.IsSettingsTopic(topic):
		return h.settingsService.Snapshot(live.SettingsTopicName(topic))
	default:
		return nil, nil
	}
}
