package handler

import (
	"net/http"
	"time"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler aggregates the main dashboard widgets
type DashboardHandler struct {
	memberService     *service.MemberService
	settingsService   *service.SettingsService
	boardService      *service.BoardService
	joinService       *service.JoinService
	attendanceService *service.AttendanceService
}

// NewDashboardHandler creates a DashboardHandler
func NewDashboardHandler(
	memberService *service.MemberService,
	settingsService *service.SettingsService,
	boardService *service.BoardService,
	joinService *service.JoinService,
	attendanceService *service.AttendanceService,
) *DashboardHandler {
	return &DashboardHandler{
		memberService:     memberService,
		settingsService:   settingsService,
		boardService:      boardService,
		joinService:       joinService,
		attendanceService: attendanceService,
	}
}

// Get handles GET /api/v1/dashboard: part headcounts, this month's
// hymns, the notice banner and recent posts in one response.
func (h *DashboardHandler) Get(c *gin.Context) {
	counts, err := h.memberService.CountByPart()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "대시보드 조회에 실패했습니다", err)
		return
	}

	hymns, err := h.settingsService.Hymns()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "대시보드 조회에 실패했습니다", err)
		return
	}
	month := int(time.Now().Month())
	monthHymns := hymns[:0:0]
	for _, hymn := range hymns {
		if hymn.Month == month {
			monthHymns = append(monthHymns, hymn)
		}
	}

	ad, err := h.settingsService.Advertisement()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "대시보드 조회에 실패했습니다", err)
		return
	}

	recent, err := h.boardService.RecentPosts(5)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "대시보드 조회에 실패했습니다", err)
		return
	}

	pending, err := h.joinService.Pending()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "대시보드 조회에 실패했습니다", err)
		return
	}

	weekRate, err := h.attendanceService.WeekRate(time.Now())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "대시보드 조회에 실패했습니다", err)
		return
	}

	common.Success(c, gin.H{
		"part_counts":          counts,
		"month_hymns":          monthHymns,
		"advertisement":        ad,
		"recent_posts":         recent,
		"pending_joins":        len(pending),
		"week_attendance_rate": weekRate,
	})
}
