package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AttendanceHandler handles attendance grid endpoints
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

type toggleRequest struct {
	MemberUID string `json:"member_uid" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

type setCellRequest struct {
	MemberUID string                  `json:"member_uid" binding:"required"`
	Date      string                  `json:"date" binding:"required"`
	Status    domain.AttendanceStatus `json:"status" binding:"required"`
}

// Grid handles GET /api/v1/attendance?year=&month=
func (h *AttendanceHandler) Grid(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	grid, err := h.attendanceService.Grid(year, month)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 연월입니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "출석부 조회에 실패했습니다", err)
		return
	}
	common.Success(c, grid)
}

// Summary handles GET /api/v1/attendance/summary?year=&month=
func (h *AttendanceHandler) Summary(c *gin.Context) {
	now := time.Now()
	year, _ := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	month, _ := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))

	summary, err := h.attendanceService.Summary(year, month)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "출석 통계 조회에 실패했습니다", err)
		return
	}
	common.Success(c, summary)
}

// Toggle handles POST /api/v1/attendance/toggle. One click advances one
// cell through 미체크 → 출석 → 결석 → 미체크.
func (h *AttendanceHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	status, err := h.attendanceService.Toggle(req.MemberUID, req.Date)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "출석 체크에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{
		"member_uid": req.MemberUID,
		"date":       req.Date,
		"status":     status,
	})
}

// SetCell handles PUT /api/v1/attendance/cell
func (h *AttendanceHandler) SetCell(c *gin.Context) {
	var req setCellRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	if err := h.attendanceService.Set(req.MemberUID, req.Date, req.Status); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "출석 기록에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "기록되었습니다"})
}
