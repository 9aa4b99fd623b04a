package handler

import (
	"errors"
	"net/http"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/middleware"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// JoinHandler handles the join request approval flow
type JoinHandler struct {
	joinService *service.JoinService
}

// NewJoinHandler creates a JoinHandler
func NewJoinHandler(joinService *service.JoinService) *JoinHandler {
	return &JoinHandler{joinService: joinService}
}

type joinSubmitRequest struct {
	Name string      `json:"name" binding:"required"`
	Part domain.Part `json:"part" binding:"required"`
}

// Submit handles POST /api/v1/join/requests (pending accounts only)
func (h *JoinHandler) Submit(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
		return
	}

	var req joinSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	created, err := h.joinService.Submit(sess, req.Name, req.Part)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrForbidden):
			common.ErrorResponse(c, http.StatusForbidden, "이미 승인된 계정입니다", err)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, "이름과 파트를 확인해주세요", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "가입 신청에 실패했습니다", err)
		}
		return
	}
	common.Created(c, created)
}

// ListPending handles GET /api/v1/join/requests
func (h *JoinHandler) ListPending(c *gin.Context) {
	reqs, err := h.joinService.Pending()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "가입 신청 목록 조회에 실패했습니다", err)
		return
	}
	common.Success(c, reqs)
}

// Approve handles POST /api/v1/join/requests/:id/approve
func (h *JoinHandler) Approve(c *gin.Context) {
	if err := h.joinService.Approve(c.Param("id")); err != nil {
		switch {
		case errors.Is(err, common.ErrRequestNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "가입 신청을 찾을 수 없습니다", err)
		case errors.Is(err, common.ErrRequestNotPending):
			common.ErrorResponse(c, http.StatusConflict, "이미 처리된 신청입니다", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "승인에 실패했습니다", err)
		}
		return
	}
	common.Success(c, gin.H{"message": "승인되었습니다"})
}

// Reject handles DELETE /api/v1/join/requests/:id
func (h *JoinHandler) Reject(c *gin.Context) {
	if err := h.joinService.Reject(c.Param("id")); err != nil {
		switch {
		case errors.Is(err, common.ErrRequestNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "가입 신청을 찾을 수 없습니다", err)
		case errors.Is(err, common.ErrRequestNotPending):
			common.ErrorResponse(c, http.StatusConflict, "이미 처리된 신청입니다", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "거절에 실패했습니다", err)
		}
		return
	}
	common.Success(c, gin.H{"message": "거절되었습니다"})
}
