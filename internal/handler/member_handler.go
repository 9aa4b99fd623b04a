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

// MemberHandler handles roster endpoints
type MemberHandler struct {
	memberService *service.MemberService
	appOrigin     string
}

// NewMemberHandler creates a MemberHandler
func NewMemberHandler(memberService *service.MemberService, appOrigin string) *MemberHandler {
	return &MemberHandler{memberService: memberService, appOrigin: appOrigin}
}

// List handles GET /api/v1/members?part=&keyword=
func (h *MemberHandler) List(c *gin.Context) {
	part := domain.Part(c.Query("part"))
	keyword := c.Query("keyword")

	members, err := h.memberService.List(part, keyword)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "대원 목록 조회에 실패했습니다", err)
		return
	}
	common.Success(c, members)
}

// Get handles GET /api/v1/members/:uid
func (h *MemberHandler) Get(c *gin.Context) {
	member, err := h.memberService.Get(c.Param("uid"))
	if err != nil {
		if errors.Is(err, common.ErrMemberNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "대원을 찾을 수 없습니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "대원 조회에 실패했습니다", err)
		return
	}
	common.Success(c, member)
}

// Update handles PATCH /api/v1/members/:uid
func (h *MemberHandler) Update(c *gin.Context) {
	var req service.MemberUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	if err := h.memberService.Update(c.Param("uid"), req); err != nil {
		switch {
		case errors.Is(err, common.ErrMemberNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "대원을 찾을 수 없습니다", err)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "대원 수정에 실패했습니다", err)
		}
		return
	}
	common.Success(c, gin.H{"message": "수정되었습니다"})
}

// UpdateSelf handles PATCH /api/v1/profile. Members may rename
// themselves and change their photo; part and role stay admin-only.
func (h *MemberHandler) UpdateSelf(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess == nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "로그인이 필요합니다", nil)
		return
	}

	var req struct {
		Name     *string `json:"name"`
		ImageURL *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	upd := service.MemberUpdate{Name: req.Name, ImageURL: req.ImageURL}
	if err := h.memberService.Update(sess.UID, upd); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "프로필 수정에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "수정되었습니다"})
}

// Invite handles POST /api/v1/members/invite and returns the join link
// admins hand out to new members
func (h *MemberHandler) Invite(c *gin.Context) {
	common.Success(c, gin.H{"url": h.appOrigin + "?invite=true"})
}

// Delete handles DELETE /api/v1/members/:uid
func (h *MemberHandler) Delete(c *gin.Context) {
	if err := h.memberService.Delete(c.Param("uid")); err != nil {
		if errors.Is(err, common.ErrMemberNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "대원을 찾을 수 없습니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "대원 삭제에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "삭제되었습니다"})
}
