package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/domain"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles the whole-document settings endpoints: hymn
// lists, schedules, menu config, role catalog and the notice banner.
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a SettingsHandler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// Hymns handles GET /api/v1/settings/hymns
func (h *SettingsHandler) Hymns(c *gin.Context) {
	hymns, err := h.settingsService.Hymns()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "찬송가 목록 조회에 실패했습니다", err)
		return
	}
	if q := c.Query("month"); q != "" {
		month, err := strconv.Atoi(q)
		if err != nil || month < 1 || month > 12 {
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 월입니다", err)
			return
		}
		filtered := hymns[:0:0]
		for _, hymn := range hymns {
			if hymn.Month == month {
				filtered = append(filtered, hymn)
			}
		}
		hymns = filtered
	}
	common.Success(c, hymns)
}

// ReplaceHymns handles PUT /api/v1/settings/hymns
func (h *SettingsHandler) ReplaceHymns(c *gin.Context) {
	var hymns []domain.Hymn
	if err := c.ShouldBindJSON(&hymns); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	if err := h.settingsService.ReplaceHymns(hymns); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "월과 주차를 확인해주세요", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "찬송가 저장에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "저장되었습니다"})
}

// ReplaceHymnMonth handles PUT /api/v1/settings/hymns/:month. Only the
// given month's entries change; other months are kept as stored.
func (h *SettingsHandler) ReplaceHymnMonth(c *gin.Context) {
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 월입니다", err)
		return
	}
	var entries []domain.Hymn
	if err := c.ShouldBindJSON(&entries); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	if err := h.settingsService.ReplaceHymnMonth(month, entries); err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "잘못된 월입니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "찬송가 저장에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "저장되었습니다"})
}

// OpeningHymns handles GET /api/v1/settings/opening-hymns
func (h *SettingsHandler) OpeningHymns(c *gin.Context) {
	hymns, err := h.settingsService.OpeningHymns()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "시작찬송 목록 조회에 실패했습니다", err)
		return
	}
	common.Success(c, hymns)
}

// AddOpeningHymn handles POST /api/v1/settings/opening-hymns
func (h *SettingsHandler) AddOpeningHymn(c *gin.Context) {
	var entry domain.OpeningHymn
	if err := c.ShouldBindJSON(&entry); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	created, err := h.settingsService.AddOpeningHymn(entry)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "입력값을 확인해주세요", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "시작찬송 추가에 실패했습니다", err)
		return
	}
	common.Created(c, created)
}

// UpdateOpeningHymn handles PUT /api/v1/settings/opening-hymns/:id
func (h *SettingsHandler) UpdateOpeningHymn(c *gin.Context) {
	var entry domain.OpeningHymn
	if err := c.ShouldBindJSON(&entry); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	entry.ID = c.Param("id")
	if err := h.settingsService.UpdateOpeningHymn(entry); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "시작찬송을 찾을 수 없습니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "시작찬송 수정에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "수정되었습니다"})
}

// DeleteOpeningHymn handles DELETE /api/v1/settings/opening-hymns/:id
func (h *SettingsHandler) DeleteOpeningHymn(c *gin.Context) {
	if err := h.settingsService.DeleteOpeningHymn(c.Param("id")); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "시작찬송을 찾을 수 없습니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "시작찬송 삭제에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "삭제되었습니다"})
}

// Schedules handles GET /api/v1/settings/schedules
func (h *SettingsHandler) Schedules(c *gin.Context) {
	entries, err := h.settingsService.Schedules()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "스케줄 조회에 실패했습니다", err)
		return
	}
	common.Success(c, entries)
}

// ReplaceSchedules handles PUT /api/v1/settings/schedules
func (h *SettingsHandler) ReplaceSchedules(c *gin.Context) {
	var entries []domain.ScheduleEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	if err := h.settingsService.ReplaceSchedules(entries); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "스케줄 저장에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "저장되었습니다"})
}

// MenuConfig handles GET /api/v1/settings/menu
func (h *SettingsHandler) MenuConfig(c *gin.Context) {
	items, err := h.settingsService.MenuConfig()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "메뉴 설정 조회에 실패했습니다", err)
		return
	}
	common.Success(c, items)
}

// ReplaceMenuConfig handles PUT /api/v1/settings/menu
func (h *SettingsHandler) ReplaceMenuConfig(c *gin.Context) {
	var items []domain.MenuItem
	if err := c.ShouldBindJSON(&items); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	if err := h.settingsService.ReplaceMenuConfig(items); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "메뉴 설정 저장에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "저장되었습니다"})
}

// RoleCatalog handles GET /api/v1/settings/roles
func (h *SettingsHandler) RoleCatalog(c *gin.Context) {
	roles, err := h.settingsService.RoleCatalog()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "직책 목록 조회에 실패했습니다", err)
		return
	}
	common.Success(c, roles)
}

// ReplaceRoleCatalog handles PUT /api/v1/settings/roles
func (h *SettingsHandler) ReplaceRoleCatalog(c *gin.Context) {
	var roles []string
	if err := c.ShouldBindJSON(&roles); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	if err := h.settingsService.ReplaceRoleCatalog(roles); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "직책 목록 저장에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "저장되었습니다"})
}

// Advertisement handles GET /api/v1/settings/advertisement
func (h *SettingsHandler) Advertisement(c *gin.Context) {
	ad, err := h.settingsService.Advertisement()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "광고 설정 조회에 실패했습니다", err)
		return
	}
	common.Success(c, ad)
}

// ReplaceAdvertisement handles PUT /api/v1/settings/advertisement
func (h *SettingsHandler) ReplaceAdvertisement(c *gin.Context) {
	var ad domain.Advertisement
	if err := c.ShouldBindJSON(&ad); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	if err := h.settingsService.ReplaceAdvertisement(ad); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "광고 설정 저장에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "저장되었습니다"})
}
