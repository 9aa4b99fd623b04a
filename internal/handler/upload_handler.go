package handler

import (
	"errors"
	"net/http"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// UploadHandler handles image uploads for posts, comments and scores
type UploadHandler struct {
	uploadService *service.UploadService
}

// NewUploadHandler creates an UploadHandler
func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// Upload handles POST /api/v1/upload (multipart field "image")
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "이미지 파일이 필요합니다", err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "파일을 열 수 없습니다", err)
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	url, err := h.uploadService.Upload(c.Request.Context(),
		fileHeader.Filename, contentType, fileHeader.Size, file)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "지원하지 않는 이미지 형식이거나 용량이 너무 큽니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "이미지 업로드에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"url": url})
}
