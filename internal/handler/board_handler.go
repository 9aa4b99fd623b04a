package handler

import (
	"errors"
	"net/http"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/middleware"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// BoardHandler handles board category, post and comment endpoints
type BoardHandler struct {
	boardService *service.BoardService
}

// NewBoardHandler creates a BoardHandler
func NewBoardHandler(boardService *service.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type moveCategoryRequest struct {
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

type createPostRequest struct {
	Content    string `json:"content"`
	ImageURL   string `json:"image_url"`
	YoutubeURL string `json:"youtube_url"`
}

type createCommentRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

type deleteCommentByValueRequest struct {
	Content string `json:"content" binding:"required"`
}

// ListCategories handles GET /api/v1/boards
func (h *BoardHandler) ListCategories(c *gin.Context) {
	cats, err := h.boardService.Categories()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "게시판 목록 조회에 실패했습니다", err)
		return
	}
	common.Success(c, cats)
}

// CreateCategory handles POST /api/v1/boards
func (h *BoardHandler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	cat, err := h.boardService.CreateCategory(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			common.ErrorResponse(c, http.StatusBadRequest, "게시판 이름을 입력해주세요", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "게시판 생성에 실패했습니다", err)
		return
	}
	common.Created(c, cat)
}

// UpdateCategory handles PATCH /api/v1/boards/:id
func (h *BoardHandler) UpdateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	if err := h.boardService.UpdateCategory(c.Param("id"), req.Name, req.Description); err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "게시판 수정에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "수정되었습니다"})
}

// MoveCategory handles POST /api/v1/boards/:id/move
func (h *BoardHandler) MoveCategory(c *gin.Context) {
	var req moveCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	if err := h.boardService.MoveCategory(c.Param("id"), req.Direction == "up"); err != nil {
		if errors.Is(err, common.ErrBoardNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "게시판을 찾을 수 없습니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "순서 변경에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "순서가 변경되었습니다"})
}

// DeleteCategory handles DELETE /api/v1/boards/:id
func (h *BoardHandler) DeleteCategory(c *gin.Context) {
	if err := h.boardService.DeleteCategory(c.Param("id")); err != nil {
		if errors.Is(err, common.ErrBoardNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "게시판을 찾을 수 없습니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "게시판 삭제에 실패했습니다", err)
		return
	}
	common.Success(c, gin.H{"message": "삭제되었습니다"})
}

// ListPosts handles GET /api/v1/boards/:id/posts
func (h *BoardHandler) ListPosts(c *gin.Context) {
	posts, err := h.boardService.Posts(c.Param("id"))
	if err != nil {
		if errors.Is(err, common.ErrBoardNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "게시판을 찾을 수 없습니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "게시글 조회에 실패했습니다", err)
		return
	}
	common.Success(c, posts)
}

// CreatePost handles POST /api/v1/boards/:id/posts
func (h *BoardHandler) CreatePost(c *gin.Context) {
	sess := middleware.GetSession(c)
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	post, err := h.boardService.CreatePost(c.Param("id"), sess, req.Content, req.ImageURL, req.YoutubeURL)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrBoardNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "게시판을 찾을 수 없습니다", err)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, "내용을 입력해주세요", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "게시글 작성에 실패했습니다", err)
		}
		return
	}
	common.Created(c, post)
}

// DeletePost handles DELETE /api/v1/posts/:id
func (h *BoardHandler) DeletePost(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.boardService.DeletePost(c.Param("id"), sess); err != nil {
		switch {
		case errors.Is(err, common.ErrPostNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "게시글을 찾을 수 없습니다", err)
		case errors.Is(err, common.ErrForbidden):
			common.ErrorResponse(c, http.StatusForbidden, "삭제 권한이 없습니다", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "게시글 삭제에 실패했습니다", err)
		}
		return
	}
	common.Success(c, gin.H{"message": "삭제되었습니다"})
}

// AddComment handles POST /api/v1/posts/:id/comments
func (h *BoardHandler) AddComment(c *gin.Context) {
	sess := middleware.GetSession(c)
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	comment, err := h.boardService.AddComment(c.Param("id"), sess, req.Content, req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPostNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "게시글을 찾을 수 없습니다", err)
		case errors.Is(err, common.ErrInvalidInput):
			common.ErrorResponse(c, http.StatusBadRequest, "내용을 입력해주세요", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "댓글 작성에 실패했습니다", err)
		}
		return
	}
	common.Created(c, comment)
}

// DeleteComment handles DELETE /api/v1/comments/:id
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	sess := middleware.GetSession(c)
	if err := h.boardService.DeleteComment(c.Param("id"), sess); err != nil {
		switch {
		case errors.Is(err, common.ErrCommentNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "댓글을 찾을 수 없습니다", err)
		case errors.Is(err, common.ErrForbidden):
			common.ErrorResponse(c, http.StatusForbidden, "삭제 권한이 없습니다", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "댓글 삭제에 실패했습니다", err)
		}
		return
	}
	common.Success(c, gin.H{"message": "삭제되었습니다"})
}

// DeleteCommentByValue handles POST /api/v1/posts/:id/comments/delete.
// Legacy content-match removal kept for old clients; identical comments
// by the same author all match at once.
func (h *BoardHandler) DeleteCommentByValue(c *gin.Context) {
	sess := middleware.GetSession(c)
	var req deleteCommentByValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}
	removed, err := h.boardService.DeleteCommentByValue(c.Param("id"), sess, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrPostNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "게시글을 찾을 수 없습니다", err)
		case errors.Is(err, common.ErrCommentNotFound):
			common.ErrorResponse(c, http.StatusNotFound, "댓글을 찾을 수 없습니다", err)
		default:
			common.ErrorResponse(c, http.StatusInternalServerError, "댓글 삭제에 실패했습니다", err)
		}
		return
	}
	common.Success(c, gin.H{"removed": removed})
}
