package handler

import (
	"errors"
	"net/http"

	"github.com/donghaechoir/choir-backend/internal/common"
	"github.com/donghaechoir/choir-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles signup, login and token endpoints
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type googleLoginRequest struct {
	Code string `json:"code" binding:"required"`
}

type easyJoinRequest struct {
	Name string `json:"name" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	resp, err := h.authService.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, common.ErrMemberAlreadyExists) {
			common.ErrorResponse(c, http.StatusConflict, "이미 가입된 이메일입니다", err)
			return
		}
		common.ErrorResponse(c, http.StatusBadRequest, "회원가입에 실패했습니다", err)
		return
	}

	setRefreshCookie(c, resp.RefreshToken)
	common.Created(c, loginPayload(resp))
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "이메일 또는 비밀번호가 올바르지 않습니다", err)
		return
	}

	setRefreshCookie(c, resp.RefreshToken)
	common.Success(c, loginPayload(resp))
}

// GoogleLogin handles POST /api/v1/auth/google
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	resp, err := h.authService.GoogleLogin(c.Request.Context(), req.Code)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "구글 로그인에 실패했습니다", err)
		return
	}

	setRefreshCookie(c, resp.RefreshToken)
	common.Success(c, loginPayload(resp))
}

// EasyJoin handles POST /api/v1/auth/easy-join
func (h *AuthHandler) EasyJoin(c *gin.Context) {
	var req easyJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "잘못된 요청입니다", err)
		return
	}

	resp, err := h.authService.EasyJoin(c.Request.Context(), req.Name)
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "간편 가입에 실패했습니다", err)
		return
	}

	setRefreshCookie(c, resp.RefreshToken)
	common.Success(c, loginPayload(resp))
}

// AnonymousLogin handles POST /api/v1/auth/anonymous
func (h *AuthHandler) AnonymousLogin(c *gin.Context) {
	resp, err := h.authService.AnonymousLogin(c.Request.Context())
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "익명 로그인에 실패했습니다", err)
		return
	}

	setRefreshCookie(c, resp.RefreshToken)
	common.Success(c, loginPayload(resp))
}

// RefreshToken handles POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	// Try cookie first, then JSON body
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		var req refreshRequest
		if bindErr := c.ShouldBindJSON(&req); bindErr != nil || req.RefreshToken == "" {
			common.ErrorResponse(c, http.StatusUnauthorized, "리프레시 토큰이 없습니다", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	resp, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		common.ErrorResponse(c, http.StatusUnauthorized, "토큰 갱신에 실패했습니다", err)
		return
	}

	setRefreshCookie(c, resp.RefreshToken)
	common.Success(c, loginPayload(resp))
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie("refresh_token", "", -1, "/", "", true, true)
	common.Success(c, gin.H{"message": "로그아웃되었습니다"})
}

func setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie("refresh_token", token, 7*24*3600, "/", "", true, true)
}

func loginPayload(resp *service.LoginResponse) gin.H {
	return gin.H{
		"access_token": resp.AccessToken,
		"session":      resp.Session,
	}
}
