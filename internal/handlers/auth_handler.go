package handlers

import (
	"propman/internal/middleware"
	"propman/internal/services"
	"propman/pkg/jwt"
	"propman/pkg/logger"
	"propman/pkg/response"
	"propman/pkg/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
	store       session.Store
}

func NewAuthHandler(userService *services.UserService, jwtManager *jwt.JWTManager, store session.Store) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtManager:  jwtManager,
		store:       store,
	}
}

// RegisterRequest 字段校验由服务层完成
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string              `json:"token"`
	ExpiresAt int64               `json:"expires_at"`
	User      *services.Principal `json:"user"`
}

// Register 注册后直接登录
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if _, err := h.userService.Register(c.Request.Context(), req.Username, req.Password, req.Email); err != nil {
		response.FromError(c, err)
		return
	}

	principal, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.issueToken(c, principal)
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	principal, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	h.issueToken(c, principal)
}

// Logout 吊销当前令牌直到其过期
func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}

	if err := h.store.Revoke(c.Request.Context(), claims.ID, jwt.RemainingTTL(claims)); err != nil {
		response.FromError(c, err)
		return
	}

	logger.GetLogger().WithField("username", claims.Username).Info("User logged out")
	response.SuccessWithMessage(c, "logged out", nil)
}

// Me 当前登录用户
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "login required")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), principal.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, user)
}

func (h *AuthHandler) issueToken(c *gin.Context, principal *services.Principal) {
	token, claims, err := h.jwtManager.GenerateToken(principal.UserID, principal.Username)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Unix(),
		User:      principal,
	})
}
