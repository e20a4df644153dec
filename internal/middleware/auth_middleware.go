package middleware

import (
	"strings"

	"propman/internal/services"
	"propman/pkg/jwt"
	"propman/pkg/logger"
	"propman/pkg/response"
	"propman/pkg/session"

	"github.com/gin-gonic/gin"
)

const (
	contextPrincipal = "principal"
	contextClaims    = "claims"
)

// AuthMiddleware 登录校验中间件
type AuthMiddleware struct {
	userService *services.UserService
	jwtManager  *jwt.JWTManager
	store       session.Store
}

func NewAuthMiddleware(userService *services.UserService, jwtManager *jwt.JWTManager, store session.Store) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		jwtManager:  jwtManager,
		store:       store,
	}
}

// RequireLogin 校验 Bearer 令牌，未吊销且用户仍存在时放行
func (m *AuthMiddleware) RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Unauthorized(c, "malformed authorization header")
			c.Abort()
			return
		}

		claims, err := m.jwtManager.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		revoked, err := m.store.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			logger.GetLogger().Errorf("Checking token revocation failed: %v", err)
			response.ServerError(c, "internal server error")
			c.Abort()
			return
		}
		if revoked {
			response.Unauthorized(c, "token has been revoked")
			c.Abort()
			return
		}

		if _, err := m.userService.GetByID(c.Request.Context(), claims.UserID); err != nil {
			response.Unauthorized(c, "user does not exist")
			c.Abort()
			return
		}

		c.Set(contextPrincipal, &services.Principal{UserID: claims.UserID, Username: claims.Username})
		c.Set(contextClaims, claims)
		c.Next()
	}
}

// GetPrincipal 当前登录用户
func GetPrincipal(c *gin.Context) (*services.Principal, bool) {
	v, ok := c.Get(contextPrincipal)
	if !ok {
		return nil, false
	}
	principal, ok := v.(*services.Principal)
	return principal, ok
}

// GetClaims 当前请求的令牌声明
func GetClaims(c *gin.Context) (*jwt.JWTClaims, bool) {
	v, ok := c.Get(contextClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwt.JWTClaims)
	return claims, ok
}
