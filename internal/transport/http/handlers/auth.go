package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlukyanov/task-api/internal/auth/dto"
	customErrors "github.com/mlukyanov/task-api/internal/auth/errors"
	"github.com/mlukyanov/task-api/internal/auth/service"
	"github.com/mlukyanov/task-api/internal/transport/http/middleware"
)

type AuthHandler struct {
	svc service.Service
}

func NewAuthHandler(svc service.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var body dto.RegisterDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(customErrors.NewInvalidArgument(err.Error()))
		return
	}

	res, err := h.svc.Register(c.Request.Context(), body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":         res.User,
		"accessToken":  res.Tokens.AccessToken,
		"refreshToken": res.Tokens.RefreshToken,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(customErrors.NewInvalidArgument(err.Error()))
		return
	}

	res, err := h.svc.Login(c.Request.Context(), body)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":         res.User,
		"accessToken":  res.Tokens.AccessToken,
		"refreshToken": res.Tokens.RefreshToken,
	})
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var body dto.RefreshDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(customErrors.NewInvalidArgument(err.Error()))
		return
	}

	res, err := h.svc.Refresh(c.Request.Context(), body)
	if err != nil {
		// the subject disappearing after issuance reads as a dead
		// session to the client, not as a missing resource
		if customErrors.IsNotFound(err) {
			c.JSON(http.StatusUnauthorized,
				middleware.NewErrorResponse("UNAUTHORIZED", "User not found", nil))
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"accessToken": res.AccessToken})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var body dto.LogoutDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		_ = c.Error(customErrors.NewInvalidArgument(err.Error()))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), body); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		_ = c.Error(customErrors.ErrNotAuthenticated)
		return
	}

	user, err := h.svc.CurrentUser(c.Request.Context(), principal.UserID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// ListUsers backs the admin-only user listing.
func (h *AuthHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}
