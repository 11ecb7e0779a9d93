package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"portfolio-backend/internal/admin"
	"portfolio-backend/internal/middleware"
	"portfolio-backend/internal/models"
	"portfolio-backend/internal/session"
)

type AuthHandler struct {
	credentials *admin.Credentials
	tokens      *admin.Tokens
	revocations session.Store
}

func NewAuthHandler(credentials *admin.Credentials, tokens *admin.Tokens, revocations session.Store) *AuthHandler {
	return &AuthHandler{
		credentials: credentials,
		tokens:      tokens,
		revocations: revocations,
	}
}

// Login godoc
// @Summary     Admin login
// @Description Checks the admin password against admin_settings and issues a session token.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body models.LoginRequest true "Admin password"
// @Success     200 {object} models.LoginResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     429 {object} models.ErrorResponse
// @Failure     503 {object} models.ErrorResponse
// @Router      /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid request",
			Message: err.Error(),
		})
		return
	}

	if err := h.credentials.Verify(c.Request.Context(), req.Password); err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, admin.ErrIncorrectPassword) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, models.ErrorResponse{Error: err.Error()})
		return
	}

	token, claims, err := h.tokens.Issue()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to issue session",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
	})
}

// Logout godoc
// @Summary     Admin logout
// @Description Revokes the current session token.
// @Tags        admin
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.MessageResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	id := c.GetString(middleware.SessionIDKey)
	if id == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "session id not found"})
		return
	}

	if err := h.revocations.Revoke(c.Request.Context(), id, middleware.SessionTTL(c)); err != nil {
		log.Printf("Warning: failed to revoke session %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "failed to revoke session",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out"})
}
