package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/kasbook/internal/core/ports/services"
	"github.com/SscSPs/kasbook/internal/dto"
	"github.com/SscSPs/kasbook/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
)

// AuthHandler handles authentication and "who am I" requests.
type AuthHandler struct {
	userService   portssvc.UserSvcFacade
	tokenService  portssvc.TokenSvcFacade
	accessService portssvc.AccessSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(us portssvc.UserSvcFacade, ts portssvc.TokenSvcFacade, as portssvc.AccessSvcFacade) *AuthHandler {
	return &AuthHandler{userService: us, tokenService: ts, accessService: as}
}

// registerAuthRoutes sets up the public login route behind the login limiter.
func registerAuthRoutes(r *gin.Engine, h *AuthHandler, loginLimiter *limiter.Limiter) {
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", middleware.RateLimit(loginLimiter), h.Login)
	}
}

// registerMeRoutes sets up the authenticated self-service routes.
func registerMeRoutes(rg *gin.RouterGroup, h *AuthHandler) {
	rg.GET("/me", h.me)
	rg.PUT("/me/password", h.changePassword)
	rg.GET("/entities", h.entities)
}

// Login godoc
// @Summary User login
// @Description Authenticates a user and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	user, err := h.userService.AuthenticateUser(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if statusForError(err) == http.StatusUnauthorized {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid username or password"})
			return
		}
		respondError(c, logger, err, "Failed to log in")
		return
	}

	token, expiresAt, err := h.tokenService.GenerateAccessToken(c.Request.Context(), user)
	if err != nil {
		logger.Error("Failed to sign JWT token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	logger.Info("User logged in", slog.String("user_id", user.UserID))
	c.JSON(http.StatusOK, dto.LoginResponse{Token: token, ExpiresAt: expiresAt})
}

// me godoc
// @Summary Current user
// @Description Returns the caller with their role, permitted entities and features.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) me(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	user, err := h.userService.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to load current user")
		return
	}
	access, err := h.accessService.ResolveAccess(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve access")
		return
	}
	c.JSON(http.StatusOK, dto.ToMeResponse(user, access))
}

// changePassword godoc
// @Summary Change own password
// @Tags auth
// @Accept json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me/password [put]
func (h *AuthHandler) changePassword(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, logger, err)
		return
	}
	if err := h.userService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		respondError(c, logger, err, "Failed to change password")
		return
	}
	c.Status(http.StatusNoContent)
}

// entities godoc
// @Summary List entities
// @Description Lists every configured entity and the ones the caller is assigned.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.EntitiesResponse
// @Security BearerAuth
// @Router /entities [get]
func (h *AuthHandler) entities(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}
	access, err := h.accessService.ResolveAccess(c.Request.Context(), userID)
	if err != nil {
		respondError(c, logger, err, "Failed to resolve access")
		return
	}
	c.JSON(http.StatusOK, dto.EntitiesResponse{
		All:       h.accessService.KnownEntities(),
		Permitted: access.Entities.Codes(),
	})
}
