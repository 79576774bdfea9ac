package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"gitglimpse-core/internal/application/dto"
	"gitglimpse-core/internal/application/service"
	"gitglimpse-core/internal/config"
)

const (
	stateCookieName = "gitglimpse_oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// AuthHandler handles the GitHub OAuth flow
type AuthHandler struct {
	authService *service.AuthService
	cookie      config.SessionConfig
	frontendURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, cookie config.SessionConfig, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookie:      cookie,
		frontendURL: frontendURL,
	}
}

// Login handles GET /auth
// @Summary Start GitHub sign-in
// @Description Redirects to GitHub's OAuth consent page
// @Tags Authentication
// @Success 302
// @Router /auth [get]
func (h *AuthHandler) Login(c *gin.Context) {
	state := h.authService.NewState()
	h.setCookie(c, stateCookieName, state, stateCookieTTL)
	c.Redirect(http.StatusFound, h.authService.AuthCodeURL(state))
}

// Callback handles GET /auth/callback
// @Summary Complete GitHub sign-in
// @Description Exchanges the OAuth code, opens a session and redirects to the dashboard
// @Tags Authentication
// @Param code query string true "OAuth authorization code"
// @Param state query string true "OAuth state"
// @Success 302
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/callback [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	expectedState, _ := c.Cookie(stateCookieName)
	h.clearCookie(c, stateCookieName)

	result, err := h.authService.CompleteLogin(c.Request.Context(), c.Query("code"), c.Query("state"), expectedState)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setCookie(c, h.cookie.CookieName, result.SessionToken, time.Until(result.ExpiresAt))
	c.Redirect(http.StatusFound, h.frontendURL)
}

// Me handles GET /auth/me
// @Summary Get the signed-in GitHub user
// @Tags Authentication
// @Produce json
// @Security SessionAuth
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Logout handles POST /auth/logout
// @Summary Sign out
// @Description Deletes the session and clears the session cookie
// @Tags Authentication
// @Produce json
// @Security SessionAuth
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sess); err != nil {
		respondError(c, err)
		return
	}

	h.clearCookie(c, h.cookie.CookieName)
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "signed out"})
}

func (h *AuthHandler) setCookie(c *gin.Context, name, value string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, int(ttl.Seconds()), "/", "", h.cookie.CookieSecure, true)
}

func (h *AuthHandler) clearCookie(c *gin.Context, name string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", "", h.cookie.CookieSecure, true)
}
