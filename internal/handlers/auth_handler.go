package handlers

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"storefront-api/internal/middleware"
	"storefront-api/internal/models"
	"storefront-api/internal/services"
	"storefront-api/pkg/lambda"
)

// AuthHandler handles admin login and logout
type AuthHandler struct {
	authService services.AuthService
	cookieName  string
	logger      logrus.FieldLogger
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthService, cookieName string, logger logrus.FieldLogger) *AuthHandler {
	if cookieName == "" {
		cookieName = middleware.SessionCookieName
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &AuthHandler{
		authService: authService,
		cookieName:  cookieName,
		logger:      logger.WithField("handler", "auth"),
	}
}

// @Summary Admin login
// @Description Check admin credentials and set the session cookie
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginRequest true "Login credentials"
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /login [post]
func (h *AuthHandler) HandleLogin(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	switch req.Method {
	case http.MethodOptions:
		return PreflightResponse(methodsLogin), nil
	case http.MethodPost:
	default:
		return MethodNotAllowed(methodsLogin), nil
	}

	session, err := h.authService.Login(ctx, req.Body)
	if err != nil {
		return errorResponse(h.logger, err), nil
	}

	resp := JSONResponse(http.StatusOK, models.MessageResponse{
		Success: true,
		Message: models.MessageLoginSuccessful,
	})
	resp.Cookies = []string{h.sessionCookie(session.Token, session.MaxAge)}
	return resp, nil
}

// @Summary Admin logout
// @Description Clear the session cookie. Always succeeds.
// @Tags auth
// @Produce json
// @Success 200 {object} models.MessageResponse
// @Router /logout [post]
func (h *AuthHandler) HandleLogout(ctx context.Context, req *lambda.Request) (*lambda.Response, error) {
	resp := JSONResponse(http.StatusOK, models.MessageResponse{
		Success:     true,
		Message:     models.MessageLoggedOut,
		RedirectURL: models.LogoutRedirectURL,
	})
	resp.Cookies = []string{h.sessionCookie("", -1)}
	return resp, nil
}

// sessionCookie renders the Set-Cookie value; a negative maxAge clears it
func (h *AuthHandler) sessionCookie(value string, maxAge int) string {
	cookie := &http.Cookie{
		Name:     h.cookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	}
	return cookie.String()
}
