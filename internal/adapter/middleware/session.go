package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"credito-inmobiliario/internal/infrastructure/authprovider"
)

const (
	AccessCookie  = "sb-access-token"
	RefreshCookie = "sb-refresh-token"

	refreshCookieTTL = 30 * 24 * time.Hour
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*authprovider.Session, error)
}

// Session resolves the caller from the provider cookies. An expired access token is
// exchanged with the refresh token and both cookies are rewritten. It never rejects;
// RoleGuard decides what an anonymous caller may see.
func Session(v TokenVerifier, r TokenRefresher, secure bool, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			access, err := c.Cookie(AccessCookie)
			if err != nil || access.Value == "" {
				return next(c)
			}
			uid, err := v.Verify(access.Value)
			if errors.Is(err, authprovider.ErrTokenExpired) {
				uid, err = refresh(c, v, r, secure)
				if err != nil {
					log.Debug("session refresh failed", zap.Error(err))
					ClearSessionCookies(c, secure)
				}
			}
			if err == nil && uid != "" {
				SetUserID(c, uid)
			}
			return next(c)
		}
	}
}

func refresh(c echo.Context, v TokenVerifier, r TokenRefresher, secure bool) (string, error) {
	rc, err := c.Cookie(RefreshCookie)
	if err != nil || rc.Value == "" {
		return "", authprovider.ErrTokenExpired
	}
	s, err := r.Refresh(c.Request().Context(), rc.Value)
	if err != nil {
		return "", err
	}
	uid, err := v.Verify(s.AccessToken)
	if err != nil {
		return "", err
	}
	SetSessionCookies(c, s, secure)
	return uid, nil
}

func SetSessionCookies(c echo.Context, s *authprovider.Session, secure bool) {
	maxAge := s.ExpiresIn
	if maxAge <= 0 {
		maxAge = int(time.Hour / time.Second)
	}
	c.SetCookie(sessionCookie(AccessCookie, s.AccessToken, maxAge, secure))
	c.SetCookie(sessionCookie(RefreshCookie, s.RefreshToken, int(refreshCookieTTL/time.Second), secure))
}

func ClearSessionCookies(c echo.Context, secure bool) {
	c.SetCookie(sessionCookie(AccessCookie, "", -1, secure))
	c.SetCookie(sessionCookie(RefreshCookie, "", -1, secure))
}

func sessionCookie(name, value string, maxAge int, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
