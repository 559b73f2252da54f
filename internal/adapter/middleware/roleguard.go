package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"credito-inmobiliario/internal/domain/profile"
)

const LoginPath = "/login"

type RoleResolver interface {
	RoleOf(ctx context.Context, userID string) (profile.Role, error)
}

// RoleGuard protects /dashboard and below. The role is looked up on every request and
// any lookup failure sends the caller to the login page. A path outside the role's
// area redirects to that area's root. Actions get a JSON result instead of a redirect.
func RoleGuard(roles RoleResolver, m *Metrics, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := UserID(c)
			if uid == "" {
				m.GuardDenied("no_session")
				return deny(c, http.StatusUnauthorized, LoginPath)
			}
			role, err := roles.RoleOf(c.Request().Context(), uid)
			if err != nil || !role.Valid() {
				log.Warn("role lookup failed", zap.String("user_id", uid), zap.Error(err))
				m.GuardDenied("no_role")
				return deny(c, http.StatusUnauthorized, LoginPath)
			}
			SetRole(c, role)

			home := role.Home()
			if !within(c.Request().URL.Path, home) {
				m.GuardDenied("wrong_area")
				return deny(c, http.StatusForbidden, home)
			}
			return next(c)
		}
	}
}

func within(path, area string) bool {
	path = strings.TrimRight(path, "/")
	return path == area || strings.HasPrefix(path, area+"/")
}

func deny(c echo.Context, code int, to string) error {
	if isAction(c) {
		return actionError(c, code, "not authorized")
	}
	return c.Redirect(http.StatusFound, to)
}
