package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"credito-inmobiliario/internal/domain/profile"
)

const (
	ctxUserID = "session.user_id"
	ctxRole   = "session.role"
)

// UserID is the authenticated caller, empty when there is no session.
func UserID(c echo.Context) string {
	v, _ := c.Get(ctxUserID).(string)
	return v
}

// SetUserID binds the authenticated caller to the request.
func SetUserID(c echo.Context, uid string) { c.Set(ctxUserID, uid) }

// SetRole binds the caller's role to the request.
func SetRole(c echo.Context, r profile.Role) { c.Set(ctxRole, r) }

// Role is set by RoleGuard for the current request only.
func Role(c echo.Context) profile.Role {
	v, _ := c.Get(ctxRole).(profile.Role)
	return v
}

// isAction reports whether the request is a server action rather than a page load.
func isAction(c echo.Context) bool {
	switch c.Request().Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return false
	}
	return true
}

func actionError(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]any{"success": false, "error": msg})
}
