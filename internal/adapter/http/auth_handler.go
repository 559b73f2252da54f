package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"credito-inmobiliario/internal/adapter/middleware"
	"credito-inmobiliario/internal/domain/profile"
	useruc "credito-inmobiliario/internal/usecase/user"
)

type AuthHandler struct {
	users  *useruc.Usecase
	secure bool
	log    *zap.Logger
}

func NewAuthHandler(users *useruc.Usecase, secureCookies bool, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, secure: secureCookies, log: named(log, "auth")}
}

type loginReq struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type registerReq struct {
	Email      string `json:"email" form:"email" validate:"required,email"`
	Password   string `json:"password" form:"password" validate:"required,min=6"`
	FullName   string `json:"full_name" form:"full_name" validate:"required,max=160"`
	Phone      string `json:"phone" form:"phone" validate:"omitempty,max=40"`
	DocumentID string `json:"document_id" form:"document_id" validate:"omitempty,max=40"`
	Role       string `json:"role" form:"role" validate:"required,oneof=inversionista propietario"`
}

func (h *AuthHandler) Landing(c echo.Context) error {
	return render(c, "landing", "Inicio", nil)
}

func (h *AuthHandler) LoginPage(c echo.Context) error {
	return render(c, "login", "Ingresar", nil)
}

func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return render(c, "registro", "Crear cuenta", nil)
}

// Login signs in with the provider, stores the session cookies and tells the client
// where the caller's dashboard is.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	ctx := c.Request().Context()
	sess, err := h.users.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return actionErr(c, h.log, err)
	}
	role, err := h.users.RoleOf(ctx, sess.User.ID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			h.log.Warn("sign-in without profile", zap.String("user_id", sess.User.ID))
			return fail(c, http.StatusForbidden, "not authorized")
		}
		return actionErr(c, h.log, err)
	}
	middleware.SetSessionCookies(c, sess, h.secure)
	return ok(c, http.StatusOK, map[string]string{"redirect": role.Home()})
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if handled, err := bindValid(c, &req); handled {
		return err
	}
	p, err := h.users.Register(c.Request().Context(), useruc.CreateUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Role:       profile.Role(req.Role),
		FullName:   req.FullName,
		Phone:      req.Phone,
		DocumentID: req.DocumentID,
	})
	if err != nil {
		return actionErr(c, h.log, err)
	}
	return ok(c, http.StatusCreated, map[string]string{"id": p.ID, "redirect": middleware.LoginPath})
}

func (h *AuthHandler) SignOut(c echo.Context) error {
	middleware.ClearSessionCookies(c, h.secure)
	return c.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
