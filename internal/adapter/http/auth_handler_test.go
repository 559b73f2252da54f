package http

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"credito-inmobiliario/internal/adapter/middleware"
	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/internal/infrastructure/authprovider"
	"credito-inmobiliario/internal/testutil/profilemock"
	useruc "credito-inmobiliario/internal/usecase/user"
)

type fakeIdP struct {
	signIn func(email, password string) (*authprovider.Session, error)
	signUp func(email string) (*authprovider.User, error)
}

func (f *fakeIdP) SignUp(_ context.Context, email, _ string, _ map[string]any) (*authprovider.User, error) {
	return f.signUp(email)
}

func (f *fakeIdP) SignInWithPassword(_ context.Context, email, password string) (*authprovider.Session, error) {
	return f.signIn(email, password)
}

func (f *fakeIdP) AdminCreateUser(_ context.Context, email, _ string, _ map[string]any) (*authprovider.User, error) {
	return &authprovider.User{ID: adminID, Email: email}, nil
}

func (f *fakeIdP) AdminDeleteUser(context.Context, string) error { return nil }

func profilesWithRole(role profile.Role) *profilemock.Repo {
	return &profilemock.Repo{
		GetByIDFn: func(_ context.Context, id string) (*profile.Profile, error) {
			if role == "" {
				return nil, profile.ErrNotFound
			}
			return &profile.Profile{ID: id, Role: role}, nil
		},
	}
}

func TestLogin_SetsCookiesAndRedirectsToRoleHome(t *testing.T) {
	e := newEcho(t)
	idp := &fakeIdP{signIn: func(email, password string) (*authprovider.Session, error) {
		if email != "ana@example.com" || password != "secreto1" {
			t.Fatalf("unexpected credentials %q/%q", email, password)
		}
		return &authprovider.Session{AccessToken: "at", RefreshToken: "rt", ExpiresIn: 3600, User: authprovider.User{ID: investorID}}, nil
	}}
	h := NewAuthHandler(useruc.NewUsecase(profilesWithRole(profile.RoleInversionista), idp, nil), false, zap.NewNop())

	c, rec := newCtx(e, http.MethodPost, "/login", map[string]string{"email": "ana@example.com", "password": "secreto1"}, "")
	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body=%s", rec.Code, rec.Body.String())
	}
	res := decodeResult(t, rec)
	data, _ := res.Data.(map[string]any)
	if !res.Success || data["redirect"] != "/dashboard/inversionista" {
		t.Fatalf("unexpected result: %+v", res)
	}
	cookies := rec.Result().Cookies()
	got := map[string]string{}
	for _, ck := range cookies {
		got[ck.Name] = ck.Value
	}
	if got[middleware.AccessCookie] != "at" || got[middleware.RefreshCookie] != "rt" {
		t.Fatalf("session cookies not set: %+v", got)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	e := newEcho(t)
	idp := &fakeIdP{signIn: func(string, string) (*authprovider.Session, error) {
		return nil, authprovider.ErrInvalidCredentials
	}}
	h := NewAuthHandler(useruc.NewUsecase(profilesWithRole(profile.RoleAdmin), idp, nil), false, zap.NewNop())

	c, rec := newCtx(e, http.MethodPost, "/login", map[string]string{"email": "ana@example.com", "password": "nope"}, "")
	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if res := decodeResult(t, rec); res.Success || res.Error != "invalid email or password" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookies expected on failure")
	}
}

func TestLogin_WithoutProfileIsForbidden(t *testing.T) {
	e := newEcho(t)
	idp := &fakeIdP{signIn: func(string, string) (*authprovider.Session, error) {
		return &authprovider.Session{AccessToken: "at", User: authprovider.User{ID: investorID}}, nil
	}}
	h := NewAuthHandler(useruc.NewUsecase(profilesWithRole(""), idp, nil), false, zap.NewNop())

	c, rec := newCtx(e, http.MethodPost, "/login", map[string]string{"email": "ana@example.com", "password": "secreto1"}, "")
	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookies expected without a profile")
	}
}

func TestLogin_ValidationDetails(t *testing.T) {
	e := newEcho(t)
	h := NewAuthHandler(useruc.NewUsecase(nil, &fakeIdP{}, nil), false, zap.NewNop())

	c, rec := newCtx(e, http.MethodPost, "/login", map[string]string{"email": "not-an-email"}, "")
	if err := h.Login(c); err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	res := decodeResult(t, rec)
	if !containsFieldMsg(res.Details, "email", "valid email") || !containsFieldMsg(res.Details, "password", "is required") {
		t.Fatalf("unexpected details: %+v", res.Details)
	}
}

func TestRegister_AdminRoleNotSelectable(t *testing.T) {
	e := newEcho(t)
	h := NewAuthHandler(useruc.NewUsecase(nil, &fakeIdP{}, nil), false, zap.NewNop())

	body := map[string]string{
		"email": "eva@example.com", "password": "secreto1", "full_name": "Eva", "role": "admin",
	}
	c, rec := newCtx(e, http.MethodPost, "/registro", body, "")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if res := decodeResult(t, rec); !containsFieldMsg(res.Details, "role", "inversionista propietario") {
		t.Fatalf("unexpected details: %+v", res.Details)
	}
}

func TestRegister_CreatesPendingProfile(t *testing.T) {
	e := newEcho(t)
	var created *profile.Profile
	profiles := &profilemock.Repo{CreateFn: func(_ context.Context, p *profile.Profile) error {
		created = p
		return nil
	}}
	idp := &fakeIdP{signUp: func(email string) (*authprovider.User, error) {
		return &authprovider.User{ID: ownerID, Email: email}, nil
	}}
	h := NewAuthHandler(useruc.NewUsecase(profiles, idp, nil), false, zap.NewNop())

	body := map[string]string{
		"email": "luis@example.com", "password": "secreto1", "full_name": "Luis Pérez", "role": "propietario",
	}
	c, rec := newCtx(e, http.MethodPost, "/registro", body, "")
	if err := h.Register(c); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	if created == nil || created.ID != ownerID || created.Role != profile.RolePropietario ||
		created.VerificationStatus != profile.VerificationPending {
		t.Fatalf("unexpected profile: %+v", created)
	}
}

func TestSignOut_ClearsCookies(t *testing.T) {
	e := newEcho(t)
	h := NewAuthHandler(nil, true, nil)

	c, rec := newCtx(e, http.MethodPost, "/auth/signout", nil, investorID)
	if err := h.SignOut(c); err != nil {
		t.Fatalf("SignOut error: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("got %d → %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge >= 0 || !strings.HasPrefix(ck.Name, "sb-") {
			t.Fatalf("cookie not cleared: %+v", ck)
		}
	}
}
