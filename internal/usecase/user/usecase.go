package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"credito-inmobiliario/internal/domain/profile"
	"credito-inmobiliario/internal/infrastructure/authprovider"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrRoleNotAllowed = errors.New("role cannot be self-assigned")
	// ErrProfileNotCreated is returned after the identity was rolled back.
	ErrProfileNotCreated = errors.New("user profile could not be created")
)

const minPasswordLen = 6

type Usecase struct {
	profiles profile.Repository
	idp      IdentityProvider
	log      *zap.Logger
}

func NewUsecase(p profile.Repository, idp IdentityProvider, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{profiles: p, idp: idp, log: log.Named("user")}
}

func normalize(in *CreateUserInput) error {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.Phone = strings.TrimSpace(in.Phone)
	in.DocumentID = strings.TrimSpace(in.DocumentID)
	switch {
	case in.Email == "" || !strings.Contains(in.Email, "@"):
		return fmt.Errorf("%w: email", ErrInvalidInput)
	case len(in.Password) < minPasswordLen:
		return fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLen)
	case in.FullName == "":
		return fmt.Errorf("%w: full name", ErrInvalidInput)
	case !in.Role.Valid():
		return fmt.Errorf("%w: role %q", ErrInvalidInput, in.Role)
	}
	return nil
}

func metadata(in CreateUserInput) map[string]any {
	return map[string]any{"full_name": in.FullName, "role": string(in.Role)}
}

// CreateUser is the admin path: a confirmed identity through the privileged API, then
// the profile row. A failed profile write deletes the identity again.
func (u *Usecase) CreateUser(ctx context.Context, in CreateUserInput) (*profile.Profile, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	ident, err := u.idp.AdminCreateUser(ctx, in.Email, in.Password, metadata(in))
	if err != nil {
		return nil, err
	}
	return u.createProfile(ctx, ident.ID, in)
}

// Register is public sign-up. Only investor and owner roles may be chosen.
func (u *Usecase) Register(ctx context.Context, in CreateUserInput) (*profile.Profile, error) {
	if err := normalize(&in); err != nil {
		return nil, err
	}
	if in.Role == profile.RoleAdmin {
		return nil, ErrRoleNotAllowed
	}
	ident, err := u.idp.SignUp(ctx, in.Email, in.Password, metadata(in))
	if err != nil {
		return nil, err
	}
	return u.createProfile(ctx, ident.ID, in)
}

func (u *Usecase) createProfile(ctx context.Context, userID string, in CreateUserInput) (*profile.Profile, error) {
	p := &profile.Profile{
		ID:                 userID,
		Role:               in.Role,
		FullName:           in.FullName,
		Email:              in.Email,
		Phone:              in.Phone,
		DocumentID:         in.DocumentID,
		VerificationStatus: profile.VerificationPending,
	}
	if err := u.profiles.Create(ctx, p); err != nil {
		u.log.Error("profile insert failed, removing identity", zap.String("user_id", userID), zap.Error(err))
		if derr := u.idp.AdminDeleteUser(ctx, userID); derr != nil {
			u.log.Error("identity rollback failed", zap.String("user_id", userID), zap.Error(derr))
		}
		return nil, fmt.Errorf("%w: %v", ErrProfileNotCreated, err)
	}
	return p, nil
}

func (u *Usecase) SignIn(ctx context.Context, email, password string) (*authprovider.Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, authprovider.ErrInvalidCredentials
	}
	return u.idp.SignInWithPassword(ctx, email, password)
}

// RoleOf reads the role fresh on every call.
func (u *Usecase) RoleOf(ctx context.Context, userID string) (profile.Role, error) {
	p, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !p.Role.Valid() {
		return "", fmt.Errorf("%w: stored role %q", profile.ErrNotFound, p.Role)
	}
	return p.Role, nil
}

func (u *Usecase) Get(ctx context.Context, userID string) (*profile.Profile, error) {
	return u.profiles.GetByID(ctx, userID)
}

func (u *Usecase) List(ctx context.Context, role profile.Role) ([]profile.Profile, error) {
	if role != "" && !role.Valid() {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidInput, role)
	}
	return u.profiles.List(ctx, role)
}

func (u *Usecase) SetVerification(ctx context.Context, userID string, v profile.Verification) (*profile.Profile, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: verification %q", ErrInvalidInput, v)
	}
	p, err := u.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p.VerificationStatus = v
	if err := u.profiles.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
