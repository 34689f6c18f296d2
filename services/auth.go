package services

import (
	"context"
	"time"

	"fixmyward-be/models"
	"fixmyward-be/store"

	"github.com/google/uuid"
)

// AuthService maps submitted credentials to User records and tracks
// the persisted session. Login only checks that the email exists; the
// password is accepted but never compared, matching the current
// product contract.
type AuthService struct {
	store store.Store
}

func NewAuthService(s store.Store) *AuthService {
	return &AuthService{store: s}
}

// Signup creates a new user. Email uniqueness is the only integrity
// constraint checked before insert; the chosen ward must be a registry
// id or it falls back to the first ward.
func (a *AuthService) Signup(ctx context.Context, name, email, password string, role models.UserRole, wardID string) (*models.User, error) {
	existing, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	if !models.ValidRole(role) {
		role = models.RoleCitizen
	}
	ward := models.WardByID(wardID)

	now := time.Now()
	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		WardID:    ward.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}

	if err := a.store.AppendUser(ctx, user); err != nil {
		return nil, err
	}
	if err := a.store.SetSession(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login succeeds iff a user with the email exists. The password value
// is ignored.
func (a *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := a.store.SetSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the persisted session.
func (a *AuthService) Logout(ctx context.Context) error {
	return a.store.ClearSession(ctx)
}

// CurrentSession restores the persisted session user, or nil when no
// one is signed in. Read once at startup; a present user is considered
// authenticated for the rest of the run.
func (a *AuthService) CurrentSession(ctx context.Context) (*models.User, error) {
	return a.store.GetSession(ctx)
}

// UserByID resolves a user id from an authenticated request.
func (a *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	user, err := a.store.FindUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}
