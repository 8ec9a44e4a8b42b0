// Package service implements the account, item, list and seeding
// operations on top of the store.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/anylist/internal/auth"
	"github.com/erazemk/anylist/internal/model"
	"github.com/erazemk/anylist/internal/store"
)

const loginMismatch = "Email/Password do not match"

// Accounts manages sign-up, sessions and user administration.
type Accounts struct {
	store  *store.Store
	tokens *auth.Tokens
	log    *slog.Logger
}

// NewAccounts creates an Accounts service.
func NewAccounts(st *store.Store, tokens *auth.Tokens, log *slog.Logger) *Accounts {
	return &Accounts{store: st, tokens: tokens, log: log}
}

// SignUp creates an active account with the user role and opens a session.
func (a *Accounts) SignUp(ctx context.Context, in model.SignUpInput) (*model.AuthResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: hash,
		Roles:        model.Roles{model.RoleUser},
		IsActive:     true,
	}
	if err := a.store.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	a.log.Info("user signed up", "user_id", user.ID)
	return a.session(user)
}

// Login checks credentials and opens a session. Unknown emails and wrong
// passwords fail identically.
func (a *Accounts) Login(ctx context.Context, in model.LoginInput) (*model.AuthResponse, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := a.store.Users.FindByEmailWithPassword(ctx, in.Email)
	var nf *model.NotFoundError
	if errors.As(err, &nf) {
		auth.VerifyNothing(in.Password)
		return nil, model.ErrUnauthorized(loginMismatch)
	}
	if err != nil {
		return nil, err
	}

	if !auth.VerifyPassword(in.Password, user.PasswordHash) {
		return nil, model.ErrUnauthorized(loginMismatch)
	}
	if !user.IsActive {
		return nil, model.ErrUnauthorized("User not active")
	}

	user.PasswordHash = ""
	return a.session(user)
}

// Revalidate issues a fresh token for an authenticated user.
func (a *Accounts) Revalidate(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	return a.session(user)
}

// Logout revokes the token described by claims until it expires.
func (a *Accounts) Logout(ctx context.Context, claims *auth.Claims) error {
	expires := time.Now().Add(a.tokens.TTL())
	if claims.ExpiresAt != nil {
		expires = claims.ExpiresAt.Time
	}
	return a.store.Tokens.Revoke(ctx, claims.ID, expires)
}

// Authenticate resolves a bearer token to an active user.
func (a *Accounts) Authenticate(ctx context.Context, token string) (*model.User, *auth.Claims, error) {
	claims, err := a.tokens.Validate(token)
	if err != nil {
		a.log.Debug("rejected token", "error", err)
		return nil, nil, model.ErrUnauthorized("invalid token")
	}

	revoked, err := a.store.Tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, model.ErrUnauthorized("token has been revoked")
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, nil, model.ErrUnauthorized("invalid token")
	}

	user, err := a.store.Users.FindByID(ctx, id)
	var nf *model.NotFoundError
	if errors.As(err, &nf) {
		return nil, nil, model.ErrUnauthorized("invalid token")
	}
	if err != nil {
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, model.ErrUnauthorized("User not active")
	}

	return user, claims, nil
}

// FindAll returns a page of users holding any of roles.
func (a *Accounts) FindAll(ctx context.Context, roles []model.Role, page model.Page, s model.Search) ([]model.User, error) {
	for _, role := range roles {
		if !model.IsValidRole(role) {
			return nil, &model.ValidationError{
				Message: "invalid input",
				Fields:  map[string]string{"roles": "unknown role " + role},
			}
		}
	}
	page, err := page.Normalize()
	if err != nil {
		return nil, err
	}
	return a.store.Users.FindAll(ctx, roles, page, s)
}

// FindOne returns the user with id.
func (a *Accounts) FindOne(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return a.store.Users.FindByID(ctx, id)
}

// Overview returns the user with id, the admin who last changed it and the
// number of items and lists it owns.
func (a *Accounts) Overview(ctx context.Context, id uuid.UUID) (*model.UserOverview, error) {
	user, err := a.store.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ov := &model.UserOverview{User: user}
	if user.LastUpdateBy != nil {
		by, err := a.store.Users.FindByID(ctx, *user.LastUpdateBy)
		var nf *model.NotFoundError
		if err != nil && !errors.As(err, &nf) {
			return nil, err
		}
		ov.UpdatedBy = by
	}

	if ov.ItemCount, err = a.store.Items.CountByOwner(ctx, id); err != nil {
		return nil, err
	}
	if ov.ListCount, err = a.store.Lists.CountByOwner(ctx, id); err != nil {
		return nil, err
	}
	return ov, nil
}

// Update applies a partial update on behalf of admin. A new password is
// hashed before it is stored.
func (a *Accounts) Update(ctx context.Context, id uuid.UUID, in model.UpdateUserInput, admin *model.User) (*model.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	user, err := a.store.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	columns := []string{"last_update_by"}
	if in.FullName != nil {
		user.FullName = *in.FullName
		columns = append(columns, "full_name")
	}
	if in.Email != nil {
		user.Email = *in.Email
		columns = append(columns, "email")
	}
	if in.Password != nil {
		if user.PasswordHash, err = auth.HashPassword(*in.Password); err != nil {
			return nil, err
		}
		columns = append(columns, "password_hash")
	}
	if in.Roles != nil {
		user.Roles = model.Roles(in.Roles)
		columns = append(columns, "roles")
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
		columns = append(columns, "is_active")
	}
	user.LastUpdateBy = &admin.ID

	if err := a.store.Users.Update(ctx, user, columns...); err != nil {
		return nil, err
	}
	user.PasswordHash = ""

	a.log.Info("user updated", "user_id", user.ID, "admin_id", admin.ID, "columns", columns)
	return user, nil
}

// Block deactivates the user with id on behalf of admin. Blocking an
// inactive user succeeds and restamps the acting admin.
func (a *Accounts) Block(ctx context.Context, id uuid.UUID, admin *model.User) (*model.User, error) {
	user, err := a.store.Users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.IsActive = false
	user.LastUpdateBy = &admin.ID
	if err := a.store.Users.Update(ctx, user, "is_active", "last_update_by"); err != nil {
		return nil, err
	}

	a.log.Info("user blocked", "user_id", user.ID, "admin_id", admin.ID)
	return user, nil
}

func (a *Accounts) session(user *model.User) (*model.AuthResponse, error) {
	token, err := a.tokens.Issue(user.ID)
	if err != nil {
		return nil, &model.InternalError{Err: err}
	}
	return &model.AuthResponse{Token: token, User: user}, nil
}
