package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/erazemk/anylist/internal/model"
)

// Users persists accounts. The password hash is only read by
// FindByEmailWithPassword.
type Users struct {
	db  bun.IDB
	log *slog.Logger
}

// Create inserts u, assigning its ID and creation time.
func (r *Users) Create(ctx context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if len(u.Roles) == 0 {
		u.Roles = model.Roles{model.RoleUser}
	}
	u.CreatedAt = time.Now().UTC()

	if _, err := r.db.NewInsert().Model(u).Exec(ctx); err != nil {
		return mapDBError(r.log, "creating user", err, "")
	}
	u.PasswordHash = ""
	return nil
}

// FindByID returns a user without its password hash.
func (r *Users) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u := new(model.User)
	err := r.db.NewSelect().
		Model(u).
		ExcludeColumn("password_hash").
		Where("?TableAlias.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "getting user", err, id.String()+" not found")
	}
	return u, nil
}

// FindByEmailWithPassword returns a user including the password hash.
// Emails compare case-insensitively.
func (r *Users) FindByEmailWithPassword(ctx context.Context, email string) (*model.User, error) {
	u := new(model.User)
	err := r.db.NewSelect().
		Model(u).
		Where("?TableAlias.email = ?", email).
		Scan(ctx)
	if err != nil {
		return nil, mapDBError(r.log, "getting user by email", err, email+" not found")
	}
	return u, nil
}

// FindAll returns a page of users holding any of roles (all users when
// roles is empty) whose full name or email contains the search term.
func (r *Users) FindAll(ctx context.Context, roles []model.Role, page model.Page, s model.Search) ([]model.User, error) {
	users := make([]model.User, 0)
	q := r.db.NewSelect().
		Model(&users).
		ExcludeColumn("password_hash")
	if len(roles) > 0 {
		q = q.Where("EXISTS (SELECT 1 FROM json_each(?TableAlias.roles) WHERE json_each.value IN (?))", bun.In(roles))
	}
	q = search(q, s, "?TableAlias.full_name", "?TableAlias.email")

	if err := paginate(q, page).Scan(ctx); err != nil {
		return nil, mapDBError(r.log, "listing users", err, "")
	}
	return users, nil
}

// Update writes the given columns of u. An empty column list writes every
// column except the ID and creation time.
func (r *Users) Update(ctx context.Context, u *model.User, columns ...string) error {
	if len(columns) == 0 {
		columns = []string{"full_name", "email", "password_hash", "roles", "is_active", "last_update_by"}
	}
	res, err := r.db.NewUpdate().
		Model(u).
		Column(columns...).
		Where("?TableAlias.id = ?", u.ID).
		Exec(ctx)
	if err != nil {
		return mapDBError(r.log, "updating user", err, "")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.ErrNotFound("%s not found", u.ID)
	}
	return nil
}

// DeleteAll removes every user.
func (r *Users) DeleteAll(ctx context.Context) error {
	_, err := r.db.NewDelete().
		Model((*model.User)(nil)).
		Where("1 = 1").
		Exec(ctx)
	return mapDBError(r.log, "deleting users", err, "")
}
