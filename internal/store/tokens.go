package store

import (
	"context"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
)

// Tokens tracks revoked session tokens by JTI.
type Tokens struct {
	db  bun.IDB
	log *slog.Logger
}

type revokedToken struct {
	bun.BaseModel `bun:"table:revoked_tokens,alias:rt"`

	JTI       string    `bun:"jti,pk"`
	ExpiresAt time.Time `bun:"expires_at,notnull"`
}

// Revoke adds a token's JTI to the revocation list until expiresAt.
func (r *Tokens) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := r.db.NewInsert().
		Model(&revokedToken{JTI: jti, ExpiresAt: expiresAt.UTC()}).
		Ignore().
		Exec(ctx)
	if err != nil {
		return mapDBError(r.log, "revoking token", err, "")
	}

	// Opportunistically clean up expired revocations.
	if _, err := r.db.NewDelete().
		Model((*revokedToken)(nil)).
		Where("?TableAlias.expires_at < ?", time.Now().UTC()).
		Exec(ctx); err != nil {
		r.log.Warn("pruning expired revocations", "error", err)
	}

	return nil
}

// IsRevoked reports whether a token's JTI has been revoked.
func (r *Tokens) IsRevoked(ctx context.Context, jti string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*revokedToken)(nil)).
		Where("?TableAlias.jti = ?", jti).
		Exists(ctx)
	if err != nil {
		return false, mapDBError(r.log, "checking token revocation", err, "")
	}
	return exists, nil
}
