package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
)

// Settings stores process-wide key/value settings.
type Settings struct {
	db  bun.IDB
	log *slog.Logger
}

type setting struct {
	bun.BaseModel `bun:"table:settings,alias:st"`

	Key   string `bun:"key,pk"`
	Value string `bun:"value,notnull"`
}

const jwtSecretKey = "jwt_secret"

// JWTSecret returns the persisted JWT secret, generating and storing one on
// first use. Inserting with OR IGNORE and reading back avoids a race between
// concurrent first starts.
func (r *Settings) JWTSecret(ctx context.Context) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}

	_, err := r.db.NewInsert().
		Model(&setting{Key: jwtSecretKey, Value: hex.EncodeToString(buf)}).
		Ignore().
		Exec(ctx)
	if err != nil {
		return "", mapDBError(r.log, "storing jwt secret", err, "")
	}

	s := new(setting)
	err = r.db.NewSelect().
		Model(s).
		Where("?TableAlias.key = ?", jwtSecretKey).
		Scan(ctx)
	if err != nil {
		return "", mapDBError(r.log, "querying jwt secret", err, "jwt secret not found")
	}
	return s.Value, nil
}
