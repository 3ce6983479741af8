package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/domain"
	"github.com/gautamkumarcode/youtube-video-management/internal/dashboard/store"
	"github.com/gautamkumarcode/youtube-video-management/pkg/cryptox"
)

// tokensRepo persists the single OAuth credential record. Token values are
// sealed with cryptox before they touch disk and opened on the way out.
type tokensRepo struct {
	db dbtx
}

func (r *tokensRepo) SaveTokenRecord(ctx context.Context, rec domain.TokenRecord) error {
	access, err := cryptox.SealToken(rec.AccessToken)
	if err != nil {
		return err
	}

	refresh, err := cryptox.SealToken(rec.RefreshToken)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO oauth_tokens (id, access_token_sealed, refresh_token_sealed, expiry, scope, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			access_token_sealed  = excluded.access_token_sealed,
			refresh_token_sealed = excluded.refresh_token_sealed,
			expiry               = excluded.expiry,
			scope                = excluded.scope,
			saved_at             = excluded.saved_at;
	`, access, refresh, nullTime(rec.Expiry), rec.Scope, rec.SavedAt.UTC())
	return err
}

func (r *tokensRepo) GetTokenRecord(ctx context.Context) (domain.TokenRecord, error) {
	var (
		rec     domain.TokenRecord
		access  string
		refresh string
		expiry  sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, `
		SELECT access_token_sealed, refresh_token_sealed, expiry, scope, saved_at
		FROM oauth_tokens WHERE id = 1;
	`).Scan(&access, &refresh, &expiry, &rec.Scope, &rec.SavedAt)
	if err != nil {
		return domain.TokenRecord{}, mapNotFound(err)
	}

	rec.AccessToken, err = cryptox.OpenToken(access)
	if err == nil {
		rec.RefreshToken, err = cryptox.OpenToken(refresh)
	}
	if err != nil {
		// Sealed with a key we no longer hold (ephemeral dev key, rotated
		// key file). The record is unusable, so report it as absent.
		if errors.Is(err, cryptox.ErrSealedTokenInvalid) {
			return domain.TokenRecord{}, store.ErrNotFound
		}
		return domain.TokenRecord{}, err
	}

	if expiry.Valid {
		rec.Expiry = expiry.Time.UTC()
	}
	rec.SavedAt = rec.SavedAt.UTC()
	return rec, nil
}

func (r *tokensRepo) DeleteTokenRecord(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM oauth_tokens WHERE id = 1;`)
	return err
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t.UTC(), Valid: !t.IsZero()}
}
