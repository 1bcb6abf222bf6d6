package repository

import (
	"context"
	"database/sql"
	"regexp"

	"futurenews/internal/model"
)

var placeholder = regexp.MustCompile(`\$\d+`)

type EntitlementRepository struct {
	db     *sql.DB
	driver string
}

func NewEntitlementRepository(db *sql.DB, driver string) *EntitlementRepository {
	return &EntitlementRepository{db: db, driver: driver}
}

// q rewrites $N placeholders to ? for SQLite. Queries must bind
// arguments in placeholder order.
func (r *EntitlementRepository) q(query string) string {
	if r.driver == "sqlite" {
		return placeholder.ReplaceAllString(query, "?")
	}
	return query
}

func (r *EntitlementRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *EntitlementRepository) GetFreeTrial(ctx context.Context, deviceID string) (*model.FreeTrial, error) {
	var t model.FreeTrial
	err := r.db.QueryRowContext(ctx, r.q(`
		SELECT device_id, uses_count
		FROM free_trial
		WHERE device_id = $1
	`), deviceID).Scan(&t.DeviceID, &t.UsesCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &t, nil
}

// ConsumeFreeTrial records one free use for deviceID if it has fewer than
// limit uses. An unseen device starts at one use.
func (r *EntitlementRepository) ConsumeFreeTrial(ctx context.Context, deviceID string, limit int) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var uses int
	err = tx.QueryRowContext(ctx, r.q(`
		SELECT uses_count FROM free_trial WHERE device_id = $1
	`), deviceID).Scan(&uses)

	switch {
	case err == sql.ErrNoRows:
		_, err = tx.ExecContext(ctx, r.q(`
			INSERT INTO free_trial(device_id, uses_count)
			VALUES($1, 1)
		`), deviceID)
	case err != nil:
		return false, err
	case uses >= limit:
		return false, nil
	default:
		_, err = tx.ExecContext(ctx, r.q(`
			UPDATE free_trial
			SET uses_count = $1, updated_at = CURRENT_TIMESTAMP
			WHERE device_id = $2
		`), uses+1, deviceID)
	}
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *EntitlementRepository) GetToken(ctx context.Context, token string) (*model.GenerationToken, error) {
	var t model.GenerationToken
	err := r.db.QueryRowContext(ctx, r.q(`
		SELECT token, remaining_generations
		FROM generation_token
		WHERE token = $1
	`), token).Scan(&t.Token, &t.RemainingGenerations)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &t, nil
}

// ConsumeToken spends one generation from token. Unknown and exhausted
// tokens are rejected without a write.
func (r *EntitlementRepository) ConsumeToken(ctx context.Context, token string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var remaining int
	err = tx.QueryRowContext(ctx, r.q(`
		SELECT remaining_generations FROM generation_token WHERE token = $1
	`), token).Scan(&remaining)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	if remaining <= 0 {
		return false, nil
	}

	_, err = tx.ExecContext(ctx, r.q(`
		UPDATE generation_token
		SET remaining_generations = $1, last_used_at = CURRENT_TIMESTAMP
		WHERE token = $2
	`), remaining-1, token)
	if err != nil {
		return false, err
	}

	return true, tx.Commit()
}

func (r *EntitlementRepository) CreateToken(ctx context.Context, token *model.GenerationToken) error {
	_, err := r.db.ExecContext(ctx, r.q(`
		INSERT INTO generation_token(token, remaining_generations)
		VALUES($1, $2)
	`), token.Token, token.RemainingGenerations)
	return err
}
