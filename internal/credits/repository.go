package credits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/docmatrix/pkg/repository"
)

// System tracks daily credit usage.
type System interface {
	// Deduct spends one credit for userID or fails with ErrInsufficientCredits.
	Deduct(ctx context.Context, userID uuid.UUID) error
	Usage(ctx context.Context, userID uuid.UUID) (*Usage, error)
}

type repo struct {
	db     *sql.DB
	limit  int
	logger *slog.Logger
}

// New creates a credit system backed by the credit_usage table.
func New(db *sql.DB, cfg Config, logger *slog.Logger) System {
	return &repo{
		db:     db,
		limit:  cfg.DailyLimit,
		logger: logger.With("system", "credits"),
	}
}

// deductSQL resets a stale day and spends one credit atomically. The
// conditional upsert returns no row once the day's allowance is spent.
const deductSQL = `INSERT INTO credit_usage(user_id, usage_date, credits_used)
	VALUES($1, CURRENT_DATE, 1)
	ON CONFLICT (user_id) DO UPDATE SET
		credits_used = CASE WHEN credit_usage.usage_date < CURRENT_DATE THEN 1 ELSE credit_usage.credits_used + 1 END,
		usage_date = CURRENT_DATE
	WHERE credit_usage.usage_date < CURRENT_DATE OR credit_usage.credits_used < $2
	RETURNING credits_used`

const usageSQL = `SELECT
		COALESCE((SELECT CASE WHEN usage_date < CURRENT_DATE THEN 0 ELSE credits_used END
			FROM credit_usage WHERE user_id = $1), 0),
		CURRENT_DATE`

func (r *repo) Deduct(ctx context.Context, userID uuid.UUID) error {
	used, err := repository.QueryOne(ctx, r.db, deductSQL, []any{userID, r.limit}, func(s repository.Scanner) (int, error) {
		var n int
		err := s.Scan(&n)
		return n, err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.logger.Info("credit denied", "user_id", userID, "daily_limit", r.limit)
			return ErrInsufficientCredits
		}
		return fmt.Errorf("deduct credit: %w", err)
	}

	r.logger.Debug("credit deducted", "user_id", userID, "credits_used", used)
	return nil
}

func (r *repo) Usage(ctx context.Context, userID uuid.UUID) (*Usage, error) {
	u := Usage{UserID: userID, DailyLimit: r.limit}
	if err := r.db.QueryRowContext(ctx, usageSQL, userID).Scan(&u.CreditsUsed, &u.UsageDate); err != nil {
		return nil, fmt.Errorf("query credit usage: %w", err)
	}
	u.Remaining = max(r.limit-u.CreditsUsed, 0)
	return &u, nil
}
