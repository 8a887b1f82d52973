package credits_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/docmatrix/internal/credits"
	"github.com/JaimeStill/docmatrix/internal/identity"
	"github.com/JaimeStill/docmatrix/pkg/logging"
)

func newSystem(t *testing.T, limit int) (credits.System, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return credits.New(db, credits.Config{DailyLimit: limit}, logging.Discard()), mock
}

var deduct = regexp.QuoteMeta("INSERT INTO credit_usage(user_id, usage_date, credits_used)")

func TestDeduct(t *testing.T) {
	sys, mock := newSystem(t, 20)
	user := uuid.New()

	mock.ExpectQuery(deduct).
		WithArgs(user, 20).
		WillReturnRows(sqlmock.NewRows([]string{"credits_used"}).AddRow(3))

	require.NoError(t, sys.Deduct(context.Background(), user))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeduct_Exhausted(t *testing.T) {
	sys, mock := newSystem(t, 2)
	user := uuid.New()

	mock.ExpectQuery(deduct).
		WithArgs(user, 2).
		WillReturnRows(sqlmock.NewRows([]string{"credits_used"}))

	err := sys.Deduct(context.Background(), user)
	assert.ErrorIs(t, err, credits.ErrInsufficientCredits)
	assert.Equal(t, http.StatusForbidden, credits.MapHTTPStatus(err))
}

func TestDeduct_DatabaseError(t *testing.T) {
	sys, mock := newSystem(t, 2)
	mock.ExpectQuery(deduct).WillReturnError(errors.New("connection refused"))

	err := sys.Deduct(context.Background(), uuid.New())
	require.Error(t, err)
	assert.False(t, errors.Is(err, credits.ErrInsufficientCredits))
	assert.Equal(t, http.StatusInternalServerError, credits.MapHTTPStatus(err))
}

func TestUsage(t *testing.T) {
	sys, mock := newSystem(t, 20)
	user := uuid.New()
	today := time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT\s+COALESCE`).
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"used", "today"}).AddRow(5, today))

	u, err := sys.Usage(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, 5, u.CreditsUsed)
	assert.Equal(t, 15, u.Remaining)
	assert.Equal(t, today, u.UsageDate)
}

func TestConfig_Finalize(t *testing.T) {
	var cfg credits.Config
	require.NoError(t, cfg.Finalize(nil))
	assert.Equal(t, 20, cfg.DailyLimit)

	t.Setenv("TEST_CREDITS_DAILY_LIMIT", "5")
	cfg = credits.Config{}
	require.NoError(t, cfg.Finalize(&credits.Env{DailyLimit: "TEST_CREDITS_DAILY_LIMIT"}))
	assert.Equal(t, 5, cfg.DailyLimit)

	cfg = credits.Config{DailyLimit: -1}
	assert.Error(t, cfg.Finalize(nil))

	cfg = credits.Config{DailyLimit: 20}
	cfg.Merge(&credits.Config{DailyLimit: 50})
	assert.Equal(t, 50, cfg.DailyLimit)
}

type fixedUsage struct{}

func (fixedUsage) Deduct(context.Context, uuid.UUID) error { return nil }

func (fixedUsage) Usage(_ context.Context, user uuid.UUID) (*credits.Usage, error) {
	return &credits.Usage{UserID: user, DailyLimit: 20, CreditsUsed: 1, Remaining: 19}, nil
}

func TestHandler_Get(t *testing.T) {
	h := credits.NewHandler(fixedUsage{}, logging.Discard())
	user := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/credits", nil)
	req = req.WithContext(identity.WithIdentity(req.Context(), identity.Identity{UserID: user, Role: identity.RoleAdmin}))
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var u credits.Usage
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&u))
	assert.Equal(t, 19, u.Remaining)
	assert.True(t, u.Unlimited)

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/credits", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
