// Package testutil holds helpers shared by integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/hyjain/hyjain-api/internal/model"
)

// Migration names, in apply order.
const (
	MigrationUsers       = "000001_users"
	MigrationProducts    = "000002_products"
	MigrationSubscribers = "000003_subscribers"
)

// AllMigrations lists every migration in apply order.
var AllMigrations = []string{MigrationUsers, MigrationProducts, MigrationSubscribers}

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 510510

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// ResetSchema drops and recreates the named migrations, in order.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool, migrations ...string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	for _, name := range migrations {
		for _, direction := range []string{"down", "up"} {
			path := filepath.Join(root, "migrations", name+"."+direction+".sql")
			sql, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s %s migration: %w", name, direction, err)
			}
			if _, err := pool.Exec(ctx, string(sql)); err != nil {
				return fmt.Errorf("apply %s %s migration: %w", name, direction, err)
			}
		}
	}

	return nil
}

// NewTestPool connects to DATABASE_URL, serializes on the advisory lock, and
// resets the given migrations. Skips the test when DATABASE_URL is unset.
func NewTestPool(t *testing.T, migrations ...string) (context.Context, *pgxpool.Pool) {
	t.Helper()

	dbURL := RequireEnv(t, "DATABASE_URL")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect database: %v", err)
	}
	t.Cleanup(pool.Close)

	unlock, err := AcquireDBLock(ctx, pool)
	if err != nil {
		t.Fatalf("lock database: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("unlock database: %v", err)
		}
	})

	if err := ResetSchema(ctx, pool, migrations...); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return ctx, pool
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot returns the project root directory.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestAccount creates an identity directory account with sensible defaults.
func NewTestAccount(t testing.TB, displayName string) *model.Account {
	t.Helper()
	return &model.Account{
		ID:          UniqueID("uid"),
		Email:       UniqueEmail("user"),
		DisplayName: displayName,
		CreatedAt:   time.Now().UTC(),
	}
}

// SeedAccount inserts an account into the users table. The service only
// reads the identity directory, so accounts are created here.
func SeedAccount(ctx context.Context, pool *pgxpool.Pool, account *model.Account) error {
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	_, err := pool.Exec(ctx, `
		INSERT INTO users (id, email, display_name, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4)
	`, account.ID, account.Email, account.DisplayName, account.CreatedAt)
	return err
}

// CountSubscribers returns how many signup rows exist for an email address.
func CountSubscribers(ctx context.Context, pool *pgxpool.Pool, email string) (int, error) {
	var n int
	err := pool.QueryRow(ctx, `SELECT count(*) FROM subscribers WHERE email = $1`, email).Scan(&n)
	return n, err
}

// UniqueEmail generates a unique email address for tests.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}

// UniqueID generates a unique ID for tests.
func UniqueID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}
