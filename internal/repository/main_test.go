package repository

import (
	"context"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/shark/migrations"
)

// newTestPool connects to TEST_DATABASE_URL, applies the embedded migrations
// and wipes all tables. Tests are skipped when the variable is not set.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	entries, err := migrations.Files.ReadDir(".")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		data, err := migrations.Files.ReadFile(name)
		require.NoError(t, err)
		_, err = pool.Exec(ctx, string(data))
		require.NoError(t, err, "migration %s", name)
	}

	_, err = pool.Exec(ctx,
		"TRUNCATE messages, chats, contacts, call_logs, user_settings RESTART IDENTITY CASCADE")
	require.NoError(t, err)
	return pool
}
