package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactSearch(t *testing.T) {
	pool := newTestPool(t)
	repo := NewContactRepository(pool)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `INSERT INTO contacts (name, username, verified) VALUES
		('Sara', '@sara', TRUE),
		('Mehdi', '@mehdi', FALSE),
		('Niloofar', '@niloofar', TRUE)`)
	require.NoError(t, err)

	all, err := repo.Search(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
	// Ordered by name.
	assert.Equal(t, "Mehdi", all[0].Name)

	// Matches name and username, case-insensitive.
	byName, err := repo.Search(ctx, "sar")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Sara", byName[0].Name)

	byUsername, err := repo.Search(ctx, "@meh")
	require.NoError(t, err)
	require.Len(t, byUsername, 1)
	assert.Equal(t, "Mehdi", byUsername[0].Name)

	none, err := repo.Search(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}
