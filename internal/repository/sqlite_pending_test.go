package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/pathguard/internal/repository"
	"github.com/alexanderramin/pathguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPendingLookupRepo_SaveAndLatest(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePendingLookupRepo(database)
	ctx := context.Background()

	first := testutil.NewTestLookup("12345", "CREOL", 1)
	second := testutil.NewTestLookup("67890", "STWSWP", 2)
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)
	assert.Equal(t, "67890", latest.BadgeID)
	assert.Equal(t, "STWSWP", latest.WorkCode)
	assert.Equal(t, uint64(2), latest.SequenceNumber)
}

func TestPendingLookupRepo_LatestEmpty(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePendingLookupRepo(database)

	_, err := repo.Latest(context.Background())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPendingLookupRepo_SaveIsUpsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePendingLookupRepo(database)
	ctx := context.Background()

	l := testutil.NewTestLookup("12345", "", 1)
	require.NoError(t, repo.Save(ctx, l))

	l.WorkCode = "VRWS"
	l.SequenceNumber = 3
	require.NoError(t, repo.Save(ctx, l))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "VRWS", latest.WorkCode)
	assert.Equal(t, uint64(3), latest.SequenceNumber)
}

func TestPendingLookupRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePendingLookupRepo(database)
	ctx := context.Background()

	l := testutil.NewTestLookup("12345", "CREOL", 1)
	require.NoError(t, repo.Save(ctx, l))
	require.NoError(t, repo.Delete(ctx, l.ID))

	_, err := repo.Latest(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// Deleting a missing row is not an error.
	assert.NoError(t, repo.Delete(ctx, "absent"))
}

func TestPendingLookupRepo_PruneByAge(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLitePendingLookupRepo(database)
	ctx := context.Background()

	now := time.Now().UTC()
	old := testutil.NewTestLookup("111", "", 1, testutil.WithIssuedAt(now.Add(-time.Minute)))
	fresh := testutil.NewTestLookup("222", "", 2, testutil.WithIssuedAt(now))
	require.NoError(t, repo.Save(ctx, old))
	require.NoError(t, repo.Save(ctx, fresh))

	pruned, err := repo.Prune(ctx, now.Add(-30*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 1, pruned)

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, latest.ID)
}
