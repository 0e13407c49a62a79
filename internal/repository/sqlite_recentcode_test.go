package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/pathguard/internal/repository"
	"github.com/alexanderramin/pathguard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentCodeRepo_RecordAndList(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteRecentCodeRepo(database)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Record(ctx, "creol", now.Add(-time.Minute)))
	require.NoError(t, repo.Record(ctx, "STWSWP", now))

	codes, err := repo.List(ctx)
	require.NoError(t, err)
	// Most recently used first, stored uppercased.
	assert.Equal(t, []string{"STWSWP", "CREOL"}, codes)
}

func TestRecentCodeRepo_KeepsLastTen(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteRecentCodeRepo(database)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 12; i++ {
		code := fmt.Sprintf("CODE%02d", i)
		require.NoError(t, repo.Record(ctx, code, base.Add(time.Duration(i)*time.Second)))
	}

	codes, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, codes, 10)
	assert.Equal(t, "CODE11", codes[0])
	assert.NotContains(t, codes, "CODE00")
	assert.NotContains(t, codes, "CODE01")
}

func TestRecentCodeRepo_SuggestByPrefix(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteRecentCodeRepo(database)
	ctx := context.Background()

	now := time.Now().UTC()
	require.NoError(t, repo.Record(ctx, "CREOL", now))
	require.NoError(t, repo.Record(ctx, "CRESW", now))
	require.NoError(t, repo.Record(ctx, "STWSWP", now))
	// CREOL used twice, so it ranks first among the CR matches.
	require.NoError(t, repo.Record(ctx, "CREOL", now.Add(time.Second)))

	codes, err := repo.Suggest(ctx, "cr", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"CREOL", "CRESW"}, codes)

	codes, err = repo.Suggest(ctx, "ST", 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"STWSWP"}, codes)

	codes, err = repo.Suggest(ctx, "ZZ", 5)
	require.NoError(t, err)
	assert.Empty(t, codes)
}

func TestRecentCodeRepo_SuggestEscapesWildcards(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteRecentCodeRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, "CREOL", time.Now().UTC()))

	codes, err := repo.Suggest(ctx, "%", 5)
	require.NoError(t, err)
	assert.Empty(t, codes, "a literal %% must not match everything")
}

func TestRecentCodeRepo_IgnoresEmptyInput(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteRecentCodeRepo(database)
	ctx := context.Background()

	require.NoError(t, repo.Record(ctx, "   ", time.Now().UTC()))

	codes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, codes)

	codes, err = repo.Suggest(ctx, "", 5)
	require.NoError(t, err)
	assert.Empty(t, codes)
}
