package timelog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "sessions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestRepositoryCreate(t *testing.T) {
	repo := newTestRepo(t)

	started := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := &Session{
		Project:   "thesis",
		StartedAt: started,
		StoppedAt: started.Add(10 * time.Second),
		Duration:  10 * time.Second,
	}
	require.NoError(t, repo.Create(s))
	assert.NotZero(t, s.ID)

	got, err := repo.ByProject("thesis", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "thesis", got[0].Project)
	assert.True(t, got[0].StartedAt.Equal(started))
	assert.Equal(t, 10*time.Second, got[0].Duration)
}

func TestRepositoryByProject(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		started := base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Create(&Session{
			Project:   "thesis",
			StartedAt: started,
			StoppedAt: started.Add(time.Minute),
			Duration:  time.Minute,
		}))
	}
	require.NoError(t, repo.Create(&Session{
		Project:   "other",
		StartedAt: base,
		StoppedAt: base.Add(time.Minute),
		Duration:  time.Minute,
	}))

	t.Run("MostRecentFirst", func(t *testing.T) {
		got, err := repo.ByProject("thesis", 0)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, got[0].StoppedAt.After(got[1].StoppedAt))
		assert.True(t, got[1].StoppedAt.After(got[2].StoppedAt))
	})

	t.Run("Limit", func(t *testing.T) {
		got, err := repo.ByProject("thesis", 2)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("UnknownProject", func(t *testing.T) {
		got, err := repo.ByProject("nope", 0)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRepositoryAll(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for _, project := range []string{"alpha", "beta"} {
		require.NoError(t, repo.Create(&Session{
			Project:   project,
			StartedAt: base,
			StoppedAt: base.Add(time.Minute),
			Duration:  time.Minute,
		}))
		base = base.Add(time.Hour)
	}

	got, err := repo.All()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "beta", got[0].Project)
	assert.Equal(t, "alpha", got[1].Project)
}

func TestRepositoryDeleteByProject(t *testing.T) {
	repo := newTestRepo(t)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&Session{Project: "alpha", StartedAt: base, StoppedAt: base.Add(time.Minute), Duration: time.Minute}))
	require.NoError(t, repo.Create(&Session{Project: "beta", StartedAt: base, StoppedAt: base.Add(time.Minute), Duration: time.Minute}))

	require.NoError(t, repo.DeleteByProject("alpha"))

	got, err := repo.All()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "beta", got[0].Project)
}
