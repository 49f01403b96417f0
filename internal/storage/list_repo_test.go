package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*ListRepo, *time.Time) {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	now := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	repo := NewListRepo(db, WithClock(func() time.Time { return now }))
	return repo, &now
}

func task(id string, status Status) Task {
	return Task{
		ID:        id,
		Name:      "task " + id,
		Status:    status,
		CreatedAt: time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC),
		Interval:  "30m",
	}
}

func TestGetListAbsent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	tasks, ok, err := repo.GetList(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, tasks)
}

func TestAddCreatesListAndAppends(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, task("a", StatusOngoing)))
	require.NoError(t, repo.Add(ctx, task("b", StatusScheduled)))

	tasks, ok, err := repo.GetList(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].ID)
	assert.Equal(t, "b", tasks[1].ID)
}

func TestGetListStatusFilterIsReadOnly(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, task("a", StatusOngoing)))
	require.NoError(t, repo.Add(ctx, task("b", StatusDone)))
	require.NoError(t, repo.Add(ctx, task("c", StatusOngoing)))

	ongoing, ok, err := repo.GetList(ctx, StatusOngoing)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, ongoing, 2)

	all, _, err := repo.GetList(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3, "filtering must not mutate stored state")
}

func TestUpdateStatus(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.UpdateStatus(ctx, "a", StatusDone)
	require.NoError(t, err)
	assert.False(t, ok, "missing list")

	require.NoError(t, repo.Add(ctx, task("a", StatusOngoing)))

	ok, err = repo.UpdateStatus(ctx, "missing", StatusDone)
	require.NoError(t, err)
	assert.False(t, ok, "missing id")

	ok, err = repo.UpdateStatus(ctx, "a", StatusDone)
	require.NoError(t, err)
	require.True(t, ok)

	tasks, _, err := repo.GetList(ctx)
	require.NoError(t, err)
	assert.Equal(t, StatusDone, tasks[0].Status)
}

func TestRemove(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	ok, err := repo.Remove(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "missing list signals failure")

	require.NoError(t, repo.Add(ctx, task("a", StatusOngoing)))
	require.NoError(t, repo.Add(ctx, task("b", StatusOngoing)))

	ok, err = repo.Remove(ctx, "nope")
	require.NoError(t, err)
	assert.True(t, ok, "unknown id on an existing list is a no-op, not a failure")

	ok, err = repo.Remove(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)

	tasks, _, err := repo.GetList(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "b", tasks[0].ID)
}

func TestRemoveAllLeavesEmptyNotAbsent(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, task("a", StatusOngoing)))
	require.NoError(t, repo.RemoveAll(ctx))

	tasks, ok, err := repo.GetList(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, tasks)
}

func TestOperationsScopeToTodayAtCallTime(t *testing.T) {
	repo, now := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, task("a", StatusOngoing)))

	*now = now.AddDate(0, 0, 1)
	_, ok, err := repo.GetList(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "next day starts with an absent list")

	yesterday, ok, err := repo.LoadDay(ctx, "15/3/2024")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, yesterday, 1)
}

func TestSaveDayRoundTripsDependsOn(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	in := task("dep", StatusScheduled)
	in.DependsOn = &TaskRef{ID: "base", Name: "base task"}
	require.NoError(t, repo.SaveDay(ctx, "15/3/2024", []Task{in}))

	out, ok, err := repo.LoadDay(ctx, "15/3/2024")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].DependsOn)
	assert.Equal(t, "base", out[0].DependsOn.ID)
	assert.Equal(t, "base task", out[0].DependsOn.Name)
}
