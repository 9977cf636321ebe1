package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"job-board-go/internal/models"
	"job-board-go/internal/query"
)

func seedStore(t *testing.T, n int) *MemoryStore {
	t.Helper()
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	store := NewMemoryStore()
	jobs := make([]models.Job, 0, n)
	for i := 0; i < n; i++ {
		jobs = append(jobs, models.Job{
			Title:       fmt.Sprintf("Job %02d", i),
			CompanyName: "Acme",
			Description: "desc",
			Location:    "Remote",
			JobType:     []string{models.JobTypeFullTime},
			CreatedAt:   base.Add(time.Duration(i) * time.Hour),
		})
	}
	store.Seed(jobs)
	return store
}

func mustDescriptor(t *testing.T, f query.FilterSpec, page, size int) query.Descriptor {
	t.Helper()
	d, err := query.Build(f, page, size)
	require.NoError(t, err)
	return d
}

func TestMemoryStoreListPaginates(t *testing.T) {
	store := seedStore(t, 23)
	ctx := context.Background()

	rows, total, err := store.List(ctx, mustDescriptor(t, query.FilterSpec{}, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 23, total)
	assert.Len(t, rows, 10)

	// Newest first.
	assert.Equal(t, "Job 22", rows[0].Title)
	assert.Equal(t, "Job 13", rows[9].Title)

	rows, total, err = store.List(ctx, mustDescriptor(t, query.FilterSpec{}, 3, 10))
	require.NoError(t, err)
	assert.Equal(t, 23, total)
	assert.Len(t, rows, 3)
	assert.Equal(t, "Job 00", rows[2].Title)

	// Window past the data yields no rows but keeps the exact count.
	rows, total, err = store.List(ctx, mustDescriptor(t, query.FilterSpec{}, 5, 10))
	require.NoError(t, err)
	assert.Equal(t, 23, total)
	assert.Empty(t, rows)
}

func TestMemoryStoreListTieBreaksOnID(t *testing.T) {
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.Seed([]models.Job{
		{ID: "aaa", Title: "A", CompanyName: "x", Description: "d", Location: "l", JobType: []string{models.JobTypeFullTime}, CreatedAt: created},
		{ID: "ccc", Title: "C", CompanyName: "x", Description: "d", Location: "l", JobType: []string{models.JobTypeFullTime}, CreatedAt: created},
		{ID: "bbb", Title: "B", CompanyName: "x", Description: "d", Location: "l", JobType: []string{models.JobTypeFullTime}, CreatedAt: created},
	})

	rows, _, err := store.List(context.Background(), mustDescriptor(t, query.FilterSpec{}, 1, 10))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ccc", "bbb", "aaa"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
}

func TestMemoryStoreListFilters(t *testing.T) {
	store := NewMemoryStore()
	store.Seed([]models.Job{
		{Title: "Go Developer", CompanyName: "Acme", Description: "backend services", Location: "London", JobType: []string{models.JobTypeFullTime}},
		{Title: "Designer", CompanyName: "Initech", Description: "a golang shop", Location: "Berlin", JobType: []string{models.JobTypeContract, models.JobTypeRemote}},
		{Title: "Accountant", CompanyName: "Globex", Description: "numbers", Location: "New York", JobType: []string{models.JobTypePartTime}},
	})
	ctx := context.Background()

	// Free text search is case-insensitive and matches any searchable column.
	rows, total, err := store.List(ctx, mustDescriptor(t, query.FilterSpec{Search: "GOLANG"}, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Designer", rows[0].Title)

	// Job type overlap.
	rows, total, err = store.List(ctx, mustDescriptor(t, query.FilterSpec{JobTypes: []string{models.JobTypeRemote, models.JobTypePartTime}}, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// Location substring.
	_, total, err = store.List(ctx, mustDescriptor(t, query.FilterSpec{Location: "lond"}, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// Company substring ANDs with the rest.
	_, total, err = store.List(ctx, mustDescriptor(t, query.FilterSpec{Company: "acme", Location: "berlin"}, 1, 10))
	require.NoError(t, err)
	assert.Equal(t, 0, total)

	_ = rows
}

func TestMemoryStoreInsertAssignsServerFields(t *testing.T) {
	store := NewMemoryStore()
	draft := models.Draft{
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Description: "Go services",
		Location:    "Remote",
		JobType:     []string{models.JobTypeFullTime},
	}

	job, err := store.Insert(context.Background(), draft, "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "user-1", job.UserID)
	assert.False(t, job.CreatedAt.IsZero())
	assert.Equal(t, job.CreatedAt, job.UpdatedAt)

	got, err := store.GetByID(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, got.ID)
}

func TestMemoryStoreUpdateRefreshesUpdatedAt(t *testing.T) {
	base := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	store := NewMemoryStore()
	store.SetClock(func() time.Time { return base })

	job, err := store.Insert(context.Background(), models.Draft{
		Title: "t", CompanyName: "c", Description: "d", Location: "London",
		JobType: []string{models.JobTypeFullTime},
	}, "u1")
	require.NoError(t, err)

	store.SetClock(func() time.Time { return base.Add(time.Hour) })

	location := "Remote"
	updated, err := store.Update(context.Background(), job.ID, models.Patch{Location: &location})
	require.NoError(t, err)

	assert.Equal(t, "Remote", updated.Location)
	assert.True(t, updated.UpdatedAt.After(job.UpdatedAt), "updated_at must advance")
	assert.Equal(t, job.CreatedAt, updated.CreatedAt, "created_at is immutable")
	assert.Equal(t, "u1", updated.UserID)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = store.Update(ctx, "missing", models.Patch{JobType: []string{models.JobTypeRemote}})
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.ErrorIs(t, store.Delete(ctx, "missing"), models.ErrNotFound)
}

func TestMemoryStoreDelete(t *testing.T) {
	store := seedStore(t, 3)
	ctx := context.Background()

	rows, _, err := store.List(ctx, mustDescriptor(t, query.FilterSpec{}, 1, 10))
	require.NoError(t, err)
	id := rows[0].ID

	require.NoError(t, store.Delete(ctx, id))

	_, err = store.GetByID(ctx, id)
	assert.ErrorIs(t, err, models.ErrNotFound)

	// Deleting the same id again is not idempotent.
	assert.ErrorIs(t, store.Delete(ctx, id), models.ErrNotFound)
}

func TestMemoryStoreSetClockConcurrentWithWrites(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	draft := models.Draft{
		Title:       "t",
		CompanyName: "c",
		Description: "d",
		Location:    "l",
		JobType:     []string{models.JobTypeFullTime},
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.SetClock(time.Now)
		}()
		go func() {
			defer wg.Done()
			_, err := store.Insert(ctx, draft, "u1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	_, total, err := store.List(ctx, mustDescriptor(t, query.FilterSpec{}, 1, 50))
	require.NoError(t, err)
	assert.Equal(t, 20, total)
}
