package storage

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"job-board-go/internal/models"
	"job-board-go/internal/query"
)

// MemoryStore is an in-memory Store with the same query semantics as
// the Supabase backend. It backs tests and demo mode, where no
// Supabase project is configured.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs []models.Job
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// SetClock overrides the store's clock. Test hook.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Seed loads jobs directly, assigning ids and timestamps where missing.
func (m *MemoryStore) Seed(jobs []models.Job) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, j := range jobs {
		if j.ID == "" {
			j.ID = uuid.New().String()
		}
		if j.CreatedAt.IsZero() {
			j.CreatedAt = m.now()
		}
		if j.UpdatedAt.IsZero() {
			j.UpdatedAt = j.CreatedAt
		}
		m.jobs = append(m.jobs, j)
	}
}

func (m *MemoryStore) List(ctx context.Context, q query.Descriptor) ([]models.Job, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	m.mu.RLock()
	matched := make([]models.Job, 0, len(m.jobs))
	for _, j := range m.jobs {
		if matches(j, q) {
			matched = append(matched, j)
		}
	}
	m.mu.RUnlock()

	// created_at descending, id descending as tie-breaker, mirroring
	// the order clause sent to the real store.
	sort.SliceStable(matched, func(a, b int) bool {
		if !matched[a].CreatedAt.Equal(matched[b].CreatedAt) {
			return matched[a].CreatedAt.After(matched[b].CreatedAt)
		}
		return matched[a].ID > matched[b].ID
	})

	total := len(matched)
	if q.Offset >= total {
		return []models.Job{}, total, nil
	}
	end := q.Offset + q.Limit
	if end > total {
		end = total
	}
	page := make([]models.Job, end-q.Offset)
	copy(page, matched[q.Offset:end])
	return page, total, nil
}

func matches(j models.Job, q query.Descriptor) bool {
	if q.Search != "" && !searchMatch(j, q.Search) {
		return false
	}
	if len(q.JobTypes) > 0 && !overlaps(j.JobType, q.JobTypes) {
		return false
	}
	if q.Location != "" && !containsFold(j.Location, q.Location) {
		return false
	}
	if q.Company != "" && !containsFold(j.CompanyName, q.Company) {
		return false
	}
	return true
}

func searchMatch(j models.Job, text string) bool {
	return containsFold(j.Title, text) ||
		containsFold(j.CompanyName, text) ||
		containsFold(j.Description, text) ||
		containsFold(j.Location, text)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func overlaps(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func (m *MemoryStore) GetByID(ctx context.Context, id string) (*models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			j := m.jobs[i]
			return &j, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MemoryStore) Insert(ctx context.Context, draft models.Draft, userID string) (*models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	now := m.now()
	job := models.Job{
		ID:          uuid.New().String(),
		Title:       draft.Title,
		CompanyName: draft.CompanyName,
		Description: draft.Description,
		Location:    draft.Location,
		JobType:     append([]string(nil), draft.JobType...),
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.jobs = append(m.jobs, job)
	m.mu.Unlock()
	return &job, nil
}

func (m *MemoryStore) Update(ctx context.Context, id string, patch models.Patch) (*models.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.jobs {
		if m.jobs[i].ID != id {
			continue
		}
		patch.Apply(&m.jobs[i])
		m.jobs[i].UpdatedAt = m.now()
		j := m.jobs[i]
		return &j, nil
	}
	return nil, models.ErrNotFound
}

func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.jobs {
		if m.jobs[i].ID == id {
			m.jobs = append(m.jobs[:i], m.jobs[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
