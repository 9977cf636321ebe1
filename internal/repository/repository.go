// Package repository is the sole authority for reading and writing job
// records against the external store. A Repository instance owns the
// loaded job collection, paging metadata, loading flag and last error
// for one view; there is no shared state between instances.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"job-board-go/internal/auth"
	"job-board-go/internal/metrics"
	"job-board-go/internal/models"
	"job-board-go/internal/pagination"
	"job-board-go/internal/query"
	"job-board-go/internal/stats"
	"job-board-go/internal/storage"
)

// Mode selects the write-then-reconcile strategy. It is fixed per
// repository instance so call sites cannot silently mix strategies.
type Mode int

const (
	// ModeAutoRefresh re-runs the current list after every write.
	ModeAutoRefresh Mode = iota
	// ModeLocal patches the loaded collection in place after writes.
	ModeLocal
)

// DefaultPageSize matches the listing views' initial page size.
const DefaultPageSize = 10

// Repository mediates between views and the job store.
type Repository struct {
	store storage.Store
	auth  auth.Service
	mode  Mode
	log   zerolog.Logger

	mu      sync.Mutex
	jobs    []models.Job
	filters query.FilterSpec
	paging  pagination.Page
	perPage int
	loading bool
	lastErr string

	// seq tags each issued list call. A response is applied only if its
	// tag is still the latest issued, so a slow superseded fetch can
	// never overwrite a newer result.
	seq uint64
}

func New(store storage.Store, authSvc auth.Service, mode Mode, log zerolog.Logger) *Repository {
	return &Repository{
		store:   store,
		auth:    authSvc,
		mode:    mode,
		log:     log,
		perPage: DefaultPageSize,
		paging:  pagination.Compute(0, 1, DefaultPageSize),
	}
}

// List fetches one page of jobs for the given filter spec and makes the
// result the repository's current state, unless a later List call was
// issued while this one was in flight. The returned page metadata
// carries the clamped current page; when the requested page lies beyond
// the last page the fetch is re-issued with the clamped page so the
// final rows are real, not empty.
func (r *Repository) List(ctx context.Context, f query.FilterSpec, page, pageSize int) ([]models.Job, pagination.Page, error) {
	desc, err := query.Build(f, page, pageSize)
	if err != nil {
		r.setError(err)
		return nil, pagination.Page{}, err
	}

	r.mu.Lock()
	r.seq++
	mySeq := r.seq
	r.filters = f
	r.perPage = pageSize
	r.loading = true
	r.lastErr = ""
	r.mu.Unlock()

	rows, total, err := r.store.List(ctx, desc)
	metrics.ObserveStoreOp("list", err)

	meta := pagination.Compute(total, page, pageSize)
	if err == nil && meta.Current != page {
		// Stale page request, e.g. filters shrank the result set.
		desc, _ = query.Build(f, meta.Current, pageSize)
		rows, total, err = r.store.List(ctx, desc)
		metrics.ObserveStoreOp("list", err)
		meta = pagination.Compute(total, meta.Current, pageSize)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if mySeq != r.seq {
		// A newer list superseded this one; keep its state intact.
		metrics.StaleListResultsTotal.Inc()
		r.log.Debug().Uint64("seq", mySeq).Uint64("latest", r.seq).Msg("discarding stale list result")
		if err != nil {
			return nil, pagination.Page{}, fmt.Errorf("failed to fetch jobs: %w", err)
		}
		return rows, meta, nil
	}

	r.loading = false
	if err != nil {
		wrapped := fmt.Errorf("failed to fetch jobs: %w", err)
		r.lastErr = wrapped.Error()
		return nil, pagination.Page{}, wrapped
	}

	r.jobs = rows
	r.paging = meta
	return rows, meta, nil
}

// Refresh re-issues List with the current filter spec and page.
func (r *Repository) Refresh(ctx context.Context) error {
	f, meta := r.snapshot()
	_, _, err := r.List(ctx, f, meta.Current, meta.PerPage)
	return err
}

// SetFilters replaces the filter spec and re-lists from page 1.
func (r *Repository) SetFilters(ctx context.Context, f query.FilterSpec) error {
	r.mu.Lock()
	perPage := r.perPage
	r.mu.Unlock()
	_, _, err := r.List(ctx, f, 1, perPage)
	return err
}

// Search sets the free-text search filter, keeping the other filters.
func (r *Repository) Search(ctx context.Context, text string) error {
	r.mu.Lock()
	f := r.filters
	perPage := r.perPage
	r.mu.Unlock()
	f.Search = text
	_, _, err := r.List(ctx, f, 1, perPage)
	return err
}

// ClearFilters drops every filter and re-lists from page 1.
func (r *Repository) ClearFilters(ctx context.Context) error {
	return r.SetFilters(ctx, query.FilterSpec{})
}

// SetPage moves to the given page, clamped against the known page
// count, and re-lists.
func (r *Repository) SetPage(ctx context.Context, page int) error {
	r.mu.Lock()
	f := r.filters
	perPage := r.perPage
	clamped := pagination.Compute(r.paging.TotalItems, page, perPage).Current
	r.mu.Unlock()
	_, _, err := r.List(ctx, f, clamped, perPage)
	return err
}

// SetPageSize changes the page size and re-lists from page 1.
func (r *Repository) SetPageSize(ctx context.Context, pageSize int) error {
	r.mu.Lock()
	f := r.filters
	r.mu.Unlock()
	_, _, err := r.List(ctx, f, 1, pageSize)
	return err
}

// Get returns the job with the given id, serving it from the loaded
// collection when present and falling back to a single-row fetch.
func (r *Repository) Get(ctx context.Context, id string) (*models.Job, error) {
	r.mu.Lock()
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			j := r.jobs[i]
			r.mu.Unlock()
			return &j, nil
		}
	}
	r.mu.Unlock()

	job, err := r.store.GetByID(ctx, id)
	metrics.ObserveStoreOp("get", err)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		wrapped := fmt.Errorf("failed to fetch job: %w", err)
		r.setError(wrapped)
		return nil, wrapped
	}
	return job, nil
}

// Create validates the draft, requires an acting user and inserts the
// job. The store assigns id, owner and timestamps. Depending on the
// repository mode the new row is reconciled either by re-listing page 1
// or by prepending to the loaded collection.
func (r *Repository) Create(ctx context.Context, draft models.Draft) (*models.Job, error) {
	if err := draft.Validate(); err != nil {
		r.setError(err)
		return nil, err
	}

	user, err := r.auth.CurrentUser(ctx)
	if err != nil {
		wrapped := fmt.Errorf("failed to resolve acting user: %w", err)
		r.setError(wrapped)
		return nil, wrapped
	}
	if user == nil {
		r.setError(models.ErrUnauthenticated)
		return nil, models.ErrUnauthenticated
	}

	r.begin()
	job, err := r.store.Insert(ctx, draft, user.ID)
	metrics.ObserveStoreOp("insert", err)
	if err != nil {
		return nil, r.fail("failed to create job", err)
	}
	r.finish()

	if r.mode == ModeAutoRefresh {
		f, meta := r.snapshot()
		if _, _, err := r.List(ctx, f, 1, meta.PerPage); err != nil {
			r.log.Warn().Err(err).Msg("job created but list refresh failed")
		}
		return job, nil
	}

	r.mu.Lock()
	r.jobs = append([]models.Job{*job}, r.jobs...)
	r.paging = pagination.Compute(r.paging.TotalItems+1, r.paging.Current, r.paging.PerPage)
	r.mu.Unlock()
	return job, nil
}

// Update applies a partial update to the job with the given id. The
// store refreshes updated_at; created_at and ownership never change.
func (r *Repository) Update(ctx context.Context, id string, patch models.Patch) (*models.Job, error) {
	if err := patch.Validate(); err != nil {
		r.setError(err)
		return nil, err
	}

	r.begin()
	job, err := r.store.Update(ctx, id, patch)
	metrics.ObserveStoreOp("update", err)
	if err != nil {
		return nil, r.fail("failed to update job", err)
	}
	r.finish()

	if r.mode == ModeAutoRefresh {
		if err := r.Refresh(ctx); err != nil {
			r.log.Warn().Err(err).Msg("job updated but list refresh failed")
		}
		return job, nil
	}

	r.mu.Lock()
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			r.jobs[i] = *job
			break
		}
	}
	r.mu.Unlock()
	return job, nil
}

// Delete permanently removes the job with the given id. Deleting a
// missing id fails with models.ErrNotFound.
func (r *Repository) Delete(ctx context.Context, id string) error {
	r.begin()
	err := r.store.Delete(ctx, id)
	metrics.ObserveStoreOp("delete", err)
	if err != nil {
		return r.fail("failed to delete job", err)
	}
	r.finish()

	if r.mode == ModeAutoRefresh {
		if err := r.Refresh(ctx); err != nil {
			r.log.Warn().Err(err).Msg("job deleted but list refresh failed")
		}
		return nil
	}

	r.mu.Lock()
	for i := range r.jobs {
		if r.jobs[i].ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			break
		}
	}
	if r.paging.TotalItems > 0 {
		r.paging = pagination.Compute(r.paging.TotalItems-1, r.paging.Current, r.paging.PerPage)
	}
	r.mu.Unlock()
	return nil
}

// Jobs returns a copy of the loaded collection.
func (r *Repository) Jobs() []models.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Job, len(r.jobs))
	copy(out, r.jobs)
	return out
}

// Pagination returns the current paging metadata.
func (r *Repository) Pagination() pagination.Page {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paging
}

// Filters returns the currently applied filter spec.
func (r *Repository) Filters() query.FilterSpec {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filters
}

// Loading reports whether a remote call is in flight.
func (r *Repository) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// LastError returns the human-readable message of the last failed
// operation, or "" after a success.
func (r *Repository) LastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// Stats aggregates counters over the loaded collection. The numbers
// are scoped to what is materialized locally, not the remote dataset.
func (r *Repository) Stats() stats.Summary {
	return stats.Compute(r.Jobs(), time.Now())
}

func (r *Repository) snapshot() (query.FilterSpec, pagination.Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filters, r.paging
}

func (r *Repository) begin() {
	r.mu.Lock()
	r.loading = true
	r.lastErr = ""
	r.mu.Unlock()
}

// fail records a wrapped error as the current error state and clears
// the loading flag. The loaded collection is left untouched so a failed
// write never partially mutates it.
func (r *Repository) fail(msg string, err error) error {
	wrapped := fmt.Errorf("%s: %w", msg, err)
	r.mu.Lock()
	r.loading = false
	r.lastErr = wrapped.Error()
	r.mu.Unlock()
	return wrapped
}

func (r *Repository) finish() {
	r.mu.Lock()
	r.loading = false
	r.mu.Unlock()
}

func (r *Repository) setError(err error) {
	r.mu.Lock()
	r.lastErr = err.Error()
	r.mu.Unlock()
}
