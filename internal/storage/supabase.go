package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	supabase "github.com/nedpals/supabase-go"

	"job-board-go/internal/models"
	"job-board-go/internal/query"
	"job-board-go/pkg/httpclient"
)

// SupabaseStore persists jobs in a Supabase project using the
// nedpals/supabase-go SDK. Listing goes through the PostgREST endpoint
// directly because the SDK does not surface the Content-Range total
// that "Prefer: count=exact" returns, and the repository needs the
// exact row count alongside each page.
type SupabaseStore struct {
	client  *supabase.Client
	rest    *httpclient.HttpClient
	baseURL string
	apiKey  string
	table   string
}

// NewSupabaseStore creates a SupabaseStore. It reads SUPABASE_URL and
// SUPABASE_KEY from environment variables if empty values are provided.
func NewSupabaseStore(supabaseURL, supabaseKey, table string, rest *httpclient.HttpClient) (*SupabaseStore, error) {
	if supabaseURL == "" {
		supabaseURL = os.Getenv("SUPABASE_URL")
	}
	if supabaseKey == "" {
		supabaseKey = os.Getenv("SUPABASE_KEY")
	}
	if supabaseURL == "" || supabaseKey == "" {
		return nil, fmt.Errorf("supabase URL and key must be provided via args or SUPABASE_URL / SUPABASE_KEY env vars")
	}
	if table == "" {
		table = "job"
	}
	if rest == nil {
		rest = httpclient.NewHttpClient(30 * time.Second)
	}

	client := supabase.CreateClient(supabaseURL, supabaseKey)
	return &SupabaseStore{
		client:  client,
		rest:    rest,
		baseURL: strings.TrimRight(supabaseURL, "/"),
		apiKey:  supabaseKey,
		table:   table,
	}, nil
}

// Client exposes the underlying SDK client, used to build the auth
// service against the same project.
func (s *SupabaseStore) Client() *supabase.Client {
	return s.client
}

func (s *SupabaseStore) headers() map[string]string {
	return map[string]string{
		"apikey":        s.apiKey,
		"Authorization": "Bearer " + s.apiKey,
		"Accept":        "application/json",
	}
}

// List fetches one page of rows plus the exact total count for the
// descriptor's predicates.
func (s *SupabaseStore) List(ctx context.Context, q query.Descriptor) ([]models.Job, int, error) {
	url := fmt.Sprintf("%s/rest/v1/%s?%s", s.baseURL, s.table, q.Values().Encode())

	headers := s.headers()
	headers["Prefer"] = "count=exact"

	resp, err := s.rest.Do(ctx, http.MethodGet, url, headers, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query jobs: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read job list response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, 0, fmt.Errorf("job query returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var jobs []models.Job
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to parse job list response: %w", err)
	}

	total, err := parseContentRange(resp.Header.Get("Content-Range"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read total count: %w", err)
	}
	return jobs, total, nil
}

// parseContentRange extracts the total from a PostgREST Content-Range
// header, e.g. "0-9/23" or "*/0".
func parseContentRange(header string) (int, error) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 {
		return 0, fmt.Errorf("malformed Content-Range %q", header)
	}
	total := header[idx+1:]
	if total == "*" {
		return 0, fmt.Errorf("store did not return an exact count in %q", header)
	}
	return strconv.Atoi(total)
}

func (s *SupabaseStore) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var rows []models.Job
	if err := s.client.DB.From(s.table).Select("*").Eq("id", id).Execute(&rows); err != nil {
		return nil, fmt.Errorf("failed to fetch job %s: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, models.ErrNotFound
	}
	return &rows[0], nil
}

func (s *SupabaseStore) Insert(ctx context.Context, draft models.Draft, userID string) (*models.Job, error) {
	row := struct {
		models.Draft
		UserID string `json:"user_id"`
	}{Draft: draft, UserID: userID}

	var inserted []models.Job
	if err := s.client.DB.From(s.table).Insert(row).Execute(&inserted); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	if len(inserted) == 0 {
		return nil, fmt.Errorf("store returned no row for created job")
	}
	return &inserted[0], nil
}

func (s *SupabaseStore) Update(ctx context.Context, id string, patch models.Patch) (*models.Job, error) {
	fields := map[string]interface{}{
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.CompanyName != nil {
		fields["company_name"] = *patch.CompanyName
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Location != nil {
		fields["location"] = *patch.Location
	}
	if patch.JobType != nil {
		fields["job_type"] = patch.JobType
	}

	var updated []models.Job
	if err := s.client.DB.From(s.table).Update(fields).Eq("id", id).Execute(&updated); err != nil {
		return nil, fmt.Errorf("failed to update job %s: %w", id, err)
	}
	if len(updated) == 0 {
		return nil, models.ErrNotFound
	}
	return &updated[0], nil
}

func (s *SupabaseStore) Delete(ctx context.Context, id string) error {
	// PostgREST delete succeeds on zero matched rows, so check first to
	// surface NotFound for missing ids.
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	var deleted []models.Job
	if err := s.client.DB.From(s.table).Delete().Eq("id", id).Execute(&deleted); err != nil {
		return fmt.Errorf("failed to delete job %s: %w", id, err)
	}
	return nil
}

// Ping verifies the PostgREST endpoint is reachable.
func (s *SupabaseStore) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/rest/v1/%s?limit=1", s.baseURL, s.table)
	resp, err := s.rest.Do(ctx, http.MethodHead, url, s.headers(), nil)
	if err != nil {
		return fmt.Errorf("store unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("store returned status %d", resp.StatusCode)
	}
	return nil
}
