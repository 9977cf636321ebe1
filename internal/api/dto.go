package api

import (
	"job-board-go/internal/models"
	"job-board-go/internal/pagination"
	"job-board-go/internal/stats"
)

// CreateJobRequest is the DTO for creating a job listing.
type CreateJobRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	CompanyName string   `json:"company_name" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,min=1"`
	Location    string   `json:"location" validate:"required,min=1,max=200"`
	JobType     []string `json:"job_type" validate:"required,min=1,dive,jobtype"`
}

// ToDraft converts the request into a domain draft.
func (r *CreateJobRequest) ToDraft() models.Draft {
	return models.Draft{
		Title:       r.Title,
		CompanyName: r.CompanyName,
		Description: r.Description,
		Location:    r.Location,
		JobType:     r.JobType,
	}
}

// UpdateJobRequest is the DTO for a partial job update. Absent fields
// are left unchanged.
type UpdateJobRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	CompanyName *string  `json:"company_name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,min=1"`
	Location    *string  `json:"location" validate:"omitempty,min=1,max=200"`
	JobType     []string `json:"job_type" validate:"omitempty,min=1,dive,jobtype"`
}

// ToPatch converts the request into a domain patch.
func (r *UpdateJobRequest) ToPatch() models.Patch {
	return models.Patch{
		Title:       r.Title,
		CompanyName: r.CompanyName,
		Description: r.Description,
		Location:    r.Location,
		JobType:     r.JobType,
	}
}

// JobListResponse is the public listing payload: one page of jobs plus
// the paging metadata the client needs to render a pager.
type JobListResponse struct {
	Jobs       []models.Job    `json:"jobs"`
	Pagination pagination.Page `json:"pagination"`
}

// StatsResponse wraps the dashboard counters.
type StatsResponse struct {
	Stats stats.Summary `json:"stats"`
}
