package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors shared across the repository and its callers.
var (
	ErrNotFound        = errors.New("job not found")
	ErrUnauthenticated = errors.New("user not authenticated")
	// ErrInvalidInput wraps every Draft/Patch validation failure so
	// callers can tell rejected input apart from store failures.
	ErrInvalidInput = errors.New("invalid input")
)

// Job is a single job listing as stored in the "job" table.
type Job struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	CompanyName string    `json:"company_name"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	JobType     []string  `json:"job_type"`
	UserID      string    `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	UpdatedAt   time.Time `json:"updated_at,omitempty"`
}

// JobType vocabulary. job_type is a text array and may carry several tags.
const (
	JobTypeFullTime   = "Full-time"
	JobTypePartTime   = "Part-time"
	JobTypeContract   = "Contract"
	JobTypeInternship = "Internship"
	JobTypeRemote     = "Remote"
	JobTypeHybrid     = "Hybrid"
	JobTypeOnSite     = "On-site"
)

// JobTypes lists every valid job_type tag in display order.
var JobTypes = []string{
	JobTypeFullTime,
	JobTypePartTime,
	JobTypeContract,
	JobTypeInternship,
	JobTypeRemote,
	JobTypeHybrid,
	JobTypeOnSite,
}

// IsValidJobType reports whether tag belongs to the job_type vocabulary.
func IsValidJobType(tag string) bool {
	for _, t := range JobTypes {
		if t == tag {
			return true
		}
	}
	return false
}

// Draft is the user-supplied part of a job. The store assigns id,
// owner and timestamps on insert.
type Draft struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	JobType     []string `json:"job_type"`
}

// Validate checks the draft before any remote call is made.
func (d *Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: job title cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(d.CompanyName) == "" {
		return fmt.Errorf("%w: company name cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(d.Description) == "" {
		return fmt.Errorf("%w: job description cannot be empty", ErrInvalidInput)
	}
	if strings.TrimSpace(d.Location) == "" {
		return fmt.Errorf("%w: job location cannot be empty", ErrInvalidInput)
	}
	if len(d.JobType) == 0 {
		return fmt.Errorf("%w: at least one job type must be selected", ErrInvalidInput)
	}
	for _, tag := range d.JobType {
		if !IsValidJobType(tag) {
			return fmt.Errorf("%w: invalid job type: %s", ErrInvalidInput, tag)
		}
	}
	return nil
}

// Patch holds a partial update. Nil fields are left untouched;
// id, user_id and created_at are never patchable.
type Patch struct {
	Title       *string  `json:"title,omitempty"`
	CompanyName *string  `json:"company_name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Location    *string  `json:"location,omitempty"`
	JobType     []string `json:"job_type,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *Patch) IsEmpty() bool {
	return p.Title == nil && p.CompanyName == nil && p.Description == nil &&
		p.Location == nil && p.JobType == nil
}

// Validate rejects patches that would violate the job invariants.
func (p *Patch) Validate() error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: update contains no fields", ErrInvalidInput)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: job title cannot be empty", ErrInvalidInput)
	}
	if p.CompanyName != nil && strings.TrimSpace(*p.CompanyName) == "" {
		return fmt.Errorf("%w: company name cannot be empty", ErrInvalidInput)
	}
	if p.Description != nil && strings.TrimSpace(*p.Description) == "" {
		return fmt.Errorf("%w: job description cannot be empty", ErrInvalidInput)
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		return fmt.Errorf("%w: job location cannot be empty", ErrInvalidInput)
	}
	if p.JobType != nil {
		if len(p.JobType) == 0 {
			return fmt.Errorf("%w: at least one job type must be selected", ErrInvalidInput)
		}
		for _, tag := range p.JobType {
			if !IsValidJobType(tag) {
				return fmt.Errorf("%w: invalid job type: %s", ErrInvalidInput, tag)
			}
		}
	}
	return nil
}

// Apply copies the patched fields onto job.
func (p *Patch) Apply(job *Job) {
	if p.Title != nil {
		job.Title = *p.Title
	}
	if p.CompanyName != nil {
		job.CompanyName = *p.CompanyName
	}
	if p.Description != nil {
		job.Description = *p.Description
	}
	if p.Location != nil {
		job.Location = *p.Location
	}
	if p.JobType != nil {
		job.JobType = append([]string(nil), p.JobType...)
	}
}

// HasJobType reports whether the job carries the given tag.
func (j *Job) HasJobType(tag string) bool {
	for _, t := range j.JobType {
		if t == tag {
			return true
		}
	}
	return false
}
