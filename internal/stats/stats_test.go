package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"job-board-go/internal/models"
)

func TestComputeCountsRemoteJobs(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	jobs := []models.Job{
		{JobType: []string{models.JobTypeFullTime, models.JobTypeRemote}, CreatedAt: now.Add(-24 * time.Hour)},
		{JobType: []string{models.JobTypeContract}, CreatedAt: now.Add(-24 * time.Hour)},
		{JobType: []string{models.JobTypeRemote}, CreatedAt: now.Add(-24 * time.Hour)},
		{JobType: []string{models.JobTypePartTime}, CreatedAt: now.Add(-24 * time.Hour)},
		{JobType: []string{models.JobTypeHybrid}, CreatedAt: now.Add(-24 * time.Hour)},
	}

	s := Compute(jobs, now)
	assert.Equal(t, 5, s.TotalJobs)
	assert.Equal(t, 2, s.RemoteJobs)
}

func TestComputeTimeWindows(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	jobs := []models.Job{
		{CreatedAt: now.Add(-1 * 24 * time.Hour)},  // active + recent
		{CreatedAt: now.Add(-6 * 24 * time.Hour)},  // active + recent
		{CreatedAt: now.Add(-8 * 24 * time.Hour)},  // active only
		{CreatedAt: now.Add(-29 * 24 * time.Hour)}, // active only
		{CreatedAt: now.Add(-31 * 24 * time.Hour)}, // neither
	}

	s := Compute(jobs, now)
	assert.Equal(t, 5, s.TotalJobs)
	assert.Equal(t, 4, s.ActiveJobs)
	assert.Equal(t, 2, s.RecentJobs)
	assert.Equal(t, 0, s.RemoteJobs)
}

func TestComputeEmptyCollection(t *testing.T) {
	s := Compute(nil, time.Now())
	assert.Equal(t, Summary{}, s)
}
