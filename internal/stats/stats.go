// Package stats derives display counters from a loaded job collection.
//
// The counters only see the rows currently materialized in memory
// (generally one page's worth), not the full remote dataset. They are
// approximations scoped to the loaded collection; this is a known
// limitation of the design, not a bug.
package stats

import (
	"time"

	"job-board-go/internal/models"
)

// Summary holds the dashboard counters for a job collection.
type Summary struct {
	TotalJobs  int `json:"total_jobs"`
	ActiveJobs int `json:"active_jobs"`
	RemoteJobs int `json:"remote_jobs"`
	RecentJobs int `json:"recent_jobs"`
}

// Compute counts jobs in the collection: active means created within
// the last 30 days of now, recent within the last 7 days, remote means
// job_type contains the "Remote" tag.
func Compute(jobs []models.Job, now time.Time) Summary {
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour)
	sevenDaysAgo := now.Add(-7 * 24 * time.Hour)

	s := Summary{TotalJobs: len(jobs)}
	for i := range jobs {
		if jobs[i].CreatedAt.After(thirtyDaysAgo) {
			s.ActiveJobs++
		}
		if jobs[i].CreatedAt.After(sevenDaysAgo) {
			s.RecentJobs++
		}
		if jobs[i].HasJobType(models.JobTypeRemote) {
			s.RemoteJobs++
		}
	}
	return s
}
