package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() Draft {
	return Draft{
		Title:       "Backend Engineer",
		CompanyName: "Acme",
		Description: "Build things.",
		Location:    "Remote",
		JobType:     []string{JobTypeFullTime, JobTypeRemote},
	}
}

func TestDraftValidate(t *testing.T) {
	d := validDraft()
	require.NoError(t, d.Validate())
}

func TestDraftValidateRejectsEmptyFields(t *testing.T) {
	d := validDraft()
	d.Title = "  "
	assert.EqualError(t, d.Validate(), "invalid input: job title cannot be empty")
	assert.ErrorIs(t, d.Validate(), ErrInvalidInput)

	d = validDraft()
	d.CompanyName = ""
	assert.EqualError(t, d.Validate(), "invalid input: company name cannot be empty")

	d = validDraft()
	d.Description = ""
	assert.EqualError(t, d.Validate(), "invalid input: job description cannot be empty")

	d = validDraft()
	d.Location = ""
	assert.EqualError(t, d.Validate(), "invalid input: job location cannot be empty")
}

func TestDraftValidateRequiresJobType(t *testing.T) {
	d := validDraft()
	d.JobType = []string{}
	assert.EqualError(t, d.Validate(), "invalid input: at least one job type must be selected")

	d.JobType = nil
	assert.ErrorIs(t, d.Validate(), ErrInvalidInput)
}

func TestDraftValidateRejectsUnknownJobType(t *testing.T) {
	d := validDraft()
	d.JobType = []string{"Volunteer"}
	assert.EqualError(t, d.Validate(), "invalid input: invalid job type: Volunteer")
}

func TestIsValidJobType(t *testing.T) {
	for _, tag := range JobTypes {
		assert.True(t, IsValidJobType(tag), tag)
	}
	assert.False(t, IsValidJobType("full-time"))
	assert.False(t, IsValidJobType(""))
}

func TestPatchValidate(t *testing.T) {
	title := "New Title"
	p := Patch{Title: &title}
	require.NoError(t, p.Validate())

	empty := Patch{}
	assert.True(t, empty.IsEmpty())
	assert.EqualError(t, empty.Validate(), "invalid input: update contains no fields")
	assert.ErrorIs(t, empty.Validate(), ErrInvalidInput)

	blank := ""
	p = Patch{Title: &blank}
	assert.EqualError(t, p.Validate(), "invalid input: job title cannot be empty")

	p = Patch{JobType: []string{}}
	assert.EqualError(t, p.Validate(), "invalid input: at least one job type must be selected")

	p = Patch{JobType: []string{"Freelance"}}
	assert.EqualError(t, p.Validate(), "invalid input: invalid job type: Freelance")
}

func TestPatchApply(t *testing.T) {
	job := Job{
		ID:          "abc",
		Title:       "Old",
		CompanyName: "Acme",
		Description: "desc",
		Location:    "London",
		JobType:     []string{JobTypeFullTime},
		UserID:      "u1",
	}

	title := "New"
	location := "Remote"
	p := Patch{
		Title:    &title,
		Location: &location,
		JobType:  []string{JobTypeContract, JobTypeRemote},
	}
	p.Apply(&job)

	assert.Equal(t, "New", job.Title)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, []string{JobTypeContract, JobTypeRemote}, job.JobType)
	// Untouched fields keep their values.
	assert.Equal(t, "Acme", job.CompanyName)
	assert.Equal(t, "desc", job.Description)
	assert.Equal(t, "abc", job.ID)
	assert.Equal(t, "u1", job.UserID)
}

func TestHasJobType(t *testing.T) {
	j := Job{JobType: []string{JobTypeFullTime, JobTypeRemote}}
	assert.True(t, j.HasJobType(JobTypeRemote))
	assert.False(t, j.HasJobType(JobTypeContract))
}
