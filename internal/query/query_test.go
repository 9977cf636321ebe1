package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmptyFilterHasNoPredicates(t *testing.T) {
	d, err := Build(FilterSpec{}, 1, 10)
	require.NoError(t, err)

	assert.False(t, d.HasPredicates())
	assert.Equal(t, 0, d.Offset)
	assert.Equal(t, 10, d.Limit)

	v := d.Values()
	assert.Equal(t, "created_at.desc,id.desc", v.Get("order"))
	assert.Equal(t, "0", v.Get("offset"))
	assert.Equal(t, "10", v.Get("limit"))
	assert.Empty(t, v.Get("or"))
	assert.Empty(t, v.Get("job_type"))
	assert.Empty(t, v.Get("location"))
	assert.Empty(t, v.Get("company_name"))
}

func TestBuildRejectsBadPaging(t *testing.T) {
	_, err := Build(FilterSpec{}, 0, 10)
	require.ErrorIs(t, err, ErrInvalidFilter)

	_, err = Build(FilterSpec{}, -3, 10)
	require.ErrorIs(t, err, ErrInvalidFilter)

	_, err = Build(FilterSpec{}, 1, 0)
	require.ErrorIs(t, err, ErrInvalidFilter)
}

func TestBuildComputesOffset(t *testing.T) {
	d, err := Build(FilterSpec{}, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, d.Offset)
	assert.Equal(t, 10, d.Limit)
}

func TestBuildNormalizesJobTypes(t *testing.T) {
	d, err := Build(FilterSpec{JobTypes: []string{"Remote", " Contract ", "Remote", ""}}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Remote", "Contract"}, d.JobTypes)
}

func TestBuildTrimsTextFilters(t *testing.T) {
	d, err := Build(FilterSpec{Search: "  go ", Location: " London ", Company: " Acme "}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "go", d.Search)
	assert.Equal(t, "London", d.Location)
	assert.Equal(t, "Acme", d.Company)
}

func TestValuesRendersSearchOrGroup(t *testing.T) {
	d, err := Build(FilterSpec{Search: "go"}, 1, 10)
	require.NoError(t, err)

	v := d.Values()
	want := "(title.ilike.*go*,company_name.ilike.*go*,description.ilike.*go*,location.ilike.*go*)"
	assert.Equal(t, want, v.Get("or"))
}

func TestValuesRendersOverlapAndSubstring(t *testing.T) {
	d, err := Build(FilterSpec{
		JobTypes: []string{"Remote", "Contract"},
		Location: "London",
		Company:  "Acme",
	}, 2, 5)
	require.NoError(t, err)

	v := d.Values()
	assert.Equal(t, "ov.{Remote,Contract}", v.Get("job_type"))
	assert.Equal(t, "ilike.*London*", v.Get("location"))
	assert.Equal(t, "ilike.*Acme*", v.Get("company_name"))
	assert.Equal(t, "5", v.Get("offset"))
	assert.Equal(t, "5", v.Get("limit"))
}

func TestValuesStripReservedCharacters(t *testing.T) {
	d, err := Build(FilterSpec{Search: `go,(lang){"x"}`}, 1, 10)
	require.NoError(t, err)

	v := d.Values()
	assert.NotContains(t, v.Get("or"), "golang,")
	assert.Contains(t, v.Get("or"), "title.ilike.*golangx*")
}

func TestBuildIsDeterministic(t *testing.T) {
	f := FilterSpec{Search: "go", JobTypes: []string{"Remote"}, Location: "x"}
	a, err := Build(f, 2, 20)
	require.NoError(t, err)
	b, err := Build(f, 2, 20)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, a.Values().Encode(), b.Values().Encode())
}
