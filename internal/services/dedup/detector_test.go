package dedup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/applytrack/internal/models"
)

func record(id, name, company string) *models.JobRecord {
	return &models.JobRecord{ID: id, JobName: name, CompanyName: company, Status: models.StatusApplied}
}

func ids(records []*models.JobRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Backend Engineer", "backend engineer"},
		{"  backend  engineer ", "backend engineer"},
		{"BACKEND\tENGINEER\n", "backend engineer"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"developer", "developer", 0},
		{"developer", "developr", 1},
		{"café", "cafe", 1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a))
		})
	}
}

func TestIsSimilar(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"exact", "acme", "acme", true},
		{"substring", "acme", "acme corp", true},
		{"fuzzy long strings", "flutter developer", "fluter developr", true},
		{"fuzzy too far", "flutter developer", "backend engineer", false},
		{"short strings not fuzzy", "abcde", "abcdf", false},
		{"one short string not fuzzy", "abcdef", "abcxy", false},
		{"six chars fuzzy", "abcdef", "abcdxy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSimilar(tt.a, tt.b))
		})
	}
}

func TestIsSimilarSymmetric(t *testing.T) {
	samples := []string{
		"", "acme", "acme corp", "flutter developer", "fluter developr",
		"backend engineer", "backend engineers", "abcde", "abcdef", "abcdxy", "go",
	}
	for _, a := range samples {
		for _, b := range samples {
			assert.Equal(t, IsSimilar(a, b), IsSimilar(b, a), "a=%q b=%q", a, b)
		}
	}
}

func TestFindDuplicatesEmptyName(t *testing.T) {
	records := []*models.JobRecord{record("1", "Backend Engineer", "")}

	assert.Empty(t, FindDuplicates(records, "", "", ""))
	assert.Empty(t, FindDuplicates(records, "   ", "Acme", ""))
}

func TestFindDuplicatesNormalizedExactMatch(t *testing.T) {
	records := []*models.JobRecord{
		record("1", "Backend Engineer", ""),
		record("2", "Frontend Engineer", ""),
	}

	got := FindDuplicates(records, "backend  engineer", "", "")

	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFindDuplicatesStrictWithoutCompany(t *testing.T) {
	records := []*models.JobRecord{
		record("1", "Backend Engineer", "Acme"),
		record("2", "Backend Engineers", ""),
	}

	// no company supplied: substring and fuzzy matches do not count
	assert.Empty(t, FindDuplicates(records, "Backend Enginee", "", ""))

	// candidate without a company only matches exactly, even when a company is supplied
	assert.Equal(t, []string{"1"}, ids(FindDuplicates(records, "Backend Engineer", "Acme", "")))
	assert.Equal(t, []string{"2"}, ids(FindDuplicates(records, "backend engineers", "Globex", "")))
}

func TestFindDuplicatesWithCompany(t *testing.T) {
	records := []*models.JobRecord{
		record("1", "Flutter Developer", "Acme Corp"),
		record("2", "Flutter Developer", "Globex"),
		record("3", "Senior Flutter Developer", "acme"),
		record("4", "Data Scientist", "Acme Corp"),
		record("5", "Flutter Develper", "Acme Corp"),
	}

	got := FindDuplicates(records, "flutter  developer", "ACME corp", "")

	assert.Equal(t, []string{"1", "3", "5"}, ids(got))
}

func TestFindDuplicatesExcludesSelf(t *testing.T) {
	records := []*models.JobRecord{
		record("1", "Backend Engineer", "Acme"),
		record("2", "Backend Engineer", "Acme"),
	}

	for _, exclude := range []string{"1", "2"} {
		got := FindDuplicates(records, "Backend Engineer", "Acme", exclude)
		require.Len(t, got, 1)
		assert.NotEqual(t, exclude, got[0].ID)
	}
}
