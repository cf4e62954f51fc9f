// internal/catalog/catalog_test.go
package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youth-employment-chat/internal/models"
)

func TestDefault_HasNineteenDatasetsInOrder(t *testing.T) {
	c := Default()

	assert.Equal(t, 19, c.Len())
	assert.Equal(t, KnownKeys, c.Keys())

	for i, d := range c.Descriptors() {
		assert.Equal(t, i, c.Position(d.Key))
		assert.Equal(t, PeriodColumn, d.PeriodColumn)
		assert.GreaterOrEqual(t, d.Limit, 3, d.Key)
		assert.LessOrEqual(t, d.Limit, 20, d.Key)
		assert.NotEmpty(t, d.Filters, d.Key)
	}
}

func TestDefault_EveryDatasetFiltersToYouthBand(t *testing.T) {
	for _, d := range Default().Descriptors() {
		found := false
		for _, f := range d.Filters {
			if f.Value == YouthAgeBand {
				found = true
			}
		}
		assert.True(t, found, "dataset %s is not filtered to %s", d.Key, YouthAgeBand)
	}
}

func TestDefault_Lookup(t *testing.T) {
	c := Default()

	d, ok := c.Lookup(KeySalary)
	require.True(t, ok)
	assert.Equal(t, "성별_첫_일자리_월평균임금", d.Table)
	assert.Equal(t, "첫 일자리 월평균임금", d.Name)
	assert.Equal(t, []Filter{{Column: "성별", Value: "계"}, {Column: "연령구분", Value: "20~34세"}}, d.Filters)

	d, ok = c.Lookup(KeyIndustryEmployment)
	require.True(t, ok)
	assert.Equal(t, 20, d.Limit)
	assert.Equal(t, "연령구분(1)", d.Filters[0].Column)

	_, ok = c.Lookup("nope")
	assert.False(t, ok)
	assert.Equal(t, -1, c.Position("nope"))
}

func TestDefault_Routes(t *testing.T) {
	c := Default()

	assert.Equal(t, []string{KeySalary}, c.DatasetsFor(models.CategorySalary))
	assert.Equal(t, []string{KeyIndustryEmployment, KeyFirstJobIndustry}, c.DatasetsFor(models.CategoryIndustry))
	assert.Len(t, c.DatasetsFor(models.CategoryStatistics), 19)
	assert.Len(t, c.DatasetsFor(models.CategoryTrend), 19)
	assert.Empty(t, c.DatasetsFor(models.CategoryRegion))
	assert.Empty(t, c.DatasetsFor(models.CategoryGender))
	assert.Empty(t, c.DatasetsFor(models.CategoryAge))
}

func TestDescriptors_ReturnsCopy(t *testing.T) {
	c := Default()
	ds := c.Descriptors()
	ds[0].Table = "mutated"

	d, _ := c.Lookup(KeyEmployment)
	assert.Equal(t, "연령별_경제활동상태", d.Table)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		descs   []Descriptor
		routes  map[models.Category][]string
		wantErr string
	}{
		{name: "empty", descs: nil, wantErr: "no datasets"},
		{name: "missing table", descs: []Descriptor{{Key: KeySalary, Limit: 3}}, wantErr: "missing key or table"},
		{name: "unknown key", descs: []Descriptor{{Key: "wages", Table: "t", Limit: 3}}, wantErr: "unknown dataset key"},
		{name: "duplicate", descs: []Descriptor{{Key: KeySalary, Table: "a", Limit: 3}, {Key: KeySalary, Table: "b", Limit: 3}}, wantErr: "duplicate"},
		{name: "zero limit", descs: []Descriptor{{Key: KeySalary, Table: "a"}}, wantErr: "limit must be positive"},
		{
			name:    "route to missing dataset",
			descs:   []Descriptor{{Key: KeySalary, Table: "a", Limit: 3}},
			routes:  map[models.Category][]string{models.CategorySalary: {KeyEmployment}},
			wantErr: "routes to unknown dataset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.descs, tt.routes)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_DefaultRoutesOnlyReferencePresentDatasets(t *testing.T) {
	c, err := New([]Descriptor{{Key: KeySalary, Table: "wages", Limit: 3}}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{KeySalary}, c.DatasetsFor(models.CategorySalary))
	assert.Empty(t, c.DatasetsFor(models.CategoryEmployment))
	assert.Equal(t, []string{KeySalary}, c.DatasetsFor(models.CategoryStatistics))

	d, _ := c.Lookup(KeySalary)
	assert.Equal(t, PeriodColumn, d.PeriodColumn)
	assert.Equal(t, KeySalary, d.Name)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	content := `
datasets:
  - key: salary
    name: 임금
    table: wages_2025
    period_column: period
    limit: 4
    filters:
      - column: gender
        value: all
  - key: employmentDuration
    name: 소요기간
    table: durations
    limit: 3
routes:
  salary: [salary]
  duration: [employmentDuration]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{KeySalary, KeyEmploymentDuration}, c.Keys())
	d, _ := c.Lookup(KeySalary)
	assert.Equal(t, "wages_2025", d.Table)
	assert.Equal(t, "period", d.PeriodColumn)
	assert.Equal(t, []Filter{{Column: "gender", Value: "all"}}, d.Filters)
	assert.Equal(t, []string{KeyEmploymentDuration}, c.DatasetsFor(models.CategoryDuration))
	assert.Empty(t, c.DatasetsFor(models.CategoryStatistics))
}

func TestLoadFile_EmptyPathUsesDefault(t *testing.T) {
	c, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, 19, c.Len())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
