// internal/workers/ai-conversation/build-context/handler_test.go
package buildcontext

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youth-employment-chat/internal/catalog"
	"youth-employment-chat/internal/common/logger"
	"youth-employment-chat/internal/models"
)

func bundleOf(datasets map[string][]models.Row) *models.RelevantDataBundle {
	b := &models.RelevantDataBundle{Sources: []string{}, Datasets: datasets}
	for _, rows := range datasets {
		b.DataPoints += len(rows)
	}
	return b
}

func TestBuild_Salary(t *testing.T) {
	b := NewBuilder(catalog.Default())

	got := b.Build(bundleOf(map[string][]models.Row{
		catalog.KeySalary: {{
			"시점": 2024.05, "계": 3817.0, "50만원 미만": 120.0, "50~100만원 미만": 250.5,
			"100~150만원 미만": 480.0, "150~200만원 미만": 1020.0, "200~300만원 미만": 1500.0, "300만원 이상": 447.0,
		}},
	}))

	want := "\n=== 첫 일자리 월평균임금 분포 ===\n" +
		"- 2024.05: 전체 3817천명, 50만원미만 120천명, 50~100만원 250.5천명, 100~150만원 480천명, " +
		"150~200만원 1020천명, 200~300만원 1500천명, 300만원이상 447천명\n"
	assert.Equal(t, want, got)
}

func TestBuild_EmploymentStringsAndMissingValues(t *testing.T) {
	b := NewBuilder(catalog.Default())

	got := b.Build(bundleOf(map[string][]models.Row{
		catalog.KeyEmployment: {
			{"시점": "2024.05", "고용률": "46.2", "실업률": "5.9", "취업자": "4012", "실업자": "252", "청년층인구": "8600"},
			{"시점": 2023.05, "고용률": "46.5", "실업률": nil, "취업자": ""},
		},
	}))

	want := "\n=== 고용률 및 실업률 데이터 ===\n" +
		"- 2024.05: 고용률 46.2%, 실업률 5.9%, 취업자 4012천명, 실업자 252천명, 청년층인구 8600천명\n" +
		"- 2023.05: 고용률 46.5%, 실업률 -, 취업자 -, 실업자 -, 청년층인구 -\n"
	assert.Equal(t, want, got)
}

func TestBuild_QuotedIndustry(t *testing.T) {
	b := NewBuilder(catalog.Default())

	got := b.Build(bundleOf(map[string][]models.Row{
		catalog.KeyIndustryEmployment: {
			{"시점": 2024.05, "산업별(1)": "제조업", "졸업/중퇴 청년층 취업자": 612.0, "전체 취업자": 4400.0},
		},
	}))

	assert.Contains(t, got, "=== 산업별 취업분포 (졸업중퇴 취업자) ===")
	assert.Contains(t, got, `- 2024.05: 산업분야 "제조업", 졸업중퇴 청년층 취업자 612천명, 전체 취업자 4400천명`)
}

func TestBuild_SectionsFollowCatalogOrder(t *testing.T) {
	b := NewBuilder(catalog.Default())

	got := b.Build(bundleOf(map[string][]models.Row{
		catalog.KeyJobExamPrep:      {{"시점": 2024.05}},
		catalog.KeySalary:           {{"시점": 2024.05}},
		catalog.KeyMajorMatch:       {{"시점": 2024.05}},
		catalog.KeyFirstJobIndustry: {},
	}))

	salary := strings.Index(got, "첫 일자리 월평균임금 분포")
	major := strings.Index(got, "전공 일치 여부")
	exam := strings.Index(got, "취업시험 준비 여부")
	require.True(t, salary >= 0 && major >= 0 && exam >= 0)
	assert.Less(t, salary, major)
	assert.Less(t, major, exam)
	assert.NotContains(t, got, "첫일자리 산업별 분포", "datasets without rows get no header")
}

func TestBuild_EmptyBundleIsSentinel(t *testing.T) {
	b := NewBuilder(catalog.Default())

	assert.Equal(t, NoDataSentinel, b.Build(nil))
	assert.Equal(t, NoDataSentinel, b.Build(bundleOf(map[string][]models.Row{})))
	assert.Equal(t, NoDataSentinel, b.Build(bundleOf(map[string][]models.Row{catalog.KeySalary: {}})))
	assert.Equal(t, "관련 데이터를 찾을 수 없습니다.", NoDataSentinel)
}

func TestBuild_EveryDatasetHasATemplate(t *testing.T) {
	cat := catalog.Default()
	b := NewBuilder(cat)

	for _, key := range catalog.KnownKeys {
		t.Run(key, func(t *testing.T) {
			sec, ok := sections[key]
			require.True(t, ok)
			assert.NotEmpty(t, sec.fields)

			got := b.Build(bundleOf(map[string][]models.Row{key: {{"시점": 2024.05}}}))
			assert.True(t, strings.HasPrefix(got, "\n=== "+sec.title+" ===\n- 2024.05: "), got)
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	cat := catalog.Default()
	b := NewBuilder(cat)

	datasets := make(map[string][]models.Row)
	for _, key := range cat.Keys() {
		datasets[key] = []models.Row{
			{"시점": 2024.05, "계": 1.5, "고용률": "46.2", "산업별(1)": "건설업"},
			{"시점": 2023.05, "계": 2.0},
		}
	}
	bundle := bundleOf(datasets)

	first := b.Build(bundle)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, b.Build(bundle))
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   interface{}
		want string
	}{
		{nil, "-"},
		{"", "-"},
		{"  ", "-"},
		{"46.2", "46.2"},
		{46.0, "46"},
		{46.25, "46.25"},
		{2024.05, "2024.05"},
		{int64(12), "12"},
		{7, "7"},
		{true, "true"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.in), "%v", tt.in)
	}
}

func TestHandler_Execute(t *testing.T) {
	h, err := NewHandler(DefaultConfig(), catalog.Default(), nil, logger.NewTestLogger(t))
	require.NoError(t, err)

	vars, _ := json.Marshal(map[string]interface{}{
		"relevantData": bundleOf(map[string][]models.Row{
			catalog.KeyMajorMatch: {{"시점": 2024.05, "계": 3000.0, "매우 일치": 900.0}},
		}),
	})
	input, err := h.parseInput(entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Variables: string(vars)}})
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t,
		"\n=== 전공 일치 여부 ===\n- 2024.05: 전체 3000천명, 매우 일치 900천명, 그런대로 일치 -, 약간 불일치 -, 매우 불일치 -\n",
		out.Context)

	out, err = h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Equal(t, NoDataSentinel, out.Context)
}
