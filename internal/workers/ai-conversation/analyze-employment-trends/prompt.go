// internal/workers/ai-conversation/analyze-employment-trends/prompt.go
package analyzeemploymenttrends

import (
	"encoding/json"
	"strings"
)

const systemInstruction = "당신은 한국의 청년 고용 정책 전문가입니다. 다양한 고용 관련 데이터를 종합 분석하고 현실적인 예측과 정책을 제안합니다."

const responseShape = `{
  "comprehensive_analysis": "종합 데이터 분석 결과와 주요 트렌드 (300자 이내)",
  "future_predictions": {
    "employment_metrics": {
      "employment_rate_2025": 예측되는 2025년 고용률,
      "employment_rate_2026": 예측되는 2026년 고용률,
      "employment_rate_2027": 예측되는 2027년 고용률,
      "unemployment_rate_2025": 예측되는 2025년 실업률,
      "unemployment_rate_2026": 예측되는 2026년 실업률,
      "unemployment_rate_2027": 예측되는 2027년 실업률
    },
    "salary_predictions": {
      "avg_salary_range_2025": "예측되는 2025년 주요 임금 구간",
      "avg_salary_range_2026": "예측되는 2026년 주요 임금 구간",
      "avg_salary_range_2027": "예측되는 2027년 주요 임금 구간",
      "high_salary_percentage_2025": 200만원 이상 고임금 비율 2025년,
      "high_salary_percentage_2026": 200만원 이상 고임금 비율 2026년,
      "high_salary_percentage_2027": 200만원 이상 고임금 비율 2027년
    },
    "unemployment_duration": {
      "avg_duration_trend": "미취업 기간 트렌드 전망",
      "short_term_ratio_2025": 6개월 미만 단기 미취업 비율 2025년,
      "short_term_ratio_2026": 6개월 미만 단기 미취업 비율 2026년,
      "short_term_ratio_2027": 6개월 미만 단기 미취업 비율 2027년
    },
    "employment_duration_trends": {
      "avg_duration_trend": "첫 취업 소요기간 트렌드 전망",
      "avg_duration_2025": 예측되는 2025년 평균 첫 취업 소요기간(개월),
      "avg_duration_2026": 예측되는 2026년 평균 첫 취업 소요기간(개월),
      "avg_duration_2027": 예측되는 2027년 평균 첫 취업 소요기간(개월)
    },
    "confidence_level": "전체 예측 신뢰도 (높음/보통/낮음)"
  },
  "policy_recommendations": [
    {
      "category": "정책 분야",
      "title": "정책명",
      "description": "정책 설명 (100자 이내)",
      "priority": "우선순위 (높음/보통/낮음)",
      "timeline": "실행 시기",
      "target_metric": "개선 목표 지표"
    }
  ]
}`

func buildPrompt(h *history) (string, error) {
	sections := []struct {
		title string
		data  interface{}
	}{
		{"고용률/실업률 데이터", lastN(h.Employment, EmploymentWindow)},
		{"월평균임금 분포 데이터", lastN(h.Salary, SalaryWindow)},
		{"미취업 기간별 데이터", lastN(h.Unemployment, UnemploymentWindow)},
		{"첫 취업 소요기간 데이터", lastN(h.EmploymentDuration, EmploymentDurationWindow)},
	}

	var sb strings.Builder
	sb.WriteString("당신은 한국의 청년 고용 정책 전문가입니다. 다음 청년층(20~34세) 다양한 데이터를 종합 분석하여 미래를 예측하고 정책을 추천해주세요.\n\n")
	for _, s := range sections {
		data, err := json.MarshalIndent(s.data, "", "  ")
		if err != nil {
			return "", err
		}
		sb.WriteString(s.title)
		sb.WriteString(":\n")
		sb.Write(data)
		sb.WriteString("\n\n")
	}
	sb.WriteString("다음 형식으로 응답해주세요:\n\n")
	sb.WriteString(responseShape)
	sb.WriteString("\n\nJSON 형식으로만 응답하고, 모든 데이터를 종합 분석한 현실적인 예측과 실용적인 정책을 제안해주세요.\n")
	return sb.String(), nil
}
