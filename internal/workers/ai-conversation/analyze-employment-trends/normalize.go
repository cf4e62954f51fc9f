// internal/workers/ai-conversation/analyze-employment-trends/normalize.go
package analyzeemploymenttrends

import (
	"math"
	"strconv"
	"strings"

	"youth-employment-chat/internal/catalog"
	"youth-employment-chat/internal/models"
)

// Rows with a zero or unparseable headline figure are dropped by each
// normaliser; they are placeholders in the source tables.

func normalizeEmployment(rows []models.Row) []models.EmploymentPoint {
	out := make([]models.EmploymentPoint, 0, len(rows))
	for _, r := range rows {
		p := models.EmploymentPoint{
			Period:           period(r),
			EmploymentRate:   toFloat(r["고용률"]),
			UnemploymentRate: toFloat(r["실업률"]),
			YouthPopulation:  toInt(r["청년층인구"]),
			Employed:         toInt(r["취업자"]),
			Unemployed:       toInt(r["실업자"]),
		}
		if p.EmploymentRate > 0 && p.UnemploymentRate > 0 {
			out = append(out, p)
		}
	}
	return out
}

func normalizeSalary(rows []models.Row) []models.SalaryPoint {
	out := make([]models.SalaryPoint, 0, len(rows))
	for _, r := range rows {
		p := models.SalaryPoint{
			Period:      period(r),
			TotalCount:  toInt(r["계"]),
			Under50:     toInt(r["50만원 미만"]),
			Range50100:  toInt(r["50~100만원 미만"]),
			Range100150: toInt(r["100~150만원 미만"]),
			Range150200: toInt(r["150~200만원 미만"]),
			Range200300: toInt(r["200~300만원 미만"]),
			Over300:     toInt(r["300만원 이상"]),
		}
		if p.TotalCount > 0 {
			out = append(out, p)
		}
	}
	return out
}

func normalizeUnemployment(rows []models.Row) []models.UnemploymentDurationPoint {
	out := make([]models.UnemploymentDurationPoint, 0, len(rows))
	for _, r := range rows {
		p := models.UnemploymentDurationPoint{
			Period:       period(r),
			Total:        toInt(r["계"]),
			Under6Months: toInt(r["6개월 미만"]),
			Months6To12:  toInt(r["6개월~1년 미만"]),
			Years1To2:    toInt(r["1~2년 미만"]),
			Years2To3:    toInt(r["2~3년 미만"]),
			Over3Years:   toInt(r["3년 이상"]),
		}
		if p.Total > 0 {
			out = append(out, p)
		}
	}
	return out
}

func normalizeEmploymentDuration(rows []models.Row) []models.EmploymentDurationPoint {
	out := make([]models.EmploymentDurationPoint, 0, len(rows))
	for _, r := range rows {
		p := models.EmploymentDurationPoint{
			Period:            period(r),
			TotalExperienced:  toInt(r["졸업ㆍ중퇴 후 취업 유경험자 전체"]),
			AvgDurationMonths: toInt(r["첫 취업 평균소요기간"]),
			Under3Months:      toInt(r["3개월 미만"]),
			Months3To6:        toInt(r["3~6개월 미만"]),
			Months6To12:       toInt(r["6개월~1년 미만"]),
			Years1To2:         toInt(r["1~2년 미만"]),
			Years2To3:         toInt(r["2~3년 미만"]),
			Over3Years:        toInt(r["3년 이상"]),
		}
		if p.TotalExperienced > 0 {
			out = append(out, p)
		}
	}
	return out
}

func period(r models.Row) string {
	switch v := r[catalog.PeriodColumn].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// toFloat parses numbers and numeric strings; anything else is 0.
func toFloat(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0
		}
		return val
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(val), ",", ""), 64)
		if err != nil {
			return 0
		}
		return toFloat(f)
	default:
		return 0
	}
}

// toInt truncates toward zero.
func toInt(v interface{}) int {
	return int(toFloat(v))
}

// lastN returns the newest n points. The result is never nil so an empty
// series marshals as [].
func lastN[T any](points []T, n int) []T {
	if len(points) == 0 {
		return []T{}
	}
	if len(points) <= n {
		return points
	}
	return points[len(points)-n:]
}
