// internal/workers/ai-conversation/classify-question/keywords.go
package classifyquestion

import (
	"strings"

	"youth-employment-chat/internal/models"
)

type categoryKeywords struct {
	category models.Category
	keywords []string
}

type intentKeywords struct {
	intent   models.Intent
	keywords []string
}

// KeywordTable is the read-only lookup data for Classify. Build it once with
// NewKeywordTable and share it.
type KeywordTable struct {
	categories []categoryKeywords
	intents    []intentKeywords
	timeframes []string
}

func NewKeywordTable() *KeywordTable {
	return &KeywordTable{
		categories: []categoryKeywords{
			{models.CategoryEmployment, []string{"고용", "취업", "일자리", "직업", "직장"}},
			{models.CategorySalary, []string{"임금", "급여", "월급", "연봉", "소득", "수입"}},
			{models.CategoryIndustry, []string{"산업", "업종", "분야", "제조업", "서비스업", "건설업", "금융업"}},
			{models.CategoryEducation, []string{"전공", "학과", "대학", "졸업", "교육"}},
			{models.CategoryUnemployment, []string{"실업", "미취업", "구직", "취업준비"}},
			{models.CategoryDuration, []string{"기간", "소요", "평균", "시간"}},
			{models.CategoryStatistics, []string{"통계", "현황", "분포", "비율", "퍼센트"}},
			{models.CategoryComparison, []string{"비교", "차이", "높은", "낮은", "많은", "적은"}},
			{models.CategoryTrend, []string{"변화", "추세", "증가", "감소", "트렌드"}},
			{models.CategoryRegion, []string{"지역", "서울", "부산", "대구", "인천"}},
			{models.CategoryGender, []string{"남자", "여자", "성별", "남녀"}},
			{models.CategoryAge, []string{"나이", "연령", "청년", "20대", "30대"}},
		},
		intents: []intentKeywords{
			{models.IntentLocation, []string{"어디", "어느"}},
			{models.IntentTime, []string{"언제", "시기"}},
			{models.IntentQuantity, []string{"얼마나", "몇"}},
			{models.IntentReason, []string{"왜", "이유"}},
			{models.IntentMethod, []string{"어떻게", "방법"}},
			{models.IntentComparison, []string{"비교", "차이"}},
			{models.IntentTrend, []string{"변화", "추세"}},
		},
		timeframes: []string{"2025", "2024", "2023", "2022", "2021", "최근", "현재", "최신"},
	}
}

// Classify tags a question with topic categories, the keywords that matched,
// a coarse intent and an optional timeframe. It is total and pure: any string,
// including the empty one, yields a valid analysis.
func (t *KeywordTable) Classify(question string) models.QuestionAnalysis {
	q := strings.ToLower(question)

	analysis := models.QuestionAnalysis{
		Keywords:   []string{},
		Categories: []models.Category{},
		Intent:     models.IntentGeneral,
	}

	for _, ck := range t.categories {
		matched := false
		for _, kw := range ck.keywords {
			if strings.Contains(q, kw) {
				analysis.Keywords = append(analysis.Keywords, kw)
				matched = true
			}
		}
		if matched {
			analysis.Categories = append(analysis.Categories, ck.category)
		}
	}

intents:
	for _, ik := range t.intents {
		for _, kw := range ik.keywords {
			if strings.Contains(q, kw) {
				analysis.Intent = ik.intent
				break intents
			}
		}
	}

	// Last match wins.
	for _, tf := range t.timeframes {
		if strings.Contains(q, tf) {
			analysis.Timeframe = tf
		}
	}

	return analysis
}
