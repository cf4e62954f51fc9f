// internal/workers/ai-conversation/build-context/templates.go
package buildcontext

import "youth-employment-chat/internal/catalog"

// field renders as "<label> <value><unit>". Quoted fields wrap the value in
// double quotes and are used for category labels such as industry names.
type field struct {
	label  string
	column string
	unit   string
	quote  bool
}

type section struct {
	title  string
	fields []field
}

const (
	thousand = "천명"
	percent  = "%"
	months   = "개월"
)

func count(label, column string) field { return field{label: label, column: column, unit: thousand} }

// sections holds the line format of every catalog dataset.
var sections = map[string]section{
	catalog.KeyEmployment: {
		title: "고용률 및 실업률 데이터",
		fields: []field{
			{label: "고용률", column: "고용률", unit: percent},
			{label: "실업률", column: "실업률", unit: percent},
			count("취업자", "취업자"),
			count("실업자", "실업자"),
			count("청년층인구", "청년층인구"),
		},
	},
	catalog.KeySalary: {
		title: "첫 일자리 월평균임금 분포",
		fields: []field{
			count("전체", "계"),
			count("50만원미만", "50만원 미만"),
			count("50~100만원", "50~100만원 미만"),
			count("100~150만원", "100~150만원 미만"),
			count("150~200만원", "150~200만원 미만"),
			count("200~300만원", "200~300만원 미만"),
			count("300만원이상", "300만원 이상"),
		},
	},
	catalog.KeyUnemployment: {
		title: "미취업 기간별 분포",
		fields: []field{
			count("전체", "계"),
			count("6개월미만", "6개월 미만"),
			count("6개월~1년", "6개월~1년 미만"),
			count("1~2년", "1~2년 미만"),
			count("2~3년", "2~3년 미만"),
			count("3년이상", "3년 이상"),
		},
	},
	catalog.KeyEmploymentDuration: {
		title: "첫 취업 소요기간",
		fields: []field{
			{label: "평균", column: "첫 취업 평균소요기간", unit: months},
			count("전체 취업경험자", "졸업ㆍ중퇴 후 취업 유경험자 전체"),
			count("3개월미만", "3개월 미만"),
			count("3~6개월", "3~6개월 미만"),
			count("6개월~1년", "6개월~1년 미만"),
		},
	},
	catalog.KeyMajorMatch: {
		title: "전공 일치 여부",
		fields: []field{
			count("전체", "계"),
			count("매우 일치", "매우 일치"),
			count("그런대로 일치", "그런대로 일치"),
			count("약간 불일치", "약간 불일치"),
			count("매우 불일치", "매우 불일치"),
		},
	},
	catalog.KeyIndustryEmployment: {
		title: "산업별 취업분포 (졸업중퇴 취업자)",
		fields: []field{
			{label: "산업분야", column: "산업별(1)", quote: true},
			count("졸업중퇴 청년층 취업자", "졸업/중퇴 청년층 취업자"),
			count("전체 취업자", "전체 취업자"),
		},
	},
	catalog.KeySchoolStatus: {
		title: "수학여부 (재학/졸업/중퇴)",
		fields: []field{
			count("청년층인구 전체", "청년층인구 전체"),
			count("재학", "재학"),
			count("졸업/중퇴", "졸업/중퇴"),
			count("휴학", "휴학"),
		},
	},
	catalog.KeyGraduationDuration: {
		title: "대학졸업 소요기간",
		fields: []field{
			{label: "학제", column: "학제별", quote: true},
			count("대졸자 전체", "계"),
			{label: "평균 졸업소요기간", column: "평균 졸업소요기간", unit: months},
		},
	},
	catalog.KeyVocationalTraining: {
		title: "직업교육훈련 경험",
		fields: []field{
			count("청년층인구 전체", "청년층 인구 전체"),
			count("교육훈련경험있음", "교육훈련 경험있음"),
			count("교육훈련경험없음", "교육훈련 경험없음"),
		},
	},
	catalog.KeyWorkExperience: {
		title: "취업경험 유무 및 횟수",
		fields: []field{
			count("전체", "졸업ㆍ중퇴 청년층인구 전체"),
			count("취업경험있음", "취업경험 있음"),
			count("취업경험없음", "취업경험 없음"),
		},
	},
	catalog.KeyFirstJobIndustry: {
		title: "첫일자리 산업별 분포",
		fields: []field{
			count("제조업", "광ㆍ제조업(BC)"),
			count("도소매업", "도매 및 소매업(G)"),
			count("숙박음식점업", "숙박 및 음식점업(I)"),
			count("보건복지서비스업", "보건업 및 사회복지 서비스업(Q)"),
		},
	},
	catalog.KeyFirstJobOccupation: {
		title: "첫일자리 직업별 분포",
		fields: []field{
			count("관리자전문가", "관리자ㆍ전문가"),
			count("사무종사자", "사무 종사자"),
			count("서비스종사자", "서비스 종사자"),
			count("판매종사자", "판매 종사자"),
		},
	},
	catalog.KeyQuitReason: {
		title: "첫 일자리를 그만둔 사유",
		fields: []field{
			count("이직경험자 전체", "이직 경험자 전체"),
			count("근로여건 불만족", "근로여건 불만족(보수 근로시간 등)"),
			count("개인/가족적 이유", "개인/가족적이유(건강육아결혼등)"),
			count("계약기간 종료", "임시적 계절적인 일의 완료 계약기간 끝남"),
			count("전공/적성 불일치", "전공 지식 기술 적성등이 맞지않아서"),
			count("전망 없음", "전망이 없어서"),
			count("휴업/폐업/파산", "직장휴업 폐업 파산 등"),
			count("그 외", "그 외"),
		},
	},
	catalog.KeyJobSearchRoute: {
		title: "취업경로 (졸업중퇴 취업자)",
		fields: []field{
			{label: "학력", column: "학력별", quote: true},
			count("전체", "계"),
			count("공개채용", "공개채용시험"),
			count("가족/친지 소개", "가족ㆍ친지 소개"),
			count("학교 추천", "학교 추천"),
			count("대중매체/인터넷", "대중매체ㆍ인터넷"),
		},
	},
	catalog.KeyLeaveExperience: {
		title: "휴학경험 (대졸자)",
		fields: []field{
			count("대졸자 전체", "대졸자 전체"),
			count("휴학경험있음", "휴학경험 있음"),
			count("휴학경험없음", "휴학경험 없음"),
			{label: "평균 휴학기간", column: "평균휴학기간", unit: months},
		},
	},
	catalog.KeyWorkExperienceType: {
		title: "직장체험 형태",
		fields: []field{
			count("직장체험경험자 전체", "직장체험경험자 전체"),
			count("시간제 취업", "시간제 취업"),
			count("전일제 취업", "전일제 취업"),
			count("인턴", "인턴"),
			count("기타", "기타"),
		},
	},
	catalog.KeyUnemploymentActivity: {
		title: "미취업 기간 주요 활동",
		fields: []field{
			count("전체", "계"),
			count("구직활동", "구직활동"),
			count("취업시험준비", "취업관련시험준비"),
			count("직업교육훈련", "직업교육훈련"),
			count("육아가사", "육아가사"),
			count("여가시간", "여가시간"),
			count("그냥 시간보냄", "그냥시간보냄"),
		},
	},
	catalog.KeyJobExamPrep: {
		title: "취업시험 준비 여부 및 분야 (비경제활동인구)",
		fields: []field{
			count("비경제활동인구 전체", "청년층 비경제활동인구 전체"),
			count("준비함", "취업시험 준비하였음"),
			count("준비안함", "취업시험 준비하지 않았음"),
			count("일반직공무원", "- 일반직공무원"),
			count("일반기업체", "- 일반기업체"),
			count("고시/전문직", "- 고시 및 전문직"),
			count("교원임용", "- 교원임용"),
			count("언론사/공영기업체", "- 언론사/공영기업체"),
			count("기능분야/기타", "- 기능분야 및 기타"),
		},
	},
	catalog.KeyContinuousEmployment: {
		title: "첫 직장 근속기간",
		fields: []field{
			count("전체", "계"),
			{label: "평균 근속기간", column: "평균 근속기간", unit: months},
			count("첫 직장 재직중", "현재 첫 일자리 재직"),
			count("첫 직장 그만둠", "첫 일자리 그만둠"),
		},
	},
}
