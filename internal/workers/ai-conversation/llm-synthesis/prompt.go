// internal/workers/ai-conversation/llm-synthesis/prompt.go
package llmsynthesis

import (
	"strconv"
	"strings"
)

const systemInstruction = "당신은 한국의 청년 고용 통계 전문가입니다. 제공된 실제 데이터만을 기반으로 정확하고 객관적인 답변을 제공합니다. " +
	"LaTeX 코드나 수학 마크업 언어는 절대 사용하지 말고 모든 수식을 일반 텍스트로만 표현하세요."

var rules = []string{
	"제공된 데이터에만 기반하여 답변하세요",
	"데이터에 없는 내용은 추측하지 마세요",
	"수치는 정확히 인용하고, 비율 계산 시 반드시 검증하세요",
	"비율이나 퍼센트 계산 시에는 분모와 분자를 명확히 하세요",
	"출처가 명확한 정보만 사용하세요",
	"데이터가 부족한 경우 솔직히 말씀하세요",
	"계산 과정을 보여주고 정확한 수식을 사용하세요",
	"LaTeX 코드나 수학 기호는 사용하지 말고 일반 텍스트로만 답변하세요",
}

var answerFormat = []string{
	"구체적인 수치와 기간을 포함하여 답변",
	`비율 계산 시 일반 텍스트로 "(A ÷ B × 100 = C%)" 형식 사용`,
	"데이터 출처 명시",
	"객관적이고 정확한 정보만 제공",
	"계산에 사용된 수치의 단위(천명, 만명 등) 확인 후 계산",
	`필요시 "제공된 데이터에서는 해당 정보를 확인할 수 없습니다"라고 명시`,
	`LaTeX, MathML, \text{} 같은 수학 마크업 언어는 절대 사용하지 마세요`,
	"모든 수식과 계산은 일반 텍스트로만 표현하세요",
}

// BuildPrompt assembles the user message: domain definitions, answering
// rules, the serialized context and the question verbatim.
func BuildPrompt(question, context string) string {
	var sb strings.Builder

	sb.WriteString("당신은 한국의 청년(20~34세) 고용 분야 전문가입니다. 아래 제공된 실제 통계 데이터만을 기반으로 정확하게 답변해주세요.\n\n")
	sb.WriteString("[정의]\n")
	sb.WriteString(`- 본 서비스에서 "고임금"은 "월 300만원 이상"을 의미합니다.` + "\n\n")

	sb.WriteString("**중요한 지침:**\n")
	for i, r := range rules {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(r)
		sb.WriteByte('\n')
	}

	sb.WriteString("\n**제공된 실제 데이터:**\n")
	sb.WriteString(context)
	sb.WriteString("\n\n**사용자 질문:** ")
	sb.WriteString(question)
	sb.WriteString("\n\n**답변 형식:**\n")
	for _, f := range answerFormat {
		sb.WriteString("- ")
		sb.WriteString(f)
		sb.WriteByte('\n')
	}

	return sb.String()
}

