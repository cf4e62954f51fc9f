// internal/workers/ai-conversation/build-context/builder.go
package buildcontext

import (
	"fmt"
	"strconv"
	"strings"

	"youth-employment-chat/internal/catalog"
	"youth-employment-chat/internal/models"
)

// NoDataSentinel replaces the context when nothing relevant was retrieved.
const NoDataSentinel = "관련 데이터를 찾을 수 없습니다."

const missingValue = "-"

type Builder struct {
	catalog *catalog.Catalog
}

func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{catalog: cat}
}

// Build renders the bundle as one section per dataset, in catalog order, with
// one line per row. Output depends only on the bundle.
func (b *Builder) Build(bundle *models.RelevantDataBundle) string {
	if bundle.IsEmpty() {
		return NoDataSentinel
	}

	var sb strings.Builder
	for _, d := range b.catalog.Descriptors() {
		rows := bundle.Datasets[d.Key]
		if len(rows) == 0 {
			continue
		}
		sec, ok := sections[d.Key]
		if !ok {
			continue
		}

		sb.WriteString("\n=== ")
		sb.WriteString(sec.title)
		sb.WriteString(" ===\n")
		for _, row := range rows {
			writeLine(&sb, sec, d.PeriodColumn, row)
		}
	}

	if sb.Len() == 0 {
		return NoDataSentinel
	}
	return sb.String()
}

func writeLine(sb *strings.Builder, sec section, periodColumn string, row models.Row) {
	sb.WriteString("- ")
	sb.WriteString(formatValue(row[periodColumn]))
	sb.WriteString(": ")
	for i, f := range sec.fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.label)
		sb.WriteByte(' ')

		v := formatValue(row[f.column])
		if v == missingValue {
			sb.WriteString(v)
			continue
		}
		if f.quote {
			sb.WriteString(`"` + v + `"`)
		} else {
			sb.WriteString(v)
		}
		sb.WriteString(f.unit)
	}
	sb.WriteByte('\n')
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return missingValue
	case string:
		if strings.TrimSpace(val) == "" {
			return missingValue
		}
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
