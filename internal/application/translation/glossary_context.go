// Package translation 实现章节翻译流水线
package translation

import (
	"fmt"
	"strings"

	"novel-translate-api/internal/domain/entity"
)

// EmptyGlossaryMarker 没有命中任何术语时的占位文本，保持提示词模板稳定
const EmptyGlossaryMarker = "No specific terms defined yet."

// BuildGlossaryContext 从作品术语表中筛选出现在原文里的术语并格式化。
//
// 匹配是大小写敏感的字面子串匹配，不做任何归一化，
// 只注入与本章相关的术语以控制提示词长度。
func BuildGlossaryContext(rawText string, terms []*entity.GlossaryTerm) string {
	var lines []string
	for _, term := range terms {
		if term == nil || term.SourceTerm == "" {
			continue
		}
		if !strings.Contains(rawText, term.SourceTerm) {
			continue
		}

		notes := strings.TrimSpace(term.Notes)
		if notes == "" {
			notes = "No notes"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s (%s)", term.SourceTerm, term.TargetTerm, notes))
	}

	if len(lines) == 0 {
		return EmptyGlossaryMarker
	}
	return strings.Join(lines, "\n")
}
