package translation

import (
	"fmt"
	"strings"

	"novel-translate-api/internal/application/retrieval"
)

// BuildLoreContext 将检索到的设定条目格式化为提示词上下文块。
// 条目顺序与检索结果一致（相似度从高到低）。
func BuildLoreContext(items []retrieval.LoreItem) string {
	var lines []string
	for _, item := range items {
		key := strings.TrimSpace(item.Key)
		content := strings.TrimSpace(item.Content)
		if key == "" && content == "" {
			continue
		}

		if category := strings.TrimSpace(item.Category); category != "" {
			lines = append(lines, fmt.Sprintf("- [%s] %s: %s", category, key, content))
		} else {
			lines = append(lines, fmt.Sprintf("- %s: %s", key, content))
		}
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt 组装翻译提示词。
//
// 纯函数：相同输入产生字节级相同的输出。成语规则逐字要求直译，
// 术语表要求按给定译法使用；设定上下文块仅在非空时出现。
func BuildPrompt(rawText, glossaryCtx, loreCtx string) string {
	var b strings.Builder

	b.WriteString("You are a professional Chinese-to-English webnovel translator.\n")
	b.WriteString("\n")
	b.WriteString("IDIOM RULE:\n")
	b.WriteString("- You must translate Chinese idioms (Chengyu) LITERALLY.\n")
	b.WriteString("- For example: \"井底之蛙\" should be \"a frog at the bottom of a well\", NOT \"narrow-minded\".\n")
	b.WriteString("- \"山外有山\" should be \"there are mountains beyond mountains\", NOT \"there is always someone better\".\n")
	b.WriteString("\n")
	b.WriteString("GLOSSARY (Use these exact terms):\n")
	if glossaryCtx == "" {
		b.WriteString(EmptyGlossaryMarker)
	} else {
		b.WriteString(glossaryCtx)
	}
	b.WriteString("\n")

	if loreCtx != "" {
		b.WriteString("\n")
		b.WriteString("RELEVANT LORE (Keep names and facts consistent with these entries):\n")
		b.WriteString(loreCtx)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString("Translate the following text accurately while maintaining the original tone.\n")
	b.WriteString("Output the translated prose only, with no commentary.\n")
	b.WriteString("\n")
	b.WriteString("Text to translate:\n")
	b.WriteString(rawText)

	return b.String()
}
