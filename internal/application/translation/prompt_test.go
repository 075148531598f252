package translation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"novel-translate-api/internal/application/retrieval"
)

func TestBuildPrompt_Deterministic(t *testing.T) {
	raw := "他只是井底之蛙。"
	glossaryCtx := "- 林动: Lin Dong (Protagonist)"
	loreCtx := "- [character] 林动: A young cultivator."

	first := BuildPrompt(raw, glossaryCtx, loreCtx)
	second := BuildPrompt(raw, glossaryCtx, loreCtx)
	assert.Equal(t, first, second)
}

func TestBuildPrompt_ContainsIdiomRuleAndSections(t *testing.T) {
	prompt := BuildPrompt("原文", "- 甲: First (No notes)", "")

	assert.True(t, strings.HasPrefix(prompt, "You are a professional Chinese-to-English webnovel translator.\n"))
	assert.Contains(t, prompt, "IDIOM RULE:")
	assert.Contains(t, prompt, `"井底之蛙" should be "a frog at the bottom of a well", NOT "narrow-minded".`)
	assert.Contains(t, prompt, `"山外有山" should be "there are mountains beyond mountains", NOT "there is always someone better".`)
	assert.Contains(t, prompt, "GLOSSARY (Use these exact terms):\n- 甲: First (No notes)")
	assert.Contains(t, prompt, "Translate the following text accurately while maintaining the original tone.")
	assert.True(t, strings.HasSuffix(prompt, "Text to translate:\n原文"))
}

func TestBuildPrompt_EmptyGlossaryUsesMarker(t *testing.T) {
	prompt := BuildPrompt("原文", "", "")
	assert.Contains(t, prompt, "GLOSSARY (Use these exact terms):\n"+EmptyGlossaryMarker)
}

func TestBuildPrompt_LoreSectionOnlyWhenPresent(t *testing.T) {
	without := BuildPrompt("原文", EmptyGlossaryMarker, "")
	assert.NotContains(t, without, "RELEVANT LORE")

	with := BuildPrompt("原文", EmptyGlossaryMarker, "- 青元宗: The sect where the story begins.")
	assert.Contains(t, with, "RELEVANT LORE (Keep names and facts consistent with these entries):\n- 青元宗: The sect where the story begins.")
}

func TestBuildPrompt_DoesNotRewriteSourceText(t *testing.T) {
	raw := "井底之蛙不知山外有山。"
	prompt := BuildPrompt(raw, EmptyGlossaryMarker, "")
	assert.Contains(t, prompt, "Text to translate:\n"+raw)
}

func TestBuildLoreContext(t *testing.T) {
	tests := []struct {
		name  string
		items []retrieval.LoreItem
		want  string
	}{
		{
			name: "with category",
			items: []retrieval.LoreItem{
				{Category: "character", Key: "林动", Content: "A young cultivator."},
			},
			want: "- [character] 林动: A young cultivator.",
		},
		{
			name: "without category",
			items: []retrieval.LoreItem{
				{Key: "青元宗", Content: "A sect."},
			},
			want: "- 青元宗: A sect.",
		},
		{
			name: "preserves retrieval order",
			items: []retrieval.LoreItem{
				{Key: "B", Content: "second"},
				{Key: "A", Content: "first"},
			},
			want: "- B: second\n- A: first",
		},
		{
			name:  "empty items",
			items: nil,
			want:  "",
		},
		{
			name: "skips blank entries",
			items: []retrieval.LoreItem{
				{Key: " ", Content: ""},
				{Key: "A", Content: "kept"},
			},
			want: "- A: kept",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildLoreContext(tt.items))
		})
	}
}
