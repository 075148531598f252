package translation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"novel-translate-api/internal/domain/entity"
)

func TestBuildGlossaryContext_FiltersBySubstring(t *testing.T) {
	terms := []*entity.GlossaryTerm{
		{SourceTerm: "林动", TargetTerm: "Lin Dong", Notes: "Protagonist"},
		{SourceTerm: "青元宗", TargetTerm: "Azure Origin Sect"},
		{SourceTerm: "玄铁剑", TargetTerm: "Black Iron Sword", Notes: "Weapon"},
	}
	raw := "林动走进青元宗的大门。"

	got := BuildGlossaryContext(raw, terms)

	assert.Contains(t, got, "- 林动: Lin Dong (Protagonist)")
	assert.Contains(t, got, "- 青元宗: Azure Origin Sect (No notes)")
	assert.NotContains(t, got, "玄铁剑")
}

func TestBuildGlossaryContext_CaseSensitive(t *testing.T) {
	terms := []*entity.GlossaryTerm{
		{SourceTerm: "QI", TargetTerm: "Qi Energy"},
	}

	got := BuildGlossaryContext("the qi flowed", terms)
	assert.Equal(t, EmptyGlossaryMarker, got)

	got = BuildGlossaryContext("the QI flowed", terms)
	assert.Equal(t, "- QI: Qi Energy (No notes)", got)
}

func TestBuildGlossaryContext_NoMatches(t *testing.T) {
	terms := []*entity.GlossaryTerm{
		{SourceTerm: "妖兽", TargetTerm: "Demon Beast"},
	}

	got := BuildGlossaryContext("平静的一天。", terms)
	assert.Equal(t, EmptyGlossaryMarker, got)
}

func TestBuildGlossaryContext_EmptyTermList(t *testing.T) {
	assert.Equal(t, EmptyGlossaryMarker, BuildGlossaryContext("任何文本", nil))
}

func TestBuildGlossaryContext_SkipsBlankSourceTerms(t *testing.T) {
	terms := []*entity.GlossaryTerm{
		nil,
		{SourceTerm: "", TargetTerm: "Nothing"},
		{SourceTerm: "林动", TargetTerm: "Lin Dong"},
	}

	got := BuildGlossaryContext("林动", terms)
	assert.Equal(t, "- 林动: Lin Dong (No notes)", got)
}

func TestBuildGlossaryContext_PreservesTermOrder(t *testing.T) {
	terms := []*entity.GlossaryTerm{
		{SourceTerm: "乙", TargetTerm: "Second"},
		{SourceTerm: "甲", TargetTerm: "First"},
	}

	got := BuildGlossaryContext("甲和乙都在。", terms)
	lines := strings.Split(got, "\n")
	assert.Equal(t, []string{
		"- 乙: Second (No notes)",
		"- 甲: First (No notes)",
	}, lines)
}
