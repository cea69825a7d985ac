package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	wfmodel "essay-ai-api/internal/workflow/model"
)

func TestParagraphBounds(t *testing.T) {
	cases := []struct {
		name   string
		length int
		lower  int
		upper  int
	}{
		{"five hundred words", 500, 2, 3},
		{"single word", 1, 1, 1},
		{"exactly one floor paragraph", 250, 1, 2},
		{"thousand words", 1000, 4, 5},
		{"two thousand words", 2000, 8, 10},
		{"zero clamps to one", 0, 1, 1},
		{"negative clamps to one", -10, 1, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lower, upper := ParagraphBounds(tc.length)
			assert.Equal(t, tc.lower, lower)
			assert.Equal(t, tc.upper, upper)
			assert.GreaterOrEqual(t, upper, lower)
			assert.GreaterOrEqual(t, lower, 1)
		})
	}
}

func TestBuildSystemInstruction_DemandsJSONOnly(t *testing.T) {
	sys := BuildSystemInstruction()

	assert.Contains(t, sys, "valid JSON only")
	assert.Contains(t, sys, "Never use em dashes")
	assert.Contains(t, sys, "Vary sentence length")
}

func TestBuildUserInstruction_EmbedsParameters(t *testing.T) {
	in := &wfmodel.EssayGenerateInput{
		Topic:         "The ethics of automation",
		EssayType:     "argumentative",
		WritingStyle:  "academic",
		CitationStyle: "APA",
		TargetLength:  500,
	}

	out := BuildUserInstruction(in)

	assert.Contains(t, out, "argumentative essay")
	assert.Contains(t, out, "The ethics of automation")
	assert.Contains(t, out, "approximately 500 words")
	assert.Contains(t, out, "Writing style: academic.")
	assert.Contains(t, out, "Citation style: APA.")
	assert.Contains(t, out, "2 to 3 paragraphs")
	assert.Contains(t, out, `"body_paragraphs"`)
	assert.NotContains(t, out, "Additional requirements")
	assert.NotContains(t, out, "Sources to draw on")
}

func TestBuildUserInstruction_IncludesOptionalSections(t *testing.T) {
	in := &wfmodel.EssayGenerateInput{
		Topic:         "Urban green spaces",
		EssayType:     "expository",
		WritingStyle:  "journalistic",
		CitationStyle: "MLA",
		TargetLength:  800,
		Requirements:  "Include at least one counterargument.",
		Sources:       "Jacobs, The Death and Life of Great American Cities",
	}

	out := BuildUserInstruction(in)

	assert.Contains(t, out, "Additional requirements:")
	assert.Contains(t, out, "Include at least one counterargument.")
	assert.Contains(t, out, "Sources to draw on:")
	assert.Contains(t, out, "Jacobs, The Death and Life")
}

func TestBuildUserInstruction_SchemaSurvivesVerbatim(t *testing.T) {
	in := &wfmodel.EssayGenerateInput{
		Topic:         "test",
		EssayType:     "narrative",
		WritingStyle:  "casual",
		CitationStyle: "none",
		TargetLength:  300,
	}

	out := BuildUserInstruction(in)

	// 模板里的 JSON 示例必须原样出现，花括号不能被格式化吃掉
	assert.True(t, strings.Contains(out, `{"title": "...", "introduction": "...",`))
	assert.Contains(t, out, `"conclusion": "...", "word_count": 0}`)
}
