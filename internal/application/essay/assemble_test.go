package essay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssemble_FullDocument(t *testing.T) {
	doc := &NormalizedDocument{
		Title:        "Ritual",
		Introduction: "Morning starts slow.",
		BodySections: []BodySection{
			{Heading: "Habit", Content: "First body."},
			{Content: "Second body."},
		},
		Conclusion: "It ends.",
	}

	out := Assemble(doc)

	expected := "# Ritual\n\n" +
		"Morning starts slow.\n\n" +
		"## Habit\n\n" +
		"First body.\n\n" +
		"Second body.\n\n" +
		"It ends."
	assert.Equal(t, expected, out.Content)
}

func TestAssemble_SkipsMissingParts(t *testing.T) {
	doc := &NormalizedDocument{
		Introduction: "Only an introduction.",
	}

	out := Assemble(doc)

	assert.Equal(t, "Only an introduction.", out.Content)
	assert.NotContains(t, out.Content, "#")
	assert.NotContains(t, out.Content, "\n\n\n")
}

func TestAssemble_VerbatimPassthrough(t *testing.T) {
	// 原文直出场景：装配结果必须与原文逐字节一致
	raw := "  The essay, exactly as the model wrote it.\nWith its own line breaks.  "
	doc := &NormalizedDocument{
		BodySections: []BodySection{{Content: raw}},
	}

	out := Assemble(doc)

	assert.Equal(t, raw, out.Content)
}

func TestAssemble_CountsRecomputedFromContent(t *testing.T) {
	doc := &NormalizedDocument{
		Title:        "Two Words",
		Introduction: "three more words here",
	}

	out := Assemble(doc)

	// 可见文本共 6 词，标记字符不计词
	assert.Equal(t, 6, out.WordCount)
	assert.Equal(t, len([]rune(out.Content)), out.CharacterCount)
}

func TestAssemble_CharacterCountIsRunes(t *testing.T) {
	doc := &NormalizedDocument{
		Introduction: "café naïve",
	}

	out := Assemble(doc)

	assert.Equal(t, 10, out.CharacterCount)
	assert.Less(t, out.CharacterCount, len(out.Content))
}

func TestAssemble_NilDocument(t *testing.T) {
	out := Assemble(nil)

	assert.Empty(t, out.Content)
	assert.Zero(t, out.WordCount)
	assert.Zero(t, out.CharacterCount)
}

func TestAssemble_Deterministic(t *testing.T) {
	doc := &NormalizedDocument{
		Title:        "Stable",
		Introduction: "Same in, same out.",
		BodySections: []BodySection{{Content: "Body."}},
		Conclusion:   "End.",
	}

	first := Assemble(doc)
	second := Assemble(doc)

	assert.Equal(t, first, second)
}

func TestAssemble_BlankSectionsProduceNoEmptyBlocks(t *testing.T) {
	doc := &NormalizedDocument{
		Title: "T",
		BodySections: []BodySection{
			{Heading: "  ", Content: "   "},
			{Content: "Real content."},
		},
	}

	out := Assemble(doc)

	assert.Equal(t, "# T\n\nReal content.", out.Content)
	for _, block := range strings.Split(out.Content, "\n\n") {
		assert.NotEmpty(t, strings.TrimSpace(block))
	}
}
