package essay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"essay-ai-api/internal/domain/entity"
)

func TestNormalize_CleanJSON(t *testing.T) {
	raw := `{"title": "Ritual", "introduction": "Intro.", "body_paragraphs": [{"heading": "Habit", "content": "Body one."}, {"content": "Body two."}], "conclusion": "Done.", "word_count": 480}`

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryDirect, strategy)
	assert.Equal(t, "Ritual", doc.Title)
	assert.Equal(t, "Intro.", doc.Introduction)
	assert.Equal(t, "Done.", doc.Conclusion)
	require.Len(t, doc.BodySections, 2)
	assert.Equal(t, "Habit", doc.BodySections[0].Heading)
	assert.Equal(t, "Body one.", doc.BodySections[0].Content)
	assert.Empty(t, doc.BodySections[1].Heading)
}

func TestNormalize_JSONWrappedInProse(t *testing.T) {
	raw := "Here is your essay:\n" +
		`{"title": "Tides", "introduction": "The sea moves.", "body_paragraphs": [{"content": "Waves."}], "conclusion": "It rests."}` +
		"\nHope this helps!"

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryDirect, strategy)
	assert.Equal(t, "Tides", doc.Title)
	assert.Equal(t, "The sea moves.", doc.Introduction)
}

func TestNormalize_BodyListAliases(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"camelCase", `{"title": "T", "bodyParagraphs": [{"content": "p"}]}`},
		{"body_sections", `{"title": "T", "body_sections": [{"content": "p"}]}`},
		{"paragraphs", `{"title": "T", "paragraphs": [{"content": "p"}]}`},
		{"plain body", `{"title": "T", "body": [{"content": "p"}]}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc, strategy := Normalize(tc.raw)

			assert.Equal(t, entity.RecoveryDirect, strategy)
			require.Len(t, doc.BodySections, 1)
			assert.Equal(t, "p", doc.BodySections[0].Content)
		})
	}
}

func TestNormalize_CanonicalAliasWins(t *testing.T) {
	raw := `{"title": "T", "body_paragraphs": [{"content": "canonical"}], "body": ["fallback"]}`

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryDirect, strategy)
	require.Len(t, doc.BodySections, 1)
	assert.Equal(t, "canonical", doc.BodySections[0].Content)
}

func TestNormalize_StringArrayBody(t *testing.T) {
	raw := `{"title": "T", "body": ["para one", "para two"]}`

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryDirect, strategy)
	require.Len(t, doc.BodySections, 2)
	assert.Equal(t, "para one", doc.BodySections[0].Content)
	assert.Empty(t, doc.BodySections[0].Heading)
}

func TestNormalize_NullBodyListTolerated(t *testing.T) {
	raw := `{"title": "T", "introduction": "I", "body_paragraphs": null}`

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryDirect, strategy)
	assert.Empty(t, doc.BodySections)
}

func TestNormalize_RepairsDoubledBackslashes(t *testing.T) {
	raw := `{"title": "He said \\"hello\\" to me", "introduction": "ok"}`

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryRepaired, strategy)
	assert.Equal(t, `He said "hello" to me`, doc.Title)
	assert.Equal(t, "ok", doc.Introduction)
}

func TestNormalize_RepairsRawNewlineInString(t *testing.T) {
	raw := "{\"title\": \"Ritual\nand habit\", \"introduction\": \"ok\"}"

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryRepaired, strategy)
	assert.Equal(t, "Ritual and habit", doc.Title)
}

func TestNormalize_TruncatedJSONFallsToFieldExtraction(t *testing.T) {
	raw := `{"title": "Memory and place", "introduction": "It began when`

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryFieldExtracted, strategy)
	assert.Equal(t, "Memory and place", doc.Title)
	// 原文完整装入诊断块，内容不丢失
	require.Len(t, doc.BodySections, 1)
	assert.Equal(t, "Unparsed generator output", doc.BodySections[0].Heading)
	assert.Equal(t, raw, doc.BodySections[0].Content)
}

func TestNormalize_FieldExtractionUnescapesTitle(t *testing.T) {
	raw := `"title": "The \"long\" road", no braces anywhere here`

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryFieldExtracted, strategy)
	assert.Equal(t, `The "long" road`, doc.Title)
}

func TestNormalize_PlainProseIsVerbatim(t *testing.T) {
	raw := "The essay begins with a quiet observation about morning light."

	doc, strategy := Normalize(raw)

	assert.Equal(t, entity.RecoveryUnstructured, strategy)
	assert.Empty(t, doc.Title)
	require.Len(t, doc.BodySections, 1)
	assert.Equal(t, raw, doc.BodySections[0].Content)
}

func TestNormalize_EmptyInput(t *testing.T) {
	doc, strategy := Normalize("")

	assert.Equal(t, entity.RecoveryUnstructured, strategy)
	require.Len(t, doc.BodySections, 1)
	assert.Empty(t, doc.BodySections[0].Content)
}

func TestNormalize_EmptyObjectIsVerbatim(t *testing.T) {
	raw := "{}"

	doc, strategy := Normalize(raw)

	// 解析成功但全字段为空等同解析失败
	assert.Equal(t, entity.RecoveryUnstructured, strategy)
	require.Len(t, doc.BodySections, 1)
	assert.Equal(t, raw, doc.BodySections[0].Content)
}

func TestNormalizedDocument_Empty(t *testing.T) {
	assert.True(t, (*NormalizedDocument)(nil).Empty())
	assert.True(t, (&NormalizedDocument{}).Empty())
	assert.True(t, (&NormalizedDocument{BodySections: []BodySection{{Content: "  "}}}).Empty())
	assert.False(t, (&NormalizedDocument{Title: "t"}).Empty())
	assert.False(t, (&NormalizedDocument{BodySections: []BodySection{{Content: "x"}}}).Empty())
}
