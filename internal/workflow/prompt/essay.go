// Package prompt 构造作文生成的系统/用户指令
package prompt

import (
	"fmt"
	"strings"

	wfmodel "essay-ai-api/internal/workflow/model"
)

// wordsPerParagraphFloor / Ceil 控制段落数建议区间：
// 下界按 250 词/段，上界按 200 词/段。
const (
	wordsPerParagraphFloor = 250
	wordsPerParagraphCeil  = 200
)

// ParagraphBounds 根据目标字数计算段落数区间（均为向上取整）。
func ParagraphBounds(targetLength int) (lower, upper int) {
	if targetLength < 1 {
		targetLength = 1
	}
	lower = (targetLength + wordsPerParagraphFloor - 1) / wordsPerParagraphFloor
	upper = (targetLength + wordsPerParagraphCeil - 1) / wordsPerParagraphCeil
	if lower < 1 {
		lower = 1
	}
	if upper < lower {
		upper = lower
	}
	return lower, upper
}

// BuildSystemInstruction 返回固定的系统指令。
// 禁用破折号/省略号等标点是为了避免生成文本带有可识别的风格指纹。
func BuildSystemInstruction() string {
	var b strings.Builder
	b.WriteString("You are an experienced academic writer who produces essays that read like a thoughtful person wrote them.\n")
	b.WriteString("Write in a conversational but substantive register. Vary sentence length naturally: mix short, punchy sentences with longer, flowing ones.\n")
	b.WriteString("Never use em dashes, en dashes, or ellipses anywhere in the output. Use commas, periods, colons, or parentheses instead.\n")
	b.WriteString("Avoid formulaic transitions such as \"Moreover\", \"Furthermore\", \"In conclusion\" at the start of every paragraph. Let the structure emerge from the argument rather than from template phrases.\n")
	b.WriteString("Respond with valid JSON only, no commentary before or after it.")
	return b.String()
}

// BuildUserInstruction 根据生成参数拼装用户指令，纯函数。
func BuildUserInstruction(in *wfmodel.EssayGenerateInput) string {
	lower, upper := ParagraphBounds(in.TargetLength)

	var b strings.Builder
	fmt.Fprintf(&b, "Write a %s essay on the topic: %s\n\n", strings.TrimSpace(in.EssayType), strings.TrimSpace(in.Topic))
	fmt.Fprintf(&b, "Target length: approximately %d words.\n", in.TargetLength)
	fmt.Fprintf(&b, "Writing style: %s.\n", strings.TrimSpace(in.WritingStyle))
	fmt.Fprintf(&b, "Citation style: %s.\n", strings.TrimSpace(in.CitationStyle))
	fmt.Fprintf(&b, "Structure the body into %d to %d paragraphs.\n", lower, upper)

	if req := strings.TrimSpace(in.Requirements); req != "" {
		b.WriteString("\nAdditional requirements:\n")
		b.WriteString(req)
		b.WriteString("\n")
	}
	if src := strings.TrimSpace(in.Sources); src != "" {
		b.WriteString("\nSources to draw on:\n")
		b.WriteString(src)
		b.WriteString("\n")
	}

	b.WriteString("\nReturn a single JSON object with exactly this shape:\n")
	b.WriteString(`{"title": "...", "introduction": "...", "body_paragraphs": [{"heading": "optional", "content": "..."}], "conclusion": "...", "word_count": 0}`)
	b.WriteString("\nEvery body paragraph needs a content field; heading is optional. Do not wrap the JSON in markdown fences.")
	return b.String()
}
