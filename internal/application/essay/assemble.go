package essay

import (
	"strings"
	"unicode/utf8"
)

// AssembledEssay 装配完成的作文，创建后不再修改
type AssembledEssay struct {
	Content        string
	WordCount      int
	CharacterCount int
}

// Assemble 把归一化文档装配成 Markdown 文本并计算两个计数。
// 顺序固定：标题 -> 引言 -> 正文段落 -> 结论；缺失的部分不产生空块。
// 计数一律从装配结果重新计算，上游回传的 word_count 仅作参考，从不采信。
func Assemble(doc *NormalizedDocument) AssembledEssay {
	if doc == nil {
		return AssembledEssay{}
	}

	blocks := make([]string, 0, 4+2*len(doc.BodySections))
	visible := make([]string, 0, cap(blocks))

	if title := strings.TrimSpace(doc.Title); title != "" {
		blocks = append(blocks, "# "+title)
		visible = append(visible, title)
	}
	if strings.TrimSpace(doc.Introduction) != "" {
		blocks = append(blocks, doc.Introduction)
		visible = append(visible, doc.Introduction)
	}
	for i := range doc.BodySections {
		heading := strings.TrimSpace(doc.BodySections[i].Heading)
		content := doc.BodySections[i].Content
		if heading != "" {
			blocks = append(blocks, "## "+heading)
			visible = append(visible, heading)
		}
		// 段落内容保持原样，原文直出场景下不能改写上游文本
		if strings.TrimSpace(content) != "" {
			blocks = append(blocks, content)
			visible = append(visible, content)
		}
	}
	if strings.TrimSpace(doc.Conclusion) != "" {
		blocks = append(blocks, doc.Conclusion)
		visible = append(visible, doc.Conclusion)
	}

	content := strings.Join(blocks, "\n\n")
	return AssembledEssay{
		Content:        content,
		WordCount:      countWords(visible),
		CharacterCount: utf8.RuneCountInString(content),
	}
}

// countWords 统计可见文本中按空白分隔的非空词元
func countWords(parts []string) int {
	n := 0
	for _, p := range parts {
		n += len(strings.Fields(p))
	}
	return n
}
