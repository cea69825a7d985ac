package essay

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"essay-ai-api/internal/domain/entity"
)

// BodySection 正文段落，heading 可为空
type BodySection struct {
	Heading string `json:"heading,omitempty"`
	Content string `json:"content"`
}

// NormalizedDocument 归一化后的文档结构，各字段均可缺失
type NormalizedDocument struct {
	Title        string        `json:"title,omitempty"`
	Introduction string        `json:"introduction,omitempty"`
	BodySections []BodySection `json:"body_sections,omitempty"`
	Conclusion   string        `json:"conclusion,omitempty"`
}

// Empty 所有字段均为空时文档不可用
func (d *NormalizedDocument) Empty() bool {
	if d == nil {
		return true
	}
	if strings.TrimSpace(d.Title) != "" || strings.TrimSpace(d.Introduction) != "" || strings.TrimSpace(d.Conclusion) != "" {
		return false
	}
	for i := range d.BodySections {
		if strings.TrimSpace(d.BodySections[i].Content) != "" {
			return false
		}
	}
	return true
}

// bodyListAliases 历史上出现过的段落列表字段名，按优先级排列。
// 别名只在归一化边界解析一次，下游统一走 BodySections。
var bodyListAliases = []string{
	"body_paragraphs",
	"bodyParagraphs",
	"body_sections",
	"paragraphs",
	"body",
}

// diagnosticHeading 兜底提取时包住原文的段落标题
const diagnosticHeading = "Unparsed generator output"

var (
	titleFieldRe    = regexp.MustCompile(`"title"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	whitespaceRunRe = regexp.MustCompile(`[ \t]{2,}`)
)

// Normalize 从模型原始输出恢复文档结构。
// 按序尝试：直接解析 -> 修复重解析 -> 字段提取 -> 原文直出；
// 任何输入都会返回一个文档和对应的恢复策略，不会失败。
func Normalize(raw string) (*NormalizedDocument, entity.RecoveryStrategy) {
	candidate := sliceJSONObject(raw)

	// 1. 直接解析（容忍 JSON 前后夹杂的多余文本）
	if candidate != "" {
		if doc, ok := parseDocument(candidate); ok && !doc.Empty() {
			return doc, entity.RecoveryDirect
		}

		// 2. 修复后重解析
		repaired := repairJSONText(candidate)
		if doc, ok := parseDocument(repaired); ok && !doc.Empty() {
			return doc, entity.RecoveryRepaired
		}
	}

	// 3. 按字段标记提取，至少保住标题，原文装入诊断块避免内容丢失
	if m := titleFieldRe.FindStringSubmatch(raw); m != nil {
		doc := &NormalizedDocument{
			Title: unescapeJSONString(m[1]),
			BodySections: []BodySection{
				{Heading: diagnosticHeading, Content: raw},
			},
		}
		return doc, entity.RecoveryFieldExtracted
	}

	// 4. 无法恢复任何结构，原文直出
	doc := &NormalizedDocument{
		BodySections: []BodySection{{Content: raw}},
	}
	return doc, entity.RecoveryUnstructured
}

// sliceJSONObject 截取首个 '{' 到末个 '}' 的片段。
// 找不到完整括号对时返回空串。
func sliceJSONObject(s string) string {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return ""
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

// parseDocument 严格解析 JSON 并按别名表解析段落列表
func parseDocument(data string) (*NormalizedDocument, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &obj); err != nil {
		return nil, false
	}

	doc := &NormalizedDocument{
		Title:        stringField(obj, "title"),
		Introduction: stringField(obj, "introduction"),
		Conclusion:   stringField(obj, "conclusion"),
		BodySections: resolveBodySections(obj),
	}
	return doc, true
}

// resolveBodySections 按优先级取第一个存在且非 null 的段落列表别名
func resolveBodySections(obj map[string]json.RawMessage) []BodySection {
	for _, alias := range bodyListAliases {
		rawList, ok := obj[alias]
		if !ok || isJSONNull(rawList) {
			continue
		}
		if sections, ok := decodeSections(rawList); ok {
			return sections
		}
	}
	return []BodySection{}
}

// decodeSections 解析段落列表，兼容对象数组与纯字符串数组两种形态
func decodeSections(raw json.RawMessage) ([]BodySection, bool) {
	var sections []BodySection
	if err := json.Unmarshal(raw, &sections); err == nil {
		return sections, true
	}

	var plain []string
	if err := json.Unmarshal(raw, &plain); err == nil {
		sections = make([]BodySection, 0, len(plain))
		for _, p := range plain {
			sections = append(sections, BodySection{Content: p})
		}
		return sections, true
	}
	return nil, false
}

func stringField(obj map[string]json.RawMessage, key string) string {
	raw, ok := obj[key]
	if !ok || isJSONNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func isJSONNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}

// repairJSONText 对同一片段做固定顺序的文本修复：
// 还原双写的转义符，合并双写引号，把裸换行/制表符压成空格
func repairJSONText(s string) string {
	s = strings.ReplaceAll(s, `\\`, `\`)
	s = strings.ReplaceAll(s, `""`, `"`)
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	s = whitespaceRunRe.ReplaceAllString(s, " ")
	return s
}

// unescapeJSONString 处理提取模式下的常见转义，失败时原样返回
func unescapeJSONString(s string) string {
	var out string
	if err := json.Unmarshal([]byte(`"`+s+`"`), &out); err != nil {
		return s
	}
	return out
}
