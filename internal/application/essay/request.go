// Package essay 实现作文生成管线：
// 参数校验 -> 指令构造 -> LLM 调用 -> 输出归一化 -> 文档装配 -> 尽力持久化
package essay

import (
	"fmt"
	"strings"
)

// GenerationRequest 一次作文生成的全部参数
type GenerationRequest struct {
	Topic         string
	EssayType     string
	WritingStyle  string
	CitationStyle string
	TargetLength  int
	Requirements  string
	Sources       string

	// UserID 由认证中间件带入，不来自请求体
	UserID string
}

// ValidationError 校验失败，记录缺失的字段名
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// Validate 校验必填字段，失败时返回 *ValidationError。
// 校验在任何外部调用之前执行，避免无效请求消耗配额。
func (r *GenerationRequest) Validate() error {
	missing := make([]string, 0, 4)
	if strings.TrimSpace(r.Topic) == "" {
		missing = append(missing, "topic")
	}
	if strings.TrimSpace(r.EssayType) == "" {
		missing = append(missing, "essayType")
	}
	if strings.TrimSpace(r.WritingStyle) == "" {
		missing = append(missing, "writingStyle")
	}
	if strings.TrimSpace(r.CitationStyle) == "" {
		missing = append(missing, "citationStyle")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	if r.TargetLength <= 0 {
		return &ValidationError{Missing: []string{"length"}}
	}
	return nil
}
