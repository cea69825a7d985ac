// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"essay-ai-api/internal/domain/entity"
)

// LLMUsageEventRepository LLM 用量事件仓储接口
type LLMUsageEventRepository interface {
	// Create 记录一次 LLM 调用的用量
	Create(ctx context.Context, event *entity.LLMUsageEvent) error
}
