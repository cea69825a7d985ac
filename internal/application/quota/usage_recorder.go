// Package quota 提供 LLM 用量记账
package quota

import (
	"context"
	"fmt"
	"strings"

	"essay-ai-api/internal/domain/entity"
	"essay-ai-api/internal/domain/repository"
)

// LLMUsageInput 一次 LLM 调用的用量信息
type LLMUsageInput struct {
	UserID           string
	Provider         string
	Model            string
	Workflow         string
	PromptTokens     int
	CompletionTokens int
	DurationMs       int
}

// UsageRecorder 用量记录器，写入失败不向上传播
type UsageRecorder struct {
	usageRepo repository.LLMUsageEventRepository
}

func NewUsageRecorder(usageRepo repository.LLMUsageEventRepository) *UsageRecorder {
	return &UsageRecorder{usageRepo: usageRepo}
}

func (r *UsageRecorder) Record(ctx context.Context, in LLMUsageInput) error {
	if r == nil || r.usageRepo == nil {
		return nil
	}

	userID := strings.TrimSpace(in.UserID)
	if userID == "" {
		return nil
	}
	if in.PromptTokens < 0 || in.CompletionTokens < 0 {
		return fmt.Errorf("invalid token usage")
	}

	evt := &entity.LLMUsageEvent{
		UserID:           userID,
		Provider:         strings.TrimSpace(in.Provider),
		Model:            strings.TrimSpace(in.Model),
		Workflow:         strings.TrimSpace(in.Workflow),
		TokensPrompt:     in.PromptTokens,
		TokensCompletion: in.CompletionTokens,
		DurationMs:       in.DurationMs,
	}
	_ = r.usageRepo.Create(ctx, evt)
	return nil
}
