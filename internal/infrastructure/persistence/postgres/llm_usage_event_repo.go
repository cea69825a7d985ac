package postgres

import (
	"context"
	"fmt"
	"time"

	"essay-ai-api/internal/domain/entity"
)

type LLMUsageEventRepository struct {
	client *Client
}

func NewLLMUsageEventRepository(client *Client) *LLMUsageEventRepository {
	return &LLMUsageEventRepository{client: client}
}

func (r *LLMUsageEventRepository) Create(ctx context.Context, event *entity.LLMUsageEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.LLMUsageEventRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create llm usage event: %w", err)
	}
	return nil
}

// GetTokenUsage 统计用户在时间窗口内消耗的 token 总量
func (r *LLMUsageEventRepository) GetTokenUsage(ctx context.Context, userID string, startInclusive, endExclusive time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.LLMUsageEventRepository.GetTokenUsage")
	defer span.End()

	var total int64
	if err := r.client.db.WithContext(ctx).Model(&entity.LLMUsageEvent{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, startInclusive, endExclusive).
		Select("COALESCE(SUM(COALESCE(tokens_prompt,0) + COALESCE(tokens_completion,0)),0)").
		Scan(&total).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to get llm usage: %w", err)
	}
	return total, nil
}
