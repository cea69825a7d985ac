package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"essay-ai-api/internal/domain/entity"
	"essay-ai-api/internal/domain/repository"
)

// EssayRepository 作文仓储实现
type EssayRepository struct {
	client *Client
}

// NewEssayRepository 创建作文仓储
func NewEssayRepository(client *Client) *EssayRepository {
	return &EssayRepository{client: client}
}

// Create 保存作文记录，ID 由数据库生成并回填
func (r *EssayRepository) Create(ctx context.Context, essay *entity.Essay) error {
	ctx, span := tracer.Start(ctx, "postgres.EssayRepository.Create")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Create(essay).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create essay: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取作文，未找到时返回 (nil, nil)
func (r *EssayRepository) GetByID(ctx context.Context, id string) (*entity.Essay, error) {
	ctx, span := tracer.Start(ctx, "postgres.EssayRepository.GetByID")
	defer span.End()

	var essay entity.Essay
	if err := r.client.db.WithContext(ctx).First(&essay, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get essay: %w", err)
	}
	return &essay, nil
}

// ListByUser 获取用户的作文列表，按创建时间倒序
func (r *EssayRepository) ListByUser(ctx context.Context, userID string, pagination repository.Pagination) (*repository.PagedResult[*entity.Essay], error) {
	ctx, span := tracer.Start(ctx, "postgres.EssayRepository.ListByUser")
	defer span.End()

	query := r.client.db.WithContext(ctx).Model(&entity.Essay{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count essays: %w", err)
	}

	var essays []*entity.Essay
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&essays).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list essays: %w", err)
	}

	return repository.NewPagedResult(essays, total, pagination), nil
}

// UpdateHumanized 更新人性化标记
func (r *EssayRepository) UpdateHumanized(ctx context.Context, id string, humanized bool) error {
	ctx, span := tracer.Start(ctx, "postgres.EssayRepository.UpdateHumanized")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Model(&entity.Essay{}).
		Where("id = ?", id).
		Update("humanized", humanized).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update essay humanized flag: %w", err)
	}
	return nil
}

// Delete 删除作文
func (r *EssayRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.EssayRepository.Delete")
	defer span.End()

	if err := r.client.db.WithContext(ctx).Delete(&entity.Essay{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete essay: %w", err)
	}
	return nil
}
