// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"essay-ai-api/internal/domain/entity"
)

// EssayRepository 作文仓储接口
type EssayRepository interface {
	// Create 保存作文记录，返回存储分配的 ID
	Create(ctx context.Context, essay *entity.Essay) error

	// GetByID 根据 ID 获取作文
	GetByID(ctx context.Context, id string) (*entity.Essay, error)

	// ListByUser 获取用户的作文列表（按创建时间倒序）
	ListByUser(ctx context.Context, userID string, pagination Pagination) (*PagedResult[*entity.Essay], error)

	// UpdateHumanized 更新人性化标记
	UpdateHumanized(ctx context.Context, id string, humanized bool) error

	// Delete 删除作文
	Delete(ctx context.Context, id string) error
}
