// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"ad-workflow-api/internal/domain/entity"
)

// PackImageRepository 项目图包仓储接口
type PackImageRepository interface {
	// Create 挂载图片
	Create(ctx context.Context, image *entity.PackImage) error

	// GetByID 根据 ID 获取图片
	GetByID(ctx context.Context, id string) (*entity.PackImage, error)

	// ListByProject 获取项目图包的全部图片（按创建时间升序）
	ListByProject(ctx context.Context, projectID string) ([]*entity.PackImage, error)

	// Delete 移除图片
	Delete(ctx context.Context, id string) error
}
