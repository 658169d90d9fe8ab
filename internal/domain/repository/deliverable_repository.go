// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"ad-workflow-api/internal/domain/entity"
)

// DeliverableRepository 素材仓储接口
type DeliverableRepository interface {
	// Create 创建素材
	Create(ctx context.Context, deliverable *entity.Deliverable) error

	// GetByID 根据 ID 获取素材
	GetByID(ctx context.Context, id string) (*entity.Deliverable, error)

	// Update 更新素材
	Update(ctx context.Context, deliverable *entity.Deliverable) error

	// Delete 删除素材
	Delete(ctx context.Context, id string) error

	// ListByVideo 获取视频的全部素材（按 hookNumber 升序）
	ListByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error)

	// ListUnnumberedByVideo 获取视频内尚未编号的素材（按 hookNumber 升序）
	ListUnnumberedByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error)

	// SetAdNumber 写入已分配的 AD number
	SetAdNumber(ctx context.Context, id string, adNumber int) error

	// SetGeneratedName 写入自动生成的命名（不触碰人工编辑命名）
	SetGeneratedName(ctx context.Context, id string, name string) error
}
