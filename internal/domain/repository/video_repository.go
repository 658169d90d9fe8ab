// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"ad-workflow-api/internal/domain/entity"
)

// VideoRepository 视频仓储接口
type VideoRepository interface {
	// Create 创建视频
	Create(ctx context.Context, video *entity.Video) error

	// GetByID 根据 ID 获取视频
	GetByID(ctx context.Context, id string) (*entity.Video, error)

	// Update 更新视频
	Update(ctx context.Context, video *entity.Video) error

	// Delete 删除视频
	Delete(ctx context.Context, id string) error

	// ListByProject 获取项目下的全部视频（按创建时间升序）
	ListByProject(ctx context.Context, projectID string) ([]*entity.Video, error)

	// UpdatePhaseStatus 更新视频阶段状态
	UpdatePhaseStatus(ctx context.Context, id string, status entity.PhaseStatus) error

	// ResetForNextPhase 项目推进时批量重置：状态回 PENDENTE 并同步阶段号
	ResetForNextPhase(ctx context.Context, projectID string, phase entity.Phase) error

	// SetApproval 更新单个审批标志
	SetApproval(ctx context.Context, id string, field entity.ApprovalField, value bool) error
}
