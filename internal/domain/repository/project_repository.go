// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"ad-workflow-api/internal/domain/entity"
)

// ProjectFilter 项目过滤条件
type ProjectFilter struct {
	Status entity.ProjectStatus
	Search string
}

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// Create 创建项目
	Create(ctx context.Context, project *entity.Project) error

	// GetByID 根据 ID 获取项目
	GetByID(ctx context.Context, id string) (*entity.Project, error)

	// Update 更新项目
	Update(ctx context.Context, project *entity.Project) error

	// Delete 删除项目
	Delete(ctx context.Context, id string) error

	// List 获取项目列表
	List(ctx context.Context, filter *ProjectFilter, pagination Pagination) (*PagedResult[*entity.Project], error)

	// UpdateStatus 更新项目状态
	UpdateStatus(ctx context.Context, id string, status entity.ProjectStatus) error

	// IncrementPhase 在阶段号仍等于 from 时将其 +1（单条原子语句）
	// 未命中任何行返回 ErrPhaseMoved，调用方据此识别并发推进
	IncrementPhase(ctx context.Context, id string, from entity.Phase) error

	// CountVideos 统计项目下的视频数量
	CountVideos(ctx context.Context, id string) (int, error)
}
