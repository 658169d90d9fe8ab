// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"ad-workflow-api/internal/domain/entity"
)

// AreaRepository 区域/成员资格查询接口（权限矩阵的只读依赖）
type AreaRepository interface {
	// ListActiveBySlugs 解析 slug 列表为活跃区域
	ListActiveBySlugs(ctx context.Context, slugs []string) ([]*entity.Area, error)

	// HasMembership 检查用户在任一区域内是否持有指定职级之一
	HasMembership(ctx context.Context, userID string, areaIDs []string, positions []entity.AreaPosition) (bool, error)
}
