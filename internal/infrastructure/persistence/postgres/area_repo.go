package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"

	"ad-workflow-api/internal/domain/entity"
)

// AreaRepository 区域/成员资格仓储实现
type AreaRepository struct {
	client *Client
}

// NewAreaRepository 创建区域仓储
func NewAreaRepository(client *Client) *AreaRepository {
	return &AreaRepository{client: client}
}

// ListActiveBySlugs 解析 slug 列表为活跃区域
func (r *AreaRepository) ListActiveBySlugs(ctx context.Context, slugs []string) ([]*entity.Area, error) {
	ctx, span := tracer.Start(ctx, "postgres.AreaRepository.ListActiveBySlugs")
	defer span.End()

	if len(slugs) == 0 {
		return nil, nil
	}

	q := getQuerier(ctx, r.client.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, name, slug, is_active, created_at FROM areas
		 WHERE slug = ANY($1) AND is_active = true`, pq.Array(slugs))
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list areas: %w", err)
	}
	defer rows.Close()

	var areas []*entity.Area
	for rows.Next() {
		var area entity.Area
		if err := rows.Scan(&area.ID, &area.Name, &area.Slug, &area.IsActive, &area.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		areas = append(areas, &area)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate areas: %w", err)
	}
	return areas, nil
}

// HasMembership 检查用户在任一区域内是否持有指定职级之一
func (r *AreaRepository) HasMembership(ctx context.Context, userID string, areaIDs []string, positions []entity.AreaPosition) (bool, error) {
	ctx, span := tracer.Start(ctx, "postgres.AreaRepository.HasMembership")
	defer span.End()

	if len(areaIDs) == 0 || len(positions) == 0 {
		return false, nil
	}

	q := getQuerier(ctx, r.client.db)

	positionValues := make([]string, len(positions))
	for i, p := range positions {
		positionValues[i] = string(p)
	}

	var exists bool
	err := q.QueryRowContext(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM area_members
			WHERE user_id = $1 AND area_id = ANY($2) AND position = ANY($3)
		)`, userID, pq.Array(areaIDs), pq.Array(positionValues)).Scan(&exists)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check area membership: %w", err)
	}
	return exists, nil
}
