package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ad-workflow-api/internal/domain/entity"
)

// PackImageRepository 项目图包仓储实现
type PackImageRepository struct {
	client *Client
}

// NewPackImageRepository 创建图包仓储
func NewPackImageRepository(client *Client) *PackImageRepository {
	return &PackImageRepository{client: client}
}

// Create 挂载图片
func (r *PackImageRepository) Create(ctx context.Context, image *entity.PackImage) error {
	ctx, span := tracer.Start(ctx, "postgres.PackImageRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	err := q.QueryRowContext(ctx,
		`INSERT INTO pack_images (id, project_id, file_id, caption, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING created_at`,
		image.ID, image.ProjectID, image.FileID, nullString(image.Caption),
	).Scan(&image.CreatedAt)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create pack image: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取图片
func (r *PackImageRepository) GetByID(ctx context.Context, id string) (*entity.PackImage, error) {
	ctx, span := tracer.Start(ctx, "postgres.PackImageRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	var image entity.PackImage
	var caption sql.NullString
	err := q.QueryRowContext(ctx,
		`SELECT id, project_id, file_id, caption, created_at FROM pack_images WHERE id = $1`, id,
	).Scan(&image.ID, &image.ProjectID, &image.FileID, &caption, &image.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get pack image: %w", err)
	}
	image.Caption = caption.String
	return &image, nil
}

// ListByProject 获取项目图包的全部图片（按创建时间升序）
func (r *PackImageRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.PackImage, error) {
	ctx, span := tracer.Start(ctx, "postgres.PackImageRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	rows, err := q.QueryContext(ctx,
		`SELECT id, project_id, file_id, caption, created_at FROM pack_images
		 WHERE project_id = $1 ORDER BY created_at ASC`, projectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list pack images: %w", err)
	}
	defer rows.Close()

	var images []*entity.PackImage
	for rows.Next() {
		var image entity.PackImage
		var caption sql.NullString
		if err := rows.Scan(&image.ID, &image.ProjectID, &image.FileID, &caption, &image.CreatedAt); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan pack image: %w", err)
		}
		image.Caption = caption.String
		images = append(images, &image)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate pack images: %w", err)
	}
	return images, nil
}

// Delete 移除图片
func (r *PackImageRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.PackImageRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM pack_images WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete pack image: %w", err)
	}
	return nil
}
