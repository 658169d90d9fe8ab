package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ad-workflow-api/internal/domain/entity"
)

// DeliverableRepository 素材仓储实现
type DeliverableRepository struct {
	client *Client
}

// NewDeliverableRepository 创建素材仓储
func NewDeliverableRepository(client *Client) *DeliverableRepository {
	return &DeliverableRepository{client: client}
}

const deliverableColumns = `id, video_id, hook_number, file_id, duration, size, shows_product,
	hook_description, ad_number, numbered_at, generated_name, edited_name, version_number,
	is_post, created_at, updated_at`

// Create 创建素材
func (r *DeliverableRepository) Create(ctx context.Context, deliverable *entity.Deliverable) error {
	ctx, span := tracer.Start(ctx, "postgres.DeliverableRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO deliverables (id, video_id, hook_number, file_id, duration, size,
			shows_product, hook_description, version_number, is_post, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		deliverable.ID, deliverable.VideoID, deliverable.HookNumber,
		nullString(deliverable.FileID), deliverable.Duration, deliverable.Size,
		deliverable.ShowsProduct, nullString(deliverable.HookDescription),
		deliverable.VersionNumber, deliverable.IsPost,
	).Scan(&deliverable.CreatedAt, &deliverable.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create deliverable: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取素材
func (r *DeliverableRepository) GetByID(ctx context.Context, id string) (*entity.Deliverable, error) {
	ctx, span := tracer.Start(ctx, "postgres.DeliverableRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `SELECT ` + deliverableColumns + ` FROM deliverables WHERE id = $1`

	deliverable, err := scanDeliverable(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get deliverable: %w", err)
	}
	return deliverable, nil
}

// Update 更新素材
func (r *DeliverableRepository) Update(ctx context.Context, deliverable *entity.Deliverable) error {
	ctx, span := tracer.Start(ctx, "postgres.DeliverableRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE deliverables
		SET file_id = $1, duration = $2, size = $3, shows_product = $4, hook_description = $5,
			edited_name = $6, version_number = $7, is_post = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`

	err := q.QueryRowContext(ctx, query,
		nullString(deliverable.FileID), deliverable.Duration, deliverable.Size,
		deliverable.ShowsProduct, nullString(deliverable.HookDescription),
		nullString(deliverable.EditedName), deliverable.VersionNumber,
		deliverable.IsPost, deliverable.ID,
	).Scan(&deliverable.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("deliverable not found: %s", deliverable.ID)
		}
		span.RecordError(err)
		return fmt.Errorf("failed to update deliverable: %w", err)
	}
	return nil
}

// Delete 删除素材
func (r *DeliverableRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.DeliverableRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM deliverables WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete deliverable: %w", err)
	}
	return nil
}

// ListByVideo 获取视频的全部素材（按 hookNumber 升序）
func (r *DeliverableRepository) ListByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error) {
	return r.list(ctx, "postgres.DeliverableRepository.ListByVideo",
		`SELECT `+deliverableColumns+` FROM deliverables WHERE video_id = $1 ORDER BY hook_number ASC`,
		videoID)
}

// ListUnnumberedByVideo 获取视频内尚未编号的素材（按 hookNumber 升序）
func (r *DeliverableRepository) ListUnnumberedByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error) {
	return r.list(ctx, "postgres.DeliverableRepository.ListUnnumberedByVideo",
		`SELECT `+deliverableColumns+` FROM deliverables
		 WHERE video_id = $1 AND ad_number IS NULL ORDER BY hook_number ASC`,
		videoID)
}

func (r *DeliverableRepository) list(ctx context.Context, spanName, query string, args ...interface{}) ([]*entity.Deliverable, error) {
	ctx, span := tracer.Start(ctx, spanName)
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list deliverables: %w", err)
	}
	defer rows.Close()

	var deliverables []*entity.Deliverable
	for rows.Next() {
		deliverable, err := scanDeliverable(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan deliverable: %w", err)
		}
		deliverables = append(deliverables, deliverable)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate deliverables: %w", err)
	}
	return deliverables, nil
}

// SetAdNumber 写入已分配的 AD number 并记录编号时刻
// 已编号素材不可重写
func (r *DeliverableRepository) SetAdNumber(ctx context.Context, id string, adNumber int) error {
	ctx, span := tracer.Start(ctx, "postgres.DeliverableRepository.SetAdNumber")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	res, err := q.ExecContext(ctx,
		`UPDATE deliverables SET ad_number = $1, numbered_at = NOW(), updated_at = NOW()
		 WHERE id = $2 AND ad_number IS NULL`, adNumber, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set ad number: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("deliverable not found or already numbered: %s", id)
	}
	return nil
}

// SetGeneratedName 写入自动生成的命名（不触碰人工编辑命名）
func (r *DeliverableRepository) SetGeneratedName(ctx context.Context, id string, name string) error {
	ctx, span := tracer.Start(ctx, "postgres.DeliverableRepository.SetGeneratedName")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	res, err := q.ExecContext(ctx,
		`UPDATE deliverables SET generated_name = $1, updated_at = NOW() WHERE id = $2`, name, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set generated name: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("deliverable not found: %s", id)
	}
	return nil
}

func scanDeliverable(row rowScanner) (*entity.Deliverable, error) {
	var d entity.Deliverable
	var fileID, hookDescription, generatedName, editedName sql.NullString
	var adNumber sql.NullInt32
	var numberedAt sql.NullTime

	err := row.Scan(
		&d.ID, &d.VideoID, &d.HookNumber, &fileID, &d.Duration, &d.Size, &d.ShowsProduct,
		&hookDescription, &adNumber, &numberedAt, &generatedName, &editedName,
		&d.VersionNumber, &d.IsPost, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.FileID = fileID.String
	d.HookDescription = hookDescription.String
	d.GeneratedName = generatedName.String
	d.EditedName = editedName.String
	if adNumber.Valid {
		n := int(adNumber.Int32)
		d.AdNumber = &n
	}
	if numberedAt.Valid {
		d.NumberedAt = &numberedAt.Time
	}
	return &d, nil
}
