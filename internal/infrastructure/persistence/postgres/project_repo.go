// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
)

// ProjectRepository 项目仓储实现
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository 创建项目仓储
func NewProjectRepository(client *Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

const projectColumns = `id, title, briefing, ad_type_id, origin_id, origin_code, status,
	current_phase, includes_photo_pack, deadline, priority, created_by_id, created_at, updated_at`

// Create 创建项目
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO projects (id, title, briefing, ad_type_id, origin_id, origin_code, status,
			current_phase, includes_photo_pack, deadline, priority, created_by_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	var deadline sql.NullTime
	if project.Deadline != nil {
		deadline = sql.NullTime{Time: *project.Deadline, Valid: true}
	}

	err := q.QueryRowContext(ctx, query,
		project.ID, project.Title, project.Briefing, nullString(project.AdTypeID),
		nullString(project.OriginID), nullString(project.OriginCode), project.Status,
		int(project.CurrentPhase), project.IncludesPhotoPack, deadline,
		project.Priority, project.CreatedByID,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取项目
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	project, err := scanProject(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return project, nil
}

// Update 更新项目
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE projects
		SET title = $1, briefing = $2, ad_type_id = $3, origin_id = $4, origin_code = $5,
			status = $6, includes_photo_pack = $7, deadline = $8, priority = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING updated_at
	`

	var deadline sql.NullTime
	if project.Deadline != nil {
		deadline = sql.NullTime{Time: *project.Deadline, Valid: true}
	}

	err := q.QueryRowContext(ctx, query,
		project.Title, project.Briefing, nullString(project.AdTypeID),
		nullString(project.OriginID), nullString(project.OriginCode), project.Status,
		project.IncludesPhotoPack, deadline, project.Priority, project.ID,
	).Scan(&project.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("project not found: %s", project.ID)
		}
		span.RecordError(err)
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// Delete 删除项目
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete project: %w", err)
	}
	return nil
}

// List 获取项目列表
func (r *ProjectRepository) List(ctx context.Context, filter *repository.ProjectFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.List")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	where := ` WHERE 1=1`
	args := []interface{}{}
	idx := 1
	if filter != nil {
		if filter.Status != "" {
			where += fmt.Sprintf(" AND status = $%d", idx)
			args = append(args, filter.Status)
			idx++
		}
		if filter.Search != "" {
			where += fmt.Sprintf(" AND title ILIKE $%d", idx)
			args = append(args, "%"+filter.Search+"%")
			idx++
		}
	}

	var total int64
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`+where, args...).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	query := `SELECT ` + projectColumns + ` FROM projects` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, pagination.Limit(), pagination.Offset())

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var items []*entity.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		items = append(items, project)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return repository.NewPagedResult(items, total, pagination), nil
}

// UpdateStatus 更新项目状态
func (r *ProjectRepository) UpdateStatus(ctx context.Context, id string, status entity.ProjectStatus) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.UpdateStatus")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	res, err := q.ExecContext(ctx,
		`UPDATE projects SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update project status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project not found: %s", id)
	}
	return nil
}

// IncrementPhase 在阶段号仍等于 from 时将其 +1
// 条件写入：并发事务先行提交后 WHERE 不再命中，返回 ErrPhaseMoved，
// read-committed 下两次推进竞争时败者整个事务回滚
func (r *ProjectRepository) IncrementPhase(ctx context.Context, id string, from entity.Phase) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.IncrementPhase")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	res, err := q.ExecContext(ctx,
		`UPDATE projects SET current_phase = current_phase + 1, updated_at = NOW()
		 WHERE id = $1 AND current_phase = $2 AND current_phase < 6`, id, int(from))
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to increment project phase: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return repository.ErrPhaseMoved
	}
	return nil
}

// CountVideos 统计项目下的视频数量
func (r *ProjectRepository) CountVideos(ctx context.Context, id string) (int, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.CountVideos")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	var count int
	if err := q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM videos WHERE project_id = $1`, id).Scan(&count); err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return count, nil
}

// rowScanner QueryRow 与 Rows 共用的扫描接口
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProject(row rowScanner) (*entity.Project, error) {
	var project entity.Project
	var adTypeID, originID, originCode sql.NullString
	var deadline sql.NullTime
	var phase int

	err := row.Scan(
		&project.ID, &project.Title, &project.Briefing, &adTypeID, &originID, &originCode,
		&project.Status, &phase, &project.IncludesPhotoPack, &deadline, &project.Priority,
		&project.CreatedByID, &project.CreatedAt, &project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	project.CurrentPhase = entity.Phase(phase)
	project.AdTypeID = adTypeID.String
	project.OriginID = originID.String
	project.OriginCode = originCode.String
	if deadline.Valid {
		project.Deadline = &deadline.Time
	}
	return &project, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
