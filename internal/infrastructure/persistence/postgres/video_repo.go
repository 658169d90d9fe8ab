package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"ad-workflow-api/internal/domain/entity"
)

// VideoRepository 视频仓储实现
type VideoRepository struct {
	client *Client
}

// NewVideoRepository 创建视频仓储
func NewVideoRepository(client *Client) *VideoRepository {
	return &VideoRepository{client: client}
}

const videoColumns = `id, project_id, current_phase, phase_status, descriptive_name, theme, style,
	format, script, creator_id, creator_code, creator_name, storyboard_url, shoot_location,
	shoot_date, script_compliance, script_medical, cast_approval, pre_production_approval,
	content_review, design_review, final_compliance, final_medical, final_approval,
	ad_link, regression_reason, regressed_to_phase, created_at, updated_at`

// approvalColumns 审批标志字段名映射，SetApproval 只接受白名单内的列
var approvalColumns = map[entity.ApprovalField]string{
	entity.ApprovalScriptCompliance: "script_compliance",
	entity.ApprovalScriptMedical:    "script_medical",
	entity.ApprovalCast:             "cast_approval",
	entity.ApprovalPreProduction:    "pre_production_approval",
	entity.ApprovalContentReview:    "content_review",
	entity.ApprovalDesignReview:     "design_review",
	entity.ApprovalFinalCompliance:  "final_compliance",
	entity.ApprovalFinalMedical:     "final_medical",
	entity.ApprovalFinal:            "final_approval",
}

// Create 创建视频
func (r *VideoRepository) Create(ctx context.Context, video *entity.Video) error {
	ctx, span := tracer.Start(ctx, "postgres.VideoRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		INSERT INTO videos (id, project_id, current_phase, phase_status, descriptive_name,
			theme, style, format, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		video.ID, video.ProjectID, int(video.CurrentPhase), video.PhaseStatus,
		video.DescriptiveName, video.Theme, video.Style, video.Format,
	).Scan(&video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create video: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取视频
func (r *VideoRepository) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	ctx, span := tracer.Start(ctx, "postgres.VideoRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`

	video, err := scanVideo(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return video, nil
}

// Update 更新视频
func (r *VideoRepository) Update(ctx context.Context, video *entity.Video) error {
	ctx, span := tracer.Start(ctx, "postgres.VideoRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `
		UPDATE videos
		SET current_phase = $1, phase_status = $2, descriptive_name = $3, theme = $4,
			style = $5, format = $6, script = $7, creator_id = $8, creator_code = $9,
			creator_name = $10, storyboard_url = $11, shoot_location = $12, shoot_date = $13,
			script_compliance = $14, script_medical = $15, cast_approval = $16,
			pre_production_approval = $17, content_review = $18, design_review = $19,
			final_compliance = $20, final_medical = $21, final_approval = $22,
			ad_link = $23, regression_reason = $24, regressed_to_phase = $25, updated_at = NOW()
		WHERE id = $26
		RETURNING updated_at
	`

	var shootDate sql.NullTime
	if video.ShootDate != nil {
		shootDate = sql.NullTime{Time: *video.ShootDate, Valid: true}
	}
	var regressedTo sql.NullInt32
	if video.RegressedToPhase != nil {
		regressedTo = sql.NullInt32{Int32: int32(*video.RegressedToPhase), Valid: true}
	}

	err := q.QueryRowContext(ctx, query,
		int(video.CurrentPhase), video.PhaseStatus, video.DescriptiveName, video.Theme,
		video.Style, video.Format, nullString(video.Script), nullString(video.CreatorID),
		nullString(video.CreatorCode), nullString(video.CreatorName),
		nullString(video.StoryboardURL), nullString(video.ShootLocation), shootDate,
		video.ScriptCompliance, video.ScriptMedical, video.CastApproval,
		video.PreProductionApproval, video.ContentReview, video.DesignReview,
		video.FinalCompliance, video.FinalMedical, video.FinalApproval,
		nullString(video.AdLink), nullString(video.RegressionReason), regressedTo, video.ID,
	).Scan(&video.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("video not found: %s", video.ID)
		}
		span.RecordError(err)
		return fmt.Errorf("failed to update video: %w", err)
	}
	return nil
}

// Delete 删除视频
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.VideoRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	if _, err := q.ExecContext(ctx, `DELETE FROM videos WHERE id = $1`, id); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete video: %w", err)
	}
	return nil
}

// ListByProject 获取项目下的全部视频（按创建时间升序）
func (r *VideoRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Video, error) {
	ctx, span := tracer.Start(ctx, "postgres.VideoRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	query := `SELECT ` + videoColumns + ` FROM videos WHERE project_id = $1 ORDER BY created_at ASC`

	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []*entity.Video
	for rows.Next() {
		video, err := scanVideo(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}
	return videos, nil
}

// UpdatePhaseStatus 更新视频阶段状态
func (r *VideoRepository) UpdatePhaseStatus(ctx context.Context, id string, status entity.PhaseStatus) error {
	ctx, span := tracer.Start(ctx, "postgres.VideoRepository.UpdatePhaseStatus")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	res, err := q.ExecContext(ctx,
		`UPDATE videos SET phase_status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update phase status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("video not found: %s", id)
	}
	return nil
}

// ResetForNextPhase 项目推进时批量重置：状态回 PENDENTE 并同步阶段号
func (r *VideoRepository) ResetForNextPhase(ctx context.Context, projectID string, phase entity.Phase) error {
	ctx, span := tracer.Start(ctx, "postgres.VideoRepository.ResetForNextPhase")
	defer span.End()

	q := getQuerier(ctx, r.client.db)

	_, err := q.ExecContext(ctx,
		`UPDATE videos SET current_phase = $1, phase_status = $2, updated_at = NOW()
		 WHERE project_id = $3`,
		int(phase), entity.PhaseStatusPending, projectID)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to reset videos for next phase: %w", err)
	}
	return nil
}

// SetApproval 更新单个审批标志
func (r *VideoRepository) SetApproval(ctx context.Context, id string, field entity.ApprovalField, value bool) error {
	ctx, span := tracer.Start(ctx, "postgres.VideoRepository.SetApproval")
	defer span.End()

	column, ok := approvalColumns[field]
	if !ok {
		return fmt.Errorf("unknown approval field: %s", field)
	}

	q := getQuerier(ctx, r.client.db)

	res, err := q.ExecContext(ctx,
		fmt.Sprintf(`UPDATE videos SET %s = $1, updated_at = NOW() WHERE id = $2`, column),
		value, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set approval: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("video not found: %s", id)
	}
	return nil
}

func scanVideo(row rowScanner) (*entity.Video, error) {
	var video entity.Video
	var phase int
	var script, creatorID, creatorCode, creatorName sql.NullString
	var storyboardURL, shootLocation, adLink, regressionReason sql.NullString
	var shootDate sql.NullTime
	var regressedTo sql.NullInt32

	err := row.Scan(
		&video.ID, &video.ProjectID, &phase, &video.PhaseStatus, &video.DescriptiveName,
		&video.Theme, &video.Style, &video.Format, &script, &creatorID, &creatorCode,
		&creatorName, &storyboardURL, &shootLocation, &shootDate,
		&video.ScriptCompliance, &video.ScriptMedical, &video.CastApproval,
		&video.PreProductionApproval, &video.ContentReview, &video.DesignReview,
		&video.FinalCompliance, &video.FinalMedical, &video.FinalApproval,
		&adLink, &regressionReason, &regressedTo, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	video.CurrentPhase = entity.Phase(phase)
	video.Script = script.String
	video.CreatorID = creatorID.String
	video.CreatorCode = creatorCode.String
	video.CreatorName = creatorName.String
	video.StoryboardURL = storyboardURL.String
	video.ShootLocation = shootLocation.String
	video.AdLink = adLink.String
	video.RegressionReason = regressionReason.String
	if shootDate.Valid {
		video.ShootDate = &shootDate.Time
	}
	if regressedTo.Valid {
		p := entity.Phase(regressedTo.Int32)
		video.RegressedToPhase = &p
	}
	return &video, nil
}
