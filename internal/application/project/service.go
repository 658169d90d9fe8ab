// Package project 项目生命周期管理
package project

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
	"ad-workflow-api/pkg/errors"
	"ad-workflow-api/pkg/logger"
)

var tracer = otel.Tracer("application/project")

// CreateInput 创建项目输入
type CreateInput struct {
	Title             string
	Briefing          string
	AdTypeID          string
	OriginID          string
	OriginCode        string
	IncludesPhotoPack bool
	Deadline          *time.Time
	Priority          entity.Priority
	CreatedByID       string
}

// UpdateInput 更新项目输入，nil 表示不修改
type UpdateInput struct {
	Title    *string
	Briefing *string
	Deadline *time.Time
	Priority *entity.Priority
}

// Service 项目服务
type Service struct {
	projectRepo   repository.ProjectRepository
	videoRepo     repository.VideoRepository
	packImageRepo repository.PackImageRepository
}

// NewService 创建项目服务
func NewService(projectRepo repository.ProjectRepository, videoRepo repository.VideoRepository, packImageRepo repository.PackImageRepository) *Service {
	return &Service{projectRepo: projectRepo, videoRepo: videoRepo, packImageRepo: packImageRepo}
}

func (s *Service) get(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors.ErrProjectNotFound
	}
	return project, nil
}

// Create 创建项目，初始为 DRAFT、阶段 1
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "ProjectService.Create")
	defer span.End()

	if strings.TrimSpace(in.Title) == "" {
		return nil, errors.New(errors.CodeInvalidParam, "项目标题不能为空")
	}

	project := entity.NewProject(in.Title, in.Briefing, in.AdTypeID, in.OriginID, in.CreatedByID)
	project.ID = uuid.NewString()
	project.OriginCode = in.OriginCode
	project.IncludesPhotoPack = in.IncludesPhotoPack
	project.Deadline = in.Deadline
	if in.Priority != "" {
		project.Priority = in.Priority
	}

	if err := s.projectRepo.Create(ctx, project); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Info(ctx, "项目创建", "project_id", project.ID, "title", project.Title)
	return project, nil
}

// Get 获取项目
func (s *Service) Get(ctx context.Context, id string) (*entity.Project, error) {
	return s.get(ctx, id)
}

// List 分页获取项目列表
func (s *Service) List(ctx context.Context, filter *repository.ProjectFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	return s.projectRepo.List(ctx, filter, pagination)
}

// Update 更新项目
// 标题与 briefing 仅在 DRAFT 或阶段 ≤ 2 时可改；终态项目不可改
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*entity.Project, error) {
	project, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.IsTerminal() {
		return nil, errors.New(errors.CodePhaseViolation, "终态项目不可修改")
	}

	if in.Title != nil || in.Briefing != nil {
		if !project.IsEditable() {
			return nil, errors.New(errors.CodePhaseViolation, "脚本阶段之后标题与 briefing 不可修改")
		}
		if in.Title != nil {
			if strings.TrimSpace(*in.Title) == "" {
				return nil, errors.New(errors.CodeInvalidParam, "项目标题不能为空")
			}
			project.Title = *in.Title
		}
		if in.Briefing != nil {
			project.Briefing = *in.Briefing
		}
	}
	if in.Deadline != nil {
		project.Deadline = in.Deadline
	}
	if in.Priority != nil {
		project.Priority = *in.Priority
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Submit DRAFT 提交为 ACTIVE，要求至少 1 个视频
func (s *Service) Submit(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "ProjectService.Submit")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", id))

	project, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.Status != entity.ProjectStatusDraft {
		return nil, errors.New(errors.CodePhaseViolation, "只有草稿项目可以提交")
	}

	count, err := s.projectRepo.CountVideos(ctx, id)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, errors.New(errors.CodeValidationFailed, "项目至少需要 1 个视频才能提交")
	}

	if err := s.projectRepo.UpdateStatus(ctx, id, entity.ProjectStatusActive); err != nil {
		return nil, err
	}
	project.Status = entity.ProjectStatusActive
	logger.Info(ctx, "项目提交", "project_id", id)
	return project, nil
}

// Cancel 取消项目，终态项目不可再取消
func (s *Service) Cancel(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.IsTerminal() {
		return nil, errors.New(errors.CodePhaseViolation, "终态项目不可取消")
	}

	if err := s.projectRepo.UpdateStatus(ctx, id, entity.ProjectStatusCancelled); err != nil {
		return nil, err
	}
	project.Status = entity.ProjectStatusCancelled
	logger.Info(ctx, "项目取消", "project_id", id)
	return project, nil
}

// Complete 项目收尾：阶段 6 且全部视频已发布
func (s *Service) Complete(ctx context.Context, id string) (*entity.Project, error) {
	project, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.IsTerminal() {
		return nil, errors.New(errors.CodePhaseViolation, "终态项目不可再收尾")
	}
	if project.CurrentPhase != entity.PhasePublication {
		return nil, errors.New(errors.CodePhaseViolation, "仅发布阶段的项目可以收尾")
	}

	videos, err := s.videoRepo.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, errors.New(errors.CodeValidationFailed, "项目没有视频，无法收尾")
	}
	for _, v := range videos {
		if v.PhaseStatus != entity.PhaseStatusPublished {
			return nil, errors.Newf(errors.CodeVideosNotReady, "视频 %s 尚未发布", v.ID)
		}
	}

	if err := s.projectRepo.UpdateStatus(ctx, id, entity.ProjectStatusCompleted); err != nil {
		return nil, err
	}
	project.Status = entity.ProjectStatusCompleted
	logger.Info(ctx, "项目完成", "project_id", id)
	return project, nil
}

// Delete 删除项目，仅限 DRAFT
func (s *Service) Delete(ctx context.Context, id string) error {
	project, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if project.Status != entity.ProjectStatusDraft {
		return errors.New(errors.CodePhaseViolation, "只有草稿项目可以删除")
	}
	return s.projectRepo.Delete(ctx, id)
}

// AttachPackImage 向项目图包添加图片
func (s *Service) AttachPackImage(ctx context.Context, projectID, fileID, caption string) (*entity.PackImage, error) {
	project, err := s.get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IncludesPhotoPack {
		return nil, errors.New(errors.CodeValidationFailed, "项目未包含图包")
	}
	if strings.TrimSpace(fileID) == "" {
		return nil, errors.New(errors.CodeInvalidParam, "文件 ID 不能为空")
	}

	image := entity.NewPackImage(projectID, fileID, caption)
	image.ID = uuid.NewString()
	if err := s.packImageRepo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

// ListPackImages 获取项目图包图片
func (s *Service) ListPackImages(ctx context.Context, projectID string) ([]*entity.PackImage, error) {
	project, err := s.get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IncludesPhotoPack {
		return nil, errors.New(errors.CodeValidationFailed, "项目未包含图包")
	}
	return s.packImageRepo.ListByProject(ctx, projectID)
}

// RemovePackImage 从项目图包移除图片
func (s *Service) RemovePackImage(ctx context.Context, projectID, imageID string) error {
	image, err := s.packImageRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if image == nil || image.ProjectID != projectID {
		return errors.New(errors.CodeNotFound, "图包图片不存在")
	}
	return s.packImageRepo.Delete(ctx, imageID)
}
