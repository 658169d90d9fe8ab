// Package video 视频生命周期管理
package video

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"ad-workflow-api/internal/application/workflow"
	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
	"ad-workflow-api/pkg/errors"
	"ad-workflow-api/pkg/logger"
)

var tracer = otel.Tracer("application/video")

// CreateInput 创建视频输入
type CreateInput struct {
	ProjectID       string
	DescriptiveName string
	Theme           entity.VideoTheme
	Style           entity.VideoStyle
	Format          entity.VideoFormat
}

// UpdateInput 更新视频输入，nil 表示不修改
// 每组字段有独立的阶段上限
type UpdateInput struct {
	DescriptiveName *string
	Theme           *entity.VideoTheme
	Style           *entity.VideoStyle
	Format          *entity.VideoFormat

	Script *string

	CreatorID   *string
	CreatorCode *string
	CreatorName *string

	StoryboardURL *string
	ShootLocation *string
	ShootDate     *time.Time
}

// Service 视频服务
type Service struct {
	projectRepo repository.ProjectRepository
	videoRepo   repository.VideoRepository
}

// NewService 创建视频服务
func NewService(projectRepo repository.ProjectRepository, videoRepo repository.VideoRepository) *Service {
	return &Service{projectRepo: projectRepo, videoRepo: videoRepo}
}

func (s *Service) getVideo(ctx context.Context, id string) (*entity.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errors.ErrVideoNotFound
	}
	return video, nil
}

// Create 创建视频
// 仅当项目阶段 ≤ 2（视频列表锁定前）；继承项目当前阶段，状态 PENDENTE
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Video, error) {
	ctx, span := tracer.Start(ctx, "VideoService.Create")
	defer span.End()

	if strings.TrimSpace(in.DescriptiveName) == "" {
		return nil, errors.New(errors.CodeInvalidParam, "视频名称不能为空")
	}

	project, err := s.projectRepo.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors.ErrProjectNotFound
	}
	if project.IsTerminal() {
		return nil, errors.New(errors.CodePhaseViolation, "终态项目不可添加视频")
	}
	if !project.CanAddVideos() {
		return nil, errors.New(errors.CodePhaseViolation, "脚本阶段之后视频列表已锁定")
	}

	// 创建时即按命名规则清洗名称，后续命名生成可直接使用
	name := workflow.Sanitize(in.DescriptiveName)
	if name == "" {
		return nil, errors.New(errors.CodeInvalidParam, "视频名称清洗后为空")
	}

	video := entity.NewVideo(in.ProjectID, name, in.Theme, in.Style, in.Format, project.CurrentPhase)
	video.ID = uuid.NewString()

	if err := s.videoRepo.Create(ctx, video); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Info(ctx, "视频创建", "video_id", video.ID, "project_id", in.ProjectID)
	return video, nil
}

// Get 获取视频
func (s *Service) Get(ctx context.Context, id string) (*entity.Video, error) {
	return s.getVideo(ctx, id)
}

// ListByProject 获取项目下的全部视频
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]*entity.Video, error) {
	return s.videoRepo.ListByProject(ctx, projectID)
}

// Update 更新视频字段，每组字段有独立的阶段上限：
// 描述性字段 ≤ 2，创作者 ≤ 3，storyboard/拍摄 ≤ 4，脚本 ≤ 5
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*entity.Video, error) {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	phase := video.CurrentPhase

	if in.DescriptiveName != nil || in.Theme != nil || in.Style != nil || in.Format != nil {
		if phase > entity.BasicFieldsPhaseLimit {
			return nil, errors.Newf(errors.CodePhaseViolation,
				"描述性字段在阶段 %s 后不可修改", entity.BasicFieldsPhaseLimit.String())
		}
		if in.DescriptiveName != nil {
			name := workflow.Sanitize(*in.DescriptiveName)
			if name == "" {
				return nil, errors.New(errors.CodeInvalidParam, "视频名称清洗后为空")
			}
			video.DescriptiveName = name
		}
		if in.Theme != nil {
			video.Theme = *in.Theme
		}
		if in.Style != nil {
			video.Style = *in.Style
		}
		if in.Format != nil {
			video.Format = *in.Format
		}
	}

	if in.Script != nil {
		if phase > entity.ScriptPhaseLimit {
			return nil, errors.Newf(errors.CodePhaseViolation,
				"脚本在阶段 %s 后不可修改", entity.ScriptPhaseLimit.String())
		}
		video.Script = *in.Script
	}

	if in.CreatorID != nil || in.CreatorCode != nil || in.CreatorName != nil {
		if phase > entity.CreatorPhaseLimit {
			return nil, errors.Newf(errors.CodePhaseViolation,
				"创作者在阶段 %s 后不可修改", entity.CreatorPhaseLimit.String())
		}
		if in.CreatorID != nil {
			video.CreatorID = *in.CreatorID
		}
		if in.CreatorCode != nil {
			video.CreatorCode = *in.CreatorCode
		}
		if in.CreatorName != nil {
			video.CreatorName = *in.CreatorName
		}
	}

	if in.StoryboardURL != nil || in.ShootLocation != nil || in.ShootDate != nil {
		if phase > entity.ProductionFieldsPhaseLimit {
			return nil, errors.Newf(errors.CodePhaseViolation,
				"制作字段在阶段 %s 后不可修改", entity.ProductionFieldsPhaseLimit.String())
		}
		if in.StoryboardURL != nil {
			video.StoryboardURL = *in.StoryboardURL
		}
		if in.ShootLocation != nil {
			video.ShootLocation = *in.ShootLocation
		}
		if in.ShootDate != nil {
			video.ShootDate = in.ShootDate
		}
	}

	video.UpdatedAt = time.Now()
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// Delete 删除视频，仅当所属项目阶段 ≤ 2
func (s *Service) Delete(ctx context.Context, id string) error {
	video, err := s.getVideo(ctx, id)
	if err != nil {
		return err
	}

	project, err := s.projectRepo.GetByID(ctx, video.ProjectID)
	if err != nil {
		return err
	}
	if project == nil {
		return errors.ErrProjectNotFound
	}
	if !project.CanAddVideos() {
		return errors.New(errors.CodePhaseViolation, "脚本阶段之后视频不可删除")
	}

	return s.videoRepo.Delete(ctx, id)
}
