// Package deliverable 素材变体 (hook) 生命周期管理
package deliverable

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"

	"ad-workflow-api/internal/application/workflow"
	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
	"ad-workflow-api/pkg/errors"
	"ad-workflow-api/pkg/logger"
)

var tracer = otel.Tracer("application/deliverable")

// CreateInput 创建素材输入
type CreateInput struct {
	VideoID         string
	FileID          string
	Duration        entity.DeliverableDuration
	Size            entity.DeliverableSize
	ShowsProduct    bool
	HookDescription string
}

// UpdateInput 更新素材输入，nil 表示不修改
type UpdateInput struct {
	FileID          *string
	Duration        *entity.DeliverableDuration
	Size            *entity.DeliverableSize
	ShowsProduct    *bool
	HookDescription *string
}

// NomenclatureInput 命名通道更新输入（素材封存后唯一可修改的字段组）
type NomenclatureInput struct {
	EditedName    *string
	IsPost        *bool
	VersionNumber *int
}

// Service 素材服务
type Service struct {
	videoRepo       repository.VideoRepository
	deliverableRepo repository.DeliverableRepository
	checker         *workflow.Checker
}

// NewService 创建素材服务
func NewService(videoRepo repository.VideoRepository, deliverableRepo repository.DeliverableRepository, checker *workflow.Checker) *Service {
	return &Service{videoRepo: videoRepo, deliverableRepo: deliverableRepo, checker: checker}
}

func (s *Service) getDeliverable(ctx context.Context, id string) (*entity.Deliverable, error) {
	d, err := s.deliverableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.ErrDeliverableNotFound
	}
	return d, nil
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

// Create 创建素材
// 仅当视频阶段 ≥ 4；上限 10 个；任一兄弟素材已发号后整体封锁；
// hookNumber 取 1..10 中最小空缺
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Deliverable, error) {
	ctx, span := tracer.Start(ctx, "DeliverableService.Create")
	defer span.End()

	video, err := s.getVideo(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if video.CurrentPhase < entity.PhaseProduction {
		return nil, errors.New(errors.CodePhaseViolation, "制作阶段之前不可添加素材")
	}

	siblings, err := s.deliverableRepo.ListByVideo(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	for _, d := range siblings {
		if d.IsSealed() {
			return nil, errors.New(errors.CodeDeliverableSealed, "视频已有素材分配 AD number，素材列表已封存")
		}
	}
	if len(siblings) >= entity.MaxDeliverablesPerVideo {
		return nil, errors.Newf(errors.CodeValidationFailed, "每个视频最多 %d 个素材", entity.MaxDeliverablesPerVideo)
	}

	hook := entity.NextHookNumber(siblings)
	if hook == 0 {
		return nil, errors.Newf(errors.CodeValidationFailed, "hook 编号 1..%d 已占满", entity.MaxDeliverablesPerVideo)
	}

	d := entity.NewDeliverable(in.VideoID, in.FileID, hook, in.Duration, in.Size)
	d.ID = uuid.NewString()
	d.ShowsProduct = in.ShowsProduct
	d.HookDescription = in.HookDescription

	if err := s.deliverableRepo.Create(ctx, d); err != nil {
		span.RecordError(err)
		return nil, err
	}

	logger.Info(ctx, "素材创建", "deliverable_id", d.ID, "video_id", in.VideoID, "hook", hook)
	return d, nil
}

// Get 获取素材
func (s *Service) Get(ctx context.Context, id string) (*entity.Deliverable, error) {
	return s.getDeliverable(ctx, id)
}

// ListByVideo 获取视频的全部素材
func (s *Service) ListByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error) {
	return s.deliverableRepo.ListByVideo(ctx, videoID)
}

// Update 更新素材的制作字段
// 已发号素材封存，除命名通道外不可修改
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (*entity.Deliverable, error) {
	d, err := s.getDeliverable(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.IsSealed() {
		return nil, errors.ErrDeliverableSealed
	}

	if in.FileID != nil {
		d.FileID = *in.FileID
	}
	if in.Duration != nil {
		d.Duration = *in.Duration
	}
	if in.Size != nil {
		d.Size = *in.Size
	}
	if in.ShowsProduct != nil {
		d.ShowsProduct = *in.ShowsProduct
	}
	if in.HookDescription != nil {
		d.HookDescription = *in.HookDescription
	}
	d.UpdatedAt = time.Now()

	if err := s.deliverableRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateNomenclature 命名通道更新
// 仅限已发号素材，视频状态须为 APROVADO 或 NOMENCLATURA，
// 且操作者持有 nomenclatura 授权
func (s *Service) UpdateNomenclature(ctx context.Context, id string, in NomenclatureInput, actor workflow.Actor) (*entity.Deliverable, error) {
	d, err := s.getDeliverable(ctx, id)
	if err != nil {
		return nil, err
	}
	if !d.IsSealed() {
		return nil, errors.New(errors.CodeValidationFailed, "素材尚未分配 AD number，不能走命名通道")
	}

	video, err := s.getVideo(ctx, d.VideoID)
	if err != nil {
		return nil, err
	}
	if video.PhaseStatus != entity.PhaseStatusApproved && video.PhaseStatus != entity.PhaseStatusNaming {
		return nil, errors.New(errors.CodePhaseViolation, "视频不在命名阶段")
	}

	allowed, err := s.checker.CanPerformKey(ctx, actor.UserID, actor.Role, workflow.ActionNomenclature)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errors.New(errors.CodePermissionDenied, "无权修改命名")
	}

	if in.EditedName != nil {
		d.EditedName = *in.EditedName
	}
	if in.IsPost != nil {
		d.IsPost = *in.IsPost
	}
	if in.VersionNumber != nil {
		if *in.VersionNumber < 1 {
			return nil, errors.New(errors.CodeInvalidParam, "版本号必须 ≥ 1")
		}
		d.VersionNumber = *in.VersionNumber
	}
	d.UpdatedAt = time.Now()

	if err := s.deliverableRepo.Update(ctx, d); err != nil {
		return nil, err
	}
	logger.Info(ctx, "素材命名更新", "deliverable_id", id, "user_id", actor.UserID)
	return d, nil
}

// Delete 删除素材，已发号素材不可删除
func (s *Service) Delete(ctx context.Context, id string) error {
	d, err := s.getDeliverable(ctx, id)
	if err != nil {
		return err
	}
	if d.IsSealed() {
		return errors.ErrDeliverableSealed
	}
	return s.deliverableRepo.Delete(ctx, id)
}
