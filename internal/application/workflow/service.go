package workflow

import (
	"context"
	stderrors "errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
	"ad-workflow-api/pkg/errors"
	"ad-workflow-api/pkg/logger"
	"ad-workflow-api/pkg/metrics"
)

// Actor 当前操作者身份
type Actor struct {
	UserID string
	Role   entity.UserRole
}

// PhaseSummary 项目阶段汇总：逐视频就绪详情 + 状态分布
type PhaseSummary struct {
	ProjectID    string                     `json:"project_id"`
	CurrentPhase entity.Phase               `json:"current_phase"`
	PhaseName    string                     `json:"phase_name"`
	VideosTotal  int                        `json:"videos_total"`
	VideosReady  int                        `json:"videos_ready"`
	StatusCounts map[entity.PhaseStatus]int `json:"status_counts"`
	CanAdvance   bool                       `json:"can_advance"`
	Videos       []VideoReadiness           `json:"videos"`
}

// SummaryCache 阶段汇总缓存接口
type SummaryCache interface {
	// GetSummary 读取缓存的汇总，未命中返回 (nil, nil)
	GetSummary(ctx context.Context, projectID string) (*PhaseSummary, error)

	// SetSummary 写入汇总缓存
	SetSummary(ctx context.Context, projectID string, summary *PhaseSummary) error

	// Invalidate 失效指定项目的汇总缓存
	Invalidate(ctx context.Context, projectID string) error
}

// Service 工作流引擎服务
// 串联权限矩阵、就绪校验、阶段推进、回退、编号与命名生成
type Service struct {
	projectRepo     repository.ProjectRepository
	videoRepo       repository.VideoRepository
	deliverableRepo repository.DeliverableRepository
	checker         *Checker
	validator       *Validator
	numberer        *Numberer
	nomenclator     *Nomenclator
	cache           SummaryCache
	tx              repository.Transactor
}

// NewService 创建工作流服务
func NewService(
	projectRepo repository.ProjectRepository,
	videoRepo repository.VideoRepository,
	deliverableRepo repository.DeliverableRepository,
	checker *Checker,
	validator *Validator,
	numberer *Numberer,
	nomenclator *Nomenclator,
	cache SummaryCache,
	tx repository.Transactor,
) *Service {
	return &Service{
		projectRepo:     projectRepo,
		videoRepo:       videoRepo,
		deliverableRepo: deliverableRepo,
		checker:         checker,
		validator:       validator,
		numberer:        numberer,
		nomenclator:     nomenclator,
		cache:           cache,
		tx:              tx,
	}
}

// requirePermission 执行权限检查，拒绝时计数并返回 forbidden
func (s *Service) requirePermission(ctx context.Context, actor Actor, key ActionKey) error {
	allowed, err := s.checker.CanPerformKey(ctx, actor.UserID, actor.Role, key)
	if err != nil {
		return err
	}
	if !allowed {
		metrics.PermissionDeniedTotal.WithLabelValues(string(key)).Inc()
		return errors.Newf(errors.CodePermissionDenied, "无权执行动作 %s", key)
	}
	return nil
}

func (s *Service) getProject(ctx context.Context, projectID string) (*entity.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors.ErrProjectNotFound
	}
	return project, nil
}

func (s *Service) getVideo(ctx context.Context, videoID string) (*entity.Video, error) {
	video, err := s.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, errors.ErrVideoNotFound
	}
	return video, nil
}

// CanAdvance 返回项目推进前的逐视频就绪报告，不做任何修改
// 未就绪不算调用方错误，报告本身就是答案
func (s *Service) CanAdvance(ctx context.Context, projectID string) (*AdvanceStatus, error) {
	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return s.validator.CheckProject(ctx, project)
}

// AdvancePhase 将项目推进到下一阶段
// 阶段 1 需要 aprovar_briefing 授权；全部视频必须处于就绪状态；
// 事务内重读校验后原子推进，并批量重置视频状态
func (s *Service) AdvancePhase(ctx context.Context, projectID string, actor Actor) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "Service.AdvancePhase")
	defer span.End()
	span.SetAttributes(attribute.String("project.id", projectID))

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.IsTerminal() {
		return nil, errors.New(errors.CodePhaseViolation, "项目已终结，无法推进")
	}
	if project.CurrentPhase >= entity.PhasePublication {
		return nil, errors.New(errors.CodePhaseViolation, "项目已处于最后阶段")
	}

	if key, ok := AdvanceActionForPhase(project.CurrentPhase); ok {
		if err := s.requirePermission(ctx, actor, key); err != nil {
			return nil, err
		}
	}

	fromPhase := project.CurrentPhase
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		// 事务内重读，避免并发推进导致跳段
		current, err := s.getProject(ctx, projectID)
		if err != nil {
			return err
		}
		if current.CurrentPhase != fromPhase {
			return errors.New(errors.CodeConflict, "项目阶段已被并发修改")
		}

		if _, err := s.validator.RequireAdvance(ctx, current); err != nil {
			return err
		}

		// read-committed 下重读看不到未提交的并发推进，
		// 最终由带版本条件的 UPDATE 裁决：未命中即并发冲突
		if err := s.projectRepo.IncrementPhase(ctx, projectID, fromPhase); err != nil {
			if stderrors.Is(err, repository.ErrPhaseMoved) {
				return errors.New(errors.CodeConflict, "项目阶段已被并发修改")
			}
			return err
		}
		return s.videoRepo.ResetForNextPhase(ctx, projectID, fromPhase+1)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.PhaseAdvancesTotal.WithLabelValues(fromPhase.String()).Inc()
	if cerr := s.cache.Invalidate(ctx, projectID); cerr != nil {
		logger.Warn(ctx, "汇总缓存失效失败", "project_id", projectID, "error", cerr)
	}
	logger.Info(ctx, "项目阶段推进", "project_id", projectID,
		"from_phase", fromPhase.String(), "to_phase", (fromPhase + 1).String())

	return s.getProject(ctx, projectID)
}

// UpdatePhaseStatus 更新视频在当前阶段内的状态
// 状态必须属于该阶段词表；切到就绪状态前先通过字段级校验
func (s *Service) UpdatePhaseStatus(ctx context.Context, videoID string, status entity.PhaseStatus) (*entity.Video, error) {
	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if !entity.IsValidStatusForPhase(video.CurrentPhase, status) {
		return nil, errors.Newf(errors.CodeValidationFailed,
			"状态 %s 不属于阶段 %s 的词表", status, video.CurrentPhase.String())
	}

	ready, err := entity.ReadyStatusForPhase(video.CurrentPhase)
	if err != nil {
		return nil, err
	}
	if status == ready {
		missing, err := s.validator.CheckVideo(ctx, video, video.CurrentPhase)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			return nil, errors.New(errors.CodeValidationFailed, "视频未满足就绪条件").
				WithDetail(strings.Join(missing, "; "))
		}
	}

	if err := s.videoRepo.UpdatePhaseStatus(ctx, videoID, status); err != nil {
		return nil, err
	}
	if cerr := s.cache.Invalidate(ctx, video.ProjectID); cerr != nil {
		logger.Warn(ctx, "汇总缓存失效失败", "project_id", video.ProjectID, "error", cerr)
	}

	video.PhaseStatus = status
	return video, nil
}

// MarkApproval 写入审批标志
// 动作必须属于视频当前阶段，且操作者在矩阵授权范围内
func (s *Service) MarkApproval(ctx context.Context, videoID string, field entity.ApprovalField, value bool, actor Actor) (*entity.Video, error) {
	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	key, ok := ActionForApprovalField(field)
	if !ok {
		return nil, errors.Newf(errors.CodeInvalidParam, "未知的审批字段 %s", field)
	}
	action := Matrix[key]
	if action.Phase != video.CurrentPhase {
		return nil, errors.Newf(errors.CodePhaseViolation,
			"动作 %s 属于阶段 %s，视频当前在 %s", key, action.Phase.String(), video.CurrentPhase.String())
	}
	if err := s.requirePermission(ctx, actor, key); err != nil {
		return nil, err
	}

	if err := s.videoRepo.SetApproval(ctx, videoID, field, value); err != nil {
		return nil, err
	}
	if cerr := s.cache.Invalidate(ctx, video.ProjectID); cerr != nil {
		logger.Warn(ctx, "汇总缓存失效失败", "project_id", video.ProjectID, "error", cerr)
	}

	video.SetApproval(field, value)
	logger.Info(ctx, "审批标志更新", "video_id", videoID,
		"field", string(field), "value", value, "user_id", actor.UserID)
	return video, nil
}

// RegressVideo 将单个视频回退到较早阶段
// 目标阶段最低为 Script，必须给出理由，授权取决于被回退的当前阶段；
// 状态重置为 PENDENTE，审批标志保持原样
func (s *Service) RegressVideo(ctx context.Context, videoID string, toPhase entity.Phase, reason string, actor Actor) (*entity.Video, error) {
	ctx, span := tracer.Start(ctx, "Service.RegressVideo")
	defer span.End()

	if strings.TrimSpace(reason) == "" {
		return nil, errors.New(errors.CodeInvalidParam, "回退必须填写理由")
	}

	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if toPhase < entity.MinRegressPhase || toPhase >= video.CurrentPhase {
		return nil, errors.Newf(errors.CodeRegressionForbidden,
			"无法从 %s 回退到 %s", video.CurrentPhase.String(), toPhase.String())
	}

	key, ok := RegressActionForPhase(video.CurrentPhase)
	if !ok {
		return nil, errors.Newf(errors.CodeRegressionForbidden,
			"阶段 %s 不支持回退", video.CurrentPhase.String())
	}
	if err := s.requirePermission(ctx, actor, key); err != nil {
		return nil, err
	}

	// 已发号的视频不可回退
	deliverables, err := s.deliverableRepo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	for _, d := range deliverables {
		if d.IsSealed() {
			return nil, errors.New(errors.CodeRegressionForbidden,
				"视频已有素材分配 AD number，无法回退")
		}
	}

	fromPhase := video.CurrentPhase
	video.CurrentPhase = toPhase
	video.PhaseStatus = entity.PhaseStatusPending
	video.RegressionReason = reason
	video.RegressedToPhase = &toPhase

	if err := s.videoRepo.Update(ctx, video); err != nil {
		span.RecordError(err)
		return nil, err
	}

	metrics.VideoRegressionsTotal.WithLabelValues(fromPhase.String(), toPhase.String()).Inc()
	if cerr := s.cache.Invalidate(ctx, video.ProjectID); cerr != nil {
		logger.Warn(ctx, "汇总缓存失效失败", "project_id", video.ProjectID, "error", cerr)
	}
	logger.Info(ctx, "视频回退", "video_id", videoID,
		"from_phase", fromPhase.String(), "to_phase", toPhase.String(),
		"reason", reason, "user_id", actor.UserID)
	return video, nil
}

// SetAdLink 填写广告投放链接，仅限发布阶段
func (s *Service) SetAdLink(ctx context.Context, videoID string, link string) (*entity.Video, error) {
	if strings.TrimSpace(link) == "" {
		return nil, errors.New(errors.CodeInvalidParam, "链接不能为空")
	}

	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video.CurrentPhase != entity.PhasePublication {
		return nil, errors.New(errors.CodePhaseViolation, "仅发布阶段可填写投放链接")
	}

	video.AdLink = link
	if err := s.videoRepo.Update(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// ApprovePhase6 发布阶段最终审批：发号 + 置最终审批标志 + 状态 APROVADO
// 唯一跨组件的复合操作，整体在一个事务内，发号绝不部分可见
func (s *Service) ApprovePhase6(ctx context.Context, videoID string, actor Actor) (*entity.Video, error) {
	ctx, span := tracer.Start(ctx, "Service.ApprovePhase6")
	defer span.End()
	span.SetAttributes(attribute.String("video.id", videoID))

	if err := s.requirePermission(ctx, actor, ActionFinalApproval); err != nil {
		return nil, err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		video, err := s.getVideo(ctx, videoID)
		if err != nil {
			return err
		}
		if video.CurrentPhase != entity.PhasePublication {
			return errors.New(errors.CodePhaseViolation, "仅发布阶段可执行最终审批")
		}

		deliverables, err := s.deliverableRepo.ListByVideo(ctx, videoID)
		if err != nil {
			return err
		}
		if len(deliverables) == 0 {
			return errors.New(errors.CodeValidationFailed, "视频没有素材，无法最终审批")
		}

		if _, err := s.numberer.AssignNumbers(ctx, videoID); err != nil {
			return err
		}
		if err := s.videoRepo.SetApproval(ctx, videoID, entity.ApprovalFinal, true); err != nil {
			return err
		}
		return s.videoRepo.UpdatePhaseStatus(ctx, videoID, entity.PhaseStatusApproved)
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	video, err := s.getVideo(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if cerr := s.cache.Invalidate(ctx, video.ProjectID); cerr != nil {
		logger.Warn(ctx, "汇总缓存失效失败", "project_id", video.ProjectID, "error", cerr)
	}
	logger.Info(ctx, "视频通过最终审批", "video_id", videoID, "user_id", actor.UserID)
	return video, nil
}

// RegenerateNomenclature 重算视频全部已编号素材的生成命名
// 需要 nomenclatura 授权
func (s *Service) RegenerateNomenclature(ctx context.Context, videoID string, actor Actor) error {
	if err := s.requirePermission(ctx, actor, ActionNomenclature); err != nil {
		return err
	}
	return s.nomenclator.RegenerateForVideo(ctx, videoID)
}

// PhaseStatusSummary 项目阶段汇总，带缓存
func (s *Service) PhaseStatusSummary(ctx context.Context, projectID string) (*PhaseSummary, error) {
	if cached, err := s.cache.GetSummary(ctx, projectID); err == nil && cached != nil {
		metrics.SummaryCacheHits.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.SummaryCacheHits.WithLabelValues("miss").Inc()

	project, err := s.getProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	status, err := s.validator.CheckProject(ctx, project)
	if err != nil {
		return nil, err
	}

	summary := &PhaseSummary{
		ProjectID:    projectID,
		CurrentPhase: project.CurrentPhase,
		PhaseName:    project.CurrentPhase.String(),
		VideosTotal:  status.VideosTotal,
		VideosReady:  status.VideosReady,
		StatusCounts: make(map[entity.PhaseStatus]int),
		CanAdvance:   status.CanAdvance && project.CurrentPhase < entity.PhasePublication,
		Videos:       status.Videos,
	}
	for _, r := range status.Videos {
		summary.StatusCounts[r.PhaseStatus]++
	}

	if err := s.cache.SetSummary(ctx, projectID, summary); err != nil {
		logger.Warn(ctx, "汇总缓存写入失败", "project_id", projectID, "error", err)
	}
	return summary, nil
}
