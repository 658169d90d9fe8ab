package workflow

import (
	"context"

	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
	"ad-workflow-api/pkg/errors"
)

// VideoReadiness 单个视频的阶段就绪检查结果
type VideoReadiness struct {
	VideoID         string             `json:"video_id"`
	DescriptiveName string             `json:"descriptive_name"`
	PhaseStatus     entity.PhaseStatus `json:"phase_status"`
	Ready           bool               `json:"ready"`
	Missing         []string           `json:"missing,omitempty"`
}

// AdvanceStatus 项目推进就绪报告
type AdvanceStatus struct {
	ProjectID    string           `json:"project_id"`
	CurrentPhase entity.Phase     `json:"current_phase"`
	VideosTotal  int              `json:"videos_total"`
	VideosReady  int              `json:"videos_ready"`
	CanAdvance   bool             `json:"can_advance"`
	Videos       []VideoReadiness `json:"videos"`
}

// Validator 阶段推进前置校验
type Validator struct {
	videoRepo       repository.VideoRepository
	deliverableRepo repository.DeliverableRepository
}

// NewValidator 创建校验器
func NewValidator(videoRepo repository.VideoRepository, deliverableRepo repository.DeliverableRepository) *Validator {
	return &Validator{videoRepo: videoRepo, deliverableRepo: deliverableRepo}
}

// CheckVideo 返回视频离开指定阶段前的字段级缺失清单
// 清单词汇沿用前端表单的字段命名，为空表示满足全部要求
func (v *Validator) CheckVideo(ctx context.Context, video *entity.Video, phase entity.Phase) ([]string, error) {
	var missing []string

	switch phase {
	case entity.PhaseBriefing:
		if video.DescriptiveName == "" {
			missing = append(missing, "nomeDescritivo")
		}
		if video.Theme == "" {
			missing = append(missing, "tema")
		}
		if video.Style == "" {
			missing = append(missing, "estilo")
		}
		if video.Format == "" {
			missing = append(missing, "formato")
		}

	case entity.PhaseScript:
		if video.Script == "" {
			missing = append(missing, "roteiro")
		}
		if !video.ScriptCompliance {
			missing = append(missing, "validacaoRoteiroCompliance")
		}
		if !video.ScriptMedical {
			missing = append(missing, "validacaoRoteiroMedico")
		}

	case entity.PhaseCasting:
		if video.CreatorID == "" {
			missing = append(missing, "criadorId")
		}
		if !video.CastApproval {
			missing = append(missing, "aprovacaoElenco")
		}
		if !video.PreProductionApproval {
			missing = append(missing, "aprovacaoPreProducao")
		}
		if video.StoryboardURL == "" && video.ShootLocation == "" {
			missing = append(missing, "storyboardUrl ou localGravacao")
		}

	case entity.PhaseProduction:
		deliverables, err := v.deliverableRepo.ListByVideo(ctx, video.ID)
		if err != nil {
			return nil, err
		}
		if len(deliverables) == 0 {
			missing = append(missing, "pelo menos 1 deliverable")
		} else {
			hasFile := false
			for _, d := range deliverables {
				if d.FileID != "" {
					hasFile = true
					break
				}
			}
			if !hasFile {
				missing = append(missing, "deliverable com arquivo")
			}
		}

	case entity.PhaseReview:
		if !video.ContentReview {
			missing = append(missing, "revisaoConteudo")
		}
		if !video.DesignReview {
			missing = append(missing, "revisaoDesign")
		}
		if !video.FinalCompliance {
			missing = append(missing, "validacaoFinalCompliance")
		}
		if !video.FinalMedical {
			missing = append(missing, "validacaoFinalMedico")
		}

	case entity.PhasePublication:
		if !video.FinalApproval {
			missing = append(missing, "aprovacaoFinal")
		}
		if video.AdLink == "" {
			missing = append(missing, "linkAnuncio")
		}
		deliverables, err := v.deliverableRepo.ListByVideo(ctx, video.ID)
		if err != nil {
			return nil, err
		}
		allNumbered := true
		allNamed := true
		for _, d := range deliverables {
			if d.AdNumber == nil {
				allNumbered = false
			}
			if d.NomenclatureName() == "" {
				allNamed = false
			}
		}
		if !allNumbered {
			missing = append(missing, "AD numbers em todos deliverables")
		}
		if !allNamed {
			missing = append(missing, "nomenclatura em todos deliverables")
		}
	}

	return missing, nil
}

// CheckProject 构建项目推进就绪报告
// 推进条件：至少 1 个视频，且每个视频的状态等于当前阶段的就绪状态
func (v *Validator) CheckProject(ctx context.Context, project *entity.Project) (*AdvanceStatus, error) {
	videos, err := v.videoRepo.ListByProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	ready, err := entity.ReadyStatusForPhase(project.CurrentPhase)
	if err != nil {
		return nil, err
	}

	status := &AdvanceStatus{
		ProjectID:    project.ID,
		CurrentPhase: project.CurrentPhase,
		VideosTotal:  len(videos),
		Videos:       make([]VideoReadiness, 0, len(videos)),
	}

	for _, video := range videos {
		missing, err := v.CheckVideo(ctx, video, project.CurrentPhase)
		if err != nil {
			return nil, err
		}
		r := VideoReadiness{
			VideoID:         video.ID,
			DescriptiveName: video.DescriptiveName,
			PhaseStatus:     video.PhaseStatus,
			Ready:           video.PhaseStatus == ready && len(missing) == 0,
			Missing:         missing,
		}
		if r.Ready {
			status.VideosReady++
		}
		status.Videos = append(status.Videos, r)
	}

	status.CanAdvance = status.VideosTotal > 0 && status.VideosReady == status.VideosTotal
	return status, nil
}

// RequireAdvance CheckProject 的断言形式，未就绪返回 CodeVideosNotReady
func (v *Validator) RequireAdvance(ctx context.Context, project *entity.Project) (*AdvanceStatus, error) {
	status, err := v.CheckProject(ctx, project)
	if err != nil {
		return nil, err
	}
	if !status.CanAdvance {
		if status.VideosTotal == 0 {
			return status, errors.New(errors.CodeVideosNotReady, "项目没有视频，无法推进阶段")
		}
		return status, errors.New(errors.CodeVideosNotReady, "存在未就绪的视频，无法推进阶段")
	}
	return status, nil
}
