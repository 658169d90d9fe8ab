package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-workflow-api/internal/domain/entity"
)

// readyVideo 构造在指定阶段满足全部字段要求并处于就绪状态的视频
func readyVideo(id, projectID string, phase entity.Phase) *entity.Video {
	v := entity.NewVideo(projectID, "Teste", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, phase)
	v.ID = id
	ready, _ := entity.ReadyStatusForPhase(phase)
	v.PhaseStatus = ready
	v.Script = "roteiro completo"
	v.ScriptCompliance = true
	v.ScriptMedical = true
	v.CreatorID = "c-1"
	v.CastApproval = true
	v.PreProductionApproval = true
	v.StoryboardURL = "https://files.example.com/sb-1"
	v.ContentReview = true
	v.DesignReview = true
	v.FinalCompliance = true
	v.FinalMedical = true
	v.FinalApproval = true
	v.AdLink = "https://ads.example.com/1"
	return v
}

func TestValidatorCheckVideo(t *testing.T) {
	ctx := context.Background()
	videoRepo := newFakeVideoRepo()
	deliverableRepo := newFakeDeliverableRepo()
	v := NewValidator(videoRepo, deliverableRepo)

	t.Run("阶段 1 要求描述性字段齐备", func(t *testing.T) {
		video := &entity.Video{ID: "v-0", ProjectID: "p-1", CurrentPhase: entity.PhaseBriefing}
		missing, err := v.CheckVideo(ctx, video, entity.PhaseBriefing)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"nomeDescritivo", "tema", "estilo", "formato"}, missing)

		full := entity.NewVideo("p-1", "Teste", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, entity.PhaseBriefing)
		missing, err = v.CheckVideo(ctx, full, entity.PhaseBriefing)
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("阶段 2 要求脚本与双重验证", func(t *testing.T) {
		video := entity.NewVideo("p-1", "Teste", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, entity.PhaseScript)
		missing, err := v.CheckVideo(ctx, video, entity.PhaseScript)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"roteiro", "validacaoRoteiroCompliance", "validacaoRoteiroMedico"}, missing)
	})

	t.Run("阶段 3 要求创作者与预制作", func(t *testing.T) {
		video := entity.NewVideo("p-1", "Teste", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, entity.PhaseCasting)
		missing, err := v.CheckVideo(ctx, video, entity.PhaseCasting)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"criadorId", "aprovacaoElenco", "aprovacaoPreProducao", "storyboardUrl ou localGravacao",
		}, missing)

		// 拍摄地点可替代 storyboard
		video.CreatorID = "c-1"
		video.CastApproval = true
		video.PreProductionApproval = true
		video.ShootLocation = "Estudio SP"
		missing, err = v.CheckVideo(ctx, video, entity.PhaseCasting)
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("阶段 4 要求素材且至少一个带文件", func(t *testing.T) {
		video := readyVideo("v-prod", "p-1", entity.PhaseProduction)
		missing, err := v.CheckVideo(ctx, video, entity.PhaseProduction)
		require.NoError(t, err)
		assert.Equal(t, []string{"pelo menos 1 deliverable"}, missing)

		require.NoError(t, deliverableRepo.Create(ctx, &entity.Deliverable{
			ID: "d-1", VideoID: "v-prod", HookNumber: 1,
			Duration: entity.Duration30s, Size: entity.Size9x16, VersionNumber: 1,
		}))
		missing, err = v.CheckVideo(ctx, video, entity.PhaseProduction)
		require.NoError(t, err)
		assert.Equal(t, []string{"deliverable com arquivo"}, missing)

		require.NoError(t, deliverableRepo.Create(ctx, &entity.Deliverable{
			ID: "d-2", VideoID: "v-prod", HookNumber: 2, FileID: "f-1",
			Duration: entity.Duration30s, Size: entity.Size9x16, VersionNumber: 1,
		}))
		missing, err = v.CheckVideo(ctx, video, entity.PhaseProduction)
		require.NoError(t, err)
		assert.Empty(t, missing)
	})

	t.Run("阶段 5 要求四个审查标志", func(t *testing.T) {
		video := entity.NewVideo("p-1", "Teste", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, entity.PhaseReview)
		missing, err := v.CheckVideo(ctx, video, entity.PhaseReview)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"revisaoConteudo", "revisaoDesign", "validacaoFinalCompliance", "validacaoFinalMedico",
		}, missing)
	})

	t.Run("阶段 6 要求编号与命名覆盖全部素材", func(t *testing.T) {
		video := readyVideo("v-pub", "p-1", entity.PhasePublication)
		video.FinalApproval = false
		video.AdLink = ""
		require.NoError(t, deliverableRepo.Create(ctx, &entity.Deliverable{
			ID: "d-3", VideoID: "v-pub", HookNumber: 1,
			Duration: entity.Duration30s, Size: entity.Size9x16, VersionNumber: 1,
		}))

		missing, err := v.CheckVideo(ctx, video, entity.PhasePublication)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"aprovacaoFinal", "linkAnuncio",
			"AD numbers em todos deliverables", "nomenclatura em todos deliverables",
		}, missing)

		video.FinalApproval = true
		video.AdLink = "https://ads.example.com/1"
		n := 10
		d, _ := deliverableRepo.GetByID(ctx, "d-3")
		d.AdNumber = &n
		d.EditedName = "NOME"
		require.NoError(t, deliverableRepo.Update(ctx, d))

		missing, err = v.CheckVideo(ctx, video, entity.PhasePublication)
		require.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestValidatorCheckProject(t *testing.T) {
	ctx := context.Background()

	t.Run("没有视频无法推进", func(t *testing.T) {
		v := NewValidator(newFakeVideoRepo(), newFakeDeliverableRepo())
		project := entity.NewProject("Vazio", "b", "at-1", "or-1", "u-1")
		project.ID = "p-empty"
		project.CurrentPhase = entity.PhaseScript

		status, err := v.CheckProject(ctx, project)
		require.NoError(t, err)
		assert.Zero(t, status.VideosTotal)
		assert.False(t, status.CanAdvance)
	})

	t.Run("任一视频未就绪则不可推进", func(t *testing.T) {
		videoRepo := newFakeVideoRepo()
		v := NewValidator(videoRepo, newFakeDeliverableRepo())
		project := entity.NewProject("Misto", "b", "at-1", "or-1", "u-1")
		project.ID = "p-1"
		project.CurrentPhase = entity.PhaseScript

		require.NoError(t, videoRepo.Create(ctx, readyVideo("v-1", "p-1", entity.PhaseScript)))
		pending := entity.NewVideo("p-1", "Pendente", entity.ThemeSleep, entity.StylePOV, entity.FormatVideo, entity.PhaseScript)
		pending.ID = "v-2"
		require.NoError(t, videoRepo.Create(ctx, pending))

		status, err := v.CheckProject(ctx, project)
		require.NoError(t, err)
		require.Len(t, status.Videos, 2)
		assert.True(t, status.Videos[0].Ready)
		assert.False(t, status.Videos[1].Ready)
		assert.NotEmpty(t, status.Videos[1].Missing)
		assert.Equal(t, 1, status.VideosReady)
		assert.False(t, status.CanAdvance)
	})

	t.Run("状态就绪但字段缺失同样不可推进", func(t *testing.T) {
		videoRepo := newFakeVideoRepo()
		v := NewValidator(videoRepo, newFakeDeliverableRepo())
		project := entity.NewProject("Incompleto", "b", "at-1", "or-1", "u-1")
		project.ID = "p-2"
		project.CurrentPhase = entity.PhaseScript

		video := entity.NewVideo("p-2", "SemRoteiro", entity.ThemeSleep, entity.StyleUGC, entity.FormatVideo, entity.PhaseScript)
		video.ID = "v-3"
		video.PhaseStatus = entity.PhaseStatusReady
		require.NoError(t, videoRepo.Create(ctx, video))

		status, err := v.CheckProject(ctx, project)
		require.NoError(t, err)
		assert.False(t, status.CanAdvance)
		assert.Contains(t, status.Videos[0].Missing, "roteiro")
	})

	t.Run("全部就绪可推进", func(t *testing.T) {
		videoRepo := newFakeVideoRepo()
		v := NewValidator(videoRepo, newFakeDeliverableRepo())
		project := entity.NewProject("Pronto", "b", "at-1", "or-1", "u-1")
		project.ID = "p-3"
		project.CurrentPhase = entity.PhaseScript

		require.NoError(t, videoRepo.Create(ctx, readyVideo("v-4", "p-3", entity.PhaseScript)))

		status, err := v.CheckProject(ctx, project)
		require.NoError(t, err)
		assert.True(t, status.CanAdvance)
		assert.Equal(t, status.VideosTotal, status.VideosReady)
	})
}
