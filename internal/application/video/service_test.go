package video

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
)

type memProjectRepo struct {
	projects map[string]*entity.Project
}

func (r *memProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *memProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	return r.projects[id], nil
}

func (r *memProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	r.projects[p.ID] = p
	return nil
}

func (r *memProjectRepo) Delete(ctx context.Context, id string) error {
	delete(r.projects, id)
	return nil
}

func (r *memProjectRepo) List(ctx context.Context, filter *repository.ProjectFilter, pagination repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	return nil, nil
}

func (r *memProjectRepo) UpdateStatus(ctx context.Context, id string, status entity.ProjectStatus) error {
	r.projects[id].Status = status
	return nil
}

func (r *memProjectRepo) IncrementPhase(ctx context.Context, id string, from entity.Phase) error {
	p, ok := r.projects[id]
	if !ok || p.CurrentPhase != from {
		return repository.ErrPhaseMoved
	}
	p.CurrentPhase++
	return nil
}

func (r *memProjectRepo) CountVideos(ctx context.Context, id string) (int, error) {
	return 0, nil
}

type memVideoRepo struct {
	videos map[string]*entity.Video
}

func (r *memVideoRepo) Create(ctx context.Context, v *entity.Video) error {
	r.videos[v.ID] = v
	return nil
}

func (r *memVideoRepo) GetByID(ctx context.Context, id string) (*entity.Video, error) {
	return r.videos[id], nil
}

func (r *memVideoRepo) Update(ctx context.Context, v *entity.Video) error {
	r.videos[v.ID] = v
	return nil
}

func (r *memVideoRepo) Delete(ctx context.Context, id string) error {
	delete(r.videos, id)
	return nil
}

func (r *memVideoRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.Video, error) {
	var out []*entity.Video
	for _, v := range r.videos {
		if v.ProjectID == projectID {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *memVideoRepo) UpdatePhaseStatus(ctx context.Context, id string, status entity.PhaseStatus) error {
	r.videos[id].PhaseStatus = status
	return nil
}

func (r *memVideoRepo) ResetForNextPhase(ctx context.Context, projectID string, phase entity.Phase) error {
	return nil
}

func (r *memVideoRepo) SetApproval(ctx context.Context, id string, field entity.ApprovalField, value bool) error {
	r.videos[id].SetApproval(field, value)
	return nil
}

func newTestService(phase entity.Phase) (*Service, *memProjectRepo, *memVideoRepo) {
	projectRepo := &memProjectRepo{projects: map[string]*entity.Project{}}
	videoRepo := &memVideoRepo{videos: map[string]*entity.Video{}}

	p := entity.NewProject("Campanha", "b", "at-1", "or-1", "u-1")
	p.ID = "p-1"
	p.Status = entity.ProjectStatusActive
	p.CurrentPhase = phase
	projectRepo.projects["p-1"] = p

	return NewService(projectRepo, videoRepo), projectRepo, videoRepo
}

func TestCreateVideo(t *testing.T) {
	ctx := context.Background()

	t.Run("名称在创建时清洗", func(t *testing.T) {
		svc, _, _ := newTestService(entity.PhaseScript)
		v, err := svc.Create(ctx, CreateInput{
			ProjectID:       "p-1",
			DescriptiveName: "Rotina CBD Mudou!",
			Theme:           entity.ThemeAnxiety,
			Style:           entity.StyleUGC,
			Format:          entity.FormatVideo,
		})
		require.NoError(t, err)
		assert.Equal(t, "ROTINACBDMUDOU", v.DescriptiveName)
		assert.Equal(t, entity.PhaseScript, v.CurrentPhase)
		assert.Equal(t, entity.PhaseStatusPending, v.PhaseStatus)
	})

	t.Run("阶段 2 之后列表锁定", func(t *testing.T) {
		svc, _, _ := newTestService(entity.PhaseCasting)
		_, err := svc.Create(ctx, CreateInput{
			ProjectID: "p-1", DescriptiveName: "Teste",
			Theme: entity.ThemeGeneral, Style: entity.StyleUGC, Format: entity.FormatVideo,
		})
		require.Error(t, err)
	})

	t.Run("终态项目拒绝", func(t *testing.T) {
		svc, projectRepo, _ := newTestService(entity.PhaseScript)
		projectRepo.projects["p-1"].Status = entity.ProjectStatusCancelled
		_, err := svc.Create(ctx, CreateInput{
			ProjectID: "p-1", DescriptiveName: "Teste",
			Theme: entity.ThemeGeneral, Style: entity.StyleUGC, Format: entity.FormatVideo,
		})
		require.Error(t, err)
	})
}

func TestUpdateVideoCeilings(t *testing.T) {
	ctx := context.Background()

	seed := func(svc *Service, videoRepo *memVideoRepo, phase entity.Phase) *entity.Video {
		v := entity.NewVideo("p-1", "TESTE", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, phase)
		v.ID = "v-1"
		videoRepo.videos["v-1"] = v
		return v
	}

	t.Run("描述性字段阶段 2 后锁定", func(t *testing.T) {
		svc, _, videoRepo := newTestService(entity.PhaseCasting)
		seed(svc, videoRepo, entity.PhaseCasting)

		name := "Novo Nome"
		_, err := svc.Update(ctx, "v-1", UpdateInput{DescriptiveName: &name})
		require.Error(t, err)

		// 脚本在阶段 3 仍可修改
		script := "novo roteiro"
		updated, err := svc.Update(ctx, "v-1", UpdateInput{Script: &script})
		require.NoError(t, err)
		assert.Equal(t, "novo roteiro", updated.Script)
	})

	t.Run("创作者阶段 3 后锁定", func(t *testing.T) {
		svc, _, videoRepo := newTestService(entity.PhaseProduction)
		seed(svc, videoRepo, entity.PhaseProduction)

		creator := "c-2"
		_, err := svc.Update(ctx, "v-1", UpdateInput{CreatorID: &creator})
		require.Error(t, err)

		// storyboard 在阶段 4 仍可修改
		sb := "https://files.example.com/sb"
		updated, err := svc.Update(ctx, "v-1", UpdateInput{StoryboardURL: &sb})
		require.NoError(t, err)
		assert.Equal(t, sb, updated.StoryboardURL)
	})

	t.Run("脚本阶段 5 后锁定", func(t *testing.T) {
		svc, _, videoRepo := newTestService(entity.PhasePublication)
		seed(svc, videoRepo, entity.PhasePublication)

		script := "tarde demais"
		_, err := svc.Update(ctx, "v-1", UpdateInput{Script: &script})
		require.Error(t, err)
	})

	t.Run("更新名称同样清洗", func(t *testing.T) {
		svc, _, videoRepo := newTestService(entity.PhaseScript)
		seed(svc, videoRepo, entity.PhaseScript)

		name := "Café com Leite"
		updated, err := svc.Update(ctx, "v-1", UpdateInput{DescriptiveName: &name})
		require.NoError(t, err)
		assert.Equal(t, "CAFECOMLEITE", updated.DescriptiveName)
	})
}

func TestDeleteVideo(t *testing.T) {
	ctx := context.Background()

	t.Run("阶段 2 内可删除", func(t *testing.T) {
		svc, _, videoRepo := newTestService(entity.PhaseScript)
		v := entity.NewVideo("p-1", "TESTE", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, entity.PhaseScript)
		v.ID = "v-1"
		videoRepo.videos["v-1"] = v

		require.NoError(t, svc.Delete(ctx, "v-1"))
		assert.Empty(t, videoRepo.videos)
	})

	t.Run("阶段 3 起拒绝删除", func(t *testing.T) {
		svc, _, videoRepo := newTestService(entity.PhaseCasting)
		v := entity.NewVideo("p-1", "TESTE", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, entity.PhaseCasting)
		v.ID = "v-1"
		videoRepo.videos["v-1"] = v

		require.Error(t, svc.Delete(ctx, "v-1"))
	})
}
