package deliverable

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-workflow-api/internal/application/workflow"
	"ad-workflow-api/internal/domain/entity"
)

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

type memDeliverableRepo struct {
	items map[string]*entity.Deliverable
}

func (r *memDeliverableRepo) Create(ctx context.Context, d *entity.Deliverable) error {
	r.items[d.ID] = d
	return nil
}

func (r *memDeliverableRepo) GetByID(ctx context.Context, id string) (*entity.Deliverable, error) {
	return r.items[id], nil
}

func (r *memDeliverableRepo) Update(ctx context.Context, d *entity.Deliverable) error {
	r.items[d.ID] = d
	return nil
}

func (r *memDeliverableRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memDeliverableRepo) ListByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error) {
	var out []*entity.Deliverable
	for _, d := range r.items {
		if d.VideoID == videoID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HookNumber < out[j].HookNumber })
	return out, nil
}

func (r *memDeliverableRepo) ListUnnumberedByVideo(ctx context.Context, videoID string) ([]*entity.Deliverable, error) {
	all, _ := r.ListByVideo(ctx, videoID)
	var out []*entity.Deliverable
	for _, d := range all {
		if d.AdNumber == nil {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *memDeliverableRepo) SetAdNumber(ctx context.Context, id string, adNumber int) error {
	r.items[id].AdNumber = &adNumber
	return nil
}

func (r *memDeliverableRepo) SetGeneratedName(ctx context.Context, id string, name string) error {
	r.items[id].GeneratedName = name
	return nil
}

type memAreaRepo struct{}

func (memAreaRepo) ListActiveBySlugs(ctx context.Context, slugs []string) ([]*entity.Area, error) {
	return nil, nil
}

func (memAreaRepo) HasMembership(ctx context.Context, userID string, areaIDs []string, positions []entity.AreaPosition) (bool, error) {
	return false, nil
}

func newTestService(phase entity.Phase) (*Service, *memVideoRepo, *memDeliverableRepo) {
	videoRepo := &memVideoRepo{videos: map[string]*entity.Video{}}
	deliverableRepo := &memDeliverableRepo{items: map[string]*entity.Deliverable{}}
	v := entity.NewVideo("p-1", "Teste", entity.ThemeGeneral, entity.StyleUGC, entity.FormatVideo, phase)
	v.ID = "v-1"
	videoRepo.videos["v-1"] = v
	return NewService(videoRepo, deliverableRepo, workflow.NewChecker(memAreaRepo{})), videoRepo, deliverableRepo
}

var admin = workflow.Actor{UserID: "admin", Role: entity.UserRoleSuperAdmin}

func TestCreateDeliverable(t *testing.T) {
	ctx := context.Background()

	t.Run("阶段 4 之前拒绝", func(t *testing.T) {
		svc, _, _ := newTestService(entity.PhaseCasting)
		_, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.Error(t, err)
	})

	t.Run("hook 取最小空缺", func(t *testing.T) {
		svc, _, repo := newTestService(entity.PhaseProduction)
		first, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.NoError(t, err)
		assert.Equal(t, 1, first.HookNumber)
		assert.Equal(t, 1, first.VersionNumber)

		second, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration15s, Size: entity.Size1x1})
		require.NoError(t, err)
		assert.Equal(t, 2, second.HookNumber)

		// 删除 hook 1 后新素材补缺
		require.NoError(t, svc.Delete(ctx, first.ID))
		third, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.NoError(t, err)
		assert.Equal(t, 1, third.HookNumber)
		assert.Len(t, repo.items, 2)
	})

	t.Run("上限 10 个", func(t *testing.T) {
		svc, _, _ := newTestService(entity.PhaseProduction)
		for i := 0; i < entity.MaxDeliverablesPerVideo; i++ {
			_, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
			require.NoError(t, err)
		}
		_, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.Error(t, err)
	})

	t.Run("任一兄弟发号后封锁", func(t *testing.T) {
		svc, _, repo := newTestService(entity.PhaseProduction)
		d, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.NoError(t, err)
		require.NoError(t, repo.SetAdNumber(ctx, d.ID, 100))

		_, err = svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration15s, Size: entity.Size1x1})
		require.Error(t, err)
	})
}

func TestUpdateDeliverable(t *testing.T) {
	ctx := context.Background()

	t.Run("未发号可更新", func(t *testing.T) {
		svc, _, _ := newTestService(entity.PhaseProduction)
		d, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.NoError(t, err)

		newFile := "f-2"
		updated, err := svc.Update(ctx, d.ID, UpdateInput{FileID: &newFile})
		require.NoError(t, err)
		assert.Equal(t, "f-2", updated.FileID)
	})

	t.Run("发号后封存", func(t *testing.T) {
		svc, _, repo := newTestService(entity.PhaseProduction)
		d, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.NoError(t, err)
		require.NoError(t, repo.SetAdNumber(ctx, d.ID, 100))

		newFile := "f-2"
		_, err = svc.Update(ctx, d.ID, UpdateInput{FileID: &newFile})
		require.Error(t, err)

		err = svc.Delete(ctx, d.ID)
		require.Error(t, err)
	})
}

func TestUpdateNomenclature(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) (*Service, *memVideoRepo, *entity.Deliverable) {
		svc, videoRepo, repo := newTestService(entity.PhaseProduction)
		d, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.NoError(t, err)
		require.NoError(t, repo.SetAdNumber(ctx, d.ID, 100))
		videoRepo.videos["v-1"].CurrentPhase = entity.PhasePublication
		videoRepo.videos["v-1"].PhaseStatus = entity.PhaseStatusApproved
		return svc, videoRepo, d
	}

	t.Run("命名通道可修改封存素材", func(t *testing.T) {
		svc, _, d := setup(t)
		name := "NOME_EDITADO"
		version := 2
		updated, err := svc.UpdateNomenclature(ctx, d.ID, NomenclatureInput{EditedName: &name, VersionNumber: &version}, admin)
		require.NoError(t, err)
		assert.Equal(t, "NOME_EDITADO", updated.EditedName)
		assert.Equal(t, 2, updated.VersionNumber)
	})

	t.Run("未发号素材拒绝", func(t *testing.T) {
		svc, _, _ := newTestService(entity.PhaseProduction)
		d, err := svc.Create(ctx, CreateInput{VideoID: "v-1", Duration: entity.Duration30s, Size: entity.Size9x16})
		require.NoError(t, err)

		name := "X"
		_, err = svc.UpdateNomenclature(ctx, d.ID, NomenclatureInput{EditedName: &name}, admin)
		require.Error(t, err)
	})

	t.Run("视频不在命名阶段拒绝", func(t *testing.T) {
		svc, videoRepo, d := setup(t)
		videoRepo.videos["v-1"].PhaseStatus = entity.PhaseStatusPending

		name := "X"
		_, err := svc.UpdateNomenclature(ctx, d.ID, NomenclatureInput{EditedName: &name}, admin)
		require.Error(t, err)
	})

	t.Run("未授权成员拒绝", func(t *testing.T) {
		svc, _, d := setup(t)
		member := workflow.Actor{UserID: "u-1", Role: entity.UserRoleMember}
		name := "X"
		_, err := svc.UpdateNomenclature(ctx, d.ID, NomenclatureInput{EditedName: &name}, member)
		require.Error(t, err)
	})
}
