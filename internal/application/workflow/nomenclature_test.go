package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-workflow-api/internal/domain/entity"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"重音去除", "Rotina CBD Mudou", "ROTINACBDMUDOU"},
		{"葡语变音符号", "Ansiedade é não ção", "ANSIEDADEENAOCAO"},
		{"特殊字符过滤", "hook #1 (teste!)", "HOOK1TESTE"},
		{"截断到 25 字符", "abcdefghijklmnopqrstuvwxyz012345", "ABCDEFGHIJKLMNOPQRSTUVWXY"},
		{"空输入", "", ""},
		{"纯符号", "!!! ---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestCreatorCode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"单个单词截前 6", "Brunawt", "BRUNAW"},
		{"单个短单词", "Ana", "ANA"},
		{"多单词各取前 3", "Bruna Water", "BRUWAT"},
		{"多单词截到 8", "Maria Jose Santos Silva", "MARJOSSA"},
		{"空名称", "", "UNKNWN"},
		{"带重音", "José", "JOSE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CreatorCode(tt.input))
		})
	}
}

func TestGenerate(t *testing.T) {
	date := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	base := NomenclatureInput{
		AdNumber:     602,
		ApprovalDate: date,
		OriginCode:   "OSLLO",
		CreatorCode:  "BRUNAWT",
		Name:         "Rotina CBD Mudou",
		Theme:        entity.ThemeAnxiety,
		Style:        entity.StyleUGC,
		Format:       entity.FormatVideo,
		Duration:     entity.Duration30s,
		Size:         entity.Size9x16,
		HookNumber:   1,
		Version:      1,
	}

	t.Run("基础段顺序", func(t *testing.T) {
		got := Generate(base)
		assert.Equal(t, "AD0602_20240305_OSLLO_BRUNAWT_ROTINACBDMUDOU_ANSIEDADE_UGC_VID_30S_9X16", got)
	})

	t.Run("全部可选后缀", func(t *testing.T) {
		in := base
		in.ShowsProduct = true
		in.HookNumber = 2
		in.Version = 3
		in.IsPost = true
		got := Generate(in)
		assert.Equal(t, "AD0602_20240305_OSLLO_BRUNAWT_ROTINACBDMUDOU_ANSIEDADE_UGC_VID_30S_9X16_PROD_HK2_V3_POST", got)
	})

	t.Run("编号补零到 4 位", func(t *testing.T) {
		in := base
		in.AdNumber = 7
		assert.Contains(t, Generate(in), "AD0007_")
	})

	t.Run("hook 1 与 version 1 不产生后缀", func(t *testing.T) {
		got := Generate(base)
		assert.NotContains(t, got, "_HK")
		assert.NotContains(t, got, "_V1")
	})
}

func TestNomenclatorRegenerateForVideo(t *testing.T) {
	ctx := context.Background()
	projectRepo := newFakeProjectRepo()
	videoRepo := newFakeVideoRepo()
	deliverableRepo := newFakeDeliverableRepo()

	project := entity.NewProject("Campanha Sono", "briefing", "at-1", "or-1", "u-1")
	project.ID = "p-1"
	project.OriginCode = "OSLLO"
	require.NoError(t, projectRepo.Create(ctx, project))

	video := entity.NewVideo("p-1", "Rotina CBD Mudou", entity.ThemeAnxiety, entity.StyleUGC, entity.FormatVideo, entity.PhasePublication)
	video.ID = "v-1"
	video.CreatorID = "c-1"
	video.CreatorCode = "BRUNAWT"
	require.NoError(t, videoRepo.Create(ctx, video))

	numberedAt := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	n602 := 602
	require.NoError(t, deliverableRepo.Create(ctx, &entity.Deliverable{
		ID: "d-1", VideoID: "v-1", HookNumber: 1,
		Duration: entity.Duration30s, Size: entity.Size9x16,
		AdNumber: &n602, NumberedAt: &numberedAt, VersionNumber: 1,
	}))
	// 未编号素材不参与命名
	require.NoError(t, deliverableRepo.Create(ctx, &entity.Deliverable{
		ID: "d-2", VideoID: "v-1", HookNumber: 2,
		Duration: entity.Duration15s, Size: entity.Size1x1, VersionNumber: 1,
	}))
	// 人工编辑命名不被覆盖
	n603 := 603
	require.NoError(t, deliverableRepo.Create(ctx, &entity.Deliverable{
		ID: "d-3", VideoID: "v-1", HookNumber: 3,
		Duration: entity.Duration60s, Size: entity.Size16x9,
		AdNumber: &n603, NumberedAt: &numberedAt, VersionNumber: 1,
		EditedName: "NOME_MANUAL",
	}))

	nom := NewNomenclator(videoRepo, projectRepo, deliverableRepo)
	require.NoError(t, nom.RegenerateForVideo(ctx, "v-1"))

	d1, _ := deliverableRepo.GetByID(ctx, "d-1")
	assert.Equal(t, "AD0602_20240305_OSLLO_BRUNAWT_ROTINACBDMUDOU_ANSIEDADE_UGC_VID_30S_9X16", d1.GeneratedName)

	d2, _ := deliverableRepo.GetByID(ctx, "d-2")
	assert.Empty(t, d2.GeneratedName)

	d3, _ := deliverableRepo.GetByID(ctx, "d-3")
	assert.Equal(t, "NOME_MANUAL", d3.EditedName)
	assert.Equal(t, "NOME_MANUAL", d3.NomenclatureName())
	assert.Contains(t, d3.GeneratedName, "AD0603_")

	t.Run("幂等", func(t *testing.T) {
		before, _ := deliverableRepo.GetByID(ctx, "d-1")
		require.NoError(t, nom.RegenerateForVideo(ctx, "v-1"))
		after, _ := deliverableRepo.GetByID(ctx, "d-1")
		assert.Equal(t, before.GeneratedName, after.GeneratedName)
	})

	t.Run("来源与创作者兜底", func(t *testing.T) {
		p2 := entity.NewProject("Sem Origem", "b", "at-1", "or-2", "u-1")
		p2.ID = "p-2"
		require.NoError(t, projectRepo.Create(ctx, p2))

		v2 := entity.NewVideo("p-2", "Teste", entity.ThemeGeneral, entity.StylePOV, entity.FormatImage, entity.PhasePublication)
		v2.ID = "v-2"
		require.NoError(t, videoRepo.Create(ctx, v2))

		n700 := 700
		require.NoError(t, deliverableRepo.Create(ctx, &entity.Deliverable{
			ID: "d-4", VideoID: "v-2", HookNumber: 1,
			Duration: entity.Duration15s, Size: entity.Size1x1,
			AdNumber: &n700, NumberedAt: &numberedAt, VersionNumber: 1,
		}))

		require.NoError(t, nom.RegenerateForVideo(ctx, "v-2"))
		d4, _ := deliverableRepo.GetByID(ctx, "d-4")
		assert.Contains(t, d4.GeneratedName, "_OUTRO_NO1_")
	})
}
