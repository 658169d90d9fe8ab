package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ad-workflow-api/internal/domain/entity"
)

func TestMatrixCoversAllActions(t *testing.T) {
	assert.Len(t, Matrix, 14)
	for key, action := range Matrix {
		assert.Equal(t, key, action.Key)
		assert.True(t, action.Phase.IsValid(), "action %s", key)
		assert.NotEmpty(t, action.ApproverPositions, "action %s", key)
	}
}

func TestRegressActionForPhase(t *testing.T) {
	// 阶段 1 不可作为回退起点
	_, ok := RegressActionForPhase(entity.PhaseBriefing)
	assert.False(t, ok)

	for phase := entity.PhaseScript; phase <= entity.PhasePublication; phase++ {
		key, ok := RegressActionForPhase(phase)
		require.True(t, ok, "phase %d", phase)
		_, defined := Matrix[key]
		assert.True(t, defined, "regress action %s missing from matrix", key)
	}
}

func TestActionForApprovalField(t *testing.T) {
	// 两个最终验证标志共用 validacao_final
	k1, ok := ActionForApprovalField(entity.ApprovalFinalCompliance)
	require.True(t, ok)
	k2, ok := ActionForApprovalField(entity.ApprovalFinalMedical)
	require.True(t, ok)
	assert.Equal(t, ActionFinalValidation, k1)
	assert.Equal(t, k1, k2)

	_, ok = ActionForApprovalField(entity.ApprovalField("inexistente"))
	assert.False(t, ok)
}

func TestAdvanceActionForPhase(t *testing.T) {
	key, ok := AdvanceActionForPhase(entity.PhaseBriefing)
	require.True(t, ok)
	assert.Equal(t, ActionApproveBriefing, key)

	// 阶段 2-6 不需要人工审批即可推进
	for phase := entity.PhaseScript; phase <= entity.PhasePublication; phase++ {
		_, ok := AdvanceActionForPhase(phase)
		assert.False(t, ok, "phase %d", phase)
	}
}

func TestCheckerCanPerform(t *testing.T) {
	ctx := context.Background()

	t.Run("SUPER_ADMIN 无条件放行", func(t *testing.T) {
		checker := NewChecker(newFakeAreaRepo())
		ok, err := checker.CanPerformKey(ctx, "u-1", entity.UserRoleSuperAdmin, ActionApproveBriefing)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("授权区域内职级匹配放行", func(t *testing.T) {
		areaRepo := newFakeAreaRepo()
		areaRepo.addMember("u-1", "growth", entity.PositionHead)
		checker := NewChecker(areaRepo)

		ok, err := checker.CanPerformKey(ctx, "u-1", entity.UserRoleMember, ActionApproveBriefing)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("职级不足拒绝", func(t *testing.T) {
		areaRepo := newFakeAreaRepo()
		// aprovar_elenco 只允许 growth HEAD
		areaRepo.addMember("u-1", "growth", entity.PositionStaff)
		checker := NewChecker(areaRepo)

		ok, err := checker.CanPerformKey(ctx, "u-1", entity.UserRoleMember, ActionApproveCast)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("区域不匹配拒绝", func(t *testing.T) {
		areaRepo := newFakeAreaRepo()
		areaRepo.addMember("u-1", "design", entity.PositionHead)
		checker := NewChecker(areaRepo)

		ok, err := checker.CanPerformKey(ctx, "u-1", entity.UserRoleAdmin, ActionApproveBriefing)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("slug 解析不到活跃区域拒绝", func(t *testing.T) {
		areaRepo := newFakeAreaRepo()
		area := areaRepo.addArea("growth")
		area.IsActive = false
		areaRepo.memberships = append(areaRepo.memberships, entity.AreaMember{
			ID: "m-0", UserID: "u-1", AreaID: area.ID, Position: entity.PositionHead,
		})
		checker := NewChecker(areaRepo)

		ok, err := checker.CanPerformKey(ctx, "u-1", entity.UserRoleMember, ActionApproveCast)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("未知动作不设限", func(t *testing.T) {
		checker := NewChecker(newFakeAreaRepo())
		ok, err := checker.CanPerformKey(ctx, "u-1", entity.UserRoleMember, ActionKey("acao_desconhecida"))
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
