// Package workflow 实现广告创意工作流引擎：
// 权限矩阵、阶段状态机、AD number 原子编号与命名生成
package workflow

import (
	"context"

	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
)

// ActionKey 工作流动作标识
type ActionKey string

// 全部 14 个工作流动作
const (
	ActionApproveBriefing          ActionKey = "aprovar_briefing"
	ActionWriteScript              ActionKey = "escrever_roteiro"
	ActionValidateScriptCompliance ActionKey = "validar_roteiro_compliance"
	ActionValidateScriptMedical    ActionKey = "validar_roteiro_medico"
	ActionSelectCast               ActionKey = "selecionar_elenco"
	ActionApproveCast              ActionKey = "aprovar_elenco"
	ActionPreProduction            ActionKey = "pre_producao"
	ActionApprovePreProduction     ActionKey = "aprovar_pre_producao"
	ActionProductionDelivery       ActionKey = "producao_entrega"
	ActionContentReview            ActionKey = "revisao_conteudo"
	ActionDesignReview             ActionKey = "revisao_design"
	ActionFinalValidation          ActionKey = "validacao_final"
	ActionFinalApproval            ActionKey = "aprovacao_final"
	ActionNomenclature             ActionKey = "nomenclatura"
)

// Action 工作流动作定义：所属阶段 + 可审批区域 + 可审批职级
type Action struct {
	Phase             entity.Phase
	Key               ActionKey
	ApproverAreaSlugs []string
	ApproverPositions []entity.AreaPosition
}

// Matrix 静态权限矩阵，启动时加载一次，全程只读
var Matrix = map[ActionKey]Action{
	// 阶段 1
	ActionApproveBriefing: {
		Phase:             entity.PhaseBriefing,
		Key:               ActionApproveBriefing,
		ApproverAreaSlugs: []string{"content-manager", "growth"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator},
	},

	// 阶段 2
	ActionWriteScript: {
		Phase:             entity.PhaseScript,
		Key:               ActionWriteScript,
		ApproverAreaSlugs: []string{"copywriting", "oslo"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator, entity.PositionStaff},
	},
	ActionValidateScriptCompliance: {
		Phase:             entity.PhaseScript,
		Key:               ActionValidateScriptCompliance,
		ApproverAreaSlugs: []string{"compliance", "medico"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator},
	},
	ActionValidateScriptMedical: {
		Phase:             entity.PhaseScript,
		Key:               ActionValidateScriptMedical,
		ApproverAreaSlugs: []string{"compliance", "medico"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator},
	},

	// 阶段 3
	ActionSelectCast: {
		Phase:             entity.PhaseCasting,
		Key:               ActionSelectCast,
		ApproverAreaSlugs: []string{"ugc-manager", "oslo"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator},
	},
	ActionApproveCast: {
		Phase:             entity.PhaseCasting,
		Key:               ActionApproveCast,
		ApproverAreaSlugs: []string{"growth"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead},
	},
	ActionPreProduction: {
		Phase:             entity.PhaseCasting,
		Key:               ActionPreProduction,
		ApproverAreaSlugs: []string{"oslo", "design"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator, entity.PositionStaff},
	},
	ActionApprovePreProduction: {
		Phase:             entity.PhaseCasting,
		Key:               ActionApprovePreProduction,
		ApproverAreaSlugs: []string{"growth"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead},
	},

	// 阶段 4
	ActionProductionDelivery: {
		Phase:             entity.PhaseProduction,
		Key:               ActionProductionDelivery,
		ApproverAreaSlugs: []string{"oslo", "ugc-manager"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator, entity.PositionStaff},
	},

	// 阶段 5
	ActionContentReview: {
		Phase:             entity.PhaseReview,
		Key:               ActionContentReview,
		ApproverAreaSlugs: []string{"growth", "trafego"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator},
	},
	ActionDesignReview: {
		Phase:             entity.PhaseReview,
		Key:               ActionDesignReview,
		ApproverAreaSlugs: []string{"design"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator},
	},
	ActionFinalValidation: {
		Phase:             entity.PhaseReview,
		Key:               ActionFinalValidation,
		ApproverAreaSlugs: []string{"compliance", "medico"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator},
	},

	// 阶段 6
	ActionFinalApproval: {
		Phase:             entity.PhasePublication,
		Key:               ActionFinalApproval,
		ApproverAreaSlugs: []string{"growth", "trafego", "content-manager"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead},
	},
	ActionNomenclature: {
		Phase:             entity.PhasePublication,
		Key:               ActionNomenclature,
		ApproverAreaSlugs: []string{"trafego"},
		ApproverPositions: []entity.AreaPosition{entity.PositionHead, entity.PositionCoordinator},
	},
}

// regressActions 按被回退阶段选择授权动作
var regressActions = map[entity.Phase]ActionKey{
	entity.PhaseScript:      ActionValidateScriptCompliance,
	entity.PhaseCasting:     ActionApprovePreProduction,
	entity.PhaseProduction:  ActionProductionDelivery,
	entity.PhaseReview:      ActionContentReview,
	entity.PhasePublication: ActionFinalApproval,
}

// approvalActions 审批标志 → 授权动作
// 两个最终验证标志共用 validacao_final
var approvalActions = map[entity.ApprovalField]ActionKey{
	entity.ApprovalScriptCompliance: ActionValidateScriptCompliance,
	entity.ApprovalScriptMedical:    ActionValidateScriptMedical,
	entity.ApprovalCast:             ActionApproveCast,
	entity.ApprovalPreProduction:    ActionApprovePreProduction,
	entity.ApprovalContentReview:    ActionContentReview,
	entity.ApprovalDesignReview:     ActionDesignReview,
	entity.ApprovalFinalCompliance:  ActionFinalValidation,
	entity.ApprovalFinalMedical:     ActionFinalValidation,
	entity.ApprovalFinal:            ActionFinalApproval,
}

// advanceActions 项目推进的审批动作
// 只有阶段 1 需要人工审批，2-6 在全部视频就绪后直接推进
var advanceActions = map[entity.Phase]ActionKey{
	entity.PhaseBriefing: ActionApproveBriefing,
}

// RegressActionForPhase 返回从指定阶段回退所需的动作
func RegressActionForPhase(phase entity.Phase) (ActionKey, bool) {
	key, ok := regressActions[phase]
	return key, ok
}

// ActionForApprovalField 返回审批标志对应的动作
func ActionForApprovalField(field entity.ApprovalField) (ActionKey, bool) {
	key, ok := approvalActions[field]
	return key, ok
}

// AdvanceActionForPhase 返回从指定阶段推进项目所需的动作
func AdvanceActionForPhase(phase entity.Phase) (ActionKey, bool) {
	key, ok := advanceActions[phase]
	return key, ok
}

// Checker 权限检查器
// 只读查询成员资格存储，本身不产生授权错误：
// 调用方负责把 false 翻译为 forbidden
type Checker struct {
	areaRepo repository.AreaRepository
}

// NewChecker 创建权限检查器
func NewChecker(areaRepo repository.AreaRepository) *Checker {
	return &Checker{areaRepo: areaRepo}
}

// CanPerform 检查用户能否执行指定动作
// 1. SUPER_ADMIN 无条件放行
// 2. 动作无区域限制时放行
// 3. slug 解析不到活跃区域则拒绝
// 4. 用户在任一区域持有允许职级则放行，否则拒绝
func (c *Checker) CanPerform(ctx context.Context, userID string, role entity.UserRole, action Action) (bool, error) {
	if role == entity.UserRoleSuperAdmin {
		return true, nil
	}

	if len(action.ApproverAreaSlugs) == 0 {
		return true, nil
	}

	areas, err := c.areaRepo.ListActiveBySlugs(ctx, action.ApproverAreaSlugs)
	if err != nil {
		return false, err
	}
	if len(areas) == 0 {
		return false, nil
	}

	areaIDs := make([]string, 0, len(areas))
	for _, a := range areas {
		areaIDs = append(areaIDs, a.ID)
	}

	return c.areaRepo.HasMembership(ctx, userID, areaIDs, action.ApproverPositions)
}

// CanPerformKey 按动作标识检查权限；未知动作不设限
func (c *Checker) CanPerformKey(ctx context.Context, userID string, role entity.UserRole, key ActionKey) (bool, error) {
	action, ok := Matrix[key]
	if !ok {
		return true, nil
	}
	return c.CanPerform(ctx, userID, role, action)
}
