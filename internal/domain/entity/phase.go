// Package entity 定义领域实体
package entity

import "fmt"

// Phase 工作流阶段 (1-6)
type Phase int

const (
	PhaseBriefing    Phase = 1
	PhaseScript      Phase = 2
	PhaseCasting     Phase = 3
	PhaseProduction  Phase = 4
	PhaseReview      Phase = 5
	PhasePublication Phase = 6

	// MinRegressPhase 回退的最小目标阶段，禁止回到 Briefing
	MinRegressPhase Phase = 2
)

// IsValid 检查阶段是否在 1-6 范围内
func (p Phase) IsValid() bool {
	return p >= PhaseBriefing && p <= PhasePublication
}

// String 返回阶段名称
func (p Phase) String() string {
	switch p {
	case PhaseBriefing:
		return "Briefing"
	case PhaseScript:
		return "Roteiro"
	case PhaseCasting:
		return "Elenco"
	case PhaseProduction:
		return "Producao"
	case PhaseReview:
		return "Revisao"
	case PhasePublication:
		return "Publicacao"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// PhaseStatus 视频在当前阶段内的状态
type PhaseStatus string

const (
	PhaseStatusPending      PhaseStatus = "PENDENTE"
	PhaseStatusInProgress   PhaseStatus = "EM_ANDAMENTO"
	PhaseStatusReady        PhaseStatus = "PRONTO"
	PhaseStatusCasting      PhaseStatus = "ELENCO"
	PhaseStatusPreProd      PhaseStatus = "PRE_PROD"
	PhaseStatusInProduction PhaseStatus = "EM_PRODUCAO"
	PhaseStatusDelivered    PhaseStatus = "ENTREGUE"
	PhaseStatusInReview     PhaseStatus = "EM_REVISAO"
	PhaseStatusValidating   PhaseStatus = "VALIDANDO"
	PhaseStatusApproved     PhaseStatus = "APROVADO"
	PhaseStatusNaming       PhaseStatus = "NOMENCLATURA"
	PhaseStatusPublished    PhaseStatus = "PUBLICADO"
)

// phaseStatusVocabulary 每个阶段允许的状态集合（封闭枚举）
var phaseStatusVocabulary = map[Phase][]PhaseStatus{
	PhaseBriefing:    {PhaseStatusPending, PhaseStatusInProgress, PhaseStatusReady},
	PhaseScript:      {PhaseStatusPending, PhaseStatusInProgress, PhaseStatusReady},
	PhaseCasting:     {PhaseStatusPending, PhaseStatusCasting, PhaseStatusPreProd, PhaseStatusReady},
	PhaseProduction:  {PhaseStatusPending, PhaseStatusInProduction, PhaseStatusDelivered},
	PhaseReview:      {PhaseStatusPending, PhaseStatusInReview, PhaseStatusValidating, PhaseStatusReady},
	PhasePublication: {PhaseStatusPending, PhaseStatusApproved, PhaseStatusNaming, PhaseStatusPublished},
}

// ValidStatusesForPhase 返回指定阶段允许的状态集合
func ValidStatusesForPhase(phase Phase) []PhaseStatus {
	return phaseStatusVocabulary[phase]
}

// IsValidStatusForPhase 检查状态是否属于阶段的状态集合
func IsValidStatusForPhase(phase Phase, status PhaseStatus) bool {
	for _, s := range phaseStatusVocabulary[phase] {
		if s == status {
			return true
		}
	}
	return false
}

// ReadyStatusForPhase 返回阶段用于推进判定的 "就绪" 状态
func ReadyStatusForPhase(phase Phase) (PhaseStatus, error) {
	switch phase {
	case PhaseBriefing, PhaseScript, PhaseCasting, PhaseReview:
		return PhaseStatusReady, nil
	case PhaseProduction:
		return PhaseStatusDelivered, nil
	case PhasePublication:
		return PhaseStatusPublished, nil
	default:
		return "", fmt.Errorf("invalid phase: %d", int(phase))
	}
}
