// Package entity 定义领域实体
package entity

import (
	"time"
)

// VideoTheme 视频主题
type VideoTheme string

const (
	ThemeGeneral     VideoTheme = "GERAL"
	ThemeSleep       VideoTheme = "SONO"
	ThemeAnxiety     VideoTheme = "ANSIEDADE"
	ThemeDepression  VideoTheme = "DEPRESSAO"
	ThemeWeight      VideoTheme = "PESO"
	ThemeDysfunction VideoTheme = "DISF"
	ThemePain        VideoTheme = "DORES"
	ThemeFocus       VideoTheme = "FOCO"
	ThemePerformance VideoTheme = "PERFORM"
	ThemePathologies VideoTheme = "PATOLOGIAS"
	ThemeTobacco     VideoTheme = "TABACO"
)

// VideoStyle 视频风格
type VideoStyle string

const (
	StyleUGC           VideoStyle = "UGC"
	StyleEducational   VideoStyle = "EDUC"
	StyleComedy        VideoStyle = "COMED"
	StyleTestimonial   VideoStyle = "DEPOI"
	StylePOV           VideoStyle = "POV"
	StyleStorytelling  VideoStyle = "STORY"
	StyleMyths         VideoStyle = "MITOS"
	StyleQA            VideoStyle = "QA"
	StyleBeforeAfter   VideoStyle = "ANTES"
	StyleReview        VideoStyle = "REVIEW"
	StyleReact         VideoStyle = "REACT"
	StyleTrend         VideoStyle = "TREND"
	StyleInstitutional VideoStyle = "INST"
)

// VideoFormat 视频载体格式
type VideoFormat string

const (
	FormatVideo    VideoFormat = "VID"
	FormatMotion   VideoFormat = "MOT"
	FormatImage    VideoFormat = "IMG"
	FormatCarousel VideoFormat = "CRSEL"
)

// ApprovalField 视频审批标志字段名
type ApprovalField string

const (
	ApprovalScriptCompliance ApprovalField = "validacaoRoteiroCompliance"
	ApprovalScriptMedical    ApprovalField = "validacaoRoteiroMedico"
	ApprovalCast             ApprovalField = "aprovacaoElenco"
	ApprovalPreProduction    ApprovalField = "aprovacaoPreProducao"
	ApprovalContentReview    ApprovalField = "revisaoConteudo"
	ApprovalDesignReview     ApprovalField = "revisaoDesign"
	ApprovalFinalCompliance  ApprovalField = "validacaoFinalCompliance"
	ApprovalFinalMedical     ApprovalField = "validacaoFinalMedico"
	ApprovalFinal            ApprovalField = "aprovacaoFinal"
)

// Video 广告视频实体
// 一个创意概念，跟随所属项目推进阶段，phaseStatus 记录阶段内进度
type Video struct {
	ID           string      `json:"id"`
	ProjectID    string      `json:"project_id"`
	CurrentPhase Phase       `json:"current_phase"`
	PhaseStatus  PhaseStatus `json:"phase_status"`

	// 阶段 2 之后不可变的描述性属性
	DescriptiveName string      `json:"descriptive_name"`
	Theme           VideoTheme  `json:"theme"`
	Style           VideoStyle  `json:"style"`
	Format          VideoFormat `json:"format"`

	// 按阶段上限可编辑的生产字段
	Script        string     `json:"script,omitempty"`
	CreatorID     string     `json:"creator_id,omitempty"`
	CreatorCode   string     `json:"creator_code,omitempty"`
	CreatorName   string     `json:"creator_name,omitempty"`
	StoryboardURL string     `json:"storyboard_url,omitempty"`
	ShootLocation string     `json:"shoot_location,omitempty"`
	ShootDate     *time.Time `json:"shoot_date,omitempty"`

	// 审批标志
	ScriptCompliance     bool `json:"script_compliance"`
	ScriptMedical        bool `json:"script_medical"`
	CastApproval         bool `json:"cast_approval"`
	PreProductionApproval bool `json:"pre_production_approval"`
	ContentReview        bool `json:"content_review"`
	DesignReview         bool `json:"design_review"`
	FinalCompliance      bool `json:"final_compliance"`
	FinalMedical         bool `json:"final_medical"`
	FinalApproval        bool `json:"final_approval"`

	// 发布与回退记录
	AdLink           string `json:"ad_link,omitempty"`
	RegressionReason string `json:"regression_reason,omitempty"`
	RegressedToPhase *Phase `json:"regressed_to_phase,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVideo 创建新视频，继承项目当前阶段，状态 PENDENTE
func NewVideo(projectID, descriptiveName string, theme VideoTheme, style VideoStyle, format VideoFormat, phase Phase) *Video {
	now := time.Now()
	return &Video{
		ProjectID:       projectID,
		CurrentPhase:    phase,
		PhaseStatus:     PhaseStatusPending,
		DescriptiveName: descriptiveName,
		Theme:           theme,
		Style:           style,
		Format:          format,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// ApprovalValue 读取指定审批标志的当前值
func (v *Video) ApprovalValue(field ApprovalField) bool {
	switch field {
	case ApprovalScriptCompliance:
		return v.ScriptCompliance
	case ApprovalScriptMedical:
		return v.ScriptMedical
	case ApprovalCast:
		return v.CastApproval
	case ApprovalPreProduction:
		return v.PreProductionApproval
	case ApprovalContentReview:
		return v.ContentReview
	case ApprovalDesignReview:
		return v.DesignReview
	case ApprovalFinalCompliance:
		return v.FinalCompliance
	case ApprovalFinalMedical:
		return v.FinalMedical
	case ApprovalFinal:
		return v.FinalApproval
	default:
		return false
	}
}

// SetApproval 写入指定审批标志
func (v *Video) SetApproval(field ApprovalField, value bool) bool {
	switch field {
	case ApprovalScriptCompliance:
		v.ScriptCompliance = value
	case ApprovalScriptMedical:
		v.ScriptMedical = value
	case ApprovalCast:
		v.CastApproval = value
	case ApprovalPreProduction:
		v.PreProductionApproval = value
	case ApprovalContentReview:
		v.ContentReview = value
	case ApprovalDesignReview:
		v.DesignReview = value
	case ApprovalFinalCompliance:
		v.FinalCompliance = value
	case ApprovalFinalMedical:
		v.FinalMedical = value
	case ApprovalFinal:
		v.FinalApproval = value
	default:
		return false
	}
	v.UpdatedAt = time.Now()
	return true
}

// 字段编辑的阶段上限
const (
	BasicFieldsPhaseLimit      = PhaseScript     // nomeDescritivo/tema/estilo/formato
	ScriptPhaseLimit           = PhaseReview     // roteiro
	CreatorPhaseLimit          = PhaseCasting    // criadorId
	ProductionFieldsPhaseLimit = PhaseProduction // storyboard/local/data de gravacao
)
