// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"ad-workflow-api/internal/application/video"
	"ad-workflow-api/internal/domain/entity"
)

// CreateVideoRequest 创建视频请求
type CreateVideoRequest struct {
	DescriptiveName string `json:"descriptive_name" binding:"required,max=255"`
	Theme           string `json:"theme" binding:"max=100"`
	Style           string `json:"style" binding:"max=50"`
	Format          string `json:"format" binding:"max=50"`
}

// ToInput 转换为应用层输入
func (r *CreateVideoRequest) ToInput(projectID string) video.CreateInput {
	return video.CreateInput{
		ProjectID:       projectID,
		DescriptiveName: r.DescriptiveName,
		Theme:           entity.VideoTheme(r.Theme),
		Style:           entity.VideoStyle(r.Style),
		Format:          entity.VideoFormat(r.Format),
	}
}

// UpdateVideoRequest 更新视频请求，按字段组受阶段上限约束
type UpdateVideoRequest struct {
	DescriptiveName *string `json:"descriptive_name,omitempty" binding:"omitempty,max=255"`
	Theme           *string `json:"theme,omitempty" binding:"omitempty,max=100"`
	Style           *string `json:"style,omitempty" binding:"omitempty,max=50"`
	Format          *string `json:"format,omitempty" binding:"omitempty,max=50"`

	Script *string `json:"script,omitempty"`

	CreatorID   *string `json:"creator_id,omitempty" binding:"omitempty,max=64"`
	CreatorCode *string `json:"creator_code,omitempty" binding:"omitempty,max=25"`
	CreatorName *string `json:"creator_name,omitempty" binding:"omitempty,max=255"`

	StoryboardURL *string    `json:"storyboard_url,omitempty" binding:"omitempty,max=1024"`
	ShootLocation *string    `json:"shoot_location,omitempty" binding:"omitempty,max=255"`
	ShootDate     *time.Time `json:"shoot_date,omitempty"`
}

// ToInput 转换为应用层输入
func (r *UpdateVideoRequest) ToInput() video.UpdateInput {
	in := video.UpdateInput{
		DescriptiveName: r.DescriptiveName,
		Script:          r.Script,
		CreatorID:       r.CreatorID,
		CreatorCode:     r.CreatorCode,
		CreatorName:     r.CreatorName,
		StoryboardURL:   r.StoryboardURL,
		ShootLocation:   r.ShootLocation,
		ShootDate:       r.ShootDate,
	}
	if r.Theme != nil {
		t := entity.VideoTheme(*r.Theme)
		in.Theme = &t
	}
	if r.Style != nil {
		s := entity.VideoStyle(*r.Style)
		in.Style = &s
	}
	if r.Format != nil {
		f := entity.VideoFormat(*r.Format)
		in.Format = &f
	}
	return in
}

// UpdatePhaseStatusRequest 更新阶段状态请求
type UpdatePhaseStatusRequest struct {
	Status string `json:"status" binding:"required,max=32"`
}

// MarkApprovalRequest 审批标志更新请求
type MarkApprovalRequest struct {
	Field string `json:"field" binding:"required,max=64"`
	Value bool   `json:"value"`
}

// RegressVideoRequest 视频回退请求
type RegressVideoRequest struct {
	ToPhase int    `json:"to_phase" binding:"required,min=2,max=5"`
	Reason  string `json:"reason" binding:"required,max=1000"`
}

// SetAdLinkRequest 发布链接写入请求
type SetAdLinkRequest struct {
	AdLink string `json:"ad_link" binding:"required,max=1024,url"`
}

// VideoResponse 视频响应
type VideoResponse struct {
	ID           string `json:"id"`
	ProjectID    string `json:"project_id"`
	CurrentPhase int    `json:"current_phase"`
	PhaseName    string `json:"phase_name"`
	PhaseStatus  string `json:"phase_status"`

	DescriptiveName string `json:"descriptive_name"`
	Theme           string `json:"theme,omitempty"`
	Style           string `json:"style,omitempty"`
	Format          string `json:"format,omitempty"`

	Script        string     `json:"script,omitempty"`
	CreatorID     string     `json:"creator_id,omitempty"`
	CreatorCode   string     `json:"creator_code,omitempty"`
	CreatorName   string     `json:"creator_name,omitempty"`
	StoryboardURL string     `json:"storyboard_url,omitempty"`
	ShootLocation string     `json:"shoot_location,omitempty"`
	ShootDate     *time.Time `json:"shoot_date,omitempty"`

	Approvals map[string]bool `json:"approvals"`

	AdLink           string `json:"ad_link,omitempty"`
	RegressionReason string `json:"regression_reason,omitempty"`
	RegressedToPhase *int   `json:"regressed_to_phase,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VideoListResponse 视频列表响应
type VideoListResponse struct {
	Videos []*VideoResponse `json:"videos"`
}

// ToVideoResponse 将领域实体转换为响应 DTO
func ToVideoResponse(v *entity.Video) *VideoResponse {
	if v == nil {
		return nil
	}
	resp := &VideoResponse{
		ID:              v.ID,
		ProjectID:       v.ProjectID,
		CurrentPhase:    int(v.CurrentPhase),
		PhaseName:       v.CurrentPhase.String(),
		PhaseStatus:     string(v.PhaseStatus),
		DescriptiveName: v.DescriptiveName,
		Theme:           string(v.Theme),
		Style:           string(v.Style),
		Format:          string(v.Format),
		Script:          v.Script,
		CreatorID:       v.CreatorID,
		CreatorCode:     v.CreatorCode,
		CreatorName:     v.CreatorName,
		StoryboardURL:   v.StoryboardURL,
		ShootLocation:   v.ShootLocation,
		ShootDate:       v.ShootDate,
		Approvals: map[string]bool{
			string(entity.ApprovalScriptCompliance): v.ScriptCompliance,
			string(entity.ApprovalScriptMedical):    v.ScriptMedical,
			string(entity.ApprovalCast):             v.CastApproval,
			string(entity.ApprovalPreProduction):    v.PreProductionApproval,
			string(entity.ApprovalContentReview):    v.ContentReview,
			string(entity.ApprovalDesignReview):     v.DesignReview,
			string(entity.ApprovalFinalCompliance):  v.FinalCompliance,
			string(entity.ApprovalFinalMedical):     v.FinalMedical,
			string(entity.ApprovalFinal):            v.FinalApproval,
		},
		AdLink:           v.AdLink,
		RegressionReason: v.RegressionReason,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
	if v.RegressedToPhase != nil {
		p := int(*v.RegressedToPhase)
		resp.RegressedToPhase = &p
	}
	return resp
}

// ToVideoListResponse 将实体列表转换为响应 DTO
func ToVideoListResponse(videos []*entity.Video) *VideoListResponse {
	items := make([]*VideoResponse, 0, len(videos))
	for _, v := range videos {
		items = append(items, ToVideoResponse(v))
	}
	return &VideoListResponse{Videos: items}
}
