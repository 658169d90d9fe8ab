// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"ad-workflow-api/internal/application/deliverable"
	"ad-workflow-api/internal/domain/entity"
)

// CreateDeliverableRequest 创建素材请求
type CreateDeliverableRequest struct {
	FileID          string `json:"file_id" binding:"max=64"`
	Duration        string `json:"duration" binding:"required,max=16"`
	Size            string `json:"size" binding:"required,max=16"`
	ShowsProduct    bool   `json:"shows_product"`
	HookDescription string `json:"hook_description" binding:"max=1000"`
}

// ToInput 转换为应用层输入
func (r *CreateDeliverableRequest) ToInput(videoID string) deliverable.CreateInput {
	return deliverable.CreateInput{
		VideoID:         videoID,
		FileID:          r.FileID,
		Duration:        entity.DeliverableDuration(r.Duration),
		Size:            entity.DeliverableSize(r.Size),
		ShowsProduct:    r.ShowsProduct,
		HookDescription: r.HookDescription,
	}
}

// UpdateDeliverableRequest 更新素材请求
type UpdateDeliverableRequest struct {
	FileID          *string `json:"file_id,omitempty" binding:"omitempty,max=64"`
	Duration        *string `json:"duration,omitempty" binding:"omitempty,max=16"`
	Size            *string `json:"size,omitempty" binding:"omitempty,max=16"`
	ShowsProduct    *bool   `json:"shows_product,omitempty"`
	HookDescription *string `json:"hook_description,omitempty" binding:"omitempty,max=1000"`
}

// ToInput 转换为应用层输入
func (r *UpdateDeliverableRequest) ToInput() deliverable.UpdateInput {
	in := deliverable.UpdateInput{
		FileID:          r.FileID,
		ShowsProduct:    r.ShowsProduct,
		HookDescription: r.HookDescription,
	}
	if r.Duration != nil {
		d := entity.DeliverableDuration(*r.Duration)
		in.Duration = &d
	}
	if r.Size != nil {
		s := entity.DeliverableSize(*r.Size)
		in.Size = &s
	}
	return in
}

// UpdateNomenclatureRequest 命名通道更新请求（封存后唯一可修改的字段组）
type UpdateNomenclatureRequest struct {
	EditedName    *string `json:"edited_name,omitempty" binding:"omitempty,max=255"`
	IsPost        *bool   `json:"is_post,omitempty"`
	VersionNumber *int    `json:"version_number,omitempty" binding:"omitempty,min=1"`
}

// ToInput 转换为应用层输入
func (r *UpdateNomenclatureRequest) ToInput() deliverable.NomenclatureInput {
	return deliverable.NomenclatureInput{
		EditedName:    r.EditedName,
		IsPost:        r.IsPost,
		VersionNumber: r.VersionNumber,
	}
}

// DeliverableResponse 素材响应
type DeliverableResponse struct {
	ID              string     `json:"id"`
	VideoID         string     `json:"video_id"`
	HookNumber      int        `json:"hook_number"`
	FileID          string     `json:"file_id,omitempty"`
	Duration        string     `json:"duration"`
	Size            string     `json:"size"`
	ShowsProduct    bool       `json:"shows_product"`
	HookDescription string     `json:"hook_description,omitempty"`
	AdNumber        *int       `json:"ad_number,omitempty"`
	NumberedAt      *time.Time `json:"numbered_at,omitempty"`
	GeneratedName   string     `json:"generated_name,omitempty"`
	EditedName      string     `json:"edited_name,omitempty"`
	EffectiveName   string     `json:"effective_name,omitempty"`
	VersionNumber   int        `json:"version_number"`
	IsPost          bool       `json:"is_post"`
	IsSealed        bool       `json:"is_sealed"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// DeliverableListResponse 素材列表响应
type DeliverableListResponse struct {
	Deliverables []*DeliverableResponse `json:"deliverables"`
}

// ToDeliverableResponse 将领域实体转换为响应 DTO
func ToDeliverableResponse(d *entity.Deliverable) *DeliverableResponse {
	if d == nil {
		return nil
	}
	return &DeliverableResponse{
		ID:              d.ID,
		VideoID:         d.VideoID,
		HookNumber:      d.HookNumber,
		FileID:          d.FileID,
		Duration:        string(d.Duration),
		Size:            string(d.Size),
		ShowsProduct:    d.ShowsProduct,
		HookDescription: d.HookDescription,
		AdNumber:        d.AdNumber,
		NumberedAt:      d.NumberedAt,
		GeneratedName:   d.GeneratedName,
		EditedName:      d.EditedName,
		EffectiveName:   d.NomenclatureName(),
		VersionNumber:   d.VersionNumber,
		IsPost:          d.IsPost,
		IsSealed:        d.IsSealed(),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ToDeliverableListResponse 将实体列表转换为响应 DTO
func ToDeliverableListResponse(deliverables []*entity.Deliverable) *DeliverableListResponse {
	items := make([]*DeliverableResponse, 0, len(deliverables))
	for _, d := range deliverables {
		items = append(items, ToDeliverableResponse(d))
	}
	return &DeliverableListResponse{Deliverables: items}
}
