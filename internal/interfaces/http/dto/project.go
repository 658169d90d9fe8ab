// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"ad-workflow-api/internal/application/project"
	"ad-workflow-api/internal/domain/entity"
)

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Title             string     `json:"title" binding:"required,max=255"`
	Briefing          string     `json:"briefing" binding:"max=10000"`
	AdTypeID          string     `json:"ad_type_id" binding:"max=64"`
	OriginID          string     `json:"origin_id" binding:"max=64"`
	OriginCode        string     `json:"origin_code" binding:"max=25"`
	IncludesPhotoPack bool       `json:"includes_photo_pack"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	Priority          string     `json:"priority,omitempty" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// ToInput 转换为应用层输入
func (r *CreateProjectRequest) ToInput(createdByID string) project.CreateInput {
	return project.CreateInput{
		Title:             r.Title,
		Briefing:          r.Briefing,
		AdTypeID:          r.AdTypeID,
		OriginID:          r.OriginID,
		OriginCode:        r.OriginCode,
		IncludesPhotoPack: r.IncludesPhotoPack,
		Deadline:          r.Deadline,
		Priority:          entity.Priority(r.Priority),
		CreatedByID:       createdByID,
	}
}

// UpdateProjectRequest 更新项目请求
type UpdateProjectRequest struct {
	Title    *string    `json:"title,omitempty" binding:"omitempty,max=255"`
	Briefing *string    `json:"briefing,omitempty" binding:"omitempty,max=10000"`
	Deadline *time.Time `json:"deadline,omitempty"`
	Priority *string    `json:"priority,omitempty" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

// ToInput 转换为应用层输入
func (r *UpdateProjectRequest) ToInput() project.UpdateInput {
	in := project.UpdateInput{
		Title:    r.Title,
		Briefing: r.Briefing,
		Deadline: r.Deadline,
	}
	if r.Priority != nil {
		p := entity.Priority(*r.Priority)
		in.Priority = &p
	}
	return in
}

// AttachPackImageRequest 挂载图包图片请求
type AttachPackImageRequest struct {
	FileID  string `json:"file_id" binding:"required,max=64"`
	Caption string `json:"caption" binding:"max=255"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Briefing          string     `json:"briefing,omitempty"`
	AdTypeID          string     `json:"ad_type_id,omitempty"`
	OriginID          string     `json:"origin_id,omitempty"`
	OriginCode        string     `json:"origin_code,omitempty"`
	Status            string     `json:"status"`
	CurrentPhase      int        `json:"current_phase"`
	PhaseName         string     `json:"phase_name"`
	IncludesPhotoPack bool       `json:"includes_photo_pack"`
	Deadline          *time.Time `json:"deadline,omitempty"`
	Priority          string     `json:"priority,omitempty"`
	CreatedByID       string     `json:"created_by_id"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ProjectListResponse 项目列表响应
type ProjectListResponse struct {
	Projects []*ProjectResponse `json:"projects"`
}

// PackImageResponse 图包图片响应
type PackImageResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	FileID    string    `json:"file_id"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// PackImageListResponse 图包图片列表响应
type PackImageListResponse struct {
	Images []*PackImageResponse `json:"images"`
}

// ToProjectResponse 将领域实体转换为响应 DTO
func ToProjectResponse(p *entity.Project) *ProjectResponse {
	if p == nil {
		return nil
	}
	return &ProjectResponse{
		ID:                p.ID,
		Title:             p.Title,
		Briefing:          p.Briefing,
		AdTypeID:          p.AdTypeID,
		OriginID:          p.OriginID,
		OriginCode:        p.OriginCode,
		Status:            string(p.Status),
		CurrentPhase:      int(p.CurrentPhase),
		PhaseName:         p.CurrentPhase.String(),
		IncludesPhotoPack: p.IncludesPhotoPack,
		Deadline:          p.Deadline,
		Priority:          string(p.Priority),
		CreatedByID:       p.CreatedByID,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// ToProjectListResponse 将实体列表转换为响应 DTO
func ToProjectListResponse(projects []*entity.Project) *ProjectListResponse {
	items := make([]*ProjectResponse, 0, len(projects))
	for _, p := range projects {
		items = append(items, ToProjectResponse(p))
	}
	return &ProjectListResponse{Projects: items}
}

// ToPackImageResponse 将图包图片实体转换为响应 DTO
func ToPackImageResponse(img *entity.PackImage) *PackImageResponse {
	if img == nil {
		return nil
	}
	return &PackImageResponse{
		ID:        img.ID,
		ProjectID: img.ProjectID,
		FileID:    img.FileID,
		Caption:   img.Caption,
		CreatedAt: img.CreatedAt,
	}
}

// ToPackImageListResponse 将图包图片列表转换为响应 DTO
func ToPackImageListResponse(images []*entity.PackImage) *PackImageListResponse {
	items := make([]*PackImageResponse, 0, len(images))
	for _, img := range images {
		items = append(items, ToPackImageResponse(img))
	}
	return &PackImageListResponse{Images: items}
}
