// Package entity 定义领域实体
package entity

import (
	"time"
)

// ProjectStatus 项目状态
type ProjectStatus string

const (
	ProjectStatusDraft     ProjectStatus = "DRAFT"
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
	ProjectStatusCancelled ProjectStatus = "CANCELLED"
)

// Priority 项目优先级
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
	PriorityUrgent Priority = "URGENT"
)

// Project 广告项目实体
// 一组共同推进六个阶段的广告视频
type Project struct {
	ID                string        `json:"id"`
	Title             string        `json:"title"`
	Briefing          string        `json:"briefing"`
	AdTypeID          string        `json:"ad_type_id,omitempty"`
	OriginID          string        `json:"origin_id,omitempty"`
	OriginCode        string        `json:"origin_code,omitempty"`
	Status            ProjectStatus `json:"status"`
	CurrentPhase      Phase         `json:"current_phase"`
	IncludesPhotoPack bool          `json:"includes_photo_pack"`
	Deadline          *time.Time    `json:"deadline,omitempty"`
	Priority          Priority      `json:"priority,omitempty"`
	CreatedByID       string        `json:"created_by_id"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// NewProject 创建新项目，初始为 DRAFT、阶段 1
func NewProject(title, briefing, adTypeID, originID, createdByID string) *Project {
	now := time.Now()
	return &Project{
		Title:        title,
		Briefing:     briefing,
		AdTypeID:     adTypeID,
		OriginID:     originID,
		Status:       ProjectStatusDraft,
		CurrentPhase: PhaseBriefing,
		Priority:     PriorityMedium,
		CreatedByID:  createdByID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsTerminal 检查项目是否处于终态
func (p *Project) IsTerminal() bool {
	return p.Status == ProjectStatusCompleted || p.Status == ProjectStatusCancelled
}

// IsEditable 检查标题/briefing 是否可编辑
// 规则：DRAFT 状态或阶段不超过 2
func (p *Project) IsEditable() bool {
	if p.IsTerminal() {
		return false
	}
	return p.Status == ProjectStatusDraft || p.CurrentPhase <= PhaseScript
}

// CanAddVideos 检查是否还能添加视频
// 视频列表在阶段 2 结束后锁定
func (p *Project) CanAddVideos() bool {
	return p.CurrentPhase <= PhaseScript
}
