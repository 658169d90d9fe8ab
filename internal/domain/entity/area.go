// Package entity 定义领域实体
package entity

import "time"

// AreaPosition 成员在组织区域内的职级
type AreaPosition string

const (
	PositionHead        AreaPosition = "HEAD"
	PositionCoordinator AreaPosition = "COORDINATOR"
	PositionStaff       AreaPosition = "STAFF"
)

// Area 组织区域
type Area struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// AreaMember 用户在区域内的成员资格
type AreaMember struct {
	ID       string       `json:"id"`
	UserID   string       `json:"user_id"`
	AreaID   string       `json:"area_id"`
	Position AreaPosition `json:"position"`
}
