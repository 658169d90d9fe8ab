// Package entity 定义领域实体
package entity

import (
	"time"
)

// DeliverableDuration 素材时长枚举
type DeliverableDuration string

const (
	Duration15s  DeliverableDuration = "T15S"
	Duration30s  DeliverableDuration = "T30S"
	Duration45s  DeliverableDuration = "T45S"
	Duration60s  DeliverableDuration = "T60S"
	Duration90s  DeliverableDuration = "T90S"
	Duration120s DeliverableDuration = "T120S"
	Duration180s DeliverableDuration = "T180S"
)

// DeliverableSize 素材画幅枚举
type DeliverableSize string

const (
	Size9x16 DeliverableSize = "S9X16"
	Size1x1  DeliverableSize = "S1X1"
	Size4x5  DeliverableSize = "S4X5"
	Size16x9 DeliverableSize = "S16X9"
	Size2x3  DeliverableSize = "S2X3"
)

// MaxDeliverablesPerVideo 每个视频的素材上限
const MaxDeliverablesPerVideo = 10

// Deliverable 广告素材变体实体 (hook)
// 一旦分配 adNumber 即被封存：除命名字段外不可变，且不可删除
type Deliverable struct {
	ID              string              `json:"id"`
	VideoID         string              `json:"video_id"`
	HookNumber      int                 `json:"hook_number"`
	FileID          string              `json:"file_id,omitempty"`
	Duration        DeliverableDuration `json:"duration"`
	Size            DeliverableSize     `json:"size"`
	ShowsProduct    bool                `json:"shows_product"`
	HookDescription string              `json:"hook_description,omitempty"`
	AdNumber        *int                `json:"ad_number,omitempty"`
	NumberedAt      *time.Time          `json:"numbered_at,omitempty"`
	GeneratedName   string              `json:"generated_name,omitempty"`
	EditedName      string              `json:"edited_name,omitempty"`
	VersionNumber   int                 `json:"version_number"`
	IsPost          bool                `json:"is_post"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// NewDeliverable 创建新素材变体
func NewDeliverable(videoID, fileID string, hookNumber int, duration DeliverableDuration, size DeliverableSize) *Deliverable {
	now := time.Now()
	return &Deliverable{
		VideoID:       videoID,
		HookNumber:    hookNumber,
		FileID:        fileID,
		Duration:      duration,
		Size:          size,
		VersionNumber: 1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsSealed 检查素材是否已分配 AD number
func (d *Deliverable) IsSealed() bool {
	return d.AdNumber != nil
}

// NomenclatureName 返回生效的命名：人工编辑优先于自动生成
func (d *Deliverable) NomenclatureName() string {
	if d.EditedName != "" {
		return d.EditedName
	}
	return d.GeneratedName
}

// NextHookNumber 计算下一个可用的 hookNumber（填补空缺）
// 返回 0 表示 1..MaxDeliverablesPerVideo 已占满
func NextHookNumber(existing []*Deliverable) int {
	used := make(map[int]bool, len(existing))
	for _, d := range existing {
		used[d.HookNumber] = true
	}
	for n := 1; n <= MaxDeliverablesPerVideo; n++ {
		if !used[n] {
			return n
		}
	}
	return 0
}
