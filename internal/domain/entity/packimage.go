package entity

import (
	"time"
)

// PackImage 项目图包中的一张素材图
// 仅当项目勾选 IncludesPhotoPack 时可挂载
type PackImage struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	FileID    string    `json:"file_id"`
	Caption   string    `json:"caption,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPackImage 创建图包图片
func NewPackImage(projectID, fileID, caption string) *PackImage {
	return &PackImage{
		ProjectID: projectID,
		FileID:    fileID,
		Caption:   caption,
		CreatedAt: time.Now(),
	}
}
