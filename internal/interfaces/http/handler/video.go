// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"ad-workflow-api/internal/application/video"
	"ad-workflow-api/internal/application/workflow"
	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/interfaces/http/dto"
	"ad-workflow-api/internal/interfaces/http/middleware"
)

// VideoHandler 视频处理器
type VideoHandler struct {
	videoSvc    *video.Service
	workflowSvc *workflow.Service
}

// NewVideoHandler 创建视频处理器
func NewVideoHandler(videoSvc *video.Service, workflowSvc *workflow.Service) *VideoHandler {
	return &VideoHandler{
		videoSvc:    videoSvc,
		workflowSvc: workflowSvc,
	}
}

// CreateVideo 在项目下创建视频
func (h *VideoHandler) CreateVideo(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	v, err := h.videoSvc.Create(ctx, req.ToInput(c.Param("pid")))
	if err != nil {
		replyError(ctx, c, err, "failed to create video")
		return
	}
	dto.Created(c, dto.ToVideoResponse(v))
}

// ListVideos 获取项目的视频列表
func (h *VideoHandler) ListVideos(c *gin.Context) {
	ctx := c.Request.Context()

	videos, err := h.videoSvc.ListByProject(ctx, c.Param("pid"))
	if err != nil {
		replyError(ctx, c, err, "failed to list videos")
		return
	}
	dto.Success(c, dto.ToVideoListResponse(videos))
}

// GetVideo 获取视频详情
func (h *VideoHandler) GetVideo(c *gin.Context) {
	ctx := c.Request.Context()

	v, err := h.videoSvc.Get(ctx, c.Param("vid"))
	if err != nil {
		replyError(ctx, c, err, "failed to get video")
		return
	}
	dto.Success(c, dto.ToVideoResponse(v))
}

// UpdateVideo 更新视频字段（分组阶段上限）
func (h *VideoHandler) UpdateVideo(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	v, err := h.videoSvc.Update(ctx, c.Param("vid"), req.ToInput())
	if err != nil {
		replyError(ctx, c, err, "failed to update video")
		return
	}
	dto.Success(c, dto.ToVideoResponse(v))
}

// DeleteVideo 删除视频（仅阶段 1-2）
func (h *VideoHandler) DeleteVideo(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.videoSvc.Delete(ctx, c.Param("vid")); err != nil {
		replyError(ctx, c, err, "failed to delete video")
		return
	}
	dto.NoContent(c)
}

// UpdatePhaseStatus 更新视频阶段状态
func (h *VideoHandler) UpdatePhaseStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdatePhaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	v, err := h.workflowSvc.UpdatePhaseStatus(ctx, c.Param("vid"), entity.PhaseStatus(req.Status))
	if err != nil {
		replyError(ctx, c, err, "failed to update phase status")
		return
	}
	dto.Success(c, dto.ToVideoResponse(v))
}

// MarkApproval 切换审批标志
func (h *VideoHandler) MarkApproval(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetActorFromGin(c)

	var req dto.MarkApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	v, err := h.workflowSvc.MarkApproval(ctx, c.Param("vid"), entity.ApprovalField(req.Field), req.Value, actor)
	if err != nil {
		replyError(ctx, c, err, "failed to mark approval")
		return
	}
	dto.Success(c, dto.ToVideoResponse(v))
}

// RegressVideo 回退视频到较早阶段
func (h *VideoHandler) RegressVideo(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetActorFromGin(c)

	var req dto.RegressVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	v, err := h.workflowSvc.RegressVideo(ctx, c.Param("vid"), entity.Phase(req.ToPhase), req.Reason, actor)
	if err != nil {
		replyError(ctx, c, err, "failed to regress video")
		return
	}
	dto.Success(c, dto.ToVideoResponse(v))
}

// ApproveFinal 最终审批：分配 AD number、置位并进入 APROVADO
func (h *VideoHandler) ApproveFinal(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetActorFromGin(c)

	v, err := h.workflowSvc.ApprovePhase6(ctx, c.Param("vid"), actor)
	if err != nil {
		replyError(ctx, c, err, "failed to approve video")
		return
	}
	dto.Success(c, dto.ToVideoResponse(v))
}

// SetAdLink 写入发布链接
func (h *VideoHandler) SetAdLink(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetAdLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	v, err := h.workflowSvc.SetAdLink(ctx, c.Param("vid"), req.AdLink)
	if err != nil {
		replyError(ctx, c, err, "failed to set ad link")
		return
	}
	dto.Success(c, dto.ToVideoResponse(v))
}

// RegenerateNomenclature 重算视频全部已编号素材的命名
func (h *VideoHandler) RegenerateNomenclature(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetActorFromGin(c)

	if err := h.workflowSvc.RegenerateNomenclature(ctx, c.Param("vid"), actor); err != nil {
		replyError(ctx, c, err, "failed to regenerate nomenclature")
		return
	}
	dto.NoContent(c)
}
