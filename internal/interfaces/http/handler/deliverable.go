// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"ad-workflow-api/internal/application/deliverable"
	"ad-workflow-api/internal/interfaces/http/dto"
	"ad-workflow-api/internal/interfaces/http/middleware"
)

// DeliverableHandler 素材处理器
type DeliverableHandler struct {
	deliverableSvc *deliverable.Service
}

// NewDeliverableHandler 创建素材处理器
func NewDeliverableHandler(deliverableSvc *deliverable.Service) *DeliverableHandler {
	return &DeliverableHandler{
		deliverableSvc: deliverableSvc,
	}
}

// CreateDeliverable 在视频下创建素材变体
func (h *DeliverableHandler) CreateDeliverable(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	d, err := h.deliverableSvc.Create(ctx, req.ToInput(c.Param("vid")))
	if err != nil {
		replyError(ctx, c, err, "failed to create deliverable")
		return
	}
	dto.Created(c, dto.ToDeliverableResponse(d))
}

// ListDeliverables 获取视频的素材列表
func (h *DeliverableHandler) ListDeliverables(c *gin.Context) {
	ctx := c.Request.Context()

	deliverables, err := h.deliverableSvc.ListByVideo(ctx, c.Param("vid"))
	if err != nil {
		replyError(ctx, c, err, "failed to list deliverables")
		return
	}
	dto.Success(c, dto.ToDeliverableListResponse(deliverables))
}

// GetDeliverable 获取素材详情
func (h *DeliverableHandler) GetDeliverable(c *gin.Context) {
	ctx := c.Request.Context()

	d, err := h.deliverableSvc.Get(ctx, c.Param("did"))
	if err != nil {
		replyError(ctx, c, err, "failed to get deliverable")
		return
	}
	dto.Success(c, dto.ToDeliverableResponse(d))
}

// UpdateDeliverable 更新素材（封存后拒绝）
func (h *DeliverableHandler) UpdateDeliverable(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateDeliverableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	d, err := h.deliverableSvc.Update(ctx, c.Param("did"), req.ToInput())
	if err != nil {
		replyError(ctx, c, err, "failed to update deliverable")
		return
	}
	dto.Success(c, dto.ToDeliverableResponse(d))
}

// UpdateNomenclature 命名通道更新（封存后唯一可修改的字段组）
func (h *DeliverableHandler) UpdateNomenclature(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetActorFromGin(c)

	var req dto.UpdateNomenclatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	d, err := h.deliverableSvc.UpdateNomenclature(ctx, c.Param("did"), req.ToInput(), actor)
	if err != nil {
		replyError(ctx, c, err, "failed to update nomenclature")
		return
	}
	dto.Success(c, dto.ToDeliverableResponse(d))
}

// DeleteDeliverable 删除素材（封存后拒绝）
func (h *DeliverableHandler) DeleteDeliverable(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.deliverableSvc.Delete(ctx, c.Param("did")); err != nil {
		replyError(ctx, c, err, "failed to delete deliverable")
		return
	}
	dto.NoContent(c)
}
