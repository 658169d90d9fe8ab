// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"ad-workflow-api/internal/application/project"
	"ad-workflow-api/internal/application/workflow"
	"ad-workflow-api/internal/domain/entity"
	"ad-workflow-api/internal/domain/repository"
	"ad-workflow-api/internal/interfaces/http/dto"
	"ad-workflow-api/internal/interfaces/http/middleware"
)

// ProjectHandler 项目处理器
type ProjectHandler struct {
	projectSvc  *project.Service
	workflowSvc *workflow.Service
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(projectSvc *project.Service, workflowSvc *workflow.Service) *ProjectHandler {
	return &ProjectHandler{
		projectSvc:  projectSvc,
		workflowSvc: workflowSvc,
	}
}

// ListProjects 获取项目列表
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	var filter *repository.ProjectFilter
	status := c.Query("status")
	search := c.Query("search")
	if status != "" || search != "" {
		filter = &repository.ProjectFilter{
			Status: entity.ProjectStatus(status),
			Search: search,
		}
	}

	result, err := h.projectSvc.List(ctx, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		replyError(ctx, c, err, "failed to list projects")
		return
	}

	resp := dto.ToProjectListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	ctx := c.Request.Context()
	userID := middleware.GetUserIDFromGin(c)

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.projectSvc.Create(ctx, req.ToInput(userID))
	if err != nil {
		replyError(ctx, c, err, "failed to create project")
		return
	}
	dto.Created(c, dto.ToProjectResponse(p))
}

// GetProject 获取项目详情
func (h *ProjectHandler) GetProject(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.projectSvc.Get(ctx, c.Param("pid"))
	if err != nil {
		replyError(ctx, c, err, "failed to get project")
		return
	}
	dto.Success(c, dto.ToProjectResponse(p))
}

// UpdateProject 更新项目
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	p, err := h.projectSvc.Update(ctx, c.Param("pid"), req.ToInput())
	if err != nil {
		replyError(ctx, c, err, "failed to update project")
		return
	}
	dto.Success(c, dto.ToProjectResponse(p))
}

// DeleteProject 删除项目（仅 DRAFT）
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.projectSvc.Delete(ctx, c.Param("pid")); err != nil {
		replyError(ctx, c, err, "failed to delete project")
		return
	}
	dto.NoContent(c)
}

// SubmitProject 提交项目进入执行
func (h *ProjectHandler) SubmitProject(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.projectSvc.Submit(ctx, c.Param("pid"))
	if err != nil {
		replyError(ctx, c, err, "failed to submit project")
		return
	}
	dto.Success(c, dto.ToProjectResponse(p))
}

// CancelProject 取消项目
func (h *ProjectHandler) CancelProject(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.projectSvc.Cancel(ctx, c.Param("pid"))
	if err != nil {
		replyError(ctx, c, err, "failed to cancel project")
		return
	}
	dto.Success(c, dto.ToProjectResponse(p))
}

// CompleteProject 完结项目
func (h *ProjectHandler) CompleteProject(c *gin.Context) {
	ctx := c.Request.Context()

	p, err := h.projectSvc.Complete(ctx, c.Param("pid"))
	if err != nil {
		replyError(ctx, c, err, "failed to complete project")
		return
	}
	dto.Success(c, dto.ToProjectResponse(p))
}

// AdvancePhase 推进项目阶段
func (h *ProjectHandler) AdvancePhase(c *gin.Context) {
	ctx := c.Request.Context()
	actor := middleware.GetActorFromGin(c)

	p, err := h.workflowSvc.AdvancePhase(ctx, c.Param("pid"), actor)
	if err != nil {
		replyError(ctx, c, err, "failed to advance phase")
		return
	}
	dto.Success(c, dto.ToProjectResponse(p))
}

// AdvanceStatus 查询项目能否推进及逐视频缺口
func (h *ProjectHandler) AdvanceStatus(c *gin.Context) {
	ctx := c.Request.Context()

	status, err := h.workflowSvc.CanAdvance(ctx, c.Param("pid"))
	if err != nil {
		replyError(ctx, c, err, "failed to check advance status")
		return
	}
	dto.Success(c, status)
}

// PhaseSummary 项目阶段汇总
func (h *ProjectHandler) PhaseSummary(c *gin.Context) {
	ctx := c.Request.Context()

	summary, err := h.workflowSvc.PhaseStatusSummary(ctx, c.Param("pid"))
	if err != nil {
		replyError(ctx, c, err, "failed to build phase summary")
		return
	}
	dto.Success(c, summary)
}

// AttachPackImage 挂载图包图片
func (h *ProjectHandler) AttachPackImage(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AttachPackImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	img, err := h.projectSvc.AttachPackImage(ctx, c.Param("pid"), req.FileID, req.Caption)
	if err != nil {
		replyError(ctx, c, err, "failed to attach pack image")
		return
	}
	dto.Created(c, dto.ToPackImageResponse(img))
}

// ListPackImages 获取项目图包
func (h *ProjectHandler) ListPackImages(c *gin.Context) {
	ctx := c.Request.Context()

	images, err := h.projectSvc.ListPackImages(ctx, c.Param("pid"))
	if err != nil {
		replyError(ctx, c, err, "failed to list pack images")
		return
	}
	dto.Success(c, dto.ToPackImageListResponse(images))
}

// RemovePackImage 移除图包图片
func (h *ProjectHandler) RemovePackImage(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.projectSvc.RemovePackImage(ctx, c.Param("pid"), c.Param("image_id")); err != nil {
		replyError(ctx, c, err, "failed to remove pack image")
		return
	}
	dto.NoContent(c)
}
